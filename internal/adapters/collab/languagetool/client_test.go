package languagetool

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const twoMatches = `{
  "software": {"name": "LanguageTool"},
  "matches": [
    {"message": "Possible spelling mistake found.", "context": {"text": "I has a dog", "offset": 2, "length": 3},
     "replacements": [{"value": "have"}, {"value": "had"}]},
    {"message": "Missing comma.", "context": {"text": "Hello my name"}, "replacements": []}
  ]
}`

func TestClient_Check(t *testing.T) {
	Convey("Given a LanguageTool server", t, func() {
		ctx := context.Background()
		var calls atomic.Int32
		var gotText, gotLang, gotType string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			if r.URL.Path != "/v2/check" || r.Method != http.MethodPost {
				http.NotFound(w, r)
				return
			}
			_ = r.ParseForm()
			gotText, gotLang = r.PostForm.Get("text"), r.PostForm.Get("language")
			gotType = r.Header.Get("Content-Type")
			if gotText == "explode" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			if gotText == "garble" {
				_, _ = w.Write([]byte("<html>"))
				return
			}
			_, _ = w.Write([]byte(twoMatches))
		}))
		defer srv.Close()

		Convey("When checking text", func() {
			issues, err := New(srv.URL).Check(ctx, "I has a dog")

			Convey("Then matches become grammar issues", func() {
				So(err, ShouldBeNil)
				So(issues, ShouldHaveLength, 2)
				So(issues[0].Context, ShouldEqual, "I has a dog")
				So(issues[0].Replacements, ShouldResemble, []string{"have", "had"})
				So(issues[1].Replacements, ShouldBeEmpty)
				So(gotText, ShouldEqual, "I has a dog")
				So(gotLang, ShouldEqual, "en-US")
				So(gotType, ShouldEqual, "application/x-www-form-urlencoded")
			})
		})

		Convey("When a language is configured", func() {
			_, err := New(srv.URL, WithLanguage("en-GB")).Check(ctx, "colour")
			So(err, ShouldBeNil)
			So(gotLang, ShouldEqual, "en-GB")
		})

		Convey("When the server fails", func() {
			_, err := New(srv.URL).Check(ctx, "explode")
			So(errors.Is(err, ErrUnexpectedStatus), ShouldBeTrue)
		})

		Convey("When the server replies with something other than JSON", func() {
			_, err := New(srv.URL).Check(ctx, "garble")
			So(errors.Is(err, ErrMalformedReply), ShouldBeTrue)
		})

		Convey("When probing", func() {
			So(New(srv.URL).Probe(ctx), ShouldBeNil)
			So(gotText, ShouldEqual, probeSentence)
			So(calls.Load(), ShouldEqual, 1)
		})
	})

	Convey("Given no server", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		So(New(url).Probe(context.Background()), ShouldNotBeNil)
	})
}
