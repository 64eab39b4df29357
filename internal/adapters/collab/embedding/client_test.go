package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func newServer(status int, reply any) (*httptest.Server, *[]embedRequest) {
	var seen []embedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(status)
		case "/embed":
			var req embedRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			seen = append(seen, req)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(reply)
		default:
			http.NotFound(w, r)
		}
	}))
	return srv, &seen
}

func TestClient_Embed(t *testing.T) {
	Convey("Given an embedding service", t, func() {
		ctx := context.Background()

		Convey("When it answers with one vector per text", func() {
			srv, seen := newServer(http.StatusOK, embedResponse{Embeddings: [][]float64{{1, 2}, {3, 4}}})
			defer srv.Close()

			vecs, err := New(srv.URL+"/").Embed(ctx, []string{"hello", "target"})

			Convey("Then the vectors come back in order", func() {
				So(err, ShouldBeNil)
				So(vecs, ShouldResemble, [][]float64{{1, 2}, {3, 4}})
				So(*seen, ShouldHaveLength, 1)
				So((*seen)[0].Texts, ShouldResemble, []string{"hello", "target"})
			})
		})

		Convey("When it answers with the wrong number of vectors", func() {
			srv, _ := newServer(http.StatusOK, embedResponse{Embeddings: [][]float64{{1, 2}}})
			defer srv.Close()

			_, err := New(srv.URL).Embed(ctx, []string{"a", "b"})

			Convey("Then the reply is rejected", func() {
				So(errors.Is(err, ErrMalformedReply), ShouldBeTrue)
			})
		})

		Convey("When it fails", func() {
			srv, _ := newServer(http.StatusInternalServerError, map[string]string{"detail": "oom"})
			defer srv.Close()

			_, err := New(srv.URL).Embed(ctx, []string{"a"})

			Convey("Then the status is reported", func() {
				So(errors.Is(err, ErrUnexpectedStatus), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "500")
			})
		})

		Convey("When it is slower than the client timeout", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(200 * time.Millisecond)
			}))
			defer srv.Close()

			_, err := New(srv.URL, WithTimeout(20*time.Millisecond)).Embed(ctx, []string{"a"})

			Convey("Then the call fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestClient_Probe(t *testing.T) {
	Convey("Given the health endpoint", t, func() {
		ctx := context.Background()

		Convey("Then a healthy service passes", func() {
			srv, _ := newServer(http.StatusOK, nil)
			defer srv.Close()
			So(New(srv.URL).Probe(ctx), ShouldBeNil)
		})

		Convey("Then an unhealthy service fails", func() {
			srv, _ := newServer(http.StatusServiceUnavailable, nil)
			defer srv.Close()
			So(errors.Is(New(srv.URL).Probe(ctx), ErrUnexpectedStatus), ShouldBeTrue)
		})

		Convey("Then an unreachable service fails", func() {
			srv, _ := newServer(http.StatusOK, nil)
			url := srv.URL
			srv.Close()
			So(New(url).Probe(ctx), ShouldNotBeNil)
		})
	})
}
