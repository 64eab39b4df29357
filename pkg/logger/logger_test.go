package logger

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given a freshly initialized logger", t, func() {
		var buf bytes.Buffer
		So(Init(WithOutput(&buf)), ShouldBeNil)
		defer func() { _ = Sync() }()

		ctx := context.Background()

		Convey("Then info lines carry fields and the caller", func() {
			Get().Info(ctx, "scored transcript", Int("words", 42), String("k", "v"))
			So(buf.String(), ShouldContainSubstring, "scored transcript")
			So(buf.String(), ShouldContainSubstring, "words=42")
			So(buf.String(), ShouldContainSubstring, "logger_test.go")
		})

		Convey("Then debug lines are dropped at the default level", func() {
			Get().Debug(ctx, "hidden")
			So(buf.String(), ShouldNotContainSubstring, "hidden")
		})

		Convey("When the level is lowered to debug", func() {
			So(SetLevelString("DEBUG"), ShouldBeNil)
			defer func() { _ = SetLevelString("info") }()
			Get().Debug(ctx, "visible")
			So(buf.String(), ShouldContainSubstring, "visible")
		})

		Convey("Then named and enriched loggers keep their attributes", func() {
			Named("engine").With(Bool("degraded", true)).Warn(ctx, "fallback", Error(errors.New("boom")))
			So(buf.String(), ShouldContainSubstring, "component=engine")
			So(buf.String(), ShouldContainSubstring, "degraded=true")
			So(buf.String(), ShouldContainSubstring, "error=boom")
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		So(SetLevelString("warning"), ShouldBeNil)
		So(SetLevelString(" error "), ShouldBeNil)
		So(SetLevelString(""), ShouldBeNil)
		So(SetLevelString("verbose"), ShouldNotBeNil)
	})
}

func TestLoggerFileRotation(t *testing.T) {
	Convey("Given a logger writing to a file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "logs", "introscore.log")
		var buf bytes.Buffer
		So(Init(WithOutput(&buf), WithFile(path, 1, 1)), ShouldBeNil)

		Get().Info(context.Background(), "to both sinks")
		So(Sync(), ShouldBeNil)

		data, err := os.ReadFile(path)
		So(err, ShouldBeNil)
		So(string(data), ShouldContainSubstring, "to both sinks")
		So(buf.String(), ShouldContainSubstring, "to both sinks")

		rotator = nil
	})
}

func TestNop(t *testing.T) {
	Convey("Nop discards output without panicking", t, func() {
		So(func() { Nop().Named("x").Error(context.Background(), "ignored") }, ShouldNotPanic)
	})
}
