package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/introscore/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"INTROSCORE_CONFIG",
	"INTROSCORE_ADDR",
	"INTROSCORE_LOG_LEVEL",
	"INTROSCORE_EMBEDDING_URL",
	"INTROSCORE_GRAMMAR_URL",
	"INTROSCORE_COLLABORATOR_TIMEOUT_MS",
	"INTROSCORE_COLLABORATOR_WORKERS",
	"INTROSCORE_RATE_LIMIT_RPS",
	"INTROSCORE_CORS_ALLOWED_ORIGINS",
}

func clearConfigEnvVars() {
	for _, name := range configEnvVars {
		_ = os.Unsetenv(name)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "introscore.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should match New", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New(ctx))
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("INTROSCORE_ADDR", ":8080")
			_ = os.Setenv("INTROSCORE_GRAMMAR_URL", "http://languagetool:8010")
			_ = os.Setenv("INTROSCORE_COLLABORATOR_TIMEOUT_MS", "2500")
			_ = os.Setenv("INTROSCORE_RATE_LIMIT_RPS", "0.5")
			_ = os.Setenv("INTROSCORE_CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.GrammarURL, convey.ShouldEqual, "http://languagetool:8010")
				convey.So(cfg.CollaboratorTimeout(), convey.ShouldEqual, 2500*time.Millisecond)
				convey.So(cfg.RateLimitRPS, convey.ShouldEqual, 0.5)
				convey.So(cfg.AllowedOrigins(), convey.ShouldHaveLength, 2)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			path := writeConfigFile(t, `
addr: ":9090"
embedding_url: "http://embedder:8000"
collaborator_workers: 2
log_level: debug
`)
			_ = os.Setenv("INTROSCORE_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.EmbeddingURL, convey.ShouldEqual, "http://embedder:8000")
				convey.So(cfg.CollaboratorWorkers, convey.ShouldEqual, 2)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.GrammarLanguage, convey.ShouldEqual, "en-US")
			})

			convey.Convey("And env vars take precedence over the file", func() {
				_ = os.Setenv("INTROSCORE_ADDR", ":7070")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.EmbeddingURL, convey.ShouldEqual, "http://embedder:8000")
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("INTROSCORE_CONFIG", "/non/existent/introscore.yaml")

			_, err := config.Load(ctx)

			convey.Convey("Then loading fails", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a numeric env var is not a number", func() {
			_ = os.Setenv("INTROSCORE_COLLABORATOR_WORKERS", "many")

			_, err := config.Load(ctx)

			convey.Convey("Then loading fails", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When addr is set to empty", func() {
			_ = os.Setenv("INTROSCORE_ADDR", "")

			_, err := config.Load(ctx)

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the rate limit is negative", func() {
			_ = os.Setenv("INTROSCORE_RATE_LIMIT_RPS", "-3")

			_, err := config.Load(ctx)

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
