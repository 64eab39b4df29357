// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New(ctx) builds a Config with defaults; Load(ctx) layers file and env on top.
// - Validate reports problems wrapped in ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile, when set, receives a copy of the log output rotated by size.
	LogFile       string `koanf:"log_file"`
	LogMaxSizeMB  int    `koanf:"log_max_size_mb"`
	LogMaxBackups int    `koanf:"log_max_backups"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// EmbeddingURL is the base URL of the sentence-embedding service.
	// Empty disables semantic flow scoring.
	EmbeddingURL string `koanf:"embedding_url"`

	// GrammarURL is the base URL of a LanguageTool server.
	// Empty disables grammar checking.
	GrammarURL      string `koanf:"grammar_url"`
	GrammarLanguage string `koanf:"grammar_language"`

	// CollaboratorTimeoutMS bounds each collaborator call. 0 means no timeout.
	CollaboratorTimeoutMS int `koanf:"collaborator_timeout_ms"`

	// CollaboratorWorkers caps in-flight calls per collaborator; 0 means runtime.NumCPU().
	CollaboratorWorkers   int `koanf:"collaborator_workers"`
	CollaboratorQueueSize int `koanf:"collaborator_queue_size"`

	// ProbeTimeoutMS bounds each startup availability probe.
	ProbeTimeoutMS int `koanf:"probe_timeout_ms"`

	// RateLimitRPS limits POST /score per process; 0 disables limiting.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`

	// CORSAllowedOrigins is a comma-separated origin list; empty disables CORS headers.
	CORSAllowedOrigins string `koanf:"cors_allowed_origins"`

	// MaxBodyBytes caps the request body of POST /score.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:              "info",
		LogMaxSizeMB:          50,
		LogMaxBackups:         3,
		Addr:                  ":9080",
		GrammarLanguage:       "en-US",
		CollaboratorTimeoutMS: 0,
		CollaboratorWorkers:   runtime.NumCPU(),
		CollaboratorQueueSize: 64,
		ProbeTimeoutMS:        3000,
		RateLimitRPS:          20,
		RateLimitBurst:        40,
		MaxBodyBytes:          1 << 20,
	}
}

// Validate checks the invariants Load relies on.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.RateLimitRPS < 0:
		return fmt.Errorf("%w: rate_limit_rps must be >= 0", ErrInvalidConfig)
	case c.CollaboratorWorkers < 0:
		return fmt.Errorf("%w: collaborator_workers must be >= 0", ErrInvalidConfig)
	case c.CollaboratorQueueSize < 0:
		return fmt.Errorf("%w: collaborator_queue_size must be >= 0", ErrInvalidConfig)
	case c.CollaboratorTimeoutMS < 0:
		return fmt.Errorf("%w: collaborator_timeout_ms must be >= 0", ErrInvalidConfig)
	case c.MaxBodyBytes <= 0:
		return fmt.Errorf("%w: max_body_bytes must be > 0", ErrInvalidConfig)
	}
	return nil
}

// CollaboratorTimeout returns the per-call collaborator timeout.
func (c *Config) CollaboratorTimeout() time.Duration {
	return time.Duration(c.CollaboratorTimeoutMS) * time.Millisecond
}

// ProbeTimeout returns the startup probe timeout.
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutMS) * time.Millisecond
}

// AllowedOrigins splits CORSAllowedOrigins.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
