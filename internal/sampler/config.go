package sampler

import (
	"time"

	"github.com/okian/introscore/internal/domain/types"
)

// Config holds configuration for a sampling run.
type Config struct {
	BaseURL    string        // Base URL of the service
	Files      []string      // Transcript files; empty means the bundled samples
	Repeat     int           // How many times each transcript is submitted
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Optional JSON file receiving every result
	Verbose    bool          // Print per-criterion feedback
}

// Sample is one named transcript.
type Sample struct {
	Name       string `json:"name"`
	Transcript string `json:"transcript"`
}

// Result is the outcome of submitting one sample.
type Result struct {
	Name      string        `json:"name"`
	Status    int           `json:"status"`
	Report    *types.Report `json:"report,omitempty"`
	Error     string        `json:"error,omitempty"`
	LatencyMS int64         `json:"latency_ms"`
}

// Stats holds run statistics.
type Stats struct {
	Submitted  int
	Scored     int
	Rejected   int
	Failed     int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	MeanScore  float64
	MaxLatency time.Duration
}
