package sampler

import (
	"fmt"
	"os"

	"github.com/okian/introscore/pkg/logger"
)

// SetupLogging initializes the logger, teeing into logFile when set.
func SetupLogging(logFile string, verbose bool) error {
	var opts []logger.Option
	if logFile != "" {
		opts = append(opts, logger.WithFile(logFile, 0, 0))
	}
	if err := logger.Init(opts...); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the sample tool.
func ShowHelp() {
	os.Stdout.WriteString(`Introscore Sample Tool
======================

Posts transcripts to a running introscore server and prints the reports.

Usage:
  go run ./cmd/score-sample [options] [transcript files...]

With no files, a bundled set of sample introductions is used.

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -repeat int
        Submit each transcript this many times (default 1)
  -workers int
        Number of concurrent workers (default 4)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Write every result as JSON to this file
  -log string
        Also write logs to this file
  -verbose
        Print per-criterion scores and feedback
  -help
        Show this help message

Examples:
  go run ./cmd/score-sample
  go run ./cmd/score-sample -verbose intro1.txt intro2.txt
  go run ./cmd/score-sample -repeat 50 -workers 16 -output results.json
`)
}
