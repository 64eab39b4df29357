package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/introscore/internal/sampler"
)

// Default configuration constants.
const (
	defaultWorkers    = 4
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		repeat     = flag.Int("repeat", 1, "Submit each transcript this many times")
		workers    = flag.Int("workers", defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Write every result as JSON to this file")
		logFile    = flag.String("log", "", "Also write logs to this file")
		verbose    = flag.Bool("verbose", false, "Print per-criterion scores and feedback")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		sampler.ShowHelp()
		return
	}

	if err := sampler.SetupLogging(*logFile, *verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &sampler.Config{
		BaseURL:    *baseURL,
		Files:      flag.Args(),
		Repeat:     *repeat,
		Workers:    *workers,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		Verbose:    *verbose,
	}

	stats, err := sampler.Run(ctx, config, os.Stdout)
	if err != nil {
		os.Stderr.WriteString("Sample run failed: " + err.Error() + "\n")
		os.Exit(1)
	}
	if stats.Failed > 0 {
		os.Exit(1)
	}
}
