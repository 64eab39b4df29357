// Package sampler submits transcripts to a running introscore server and
// summarizes the reports it returns.
package sampler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/okian/introscore/pkg/logger"
)

// Run executes a sampling run and writes a summary table to out.
func Run(ctx context.Context, config *Config, out io.Writer) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting introscore sample run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("files", len(config.Files)),
		logger.Int("repeat", config.Repeat),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout))

	if err := checkServiceHealth(ctx, config); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	samples := Bundled()
	if len(config.Files) > 0 {
		var err error
		if samples, err = LoadSamples(config.Files); err != nil {
			return nil, err
		}
	}
	samples = expand(samples, config.Repeat)

	results := submitSamples(ctx, config, samples)
	summarize(results, stats)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	if err := writeTable(out, results, config.Verbose); err != nil {
		return nil, fmt.Errorf("write summary: %w", err)
	}
	if config.OutputFile != "" {
		if err := saveResults(config.OutputFile, results); err != nil {
			logger.Get().Warn(ctx, "failed to save results to file", logger.Error(err))
		} else {
			logger.Get().Info(ctx, "results saved to file", logger.String("filename", config.OutputFile))
		}
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("submitted", stats.Submitted),
		logger.Int("scored", stats.Scored),
		logger.Int("rejected", stats.Rejected),
		logger.Int("failed", stats.Failed),
		logger.Float64("meanScore", stats.MeanScore),
		logger.Duration("maxLatency", stats.MaxLatency),
		logger.Duration("duration", stats.Duration))
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	client := newHTTPClient(config.Timeout)
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}
	return nil
}

func expand(samples []Sample, repeat int) []Sample {
	if repeat <= 1 {
		return samples
	}
	out := make([]Sample, 0, len(samples)*repeat)
	for _, s := range samples {
		for i := 0; i < repeat; i++ {
			out = append(out, s)
		}
	}
	return out
}

func summarize(results []Result, stats *Stats) {
	total := 0
	for _, r := range results {
		stats.Submitted++
		if d := time.Duration(r.LatencyMS) * time.Millisecond; d > stats.MaxLatency {
			stats.MaxLatency = d
		}
		switch {
		case r.Report != nil:
			stats.Scored++
			total += r.Report.OverallScore
		case r.Status == http.StatusBadRequest:
			stats.Rejected++
		default:
			stats.Failed++
		}
	}
	if stats.Scored > 0 {
		stats.MeanScore = float64(total) / float64(stats.Scored)
	}
}

func writeTable(out io.Writer, results []Result, verbose bool) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SAMPLE\tSTATUS\tOVERALL\tWORDS\tLATENCY\tDETAIL")
	for _, r := range results {
		if r.Report == nil {
			fmt.Fprintf(tw, "%s\t%d\t-\t-\t%dms\t%s\n", r.Name, r.Status, r.LatencyMS, r.Error)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%dms\t\n", r.Name, r.Status, r.Report.OverallScore, r.Report.WordCount, r.LatencyMS)
		if verbose {
			for _, c := range r.Report.PerCriterion {
				fmt.Fprintf(tw, "\t\t%d/%d\t\t\t%s: %s\n", c.Score, c.Weight, c.Name, c.Feedback)
			}
		}
	}
	return tw.Flush()
}

func saveResults(filename string, results []Result) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(filename, data, filePermission); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}
