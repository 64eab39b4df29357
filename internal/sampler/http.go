package sampler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/okian/introscore/internal/domain/types"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body any) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// submitSamples posts every sample using a fixed number of workers and
// returns the results in input order.
func submitSamples(ctx context.Context, config *Config, samples []Sample) []Result {
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/score"

	workers := config.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(samples))
	indexes := make(chan int, workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				results[idx] = submitSingle(ctx, client, url, samples[idx])
			}
		}()
	}

	go func() {
		defer close(indexes)
		for i := range samples {
			select {
			case <-ctx.Done():
				return
			case indexes <- i:
			}
		}
	}()

	wg.Wait()

	for i := range results {
		if results[i].Name == "" {
			results[i] = Result{Name: samples[i].Name, Error: "not submitted"}
		}
	}
	return results
}

func submitSingle(ctx context.Context, client *HTTPClient, url string, sample Sample) Result {
	res := Result{Name: sample.Name}
	start := time.Now()
	resp, err := client.Post(ctx, url, map[string]string{"transcript": sample.Transcript})
	res.LatencyMS = time.Since(start).Milliseconds()
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer resp.Body.Close()

	res.Status = resp.StatusCode
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	if resp.StatusCode == http.StatusOK {
		var report types.Report
		if err := json.Unmarshal(body, &report); err != nil {
			res.Error = "malformed report: " + err.Error()
			return res
		}
		res.Report = &report
		return res
	}

	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil || e.Error == "" {
		res.Error = http.StatusText(resp.StatusCode)
		return res
	}
	res.Error = e.Error
	return res
}
