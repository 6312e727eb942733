package scorecheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// toolEnvelope wraps a batch for the /tools endpoint.
type toolEnvelope struct {
	Parameters Batch `json:"parameters"`
}

// submitBatches submits batches concurrently and verifies each response.
func submitBatches(ctx context.Context, config *Config, batches []Batch, stats *Stats) error {
	log.Printf("submitting %d batches with %d workers...", len(batches), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/subject-line-scorer"
	if config.UseTool {
		url = config.BaseURL + "/tools/subject-line-scorer"
	}

	// Counters for statistics
	var (
		submitted  int64
		successful int64
		failed     int64
		subjects   int64
		mismatches int64
	)

	// Create worker pool
	batchChan := make(chan Batch, config.Workers*2)
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for batch := range batchChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				result, err := submitSingleBatch(ctx, client, config, url, batch)
				atomic.AddInt64(&submitted, 1)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						log.Printf("batch submission failed: %v", err)
					}
					continue
				}

				atomic.AddInt64(&subjects, int64(len(result.Results)))
				if n := verifyBatch(batch, result); n > 0 {
					atomic.AddInt64(&mismatches, int64(n))
					atomic.AddInt64(&failed, 1)
					continue
				}
				atomic.AddInt64(&successful, 1)
			}
		}()
	}

	// Send batches to workers
	go func() {
		defer close(batchChan)
		for _, batch := range batches {
			select {
			case <-ctx.Done():
				return
			case batchChan <- batch:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Update stats
	stats.BatchesSubmitted = int(atomic.LoadInt64(&submitted))
	stats.BatchesSuccessful = int(atomic.LoadInt64(&successful))
	stats.BatchesFailed = int(atomic.LoadInt64(&failed))
	stats.SubjectsScored = int(atomic.LoadInt64(&subjects))
	stats.Mismatches = int(atomic.LoadInt64(&mismatches))

	log.Printf(`batch submission completed:
   Successful: %d
   Failed: %d
   Mismatched reports: %d
`, stats.BatchesSuccessful, stats.BatchesFailed, stats.Mismatches)

	return nil
}

// submitSingleBatch submits one batch and decodes the response.
func submitSingleBatch(ctx context.Context, client *HTTPClient, config *Config, url string, batch Batch) (*BatchResult, error) {
	var payload interface{} = batch
	if config.UseTool {
		payload = toolEnvelope{Parameters: batch}
	}

	resp, err := client.Post(ctx, url, payload)
	if err != nil {
		return nil, fmt.Errorf("post failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var result BatchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}
