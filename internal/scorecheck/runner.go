package scorecheck

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/subjectscore/pkg/logger"
)

// Runner configuration constants.
const (
	StatusOK             = 200
	PercentageMultiplier = 100
)

// Run executes the complete scorer check.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting subject scorer check",
		logger.String("baseURL", config.BaseURL),
		logger.Int("batches", config.Batches),
		logger.Int("batchSize", config.BatchSize),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.Bool("tool", config.UseTool),
		logger.String("logFile", config.LogFile),
		logger.Bool("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate batches
	batches, err := generateBatches(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("batch generation failed: %w", err)
	}

	// Step 3: Submit and verify concurrently
	if err := submitBatches(ctx, config, batches, stats); err != nil {
		return fmt.Errorf("batch submission failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	if stats.Mismatches > 0 {
		return fmt.Errorf("check found %d mismatched reports", stats.Mismatches)
	}

	logger.Get().Info(ctx, "check completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/health"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// displayFinalStats prints the final check statistics.
func displayFinalStats(stats *Stats) {
	var successRate, batchesPerSecond float64

	if stats.BatchesSubmitted > 0 {
		successRate = float64(stats.BatchesSuccessful) / float64(stats.BatchesSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		batchesPerSecond = float64(stats.BatchesSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("batchesGenerated", stats.BatchesGenerated),
		logger.Int("batchesSubmitted", stats.BatchesSubmitted),
		logger.Int("batchesSuccessful", stats.BatchesSuccessful),
		logger.Int("batchesFailed", stats.BatchesFailed),
		logger.Int("subjectsScored", stats.SubjectsScored),
		logger.Int("mismatches", stats.Mismatches),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("batchesPerSecond", batchesPerSecond))
}
