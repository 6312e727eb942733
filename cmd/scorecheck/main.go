package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/subjectscore/internal/scorecheck"
)

// Default configuration constants.
const (
	defaultBatches      = 100
	defaultBatchSize    = 20
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultTimeout      = 30 * time.Second
	defaultCheckTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:9080", "Base URL of the service")
		batches   = flag.Int("batches", defaultBatches, "Number of batches to generate and submit")
		batchSize = flag.Int("batch-size", defaultBatchSize, "Subject lines per batch")
		workers   = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		useTool   = flag.Bool("tool", false, "Exercise the /tools/subject-line-scorer envelope endpoint")
		logFile   = flag.String("log", "", "Log file for check output (default: scorecheck_TIMESTAMP.log)")
		verbose   = flag.Bool("verbose", false, "Enable verbose logging")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		scorecheck.ShowHelp()
		return
	}

	// Setup logging
	if err := scorecheck.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultCheckTimeout)
	defer cancel()

	// Create check configuration
	config := &scorecheck.Config{
		BaseURL:   *baseURL,
		Batches:   *batches,
		BatchSize: *batchSize,
		Workers:   *workers,
		Timeout:   *timeout,
		UseTool:   *useTool,
		LogFile:   *logFile,
		Verbose:   *verbose,
	}

	// Run the check
	if err := scorecheck.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Check failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
