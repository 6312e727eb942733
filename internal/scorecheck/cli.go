package scorecheck

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/okian/subjectscore/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "scorecheck_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the scorer check tool.
func ShowHelp() {
	os.Stdout.WriteString(`Subject Scorer Check Tool
=========================

Generates batches of synthetic subject lines, submits them to a running
scorer service, and verifies each response against a locally computed
reference.

Usage:
  go run cmd/scorecheck/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -batches int
        Number of batches to generate and submit (default 100)
  -batch-size int
        Subject lines per batch (default 20)
  -workers int
        Number of concurrent workers (default NumCPU*2)
  -timeout duration
        HTTP request timeout (default 30s)
  -tool
        Exercise the /tools/subject-line-scorer envelope endpoint
  -log string
        Log file for check output (default: scorecheck_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show help
`)
}
