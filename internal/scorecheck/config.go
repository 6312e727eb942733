package scorecheck

import "time"

// Config holds configuration for the scorer check run
type Config struct {
	BaseURL   string        // Base URL of the service
	Batches   int           // Number of batches to generate
	BatchSize int           // Subject lines per batch
	Workers   int           // Number of concurrent workers
	Timeout   time.Duration // HTTP request timeout
	UseTool   bool          // Exercise the tool envelope endpoint instead of the plain one
	LogFile   string        // Log file for check output
	Verbose   bool          // Enable verbose logging
}

// Batch is one generated request payload.
type Batch struct {
	SubjectLines []string `json:"subject_lines"`
}

// Report mirrors the service's per-subject report.
type Report struct {
	Subject  string   `json:"subject"`
	Score    int      `json:"score"`
	Length   int      `json:"length"`
	SpamRisk string   `json:"spam_risk"`
	Warnings []string `json:"warnings"`
}

// BatchResult mirrors the service's batch response.
type BatchResult struct {
	Results     []Report `json:"results"`
	BestSubject string   `json:"best_subject"`
}

// Stats holds check statistics
type Stats struct {
	BatchesGenerated  int
	BatchesSubmitted  int
	BatchesSuccessful int
	BatchesFailed     int
	SubjectsScored    int
	Mismatches        int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
