// Package types contains common types used across the application
package types

// Risk classifies a subject line by its final score.
type Risk string

// Risk levels, ordered from best to worst.
const (
	RiskLow    Risk = "Low"
	RiskMedium Risk = "Medium"
	RiskHigh   Risk = "High"
)

// Report is the per-subject scoring result returned to clients.
type Report struct {
	Subject  string   `json:"subject"`
	Score    int      `json:"score"`
	Length   int      `json:"length"`
	SpamRisk Risk     `json:"spam_risk"`
	Warnings []string `json:"warnings"`
}

// BatchResult bundles the reports for one request together with the
// best-scoring subject of the batch.
type BatchResult struct {
	Results     []Report `json:"results"`
	BestSubject string   `json:"best_subject"`
}
