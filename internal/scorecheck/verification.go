package scorecheck

import (
	"context"
	"log"

	"github.com/okian/subjectscore/internal/domain/scoring"
	"github.com/okian/subjectscore/internal/domain/types"
)

// reference recomputes reports locally with the same rule set the
// service ships with.
var reference = scoring.NewRuleScorer()

// verifyBatch compares the service response for one batch against a
// locally computed reference and returns the number of mismatched
// reports. Any structural problem (wrong result count, wrong best
// subject) counts as one mismatch.
func verifyBatch(batch Batch, result *BatchResult) int {
	expected := reference.ScoreBatch(context.Background(), batch.SubjectLines)

	if len(result.Results) != len(expected.Results) {
		log.Printf("result count mismatch: got %d, want %d", len(result.Results), len(expected.Results))
		return 1
	}

	mismatches := 0
	for i, got := range result.Results {
		want := expected.Results[i]
		if !reportsEqual(got, want) {
			mismatches++
			log.Printf("report mismatch at %d: got %+v, want %+v", i, got, want)
			continue
		}
		// Invariant: scores always land in [0, 100].
		if got.Score < 0 || got.Score > 100 {
			mismatches++
			log.Printf("score out of range at %d: %d", i, got.Score)
		}
	}

	if result.BestSubject != expected.BestSubject {
		mismatches++
		log.Printf("best_subject mismatch: got %q, want %q", result.BestSubject, expected.BestSubject)
	}

	return mismatches
}

// reportsEqual compares a service report against a locally computed
// one field by field, including warning order.
func reportsEqual(got Report, want types.Report) bool {
	if got.Subject != want.Subject ||
		got.Score != want.Score ||
		got.Length != want.Length ||
		got.SpamRisk != string(want.SpamRisk) ||
		len(got.Warnings) != len(want.Warnings) {
		return false
	}
	for i := range got.Warnings {
		if got.Warnings[i] != want.Warnings[i] {
			return false
		}
	}
	return true
}
