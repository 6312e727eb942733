package scorecheck

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"github.com/okian/subjectscore/pkg/logger"
)

// Constants for subject shape cases. The mix deliberately covers
// every scoring rule at least once.
const (
	caseCleanShort = 0
	caseCleanLong  = 1
	caseVeryLong   = 2
	caseSpammy     = 3
	caseShouty     = 4
	caseExcited    = 5
	caseKitchen    = 6
	caseEmpty      = 7

	shapeCount = 8
)

// cleanSubjects are unremarkable subjects that should score 100.
var cleanSubjects = []string{
	"Quick question about your trial",
	"Notes from today's standup",
	"Your invoice for March",
	"Welcome to the beta",
	"Schedule change for next week",
}

// spamFragments each contain at least one listed spam term.
var spamFragments = []string{
	"Free shipping on your order",
	"Act now to keep your winner status",
	"Limited time offer, guaranteed savings",
	"Urgent: claim your cash reward",
	"100% satisfaction guarantee inside",
}

// randomInt returns a random int in [0, n) using crypto/rand.
func randomInt(n int64) int64 {
	v, _ := rand.Int(rand.Reader, big.NewInt(n))
	return v.Int64()
}

// generateBatches creates the configured number of subject line batches.
func generateBatches(ctx context.Context, config *Config, stats *Stats) ([]Batch, error) {
	logger.Get().Info(ctx, "generating subject line batches",
		logger.Int("batches", config.Batches),
		logger.Int("batchSize", config.BatchSize))

	batches := make([]Batch, config.Batches)
	for i := range batches {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during batch generation: %w", ctx.Err())
		default:
		}

		lines := make([]string, config.BatchSize)
		for j := range lines {
			lines[j] = generateSubject()
		}
		batches[i] = Batch{SubjectLines: lines}
	}

	stats.BatchesGenerated = len(batches)
	logger.Get().Info(ctx, "generated batches successfully", logger.Int("count", len(batches)))

	return batches, nil
}

// generateSubject creates a single subject line with a randomly chosen
// shape. A uuid fragment keeps most lines unique so the service's
// report cache is exercised on both hit and miss paths.
func generateSubject() string {
	tag := uuid.NewString()[:8]

	switch randomInt(shapeCount) {
	case caseCleanShort:
		return pick(cleanSubjects) + " " + tag
	case caseCleanLong:
		// Over 45 characters, a length penalty but nothing else
		return padTo(pick(cleanSubjects)+" ref "+tag, 46)
	case caseVeryLong:
		return padTo(pick(cleanSubjects)+" ref "+tag, 70)
	case caseSpammy:
		return pick(spamFragments) + " " + tag
	case caseShouty:
		return "PLEASE read before Friday " + tag
	case caseExcited:
		return "Don't miss this!! Really!! " + tag
	case caseKitchen:
		// Spam terms, shouting, and punctuation in one line
		return "WINNER winner!! free cash guaranteed " + tag
	case caseEmpty:
		// Whitespace-only lines exercise the empty branch
		return "   "
	default:
		return pick(cleanSubjects)
	}
}

// pick returns a random element of items.
func pick(items []string) string {
	return items[randomInt(int64(len(items)))]
}

// padTo right-pads s with filler words until it reaches at least n
// characters. The filler is lowercase and spam-free.
func padTo(s string, n int) string {
	for len(s) < n {
		s += " and then some"
	}
	return strings.TrimSpace(s)
}
