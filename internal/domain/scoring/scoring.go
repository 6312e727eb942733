// Package scoring implements the heuristic subject line scorer.
package scoring

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/okian/subjectscore/internal/domain/types"
)

// Scoring rule constants. Penalties are subtracted from a perfect
// score of 100 and the result is clamped back into [0, 100].
const (
	maxScore = 100

	veryLongLength  = 60
	longLength      = 45
	veryLongPenalty = 25
	longPenalty     = 15

	spamTermPenalty = 20

	exclamationLimit   = 2
	exclamationPenalty = 10

	allCapsPenalty = 10

	lowRiskFloor    = 80
	mediumRiskFloor = 60
)

// Warning texts. Clients match on these strings, so they are part of
// the API contract.
const (
	warnEmpty        = "Empty subject line"
	warnVeryLong     = "Too long (60+ characters)"
	warnLong         = "Long (45+ characters)"
	warnExclamations = "Too many exclamation marks"
	warnAllCaps      = "Contains ALL CAPS words"
)

// allCapsPattern matches a word-bounded run of 4 or more uppercase
// ASCII letters, e.g. "NASA" or "FREE".
var allCapsPattern = regexp.MustCompile(`\b[A-Z]{4,}\b`)

// defaultSpamTerms is the canonical ordered term list. Order matters:
// warnings are appended in evaluation order.
var defaultSpamTerms = []string{
	"free", "guarantee", "guaranteed", "urgent",
	"act now", "limited time", "winner", "cash", "100%",
}

// Scorer evaluates raw subject lines. Implementations must be total:
// any input, including empty strings and empty batches, produces a
// well-formed result.
type Scorer interface {
	// Score evaluates a single raw subject line.
	Score(ctx context.Context, subject string) types.Report

	// ScoreBatch evaluates each line independently, preserving input
	// order, and picks the best-scoring subject.
	ScoreBatch(ctx context.Context, subjects []string) types.BatchResult
}

// Option applies a configuration option to the RuleScorer.
type Option func(*RuleScorer)

// WithSpamTerms replaces the spam term list. Terms are lowercased and
// blank entries are dropped; an empty list falls back to the defaults.
func WithSpamTerms(terms []string) Option {
	return func(s *RuleScorer) {
		cleaned := make([]string, 0, len(terms))
		for _, t := range terms {
			t = strings.ToLower(strings.TrimSpace(t))
			if t != "" {
				cleaned = append(cleaned, t)
			}
		}
		if len(cleaned) > 0 {
			s.spamTerms = cleaned
		}
	}
}

// RuleScorer implements Scorer with fixed heuristic rules.
type RuleScorer struct {
	spamTerms []string
}

// NewRuleScorer creates a rule scorer with configuration options.
func NewRuleScorer(opts ...Option) *RuleScorer {
	s := &RuleScorer{
		spamTerms: defaultSpamTerms,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SpamTerms returns the active term list in evaluation order.
func (s *RuleScorer) SpamTerms() []string {
	out := make([]string, len(s.spamTerms))
	copy(out, s.spamTerms)
	return out
}

// Score evaluates a single raw subject line.
func (s *RuleScorer) Score(_ context.Context, subject string) types.Report {
	subject = strings.TrimSpace(subject)
	length := utf8.RuneCountInString(subject)

	if length == 0 {
		return types.Report{
			Subject:  subject,
			Score:    0,
			Length:   0,
			SpamRisk: types.RiskHigh,
			Warnings: []string{warnEmpty},
		}
	}

	score := maxScore
	warnings := []string{}

	switch {
	case length > veryLongLength:
		score -= veryLongPenalty
		warnings = append(warnings, warnVeryLong)
	case length > longLength:
		score -= longPenalty
		warnings = append(warnings, warnLong)
	}

	// Each listed term penalizes once, no matter how often it occurs.
	lower := strings.ToLower(subject)
	for _, term := range s.spamTerms {
		if strings.Contains(lower, term) {
			score -= spamTermPenalty
			warnings = append(warnings, fmt.Sprintf("Spam term detected: '%s'", term))
		}
	}

	if strings.Count(subject, "!") >= exclamationLimit {
		score -= exclamationPenalty
		warnings = append(warnings, warnExclamations)
	}

	// Flat penalty regardless of how many qualifying runs exist.
	if allCapsPattern.MatchString(subject) {
		score -= allCapsPenalty
		warnings = append(warnings, warnAllCaps)
	}

	if score < 0 {
		score = 0
	}
	if score > maxScore {
		score = maxScore
	}

	return types.Report{
		Subject:  subject,
		Score:    score,
		Length:   length,
		SpamRisk: riskFor(score),
		Warnings: warnings,
	}
}

// ScoreBatch evaluates each line independently and aggregates the
// batch winner. The first maximal score wins ties.
func (s *RuleScorer) ScoreBatch(ctx context.Context, subjects []string) types.BatchResult {
	results := make([]types.Report, 0, len(subjects))
	for _, subject := range subjects {
		results = append(results, s.Score(ctx, subject))
	}
	return types.BatchResult{
		Results:     results,
		BestSubject: BestSubject(results),
	}
}

// BestSubject returns the subject of the first report with the
// maximum score, or "" for an empty slice.
func BestSubject(reports []types.Report) string {
	if len(reports) == 0 {
		return ""
	}
	best := reports[0]
	for _, r := range reports[1:] {
		if r.Score > best.Score {
			best = r
		}
	}
	return best.Subject
}

// riskFor derives the ordinal risk classification from a final score.
func riskFor(score int) types.Risk {
	switch {
	case score >= lowRiskFloor:
		return types.RiskLow
	case score >= mediumRiskFloor:
		return types.RiskMedium
	default:
		return types.RiskHigh
	}
}
