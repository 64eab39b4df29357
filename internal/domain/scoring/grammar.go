package scoring

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/okian/introscore/internal/domain/model"
	"github.com/okian/introscore/internal/domain/rubric"
)

const (
	minGrammarWords   = 5
	errorsPer100Limit = 10
	maxListedIssues   = 5
)

const (
	grammarDisabledFeedback = "Grammar score is estimated (50/100) because grammar checking is disabled: " +
		"the grammar service was not available at startup."
	grammarShortFeedback = "Transcript is too short to reliably assess grammar. Assuming perfect score."
)

// GrammarScorer grades the density of grammar issues reported by a
// GrammarChecker. Without a checker it runs in degraded mode.
type GrammarScorer struct {
	checker GrammarChecker
}

// NewGrammarScorer creates a GrammarScorer. A nil checker selects degraded
// mode for the lifetime of the scorer.
func NewGrammarScorer(checker GrammarChecker) *GrammarScorer {
	return &GrammarScorer{checker: checker}
}

// Criterion implements Scorer.
func (s *GrammarScorer) Criterion() rubric.Criterion { return rubric.Grammar }

// Degraded reports whether the scorer runs without a checker.
func (s *GrammarScorer) Degraded() bool { return s.checker == nil }

// Score implements Scorer.
func (s *GrammarScorer) Score(ctx context.Context, t model.Transcript) (Result, error) {
	if s.checker == nil {
		return newResult(rubric.Grammar, degradedScore, grammarDisabledFeedback), nil
	}

	words := t.WordCount()
	if words < minGrammarWords {
		return newResult(rubric.Grammar, maxScore, grammarShortFeedback), nil
	}

	issues, err := s.checker.Check(ctx, t.Text())
	if err != nil {
		return Result{}, fmt.Errorf("check grammar: %w", err)
	}

	errorsPer100 := float64(len(issues)) / float64(words) * 100
	score := round((1 - math.Min(errorsPer100/errorsPer100Limit, 1)) * maxScore)

	var feedback string
	switch {
	case score >= 90:
		feedback = fmt.Sprintf("Excellent grammar (Errors/100 words: %.2f). Total errors found: %d.", errorsPer100, len(issues))
	case score >= 50:
		feedback = fmt.Sprintf("Minor grammatical issues (Errors/100 words: %.2f). Total errors found: %d. Review sentences like: %s.",
			errorsPer100, len(issues), summarizeIssues(issues))
	default:
		feedback = fmt.Sprintf("Significant grammar issues (Errors/100 words: %.2f). Total errors found: %d. Major errors include: %s.",
			errorsPer100, len(issues), summarizeIssues(issues))
	}
	return newResult(rubric.Grammar, score, feedback), nil
}

func summarizeIssues(issues []GrammarIssue) string {
	if len(issues) > maxListedIssues {
		issues = issues[:maxListedIssues]
	}
	parts := make([]string, len(issues))
	for i, is := range issues {
		parts[i] = fmt.Sprintf("'%s' -> Suggestion: [%s]", is.Context, strings.Join(is.Replacements, ", "))
	}
	return strings.Join(parts, "; ")
}
