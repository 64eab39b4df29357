package scoring

import (
	"context"
	"fmt"

	"github.com/okian/introscore/internal/domain/model"
	"github.com/okian/introscore/internal/domain/rubric"
)

// ClarityScorer grades the filler-word rate. Fillers are matched token by
// token, so multi-word fillers such as "you know" never count.
type ClarityScorer struct {
	isFiller func(string) bool
}

// NewClarityScorer creates a scorer over the rubric's filler words.
func NewClarityScorer() *ClarityScorer {
	return &ClarityScorer{isFiller: rubric.IsFiller}
}

// Criterion implements Scorer.
func (s *ClarityScorer) Criterion() rubric.Criterion { return rubric.Clarity }

// Score implements Scorer.
func (s *ClarityScorer) Score(_ context.Context, t model.Transcript) (Result, error) {
	total := t.WordCount()
	if total == 0 {
		return newResult(rubric.Clarity, maxScore, "Transcript is empty. Assuming perfect clarity."), nil
	}

	count := t.CountTokens(s.isFiller)
	rate := float64(count) / float64(total) * 100

	var (
		score    int
		feedback string
	)
	switch {
	case rate <= 1.0:
		score = 100
		feedback = fmt.Sprintf("Excellent clarity (%.2f%% filler rate). No unnecessary filler words found.", rate)
	case rate <= 3.0:
		score = 80
		feedback = fmt.Sprintf("Good clarity (%.2f%% filler rate). Few minor fillers found (%d total). Try to eliminate these.", rate, count)
	case rate <= 5.0:
		score = 60
		feedback = fmt.Sprintf("Moderate clarity (%.2f%% filler rate). %d fillers found. Focus on speaking more directly.", rate, count)
	case rate <= 10.0:
		score = 40
		feedback = fmt.Sprintf("Low clarity (%.2f%% filler rate). %d fillers found. This significantly impacts perceived confidence.", rate, count)
	default:
		score = 20
		feedback = fmt.Sprintf("Very low clarity (%.2f%% filler rate). Excessive use of filler words (%d total). Needs immediate attention.", rate, count)
	}
	return newResult(rubric.Clarity, score, feedback), nil
}
