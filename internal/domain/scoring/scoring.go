// Package scoring implements the self-introduction rubric: five independent
// criterion scorers and the engine that combines them into one report.
package scoring

import (
	"context"
	"math"

	"github.com/okian/introscore/internal/domain/model"
	"github.com/okian/introscore/internal/domain/rubric"
)

const (
	maxScore = 100
	minScore = 0
)

// Result is the outcome of one criterion scorer.
type Result struct {
	Criterion rubric.Criterion
	Score     int
	// Weight is informational only; the engine always replaces it with
	// the rubric weight for Criterion.
	Weight   int
	Feedback string
}

// Scorer scores a transcript on a single criterion. Implementations must be
// safe for concurrent use and must not mutate shared state.
type Scorer interface {
	Criterion() rubric.Criterion
	Score(ctx context.Context, t model.Transcript) (Result, error)
}

// Embedder turns texts into embedding vectors, one per input, in order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// GrammarIssue is one problem flagged by a grammar checker.
type GrammarIssue struct {
	Context      string
	Replacements []string
}

// GrammarChecker flags grammar issues in a text.
type GrammarChecker interface {
	Check(ctx context.Context, text string) ([]GrammarIssue, error)
}

func newResult(c rubric.Criterion, score int, feedback string) Result {
	return Result{Criterion: c, Score: score, Weight: c.Weight(), Feedback: feedback}
}

// round rounds half to even, matching the rubric's reference rounding.
func round(x float64) int {
	return int(math.RoundToEven(x))
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
