package scoring

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/okian/introscore/internal/domain/model"
	"github.com/okian/introscore/internal/domain/rubric"
	"github.com/okian/introscore/internal/domain/types"
)

const defaultMinWords = 10

// Availability describes which collaborators the engine was built with.
type Availability struct {
	Embedding bool `json:"embedding"`
	Grammar   bool `json:"grammar"`
}

// Engine validates a transcript, runs every criterion scorer and combines
// their results under the fixed rubric weights. It is safe for concurrent use.
type Engine struct {
	embedder Embedder
	checker  GrammarChecker
	minWords int
	custom   []Scorer

	scorers []Scorer
}

// NewEngine builds an engine. Collaborator availability is fixed here and
// never re-evaluated.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{minWords: defaultMinWords}
	for _, opt := range opts {
		opt(e)
	}

	if e.custom != nil {
		e.scorers = e.custom
	} else {
		e.scorers = []Scorer{
			NewContentScorer(),
			NewFlowScorer(e.embedder),
			NewVocabularyScorer(),
			NewGrammarScorer(e.checker),
			NewClarityScorer(),
		}
	}
	return e
}

// Availability reports the collaborators the engine uses.
func (e *Engine) Availability() Availability {
	return Availability{Embedding: e.embedder != nil, Grammar: e.checker != nil}
}

// MinWords returns the minimum accepted transcript length.
func (e *Engine) MinWords() int { return e.minWords }

// Score produces the report for text. It fails with ErrInputTooShort before
// running any scorer when text is below the minimum length; any scorer
// failure aborts the request.
func (e *Engine) Score(ctx context.Context, text string) (types.Report, error) {
	t := model.NewTranscript(text)
	words := t.WordCount()
	if words < e.minWords {
		return types.Report{}, fmt.Errorf("%w: got %d words, need at least %d", ErrInputTooShort, words, e.minWords)
	}

	results := make([]Result, len(e.scorers))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range e.scorers {
		i, s := i, s
		g.Go(func() error {
			res, err := s.Score(gctx, t)
			if err != nil {
				return fmt.Errorf("score %s: %w", s.Criterion(), err)
			}
			res.Criterion = s.Criterion()
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return types.Report{}, err
	}

	return Combine(words, results), nil
}

// Combine assembles a report from criterion results. Each weight is taken
// from the rubric, never from the result itself.
func Combine(words int, results []Result) types.Report {
	report := types.Report{
		WordCount:           words,
		PerCriterion:        make([]types.CriterionScore, 0, len(results)),
		TotalPossibleWeight: rubric.TotalPossibleWeight,
	}

	total := 0.0
	for _, r := range results {
		entry := types.CriterionScore{
			ID:       string(r.Criterion),
			Name:     r.Criterion.Name(),
			Score:    r.Score,
			Weight:   r.Criterion.Weight(),
			Feedback: r.Feedback,
		}
		total += entry.Contribution()
		report.PerCriterion = append(report.PerCriterion, entry)
	}

	overall := round(total / rubric.TotalPossibleWeight * maxScore)
	report.OverallScore = int(clamp(float64(overall), minScore, maxScore))
	return report
}
