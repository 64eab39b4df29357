package scoring

import (
	"context"
	"fmt"

	"github.com/okian/introscore/internal/domain/model"
	"github.com/okian/introscore/internal/domain/rubric"
)

type ttrBand struct {
	min      float64
	score    int
	template string
}

// Bands are checked top-down; the last one catches everything below 0.3.
var ttrBands = []ttrBand{
	{0.9, 100, "Excellent vocabulary (TTR: %.2f). You used a high diversity of words."},
	{0.7, 80, "Good vocabulary (TTR: %.2f). The word choices are diverse."},
	{0.5, 60, "Average vocabulary (TTR: %.2f). Consider using more varied language."},
	{0.3, 40, "Limited vocabulary (TTR: %.2f). Too much repetition of common words."},
	{0, 20, "Very limited vocabulary (TTR: %.2f). Needs significant improvement in word choice variety."},
}

// VocabularyScorer grades lexical diversity by type-token ratio.
type VocabularyScorer struct{}

// NewVocabularyScorer creates a VocabularyScorer.
func NewVocabularyScorer() *VocabularyScorer { return &VocabularyScorer{} }

// Criterion implements Scorer.
func (s *VocabularyScorer) Criterion() rubric.Criterion { return rubric.Vocabulary }

// Score implements Scorer.
func (s *VocabularyScorer) Score(_ context.Context, t model.Transcript) (Result, error) {
	ttr := TypeTokenRatio(t)
	score, feedback := vocabularyBand(ttr)
	return newResult(rubric.Vocabulary, score, feedback), nil
}

// TypeTokenRatio returns distinct/total tokens, or 0 for an empty transcript.
func TypeTokenRatio(t model.Transcript) float64 {
	total := t.WordCount()
	if total == 0 {
		return 0
	}
	return float64(t.DistinctTokens()) / float64(total)
}

func vocabularyBand(ttr float64) (int, string) {
	for _, b := range ttrBands {
		if ttr >= b.min {
			return b.score, fmt.Sprintf(b.template, ttr)
		}
	}
	last := ttrBands[len(ttrBands)-1]
	return last.score, fmt.Sprintf(last.template, ttr)
}
