package scoring

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/introscore/internal/domain/model"
	"github.com/okian/introscore/internal/domain/rubric"
)

const (
	degradedScore = 50

	flowScale  = 125
	flowOffset = 50
)

const flowDisabledFeedback = "Flow score is estimated (50/100) because semantic analysis is disabled: " +
	"the embedding service was not available at startup."

// FlowScorer compares the transcript with the canonical introduction
// structure by embedding similarity. Without an embedder it runs in
// degraded mode and always returns a fixed estimate.
type FlowScorer struct {
	embedder Embedder
	target   string
}

// NewFlowScorer creates a FlowScorer. A nil embedder selects degraded mode
// for the lifetime of the scorer.
func NewFlowScorer(embedder Embedder) *FlowScorer {
	return &FlowScorer{embedder: embedder, target: rubric.TargetFlowDescription}
}

// Criterion implements Scorer.
func (s *FlowScorer) Criterion() rubric.Criterion { return rubric.Flow }

// Degraded reports whether the scorer runs without an embedder.
func (s *FlowScorer) Degraded() bool { return s.embedder == nil }

// Score implements Scorer.
func (s *FlowScorer) Score(ctx context.Context, t model.Transcript) (Result, error) {
	if s.embedder == nil {
		return newResult(rubric.Flow, degradedScore, flowDisabledFeedback), nil
	}

	vectors, err := s.embedder.Embed(ctx, []string{t.Text(), s.target})
	if err != nil {
		return Result{}, fmt.Errorf("embed transcript: %w", err)
	}
	if len(vectors) != 2 {
		return Result{}, fmt.Errorf("%w: expected 2 embeddings, got %d", ErrCollaborator, len(vectors))
	}
	similarity, err := CosineSimilarity(vectors[0], vectors[1])
	if err != nil {
		return Result{}, err
	}

	score := clamp(similarity*flowScale-flowOffset, minScore, maxScore)

	var feedback string
	switch {
	case score >= 80:
		feedback = fmt.Sprintf("Excellent structure. The introduction follows a logical, organized flow. Semantic similarity: %.2f", similarity)
	case score >= 50:
		feedback = fmt.Sprintf("Good structure. The major sections are present, but the order could be improved for a smoother presentation. Semantic similarity: %.2f", similarity)
	default:
		feedback = fmt.Sprintf("The flow is confusing. Try to reorder sections to follow the standard self-introduction structure. Semantic similarity: %.2f", similarity)
	}
	return newResult(rubric.Flow, round(score), feedback), nil
}

// CosineSimilarity returns the cosine of the angle between a and b. A zero
// vector has similarity 0 with anything.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: embedding dimensions differ (%d vs %d)", ErrCollaborator, len(a), len(b))
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}
