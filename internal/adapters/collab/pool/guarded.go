package pool

import (
	"context"

	"github.com/okian/introscore/internal/domain/scoring"
)

type guardedEmbedder struct {
	pool *Pool
	next scoring.Embedder
}

// GuardEmbedder routes every Embed call through p.
func GuardEmbedder(p *Pool, next scoring.Embedder) scoring.Embedder {
	if next == nil {
		return nil
	}
	return &guardedEmbedder{pool: p, next: next}
}

func (g *guardedEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	var out [][]float64
	err := g.pool.Do(ctx, func(ctx context.Context) error {
		var err error
		out, err = g.next.Embed(ctx, texts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type guardedChecker struct {
	pool *Pool
	next scoring.GrammarChecker
}

// GuardGrammarChecker routes every Check call through p.
func GuardGrammarChecker(p *Pool, next scoring.GrammarChecker) scoring.GrammarChecker {
	if next == nil {
		return nil
	}
	return &guardedChecker{pool: p, next: next}
}

func (g *guardedChecker) Check(ctx context.Context, text string) ([]scoring.GrammarIssue, error) {
	var out []scoring.GrammarIssue
	err := g.pool.Do(ctx, func(ctx context.Context) error {
		var err error
		out, err = g.next.Check(ctx, text)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
