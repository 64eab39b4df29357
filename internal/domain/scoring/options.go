package scoring

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithEmbedder enables the semantic flow scorer. Leaving it unset, or
// passing nil, keeps flow scoring in degraded mode.
func WithEmbedder(e Embedder) Option {
	return func(en *Engine) {
		en.embedder = e
	}
}

// WithGrammarChecker enables grammar scoring. Leaving it unset, or passing
// nil, keeps grammar scoring in degraded mode.
func WithGrammarChecker(c GrammarChecker) Option {
	return func(en *Engine) {
		en.checker = c
	}
}

// WithMinWords sets the minimum transcript length accepted by the engine.
func WithMinWords(n int) Option {
	return func(en *Engine) {
		if n > 0 {
			en.minWords = n
		}
	}
}

// WithScorers replaces the rubric scorers. Intended for tests.
func WithScorers(scorers ...Scorer) Option {
	return func(en *Engine) {
		en.custom = scorers
	}
}
