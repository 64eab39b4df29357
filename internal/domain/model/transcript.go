// Package model contains domain models passed between layers.
package model

import (
	"regexp"
	"strings"
)

// Word tokens are maximal runs of Unicode letters, digits and underscores.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokenize lowercases text and returns its word tokens in order.
// Punctuation is discarded; empty or blank text yields no tokens.
func Tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// WordCount returns the number of word tokens in text.
func WordCount(text string) int {
	return len(Tokenize(text))
}

// Transcript is an immutable, pre-tokenized view of one submitted text.
type Transcript struct {
	text   string
	lower  string
	tokens []string
}

// NewTranscript tokenizes text once so every scorer shares the result.
func NewTranscript(text string) Transcript {
	lower := strings.ToLower(text)
	return Transcript{
		text:   text,
		lower:  lower,
		tokens: wordPattern.FindAllString(lower, -1),
	}
}

// Text returns the transcript as submitted.
func (t Transcript) Text() string { return t.text }

// Lower returns the lowercased transcript.
func (t Transcript) Lower() string { return t.lower }

// WordCount returns the number of tokens.
func (t Transcript) WordCount() int { return len(t.tokens) }

// Tokens returns a copy of the token sequence.
func (t Transcript) Tokens() []string {
	out := make([]string, len(t.tokens))
	copy(out, t.tokens)
	return out
}

// DistinctTokens returns the number of distinct tokens.
func (t Transcript) DistinctTokens() int {
	seen := make(map[string]struct{}, len(t.tokens))
	for _, tok := range t.tokens {
		seen[tok] = struct{}{}
	}
	return len(seen)
}

// CountTokens returns how many tokens satisfy match.
func (t Transcript) CountTokens(match func(string) bool) int {
	n := 0
	for _, tok := range t.tokens {
		if match(tok) {
			n++
		}
	}
	return n
}
