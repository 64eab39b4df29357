package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/introscore/internal/domain/model"
	"github.com/okian/introscore/internal/domain/rubric"
)

const maxListedKeywords = 5

// ContentScorer measures coverage of the required self-introduction terms.
// Terms match as case-insensitive substrings of the whole transcript, so
// multi-word terms such as "kind hearted" are found too.
type ContentScorer struct {
	keywords []string
}

// NewContentScorer creates a scorer over the rubric's required keywords.
func NewContentScorer() *ContentScorer {
	return &ContentScorer{keywords: rubric.RequiredKeywords()}
}

// Criterion implements Scorer.
func (s *ContentScorer) Criterion() rubric.Criterion { return rubric.Content }

// Score implements Scorer.
func (s *ContentScorer) Score(_ context.Context, t model.Transcript) (Result, error) {
	lower := t.Lower()
	found := make([]string, 0, len(s.keywords))
	for _, kw := range s.keywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}

	total := len(s.keywords)
	ratio := 0.0
	if total > 0 {
		ratio = float64(len(found)) / float64(total)
	}
	raw := ratio * maxScore

	var feedback string
	switch {
	case raw >= 90:
		listed := found
		if len(listed) > maxListedKeywords {
			listed = listed[:maxListedKeywords]
		}
		feedback = fmt.Sprintf("Excellent content coverage! Found %d/%d key elements, including: %s...",
			len(found), total, strings.Join(listed, ", "))
	case raw >= 60:
		feedback = fmt.Sprintf("Good coverage. Found %d/%d key elements. Consider adding more details about goals or a unique point.",
			len(found), total)
	default:
		feedback = fmt.Sprintf("Low coverage. Found only %d/%d key elements. Ensure you mention name, class, school, family, and hobbies.",
			len(found), total)
	}

	return newResult(rubric.Content, round(raw), feedback), nil
}
