// Package rubric holds the fixed, process-wide self-introduction rubric:
// criteria and their weights, required content terms, filler words and the
// canonical structure description used for flow comparison.
package rubric

// Criterion identifies one scored rubric dimension.
type Criterion string

// The five rubric criteria, in report order.
const (
	Content    Criterion = "content"
	Flow       Criterion = "flow"
	Vocabulary Criterion = "vocabulary"
	Grammar    Criterion = "grammar"
	Clarity    Criterion = "clarity"
)

// TotalPossibleWeight is the sum of all criterion weights.
const TotalPossibleWeight = 60

// TargetFlowDescription is the canonical self-introduction structure.
const TargetFlowDescription = "A self-introduction must follow a logical order: Salutation/Greeting, " +
	"stating Name, Age, and Mandatory Details (Class, School), " +
	"followed by Optional Details (Family, Hobbies, Fun Fact/Unique Point), " +
	"and concluding with a polite Closing/Thank You."

type criterionDef struct {
	name   string
	weight int
}

var criteria = map[Criterion]criterionDef{
	Content:    {name: "Key Content Presence", weight: 30},
	Flow:       {name: "Flow & Organization (Semantic)", weight: 5},
	Vocabulary: {name: "Vocabulary Richness (TTR)", weight: 10},
	Grammar:    {name: "Language & Grammar (Error Count)", weight: 10},
	Clarity:    {name: "Clarity (Filler Word Rate)", weight: 5},
}

var order = [...]Criterion{Content, Flow, Vocabulary, Grammar, Clarity}

// Criteria returns all criteria in report order.
func Criteria() []Criterion {
	out := make([]Criterion, len(order))
	copy(out, order[:])
	return out
}

// Weight returns the fixed weight of c, or 0 for an unknown criterion.
func (c Criterion) Weight() int {
	return criteria[c].weight
}

// Name returns the display name of c.
func (c Criterion) Name() string {
	if def, ok := criteria[c]; ok {
		return def.name
	}
	return string(c)
}

// Valid reports whether c is one of the rubric criteria.
func (c Criterion) Valid() bool {
	_, ok := criteria[c]
	return ok
}

var requiredKeywords = [...]string{
	"name", "age", "class", "school", "family", "hobbies", "interests",
	"goals", "unique point", "fun fact", "subject", "cricket",
	"kind hearted", "soft spoken",
}

// RequiredKeywords returns the required content terms in rubric order.
func RequiredKeywords() []string {
	out := make([]string, len(requiredKeywords))
	copy(out, requiredKeywords[:])
	return out
}

var fillerWords = map[string]struct{}{
	"um": {}, "uh": {}, "like": {}, "you know": {}, "so": {}, "actually": {},
	"basically": {}, "right": {}, "i mean": {}, "well": {}, "kinda": {},
	"sort of": {}, "okay": {}, "hmm": {}, "ah": {}, "and then": {},
	"at the end of the day": {}, "literally": {},
}

// IsFiller reports whether token is exactly one of the filler words.
// Multi-word fillers can never equal a single token.
func IsFiller(token string) bool {
	_, ok := fillerWords[token]
	return ok
}

// FillerWordCount returns the size of the filler vocabulary.
func FillerWordCount() int { return len(fillerWords) }
