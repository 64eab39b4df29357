// Package types contains the report shapes shared by the engine, the HTTP
// API and the sample client.
package types

import (
	"encoding/json"
	"strconv"
)

// CriterionScore is one scored rubric dimension.
type CriterionScore struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Weight   int    `json:"weight"`
	Feedback string `json:"feedback"`
}

// Contribution returns the score rescaled to the criterion weight.
func (c CriterionScore) Contribution() float64 {
	return float64(c.Score) / 100 * float64(c.Weight)
}

// MarshalJSON adds the raw_score_<weight> contribution key.
func (c CriterionScore) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"id":       c.ID,
		"name":     c.Name,
		"score":    c.Score,
		"weight":   c.Weight,
		"feedback": c.Feedback,
	}
	out["raw_score_"+strconv.Itoa(c.Weight)] = c.Contribution()
	return json.Marshal(out)
}

// Report is the full scoring result for one transcript.
type Report struct {
	OverallScore        int              `json:"overall_score"`
	WordCount           int              `json:"word_count"`
	PerCriterion        []CriterionScore `json:"per_criterion"`
	TotalPossibleWeight int              `json:"total_possible_weight"`
}
