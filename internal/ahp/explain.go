package ahp

import (
	"fmt"
	"sort"
)

// Explanation is the human-readable rationale for one property's placement,
// tied to the user's top-weighted priorities. Presentation only; it has no
// effect on the ranking itself.
type Explanation struct {
	PropertyID    string        `json:"property_id"`
	FinalScore    float64       `json:"final_score"`
	TopPriorities []CriterionID `json:"top_priorities"`
	Strengths     []string      `json:"strengths"`
	Improvements  []string      `json:"improvements"`
}

const (
	maxExplainStrengths    = 4
	maxExplainImprovements = 3
)

// Explain derives the rationale for one ranked property from the global
// weight vector and its normalized scores.
func Explain(ranking PropertyRanking, weights []CriterionWeight, scores CriteriaScores) Explanation {
	priorities := topPriorities(weights, 3)

	ex := Explanation{
		PropertyID:    ranking.PropertyID,
		FinalScore:    ranking.FinalScore,
		TopPriorities: priorities,
	}

	inPriorities := make(map[CriterionID]bool, len(priorities))
	for rank, id := range priorities {
		inPriorities[id] = true
		c, ok := CriterionByID(id)
		if !ok {
			continue
		}
		score := scores.Get(id)
		switch {
		case score >= 7:
			ex.Strengths = append(ex.Strengths,
				fmt.Sprintf("%s scores %s — your #%d priority", c.Name, formatScore(score), rank+1))
		case score <= 4:
			ex.Improvements = append(ex.Improvements,
				fmt.Sprintf("%s scores only %s despite being your #%d priority", c.Name, formatScore(score), rank+1))
		}
	}

	// at most one extra standout outside the priorities, from each list
	for _, id := range ranking.Strengths {
		if inPriorities[id] || scores.Get(id) < 8 {
			continue
		}
		if c, ok := CriterionByID(id); ok {
			ex.Strengths = append(ex.Strengths,
				fmt.Sprintf("%s is a standout at %s", c.Name, formatScore(scores.Get(id))))
		}
		break
	}
	for _, id := range ranking.Weaknesses {
		if inPriorities[id] || scores.Get(id) > 3 {
			continue
		}
		if c, ok := CriterionByID(id); ok {
			ex.Improvements = append(ex.Improvements,
				fmt.Sprintf("%s is weak at %s", c.Name, formatScore(scores.Get(id))))
		}
		break
	}

	if len(ex.Strengths) > maxExplainStrengths {
		ex.Strengths = ex.Strengths[:maxExplainStrengths]
	}
	if len(ex.Improvements) > maxExplainImprovements {
		ex.Improvements = ex.Improvements[:maxExplainImprovements]
	}
	return ex
}

// topPriorities returns the n highest-weighted criteria, catalog order
// breaking ties.
func topPriorities(weights []CriterionWeight, n int) []CriterionID {
	sorted := make([]CriterionWeight, len(weights))
	copy(sorted, weights)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight > sorted[j].Weight
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	out := make([]CriterionID, n)
	for i := 0; i < n; i++ {
		out[i] = sorted[i].Criterion
	}
	return out
}

func formatScore(v float64) string {
	if v == float64(int(v)) {
		return fmt.Sprintf("%d/10", int(v))
	}
	return fmt.Sprintf("%.1f/10", v)
}
