package ahp

import (
	"sort"
	"time"
)

// PropertyInput is one candidate for ranking. Properties whose Scores are nil
// have not been prepared yet and are excluded from the result.
type PropertyInput struct {
	ID     string
	Scores *CriteriaScores
}

// PropertyRanking is one property's placement: its final 0–100 score, each
// criterion's contribution to it, and the three strongest and weakest
// criteria by raw normalized score.
type PropertyRanking struct {
	PropertyID    string                  `json:"property_id"`
	FinalScore    float64                 `json:"final_score"`
	Contributions map[CriterionID]float64 `json:"contributions"`
	Strengths     []CriterionID           `json:"strengths"`
	Weaknesses    []CriterionID           `json:"weaknesses"`
}

// AHPResult is the immutable snapshot of one full engine run.
type AHPResult struct {
	Weights          []CriterionWeight `json:"weights"`
	ConsistencyRatio float64           `json:"consistency_ratio"`
	IsConsistent     bool              `json:"is_consistent"`
	Rankings         []PropertyRanking `json:"rankings"`
	PropertyCount    int               `json:"property_count"`
	ComputedAt       time.Time         `json:"computed_at"`
}

// EvalOptions tunes one engine run. The zero value uses the geometric-mean
// method and the current time.
type EvalOptions struct {
	Method Method

	// PowerIterations overrides the iteration count when Method is
	// MethodPowerIteration; 0 uses DefaultPowerIterations.
	PowerIterations int

	// Now stamps the result; callers pass a fixed time for determinism.
	Now time.Time
}

// Evaluate runs the full pipeline over the fixed seven-criterion catalog:
// matrix construction, weight derivation, consistency check, and ranking.
// It is a pure function of its inputs aside from the default timestamp.
func Evaluate(comparisons []PairwiseComparison, properties []PropertyInput, opts EvalOptions) (*AHPResult, error) {
	criteria := Catalog()

	matrix := BuildMatrix(criteria, comparisons)
	var weights []float64
	var err error
	if opts.Method == MethodPowerIteration {
		weights = PowerIterationWeights(matrix, opts.PowerIterations)
	} else {
		weights, err = Weights(matrix, opts.Method)
		if err != nil {
			return nil, err
		}
	}
	consistency, err := CheckConsistency(matrix, weights)
	if err != nil {
		return nil, err
	}

	rankings := Rank(criteria, weights, properties)

	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	return &AHPResult{
		Weights:          WeightVector(criteria, weights),
		ConsistencyRatio: consistency.Ratio,
		IsConsistent:     consistency.Consistent,
		Rankings:         rankings,
		PropertyCount:    len(rankings),
		ComputedAt:       now,
	}, nil
}

// Rank scores every prepared property against the weight vector and returns
// the rankings sorted by descending final score. Ties keep input order.
func Rank(criteria []Criterion, weights []float64, properties []PropertyInput) []PropertyRanking {
	rankings := make([]PropertyRanking, 0, len(properties))
	for _, p := range properties {
		if p.Scores == nil {
			continue
		}
		rankings = append(rankings, rankOne(criteria, weights, p.ID, *p.Scores))
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].FinalScore > rankings[j].FinalScore
	})
	return rankings
}

func rankOne(criteria []Criterion, weights []float64, id string, scores CriteriaScores) PropertyRanking {
	contributions := make(map[CriterionID]float64, len(criteria))
	var total float64
	for i, c := range criteria {
		// score in [1,10] times weight, rescaled onto the 0–100 range
		contribution := scores.Get(c.ID) * weights[i] * 10
		contributions[c.ID] = contribution
		total += contribution
	}

	// order criteria by raw score, catalog order breaking ties
	byScore := make([]CriterionID, len(criteria))
	for i, c := range criteria {
		byScore[i] = c.ID
	}
	sort.SliceStable(byScore, func(i, j int) bool {
		return scores.Get(byScore[i]) > scores.Get(byScore[j])
	})

	strengths := make([]CriterionID, 3)
	copy(strengths, byScore[:3])

	weaknesses := make([]CriterionID, 3)
	for i := 0; i < 3; i++ {
		weaknesses[i] = byScore[len(byScore)-1-i]
	}

	return PropertyRanking{
		PropertyID:    id,
		FinalScore:    total,
		Contributions: contributions,
		Strengths:     strengths,
		Weaknesses:    weaknesses,
	}
}
