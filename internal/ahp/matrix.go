package ahp

// PairwiseComparison is one user judgment between two criteria. Value is an
// integer in [-8, 8]: zero means equal importance, negative means A is more
// important by |value|+1 on the Saaty scale, positive means B is more
// important by value+1. A stored (A, B, v) implies (B, A, -v).
type PairwiseComparison struct {
	CriterionA CriterionID `json:"criterion_a"`
	CriterionB CriterionID `json:"criterion_b"`
	Value      int         `json:"value"`
}

// BuildMatrix assembles the N×N reciprocal comparison matrix from a sparse
// comparison set. Pairs without an explicit judgment default to 1 (equal
// importance). Comparisons referencing unknown criteria, or comparing a
// criterion to itself, have no effect.
func BuildMatrix(criteria []Criterion, comparisons []PairwiseComparison) [][]float64 {
	n := len(criteria)
	idx := make(map[CriterionID]int, n)
	for i, c := range criteria {
		idx[c.ID] = i
	}

	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		for j := range m[i] {
			m[i][j] = 1
		}
	}

	for _, c := range comparisons {
		i, okA := idx[c.CriterionA]
		j, okB := idx[c.CriterionB]
		if !okA || !okB || i == j {
			continue
		}
		// ratio expresses B's importance over A, so row A gets its inverse
		r := SaatyRatio(c.Value)
		m[i][j] = 1 / r
		m[j][i] = r
	}

	return m
}
