package ahp

import "fmt"

// ConsistencyThreshold is the standard AHP acceptability bound: a consistency
// ratio at or above it signals self-contradictory judgments.
const ConsistencyThreshold = 0.10

// randomIndex holds Saaty's Random Index constants, indexed by matrix size.
// Sizes beyond 10 are rejected rather than extrapolated.
var randomIndex = []float64{0, 0, 0, 0.58, 0.90, 1.12, 1.24, 1.32, 1.41, 1.45, 1.49}

// Consistency is the verdict on a comparison matrix given its weight vector.
type Consistency struct {
	LambdaMax  float64 `json:"lambda_max"`
	Index      float64 `json:"consistency_index"`
	Ratio      float64 `json:"consistency_ratio"`
	Consistent bool    `json:"is_consistent"`
}

// CheckConsistency estimates the principal eigenvalue λmax, derives the
// Consistency Index and Ratio, and applies the 0.10 threshold. Matrices of
// size 1 or 2 are trivially consistent. An inconsistent verdict is not an
// error; only an unsupported matrix size is.
func CheckConsistency(matrix [][]float64, weights []float64) (Consistency, error) {
	n := len(matrix)
	if n >= len(randomIndex) {
		return Consistency{}, fmt.Errorf("no random index for matrix size %d (max %d)", n, len(randomIndex)-1)
	}
	if n < 3 {
		return Consistency{LambdaMax: float64(n), Consistent: true}, nil
	}

	var lambda float64
	for i, row := range matrix {
		var sum float64
		for j, v := range row {
			sum += v * weights[j]
		}
		lambda += sum / weights[i]
	}
	lambda /= float64(n)

	ci := (lambda - float64(n)) / float64(n-1)
	cr := ci / randomIndex[n]

	return Consistency{
		LambdaMax:  lambda,
		Index:      ci,
		Ratio:      cr,
		Consistent: cr < ConsistencyThreshold,
	}, nil
}
