package ahp

import (
	"fmt"
	"math"
)

// Method selects the weight-derivation strategy.
type Method string

const (
	// MethodGeometricMean is the default: numerically stable and tolerant of
	// mildly inconsistent matrices.
	MethodGeometricMean Method = "geometric_mean"
	// MethodPowerIteration approximates the matrix's dominant eigenvector.
	// May diverge slightly from the geometric mean on inconsistent matrices.
	MethodPowerIteration Method = "power_iteration"
)

// DefaultPowerIterations is the fixed iteration count used when a caller does
// not override it.
const DefaultPowerIterations = 100

// ParseMethod maps a wire string onto a Method, defaulting to geometric mean
// for the empty string.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case "":
		return MethodGeometricMean, nil
	case MethodGeometricMean, MethodPowerIteration:
		return Method(s), nil
	default:
		return "", fmt.Errorf("unknown weight method %q", s)
	}
}

// CriterionWeight pairs a criterion with its derived priority weight.
// Weights across the catalog sum to 1.
type CriterionWeight struct {
	Criterion CriterionID `json:"criterion"`
	Weight    float64     `json:"weight"`
}

// Weights derives the priority vector for a comparison matrix using the given
// method. The result has one positive entry per row, summing to 1.
func Weights(matrix [][]float64, method Method) ([]float64, error) {
	switch method {
	case "", MethodGeometricMean:
		return geometricMeanWeights(matrix), nil
	case MethodPowerIteration:
		return PowerIterationWeights(matrix, DefaultPowerIterations), nil
	default:
		return nil, fmt.Errorf("unknown weight method %q", method)
	}
}

// geometricMeanWeights normalizes the row geometric means by their sum.
func geometricMeanWeights(matrix [][]float64) []float64 {
	n := len(matrix)
	weights := make([]float64, n)
	var sum float64
	for i, row := range matrix {
		product := 1.0
		for _, v := range row {
			product *= v
		}
		weights[i] = math.Pow(product, 1/float64(n))
		sum += weights[i]
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}

// PowerIterationWeights approximates the dominant eigenvector: start from a
// uniform vector, repeatedly multiply by the matrix and renormalize by the
// new vector's sum.
func PowerIterationWeights(matrix [][]float64, iterations int) []float64 {
	n := len(matrix)
	if iterations <= 0 {
		iterations = DefaultPowerIterations
	}
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1 / float64(n)
	}
	next := make([]float64, n)
	for iter := 0; iter < iterations; iter++ {
		var sum float64
		for i, row := range matrix {
			next[i] = 0
			for j, v := range row {
				next[i] += v * weights[j]
			}
			sum += next[i]
		}
		for i := range next {
			weights[i] = next[i] / sum
		}
	}
	return weights
}

// WeightVector attaches criterion identifiers to a raw weight slice in
// catalog order.
func WeightVector(criteria []Criterion, weights []float64) []CriterionWeight {
	out := make([]CriterionWeight, len(criteria))
	for i, c := range criteria {
		out[i] = CriterionWeight{Criterion: c.ID, Weight: weights[i]}
	}
	return out
}
