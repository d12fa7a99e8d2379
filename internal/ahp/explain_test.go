package ahp

import (
	"strings"
	"testing"
)

func weightVectorFor(weights map[CriterionID]float64) []CriterionWeight {
	out := make([]CriterionWeight, 0, len(catalog))
	for _, c := range catalog {
		out = append(out, CriterionWeight{Criterion: c.ID, Weight: weights[c.ID]})
	}
	return out
}

func TestExplainTopPriorities(t *testing.T) {
	weights := weightVectorFor(map[CriterionID]float64{
		CriterionPrice:      0.35,
		CriterionLocation:   0.25,
		CriterionSize:       0.15,
		CriterionCondition:  0.10,
		CriterionAmenities:  0.05,
		CriterionComfort:    0.05,
		CriterionAirQuality: 0.05,
	})
	scores := CriteriaScores{Price: 9, Location: 3, Size: 5, Condition: 6, Amenities: 5, Comfort: 5, AirQuality: 5}
	ranking := PropertyRanking{
		PropertyID: "p1",
		FinalScore: 61.5,
		Strengths:  []CriterionID{CriterionPrice, CriterionCondition, CriterionSize},
		Weaknesses: []CriterionID{CriterionLocation, CriterionAmenities, CriterionComfort},
	}

	ex := Explain(ranking, weights, scores)

	wantPriorities := []CriterionID{CriterionPrice, CriterionLocation, CriterionSize}
	for i, want := range wantPriorities {
		if ex.TopPriorities[i] != want {
			t.Errorf("priority[%d] = %s, want %s", i, ex.TopPriorities[i], want)
		}
	}
	if len(ex.Strengths) != 1 || !strings.Contains(ex.Strengths[0], "Price scores 9/10") {
		t.Errorf("strengths = %v, want single line about price", ex.Strengths)
	}
	if !strings.Contains(ex.Strengths[0], "#1 priority") {
		t.Errorf("strength should cite priority rank, got %q", ex.Strengths[0])
	}
	if len(ex.Improvements) != 1 || !strings.Contains(ex.Improvements[0], "Location scores only 3/10") {
		t.Errorf("improvements = %v, want single line about location", ex.Improvements)
	}
}

func TestExplainStandoutsOutsidePriorities(t *testing.T) {
	weights := weightVectorFor(map[CriterionID]float64{
		CriterionPrice:      0.30,
		CriterionLocation:   0.25,
		CriterionSize:       0.20,
		CriterionCondition:  0.10,
		CriterionAmenities:  0.05,
		CriterionComfort:    0.05,
		CriterionAirQuality: 0.05,
	})
	// mid scores on every priority; comfort excels and air quality drags
	scores := CriteriaScores{Price: 5, Location: 6, Size: 5, Condition: 5, Amenities: 5, Comfort: 9, AirQuality: 2}
	ranking := PropertyRanking{
		PropertyID: "p2",
		FinalScore: 51,
		Strengths:  []CriterionID{CriterionComfort, CriterionLocation, CriterionPrice},
		Weaknesses: []CriterionID{CriterionAirQuality, CriterionSize, CriterionCondition},
	}

	ex := Explain(ranking, weights, scores)

	if len(ex.Strengths) != 1 || !strings.Contains(ex.Strengths[0], "Comfort is a standout at 9/10") {
		t.Errorf("strengths = %v, want comfort standout", ex.Strengths)
	}
	if len(ex.Improvements) != 1 || !strings.Contains(ex.Improvements[0], "Air Quality is weak at 2/10") {
		t.Errorf("improvements = %v, want air-quality weakness", ex.Improvements)
	}
}

func TestExplainCapsListLengths(t *testing.T) {
	weights := weightVectorFor(map[CriterionID]float64{
		CriterionPrice:      0.30,
		CriterionLocation:   0.25,
		CriterionSize:       0.20,
		CriterionCondition:  0.10,
		CriterionAmenities:  0.05,
		CriterionComfort:    0.05,
		CriterionAirQuality: 0.05,
	})
	scores := CriteriaScores{Price: 10, Location: 9, Size: 8, Condition: 9, Amenities: 8, Comfort: 9, AirQuality: 8}
	ranking := PropertyRanking{
		PropertyID: "p3",
		FinalScore: 90,
		Strengths:  []CriterionID{CriterionPrice, CriterionLocation, CriterionCondition},
		Weaknesses: []CriterionID{CriterionSize, CriterionAmenities, CriterionAirQuality},
	}

	ex := Explain(ranking, weights, scores)

	if len(ex.Strengths) > maxExplainStrengths {
		t.Errorf("strengths length %d exceeds cap %d", len(ex.Strengths), maxExplainStrengths)
	}
	if len(ex.Improvements) != 0 {
		t.Errorf("all-high scores should yield no improvements, got %v", ex.Improvements)
	}
	if ex.PropertyID != "p3" || ex.FinalScore != 90 {
		t.Errorf("explanation should echo identity, got %s/%v", ex.PropertyID, ex.FinalScore)
	}
}

func TestFormatScore(t *testing.T) {
	if got := formatScore(7); got != "7/10" {
		t.Errorf("formatScore(7) = %q", got)
	}
	if got := formatScore(7.5); got != "7.5/10" {
		t.Errorf("formatScore(7.5) = %q", got)
	}
}
