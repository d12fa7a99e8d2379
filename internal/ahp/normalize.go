package ahp

import (
	"math"
	"strconv"
	"strings"
)

// RawAttributes carries one property's heterogeneous inputs before
// normalization. Nil pointers mean the value was never captured or resolved;
// every normalizer substitutes the neutral score 5 for missing input.
type RawAttributes struct {
	PriceText string

	// Straight-line distance in km to the session's reference point,
	// computed upstream from coordinates.
	DistanceKm *float64

	// Neighborhood-quality assessment, already on the 1–10 scale.
	Neighborhood *float64

	// AI sub-assessments, already on the 1–10 scale.
	Size      *float64
	Condition *float64
	Amenities *float64
	Comfort   *float64

	// Provider-resolved air-quality score, already on the 1–10 scale.
	AirQuality *float64

	// Trace values kept for transparency only; they play no role in scoring.
	SquareMeters *float64
	Bedrooms     *int
}

// CriteriaScores is one property's seven normalized 1–10 scores plus an
// optional raw-data trace.
type CriteriaScores struct {
	Price      float64 `json:"price"`
	Location   float64 `json:"location"`
	Size       float64 `json:"size"`
	Condition  float64 `json:"condition"`
	Amenities  float64 `json:"amenities"`
	Comfort    float64 `json:"comfort"`
	AirQuality float64 `json:"airQuality"`

	Raw map[string]interface{} `json:"raw,omitempty"`
}

// Get returns the score for a criterion identifier, or 0 for an unknown one.
func (s CriteriaScores) Get(id CriterionID) float64 {
	switch id {
	case CriterionPrice:
		return s.Price
	case CriterionLocation:
		return s.Location
	case CriterionSize:
		return s.Size
	case CriterionCondition:
		return s.Condition
	case CriterionAmenities:
		return s.Amenities
	case CriterionComfort:
		return s.Comfort
	case CriterionAirQuality:
		return s.AirQuality
	default:
		return 0
	}
}

// NormalizeSet converts raw attributes into CriteriaScores for every property
// in the set. Price is relative to the set (inverse min-max), so the whole
// shortlist is normalized in one call.
func NormalizeSet(inputs []RawAttributes) []CriteriaScores {
	prices := make([]*float64, len(inputs))
	var min, max float64
	var parseable int
	for i, in := range inputs {
		if p, ok := ParsePrice(in.PriceText); ok {
			prices[i] = &p
			if parseable == 0 || p < min {
				min = p
			}
			if parseable == 0 || p > max {
				max = p
			}
			parseable++
		}
	}

	scores := make([]CriteriaScores, len(inputs))
	for i, in := range inputs {
		scores[i] = CriteriaScores{
			Price:      priceScore(prices[i], min, max, parseable),
			Location:   locationScore(in.DistanceKm, in.Neighborhood),
			Size:       passthrough(in.Size),
			Condition:  passthrough(in.Condition),
			Amenities:  passthrough(in.Amenities),
			Comfort:    passthrough(in.Comfort),
			AirQuality: passthrough(in.AirQuality),
			Raw:        rawTrace(in, prices[i]),
		}
	}
	return scores
}

// ParsePrice extracts the numeric magnitude from a free-text price string by
// stripping every non-digit rune. Returns false when no digits remain.
func ParsePrice(text string) (float64, bool) {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// priceScore maps the set's cheapest price to 10 and its most expensive to 1.
// Without a usable range every property scores the neutral 5.
func priceScore(price *float64, min, max float64, parseable int) float64 {
	if price == nil || parseable < 2 || max == min {
		return 5
	}
	return math.Round(1 + 9*(1-(*price-min)/(max-min)))
}

// distanceScore is the fixed step-decay from straight-line distance in km.
func distanceScore(km float64) float64 {
	switch {
	case km <= 0.5:
		return 10
	case km <= 1:
		return 9
	case km <= 2:
		return 8
	case km <= 4:
		return 7
	case km <= 6:
		return 6
	case km <= 10:
		return 5
	case km <= 15:
		return 4
	case km <= 25:
		return 3
	case km <= 40:
		return 2
	default:
		return 1
	}
}

// locationScore averages the distance-decay component with the
// neighborhood-quality assessment, each defaulting to 5 when absent.
func locationScore(distanceKm, neighborhood *float64) float64 {
	dist := 5.0
	if distanceKm != nil {
		dist = distanceScore(*distanceKm)
	}
	hood := 5.0
	if neighborhood != nil {
		hood = clampScore(*neighborhood)
	}
	return math.Round((dist + hood) / 2)
}

func passthrough(v *float64) float64 {
	if v == nil {
		return 5
	}
	return clampScore(*v)
}

func clampScore(v float64) float64 {
	if v < 1 || math.IsNaN(v) {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}

func rawTrace(in RawAttributes, price *float64) map[string]interface{} {
	raw := map[string]interface{}{}
	if price != nil {
		raw["parsed_price"] = *price
	}
	if in.DistanceKm != nil {
		raw["distance_km"] = *in.DistanceKm
	}
	if in.SquareMeters != nil {
		raw["square_meters"] = *in.SquareMeters
	}
	if in.Bedrooms != nil {
		raw["bedrooms"] = *in.Bedrooms
	}
	if len(raw) == 0 {
		return nil
	}
	return raw
}
