package ahp

// SaatyRatio maps a symmetric UI preference value in [-8, 8] onto the Saaty
// 1–9 intensity scale.
//
//	 0 → 1        equal importance
//	+v → v+1      second criterion more important
//	-v → 1/(v+1)  first criterion more important
func SaatyRatio(value int) float64 {
	switch {
	case value == 0:
		return 1
	case value > 0:
		return float64(value + 1)
	default:
		return 1 / float64(-value+1)
	}
}
