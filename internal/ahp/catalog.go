package ahp

// CriterionID identifies one of the seven fixed decision criteria.
// The values are stable wire strings used in JSON payloads and the
// comparisons table.
type CriterionID string

const (
	CriterionPrice      CriterionID = "price"
	CriterionLocation   CriterionID = "location"
	CriterionSize       CriterionID = "size"
	CriterionCondition  CriterionID = "condition"
	CriterionAmenities  CriterionID = "amenities"
	CriterionComfort    CriterionID = "comfort"
	CriterionAirQuality CriterionID = "airQuality"
)

// Criterion is one decision dimension with its display metadata.
type Criterion struct {
	ID          CriterionID `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
}

// catalog order defines the comparison-matrix indices.
var catalog = []Criterion{
	{ID: CriterionPrice, Name: "Price", Description: "Monthly rent relative to the rest of the shortlist", Icon: "banknote"},
	{ID: CriterionLocation, Name: "Location", Description: "Distance to your reference point and neighborhood quality", Icon: "map-pin"},
	{ID: CriterionSize, Name: "Size", Description: "Living area and room count", Icon: "ruler"},
	{ID: CriterionCondition, Name: "Condition", Description: "State of repair and renovation", Icon: "hammer"},
	{ID: CriterionAmenities, Name: "Amenities", Description: "Balcony, elevator, parking, appliances", Icon: "sofa"},
	{ID: CriterionComfort, Name: "Comfort", Description: "Light, noise, layout, overall livability", Icon: "sun"},
	{ID: CriterionAirQuality, Name: "Air Quality", Description: "Ambient air quality around the address", Icon: "wind"},
}

var catalogIndex = func() map[CriterionID]int {
	idx := make(map[CriterionID]int, len(catalog))
	for i, c := range catalog {
		idx[c.ID] = i
	}
	return idx
}()

// Catalog returns the seven criteria in matrix order. The returned slice is a
// copy; callers may not mutate the catalog.
func Catalog() []Criterion {
	out := make([]Criterion, len(catalog))
	copy(out, catalog)
	return out
}

// CriterionIndex returns the matrix index for an identifier, or false for an
// unknown one.
func CriterionIndex(id CriterionID) (int, bool) {
	i, ok := catalogIndex[id]
	return i, ok
}

// CriterionByID looks up a catalog entry by identifier.
func CriterionByID(id CriterionID) (Criterion, bool) {
	i, ok := catalogIndex[id]
	if !ok {
		return Criterion{}, false
	}
	return catalog[i], true
}
