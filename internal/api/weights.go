package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Hearthside-Labs/Homerank/internal/ahp"
	"github.com/Hearthside-Labs/Homerank/internal/store"
)

type WeightsHandler struct {
	store store.Store
}

func NewWeightsHandler(s store.Store) *WeightsHandler {
	return &WeightsHandler{store: s}
}

type WeightsResponse struct {
	Weights          []ahp.CriterionWeight `json:"weights"`
	ConsistencyRatio float64               `json:"consistency_ratio"`
	IsConsistent     bool                  `json:"is_consistent"`
	ComparisonCount  int                   `json:"comparison_count"`
}

// Preview derives weights and a consistency verdict from the stored
// comparisons alone, so the wizard can show priorities before any property
// is ranked.
// GET /api/v1/sessions/{id}/weights
func (h *WeightsHandler) Preview(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session id"})
		return
	}
	session, err := h.store.GetSession(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if session == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}

	comparisons, err := h.store.ListComparisons(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	method, err := ahp.ParseMethod(firstNonEmpty(r.URL.Query().Get("method"), session.WeightMethod))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	criteria := ahp.Catalog()
	matrix := ahp.BuildMatrix(criteria, toEngineComparisons(comparisons))
	weights, err := ahp.Weights(matrix, method)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	consistency, err := ahp.CheckConsistency(matrix, weights)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, WeightsResponse{
		Weights:          ahp.WeightVector(criteria, weights),
		ConsistencyRatio: consistency.Ratio,
		IsConsistent:     consistency.Consistent,
		ComparisonCount:  len(comparisons),
	})
}

func toEngineComparisons(rows []*store.Comparison) []ahp.PairwiseComparison {
	out := make([]ahp.PairwiseComparison, len(rows))
	for i, c := range rows {
		out[i] = ahp.PairwiseComparison{
			CriterionA: ahp.CriterionID(c.CriterionA),
			CriterionB: ahp.CriterionID(c.CriterionB),
			Value:      c.Value,
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
