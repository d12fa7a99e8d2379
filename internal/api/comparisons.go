package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Hearthside-Labs/Homerank/internal/ahp"
	"github.com/Hearthside-Labs/Homerank/internal/cache"
	"github.com/Hearthside-Labs/Homerank/internal/store"
)

type ComparisonsHandler struct {
	store store.Store
	cache *cache.RankingCache
}

func NewComparisonsHandler(s store.Store, c *cache.RankingCache) *ComparisonsHandler {
	return &ComparisonsHandler{store: s, cache: c}
}

type PutComparisonRequest struct {
	CriterionA string `json:"criterion_a"`
	CriterionB string `json:"criterion_b"`
	Value      int    `json:"value"`
}

// Put stores one pairwise judgment, replacing any previous judgment for the
// same unordered pair.
func (h *ComparisonsHandler) Put(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req PutComparisonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if _, ok := ahp.CriterionIndex(ahp.CriterionID(req.CriterionA)); !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown criterion: " + req.CriterionA})
		return
	}
	if _, ok := ahp.CriterionIndex(ahp.CriterionID(req.CriterionB)); !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown criterion: " + req.CriterionB})
		return
	}
	if req.CriterionA == req.CriterionB {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "criteria must differ"})
		return
	}
	if req.Value < -8 || req.Value > 8 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "value must be in [-8, 8]"})
		return
	}

	comparison := &store.Comparison{
		SessionID:  sessionID,
		CriterionA: req.CriterionA,
		CriterionB: req.CriterionB,
		Value:      req.Value,
	}
	if err := h.store.UpsertComparison(r.Context(), comparison); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	_ = h.cache.Delete(r.Context(), sessionID.String())

	writeJSON(w, http.StatusOK, comparison)
}

func (h *ComparisonsHandler) List(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	comparisons, err := h.store.ListComparisons(r.Context(), sessionID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if comparisons == nil {
		comparisons = []*store.Comparison{}
	}
	writeJSON(w, http.StatusOK, comparisons)
}

func (h *ComparisonsHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteComparisons(r.Context(), sessionID); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	_ = h.cache.Delete(r.Context(), sessionID.String())

	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (h *ComparisonsHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session id"})
		return uuid.Nil, false
	}
	session, err := h.store.GetSession(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return uuid.Nil, false
	}
	if session == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return uuid.Nil, false
	}
	return id, true
}
