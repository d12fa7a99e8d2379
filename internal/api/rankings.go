package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Hearthside-Labs/Homerank/internal/ahp"
	"github.com/Hearthside-Labs/Homerank/internal/cache"
	"github.com/Hearthside-Labs/Homerank/internal/rank"
	"github.com/Hearthside-Labs/Homerank/internal/store"
)

type RankingsHandler struct {
	store  store.Store
	runner *rank.Runner
	cache  *cache.RankingCache
}

func NewRankingsHandler(s store.Store, runner *rank.Runner, c *cache.RankingCache) *RankingsHandler {
	return &RankingsHandler{store: s, runner: runner, cache: c}
}

type RankRequest struct {
	Method string `json:"method,omitempty"`
}

// Rank runs the full pipeline for a session and returns the fresh result.
// POST /api/v1/sessions/{id}/rank
func (h *RankingsHandler) Rank(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req RankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	method, err := h.runner.ResolveMethod(session, req.Method)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := h.runner.Run(r.Context(), session, method)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Latest returns the session's most recent result, cache first.
// GET /api/v1/sessions/{id}/ranking
func (h *RankingsHandler) Latest(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	result, err := h.cache.Get(r.Context(), session.ID.String())
	if err != nil || result == nil {
		result, err = h.store.GetLatestResult(r.Context(), session.ID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
	}
	if result == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session has not been ranked yet"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Explain returns the rationale for one ranked property, derived from the
// latest result.
// GET /api/v1/sessions/{id}/ranking/explain/{propertyID}
func (h *RankingsHandler) Explain(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	propertyID, err := uuid.Parse(chi.URLParam(r, "propertyID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid property id"})
		return
	}

	result, err := h.cache.Get(r.Context(), session.ID.String())
	if err != nil || result == nil {
		result, err = h.store.GetLatestResult(r.Context(), session.ID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
	}
	if result == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session has not been ranked yet"})
		return
	}

	var ranking *ahp.PropertyRanking
	for i := range result.Rankings {
		if result.Rankings[i].PropertyID == propertyID.String() {
			ranking = &result.Rankings[i]
			break
		}
	}
	if ranking == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "property not in latest ranking"})
		return
	}

	property, err := h.store.GetProperty(r.Context(), propertyID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if property == nil || property.Scores == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "property not found"})
		return
	}

	writeJSON(w, http.StatusOK, ahp.Explain(*ranking, result.Weights, *property.Scores))
}

func (h *RankingsHandler) session(w http.ResponseWriter, r *http.Request) (*store.Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session id"})
		return nil, false
	}
	session, err := h.store.GetSession(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil, false
	}
	if session == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return nil, false
	}
	return session, true
}
