package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Hearthside-Labs/Homerank/internal/cache"
	"github.com/Hearthside-Labs/Homerank/internal/store"
)

type PropertiesHandler struct {
	store store.Store
	cache *cache.RankingCache
}

func NewPropertiesHandler(s store.Store, c *cache.RankingCache) *PropertiesHandler {
	return &PropertiesHandler{store: s, cache: c}
}

type CreatePropertyRequest struct {
	Title     string                 `json:"title"`
	URL       string                 `json:"url,omitempty"`
	PriceText string                 `json:"price_text,omitempty"`
	Lat       *float64               `json:"lat,omitempty"`
	Lng       *float64               `json:"lng,omitempty"`
	Attrs     map[string]interface{} `json:"attrs,omitempty"`
}

func (h *PropertiesHandler) Create(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session id"})
		return
	}
	session, err := h.store.GetSession(r.Context(), sessionID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if session == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}

	var req CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title required"})
		return
	}
	if (req.Lat == nil) != (req.Lng == nil) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lat and lng must be set together"})
		return
	}

	property := &store.Property{
		SessionID: sessionID,
		Title:     req.Title,
		URL:       req.URL,
		PriceText: req.PriceText,
		Lat:       req.Lat,
		Lng:       req.Lng,
		Attrs:     req.Attrs,
	}
	if err := h.store.CreateProperty(r.Context(), property); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	// shortlist changed; any cached ranking is stale
	_ = h.cache.Delete(r.Context(), sessionID.String())

	writeJSON(w, http.StatusCreated, property)
}

func (h *PropertiesHandler) List(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session id"})
		return
	}
	properties, err := h.store.ListProperties(r.Context(), sessionID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if properties == nil {
		properties = []*store.Property{}
	}
	writeJSON(w, http.StatusOK, properties)
}

func (h *PropertiesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid property id"})
		return
	}
	property, err := h.store.GetProperty(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if property == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "property not found"})
		return
	}
	writeJSON(w, http.StatusOK, property)
}

func (h *PropertiesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid property id"})
		return
	}
	property, err := h.store.GetProperty(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if property == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "property not found"})
		return
	}

	if err := h.store.DeleteProperty(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	_ = h.cache.Delete(r.Context(), property.SessionID.String())

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
