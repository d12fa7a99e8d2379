package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Hearthside-Labs/Homerank/internal/ahp"
	"github.com/Hearthside-Labs/Homerank/internal/events"
	"github.com/Hearthside-Labs/Homerank/internal/store"
)

type SessionsHandler struct {
	store  store.Store
	events events.Client
}

func NewSessionsHandler(s store.Store, ev events.Client) *SessionsHandler {
	return &SessionsHandler{store: s, events: ev}
}

type CreateSessionRequest struct {
	Name         string   `json:"name"`
	RefLat       *float64 `json:"ref_lat,omitempty"`
	RefLng       *float64 `json:"ref_lng,omitempty"`
	RefLabel     string   `json:"ref_label,omitempty"`
	WeightMethod string   `json:"weight_method,omitempty"`
}

func (h *SessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name required"})
		return
	}
	if _, err := ahp.ParseMethod(req.WeightMethod); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if (req.RefLat == nil) != (req.RefLng == nil) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "ref_lat and ref_lng must be set together"})
		return
	}

	session := &store.Session{
		ClientID:     r.Header.Get("X-Client-ID"),
		Name:         req.Name,
		Status:       store.StatusActive,
		RefLat:       req.RefLat,
		RefLng:       req.RefLng,
		RefLabel:     req.RefLabel,
		WeightMethod: req.WeightMethod,
	}
	if err := h.store.CreateSession(r.Context(), session); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if h.events != nil {
		_ = h.events.Publish(events.SubjectSessionCreated(session.ID.String()), events.SessionCreatedEvent{
			SessionID: session.ID.String(),
			ClientID:  session.ClientID,
			Name:      session.Name,
		})
	}

	writeJSON(w, http.StatusCreated, session)
}

func (h *SessionsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.SessionFilter{
		ClientID: r.Header.Get("X-Client-ID"),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := store.SessionStatus(s)
		filter.Status = &status
	}

	sessions, err := h.store.ListSessions(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if sessions == nil {
		sessions = []*store.Session{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (h *SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, session)
}

type UpdateSessionRequest struct {
	Name         *string  `json:"name,omitempty"`
	Status       *string  `json:"status,omitempty"`
	RefLat       *float64 `json:"ref_lat,omitempty"`
	RefLng       *float64 `json:"ref_lng,omitempty"`
	RefLabel     *string  `json:"ref_label,omitempty"`
	WeightMethod *string  `json:"weight_method,omitempty"`
}

func (h *SessionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req UpdateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name cannot be empty"})
			return
		}
		session.Name = *req.Name
	}
	archived := false
	if req.Status != nil {
		switch store.SessionStatus(*req.Status) {
		case store.StatusActive:
			session.Status = store.StatusActive
		case store.StatusArchived:
			session.Status = store.StatusArchived
			archived = true
		default:
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
			return
		}
	}
	if req.RefLat != nil {
		session.RefLat = req.RefLat
	}
	if req.RefLng != nil {
		session.RefLng = req.RefLng
	}
	if req.RefLabel != nil {
		session.RefLabel = *req.RefLabel
	}
	if req.WeightMethod != nil {
		if _, err := ahp.ParseMethod(*req.WeightMethod); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		session.WeightMethod = *req.WeightMethod
	}

	if err := h.store.UpdateSession(r.Context(), session); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if archived && h.events != nil {
		_ = h.events.Publish(events.SubjectSessionArchived(session.ID.String()), events.SessionArchivedEvent{
			SessionID: session.ID.String(),
		})
	}

	writeJSON(w, http.StatusOK, session)
}

func (h *SessionsHandler) lookup(w http.ResponseWriter, r *http.Request) (*store.Session, bool) {
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

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
