package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Hearthside-Labs/Homerank/internal/cache"
	"github.com/Hearthside-Labs/Homerank/internal/events"
	"github.com/Hearthside-Labs/Homerank/internal/rank"
	"github.com/Hearthside-Labs/Homerank/internal/store"
)

func NewRouter(s store.Store, runner *rank.Runner, c *cache.RankingCache, ev events.Client, adminToken string, rateLimitPerMin int, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(rateLimitPerMin))

	sessions := NewSessionsHandler(s, ev)
	properties := NewPropertiesHandler(s, c)
	comparisons := NewComparisonsHandler(s, c)
	weights := NewWeightsHandler(s)
	rankings := NewRankingsHandler(s, runner, c)
	admin := NewAdminHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ClientIDMiddleware)

		r.Post("/sessions", sessions.Create)
		r.Get("/sessions", sessions.List)
		r.Get("/sessions/{id}", sessions.Get)
		r.Patch("/sessions/{id}", sessions.Update)

		r.Post("/sessions/{id}/properties", properties.Create)
		r.Get("/sessions/{id}/properties", properties.List)
		r.Get("/properties/{id}", properties.Get)
		r.Delete("/properties/{id}", properties.Delete)

		r.Put("/sessions/{id}/comparisons", comparisons.Put)
		r.Get("/sessions/{id}/comparisons", comparisons.List)
		r.Delete("/sessions/{id}/comparisons", comparisons.DeleteAll)

		r.Get("/sessions/{id}/weights", weights.Preview)
		r.Post("/sessions/{id}/rank", rankings.Rank)
		r.Get("/sessions/{id}/ranking", rankings.Latest)
		r.Get("/sessions/{id}/ranking/explain/{propertyID}", rankings.Explain)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Get("/stats", admin.Stats)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
