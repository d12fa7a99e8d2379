// Package rank orchestrates one ranking run end to end: load the session's
// shortlist and judgments, prepare normalized scores, evaluate the engine,
// and persist, cache, and publish the result.
package rank

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Hearthside-Labs/Homerank/internal/ahp"
	"github.com/Hearthside-Labs/Homerank/internal/airquality"
	"github.com/Hearthside-Labs/Homerank/internal/cache"
	"github.com/Hearthside-Labs/Homerank/internal/events"
	"github.com/Hearthside-Labs/Homerank/internal/geo"
	"github.com/Hearthside-Labs/Homerank/internal/store"
)

type Runner struct {
	store           store.Store
	provider        airquality.Provider // nil disables lookups
	cache           *cache.RankingCache
	events          events.Client // nil skips publishing
	defaultMethod   ahp.Method
	powerIterations int
	logger          *slog.Logger
}

func NewRunner(s store.Store, provider airquality.Provider, c *cache.RankingCache, ev events.Client, defaultMethod ahp.Method, powerIterations int, logger *slog.Logger) *Runner {
	return &Runner{
		store:           s,
		provider:        provider,
		cache:           c,
		events:          ev,
		defaultMethod:   defaultMethod,
		powerIterations: powerIterations,
		logger:          logger,
	}
}

// ResolveMethod picks the weight method for a run: the request override wins,
// then the session's stored preference, then the configured default.
func (r *Runner) ResolveMethod(session *store.Session, requested string) (ahp.Method, error) {
	if requested != "" {
		return ahp.ParseMethod(requested)
	}
	if session.WeightMethod != "" {
		return ahp.ParseMethod(session.WeightMethod)
	}
	if r.defaultMethod != "" {
		return r.defaultMethod, nil
	}
	return ahp.MethodGeometricMean, nil
}

// Run executes one full ranking run for the session and returns the freshly
// persisted result.
func (r *Runner) Run(ctx context.Context, session *store.Session, method ahp.Method) (*store.Result, error) {
	start := time.Now()

	properties, err := r.store.ListProperties(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	comparisons, err := r.store.ListComparisons(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("list comparisons: %w", err)
	}

	inputs, err := r.prepare(ctx, session, properties)
	if err != nil {
		return nil, err
	}

	engineResult, err := ahp.Evaluate(toEngineComparisons(comparisons), inputs, ahp.EvalOptions{
		Method:          method,
		PowerIterations: r.powerIterations,
	})
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}

	result := &store.Result{
		SessionID:        session.ID,
		Method:           string(method),
		Weights:          engineResult.Weights,
		ConsistencyRatio: engineResult.ConsistencyRatio,
		IsConsistent:     engineResult.IsConsistent,
		Rankings:         engineResult.Rankings,
		PropertyCount:    engineResult.PropertyCount,
		ComputedAt:       engineResult.ComputedAt,
	}
	if err := r.store.CreateResult(ctx, result); err != nil {
		return nil, fmt.Errorf("persist result: %w", err)
	}

	if err := r.cache.Set(ctx, session.ID.String(), result); err != nil {
		r.logger.Warn("cache ranking result", "session_id", session.ID, "error", err)
	}
	r.publish(session, result)

	rankingsComputed.WithLabelValues(string(method)).Inc()
	if !result.IsConsistent {
		inconsistentJudgments.Inc()
	}
	rankingDuration.Observe(time.Since(start).Seconds())

	r.logger.Info("ranking computed",
		"session_id", session.ID,
		"method", method,
		"property_count", result.PropertyCount,
		"consistency_ratio", result.ConsistencyRatio,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

// prepare turns each property's raw attributes into persisted
// CriteriaScores: distance from the reference point, best-effort air-quality
// resolution, then set-wide normalization.
func (r *Runner) prepare(ctx context.Context, session *store.Session, properties []*store.Property) ([]ahp.PropertyInput, error) {
	raw := make([]ahp.RawAttributes, len(properties))
	for i, p := range properties {
		raw[i] = ahp.RawAttributes{
			PriceText:    p.PriceText,
			Neighborhood: attrFloat(p.Attrs, "neighborhood"),
			Size:         attrFloat(p.Attrs, "size"),
			Condition:    attrFloat(p.Attrs, "condition"),
			Amenities:    attrFloat(p.Attrs, "amenities"),
			Comfort:      attrFloat(p.Attrs, "comfort"),
			SquareMeters: attrFloat(p.Attrs, "square_meters"),
			Bedrooms:     attrInt(p.Attrs, "bedrooms"),
		}

		if p.Lat != nil && p.Lng != nil {
			if session.RefLat != nil && session.RefLng != nil {
				km := geo.HaversineKm(*session.RefLat, *session.RefLng, *p.Lat, *p.Lng)
				raw[i].DistanceKm = &km
			}
			if r.provider != nil {
				score, err := r.provider.Score(ctx, *p.Lat, *p.Lng)
				if err != nil {
					airQualityFailures.Inc()
					r.logger.Warn("air quality lookup failed, using default", "property_id", p.ID, "error", err)
				} else {
					raw[i].AirQuality = &score
				}
			}
		}
	}

	scores := ahp.NormalizeSet(raw)

	inputs := make([]ahp.PropertyInput, len(properties))
	for i, p := range properties {
		s := scores[i]
		if err := r.store.UpdatePropertyScores(ctx, p.ID, &s); err != nil {
			return nil, fmt.Errorf("persist scores for %s: %w", p.ID, err)
		}
		inputs[i] = ahp.PropertyInput{ID: p.ID.String(), Scores: &s}
	}
	return inputs, nil
}

func (r *Runner) publish(session *store.Session, result *store.Result) {
	if r.events == nil {
		return
	}
	evt := events.RankingComputedEvent{
		SessionID:        session.ID.String(),
		ResultID:         result.ID.String(),
		Method:           result.Method,
		PropertyCount:    result.PropertyCount,
		ConsistencyRatio: result.ConsistencyRatio,
		IsConsistent:     result.IsConsistent,
	}
	if len(result.Rankings) > 0 {
		evt.TopPropertyID = result.Rankings[0].PropertyID
	}
	if err := r.events.Publish(events.SubjectRankingComputed(session.ID.String()), evt); err != nil {
		r.logger.Warn("publish ranking event", "session_id", session.ID, "error", err)
	}
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

// attrFloat reads a numeric attribute from the raw JSONB map. JSON numbers
// decode as float64; anything else is treated as absent.
func attrFloat(attrs map[string]interface{}, key string) *float64 {
	if attrs == nil {
		return nil
	}
	if v, ok := attrs[key].(float64); ok {
		return &v
	}
	return nil
}

func attrInt(attrs map[string]interface{}, key string) *int {
	if v := attrFloat(attrs, key); v != nil {
		n := int(*v)
		return &n
	}
	return nil
}
