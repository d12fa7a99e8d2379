package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Hearthside-Labs/Homerank/internal/ahp"
)

type SessionStatus string

const (
	StatusActive   SessionStatus = "active"
	StatusArchived SessionStatus = "archived"
)

// Session is one user's decision workspace: a shortlist of properties, a set
// of pairwise judgments, and computed results.
type Session struct {
	ID       uuid.UUID     `json:"session_id"`
	ClientID string        `json:"client_id"`
	Name     string        `json:"name"`
	Status   SessionStatus `json:"status"`

	// Reference point the user measures travel distance from
	RefLat   *float64 `json:"ref_lat,omitempty"`
	RefLng   *float64 `json:"ref_lng,omitempty"`
	RefLabel string   `json:"ref_label,omitempty"`

	// Optional per-session weight-method override
	WeightMethod string `json:"weight_method,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SessionFilter struct {
	ClientID string
	Status   *SessionStatus
	Limit    int
	Offset   int
}

// Property is one shortlisted listing. Attrs holds the raw extracted
// attributes as captured; Scores holds the engine-facing normalized scores,
// written by the preparation step on each ranking run and nil until the
// first run.
type Property struct {
	ID        uuid.UUID `json:"property_id"`
	SessionID uuid.UUID `json:"session_id"`
	Title     string    `json:"title"`
	URL       string    `json:"url,omitempty"`
	PriceText string    `json:"price_text,omitempty"`

	Lat *float64 `json:"lat,omitempty"`
	Lng *float64 `json:"lng,omitempty"`

	Attrs  map[string]interface{} `json:"attrs,omitempty"`
	Scores *ahp.CriteriaScores    `json:"scores,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comparison is one stored pairwise judgment. Criteria are kept in canonical
// catalog order so the unordered-pair invariant is the primary key
// (session_id, criterion_a, criterion_b).
type Comparison struct {
	SessionID  uuid.UUID `json:"session_id"`
	CriterionA string    `json:"criterion_a"`
	CriterionB string    `json:"criterion_b"`
	Value      int       `json:"value"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Canonical returns the comparison with its criteria in catalog order,
// negating the value when the submission arrived reversed. Unknown criteria
// are left untouched; the engine skips them anyway.
func (c Comparison) Canonical() Comparison {
	ia, okA := ahp.CriterionIndex(ahp.CriterionID(c.CriterionA))
	ib, okB := ahp.CriterionIndex(ahp.CriterionID(c.CriterionB))
	if okA && okB && ia > ib {
		c.CriterionA, c.CriterionB = c.CriterionB, c.CriterionA
		c.Value = -c.Value
	}
	return c
}

// Result is one persisted engine run. Rows are append-only; the latest result
// for a session is the one with the newest computed_at.
type Result struct {
	ID               uuid.UUID             `json:"result_id"`
	SessionID        uuid.UUID             `json:"session_id"`
	Method           string                `json:"method"`
	Weights          []ahp.CriterionWeight `json:"weights"`
	ConsistencyRatio float64               `json:"consistency_ratio"`
	IsConsistent     bool                  `json:"is_consistent"`
	Rankings         []ahp.PropertyRanking `json:"rankings"`
	PropertyCount    int                   `json:"property_count"`
	ComputedAt       time.Time             `json:"computed_at"`
}

type Stats struct {
	TotalSessions       int     `json:"total_sessions"`
	TotalProperties     int     `json:"total_properties"`
	TotalResults        int     `json:"total_results"`
	InconsistentResults int     `json:"inconsistent_results"`
	AvgConsistencyRatio float64 `json:"avg_consistency_ratio"`
}

type Store interface {
	CreateSession(ctx context.Context, s *Session) error
	GetSession(ctx context.Context, id uuid.UUID) (*Session, error)
	ListSessions(ctx context.Context, filter SessionFilter) ([]*Session, error)
	UpdateSession(ctx context.Context, s *Session) error

	CreateProperty(ctx context.Context, p *Property) error
	GetProperty(ctx context.Context, id uuid.UUID) (*Property, error)
	ListProperties(ctx context.Context, sessionID uuid.UUID) ([]*Property, error)
	UpdatePropertyScores(ctx context.Context, id uuid.UUID, scores *ahp.CriteriaScores) error
	DeleteProperty(ctx context.Context, id uuid.UUID) error

	UpsertComparison(ctx context.Context, c *Comparison) error
	ListComparisons(ctx context.Context, sessionID uuid.UUID) ([]*Comparison, error)
	DeleteComparisons(ctx context.Context, sessionID uuid.UUID) error

	CreateResult(ctx context.Context, r *Result) error
	GetLatestResult(ctx context.Context, sessionID uuid.UUID) (*Result, error)

	GetStats(ctx context.Context) (*Stats, error)

	Close() error
}
