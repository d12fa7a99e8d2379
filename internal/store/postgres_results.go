package store

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (s *PostgresStore) UpsertComparison(ctx context.Context, c *Comparison) error {
	canonical := c.Canonical()
	err := s.pool.QueryRow(ctx, `
		INSERT INTO homerank_comparisons (session_id, criterion_a, criterion_b, value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id, criterion_a, criterion_b)
		DO UPDATE SET value = EXCLUDED.value, updated_at = now()
		RETURNING updated_at`,
		canonical.SessionID, canonical.CriterionA, canonical.CriterionB, canonical.Value,
	).Scan(&canonical.UpdatedAt)
	if err != nil {
		return err
	}
	*c = canonical
	return nil
}

func (s *PostgresStore) ListComparisons(ctx context.Context, sessionID uuid.UUID) ([]*Comparison, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT session_id, criterion_a, criterion_b, value, updated_at
		FROM homerank_comparisons WHERE session_id = $1
		ORDER BY criterion_a, criterion_b`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comparisons []*Comparison
	for rows.Next() {
		c := &Comparison{}
		if err := rows.Scan(&c.SessionID, &c.CriterionA, &c.CriterionB, &c.Value, &c.UpdatedAt); err != nil {
			return nil, err
		}
		comparisons = append(comparisons, c)
	}
	return comparisons, rows.Err()
}

func (s *PostgresStore) DeleteComparisons(ctx context.Context, sessionID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM homerank_comparisons WHERE session_id = $1`, sessionID)
	return err
}

func (s *PostgresStore) CreateResult(ctx context.Context, r *Result) error {
	weightsJSON, _ := json.Marshal(r.Weights)
	rankingsJSON, _ := json.Marshal(r.Rankings)
	return s.pool.QueryRow(ctx, `
		INSERT INTO homerank_results (session_id, method, weights, consistency_ratio, is_consistent, rankings, property_count, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING result_id`,
		r.SessionID, r.Method, weightsJSON, r.ConsistencyRatio, r.IsConsistent, rankingsJSON, r.PropertyCount, r.ComputedAt,
	).Scan(&r.ID)
}

func (s *PostgresStore) GetLatestResult(ctx context.Context, sessionID uuid.UUID) (*Result, error) {
	r := &Result{}
	var weightsJSON, rankingsJSON []byte
	err := s.pool.QueryRow(ctx, `
		SELECT result_id, session_id, method, weights, consistency_ratio, is_consistent, rankings, property_count, computed_at
		FROM homerank_results WHERE session_id = $1
		ORDER BY computed_at DESC LIMIT 1`, sessionID,
	).Scan(
		&r.ID, &r.SessionID, &r.Method, &weightsJSON,
		&r.ConsistencyRatio, &r.IsConsistent, &rankingsJSON,
		&r.PropertyCount, &r.ComputedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if weightsJSON != nil {
		_ = json.Unmarshal(weightsJSON, &r.Weights)
	}
	if rankingsJSON != nil {
		_ = json.Unmarshal(rankingsJSON, &r.Rankings)
	}
	return r, nil
}

func (s *PostgresStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM homerank_sessions),
			(SELECT COUNT(*) FROM homerank_properties),
			(SELECT COUNT(*) FROM homerank_results),
			(SELECT COUNT(*) FROM homerank_results WHERE NOT is_consistent),
			(SELECT COALESCE(AVG(consistency_ratio), 0) FROM homerank_results)`,
	).Scan(
		&stats.TotalSessions, &stats.TotalProperties, &stats.TotalResults,
		&stats.InconsistentResults, &stats.AvgConsistencyRatio,
	)
	return stats, err
}
