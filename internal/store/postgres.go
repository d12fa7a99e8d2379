package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hearthside-Labs/Homerank/internal/ahp"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const sessionColumns = `session_id, client_id, name, status,
	ref_lat, ref_lng, ref_label, weight_method,
	created_at, updated_at`

func (s *PostgresStore) CreateSession(ctx context.Context, sess *Session) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO homerank_sessions (client_id, name, status, ref_lat, ref_lng, ref_label, weight_method)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING session_id, created_at, updated_at`,
		sess.ClientID, sess.Name, sess.Status, sess.RefLat, sess.RefLng, sess.RefLabel, sess.WeightMethod,
	).Scan(&sess.ID, &sess.CreatedAt, &sess.UpdatedAt)
}

func (s *PostgresStore) GetSession(ctx context.Context, id uuid.UUID) (*Session, error) {
	sess := &Session{}
	var refLabel, weightMethod sql.NullString
	err := s.pool.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM homerank_sessions WHERE session_id = $1`, id,
	).Scan(
		&sess.ID, &sess.ClientID, &sess.Name, &sess.Status,
		&sess.RefLat, &sess.RefLng, &refLabel, &weightMethod,
		&sess.CreatedAt, &sess.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if refLabel.Valid {
		sess.RefLabel = refLabel.String
	}
	if weightMethod.Valid {
		sess.WeightMethod = weightMethod.String
	}
	return sess, nil
}

func (s *PostgresStore) ListSessions(ctx context.Context, filter SessionFilter) ([]*Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM homerank_sessions WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.ClientID != "" {
		n++
		query += fmt.Sprintf(" AND client_id = $%d", n)
		args = append(args, filter.ClientID)
	}
	if filter.Status != nil {
		n++
		query += fmt.Sprintf(" AND status = $%d", n)
		args = append(args, string(*filter.Status))
	}

	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess := &Session{}
		var refLabel, weightMethod sql.NullString
		if err := rows.Scan(
			&sess.ID, &sess.ClientID, &sess.Name, &sess.Status,
			&sess.RefLat, &sess.RefLng, &refLabel, &weightMethod,
			&sess.CreatedAt, &sess.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if refLabel.Valid {
			sess.RefLabel = refLabel.String
		}
		if weightMethod.Valid {
			sess.WeightMethod = weightMethod.String
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

func (s *PostgresStore) UpdateSession(ctx context.Context, sess *Session) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE homerank_sessions SET
			name = $2, status = $3,
			ref_lat = $4, ref_lng = $5, ref_label = $6,
			weight_method = $7,
			updated_at = now()
		WHERE session_id = $1`,
		sess.ID, sess.Name, sess.Status,
		sess.RefLat, sess.RefLng, sess.RefLabel,
		sess.WeightMethod,
	)
	return err
}

const propertyColumns = `property_id, session_id, title, url, price_text,
	lat, lng, attrs, scores,
	created_at, updated_at`

func (s *PostgresStore) CreateProperty(ctx context.Context, p *Property) error {
	attrsJSON, _ := json.Marshal(p.Attrs)
	return s.pool.QueryRow(ctx, `
		INSERT INTO homerank_properties (session_id, title, url, price_text, lat, lng, attrs)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING property_id, created_at, updated_at`,
		p.SessionID, p.Title, p.URL, p.PriceText, p.Lat, p.Lng, attrsJSON,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (s *PostgresStore) GetProperty(ctx context.Context, id uuid.UUID) (*Property, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+propertyColumns+`
		FROM homerank_properties WHERE property_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	props, err := scanProperties(rows)
	if err != nil {
		return nil, err
	}
	if len(props) == 0 {
		return nil, nil
	}
	return props[0], nil
}

func (s *PostgresStore) ListProperties(ctx context.Context, sessionID uuid.UUID) ([]*Property, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+propertyColumns+`
		FROM homerank_properties WHERE session_id = $1
		ORDER BY created_at ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

func (s *PostgresStore) UpdatePropertyScores(ctx context.Context, id uuid.UUID, scores *ahp.CriteriaScores) error {
	scoresJSON, _ := json.Marshal(scores)
	_, err := s.pool.Exec(ctx, `
		UPDATE homerank_properties SET scores = $2, updated_at = now()
		WHERE property_id = $1`,
		id, scoresJSON,
	)
	return err
}

func (s *PostgresStore) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM homerank_properties WHERE property_id = $1`, id)
	return err
}

func scanProperties(rows pgx.Rows) ([]*Property, error) {
	var props []*Property
	for rows.Next() {
		p := &Property{}
		var url, priceText sql.NullString
		var attrsJSON, scoresJSON []byte
		if err := rows.Scan(
			&p.ID, &p.SessionID, &p.Title, &url, &priceText,
			&p.Lat, &p.Lng, &attrsJSON, &scoresJSON,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if url.Valid {
			p.URL = url.String
		}
		if priceText.Valid {
			p.PriceText = priceText.String
		}
		if attrsJSON != nil {
			_ = json.Unmarshal(attrsJSON, &p.Attrs)
		}
		if scoresJSON != nil {
			scores := &ahp.CriteriaScores{}
			if err := json.Unmarshal(scoresJSON, scores); err == nil {
				p.Scores = scores
			}
		}
		props = append(props, p)
	}
	return props, rows.Err()
}
