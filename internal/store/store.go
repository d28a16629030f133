// Package store persists capture history in Postgres. The store is
// optional: when no DSN is configured the service runs without it and
// history endpoints report it as unavailable.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sqlc-dev/pqtype"
)

// Store wraps access to the captures table on a shared *sql.DB.
type Store struct {
	DB *sql.DB
}

// New creates a new Store that uses a shared *sql.DB with pooling.
func New(database *sql.DB) *Store {
	return &Store{DB: database}
}

// CaptureRow is one persisted capture history entry.
type CaptureRow struct {
	ID            uuid.UUID       `json:"id"`
	URL           string          `json:"url"`
	Device        string          `json:"device"`
	Engine        string          `json:"engine"`
	TotalElements int             `json:"totalElements"`
	DurationMS    int64           `json:"durationMs"`
	Summary       json.RawMessage `json:"summary,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// InsertCapture records one finished capture. The summary is any
// JSON-marshalable digest of the result (counts, fonts, colors); nil
// stores a NULL.
func (s *Store) InsertCapture(ctx context.Context, url, device, engine string, totalElements int, durationMS int64, summary any) (uuid.UUID, error) {
	id := uuid.New()

	var payload pqtype.NullRawMessage
	if summary != nil {
		raw, err := json.Marshal(summary)
		if err != nil {
			return uuid.Nil, err
		}
		payload = pqtype.NullRawMessage{RawMessage: raw, Valid: true}
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO captures (id, url, device, engine, total_elements, duration_ms, summary)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, url, device, engine, totalElements, durationMS, payload)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// ListRecent returns the newest capture rows, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]CaptureRow, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, url, device, engine, total_elements, duration_ms, summary, created_at
		FROM captures
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CaptureRow{}
	for rows.Next() {
		var row CaptureRow
		var summary pqtype.NullRawMessage
		if err := rows.Scan(&row.ID, &row.URL, &row.Device, &row.Engine, &row.TotalElements, &row.DurationMS, &summary, &row.CreatedAt); err != nil {
			return nil, err
		}
		if summary.Valid {
			row.Summary = summary.RawMessage
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
