package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Simplici0/printdesk/internal/apperr"
)

// Estimate is a quote header owned by a client.
type Estimate struct {
	ID         string    `json:"id"`
	ClientID   string    `json:"client_id"`
	ClientName string    `json:"client_name"`
	Title      string    `json:"title"`
	CreatedAt  time.Time `json:"created_at"`
}

const estimateColumns = `
	e.id, e.client_id, c.name, e.title, e.created_at
	FROM estimates e
	JOIN clients c ON c.id = e.client_id
`

// ListEstimates returns a client's estimates newest first.
func (s *Store) ListEstimates(ctx context.Context, clientID string) ([]Estimate, error) {
	if _, err := s.GetClient(ctx, clientID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+estimateColumns+`
		WHERE e.client_id = ?
		ORDER BY e.created_at DESC, e.rowid DESC
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("query estimates: %w", err)
	}
	defer rows.Close()

	estimates := make([]Estimate, 0)
	for rows.Next() {
		e, err := scanEstimate(rows)
		if err != nil {
			return nil, err
		}
		estimates = append(estimates, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate estimates: %w", err)
	}

	return estimates, nil
}

// GetEstimate loads one estimate with its client name.
func (s *Store) GetEstimate(ctx context.Context, id string) (Estimate, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+estimateColumns+`WHERE e.id = ?`, id)
	e, err := scanEstimate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Estimate{}, fmt.Errorf("estimate %s: %w", id, apperr.ErrNotFound)
	}
	return e, err
}

// CreateEstimate adds an estimate header to a client.
func (s *Store) CreateEstimate(ctx context.Context, clientID, title string) (Estimate, error) {
	if _, err := s.GetClient(ctx, clientID); err != nil {
		return Estimate{}, err
	}

	id := newID()
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO estimates (id, client_id, title, created_at)
		VALUES (?, ?, ?, ?)
	`, id, clientID, title, s.timestamp()); err != nil {
		return Estimate{}, fmt.Errorf("insert estimate: %w", err)
	}
	return s.GetEstimate(ctx, id)
}

// DeleteEstimate removes an estimate with its details and schedule.
func (s *Store) DeleteEstimate(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM estimates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete estimate: %w", err)
	}
	return expectAffected(result, "estimate", id)
}

func scanEstimate(row scanner) (Estimate, error) {
	var (
		e       Estimate
		created string
	)
	if err := row.Scan(&e.ID, &e.ClientID, &e.ClientName, &e.Title, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Estimate{}, err
		}
		return Estimate{}, fmt.Errorf("scan estimate: %w", err)
	}

	var err error
	if e.CreatedAt, err = parseTime(created); err != nil {
		return Estimate{}, err
	}
	return e, nil
}
