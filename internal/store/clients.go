package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Simplici0/printdesk/internal/apperr"
)

// Client is a customer of the shop.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListClients returns clients newest first, optionally filtered by a name
// substring.
func (s *Store) ListClients(ctx context.Context, query string) ([]Client, error) {
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM clients
		WHERE (? = '' OR name LIKE ?)
		ORDER BY created_at DESC, rowid DESC
	`, query, search)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	clients := make([]Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}

	return clients, nil
}

// GetClient loads one client.
func (s *Store) GetClient(ctx context.Context, id string) (Client, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM clients
		WHERE id = ?
	`, id)
	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Client{}, fmt.Errorf("client %s: %w", id, apperr.ErrNotFound)
	}
	return c, err
}

// FindClientByName returns the oldest client with exactly name.
func (s *Store) FindClientByName(ctx context.Context, name string) (Client, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM clients
		WHERE name = ?
		ORDER BY created_at ASC, rowid ASC
		LIMIT 1
	`, name)
	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Client{}, fmt.Errorf("client %q: %w", name, apperr.ErrNotFound)
	}
	return c, err
}

// CreateClient inserts a client.
func (s *Store) CreateClient(ctx context.Context, name string) (Client, error) {
	now := s.timestamp()
	id := newID()
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO clients (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, id, name, now, now); err != nil {
		return Client{}, fmt.Errorf("insert client: %w", err)
	}
	return s.GetClient(ctx, id)
}

// UpdateClient renames a client.
func (s *Store) UpdateClient(ctx context.Context, id, name string) (Client, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE clients
		SET
			name = ?,
			updated_at = ?
		WHERE id = ?
	`, name, s.timestamp(), id)
	if err != nil {
		return Client{}, fmt.Errorf("update client: %w", err)
	}
	if err := expectAffected(result, "client", id); err != nil {
		return Client{}, err
	}
	return s.GetClient(ctx, id)
}

// DeleteClient removes a client along with its estimates.
func (s *Store) DeleteClient(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return expectAffected(result, "client", id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanClient(row scanner) (Client, error) {
	var (
		c                Client
		created, updated string
	)
	if err := row.Scan(&c.ID, &c.Name, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Client{}, err
		}
		return Client{}, fmt.Errorf("scan client: %w", err)
	}

	var err error
	if c.CreatedAt, err = parseTime(created); err != nil {
		return Client{}, err
	}
	if c.UpdatedAt, err = parseTime(updated); err != nil {
		return Client{}, err
	}
	return c, nil
}

func expectAffected(result sql.Result, what, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", what, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s %s: %w", what, id, apperr.ErrNotFound)
	}
	return nil
}
