package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Simplici0/printdesk/internal/apperr"
	"github.com/Simplici0/printdesk/internal/calendar"
)

// ScheduleFilter narrows ListSchedule. Empty fields are ignored; From and To
// are inclusive ISO dates.
type ScheduleFilter struct {
	From       string
	To         string
	EstimateID string
}

// ListSchedule returns schedule entries ordered by date, then task.
func (s *Store) ListSchedule(ctx context.Context, f ScheduleFilter) ([]calendar.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, estimate_id, date, task, done
		FROM schedule_entries
		WHERE (? = '' OR date >= ?)
		  AND (? = '' OR date <= ?)
		  AND (? = '' OR estimate_id = ?)
		ORDER BY date ASC, rowid ASC
	`, f.From, f.From, f.To, f.To, f.EstimateID, f.EstimateID)
	if err != nil {
		return nil, fmt.Errorf("query schedule: %w", err)
	}
	defer rows.Close()

	entries := make([]calendar.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedule: %w", err)
	}

	calendar.SortEntries(entries)
	return entries, nil
}

// CreateScheduleEntry books a task for an estimate on an ISO date.
func (s *Store) CreateScheduleEntry(ctx context.Context, estimateID, date, task string) (calendar.Entry, error) {
	day, err := calendar.ParseDate(date)
	if err != nil {
		return calendar.Entry{}, fmt.Errorf("%v: %w", err, apperr.ErrInvalid)
	}
	if _, err := s.GetEstimate(ctx, estimateID); err != nil {
		return calendar.Entry{}, err
	}

	e := calendar.Entry{ID: newID(), EstimateID: estimateID, Date: day, Task: task}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO schedule_entries (id, estimate_id, date, task, done, created_at)
		VALUES (?, ?, ?, ?, FALSE, ?)
	`, e.ID, e.EstimateID, e.Date, e.Task, s.timestamp()); err != nil {
		if isUniqueViolation(err) {
			return calendar.Entry{}, fmt.Errorf("%s is already scheduled on %s: %w", task, day, apperr.ErrConflict)
		}
		return calendar.Entry{}, fmt.Errorf("insert schedule entry: %w", err)
	}
	return e, nil
}

// ToggleScheduleEntry flips the done flag and returns the updated entry.
func (s *Store) ToggleScheduleEntry(ctx context.Context, id string) (calendar.Entry, error) {
	result, err := s.db.ExecContext(ctx, `UPDATE schedule_entries SET done = NOT done WHERE id = ?`, id)
	if err != nil {
		return calendar.Entry{}, fmt.Errorf("toggle schedule entry: %w", err)
	}
	if err := expectAffected(result, "schedule entry", id); err != nil {
		return calendar.Entry{}, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, estimate_id, date, task, done
		FROM schedule_entries
		WHERE id = ?
	`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return calendar.Entry{}, fmt.Errorf("schedule entry %s: %w", id, apperr.ErrNotFound)
	}
	return e, err
}

// DeleteScheduleEntry removes one entry.
func (s *Store) DeleteScheduleEntry(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM schedule_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete schedule entry: %w", err)
	}
	return expectAffected(result, "schedule entry", id)
}

func scanEntry(row scanner) (calendar.Entry, error) {
	var e calendar.Entry
	if err := row.Scan(&e.ID, &e.EstimateID, &e.Date, &e.Task, &e.Done); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return calendar.Entry{}, err
		}
		return calendar.Entry{}, fmt.Errorf("scan schedule entry: %w", err)
	}
	return e, nil
}
