package main

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Simplici0/printdesk/internal/apperr"
	"github.com/Simplici0/printdesk/internal/calendar"
	"github.com/Simplici0/printdesk/internal/store"
)

type scheduleMonthResponse struct {
	calendar.Month
	Prev [2]int `json:"prev"`
	Next [2]int `json:"next"`
}

// handleScheduleMonth returns the month grid for ?year=&month=, defaulting to
// the current month. The grid's leading and trailing days are included in the
// entry range so their badges are filled in.
func (s *server) handleScheduleMonth(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r, time.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}

	estimateID := r.URL.Query().Get("estimate_id")
	if estimateID != "" && !store.ValidID(estimateID) {
		writeError(w, r, fmt.Errorf("invalid estimate_id %q: %w", estimateID, apperr.ErrInvalid))
		return
	}

	cells := calendar.MonthGrid(year, month)
	entries, err := s.store.ListSchedule(r.Context(), store.ScheduleFilter{
		From:       cells[0].ISO,
		To:         cells[len(cells)-1].ISO,
		EstimateID: estimateID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := scheduleMonthResponse{Month: calendar.BuildMonth(year, month, entries)}
	resp.Prev[0], resp.Prev[1] = calendar.Shift(year, month, -1)
	resp.Next[0], resp.Next[1] = calendar.Shift(year, month, 1)
	writeJSON(w, http.StatusOK, resp)
}

func parseYearMonth(r *http.Request, now time.Time) (int, int, error) {
	year, month := now.Year(), int(now.Month())

	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1 || y > 9999 {
			return 0, 0, fmt.Errorf("invalid year %q: %w", raw, apperr.ErrInvalid)
		}
		year = y
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			return 0, 0, fmt.Errorf("invalid month %q: %w", raw, apperr.ErrInvalid)
		}
		month = m
	}
	return year, month, nil
}

func (s *server) handleScheduleCreate(w http.ResponseWriter, r *http.Request) {
	estimateID, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req scheduleRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, invalid(err))
		return
	}

	entry, err := s.store.CreateScheduleEntry(r.Context(), estimateID, req.Date, req.Task)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *server) handleScheduleToggle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := s.store.ToggleScheduleEntry(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *server) handleScheduleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.store.DeleteScheduleEntry(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
