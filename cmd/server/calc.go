package main

import (
	"fmt"
	"net/http"

	"github.com/Simplici0/printdesk/internal/apperr"
	"github.com/Simplici0/printdesk/internal/pricing"
)

type calcResponse struct {
	Item  pricing.LineItem `json:"item"`
	Cost  pricing.LineCost `json:"cost"`
	Plate string           `json:"plate"`
	Print string           `json:"print"`
}

// handleCalc prices a line without storing it.
func (s *server) handleCalc(w http.ResponseWriter, r *http.Request) {
	var req lineRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, invalid(err))
		return
	}

	item := req.LineItem()
	cost := pricing.EstimateLine(item)
	if !cost.Finite() {
		writeError(w, r, fmt.Errorf("line costs are out of range: %w", apperr.ErrInvalid))
		return
	}
	writeJSON(w, http.StatusOK, calcResponse{
		Item:  item,
		Cost:  cost,
		Plate: pricing.PlateString(item.JobSpec),
		Print: pricing.PrintString(item.JobSpec),
	})
}
