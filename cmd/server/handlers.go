package main

import (
	"net/http"
	"strings"

	"github.com/Simplici0/printdesk/internal/store"
)

type server struct {
	store *store.Store
}

func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DB().PingContext(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleClientsList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	clients, err := s.store.ListClients(r.Context(), query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

func (s *server) handleClientCreate(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, invalid(err))
		return
	}

	client, err := s.store.CreateClient(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

func (s *server) handleClientUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req clientRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, invalid(err))
		return
	}

	client, err := s.store.UpdateClient(r.Context(), id, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (s *server) handleClientDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.store.DeleteClient(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleEstimatesList(w http.ResponseWriter, r *http.Request) {
	clientID, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	estimates, err := s.store.ListEstimates(r.Context(), clientID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, estimates)
}

func (s *server) handleEstimateCreate(w http.ResponseWriter, r *http.Request) {
	clientID, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req estimateRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, invalid(err))
		return
	}

	estimate, err := s.store.CreateEstimate(r.Context(), clientID, req.Title)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, estimate)
}

func (s *server) handleEstimateDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.store.DeleteEstimate(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleDetailsList(w http.ResponseWriter, r *http.Request) {
	estimateID, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := s.store.GetEstimate(r.Context(), estimateID); err != nil {
		writeError(w, r, err)
		return
	}
	details, err := s.store.ListDetails(r.Context(), estimateID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (s *server) handleDetailCreate(w http.ResponseWriter, r *http.Request) {
	estimateID, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req lineRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, r, invalid(err))
		return
	}

	detail, err := s.store.CreateDetail(r.Context(), estimateID, req.LineItem())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, detail)
}

func (s *server) handleDetailDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.store.DeleteDetail(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
