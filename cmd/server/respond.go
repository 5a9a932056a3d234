package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/Simplici0/printdesk/internal/apperr"
	"github.com/Simplici0/printdesk/internal/store"
)

const maxBodyBytes = 1 << 20

type errorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// writeJSON writes v as a JSON response with the given status code. The body
// is encoded before the header is written; encoding failures answer 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.WithError(err).Error("encode response")
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(errorResponse{Error: errorPayload{Kind: "internal", Message: "internal error"}})
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.WithError(err).WithField("path", r.URL.Path).Error("request error")
	}
	writeJSON(w, status, errorResponse{Error: errorPayload{
		Kind:    apperr.Kind(err),
		Message: apperr.Message(err),
	}})
}

// decodeJSON reads exactly one JSON value into dst, rejecting unknown fields.
// An empty body leaves dst untouched when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) && allowEmpty {
			return nil
		}
		return fmt.Errorf("invalid JSON body: %v: %w", err, apperr.ErrInvalid)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid JSON body: trailing data: %w", apperr.ErrInvalid)
	}
	return nil
}

// idParam returns the {id} route parameter if it is a well-formed id.
func idParam(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if !store.ValidID(id) {
		return "", fmt.Errorf("invalid id %q: %w", id, apperr.ErrInvalid)
	}
	return id, nil
}
