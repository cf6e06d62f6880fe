package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rogerio-castellano/store-analytics/internal/dashboard"
	"go.uber.org/zap"
)

// readJSON tries to read the body of a request and converts it into JSON.
// An empty body leaves data untouched.
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(data)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

func (h *Handler) respond(w http.ResponseWriter, status int, data any) {
	if err := writeJSON(w, status, data); err != nil {
		h.logger.Warn("write response", zap.Error(err))
	}
}

func (h *Handler) fail(w http.ResponseWriter, status int, msg string) {
	h.respond(w, status, ErrorResponse{Error: msg})
}

// serviceError maps dashboard errors onto HTTP statuses.
func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case r.Context().Err() != nil:
		h.logger.Debug("client went away", zap.String("path", r.URL.Path), zap.Error(err))
	case errors.Is(err, dashboard.ErrInvalidFilter):
		h.fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, dashboard.ErrSuperseded):
		h.fail(w, http.StatusConflict, err.Error())
	case errors.Is(err, dashboard.ErrLoadFailed):
		h.logger.Error("dashboard load failed", zap.String("path", r.URL.Path), zap.Error(err))
		h.fail(w, http.StatusBadGateway, "could not load store data")
	default:
		h.logger.Error("dashboard request failed", zap.String("path", r.URL.Path), zap.Error(err))
		h.fail(w, http.StatusInternalServerError, "internal error")
	}
}
