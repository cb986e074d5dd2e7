package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alfredjeanlab/salesdash/internal/model"
)

// NewHTTPHandler returns an http.Handler with all routes and middleware
// registered.
func (s *SalesServer) NewHTTPHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/sales", s.handleListSales)
	mux.HandleFunc("GET /api/sales/filter-options", s.handleFilterOptions)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.handler())

	var h http.Handler = mux
	h = corsMiddleware(s.corsOrigins, h)
	h = s.recoveryMiddleware(h)
	h = s.accessLogMiddleware(h)
	h = requestIDMiddleware(h)
	return h
}

// handleListSales handles GET /api/sales.
func (s *SalesServer) handleListSales(w http.ResponseWriter, r *http.Request) {
	params := model.ParamsFromQuery(r.URL.Query())

	page, err := s.sales.FetchPage(r.Context(), params)
	if err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			s.metrics.rejections.Inc()
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":   "Invalid query parameters",
				"details": ve.Messages(),
			})
			return
		}
		s.metrics.storeErrors.WithLabelValues("list_sales").Inc()
		s.writeFailure(w, r, "Failed to fetch sales data", err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// handleFilterOptions handles GET /api/sales/filter-options.
func (s *SalesServer) handleFilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.sales.FetchFilterOptions(r.Context())
	if err != nil {
		s.metrics.storeErrors.WithLabelValues("filter_options").Inc()
		s.writeFailure(w, r, "Failed to fetch filter options", err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

// handleHealth handles GET /api/health.
func (s *SalesServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.ping(r.Context()); err != nil {
		s.logger.Warn("health check failed", "request_id", requestIDFrom(r.Context()), "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeFailure logs err and writes a 500 with a fixed message. The error text
// is only included when the server exposes errors.
func (s *SalesServer) writeFailure(w http.ResponseWriter, r *http.Request, message string, err error) {
	s.logger.Error(message,
		"request_id", requestIDFrom(r.Context()),
		"path", r.URL.Path,
		"error", err,
	)
	body := map[string]string{"error": message}
	if s.exposeErrors {
		body["message"] = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, body)
}

// writeJSON marshals data as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
