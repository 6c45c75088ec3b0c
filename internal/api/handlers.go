package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/martinsuchenak/migrateplan/internal/auth"
	"github.com/martinsuchenak/migrateplan/internal/log"
	"github.com/martinsuchenak/migrateplan/internal/model"
	"github.com/martinsuchenak/migrateplan/internal/storage"
	"github.com/martinsuchenak/migrateplan/internal/views"
)

// maxBodyBytes caps create request bodies.
const maxBodyBytes = 1 << 20

// Handler handles HTTP requests
type Handler struct {
	storage storage.Storage
	views   *views.Loader
}

// NewHandler creates a new API handler
func NewHandler(s storage.Storage) *Handler {
	return &Handler{
		storage: s,
		views:   views.NewLoader(s),
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", h.health)
	mux.HandleFunc("GET /api/me", h.me)

	// Workloads
	mux.HandleFunc("GET /api/workloads", h.listWorkloads)
	mux.HandleFunc("POST /api/workloads", h.createWorkload)
	mux.HandleFunc("GET /api/workloads/{id}", h.getWorkload)

	// Data centers
	mux.HandleFunc("GET /api/datacenters", h.listDataCenters)
	mux.HandleFunc("POST /api/datacenters", h.createDataCenter)
	mux.HandleFunc("GET /api/datacenters/{id}", h.getDataCenter)

	// Migration plans
	mux.HandleFunc("GET /api/plans", h.listPlans)
	mux.HandleFunc("POST /api/plans", h.createPlan)
	mux.HandleFunc("GET /api/plans/{id}", h.getPlan)

	mux.HandleFunc("GET /api/strategies", h.listStrategies)

	// Page views
	mux.HandleFunc("GET /api/views/dashboard", h.dashboardView)
	mux.HandleFunc("GET /api/views/planning", h.planningView)
	mux.HandleFunc("GET /api/views/map", h.mapView)
	mux.HandleFunc("GET /api/views/assessment", h.assessmentView)
	mux.HandleFunc("GET /api/views/timeline", h.timelineView)
	mux.HandleFunc("GET /api/views/analytics", h.analyticsView)

	mux.HandleFunc("GET /api/analytics/history", h.analyticsHistory)

	// Keeps unknown API paths out of the UI fallback.
	mux.HandleFunc("/api/", h.notFound)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, http.StatusNotFound, "not found")
}

// health handles GET /api/health
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.Ping(r.Context()); err != nil {
		log.Warn("Database not ready", "error", err)
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "degraded",
			"database": "unavailable",
		})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"database": "ready",
	})
}

// me handles GET /api/me
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	h.writeJSON(w, http.StatusOK, id)
}

// listStrategies handles GET /api/strategies
func (h *Handler) listStrategies(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, model.StrategyList())
}

// userID returns the caller's user ID, writing a 401 when there is none.
func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	return id.UserID, true
}

// decodeBody reads a JSON request body into v, writing a 400 on failure.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Warn("Invalid request body", "path", r.URL.Path, "error", err)
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// queryInt parses an optional non-negative integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New(name + " must be a non-negative integer")
	}
	return n, nil
}

// queryFloat parses an optional finite float query parameter.
func queryFloat(r *http.Request, name string, def float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New(name + " must be a number")
	}
	if err := model.CheckNumber(name, f, -model.MaxAmount, model.MaxAmount); err != nil {
		return 0, err
	}
	return f, nil
}

// writeCreateError maps a failed create to a response. Nothing was stored.
func (h *Handler) writeCreateError(w http.ResponseWriter, kind string, err error) {
	if errors.Is(err, model.ErrInvalid) {
		log.Warn("Rejected "+kind, "error", err)
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Error("Failed to create "+kind, "error", err)
	h.internalError(w, err)
}

// writeGetError maps a failed lookup to a response.
func (h *Handler) writeGetError(w http.ResponseWriter, notFound error, err error) {
	switch {
	case errors.Is(err, storage.ErrInvalidID):
		h.writeError(w, http.StatusBadRequest, "invalid ID")
	case errors.Is(err, notFound):
		h.writeError(w, http.StatusNotFound, notFound.Error())
	default:
		h.internalError(w, err)
	}
}

// writeJSON writes a JSON response. The body is encoded before the header
// is sent so that an encoding failure becomes a 500.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		h.internalError(w, fmt.Errorf("encoding response: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// writeError writes an error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// internalError logs the error and writes a generic 500 response
func (h *Handler) internalError(w http.ResponseWriter, err error) {
	log.Error("Internal Server Error", "error", err)
	h.writeError(w, http.StatusInternalServerError, "Internal Server Error")
}
