package api

import (
	"net/http"

	"github.com/martinsuchenak/migrateplan/internal/log"
	"github.com/martinsuchenak/migrateplan/internal/metrics"
	"github.com/martinsuchenak/migrateplan/internal/model"
	"github.com/martinsuchenak/migrateplan/internal/storage"
)

// listWorkloads handles GET /api/workloads
func (h *Handler) listWorkloads(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	strategy := model.Strategy(r.URL.Query().Get("strategy"))
	if strategy == "all" {
		strategy = ""
	}
	if strategy != "" && !strategy.Valid() {
		h.writeError(w, http.StatusBadRequest, "unknown strategy")
		return
	}

	filter := &model.WorkloadFilter{
		UserID:   uid,
		Strategy: strategy,
		Query:    r.URL.Query().Get("q"),
		Limit:    limit,
	}
	log.Debug("Listing workloads", "user_id", uid, "strategy", string(strategy), "limit", limit)

	workloads, err := h.storage.ListWorkloads(r.Context(), filter)
	if err != nil {
		log.Error("Failed to list workloads", "error", err, "user_id", uid)
		h.internalError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, workloads)
}

// getWorkload handles GET /api/workloads/{id}
func (h *Handler) getWorkload(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}

	workload, err := h.storage.GetWorkload(r.Context(), uid, r.PathValue("id"))
	if err != nil {
		h.writeGetError(w, storage.ErrWorkloadNotFound, err)
		return
	}
	h.writeJSON(w, http.StatusOK, workload)
}

// createWorkload handles POST /api/workloads
func (h *Handler) createWorkload(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}

	var workload model.Workload
	if !h.decodeBody(w, r, &workload) {
		return
	}
	workload.ID = ""
	workload.UserID = uid

	if err := h.storage.CreateWorkload(r.Context(), &workload); err != nil {
		h.writeCreateError(w, "workload", err)
		return
	}

	metrics.RecordsCreated.WithLabelValues("workload").Inc()
	log.Info("Workload created", "id", workload.ID, "name", workload.Name, "user_id", uid)
	h.writeJSON(w, http.StatusCreated, workload)
}
