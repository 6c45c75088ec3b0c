package api

import (
	"net/http"

	"github.com/martinsuchenak/migrateplan/internal/log"
	"github.com/martinsuchenak/migrateplan/internal/metrics"
	"github.com/martinsuchenak/migrateplan/internal/model"
	"github.com/martinsuchenak/migrateplan/internal/storage"
)

// listPlans handles GET /api/plans
func (h *Handler) listPlans(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	plans, err := h.storage.ListPlans(r.Context(), &model.PlanFilter{UserID: uid, Limit: limit})
	if err != nil {
		log.Error("Failed to list plans", "error", err, "user_id", uid)
		h.internalError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, plans)
}

// getPlan handles GET /api/plans/{id}
func (h *Handler) getPlan(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}

	plan, err := h.storage.GetPlan(r.Context(), uid, r.PathValue("id"))
	if err != nil {
		h.writeGetError(w, storage.ErrPlanNotFound, err)
		return
	}
	h.writeJSON(w, http.StatusOK, plan)
}

// createPlan handles POST /api/plans
func (h *Handler) createPlan(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}

	var plan model.MigrationPlan
	if !h.decodeBody(w, r, &plan) {
		return
	}
	plan.ID = ""
	plan.UserID = uid

	if err := h.storage.CreatePlan(r.Context(), &plan); err != nil {
		h.writeCreateError(w, "plan", err)
		return
	}

	metrics.RecordsCreated.WithLabelValues("plan").Inc()
	log.Info("Migration plan created", "id", plan.ID, "name", plan.Name, "user_id", uid)
	h.writeJSON(w, http.StatusCreated, plan)
}
