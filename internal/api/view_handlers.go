package api

import (
	"errors"
	"net/http"

	"github.com/martinsuchenak/migrateplan/internal/mapview"
	"github.com/martinsuchenak/migrateplan/internal/model"
	"github.com/martinsuchenak/migrateplan/internal/views"
)

// View endpoints never fail on a read error: the loader substitutes empty
// data and marks the payload degraded.

func (h *Handler) dashboardView(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.views.Dashboard(r.Context(), uid))
}

func (h *Handler) planningView(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}
	page, err := h.views.Planning(r.Context(), uid, views.PlanningQuery{
		Search:   r.URL.Query().Get("q"),
		Strategy: r.URL.Query().Get("strategy"),
	})
	if errors.Is(err, model.ErrInvalid) {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

// mapView handles GET /api/views/map?zoom=&pan_x=&pan_y=&action=
// action is one of zoom_in, zoom_out or reset and applies to the given
// viewport.
func (h *Handler) mapView(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}

	v := mapview.NewViewport()
	var err error
	if v.Zoom, err = queryFloat(r, "zoom", 1); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if v.PanX, err = queryFloat(r, "pan_x", 0); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if v.PanY, err = queryFloat(r, "pan_y", 0); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := v.Apply(r.URL.Query().Get("action")); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, h.views.Map(r.Context(), uid, v))
}

func (h *Handler) assessmentView(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.views.Assessment(r.Context(), uid))
}

func (h *Handler) timelineView(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.views.Timeline(r.Context(), uid))
}

func (h *Handler) analyticsView(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.views.Analytics(r.Context(), uid))
}

// analyticsHistory handles GET /api/analytics/history
func (h *Handler) analyticsHistory(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}
	limit, err := queryInt(r, "limit", 30)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snapshots, err := h.storage.ListSnapshots(r.Context(), uid, limit)
	if err != nil {
		h.internalError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, snapshots)
}
