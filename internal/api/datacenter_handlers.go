package api

import (
	"net/http"

	"github.com/martinsuchenak/migrateplan/internal/log"
	"github.com/martinsuchenak/migrateplan/internal/metrics"
	"github.com/martinsuchenak/migrateplan/internal/model"
	"github.com/martinsuchenak/migrateplan/internal/storage"
)

// listDataCenters handles GET /api/datacenters
func (h *Handler) listDataCenters(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	dcType := model.DataCenterType(r.URL.Query().Get("type"))
	if dcType != "" && !dcType.Valid() {
		h.writeError(w, http.StatusBadRequest, "type must be source or target")
		return
	}

	log.Debug("Listing data centers", "user_id", uid, "type", string(dcType))

	dcs, err := h.storage.ListDataCenters(r.Context(), &model.DataCenterFilter{
		UserID: uid,
		Type:   dcType,
		Limit:  limit,
	})
	if err != nil {
		log.Error("Failed to list data centers", "error", err, "user_id", uid)
		h.internalError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dcs)
}

// getDataCenter handles GET /api/datacenters/{id}
func (h *Handler) getDataCenter(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}

	dc, err := h.storage.GetDataCenter(r.Context(), uid, r.PathValue("id"))
	if err != nil {
		h.writeGetError(w, storage.ErrDataCenterNotFound, err)
		return
	}
	h.writeJSON(w, http.StatusOK, dc)
}

// createDataCenter handles POST /api/datacenters
func (h *Handler) createDataCenter(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(w, r)
	if !ok {
		return
	}

	var dc model.DataCenter
	if !h.decodeBody(w, r, &dc) {
		return
	}
	dc.ID = ""
	dc.UserID = uid

	if err := h.storage.CreateDataCenter(r.Context(), &dc); err != nil {
		h.writeCreateError(w, "data center", err)
		return
	}

	metrics.RecordsCreated.WithLabelValues("datacenter").Inc()
	log.Info("Data center created", "id", dc.ID, "name", dc.Name, "user_id", uid)
	h.writeJSON(w, http.StatusCreated, dc)
}
