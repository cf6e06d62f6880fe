package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/store-analytics/internal/models"
)

// GetDashboardHandler godoc
// @Summary Compute the dashboard
// @Description Loads every store and product, applies the filter and returns the aggregates. Does not change the reload session.
// @Tags dashboard
// @Produce json
// @Param store query string false "Store id or all"
// @Param category query string false "Category id or all"
// @Param stockLevel query string false "low, medium, high or all"
// @Param priceRange query string false "min-max or min+"
// @Success 200 {object} dashboard.Snapshot
// @Failure 400 {object} ErrorResponse
// @Failure 429 {string} string "Too many requests"
// @Failure 502 {object} ErrorResponse
// @Router /dashboard [get]
func (h *Handler) GetDashboardHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := models.Filter{
		Store:      q.Get("store"),
		Category:   q.Get("category"),
		StockLevel: q.Get("stockLevel"),
		PriceRange: q.Get("priceRange"),
	}

	snap, err := h.svc.Compute(r.Context(), f)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, snap)
}

// ReloadDashboardHandler godoc
// @Summary Reload the dashboard session
// @Description Starts a new reload with the given filter. A reload started later supersedes this one.
// @Tags dashboard
// @Accept json
// @Produce json
// @Param filter body ReloadRequest false "Filter facets"
// @Success 200 {object} dashboard.Snapshot
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 429 {string} string "Too many requests"
// @Failure 502 {object} ErrorResponse
// @Router /dashboard/reload [post]
func (h *Handler) ReloadDashboardHandler(w http.ResponseWriter, r *http.Request) {
	var req ReloadRequest
	if err := readJSON(w, r, &req); err != nil {
		h.fail(w, http.StatusBadRequest, "invalid input")
		return
	}

	f, err := req.Filter()
	if err != nil {
		h.fail(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := h.svc.Reload(r.Context(), f)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, snap)
}

// GetDashboardStateHandler godoc
// @Summary Reload session state
// @Tags dashboard
// @Produce json
// @Success 200 {object} dashboard.State
// @Router /dashboard/state [get]
func (h *Handler) GetDashboardStateHandler(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, h.svc.State())
}

// GetFilterOptionsHandler godoc
// @Summary Filter options
// @Description Stores, categories, stock levels and price ranges offered by the latest reload.
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.FilterOptions
// @Failure 404 {object} ErrorResponse
// @Router /dashboard/filters [get]
func (h *Handler) GetFilterOptionsHandler(w http.ResponseWriter, r *http.Request) {
	snap := h.svc.Current()
	if snap == nil {
		h.fail(w, http.StatusNotFound, "no dashboard loaded yet")
		return
	}
	h.respond(w, http.StatusOK, snap.Options)
}

// HealthHandler godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, HealthResponse{Status: "ok"})
}
