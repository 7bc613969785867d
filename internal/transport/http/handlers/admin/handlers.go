package adminhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ponto/internal/auth"
	"ponto/internal/domain/events"
	"ponto/internal/platform/metrics"
	"ponto/internal/transport/http/api"
	"ponto/internal/transport/http/middleware"
	"ponto/internal/transport/http/shared"
)

type Handler struct {
	Metrics *metrics.Collector
	Events  *events.Service
}

func NewHandler(collector *metrics.Collector, eventsSvc *events.Service) *Handler {
	return &Handler{Metrics: collector, Events: eventsSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin))
		r.Get("/metrics", h.handleMetrics)
		r.Get("/events", h.handleEvents)
	})
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if h.Metrics == nil {
		api.Fail(w, http.StatusNotFound, "metrics_disabled", "metrics collection is disabled", reqID)
		return
	}
	api.Success(w, h.Metrics.Snapshot(), reqID)
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	page := shared.ParsePagination(r, 100, 500)
	items, err := h.Events.List(r.Context(), events.Filter{
		EmployeeID: r.URL.Query().Get("employeeId"),
		EventType:  r.URL.Query().Get("type"),
		Limit:      page.Limit,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list events", reqID)
		return
	}
	api.Success(w, items, reqID)
}
