package consolidationhandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ponto/internal/auth"
	"ponto/internal/domain/consolidation"
	"ponto/internal/platform/jobs"
	"ponto/internal/platform/metrics"
	"ponto/internal/transport/http/api"
	"ponto/internal/transport/http/middleware"
	"ponto/internal/transport/http/shared"
)

type Handler struct {
	Service *consolidation.Service
	Jobs    *jobs.Service
	Metrics *metrics.Collector
}

func NewHandler(svc *consolidation.Service, jobsSvc *jobs.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: svc, Jobs: jobsSvc, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/consolidations", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/run", h.handleRun)
		r.With(middleware.RequireRole(auth.RoleEmployee, auth.RoleManager)).Get("/", h.handleList)
	})
}

type runPayload struct {
	Date       string `json:"date"`
	EmployeeID string `json:"employeeId,omitempty"`
}

func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload runPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	date, _ := v.Date("date", payload.Date)
	if v.Reject(w, reqID) {
		return
	}

	if payload.EmployeeID != "" {
		dc, err := h.Service.Consolidate(r.Context(), payload.EmployeeID, date)
		if err != nil {
			var inputErr *consolidation.InputError
			if errors.As(err, &inputErr) {
				api.Fail(w, http.StatusUnprocessableEntity, "cannot_consolidate", inputErr.Error(), reqID)
				return
			}
			api.Fail(w, http.StatusInternalServerError, "consolidation_failed", "failed to consolidate day", reqID)
			return
		}
		if h.Metrics != nil {
			h.Metrics.ConsolidationRun(0)
		}
		api.Success(w, dc, reqID)
		return
	}

	result, err := h.Jobs.RunNow(r.Context(), jobs.JobConsolidation, func(ctx context.Context) (any, error) {
		return h.Service.RunForDate(ctx, date)
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "consolidation_failed", "batch consolidation failed", reqID)
		return
	}
	if h.Metrics != nil {
		if batch, ok := result.(consolidation.BatchResult); ok {
			h.Metrics.ConsolidationRun(len(batch.Skipped))
		}
	}
	api.Success(w, result, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	employeeID := r.URL.Query().Get("employeeId")
	if user.Role != auth.RoleAdmin && user.Role != auth.RoleManager {
		employeeID = user.EmployeeID
	}
	if employeeID == "" {
		api.Fail(w, http.StatusBadRequest, "missing_employee", "employeeId is required", reqID)
		return
	}

	v := shared.NewValidator()
	from, _ := v.Date("from", r.URL.Query().Get("from"))
	to, _ := v.Date("to", r.URL.Query().Get("to"))
	v.DateOrder("from", from, "to", to)
	if v.Reject(w, reqID) {
		return
	}

	items, err := h.Service.ListRange(r.Context(), employeeID, from, to)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list consolidations", reqID)
		return
	}
	api.Success(w, items, reqID)
}
