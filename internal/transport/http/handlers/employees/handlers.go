package employeehandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ponto/internal/auth"
	"ponto/internal/domain/employee"
	"ponto/internal/transport/http/api"
	"ponto/internal/transport/http/middleware"
	"ponto/internal/transport/http/shared"
)

type Handler struct {
	Store *employee.Store
}

func NewHandler(store *employee.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleManager)).Get("/", h.handleList)
		r.With(middleware.RequireRole(auth.RoleManager)).Get("/{employeeID}", h.handleGet)
		r.With(middleware.RequireRole()).Post("/", h.handleCreate)
		r.With(middleware.RequireRole()).Put("/{employeeID}", h.handleUpdate)
	})
}

type employeePayload struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Department           string `json:"department"`
	Active               *bool  `json:"active"`
	ScheduledStart       string `json:"scheduledStart"`
	ScheduledEnd         string `json:"scheduledEnd"`
	DailyExpectedMinutes int    `json:"dailyExpectedMinutes"`
	ToleranceMinutes     int    `json:"toleranceMinutes"`
}

func (p employeePayload) validate() *shared.Validator {
	v := shared.NewValidator()
	v.Required("name", p.Name, "name is required")
	v.Required("email", p.Email, "email is required")
	if p.DailyExpectedMinutes <= 0 {
		v.Add("dailyExpectedMinutes", "must be positive")
	}
	if p.ToleranceMinutes < 0 {
		v.Add("toleranceMinutes", "must not be negative")
	}
	return v
}

func (p employeePayload) toModel() employee.Employee {
	active := true
	if p.Active != nil {
		active = *p.Active
	}
	start := p.ScheduledStart
	if start == "" {
		start = "08:00"
	}
	end := p.ScheduledEnd
	if end == "" {
		end = "17:00"
	}
	return employee.Employee{
		Name:                 p.Name,
		Email:                p.Email,
		Department:           p.Department,
		Active:               active,
		ScheduledStart:       start,
		ScheduledEnd:         end,
		DailyExpectedMinutes: p.DailyExpectedMinutes,
		ToleranceMinutes:     p.ToleranceMinutes,
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employees, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list employees", reqID)
		return
	}
	api.Success(w, employees, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	emp, err := h.Store.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.validate().Reject(w, reqID) {
		return
	}

	id, err := h.Store.Create(r.Context(), payload.toModel())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create employee", reqID)
		return
	}
	api.Created(w, map[string]any{"id": id}, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.validate().Reject(w, reqID) {
		return
	}

	emp := payload.toModel()
	emp.ID = chi.URLParam(r, "employeeID")
	if err := h.Store.Update(r.Context(), emp); err != nil {
		api.Fail(w, http.StatusNotFound, "update_failed", "employee not found", reqID)
		return
	}
	api.Success(w, map[string]any{"updated": true}, reqID)
}
