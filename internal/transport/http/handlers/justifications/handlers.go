package justificationhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ponto/internal/auth"
	"ponto/internal/domain/justification"
	"ponto/internal/transport/http/api"
	"ponto/internal/transport/http/middleware"
	"ponto/internal/transport/http/shared"
)

type Handler struct {
	Store *justification.Store
}

func NewHandler(store *justification.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/justifications", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleEmployee, auth.RoleManager)).Post("/", h.handleCreate)
		r.With(middleware.RequireRole(auth.RoleEmployee, auth.RoleManager)).Get("/", h.handleList)
		r.With(middleware.RequireRole(auth.RoleManager)).Post("/{justificationID}/approve", h.adjudicate(justification.StatusApproved))
		r.With(middleware.RequireRole(auth.RoleManager)).Post("/{justificationID}/reject", h.adjudicate(justification.StatusRejected))
	})
}

type createPayload struct {
	EmployeeID string `json:"employeeId,omitempty"`
	Date       string `json:"date"`
	Reason     string `json:"reason"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	date, _ := v.Date("date", payload.Date)
	v.Required("reason", payload.Reason, "reason is required")
	if v.Reject(w, reqID) {
		return
	}

	employeeID := user.EmployeeID
	if payload.EmployeeID != "" && payload.EmployeeID != user.EmployeeID {
		if user.Role != auth.RoleAdmin && user.Role != auth.RoleManager {
			api.Fail(w, http.StatusForbidden, "forbidden", "cannot file for another employee", reqID)
			return
		}
		employeeID = payload.EmployeeID
	}
	if employeeID == "" {
		api.Fail(w, http.StatusBadRequest, "no_employee", "login is not linked to an employee", reqID)
		return
	}

	id, err := h.Store.Create(r.Context(), employeeID, date, payload.Reason)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to file justification", reqID)
		return
	}
	api.Created(w, map[string]any{"id": id, "date": shared.FormatDay(date)}, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	employeeID := r.URL.Query().Get("employeeId")
	if user.Role == auth.RoleEmployee {
		employeeID = user.EmployeeID
	}

	items, err := h.Store.List(r.Context(), employeeID, r.URL.Query().Get("status"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list justifications", reqID)
		return
	}
	api.Success(w, items, reqID)
}

func (h *Handler) adjudicate(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetRequestID(r.Context())
		user, _ := middleware.GetUser(r.Context())

		err := h.Store.Adjudicate(r.Context(), chi.URLParam(r, "justificationID"), user.UserID, status)
		if err != nil {
			if errors.Is(err, justification.ErrInvalidState) {
				api.Fail(w, http.StatusConflict, "invalid_state", "justification is not pending", reqID)
				return
			}
			api.Fail(w, http.StatusInternalServerError, "adjudicate_failed", "failed to update justification", reqID)
			return
		}
		api.Success(w, map[string]any{"status": status}, reqID)
	}
}
