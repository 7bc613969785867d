package timesheethandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"ponto/internal/auth"
	"ponto/internal/domain/timesheet"
	"ponto/internal/transport/http/api"
	"ponto/internal/transport/http/middleware"
	"ponto/internal/transport/http/shared"
)

type Handler struct {
	Service *timesheet.Service
}

func NewHandler(svc *timesheet.Service) *Handler {
	return &Handler{Service: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/timesheet", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleEmployee, auth.RoleManager)).Get("/", h.handleReport)
		r.With(middleware.RequireRole(auth.RoleManager)).Get("/attendance", h.handleAttendance)
	})
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	v := shared.NewValidator()
	from, _ := v.Date("from", r.URL.Query().Get("from"))
	to, _ := v.Date("to", r.URL.Query().Get("to"))
	v.DateOrder("from", from, "to", to)
	if v.Reject(w, reqID) {
		return
	}

	employeeID := r.URL.Query().Get("employeeId")
	switch {
	case employeeID == "":
		employeeID = user.EmployeeID
	case employeeID != user.EmployeeID && user.Role != auth.RoleAdmin && user.Role != auth.RoleManager:
		api.Fail(w, http.StatusForbidden, "forbidden", "cannot view another employee's timesheet", reqID)
		return
	}
	if employeeID == "" {
		api.Fail(w, http.StatusBadRequest, "no_employee", "login is not linked to an employee", reqID)
		return
	}

	report, err := h.Service.GenerateRange(r.Context(), employeeID, from, to)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to generate timesheet", reqID)
		return
	}
	api.Success(w, report, reqID)
}

func (h *Handler) handleAttendance(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	from, _ := v.Date("from", r.URL.Query().Get("from"))
	to, _ := v.Date("to", r.URL.Query().Get("to"))
	v.DateOrder("from", from, "to", to)
	if v.Reject(w, reqID) {
		return
	}

	var employeeIDs []string
	if raw := r.URL.Query().Get("employeeIds"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				employeeIDs = append(employeeIDs, id)
			}
		}
	}

	report, err := h.Service.GenerateAttendance(r.Context(), employeeIDs, from, to)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to generate attendance report", reqID)
		return
	}
	api.Success(w, report, reqID)
}
