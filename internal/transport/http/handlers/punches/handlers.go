package punchhandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ponto/internal/auth"
	"ponto/internal/domain/punch"
	"ponto/internal/platform/metrics"
	"ponto/internal/transport/http/api"
	"ponto/internal/transport/http/middleware"
	"ponto/internal/transport/http/shared"
)

type Handler struct {
	Service     *punch.Service
	Idempotency *middleware.IdempotencyStore
	Metrics     *metrics.Collector
}

func NewHandler(service *punch.Service, idem *middleware.IdempotencyStore, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Idempotency: idem, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/punches", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleEmployee, auth.RoleManager)).Post("/", h.handleRecord)
		r.With(middleware.RequireRole(auth.RoleEmployee, auth.RoleManager)).Get("/", h.handleList)
		r.With(middleware.RequireRole(auth.RoleEmployee, auth.RoleManager)).Get("/day", h.handleDay)
		r.With(middleware.RequireRole()).Post("/verify", h.handleVerify)
	})
}

type recordPayload struct {
	EmployeeID string   `json:"employeeId,omitempty"`
	Type       string   `json:"type"`
	Method     string   `json:"method"`
	At         string   `json:"at,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	AccuracyM  *float64 `json:"accuracyMeters,omitempty"`
	FaceScore  *float64 `json:"faceScore,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

func (h *Handler) handleRecord(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	body, err := io.ReadAll(r.Body)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "failed to read request body", reqID)
		return
	}

	var payload recordPayload
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("type", payload.Type, "type is required")
	v.Required("method", payload.Method, "method is required")
	v.Enum("type", payload.Type, "must be one of entry, break_start, break_end, exit",
		punch.TypeEntry, punch.TypeBreakStart, punch.TypeBreakEnd, punch.TypeExit)
	v.Enum("method", payload.Method, "must be one of code, qr, facial, fingerprint",
		punch.MethodCode, punch.MethodQR, punch.MethodFacial, punch.MethodFingerprint)
	if v.Reject(w, reqID) {
		return
	}

	employeeID := user.EmployeeID
	// Admins may punch on behalf of an employee; everyone else punches as
	// themselves.
	if payload.EmployeeID != "" && payload.EmployeeID != user.EmployeeID {
		if user.Role != auth.RoleAdmin {
			api.Fail(w, http.StatusForbidden, "forbidden", "cannot punch for another employee", reqID)
			return
		}
		employeeID = payload.EmployeeID
	}
	if employeeID == "" {
		api.Fail(w, http.StatusBadRequest, "no_employee", "login is not linked to an employee", reqID)
		return
	}

	at := time.Now().UTC()
	if payload.At != "" {
		parsed, err := time.Parse(time.RFC3339, payload.At)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "at must be RFC3339", reqID)
			return
		}
		if user.Role != auth.RoleAdmin {
			api.Fail(w, http.StatusForbidden, "forbidden", "only admins may backdate punches", reqID)
			return
		}
		at = parsed.UTC()
	}

	idemKey := r.Header.Get("Idempotency-Key")
	requestHash := middleware.RequestHash(body)
	if idemKey != "" {
		stored, replay, err := h.Idempotency.Check(r.Context(), user.UserID, "punches", idemKey, requestHash)
		if err != nil {
			if errors.Is(err, middleware.ErrIdempotencyConflict) {
				api.Fail(w, http.StatusConflict, "idempotency_conflict", "idempotency key reused with different payload", reqID)
				return
			}
			api.Fail(w, http.StatusServiceUnavailable, "persistence_error", "idempotency check failed", reqID)
			return
		}
		if replay {
			var result punch.RecordResult
			if err := json.Unmarshal(stored, &result); err == nil {
				api.Created(w, result, reqID)
				return
			}
		}
	}

	result, err := h.Service.Record(r.Context(), punch.RecordRequest{
		EmployeeID: employeeID,
		Type:       payload.Type,
		At:         at,
		Method:     payload.Method,
		Latitude:   payload.Latitude,
		Longitude:  payload.Longitude,
		AccuracyM:  payload.AccuracyM,
		FaceScore:  payload.FaceScore,
		IP:         clientIP(r),
		UserAgent:  r.UserAgent(),
		Notes:      payload.Notes,
	})
	if err != nil {
		h.failRecord(w, err, reqID)
		return
	}

	if h.Metrics != nil {
		h.Metrics.PunchRecorded()
	}
	if idemKey != "" {
		response, marshalErr := json.Marshal(result)
		if marshalErr == nil {
			if err := h.Idempotency.Save(r.Context(), user.UserID, "punches", idemKey, requestHash, response); err != nil {
				slog.Warn("idempotency save failed", "err", err)
			}
		}
	}

	api.Created(w, result, reqID)
}

func (h *Handler) failRecord(w http.ResponseWriter, err error, reqID string) {
	var transitionErr *punch.TransitionError
	var locationErr *punch.LocationError
	var persistErr *punch.PersistenceError
	switch {
	case errors.Is(err, punch.ErrUnknownType), errors.Is(err, punch.ErrUnknownMethod):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), reqID)
	case errors.As(err, &transitionErr):
		if h.Metrics != nil {
			h.Metrics.TransitionRejected()
		}
		api.FailWithDetails(w, http.StatusConflict, "illegal_transition", transitionErr.Error(), map[string]any{
			"state":          transitionErr.State,
			"legalNextTypes": punch.LegalNext(transitionErr.State),
		}, reqID)
	case errors.As(err, &locationErr):
		api.Fail(w, http.StatusBadRequest, "location_error", locationErr.Error(), reqID)
	case errors.As(err, &persistErr):
		api.Fail(w, http.StatusServiceUnavailable, "persistence_error", "punch could not be stored", reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "record_failed", "failed to record punch", reqID)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	employeeID, ok := resolveEmployee(w, r, user, reqID)
	if !ok {
		return
	}

	v := shared.NewValidator()
	start, _ := v.Date("from", r.URL.Query().Get("from"))
	end, _ := v.Date("to", r.URL.Query().Get("to"))
	v.DateOrder("from", start, "to", end)
	if v.Reject(w, reqID) {
		return
	}

	punches, err := h.Service.Store.ListRange(r.Context(), employeeID, start, end.AddDate(0, 0, 1))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list punches", reqID)
		return
	}
	api.Success(w, punches, reqID)
}

func (h *Handler) handleDay(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	employeeID, ok := resolveEmployee(w, r, user, reqID)
	if !ok {
		return
	}

	day := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD", reqID)
			return
		}
		day = parsed
	}

	overview, err := h.Service.Day(r.Context(), employeeID, day)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "day_failed", "failed to load day", reqID)
		return
	}
	api.Success(w, overview, reqID)
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	report, err := h.Service.VerifyIntegrity(r.Context())
	if err != nil {
		api.Fail(w, http.StatusServiceUnavailable, "verify_failed", "integrity audit failed", reqID)
		return
	}
	if h.Metrics != nil {
		h.Metrics.IntegrityViolations(len(report.Violations))
	}
	api.Success(w, report, reqID)
}

// resolveEmployee picks the target employee: self for regular logins, any
// employee for admins and managers via ?employeeId.
func resolveEmployee(w http.ResponseWriter, r *http.Request, user middleware.UserContext, reqID string) (string, bool) {
	employeeID := user.EmployeeID
	if requested := r.URL.Query().Get("employeeId"); requested != "" && requested != user.EmployeeID {
		if user.Role != auth.RoleAdmin && user.Role != auth.RoleManager {
			api.Fail(w, http.StatusForbidden, "forbidden", "cannot view another employee", reqID)
			return "", false
		}
		employeeID = requested
	}
	if employeeID == "" {
		api.Fail(w, http.StatusBadRequest, "no_employee", "login is not linked to an employee", reqID)
		return "", false
	}
	return employeeID, true
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	return r.RemoteAddr
}
