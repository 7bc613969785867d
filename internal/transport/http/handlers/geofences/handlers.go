package geofencehandler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ponto/internal/auth"
	"ponto/internal/domain/geofence"
	"ponto/internal/transport/http/api"
	"ponto/internal/transport/http/middleware"
	"ponto/internal/transport/http/shared"
)

type Handler struct {
	Store *geofence.Store
}

func NewHandler(store *geofence.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/geofences", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleManager)).Get("/", h.handleList)
		r.With(middleware.RequireRole()).Post("/", h.handleCreate)
		r.With(middleware.RequireRole()).Put("/{fenceID}", h.handleUpdate)
		r.With(middleware.RequireRole()).Delete("/{fenceID}", h.handleDelete)
	})
}

type fencePayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	RadiusM     float64 `json:"radiusMeters"`
	Active      *bool   `json:"active"`
	Color       string  `json:"color"`
}

func (p fencePayload) validate() *shared.Validator {
	v := shared.NewValidator()
	v.Required("name", p.Name, "name is required")
	if !geofence.ValidCoordinates(p.Latitude, p.Longitude) {
		v.Add("latitude", "coordinates out of range")
	}
	if p.RadiusM < geofence.MinRadiusM || p.RadiusM > geofence.MaxRadiusM {
		v.Add("radiusMeters", fmt.Sprintf("must be between %d and %d meters", geofence.MinRadiusM, geofence.MaxRadiusM))
	}
	return v
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	fences, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list geofences", reqID)
		return
	}
	api.Success(w, fences, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload fencePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.validate().Reject(w, reqID) {
		return
	}

	active := true
	if payload.Active != nil {
		active = *payload.Active
	}
	id, err := h.Store.Create(r.Context(), geofence.Geofence{
		Name:        payload.Name,
		Description: payload.Description,
		Latitude:    payload.Latitude,
		Longitude:   payload.Longitude,
		RadiusM:     payload.RadiusM,
		Active:      active,
		Color:       payload.Color,
		CreatedBy:   user.UserID,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create geofence", reqID)
		return
	}
	api.Created(w, map[string]any{"id": id}, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	fenceID := chi.URLParam(r, "fenceID")

	var payload fencePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.validate().Reject(w, reqID) {
		return
	}

	active := true
	if payload.Active != nil {
		active = *payload.Active
	}
	err := h.Store.Update(r.Context(), geofence.Geofence{
		ID:          fenceID,
		Name:        payload.Name,
		Description: payload.Description,
		Latitude:    payload.Latitude,
		Longitude:   payload.Longitude,
		RadiusM:     payload.RadiusM,
		Active:      active,
		Color:       payload.Color,
	})
	if err != nil {
		api.Fail(w, http.StatusNotFound, "update_failed", "geofence not found", reqID)
		return
	}
	api.Success(w, map[string]any{"updated": true}, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	fenceID := chi.URLParam(r, "fenceID")

	deleted, err := h.Store.Delete(r.Context(), fenceID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "delete_failed", "geofence not found", reqID)
		return
	}
	// deleted=false means the fence had punch history and was deactivated
	// instead.
	api.Success(w, map[string]any{"deleted": deleted, "deactivated": !deleted}, reqID)
}
