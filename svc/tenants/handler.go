package tenants

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/classlane/classlane/core"
)

// Handler exposes tenant management over HTTP. Mount it behind the boundary
// middleware; the service layer rejects restricted callers, so these routes
// are effectively operator-only.
type Handler struct {
	svc *Service
}

// NewHandler creates the HTTP handler for tenant management.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts the management endpoints on a chi router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/active", h.setActive)
	return r
}

type createRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.RespondError(w, core.ErrBadRequest)
		return
	}

	t, err := h.svc.Create(r.Context(), req.Code, req.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	core.RespondJSON(w, http.StatusCreated, t)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ts, err := h.svc.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	core.RespondJSON(w, http.StatusOK, ts)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		core.RespondError(w, core.ErrBadRequest)
		return
	}

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	core.RespondJSON(w, http.StatusOK, t)
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		core.RespondError(w, core.ErrBadRequest)
		return
	}

	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.RespondError(w, core.ErrBadRequest)
		return
	}

	t, err := h.svc.SetActive(r.Context(), id, req.Active)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	core.RespondJSON(w, http.StatusOK, t)
}

// respondServiceError maps this package's sentinel errors before falling
// back to the shared translation boundary.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotPrivileged):
		core.RespondError(w, core.ErrForbidden)
	case errors.Is(err, ErrCodeTaken):
		core.RespondError(w, core.ErrConflict)
	case errors.Is(err, ErrInvalidCode), errors.Is(err, ErrInvalidName):
		core.RespondError(w, core.ErrUnprocessableEntity)
	default:
		core.RespondError(w, err)
	}
}
