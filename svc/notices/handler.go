package notices

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/classlane/classlane/core"
)

// Handler exposes the notice board over HTTP. The boundary middleware has
// already bound the caller's identity, so every repository call below is
// automatically stamped and filtered.
type Handler struct {
	repo *Repository
}

// NewHandler creates the HTTP handler for notices.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Routes mounts the notice endpoints on a chi router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Get("/by-ref/{publicID}", h.getByPublicID)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	return r
}

type noticeRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Pinned bool   `json:"pinned"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req noticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.RespondError(w, core.ErrBadRequest)
		return
	}
	if req.Title == "" {
		core.RespondError(w, core.ErrUnprocessableEntity)
		return
	}

	n := &Notice{Title: req.Title, Body: req.Body, Pinned: req.Pinned}
	if err := h.repo.Create(r.Context(), n); err != nil {
		core.RespondError(w, err)
		return
	}
	core.RespondJSON(w, http.StatusCreated, n)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	out, err := h.repo.List(r.Context(), limit, offset)
	if err != nil {
		core.RespondError(w, err)
		return
	}
	core.RespondJSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		core.RespondError(w, core.ErrBadRequest)
		return
	}

	n, err := h.repo.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	core.RespondJSON(w, http.StatusOK, n)
}

func (h *Handler) getByPublicID(w http.ResponseWriter, r *http.Request) {
	publicID, err := uuid.Parse(chi.URLParam(r, "publicID"))
	if err != nil {
		core.RespondError(w, core.ErrBadRequest)
		return
	}

	n, err := h.repo.GetByPublicID(r.Context(), publicID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	core.RespondJSON(w, http.StatusOK, n)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		core.RespondError(w, core.ErrBadRequest)
		return
	}

	var req noticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.RespondError(w, core.ErrBadRequest)
		return
	}
	if req.Title == "" {
		core.RespondError(w, core.ErrUnprocessableEntity)
		return
	}

	n := &Notice{ID: id, Title: req.Title, Body: req.Body, Pinned: req.Pinned}
	if err := h.repo.Update(r.Context(), n); err != nil {
		h.respondError(w, err)
		return
	}
	core.RespondJSON(w, http.StatusOK, n)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		core.RespondError(w, core.ErrBadRequest)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNoticeNotFound) {
		core.RespondError(w, core.ErrNotFound)
		return
	}
	core.RespondError(w, err)
}
