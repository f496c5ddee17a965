package handlers

import (
	"net/http"

	"github.com/dom/meucoracao/internal/api/middleware"
	"github.com/dom/meucoracao/internal/api/respond"
	"github.com/dom/meucoracao/internal/domain"
	"github.com/dom/meucoracao/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ResourceHandler serves the CRUD routes of one owned record type. I is the
// create body and P the update body.
type ResourceHandler[I domain.Input[T], P domain.Patch[T], T any, PT domain.ResourcePtr[T]] struct {
	name    string
	service *service.ResourceService[T, PT]
	errs    ErrorWriter
}

func NewResourceHandler[I domain.Input[T], P domain.Patch[T], T any, PT domain.ResourcePtr[T]](
	name string,
	svc *service.ResourceService[T, PT],
	errs ErrorWriter,
) *ResourceHandler[I, P, T, PT] {
	return &ResourceHandler[I, P, T, PT]{name: name, service: svc, errs: errs}
}

// Routes mounts the handler on a subrouter.
func (h *ResourceHandler[I, P, T, PT]) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *ResourceHandler[I, P, T, PT]) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respond.Unauthorized(w)
		return
	}

	var in I
	if err := decodeJSON(w, r, &in, true); err != nil {
		h.errs.Write(w, r, h.name+".create", err)
		return
	}
	if err := in.Validate(); err != nil {
		h.errs.Write(w, r, h.name+".create", err)
		return
	}

	record := in.Build()
	created, err := h.service.Create(r.Context(), identity.UserID, &record)
	if err != nil {
		h.errs.Write(w, r, h.name+".create", err)
		return
	}

	respond.JSON(w, http.StatusCreated, created)
}

func (h *ResourceHandler[I, P, T, PT]) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respond.Unauthorized(w)
		return
	}

	records, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		h.errs.Write(w, r, h.name+".list", err)
		return
	}

	respond.JSON(w, http.StatusOK, records)
}

func (h *ResourceHandler[I, P, T, PT]) Get(w http.ResponseWriter, r *http.Request) {
	identity, id, ok := h.target(w, r)
	if !ok {
		return
	}

	record, err := h.service.Get(r.Context(), id, identity.UserID)
	if err != nil {
		h.errs.Write(w, r, h.name+".get", err)
		return
	}

	respond.JSON(w, http.StatusOK, record)
}

func (h *ResourceHandler[I, P, T, PT]) Update(w http.ResponseWriter, r *http.Request) {
	identity, id, ok := h.target(w, r)
	if !ok {
		return
	}

	var patch P
	if err := decodeJSON(w, r, &patch, false); err != nil {
		h.errs.Write(w, r, h.name+".update", err)
		return
	}

	record, err := h.service.Update(r.Context(), id, identity.UserID, patch)
	if err != nil {
		h.errs.Write(w, r, h.name+".update", err)
		return
	}

	respond.JSON(w, http.StatusOK, record)
}

func (h *ResourceHandler[I, P, T, PT]) Delete(w http.ResponseWriter, r *http.Request) {
	identity, id, ok := h.target(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id, identity.UserID); err != nil {
		h.errs.Write(w, r, h.name+".delete", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// target returns the caller and the record id from the path. A malformed id
// cannot name a stored record and is answered with 404.
func (h *ResourceHandler[I, P, T, PT]) target(w http.ResponseWriter, r *http.Request) (service.Identity, uuid.UUID, bool) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		respond.Unauthorized(w)
		return service.Identity{}, uuid.Nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.errs.Write(w, r, h.name, domain.ErrNotFound)
		return service.Identity{}, uuid.Nil, false
	}

	return identity, id, true
}
