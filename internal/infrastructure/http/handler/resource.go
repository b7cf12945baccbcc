package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/catalog/internal/application/auth"
	"github.com/rezkam/catalog/internal/application/catalog"
	"github.com/rezkam/catalog/internal/domain"
	"github.com/rezkam/catalog/internal/infrastructure/http/response"
)

// positioned is implemented by request bodies embedding Meta.
type positioned interface {
	position() *int
}

// resource serves the operations of one entity kind over JSON.
type resource[T catalog.Entity[T], D positioned] struct {
	svc     *catalog.Movables[T]
	toDTO   func(T) D
	fromDTO func(*D) T
}

func newResource[T catalog.Entity[T], D positioned](svc *catalog.Movables[T], to func(T) D, from func(*D) T) *resource[T, D] {
	return &resource[T, D]{svc: svc, toDTO: to, fromDTO: from}
}

// scopeOf returns the scope stored by the auth middleware.
func scopeOf(w http.ResponseWriter, r *http.Request) (domain.Scope, bool) {
	s, ok := auth.ScopeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "missing credentials")
	}
	return s, ok
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		response.BadRequest(w, "invalid JSON")
		return false
	}
	return true
}

func (h *resource[T, D]) list(items []T) ListResponse[D] {
	out := ListResponse[D]{Items: make([]D, len(items))}
	for i, it := range items {
		out.Items[i] = h.toDTO(it)
	}
	return out
}

// mountCollection registers the kind-wide routes. Top-level kinds also get
// list and add.
func (h *resource[T, D]) mountCollection(r chi.Router) {
	if !h.svc.Nested() {
		r.Get("/", h.GetAll)
		r.Post("/", h.Add)
	}
	r.Post("/positions", h.UpdatePositions)
	r.Get("/stats", h.Stats)
	r.Get("/integrity", h.Integrity)
}

// mountItem registers the routes addressing one record by {id}.
func (h *resource[T, D]) mountItem(r chi.Router) {
	r.Get("/", h.Get)
	r.Put("/", h.Update)
	r.Delete("/", h.Remove)
	r.Post("/duplicate", h.Duplicate)
	r.Post("/move-up", h.MoveUp)
	r.Post("/move-down", h.MoveDown)
}

// mountChildren registers find and add for records nested under {id}.
func (h *resource[T, D]) mountChildren(r chi.Router) {
	r.Get("/", h.Find)
	r.Post("/", h.AddChild)
}

// GetAll handles GET /{kind}.
func (h *resource[T, D]) GetAll(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOf(w, r)
	if !ok {
		return
	}
	items, err := h.svc.GetAll(r.Context(), scope)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, h.list(items))
}

// Find handles GET /{parentKind}/{id}/{kind}.
func (h *resource[T, D]) Find(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOf(w, r)
	if !ok {
		return
	}
	items, err := h.svc.Find(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, h.list(items))
}

// Get handles GET /{kind}/{id}.
func (h *resource[T, D]) Get(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOf(w, r)
	if !ok {
		return
	}
	item, err := h.svc.Get(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, h.toDTO(item))
}

// Add handles POST /{kind}.
func (h *resource[T, D]) Add(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, "")
}

// AddChild handles POST /{parentKind}/{id}/{kind}. The parent in the path
// wins over any parent id in the body.
func (h *resource[T, D]) AddChild(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, chi.URLParam(r, "id"))
}

func (h *resource[T, D]) add(w http.ResponseWriter, r *http.Request, parentID string) {
	scope, ok := scopeOf(w, r)
	if !ok {
		return
	}
	var req D
	if !decode(w, r, &req) {
		return
	}
	item := h.fromDTO(&req)
	if c, isChild := any(item).(interface{ SetParentID(string) }); isChild && parentID != "" {
		c.SetParentID(parentID)
	}

	created, err := h.svc.Add(r.Context(), scope, item)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.Created(w, h.toDTO(created))
}

// Update handles PUT /{kind}/{id}.
func (h *resource[T, D]) Update(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOf(w, r)
	if !ok {
		return
	}
	var req D
	if !decode(w, r, &req) {
		return
	}

	updated, err := h.svc.Update(r.Context(), scope, chi.URLParam(r, "id"), h.fromDTO(&req), req.position())
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, h.toDTO(updated))
}

// Remove handles DELETE /{kind}/{id}.
func (h *resource[T, D]) Remove(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOf(w, r)
	if !ok {
		return
	}
	if err := h.svc.Remove(r.Context(), scope, chi.URLParam(r, "id")); err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.NoContent(w)
}

// Duplicate handles POST /{kind}/{id}/duplicate.
func (h *resource[T, D]) Duplicate(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOf(w, r)
	if !ok {
		return
	}
	dup, err := h.svc.Duplicate(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.Created(w, h.toDTO(dup))
}

// MoveUp handles POST /{kind}/{id}/move-up.
func (h *resource[T, D]) MoveUp(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.svc.MoveUp)
}

// MoveDown handles POST /{kind}/{id}/move-down.
func (h *resource[T, D]) MoveDown(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.svc.MoveDown)
}

func (h *resource[T, D]) move(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, scope domain.Scope, id string) error) {
	scope, ok := scopeOf(w, r)
	if !ok {
		return
	}
	if err := op(r.Context(), scope, chi.URLParam(r, "id")); err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.NoContent(w)
}

// UpdatePositions handles POST /{kind}/positions.
func (h *resource[T, D]) UpdatePositions(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOf(w, r)
	if !ok {
		return
	}
	if err := h.svc.UpdatePositions(r.Context(), scope); err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.NoContent(w)
}

// Stats handles GET /{kind}/stats.
func (h *resource[T, D]) Stats(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOf(w, r)
	if !ok {
		return
	}
	s, err := h.svc.Stats(r.Context(), scope)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, statsToDTO(s))
}

// Integrity handles GET /{kind}/integrity. Admin only.
func (h *resource[T, D]) Integrity(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOf(w, r)
	if !ok {
		return
	}
	if !scope.Admin {
		response.FromDomainError(w, r, domain.ErrForbidden)
		return
	}
	reports, err := h.svc.Integrity(r.Context(), scope)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, ListResponse[SetReportDTO]{Items: reportsToDTO(reports)})
}
