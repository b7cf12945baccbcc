package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/catalog/internal/application/catalog"
	"github.com/rezkam/catalog/internal/infrastructure/http/response"
)

// cheatHandler serves the single cheat of a game at /games/{id}/cheat.
type cheatHandler struct {
	svc *catalog.Cheats
}

func (h *cheatHandler) mount(r chi.Router) {
	r.Get("/", h.Get)
	r.Post("/", h.Add)
	r.Put("/", h.Update)
	r.Delete("/", h.Remove)
}

// Get handles GET /games/{id}/cheat.
func (h *cheatHandler) Get(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOf(w, r)
	if !ok {
		return
	}
	c, err := h.svc.Get(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, cheatToDTO(c))
}

// Add handles POST /games/{id}/cheat.
func (h *cheatHandler) Add(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOf(w, r)
	if !ok {
		return
	}
	var req CheatDTO
	if !decode(w, r, &req) {
		return
	}
	c, err := h.svc.Add(r.Context(), scope, chi.URLParam(r, "id"), cheatFromDTO(&req))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.Created(w, cheatToDTO(c))
}

// Update handles PUT /games/{id}/cheat.
func (h *cheatHandler) Update(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOf(w, r)
	if !ok {
		return
	}
	var req CheatDTO
	if !decode(w, r, &req) {
		return
	}
	c, err := h.svc.Update(r.Context(), scope, chi.URLParam(r, "id"), cheatFromDTO(&req))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, cheatToDTO(c))
}

// Remove handles DELETE /games/{id}/cheat.
func (h *cheatHandler) Remove(w http.ResponseWriter, r *http.Request) {
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
