package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/catalog/internal/application/catalog"
	"github.com/rezkam/catalog/internal/infrastructure/http/response"
)

// contentHandler serves picture bytes at /pictures/{id}/content.
type contentHandler struct {
	svc *catalog.Pictures
}

// Get handles GET /pictures/{id}/content.
func (h *contentHandler) Get(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOf(w, r)
	if !ok {
		return
	}
	pic, rc, err := h.svc.Content(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	defer rc.Close()

	contentType := pic.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	if pic.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(pic.Size, 10))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		slog.WarnContext(r.Context(), "failed to stream picture content",
			"picture_id", pic.ID,
			"error", err)
	}
}

// Put handles PUT /pictures/{id}/content. The body is the raw image and
// Content-Type names its type.
func (h *contentHandler) Put(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeOf(w, r)
	if !ok {
		return
	}
	pic, err := h.svc.PutContent(r.Context(), scope, chi.URLParam(r, "id"), r.Header.Get("Content-Type"), r.Body)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, pictureToDTO(pic))
}
