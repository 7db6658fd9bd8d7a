package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/oilmonegov/Blog/pkg/blog"
)

// CategoryRequest is the request body for creating or updating a category
type CategoryRequest struct {
	Name        string  `json:"name"`
	Slug        *string `json:"slug"`
	Description string  `json:"description"`
}

// ArchiveResponse is a taxonomy term with its published posts
type ArchiveResponse struct {
	Category *blog.Category `json:"category,omitempty"`
	Tag      *blog.Tag      `json:"tag,omitempty"`
	Posts    []*blog.Post   `json:"posts"`
}

// ListCategories lists all categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	render.JSON(w, r, nonNil(categories))
}

// ShowCategory returns a category archive
func (h *Handler) ShowCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.GetCategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	limit, offset := page(r)
	posts, err := h.service.ListPublishedPosts(r.Context(), blog.PublishedPostFilter{
		CategorySlug: category.Slug, Limit: limit, Offset: offset,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	render.JSON(w, r, ArchiveResponse{Category: category, Posts: nonNil(posts)})
}

// ShowTag returns a tag archive
func (h *Handler) ShowTag(w http.ResponseWriter, r *http.Request) {
	tag, err := h.service.GetTagBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	limit, offset := page(r)
	posts, err := h.service.ListPublishedPosts(r.Context(), blog.PublishedPostFilter{
		TagSlug: tag.Slug, Limit: limit, Offset: offset,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	render.JSON(w, r, ArchiveResponse{Tag: tag, Posts: nonNil(posts)})
}

// CreateCategory creates a category (admin only)
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !h.decode(w, r, &req) {
		return
	}
	category, err := h.service.CreateCategory(r.Context(), ActorFromContext(r.Context()), blog.CreateCategoryRequest{
		Name:        req.Name,
		Slug:        strings.TrimSpace(deref(req.Slug)),
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, category)
}

// UpdateCategory replaces a category's fields (admin only)
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req CategoryRequest
	if !h.decode(w, r, &req) {
		return
	}
	var slug *string
	if req.Slug != nil {
		if trimmed := strings.TrimSpace(*req.Slug); trimmed != "" {
			slug = &trimmed
		}
	}
	category, err := h.service.UpdateCategory(r.Context(), ActorFromContext(r.Context()), blog.UpdateCategoryRequest{
		CategoryID:  id,
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	render.JSON(w, r, category)
}

// DeleteCategory removes a category and detaches it from posts (admin only)
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteCategory(r.Context(), ActorFromContext(r.Context()), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
