package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/oilmonegov/Blog/pkg/blog"
)

// PostRequest is the request body for creating or updating a post. Tags is a
// comma separated list.
type PostRequest struct {
	Title           string      `json:"title"`
	Slug            *string     `json:"slug"`
	Content         string      `json:"content"`
	Excerpt         *string     `json:"excerpt"`
	Status          string      `json:"status"`
	MetaTitle       *string     `json:"meta_title"`
	MetaDescription *string     `json:"meta_description"`
	CategoryIDs     []uuid.UUID `json:"category_ids"`
	Tags            string      `json:"tags"`
}

// PostDetailResponse is the public view of a single post
type PostDetailResponse struct {
	Post     *blog.Post      `json:"post"`
	Comments []*blog.Comment `json:"comments"`
	Related  []*blog.Post    `json:"related"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ListPublishedPosts lists published posts, optionally by ?category= or ?tag= slug
func (h *Handler) ListPublishedPosts(w http.ResponseWriter, r *http.Request) {
	limit, offset := page(r)
	posts, err := h.service.ListPublishedPosts(r.Context(), blog.PublishedPostFilter{
		CategorySlug: r.URL.Query().Get("category"),
		TagSlug:      r.URL.Query().Get("tag"),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	render.JSON(w, r, nonNil(posts))
}

// ShowPost returns a published post with its approved comments and related posts
func (h *Handler) ShowPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.GetPublishedPostBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	comments, err := h.service.ListApprovedComments(r.Context(), ActorFromContext(r.Context()), post.ID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	related, err := h.service.RelatedPosts(r.Context(), post.ID, blog.DefaultRelatedLimit)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	render.JSON(w, r, PostDetailResponse{Post: post, Comments: nonNil(comments), Related: nonNil(related)})
}

// ManageListPosts lists posts visible to the actor; authors only see their own
func (h *Handler) ManageListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, offset := page(r)
	filter := blog.PostListFilter{Search: q.Get("search"), Limit: limit, Offset: offset}
	if s := q.Get("status"); s != "" {
		status, err := blog.ParsePostStatus(s)
		if err != nil {
			writeError(w, r, h.logger, blog.NewValidationError("status", "The selected status is invalid."))
			return
		}
		filter.Status = &status
	}
	if a := q.Get("author_id"); a != "" {
		id, err := uuid.Parse(a)
		if err != nil {
			writeError(w, r, h.logger, blog.NewValidationError("author_id", "The author id must be a valid UUID."))
			return
		}
		filter.AuthorID = &id
	}

	posts, err := h.service.ListPosts(r.Context(), ActorFromContext(r.Context()), filter)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	render.JSON(w, r, nonNil(posts))
}

// CreatePost creates a post owned by the actor
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req PostRequest
	if !h.decode(w, r, &req) {
		return
	}
	post, err := h.service.CreatePost(r.Context(), ActorFromContext(r.Context()), blog.CreatePostRequest{
		Title:           req.Title,
		Slug:            strings.TrimSpace(deref(req.Slug)),
		Content:         req.Content,
		Excerpt:         deref(req.Excerpt),
		Status:          blog.PostStatus(req.Status),
		MetaTitle:       deref(req.MetaTitle),
		MetaDescription: deref(req.MetaDescription),
		CategoryIDs:     req.CategoryIDs,
		Tags:            blog.ParseTagList(req.Tags),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.logger.InfoContext(r.Context(), "Post created", "post_id", post.ID.String(), "slug", post.Slug)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, post)
}

// ManageGetPost returns any post the actor may view, drafts included
func (h *Handler) ManageGetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	post, err := h.service.GetPost(r.Context(), ActorFromContext(r.Context()), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	render.JSON(w, r, post)
}

// UpdatePost replaces a post's editable fields
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req PostRequest
	if !h.decode(w, r, &req) {
		return
	}
	var slug *string
	if req.Slug != nil {
		trimmed := strings.TrimSpace(*req.Slug)
		if trimmed != "" {
			slug = &trimmed
		}
	}
	post, err := h.service.UpdatePost(r.Context(), ActorFromContext(r.Context()), blog.UpdatePostRequest{
		PostID:          id,
		Title:           req.Title,
		Slug:            slug,
		Content:         req.Content,
		Excerpt:         req.Excerpt,
		Status:          blog.PostStatus(req.Status),
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		CategoryIDs:     req.CategoryIDs,
		Tags:            blog.ParseTagList(req.Tags),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	render.JSON(w, r, post)
}

// TogglePublish flips a post between draft and published
func (h *Handler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	post, err := h.service.TogglePublish(r.Context(), ActorFromContext(r.Context()), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	render.JSON(w, r, post)
}

// DeletePost soft-deletes a post
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeletePost(r.Context(), ActorFromContext(r.Context()), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
