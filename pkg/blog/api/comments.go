package api

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/oilmonegov/Blog/pkg/blog"
)

// CommentRequest is the request body for posting a comment
type CommentRequest struct {
	PostID  string `json:"post_id"`
	Content string `json:"content"`
}

// CreateComment posts a comment as the authenticated actor
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req CommentRequest
	if !h.decode(w, r, &req) {
		return
	}
	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		writeError(w, r, h.logger, blog.NewValidationError("post_id", "The selected post id is invalid."))
		return
	}
	comment, err := h.service.CreateComment(r.Context(), ActorFromContext(r.Context()), blog.CreateCommentRequest{
		PostID:  postID,
		Content: req.Content,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, comment)
}

// ManageListComments lists comments the actor may moderate
func (h *Handler) ManageListComments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, offset := page(r)
	filter := blog.CommentListFilter{Search: q.Get("search"), Limit: limit, Offset: offset}
	for param, dst := range map[string]**uuid.UUID{"post_id": &filter.PostID, "user_id": &filter.UserID} {
		raw := q.Get(param)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, r, h.logger, blog.NewValidationError(param, "The "+param+" must be a valid UUID."))
			return
		}
		*dst = &id
	}

	comments, err := h.service.ListComments(r.Context(), ActorFromContext(r.Context()), filter)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	render.JSON(w, r, nonNil(comments))
}

// ManageGetComment returns one comment the actor may moderate
func (h *Handler) ManageGetComment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	comment, err := h.service.GetComment(r.Context(), ActorFromContext(r.Context()), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	render.JSON(w, r, comment)
}

// DeleteComment soft-deletes a comment
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteComment(r.Context(), ActorFromContext(r.Context()), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
