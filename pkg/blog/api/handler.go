package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"

	"github.com/oilmonegov/Blog/pkg/blog"
)

const maxPerPage = 100

// Handler serves the blog over HTTP.
type Handler struct {
	service blog.Service
	auth    *jwtauth.JWTAuth
	logger  *slog.Logger
}

// NewHandler creates a new blog handler
func NewHandler(service blog.Service, auth *jwtauth.JWTAuth, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, auth: auth, logger: logger}
}

// Routes returns the public, authenticated and management routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(Authenticate(h.auth))

	r.Get("/posts", h.ListPublishedPosts)
	r.Get("/posts/{slug}", h.ShowPost)
	r.Get("/categories", h.ListCategories)
	r.Get("/categories/{slug}", h.ShowCategory)
	r.Get("/tags/{slug}", h.ShowTag)

	r.Group(func(r chi.Router) {
		r.Use(RequireActor)
		r.Post("/comments", h.CreateComment)

		r.Route("/manage", func(r chi.Router) {
			r.Get("/posts", h.ManageListPosts)
			r.Post("/posts", h.CreatePost)
			r.Get("/posts/{id}", h.ManageGetPost)
			r.Put("/posts/{id}", h.UpdatePost)
			r.Delete("/posts/{id}", h.DeletePost)
			r.Patch("/posts/{id}/publish", h.TogglePublish)

			r.Get("/comments", h.ManageListComments)
			r.Get("/comments/{id}", h.ManageGetComment)
			r.Delete("/comments/{id}", h.DeleteComment)

			r.Post("/categories", h.CreateCategory)
			r.Put("/categories/{id}", h.UpdateCategory)
			r.Delete("/categories/{id}", h.DeleteCategory)
		})
	})

	return r
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeStatus(w, r, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// pathID parses the {id} URL parameter; malformed ids are reported as 404.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeStatus(w, r, http.StatusNotFound, blog.KindNotFound.String())
		return uuid.Nil, false
	}
	return id, true
}

// page reads page and per_page query parameters.
func page(r *http.Request) (limit, offset int) {
	limit = blog.DefaultPageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxPerPage {
		limit = maxPerPage
	}
	p := 1
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		p = v
	}
	return limit, (p - 1) * limit
}
