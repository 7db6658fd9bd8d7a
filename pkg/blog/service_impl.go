package blog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oilmonegov/Blog/pkg/blog/ratelimit"
)

const (
	// DefaultCommentRateLimit is the number of comments an actor may post per window.
	DefaultCommentRateLimit = 10
	// DefaultPageSize applies to public listings without a limit.
	DefaultPageSize = 10
	// DefaultRelatedLimit is the number of related posts returned by default.
	DefaultRelatedLimit = 3

	maxTxAttempts = 3
)

// service implements the Service interface
type service struct {
	repository    Repository
	eventSink     EventSink
	logger        *slog.Logger
	limiter       RateLimiter
	commentLimit  int
	excerptLength int
	now           func() time.Time
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithEventSink sets the event sink for the service
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.eventSink = sink
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCommentRateLimiter gates comment creation with limiter, allowing limit
// comments per actor per window.
func WithCommentRateLimiter(limiter RateLimiter, limit int) Option {
	return func(s *service) {
		s.limiter = limiter
		if limit > 0 {
			s.commentLimit = limit
		}
	}
}

// WithExcerptLength sets the derived excerpt length in characters
func WithExcerptLength(n int) Option {
	return func(s *service) {
		if n > 0 {
			s.excerptLength = n
		}
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		eventSink:     NewNoopEventSink(),
		logger:        slog.Default(),
		commentLimit:  DefaultCommentRateLimit,
		excerptLength: DefaultExcerptLength,
		now:           func() time.Time { return time.Now().UTC() },
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.limiter == nil {
		s.limiter = ratelimit.NewInMemory(ratelimit.DefaultWindow)
	}

	return s, nil
}

// runTx executes fn in a transaction. A slug conflict reported by storage
// can only come from a derived slug losing a race, so the whole transaction
// is replayed and the resolver probes again.
func (s *service) runTx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = s.repository.InTx(ctx, fn)
		if !errors.Is(err, ErrSlugConflict) {
			return err
		}
		s.logger.WarnContext(ctx, "slug conflict on write, retrying", "attempt", attempt, "err", err)
	}
	return slugTaken()
}

func (s *service) require(ctx context.Context, actor *Actor, op Operation, res Resource) error {
	if err := Require(actor, op, res); err != nil {
		s.logger.DebugContext(ctx, "authorization denied",
			"actor_id", actorID(actor), "op", op, "resource", res.Kind())
		return err
	}
	return nil
}

func (s *service) emit(ctx context.Context, event string, fire func(EventSink) error) {
	if s.eventSink == nil {
		return
	}
	if err := fire(s.eventSink); err != nil {
		s.logger.WarnContext(ctx, "event sink failed", "event", event, "err", err)
	}
}

func actorID(a *Actor) string {
	if a == nil {
		return "guest"
	}
	return a.ID.String()
}

func slugTaken() error {
	return NewValidationError("slug", "The slug has already been taken.")
}

// claimExplicitSlug rejects an explicitly supplied slug that is already taken.
func claimExplicitSlug(ctx context.Context, slug string, id uuid.UUID, exists SlugExistsFunc) error {
	taken, err := exists(ctx, slug, id)
	if err != nil {
		return err
	}
	if taken {
		return slugTaken()
	}
	return nil
}

// writeErr maps a storage conflict on an explicit slug to a field error.
// Conflicts on derived slugs pass through so runTx can retry.
func writeErr(err error, explicitSlug bool) error {
	if errors.Is(err, ErrSlugConflict) && explicitSlug {
		return slugTaken()
	}
	if errors.Is(err, ErrDuplicateName) {
		return NewValidationError("name", "The name has already been taken.")
	}
	return err
}

func (s *service) excerptFor(supplied, content string) string {
	if ex := strings.TrimSpace(supplied); ex != "" {
		return StripTags(ex)
	}
	if strings.TrimSpace(content) == "" {
		return ""
	}
	return DeriveExcerpt(content, s.excerptLength)
}

func checkCategories(ctx context.Context, tx Repository, ids []uuid.UUID) error {
	for _, id := range ids {
		if _, err := tx.GetCategory(ctx, id); err != nil {
			if errors.Is(err, ErrNotFound) {
				return NewValidationError("category_ids", "The selected category is invalid.")
			}
			return err
		}
	}
	return nil
}

// upsertTags finds each tag by name or creates it with a resolved slug. The
// tag scope is locked before the first lookup so concurrent writers naming the
// same new tag see each other's insert.
func upsertTags(ctx context.Context, tx Repository, names []string, now time.Time) ([]Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}
	if err := tx.LockSlugScope(ctx, SlugScopeTag); err != nil {
		return nil, err
	}
	tags := make([]Tag, 0, len(names))
	seen := make(map[uuid.UUID]bool, len(names))
	for _, name := range names {
		tag, err := tx.GetTagByName(ctx, name)
		switch {
		case errors.Is(err, ErrNotFound):
			tag = &Tag{ID: uuid.New(), Name: name, CreatedAt: now}
			tag.Slug, err = resolveSlugWithFallback(ctx, name, tag.ID.String(), uuid.Nil, tx.TagSlugExists)
			if err != nil {
				return nil, err
			}
			if err := tx.CreateTag(ctx, tag); err != nil {
				return nil, err
			}
		case err != nil:
			return nil, err
		}
		if seen[tag.ID] {
			continue
		}
		seen[tag.ID] = true
		tags = append(tags, *tag)
	}
	return tags, nil
}

// Post operations

func (s *service) CreatePost(ctx context.Context, actor *Actor, req CreatePostRequest) (*Post, error) {
	if err := s.require(ctx, actor, OpCreate, PostResource{}); err != nil {
		return nil, err
	}
	if err := validateCreatePost(req); err != nil {
		return nil, err
	}

	explicitSlug := strings.TrimSpace(req.Slug)
	categoryIDs := dedupeIDs(req.CategoryIDs)
	tagNames := normalizeTagNames(req.Tags)

	var created *Post
	err := s.runTx(ctx, func(ctx context.Context, tx Repository) error {
		if err := tx.LockSlugScope(ctx, SlugScopePost); err != nil {
			return err
		}
		if err := checkCategories(ctx, tx, categoryIDs); err != nil {
			return err
		}

		now := s.now()
		post := &Post{
			ID:              uuid.New(),
			Title:           strings.TrimSpace(req.Title),
			Content:         req.Content,
			AuthorID:        actor.ID,
			MetaTitle:       strings.TrimSpace(req.MetaTitle),
			MetaDescription: strings.TrimSpace(req.MetaDescription),
			CategoryIDs:     categoryIDs,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		if explicitSlug != "" {
			if err := claimExplicitSlug(ctx, explicitSlug, uuid.Nil, tx.PostSlugExists); err != nil {
				return err
			}
			post.Slug = explicitSlug
		} else {
			slug, err := resolveSlugWithFallback(ctx, post.Title, post.ID.String(), uuid.Nil, tx.PostSlugExists)
			if err != nil {
				return err
			}
			post.Slug = slug
		}

		post.Excerpt = s.excerptFor(req.Excerpt, req.Content)

		state := ApplyLifecycle(LifecycleState{}, CreateWith(req.Status), now)
		post.Status, post.PublishedAt = state.Status, state.PublishedAt

		tags, err := upsertTags(ctx, tx, tagNames, now)
		if err != nil {
			return err
		}
		post.Tags = tags

		if err := tx.CreatePost(ctx, post); err != nil {
			return &PostError{PostID: post.ID, Op: "create", Err: writeErr(err, explicitSlug != "")}
		}
		created = post
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, "post.created", func(sink EventSink) error { return sink.PostCreated(ctx, created) })
	return created, nil
}

func (s *service) GetPost(ctx context.Context, actor *Actor, id uuid.UUID) (*Post, error) {
	post, err := s.repository.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.require(ctx, actor, OpView, PostResource{Post: post}) != nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *service) GetPublishedPostBySlug(ctx context.Context, slug string) (*Post, error) {
	post, err := s.repository.GetPostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !post.IsPubliclyVisible() {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *service) ListPosts(ctx context.Context, actor *Actor, filter PostListFilter) ([]*Post, error) {
	scoped, err := ScopePosts(actor, filter)
	if err != nil {
		return nil, err
	}
	return s.repository.ListPosts(ctx, scoped)
}

func (s *service) ListPublishedPosts(ctx context.Context, filter PublishedPostFilter) ([]*Post, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repository.ListPublishedPosts(ctx, filter)
}

func (s *service) RelatedPosts(ctx context.Context, postID uuid.UUID, limit int) ([]*Post, error) {
	post, err := s.repository.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.IsPubliclyVisible() {
		return nil, ErrPostNotFound
	}
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	return s.repository.ListRelatedPosts(ctx, post, limit)
}

func (s *service) UpdatePost(ctx context.Context, actor *Actor, req UpdatePostRequest) (*Post, error) {
	categoryIDs := dedupeIDs(req.CategoryIDs)
	tagNames := normalizeTagNames(req.Tags)

	var (
		updated    *Post
		prevStatus PostStatus
	)
	err := s.runTx(ctx, func(ctx context.Context, tx Repository) error {
		if err := tx.LockSlugScope(ctx, SlugScopePost); err != nil {
			return err
		}
		current, err := tx.GetPost(ctx, req.PostID)
		if err != nil {
			return err
		}
		if err := s.require(ctx, actor, OpUpdate, PostResource{Post: current}); err != nil {
			return err
		}
		if err := validateUpdatePost(req); err != nil {
			return err
		}
		if err := checkCategories(ctx, tx, categoryIDs); err != nil {
			return err
		}

		now := s.now()
		next := *current
		title := strings.TrimSpace(req.Title)

		explicitSlug, hasExplicit := optionalString(req.Slug)
		if explicitSlug == current.Slug {
			hasExplicit = false
		}
		switch {
		case hasExplicit:
			if err := claimExplicitSlug(ctx, explicitSlug, current.ID, tx.PostSlugExists); err != nil {
				return err
			}
			next.Slug = explicitSlug
		case title != current.Title:
			slug, err := resolveSlugWithFallback(ctx, title, current.ID.String(), current.ID, tx.PostSlugExists)
			if err != nil {
				return err
			}
			next.Slug = slug
		}
		next.Title = title

		contentChanged := req.Content != current.Content
		next.Content = req.Content
		if req.Excerpt != nil {
			next.Excerpt = StripTags(*req.Excerpt)
		}
		if contentChanged && next.Excerpt == "" {
			next.Excerpt = s.excerptFor("", req.Content)
		}

		if req.MetaTitle != nil {
			next.MetaTitle = strings.TrimSpace(*req.MetaTitle)
		}
		if req.MetaDescription != nil {
			next.MetaDescription = strings.TrimSpace(*req.MetaDescription)
		}

		change := LifecycleChange{Action: ActionNone}
		if req.Status != "" && req.Status != current.Status {
			change = RequestStatus(req.Status)
		}
		state := ApplyLifecycle(LifecycleState{Status: current.Status, PublishedAt: current.PublishedAt}, change, now)
		next.Status, next.PublishedAt = state.Status, state.PublishedAt

		tags, err := upsertTags(ctx, tx, tagNames, now)
		if err != nil {
			return err
		}
		next.Tags = tags
		next.CategoryIDs = categoryIDs
		next.UpdatedAt = now

		if err := tx.UpdatePost(ctx, &next); err != nil {
			return &PostError{PostID: next.ID, Op: "update", Err: writeErr(err, hasExplicit)}
		}
		updated = &next
		prevStatus = current.Status
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, "post.updated", func(sink EventSink) error { return sink.PostUpdated(ctx, updated) })
	s.emitStatusChange(ctx, prevStatus, updated)
	return updated, nil
}

func (s *service) emitStatusChange(ctx context.Context, prev PostStatus, post *Post) {
	if prev == post.Status {
		return
	}
	if post.Status == PostStatusPublished {
		s.emit(ctx, "post.published", func(sink EventSink) error { return sink.PostPublished(ctx, post) })
		return
	}
	s.emit(ctx, "post.unpublished", func(sink EventSink) error { return sink.PostUnpublished(ctx, post) })
}

func (s *service) TogglePublish(ctx context.Context, actor *Actor, postID uuid.UUID) (*Post, error) {
	var (
		toggled    *Post
		prevStatus PostStatus
	)
	err := s.repository.InTx(ctx, func(ctx context.Context, tx Repository) error {
		if err := tx.LockSlugScope(ctx, SlugScopePost); err != nil {
			return err
		}
		current, err := tx.GetPost(ctx, postID)
		if err != nil {
			return err
		}
		if err := s.require(ctx, actor, OpPublish, PostResource{Post: current}); err != nil {
			return err
		}

		now := s.now()
		next := *current
		state := ApplyLifecycle(LifecycleState{Status: current.Status, PublishedAt: current.PublishedAt}, Toggle(), now)
		next.Status, next.PublishedAt = state.Status, state.PublishedAt
		next.UpdatedAt = now

		if err := tx.UpdatePost(ctx, &next); err != nil {
			return &PostError{PostID: postID, Op: "toggle_publish", Err: err}
		}
		toggled = &next
		prevStatus = current.Status
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitStatusChange(ctx, prevStatus, toggled)
	return toggled, nil
}

func (s *service) DeletePost(ctx context.Context, actor *Actor, postID uuid.UUID) error {
	err := s.repository.InTx(ctx, func(ctx context.Context, tx Repository) error {
		if err := tx.LockSlugScope(ctx, SlugScopePost); err != nil {
			return err
		}
		current, err := tx.GetPost(ctx, postID)
		if err != nil {
			return err
		}
		if err := s.require(ctx, actor, OpDelete, PostResource{Post: current}); err != nil {
			return err
		}
		if err := tx.SoftDeletePost(ctx, postID, s.now()); err != nil {
			return &PostError{PostID: postID, Op: "delete", Err: err}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.emit(ctx, "post.deleted", func(sink EventSink) error { return sink.PostDeleted(ctx, postID) })
	return nil
}

// Comment operations

func (s *service) CreateComment(ctx context.Context, actor *Actor, req CreateCommentRequest) (*Comment, error) {
	if actor == nil {
		return nil, fmt.Errorf("%w: guests cannot comment", ErrForbidden)
	}
	if s.limiter != nil {
		d := s.limiter.Allow(ctx, "comment:"+actor.ID.String(), s.commentLimit)
		if !d.Allowed {
			retry := d.RetryAfter(s.now())
			if retry <= 0 {
				retry = time.Second
			}
			s.logger.InfoContext(ctx, "comment rate limited", "actor_id", actor.ID, "count", d.Count, "limit", d.Limit)
			return nil, &RateLimitError{RetryAfter: retry}
		}
	}
	if err := s.require(ctx, actor, OpCreate, CommentResource{}); err != nil {
		return nil, err
	}
	if err := validateComment(req); err != nil {
		return nil, err
	}

	var created *Comment
	err := s.repository.InTx(ctx, func(ctx context.Context, tx Repository) error {
		post, err := tx.GetPost(ctx, req.PostID)
		if err != nil {
			return err
		}
		if !Authorize(actor, OpView, PostResource{Post: post}) {
			return ErrPostNotFound
		}

		now := s.now()
		comment := &Comment{
			ID:           uuid.New(),
			Content:      strings.TrimSpace(req.Content),
			PostID:       post.ID,
			UserID:       actor.ID,
			ApprovedAt:   ApproveOnCreate(now),
			CreatedAt:    now,
			PostAuthorID: post.AuthorID,
		}
		if err := tx.CreateComment(ctx, comment); err != nil {
			return &CommentError{CommentID: comment.ID, Op: "create", Err: err}
		}
		created = comment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, "comment.created", func(sink EventSink) error { return sink.CommentCreated(ctx, created) })
	return created, nil
}

func (s *service) GetComment(ctx context.Context, actor *Actor, id uuid.UUID) (*Comment, error) {
	comment, err := s.repository.GetComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.require(ctx, actor, OpView, CommentResource{Comment: comment}) != nil {
		return nil, ErrCommentNotFound
	}
	return comment, nil
}

func (s *service) ListComments(ctx context.Context, actor *Actor, filter CommentListFilter) ([]*Comment, error) {
	scoped, err := ScopeComments(actor, filter)
	if err != nil {
		return nil, err
	}
	return s.repository.ListComments(ctx, scoped)
}

func (s *service) ListApprovedComments(ctx context.Context, actor *Actor, postID uuid.UUID) ([]*Comment, error) {
	if _, err := s.GetPost(ctx, actor, postID); err != nil {
		return nil, err
	}
	return s.repository.ListComments(ctx, CommentListFilter{PostID: &postID, ApprovedOnly: true})
}

func (s *service) DeleteComment(ctx context.Context, actor *Actor, commentID uuid.UUID) error {
	err := s.repository.InTx(ctx, func(ctx context.Context, tx Repository) error {
		current, err := tx.GetComment(ctx, commentID)
		if err != nil {
			return err
		}
		if err := s.require(ctx, actor, OpDelete, CommentResource{Comment: current}); err != nil {
			return err
		}
		if err := tx.SoftDeleteComment(ctx, commentID, s.now()); err != nil {
			return &CommentError{CommentID: commentID, Op: "delete", Err: err}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.emit(ctx, "comment.deleted", func(sink EventSink) error { return sink.CommentDeleted(ctx, commentID) })
	return nil
}

// Category operations

func (s *service) CreateCategory(ctx context.Context, actor *Actor, req CreateCategoryRequest) (*Category, error) {
	if err := s.require(ctx, actor, OpCreate, CategoryResource{}); err != nil {
		return nil, err
	}
	explicitSlug := strings.TrimSpace(req.Slug)
	if err := validateCategory(req.Name, req.Description, &explicitSlug); err != nil {
		return nil, err
	}

	var created *Category
	err := s.runTx(ctx, func(ctx context.Context, tx Repository) error {
		if err := tx.LockSlugScope(ctx, SlugScopeCategory); err != nil {
			return err
		}
		name := strings.TrimSpace(req.Name)
		if err := claimCategoryName(ctx, tx, name, uuid.Nil); err != nil {
			return err
		}

		now := s.now()
		category := &Category{
			ID:          uuid.New(),
			Name:        name,
			Description: strings.TrimSpace(req.Description),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if explicitSlug != "" {
			if err := claimExplicitSlug(ctx, explicitSlug, uuid.Nil, tx.CategorySlugExists); err != nil {
				return err
			}
			category.Slug = explicitSlug
		} else {
			slug, err := resolveSlugWithFallback(ctx, name, category.ID.String(), uuid.Nil, tx.CategorySlugExists)
			if err != nil {
				return err
			}
			category.Slug = slug
		}

		if err := tx.CreateCategory(ctx, category); err != nil {
			return &CategoryError{CategoryID: category.ID, Op: "create", Err: writeErr(err, explicitSlug != "")}
		}
		created = category
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, "category.create", func(sink EventSink) error { return sink.CategoryChanged(ctx, created, OpCreate) })
	return created, nil
}

func claimCategoryName(ctx context.Context, tx Repository, name string, id uuid.UUID) error {
	taken, err := tx.CategoryNameExists(ctx, name, id)
	if err != nil {
		return err
	}
	if taken {
		return NewValidationError("name", "The name has already been taken.")
	}
	return nil
}

func (s *service) UpdateCategory(ctx context.Context, actor *Actor, req UpdateCategoryRequest) (*Category, error) {
	var updated *Category
	err := s.runTx(ctx, func(ctx context.Context, tx Repository) error {
		if err := tx.LockSlugScope(ctx, SlugScopeCategory); err != nil {
			return err
		}
		current, err := tx.GetCategory(ctx, req.CategoryID)
		if err != nil {
			return err
		}
		if err := s.require(ctx, actor, OpUpdate, CategoryResource{Category: current}); err != nil {
			return err
		}
		if err := validateCategory(req.Name, req.Description, req.Slug); err != nil {
			return err
		}

		name := strings.TrimSpace(req.Name)
		if name != current.Name {
			if err := claimCategoryName(ctx, tx, name, current.ID); err != nil {
				return err
			}
		}

		next := *current
		explicitSlug, hasExplicit := optionalString(req.Slug)
		if explicitSlug == current.Slug {
			hasExplicit = false
		}
		switch {
		case hasExplicit:
			if err := claimExplicitSlug(ctx, explicitSlug, current.ID, tx.CategorySlugExists); err != nil {
				return err
			}
			next.Slug = explicitSlug
		case name != current.Name:
			slug, err := resolveSlugWithFallback(ctx, name, current.ID.String(), current.ID, tx.CategorySlugExists)
			if err != nil {
				return err
			}
			next.Slug = slug
		}
		next.Name = name
		next.Description = strings.TrimSpace(req.Description)
		next.UpdatedAt = s.now()

		if err := tx.UpdateCategory(ctx, &next); err != nil {
			return &CategoryError{CategoryID: next.ID, Op: "update", Err: writeErr(err, hasExplicit)}
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, "category.update", func(sink EventSink) error { return sink.CategoryChanged(ctx, updated, OpUpdate) })
	return updated, nil
}

func (s *service) DeleteCategory(ctx context.Context, actor *Actor, categoryID uuid.UUID) error {
	var deleted *Category
	err := s.repository.InTx(ctx, func(ctx context.Context, tx Repository) error {
		current, err := tx.GetCategory(ctx, categoryID)
		if err != nil {
			return err
		}
		if err := s.require(ctx, actor, OpDelete, CategoryResource{Category: current}); err != nil {
			return err
		}
		if err := tx.DeleteCategory(ctx, categoryID); err != nil {
			return &CategoryError{CategoryID: categoryID, Op: "delete", Err: err}
		}
		deleted = current
		return nil
	})
	if err != nil {
		return err
	}

	s.emit(ctx, "category.delete", func(sink EventSink) error { return sink.CategoryChanged(ctx, deleted, OpDelete) })
	return nil
}

func (s *service) GetCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	return s.repository.GetCategoryBySlug(ctx, slug)
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repository.ListCategories(ctx)
}

// Tag operations

func (s *service) GetTagBySlug(ctx context.Context, slug string) (*Tag, error) {
	return s.repository.GetTagBySlug(ctx, slug)
}

func (s *service) ListTags(ctx context.Context) ([]*Tag, error) {
	return s.repository.ListTags(ctx)
}
