package blog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/oilmonegov/Blog/pkg/blog/ratelimit"
)

// Repository defines persistence for posts, taxonomy and comments.
//
// Get and List methods never return soft-deleted rows. Not-found lookups
// return an error wrapping ErrNotFound. Writes that violate a unique slug
// index return ErrSlugConflict; a unique category name, ErrDuplicateName.
type Repository interface {
	// InTx runs fn against a transactional view of the repository. The
	// changes made through tx are discarded when fn returns an error.
	InTx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error

	// LockSlugScope serializes writers of scope until the enclosing
	// transaction ends. Outside InTx it is a no-op.
	LockSlugScope(ctx context.Context, scope SlugScope) error

	// Post operations
	CreatePost(ctx context.Context, post *Post) error
	GetPost(ctx context.Context, id uuid.UUID) (*Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*Post, error)
	UpdatePost(ctx context.Context, post *Post) error
	SoftDeletePost(ctx context.Context, id uuid.UUID, at time.Time) error
	ListPosts(ctx context.Context, filter PostListFilter) ([]*Post, error)
	ListPublishedPosts(ctx context.Context, filter PublishedPostFilter) ([]*Post, error)
	ListRelatedPosts(ctx context.Context, post *Post, limit int) ([]*Post, error)
	PostSlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)

	// Category operations
	CreateCategory(ctx context.Context, category *Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*Category, error)
	UpdateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]*Category, error)
	CategorySlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	CategoryNameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)

	// Tag operations
	CreateTag(ctx context.Context, tag *Tag) error
	GetTagByName(ctx context.Context, name string) (*Tag, error)
	GetTagBySlug(ctx context.Context, slug string) (*Tag, error)
	ListTags(ctx context.Context) ([]*Tag, error)
	TagSlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)

	// Comment operations
	CreateComment(ctx context.Context, comment *Comment) error
	GetComment(ctx context.Context, id uuid.UUID) (*Comment, error)
	SoftDeleteComment(ctx context.Context, id uuid.UUID, at time.Time) error
	ListComments(ctx context.Context, filter CommentListFilter) ([]*Comment, error)
}

// EventSink receives notifications after a mutation commits. Errors are
// logged by the service and never fail the operation.
type EventSink interface {
	PostCreated(ctx context.Context, post *Post) error
	PostUpdated(ctx context.Context, post *Post) error
	PostPublished(ctx context.Context, post *Post) error
	PostUnpublished(ctx context.Context, post *Post) error
	PostDeleted(ctx context.Context, postID uuid.UUID) error

	CommentCreated(ctx context.Context, comment *Comment) error
	CommentDeleted(ctx context.Context, commentID uuid.UUID) error

	CategoryChanged(ctx context.Context, category *Category, op Operation) error
}

// RateLimiter throttles per-key actions.
type RateLimiter = ratelimit.Limiter
