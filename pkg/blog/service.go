package blog

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the blog's content operations. Every method that acts on
// behalf of someone takes the actor explicitly; a nil actor is a guest.
type Service interface {
	// Post operations
	CreatePost(ctx context.Context, actor *Actor, req CreatePostRequest) (*Post, error)
	GetPost(ctx context.Context, actor *Actor, id uuid.UUID) (*Post, error)
	GetPublishedPostBySlug(ctx context.Context, slug string) (*Post, error)
	ListPosts(ctx context.Context, actor *Actor, filter PostListFilter) ([]*Post, error)
	ListPublishedPosts(ctx context.Context, filter PublishedPostFilter) ([]*Post, error)
	RelatedPosts(ctx context.Context, postID uuid.UUID, limit int) ([]*Post, error)
	UpdatePost(ctx context.Context, actor *Actor, req UpdatePostRequest) (*Post, error)
	TogglePublish(ctx context.Context, actor *Actor, postID uuid.UUID) (*Post, error)
	DeletePost(ctx context.Context, actor *Actor, postID uuid.UUID) error

	// Comment operations
	CreateComment(ctx context.Context, actor *Actor, req CreateCommentRequest) (*Comment, error)
	GetComment(ctx context.Context, actor *Actor, id uuid.UUID) (*Comment, error)
	ListComments(ctx context.Context, actor *Actor, filter CommentListFilter) ([]*Comment, error)
	ListApprovedComments(ctx context.Context, actor *Actor, postID uuid.UUID) ([]*Comment, error)
	DeleteComment(ctx context.Context, actor *Actor, commentID uuid.UUID) error

	// Category operations
	CreateCategory(ctx context.Context, actor *Actor, req CreateCategoryRequest) (*Category, error)
	UpdateCategory(ctx context.Context, actor *Actor, req UpdateCategoryRequest) (*Category, error)
	DeleteCategory(ctx context.Context, actor *Actor, categoryID uuid.UUID) error
	GetCategoryBySlug(ctx context.Context, slug string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)

	// Tag operations
	GetTagBySlug(ctx context.Context, slug string) (*Tag, error)
	ListTags(ctx context.Context) ([]*Tag, error)
}
