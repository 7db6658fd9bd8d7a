package blog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of privileged roles. Guests have no role and are
// represented by a nil *Actor.
type Role int

const (
	RoleAdmin Role = iota + 1
	RoleAuthor
)

// String returns the wire value of the role.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleAuthor:
		return "author"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// IsValid reports whether r is one of the defined roles.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleAuthor
}

// ParseRole converts a wire value ("admin", "author") into a Role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "author":
		return RoleAuthor, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}

// RoleLabel returns the human readable label for a role.
func RoleLabel(r Role) string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleAuthor:
		return "Author"
	default:
		return ""
	}
}

// Actor is an already-authenticated identity.
type Actor struct {
	ID   uuid.UUID `json:"id"`
	Role Role      `json:"role"`
}

// IsAdmin is nil-safe.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

// IsAuthor is nil-safe.
func (a *Actor) IsAuthor() bool {
	return a != nil && a.Role == RoleAuthor
}

// PostStatus is the publication state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// IsValid reports whether s is a known status.
func (s PostStatus) IsValid() bool {
	return s == PostStatusDraft || s == PostStatusPublished
}

// ParsePostStatus converts a wire value into a PostStatus.
func ParsePostStatus(s string) (PostStatus, error) {
	st := PostStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", fmt.Errorf("%w: unknown post status %q", ErrValidation, s)
	}
	return st, nil
}

// Post is an article owned by its author.
//
// Invariants: Status == PostStatusPublished implies PublishedAt != nil; Slug is
// unique among non-deleted posts; Excerpt never contains markup.
type Post struct {
	ID              uuid.UUID   `json:"id"`
	Title           string      `json:"title"`
	Slug            string      `json:"slug"`
	Content         string      `json:"content"`
	Excerpt         string      `json:"excerpt"`
	Status          PostStatus  `json:"status"`
	AuthorID        uuid.UUID   `json:"author_id"`
	PublishedAt     *time.Time  `json:"published_at,omitempty"`
	MetaTitle       string      `json:"meta_title,omitempty"`
	MetaDescription string      `json:"meta_description,omitempty"`
	CategoryIDs     []uuid.UUID `json:"category_ids,omitempty"`
	Tags            []Tag       `json:"tags,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	DeletedAt       *time.Time  `json:"deleted_at,omitempty"`
}

// IsPubliclyVisible reports whether anyone, including guests, may read the post.
func (p *Post) IsPubliclyVisible() bool {
	return p != nil && p.Status == PostStatusPublished && p.PublishedAt != nil && p.DeletedAt == nil
}

// Category groups posts. Categories are hard-deleted.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Tag is created lazily by name while a post is written. Tags are hard-deleted.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is owned by UserID and weakly associated with the hosting post's
// author for moderation.
type Comment struct {
	ID         uuid.UUID  `json:"id"`
	Content    string     `json:"content"`
	PostID     uuid.UUID  `json:"post_id"`
	UserID     uuid.UUID  `json:"user_id"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`

	// Populated by repositories on read, not persisted
	PostAuthorID uuid.UUID `json:"-"`
}

// SlugScope names a slug namespace. Slugs are unique per scope.
type SlugScope string

const (
	SlugScopePost     SlugScope = "posts"
	SlugScopeCategory SlugScope = "categories"
	SlugScopeTag      SlugScope = "tags"
)

// PostListFilter filters the management post listing.
type PostListFilter struct {
	Status   *PostStatus
	AuthorID *uuid.UUID
	Search   string
	Limit    int
	Offset   int
}

// PublishedPostFilter filters the public post listing.
type PublishedPostFilter struct {
	CategorySlug string
	TagSlug      string
	Limit        int
	Offset       int
}

// CommentListFilter filters the management comment listing. PostAuthorID is
// set by ScopeComments and must not be trusted from callers.
type CommentListFilter struct {
	PostID       *uuid.UUID
	UserID       *uuid.UUID
	PostAuthorID *uuid.UUID
	Search       string
	ApprovedOnly bool
	Limit        int
	Offset       int
}
