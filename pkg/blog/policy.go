package blog

import "fmt"

// Operation is an action an actor may attempt on a resource.
type Operation string

const (
	OpViewAny Operation = "viewAny"
	OpView    Operation = "view"
	OpCreate  Operation = "create"
	OpUpdate  Operation = "update"
	OpDelete  Operation = "delete"
	OpPublish Operation = "publish"
)

// Decision is the outcome of an authorization check.
type Decision bool

const (
	Deny  Decision = false
	Allow Decision = true
)

func (d Decision) String() string {
	if d {
		return "allow"
	}
	return "deny"
}

// ResourceKind names the class of resource being authorized.
type ResourceKind string

const (
	ResourcePost     ResourceKind = "post"
	ResourceComment  ResourceKind = "comment"
	ResourceCategory ResourceKind = "category"
)

// Resource is the target of an authorization check. Operations that do not
// address a single instance (viewAny, create) pass a resource with a nil entity.
type Resource interface {
	Kind() ResourceKind
}

// PostResource targets a post.
type PostResource struct {
	Post *Post
}

// CommentResource targets a comment. Comment.PostAuthorID must be populated.
type CommentResource struct {
	Comment *Comment
}

// CategoryResource targets a category.
type CategoryResource struct {
	Category *Category
}

func (PostResource) Kind() ResourceKind     { return ResourcePost }
func (CommentResource) Kind() ResourceKind  { return ResourceComment }
func (CategoryResource) Kind() ResourceKind { return ResourceCategory }

// Authorize decides whether actor may perform op on res. A nil actor is a
// guest. Authorize performs no I/O and never errors; unknown operations and
// resources are denied.
func Authorize(actor *Actor, op Operation, res Resource) Decision {
	switch r := res.(type) {
	case PostResource:
		return authorizePost(actor, op, r.Post)
	case *PostResource:
		return authorizePost(actor, op, r.Post)
	case CommentResource:
		return authorizeComment(actor, op, r.Comment)
	case *CommentResource:
		return authorizeComment(actor, op, r.Comment)
	case CategoryResource, *CategoryResource:
		return authorizeCategory(actor, op)
	}
	return Deny
}

// Require is Authorize expressed as an error wrapping ErrForbidden.
func Require(actor *Actor, op Operation, res Resource) error {
	if Authorize(actor, op, res) {
		return nil
	}
	if res == nil {
		return fmt.Errorf("%w: %s on unknown resource", ErrForbidden, op)
	}
	return fmt.Errorf("%w: %s on %s", ErrForbidden, op, res.Kind())
}

func ownsPost(actor *Actor, p *Post) bool {
	return actor.IsAuthor() && p != nil && p.AuthorID == actor.ID
}

func authorizePost(actor *Actor, op Operation, p *Post) Decision {
	switch op {
	case OpView:
		if p != nil && p.Status == PostStatusPublished && p.PublishedAt != nil {
			return Allow
		}
		if actor == nil {
			return Deny
		}
		return Decision(actor.IsAdmin() || ownsPost(actor, p))
	case OpViewAny, OpCreate:
		return Decision(actor.IsAdmin() || actor.IsAuthor())
	case OpUpdate, OpDelete, OpPublish:
		return Decision(actor.IsAdmin() || ownsPost(actor, p))
	}
	return Deny
}

func authorizeComment(actor *Actor, op Operation, c *Comment) Decision {
	if actor == nil {
		return Deny
	}
	moderates := actor.IsAuthor() && c != nil && c.PostAuthorID == actor.ID
	switch op {
	case OpViewAny:
		return Decision(actor.IsAdmin() || actor.IsAuthor())
	case OpView, OpDelete:
		return Decision(actor.IsAdmin() || moderates)
	case OpCreate:
		return Decision(actor.Role.IsValid())
	case OpUpdate:
		return Decision(actor.Role.IsValid() && c != nil && c.UserID == actor.ID)
	}
	return Deny
}

func authorizeCategory(actor *Actor, op Operation) Decision {
	switch op {
	case OpViewAny, OpView:
		return Allow
	case OpCreate, OpUpdate, OpDelete:
		return Decision(actor.IsAdmin())
	}
	return Deny
}
