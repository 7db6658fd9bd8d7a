package blog_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/oilmonegov/Blog/pkg/blog"
)

var (
	admin   = &blog.Actor{ID: uuid.MustParse("00000000-0000-0000-0000-00000000000a"), Role: blog.RoleAdmin}
	authorA = &blog.Actor{ID: uuid.MustParse("00000000-0000-0000-0000-0000000000a1"), Role: blog.RoleAuthor}
	authorB = &blog.Actor{ID: uuid.MustParse("00000000-0000-0000-0000-0000000000b1"), Role: blog.RoleAuthor}
)

func postBy(owner *blog.Actor, published bool) *blog.Post {
	p := &blog.Post{ID: uuid.New(), AuthorID: owner.ID, Status: blog.PostStatusDraft}
	if published {
		now := time.Now()
		p.Status = blog.PostStatusPublished
		p.PublishedAt = &now
	}
	return p
}

func TestAuthorize_PostTable(t *testing.T) {
	draft := postBy(authorA, false)

	tests := []struct {
		name  string
		actor *blog.Actor
		op    blog.Operation
		want  blog.Decision
	}{
		{"admin viewAny", admin, blog.OpViewAny, blog.Allow},
		{"author viewAny", authorA, blog.OpViewAny, blog.Allow},
		{"guest viewAny", nil, blog.OpViewAny, blog.Deny},

		{"admin view draft", admin, blog.OpView, blog.Allow},
		{"owner view draft", authorA, blog.OpView, blog.Allow},
		{"other author view draft", authorB, blog.OpView, blog.Deny},
		{"guest view draft", nil, blog.OpView, blog.Deny},

		{"admin create", admin, blog.OpCreate, blog.Allow},
		{"author create", authorB, blog.OpCreate, blog.Allow},
		{"guest create", nil, blog.OpCreate, blog.Deny},

		{"admin update", admin, blog.OpUpdate, blog.Allow},
		{"owner update", authorA, blog.OpUpdate, blog.Allow},
		{"other update", authorB, blog.OpUpdate, blog.Deny},
		{"guest update", nil, blog.OpUpdate, blog.Deny},

		{"admin delete", admin, blog.OpDelete, blog.Allow},
		{"owner delete", authorA, blog.OpDelete, blog.Allow},
		{"other delete", authorB, blog.OpDelete, blog.Deny},
		{"guest delete", nil, blog.OpDelete, blog.Deny},

		{"admin publish", admin, blog.OpPublish, blog.Allow},
		{"owner publish", authorA, blog.OpPublish, blog.Allow},
		{"other publish", authorB, blog.OpPublish, blog.Deny},
		{"guest publish", nil, blog.OpPublish, blog.Deny},

		{"unknown op", admin, blog.Operation("archive"), blog.Deny},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, blog.Authorize(tt.actor, tt.op, blog.PostResource{Post: draft}))
		})
	}
}

func TestAuthorize_PostViewVisibility(t *testing.T) {
	published := postBy(authorA, true)
	for _, actor := range []*blog.Actor{nil, admin, authorA, authorB} {
		assert.Equal(t, blog.Allow, blog.Authorize(actor, blog.OpView, blog.PostResource{Post: published}))
	}

	// Published without a timestamp is not public.
	broken := postBy(authorA, false)
	broken.Status = blog.PostStatusPublished
	assert.Equal(t, blog.Deny, blog.Authorize(nil, blog.OpView, blog.PostResource{Post: broken}))
	assert.Equal(t, blog.Deny, blog.Authorize(authorB, blog.OpView, blog.PostResource{Post: broken}))
	assert.Equal(t, blog.Allow, blog.Authorize(authorA, blog.OpView, blog.PostResource{Post: broken}))
}

// view is allowed iff the post is public, the actor is admin, or the actor wrote it.
func TestAuthorize_PostViewProperty(t *testing.T) {
	actors := []*blog.Actor{nil, admin, authorA, authorB, {ID: uuid.New()}}
	for _, owner := range []*blog.Actor{authorA, authorB} {
		for _, published := range []bool{false, true} {
			post := postBy(owner, published)
			for _, actor := range actors {
				want := published || actor.IsAdmin() || (actor.IsAuthor() && actor.ID == owner.ID)
				got := blog.Authorize(actor, blog.OpView, blog.PostResource{Post: post})
				assert.Equal(t, blog.Decision(want), got, "owner=%v published=%v actor=%+v", owner.ID, published, actor)
			}
		}
	}
}

func TestAuthorize_UnknownRoleDenied(t *testing.T) {
	stranger := &blog.Actor{ID: uuid.New(), Role: blog.Role(99)}
	post := postBy(stranger, false)
	post.AuthorID = stranger.ID

	assert.Equal(t, blog.Deny, blog.Authorize(stranger, blog.OpCreate, blog.PostResource{}))
	assert.Equal(t, blog.Deny, blog.Authorize(stranger, blog.OpUpdate, blog.PostResource{Post: post}))
	assert.Equal(t, blog.Deny, blog.Authorize(stranger, blog.OpCreate, blog.CommentResource{}))
}

func TestAuthorize_CommentTable(t *testing.T) {
	commenter := &blog.Actor{ID: uuid.New(), Role: blog.RoleAuthor}
	onAPost := &blog.Comment{ID: uuid.New(), UserID: commenter.ID, PostAuthorID: authorA.ID}

	tests := []struct {
		name  string
		actor *blog.Actor
		op    blog.Operation
		want  blog.Decision
	}{
		{"admin viewAny", admin, blog.OpViewAny, blog.Allow},
		{"author viewAny", authorB, blog.OpViewAny, blog.Allow},
		{"guest viewAny", nil, blog.OpViewAny, blog.Deny},

		{"admin view", admin, blog.OpView, blog.Allow},
		{"post owner view", authorA, blog.OpView, blog.Allow},
		{"other author view", authorB, blog.OpView, blog.Deny},
		{"guest view", nil, blog.OpView, blog.Deny},

		{"admin create", admin, blog.OpCreate, blog.Allow},
		{"author create", authorB, blog.OpCreate, blog.Allow},
		{"guest create", nil, blog.OpCreate, blog.Deny},

		{"comment owner update", commenter, blog.OpUpdate, blog.Allow},
		{"admin update", admin, blog.OpUpdate, blog.Deny},
		{"post owner update", authorA, blog.OpUpdate, blog.Deny},

		{"admin delete", admin, blog.OpDelete, blog.Allow},
		{"post owner delete", authorA, blog.OpDelete, blog.Allow},
		{"other author delete", authorB, blog.OpDelete, blog.Deny},
		{"comment owner delete", commenter, blog.OpDelete, blog.Deny},
		{"guest delete", nil, blog.OpDelete, blog.Deny},

		{"publish undefined", admin, blog.OpPublish, blog.Deny},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, blog.Authorize(tt.actor, tt.op, blog.CommentResource{Comment: onAPost}))
		})
	}
}

func TestAuthorize_CategoryTable(t *testing.T) {
	res := blog.CategoryResource{Category: &blog.Category{ID: uuid.New()}}
	for _, actor := range []*blog.Actor{nil, admin, authorA} {
		assert.Equal(t, blog.Allow, blog.Authorize(actor, blog.OpViewAny, res))
		assert.Equal(t, blog.Allow, blog.Authorize(actor, blog.OpView, res))
	}
	for _, op := range []blog.Operation{blog.OpCreate, blog.OpUpdate, blog.OpDelete} {
		assert.Equal(t, blog.Allow, blog.Authorize(admin, op, res), op)
		assert.Equal(t, blog.Deny, blog.Authorize(authorA, op, res), op)
		assert.Equal(t, blog.Deny, blog.Authorize(nil, op, res), op)
	}
}

func TestRequire(t *testing.T) {
	assert.NoError(t, blog.Require(admin, blog.OpCreate, blog.CategoryResource{}))

	err := blog.Require(authorA, blog.OpCreate, blog.CategoryResource{})
	assert.ErrorIs(t, err, blog.ErrForbidden)
	assert.Equal(t, blog.KindForbidden, blog.Classify(err))
	assert.Contains(t, err.Error(), "create on category")

	assert.NotPanics(t, func() {
		err = blog.Require(admin, blog.OpView, nil)
	})
	assert.ErrorIs(t, err, blog.ErrForbidden)
}

func TestRoleLabel(t *testing.T) {
	assert.Equal(t, "Admin", blog.RoleLabel(blog.RoleAdmin))
	assert.Equal(t, "Author", blog.RoleLabel(blog.RoleAuthor))
	assert.Equal(t, "", blog.RoleLabel(blog.Role(0)))

	r, err := blog.ParseRole(" Author ")
	assert.NoError(t, err)
	assert.Equal(t, blog.RoleAuthor, r)
	_, err = blog.ParseRole("guest")
	assert.Error(t, err)
}
