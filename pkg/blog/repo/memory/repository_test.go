package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oilmonegov/Blog/pkg/blog"
	"github.com/oilmonegov/Blog/pkg/blog/repo/memory"
)

func newPost(slug string, status blog.PostStatus, publishedAt *time.Time) *blog.Post {
	now := time.Now().UTC()
	return &blog.Post{
		ID:          uuid.New(),
		Title:       slug,
		Slug:        slug,
		Content:     "content of " + slug,
		Status:      status,
		AuthorID:    uuid.New(),
		PublishedAt: publishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func at(minutes int) *time.Time {
	t := time.Date(2024, 1, 1, 0, minutes, 0, 0, time.UTC)
	return &t
}

func TestMemoryRepository_PostOperations(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	t.Run("CreateAndGet", func(t *testing.T) {
		post := newPost("hello", blog.PostStatusDraft, nil)
		require.NoError(t, repo.CreatePost(ctx, post))

		got, err := repo.GetPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.Slug, got.Slug)

		got.Title = "mutated"
		again, err := repo.GetPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "hello", again.Title, "stored copy must not alias returned value")
	})

	t.Run("SlugUniqueAmongLivePosts", func(t *testing.T) {
		first := newPost("dup", blog.PostStatusDraft, nil)
		require.NoError(t, repo.CreatePost(ctx, first))

		second := newPost("dup", blog.PostStatusDraft, nil)
		assert.ErrorIs(t, repo.CreatePost(ctx, second), blog.ErrSlugConflict)

		require.NoError(t, repo.SoftDeletePost(ctx, first.ID, time.Now()))
		assert.NoError(t, repo.CreatePost(ctx, second), "deleted posts release their slug")
	})

	t.Run("SoftDeleteHidesPost", func(t *testing.T) {
		post := newPost("gone", blog.PostStatusDraft, nil)
		require.NoError(t, repo.CreatePost(ctx, post))
		require.NoError(t, repo.SoftDeletePost(ctx, post.ID, time.Now()))

		_, err := repo.GetPost(ctx, post.ID)
		assert.ErrorIs(t, err, blog.ErrPostNotFound)
		assert.ErrorIs(t, repo.SoftDeletePost(ctx, post.ID, time.Now()), blog.ErrNotFound)
	})

	t.Run("PostSlugExistsExcludesSelf", func(t *testing.T) {
		post := newPost("mine", blog.PostStatusDraft, nil)
		require.NoError(t, repo.CreatePost(ctx, post))

		taken, err := repo.PostSlugExists(ctx, "mine", uuid.Nil)
		require.NoError(t, err)
		assert.True(t, taken)

		taken, err = repo.PostSlugExists(ctx, "mine", post.ID)
		require.NoError(t, err)
		assert.False(t, taken)
	})
}

func TestMemoryRepository_InTxRollsBack(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	kept := newPost("kept", blog.PostStatusDraft, nil)
	require.NoError(t, repo.CreatePost(ctx, kept))

	boom := errors.New("boom")
	err := repo.InTx(ctx, func(ctx context.Context, tx blog.Repository) error {
		require.NoError(t, tx.CreatePost(ctx, newPost("rolled-back", blog.PostStatusDraft, nil)))
		require.NoError(t, tx.SoftDeletePost(ctx, kept.ID, time.Now()))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repo.GetPostBySlug(ctx, "rolled-back")
	assert.ErrorIs(t, err, blog.ErrPostNotFound)
	_, err = repo.GetPost(ctx, kept.ID)
	assert.NoError(t, err)
}

func TestMemoryRepository_NestedInTxJoins(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	err := repo.InTx(ctx, func(ctx context.Context, tx blog.Repository) error {
		return tx.InTx(ctx, func(ctx context.Context, inner blog.Repository) error {
			return inner.CreatePost(ctx, newPost("nested", blog.PostStatusDraft, nil))
		})
	})
	require.NoError(t, err)

	_, err = repo.GetPostBySlug(ctx, "nested")
	assert.NoError(t, err)
}

func TestMemoryRepository_PublishedListings(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	cat := &blog.Category{ID: uuid.New(), Name: "Go", Slug: "go"}
	require.NoError(t, repo.CreateCategory(ctx, cat))
	tag := &blog.Tag{ID: uuid.New(), Name: "Tips", Slug: "tips"}
	require.NoError(t, repo.CreateTag(ctx, tag))

	older := newPost("older", blog.PostStatusPublished, at(1))
	older.CategoryIDs = []uuid.UUID{cat.ID}
	newer := newPost("newer", blog.PostStatusPublished, at(5))
	newer.Tags = []blog.Tag{*tag}
	both := newPost("both", blog.PostStatusPublished, at(3))
	both.CategoryIDs = []uuid.UUID{cat.ID}
	both.Tags = []blog.Tag{*tag}
	draft := newPost("draft", blog.PostStatusDraft, nil)
	draft.CategoryIDs = []uuid.UUID{cat.ID}

	for _, p := range []*blog.Post{older, newer, both, draft} {
		require.NoError(t, repo.CreatePost(ctx, p))
	}

	t.Run("OrderedByPublishedAtDesc", func(t *testing.T) {
		posts, err := repo.ListPublishedPosts(ctx, blog.PublishedPostFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"newer", "both", "older"}, slugs(posts))
	})

	t.Run("CategoryArchive", func(t *testing.T) {
		posts, err := repo.ListPublishedPosts(ctx, blog.PublishedPostFilter{CategorySlug: "go"})
		require.NoError(t, err)
		assert.Equal(t, []string{"both", "older"}, slugs(posts))
	})

	t.Run("TagArchive", func(t *testing.T) {
		posts, err := repo.ListPublishedPosts(ctx, blog.PublishedPostFilter{TagSlug: "tips", Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"newer"}, slugs(posts))
	})

	t.Run("UnknownArchive", func(t *testing.T) {
		_, err := repo.ListPublishedPosts(ctx, blog.PublishedPostFilter{CategorySlug: "nope"})
		assert.ErrorIs(t, err, blog.ErrCategoryNotFound)
	})

	t.Run("RelatedSharesCategoryOrTag", func(t *testing.T) {
		posts, err := repo.ListRelatedPosts(ctx, older, 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"both"}, slugs(posts))

		posts, err = repo.ListRelatedPosts(ctx, both, 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"newer", "older"}, slugs(posts))
	})

	t.Run("DeleteCategoryDetaches", func(t *testing.T) {
		require.NoError(t, repo.DeleteCategory(ctx, cat.ID))
		got, err := repo.GetPost(ctx, older.ID)
		require.NoError(t, err)
		assert.Empty(t, got.CategoryIDs)
	})
}

func TestMemoryRepository_Categories(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	news := &blog.Category{ID: uuid.New(), Name: "News", Slug: "news"}
	require.NoError(t, repo.CreateCategory(ctx, news))

	assert.ErrorIs(t, repo.CreateCategory(ctx, &blog.Category{ID: uuid.New(), Name: "news", Slug: "other"}), blog.ErrDuplicateName)
	assert.ErrorIs(t, repo.CreateCategory(ctx, &blog.Category{ID: uuid.New(), Name: "Other", Slug: "news"}), blog.ErrSlugConflict)

	exists, err := repo.CategoryNameExists(ctx, "NEWS", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.CategoryNameExists(ctx, "News", news.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.GetCategory(ctx, uuid.New())
	assert.ErrorIs(t, err, blog.ErrCategoryNotFound)
}

func TestMemoryRepository_Comments(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	mine := newPost("mine", blog.PostStatusPublished, at(1))
	theirs := newPost("theirs", blog.PostStatusPublished, at(2))
	require.NoError(t, repo.CreatePost(ctx, mine))
	require.NoError(t, repo.CreatePost(ctx, theirs))

	c1 := &blog.Comment{ID: uuid.New(), PostID: mine.ID, UserID: uuid.New(), Content: "first!", ApprovedAt: at(3), CreatedAt: *at(3)}
	c2 := &blog.Comment{ID: uuid.New(), PostID: theirs.ID, UserID: uuid.New(), Content: "second", ApprovedAt: at(4), CreatedAt: *at(4)}
	c3 := &blog.Comment{ID: uuid.New(), PostID: mine.ID, UserID: uuid.New(), Content: "pending", CreatedAt: *at(5)}
	for _, c := range []*blog.Comment{c1, c2, c3} {
		require.NoError(t, repo.CreateComment(ctx, c))
	}

	got, err := repo.GetComment(ctx, c1.ID)
	require.NoError(t, err)
	assert.Equal(t, mine.AuthorID, got.PostAuthorID)

	scoped, err := repo.ListComments(ctx, blog.CommentListFilter{PostAuthorID: &mine.AuthorID})
	require.NoError(t, err)
	require.Len(t, scoped, 2)
	for _, c := range scoped {
		assert.Equal(t, mine.AuthorID, c.PostAuthorID)
	}

	approved, err := repo.ListComments(ctx, blog.CommentListFilter{PostID: &mine.ID, ApprovedOnly: true})
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, c1.ID, approved[0].ID)

	require.NoError(t, repo.SoftDeleteComment(ctx, c1.ID, time.Now()))
	_, err = repo.GetComment(ctx, c1.ID)
	assert.ErrorIs(t, err, blog.ErrCommentNotFound)

	searched, err := repo.ListComments(ctx, blog.CommentListFilter{Search: "SECOND"})
	require.NoError(t, err)
	require.Len(t, searched, 1)
	assert.Equal(t, c2.ID, searched[0].ID)
}

func TestMemoryRepository_Tags(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	require.NoError(t, repo.CreateTag(ctx, &blog.Tag{ID: uuid.New(), Name: "Golang", Slug: "golang"}))

	tag, err := repo.GetTagByName(ctx, "golang")
	require.NoError(t, err)
	assert.Equal(t, "Golang", tag.Name)

	_, err = repo.GetTagByName(ctx, "rust")
	assert.ErrorIs(t, err, blog.ErrTagNotFound)

	assert.ErrorIs(t, repo.CreateTag(ctx, &blog.Tag{ID: uuid.New(), Name: "Other", Slug: "golang"}), blog.ErrSlugConflict)
}

func slugs(posts []*blog.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Slug)
	}
	return out
}
