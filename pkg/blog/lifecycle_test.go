package blog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oilmonegov/Blog/pkg/blog"
)

var (
	t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Hour)
	t2 = t0.Add(2 * time.Hour)
)

func TestApplyLifecycle_Create(t *testing.T) {
	draft := blog.ApplyLifecycle(blog.LifecycleState{}, blog.CreateWith(blog.PostStatusDraft), t0)
	assert.Equal(t, blog.PostStatusDraft, draft.Status)
	assert.Nil(t, draft.PublishedAt)

	published := blog.ApplyLifecycle(blog.LifecycleState{}, blog.CreateWith(blog.PostStatusPublished), t0)
	assert.Equal(t, blog.PostStatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)
	assert.Equal(t, t0, *published.PublishedAt)

	defaulted := blog.ApplyLifecycle(blog.LifecycleState{}, blog.CreateWith(""), t0)
	assert.Equal(t, blog.PostStatusDraft, defaulted.Status)
}

func TestApplyLifecycle_PublishUnpublishRepublish(t *testing.T) {
	state := blog.LifecycleState{Status: blog.PostStatusDraft}

	state = blog.ApplyLifecycle(state, blog.Toggle(), t0)
	assert.Equal(t, blog.PostStatusPublished, state.Status)
	require.NotNil(t, state.PublishedAt)
	assert.Equal(t, t0, *state.PublishedAt)

	state = blog.ApplyLifecycle(state, blog.Toggle(), t1)
	assert.Equal(t, blog.PostStatusDraft, state.Status)
	assert.Nil(t, state.PublishedAt)

	state = blog.ApplyLifecycle(state, blog.Toggle(), t2)
	assert.Equal(t, blog.PostStatusPublished, state.Status)
	require.NotNil(t, state.PublishedAt)
	assert.Equal(t, t2, *state.PublishedAt, "republish stamps a fresh time")
}

func TestApplyLifecycle_GenericUpdate(t *testing.T) {
	published := blog.LifecycleState{Status: blog.PostStatusPublished, PublishedAt: &t0}

	t.Run("unchanged status has no side effect", func(t *testing.T) {
		next := blog.ApplyLifecycle(published, blog.LifecycleChange{Action: blog.ActionNone}, t2)
		assert.Equal(t, published.Status, next.Status)
		assert.Equal(t, t0, *next.PublishedAt)
	})

	t.Run("draft via update keeps timestamp", func(t *testing.T) {
		next := blog.ApplyLifecycle(published, blog.RequestStatus(blog.PostStatusDraft), t2)
		assert.Equal(t, blog.PostStatusDraft, next.Status)
		require.NotNil(t, next.PublishedAt)
		assert.Equal(t, t0, *next.PublishedAt)
	})

	t.Run("publish never overwrites existing timestamp", func(t *testing.T) {
		draftWithStamp := blog.LifecycleState{Status: blog.PostStatusDraft, PublishedAt: &t0}
		next := blog.ApplyLifecycle(draftWithStamp, blog.RequestStatus(blog.PostStatusPublished), t2)
		assert.Equal(t, blog.PostStatusPublished, next.Status)
		assert.Equal(t, t0, *next.PublishedAt)
	})

	t.Run("publish from empty stamps now", func(t *testing.T) {
		next := blog.ApplyLifecycle(blog.LifecycleState{Status: blog.PostStatusDraft}, blog.RequestStatus(blog.PostStatusPublished), t1)
		require.NotNil(t, next.PublishedAt)
		assert.Equal(t, t1, *next.PublishedAt)
	})

	t.Run("unknown status ignored", func(t *testing.T) {
		next := blog.ApplyLifecycle(published, blog.RequestStatus("archived"), t2)
		assert.Equal(t, blog.PostStatusPublished, next.Status)
	})
}

func TestApplyLifecycle_InvariantAlwaysHolds(t *testing.T) {
	states := []blog.LifecycleState{
		{Status: blog.PostStatusDraft},
		{Status: blog.PostStatusDraft, PublishedAt: &t0},
		{Status: blog.PostStatusPublished, PublishedAt: &t0},
		{Status: blog.PostStatusPublished},
	}
	changes := []blog.LifecycleChange{
		{Action: blog.ActionNone},
		blog.CreateWith(blog.PostStatusPublished),
		blog.RequestStatus(blog.PostStatusDraft),
		blog.RequestStatus(blog.PostStatusPublished),
		blog.Toggle(),
	}
	for _, s := range states {
		for _, c := range changes {
			next := blog.ApplyLifecycle(s, c, t1)
			if next.Status == blog.PostStatusPublished {
				assert.NotNil(t, next.PublishedAt, "state %+v change %+v", s, c)
			}
		}
	}
}

func TestApplyLifecycle_DoesNotAliasInput(t *testing.T) {
	stamp := t0
	in := blog.LifecycleState{Status: blog.PostStatusPublished, PublishedAt: &stamp}
	out := blog.ApplyLifecycle(in, blog.LifecycleChange{}, t1)
	*out.PublishedAt = t2
	assert.Equal(t, t0, stamp)
}
