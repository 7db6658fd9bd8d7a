package blog

import "time"

// ApproveOnCreate returns the approval stamp for a new comment. Comments are
// approved the moment they are stored; there is no review queue.
func ApproveOnCreate(now time.Time) *time.Time {
	t := now.UTC()
	return &t
}

// ScopeComments narrows a management listing to what actor may see. Admins
// keep the caller's filter. Authors are restricted to comments on their own
// posts and may not filter by commenter.
func ScopeComments(actor *Actor, filter CommentListFilter) (CommentListFilter, error) {
	if err := Require(actor, OpViewAny, CommentResource{}); err != nil {
		return CommentListFilter{}, err
	}
	scoped := filter
	if actor.IsAdmin() {
		return scoped, nil
	}
	id := actor.ID
	scoped.PostAuthorID = &id
	scoped.UserID = nil
	return scoped, nil
}

// ScopePosts narrows a management listing to what actor may see. Authors only
// see their own posts regardless of the requested author.
func ScopePosts(actor *Actor, filter PostListFilter) (PostListFilter, error) {
	if err := Require(actor, OpViewAny, PostResource{}); err != nil {
		return PostListFilter{}, err
	}
	scoped := filter
	if actor.IsAdmin() {
		return scoped, nil
	}
	id := actor.ID
	scoped.AuthorID = &id
	return scoped, nil
}
