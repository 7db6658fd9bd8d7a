package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oilmonegov/Blog/pkg/blog"
)

// Repository implements blog.Repository using in-memory storage.
//
// Transactions are serialized by a single writer lock; a failed transaction
// restores a snapshot taken when it began.
type Repository struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data *store
}

type store struct {
	posts      map[uuid.UUID]*blog.Post
	categories map[uuid.UUID]*blog.Category
	tags       map[uuid.UUID]*blog.Tag
	comments   map[uuid.UUID]*blog.Comment
}

func newStore() *store {
	return &store{
		posts:      make(map[uuid.UUID]*blog.Post),
		categories: make(map[uuid.UUID]*blog.Category),
		tags:       make(map[uuid.UUID]*blog.Tag),
		comments:   make(map[uuid.UUID]*blog.Comment),
	}
}

func (s *store) clone() *store {
	c := newStore()
	for id, p := range s.posts {
		c.posts[id] = clonePost(p)
	}
	for id, cat := range s.categories {
		cp := *cat
		c.categories[id] = &cp
	}
	for id, t := range s.tags {
		cp := *t
		c.tags[id] = &cp
	}
	for id, cm := range s.comments {
		c.comments[id] = cloneComment(cm)
	}
	return c
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{data: newStore()}
}

// tx is the view handed to InTx callbacks. Nested InTx calls join the
// enclosing transaction.
type tx struct {
	*Repository
}

func (t tx) InTx(ctx context.Context, fn func(ctx context.Context, tx blog.Repository) error) error {
	return fn(ctx, t)
}

func (r *Repository) InTx(ctx context.Context, fn func(ctx context.Context, tx blog.Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.RLock()
	snapshot := r.data.clone()
	r.mu.RUnlock()

	if err := fn(ctx, tx{r}); err != nil {
		r.mu.Lock()
		r.data = snapshot
		r.mu.Unlock()
		return err
	}
	return nil
}

// LockSlugScope is a no-op: InTx already serializes every writer.
func (r *Repository) LockSlugScope(ctx context.Context, scope blog.SlugScope) error {
	return nil
}

func clonePost(p *blog.Post) *blog.Post {
	c := *p
	c.PublishedAt = cloneTime(p.PublishedAt)
	c.DeletedAt = cloneTime(p.DeletedAt)
	if p.CategoryIDs != nil {
		c.CategoryIDs = append([]uuid.UUID(nil), p.CategoryIDs...)
	}
	if p.Tags != nil {
		c.Tags = append([]blog.Tag(nil), p.Tags...)
	}
	return &c
}

func cloneComment(cm *blog.Comment) *blog.Comment {
	c := *cm
	c.ApprovedAt = cloneTime(cm.ApprovedAt)
	c.DeletedAt = cloneTime(cm.DeletedAt)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// Post operations

func (r *Repository) postSlugTaken(slug string, excludeID uuid.UUID) bool {
	for _, p := range r.data.posts {
		if p.DeletedAt == nil && p.ID != excludeID && p.Slug == slug {
			return true
		}
	}
	return false
}

func (r *Repository) CreatePost(ctx context.Context, post *blog.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.postSlugTaken(post.Slug, post.ID) {
		return blog.ErrSlugConflict
	}
	r.data.posts[post.ID] = clonePost(post)
	return nil
}

func (r *Repository) GetPost(ctx context.Context, id uuid.UUID) (*blog.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.data.posts[id]
	if !ok || p.DeletedAt != nil {
		return nil, blog.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *Repository) GetPostBySlug(ctx context.Context, slug string) (*blog.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.data.posts {
		if p.DeletedAt == nil && p.Slug == slug {
			return clonePost(p), nil
		}
	}
	return nil, blog.ErrPostNotFound
}

func (r *Repository) UpdatePost(ctx context.Context, post *blog.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.data.posts[post.ID]
	if !ok || existing.DeletedAt != nil {
		return blog.ErrPostNotFound
	}
	if r.postSlugTaken(post.Slug, post.ID) {
		return blog.ErrSlugConflict
	}
	r.data.posts[post.ID] = clonePost(post)
	return nil
}

func (r *Repository) SoftDeletePost(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.data.posts[id]
	if !ok || p.DeletedAt != nil {
		return blog.ErrPostNotFound
	}
	p.DeletedAt = &at
	p.UpdatedAt = at
	return nil
}

func (r *Repository) ListPosts(ctx context.Context, filter blog.PostListFilter) ([]*blog.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	var out []*blog.Post
	for _, p := range r.data.posts {
		if p.DeletedAt != nil {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		if filter.AuthorID != nil && p.AuthorID != *filter.AuthorID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) &&
			!strings.Contains(strings.ToLower(p.Content), search) {
			continue
		}
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return page(out, filter.Limit, filter.Offset), nil
}

func (r *Repository) ListPublishedPosts(ctx context.Context, filter blog.PublishedPostFilter) ([]*blog.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var categoryID, tagID *uuid.UUID
	if filter.CategorySlug != "" {
		c := r.categoryBySlug(filter.CategorySlug)
		if c == nil {
			return nil, blog.ErrCategoryNotFound
		}
		categoryID = &c.ID
	}
	if filter.TagSlug != "" {
		t := r.tagBySlug(filter.TagSlug)
		if t == nil {
			return nil, blog.ErrTagNotFound
		}
		tagID = &t.ID
	}

	var out []*blog.Post
	for _, p := range r.data.posts {
		if !p.IsPubliclyVisible() {
			continue
		}
		if categoryID != nil && !containsID(p.CategoryIDs, *categoryID) {
			continue
		}
		if tagID != nil && !hasTag(p, *tagID) {
			continue
		}
		out = append(out, clonePost(p))
	}
	sortByPublishedDesc(out)
	return page(out, filter.Limit, filter.Offset), nil
}

func (r *Repository) ListRelatedPosts(ctx context.Context, post *blog.Post, limit int) ([]*blog.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*blog.Post
	for _, p := range r.data.posts {
		if p.ID == post.ID || !p.IsPubliclyVisible() {
			continue
		}
		related := false
		for _, id := range post.CategoryIDs {
			if containsID(p.CategoryIDs, id) {
				related = true
				break
			}
		}
		if !related {
			for _, t := range post.Tags {
				if hasTag(p, t.ID) {
					related = true
					break
				}
			}
		}
		if related {
			out = append(out, clonePost(p))
		}
	}
	sortByPublishedDesc(out)
	return page(out, limit, 0), nil
}

func (r *Repository) PostSlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.postSlugTaken(slug, excludeID), nil
}

func sortByPublishedDesc(posts []*blog.Post) {
	sort.Slice(posts, func(i, j int) bool {
		a, b := posts[i].PublishedAt, posts[j].PublishedAt
		if a.Equal(*b) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return a.After(*b)
	})
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func hasTag(p *blog.Post, id uuid.UUID) bool {
	for _, t := range p.Tags {
		if t.ID == id {
			return true
		}
	}
	return false
}

func page[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// Category operations

func (r *Repository) categoryBySlug(slug string) *blog.Category {
	for _, c := range r.data.categories {
		if c.Slug == slug {
			return c
		}
	}
	return nil
}

func (r *Repository) checkCategoryUnique(c *blog.Category) error {
	for _, other := range r.data.categories {
		if other.ID == c.ID {
			continue
		}
		if other.Slug == c.Slug {
			return blog.ErrSlugConflict
		}
		if strings.EqualFold(other.Name, c.Name) {
			return blog.ErrDuplicateName
		}
	}
	return nil
}

func (r *Repository) CreateCategory(ctx context.Context, category *blog.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkCategoryUnique(category); err != nil {
		return err
	}
	c := *category
	r.data.categories[category.ID] = &c
	return nil
}

func (r *Repository) GetCategory(ctx context.Context, id uuid.UUID) (*blog.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.data.categories[id]
	if !ok {
		return nil, blog.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *Repository) GetCategoryBySlug(ctx context.Context, slug string) (*blog.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := r.categoryBySlug(slug)
	if c == nil {
		return nil, blog.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, category *blog.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data.categories[category.ID]; !ok {
		return blog.ErrCategoryNotFound
	}
	if err := r.checkCategoryUnique(category); err != nil {
		return err
	}
	c := *category
	r.data.categories[category.ID] = &c
	return nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data.categories[id]; !ok {
		return blog.ErrCategoryNotFound
	}
	delete(r.data.categories, id)
	for _, p := range r.data.posts {
		kept := p.CategoryIDs[:0]
		for _, cid := range p.CategoryIDs {
			if cid != id {
				kept = append(kept, cid)
			}
		}
		p.CategoryIDs = kept
	}
	return nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]*blog.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*blog.Category, 0, len(r.data.categories))
	for _, c := range r.data.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Repository) CategorySlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := r.categoryBySlug(slug)
	return c != nil && c.ID != excludeID, nil
}

func (r *Repository) CategoryNameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.data.categories {
		if c.ID != excludeID && strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

// Tag operations

func (r *Repository) tagBySlug(slug string) *blog.Tag {
	for _, t := range r.data.tags {
		if t.Slug == slug {
			return t
		}
	}
	return nil
}

func (r *Repository) CreateTag(ctx context.Context, tag *blog.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, other := range r.data.tags {
		if other.Slug == tag.Slug {
			return blog.ErrSlugConflict
		}
		if strings.EqualFold(other.Name, tag.Name) {
			return blog.ErrDuplicateName
		}
	}
	t := *tag
	r.data.tags[tag.ID] = &t
	return nil
}

// GetTagByName matches names case-insensitively.
func (r *Repository) GetTagByName(ctx context.Context, name string) (*blog.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.data.tags {
		if strings.EqualFold(t.Name, name) {
			cp := *t
			return &cp, nil
		}
	}
	return nil, blog.ErrTagNotFound
}

func (r *Repository) GetTagBySlug(ctx context.Context, slug string) (*blog.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t := r.tagBySlug(slug)
	if t == nil {
		return nil, blog.ErrTagNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *Repository) ListTags(ctx context.Context) ([]*blog.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*blog.Tag, 0, len(r.data.tags))
	for _, t := range r.data.tags {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Repository) TagSlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t := r.tagBySlug(slug)
	return t != nil && t.ID != excludeID, nil
}

// Comment operations

func (r *Repository) withPostAuthor(cm *blog.Comment) *blog.Comment {
	c := cloneComment(cm)
	if p, ok := r.data.posts[cm.PostID]; ok {
		c.PostAuthorID = p.AuthorID
	}
	return c
}

func (r *Repository) CreateComment(ctx context.Context, comment *blog.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.data.posts[comment.PostID]; !ok || p.DeletedAt != nil {
		return blog.ErrPostNotFound
	}
	r.data.comments[comment.ID] = cloneComment(comment)
	return nil
}

func (r *Repository) GetComment(ctx context.Context, id uuid.UUID) (*blog.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.data.comments[id]
	if !ok || c.DeletedAt != nil {
		return nil, blog.ErrCommentNotFound
	}
	return r.withPostAuthor(c), nil
}

func (r *Repository) SoftDeleteComment(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.data.comments[id]
	if !ok || c.DeletedAt != nil {
		return blog.ErrCommentNotFound
	}
	c.DeletedAt = &at
	return nil
}

func (r *Repository) ListComments(ctx context.Context, filter blog.CommentListFilter) ([]*blog.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	var out []*blog.Comment
	for _, cm := range r.data.comments {
		if cm.DeletedAt != nil {
			continue
		}
		if filter.ApprovedOnly && cm.ApprovedAt == nil {
			continue
		}
		if filter.PostID != nil && cm.PostID != *filter.PostID {
			continue
		}
		if filter.UserID != nil && cm.UserID != *filter.UserID {
			continue
		}
		c := r.withPostAuthor(cm)
		if filter.PostAuthorID != nil && c.PostAuthorID != *filter.PostAuthorID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Content), search) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return page(out, filter.Limit, filter.Offset), nil
}
