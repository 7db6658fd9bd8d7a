package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oilmonegov/Blog/pkg/blog"
)

// Schema creates every table and index the repository needs. It is idempotent.
//
//go:embed schema.sql
var Schema string

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
	Begin(context.Context) (pgx.Tx, error)
}

// Repository implements blog.Repository using PostgreSQL
type Repository struct {
	db   DBTX
	inTx bool
}

// New creates a new PostgreSQL repository
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// Migrate applies Schema.
func Migrate(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Error handling helper
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.HasSuffix(pgErr.ConstraintName, "slug_key") {
				return fmt.Errorf("%s: %w", operation, blog.ErrSlugConflict)
			}
			if strings.HasSuffix(pgErr.ConstraintName, "name_key") {
				return fmt.Errorf("%s: %w", operation, blog.ErrDuplicateName)
			}
			return fmt.Errorf("%s: duplicate entry (%s)", operation, pgErr.ConstraintName)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s: referenced record %w", operation, blog.ErrNotFound)
		case "23502": // not_null_violation
			return fmt.Errorf("%s: required field %s is missing", operation, pgErr.ColumnName)
		case "42P01": // undefined_table
			return fmt.Errorf("%s: table does not exist - database migration required", operation)
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}
	return fmt.Errorf("database error in %s: %w", operation, err)
}

// InTx runs fn inside a database transaction. Calls made while already in a
// transaction join it.
func (r *Repository) InTx(ctx context.Context, fn func(ctx context.Context, tx blog.Repository) error) error {
	if r.inTx {
		return fn(ctx, r)
	}
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return fn(ctx, &Repository{db: tx, inTx: true})
	})
}

// LockSlugScope takes a transaction-scoped advisory lock keyed by scope.
func (r *Repository) LockSlugScope(ctx context.Context, scope blog.SlugScope) error {
	if !r.inTx {
		return nil
	}
	if _, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "blog:"+string(scope)); err != nil {
		return r.handlePostgresError("lock slug scope", err)
	}
	return nil
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// where accumulates predicates and their positional arguments.
type where struct {
	clauses []string
	args    []interface{}
}

func (w *where) add(clause string, arg interface{}) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, strings.ReplaceAll(clause, "?", fmt.Sprintf("$%d", len(w.args))))
}

func (w *where) addRaw(clause string) {
	w.clauses = append(w.clauses, clause)
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func (w *where) page(limit, offset int) string {
	var b strings.Builder
	if limit > 0 {
		w.args = append(w.args, limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(w.args))
	}
	if offset > 0 {
		w.args = append(w.args, offset)
		fmt.Fprintf(&b, " OFFSET $%d", len(w.args))
	}
	return b.String()
}

// Post operations

const postColumns = `p.id, p.title, p.slug, p.content, p.excerpt, p.status, p.author_id,
	p.published_at, p.meta_title, p.meta_description, p.created_at, p.updated_at, p.deleted_at`

func scanPost(row pgx.Row) (*blog.Post, error) {
	var p blog.Post
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.Status, &p.AuthorID,
		&p.PublishedAt, &p.MetaTitle, &p.MetaDescription, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) queryPosts(ctx context.Context, op, query string, args ...interface{}) ([]*blog.Post, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.handlePostgresError(op, err)
	}
	defer rows.Close()

	var posts []*blog.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, r.handlePostgresError(op, err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError(op, err)
	}
	if err := r.loadRelations(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// loadRelations fills CategoryIDs and Tags for posts.
func (r *Repository) loadRelations(ctx context.Context, posts []*blog.Post) error {
	if len(posts) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*blog.Post, len(posts))
	ids := make([]uuid.UUID, 0, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	rows, err := r.db.Query(ctx,
		`SELECT post_id, category_id FROM post_categories WHERE post_id = ANY($1::uuid[]) ORDER BY category_id`,
		idStrings(ids))
	if err != nil {
		return r.handlePostgresError("load post categories", err)
	}
	for rows.Next() {
		var postID, categoryID uuid.UUID
		if err := rows.Scan(&postID, &categoryID); err != nil {
			rows.Close()
			return r.handlePostgresError("load post categories", err)
		}
		p := byID[postID]
		p.CategoryIDs = append(p.CategoryIDs, categoryID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return r.handlePostgresError("load post categories", err)
	}

	rows, err = r.db.Query(ctx, `
		SELECT pt.post_id, t.id, t.name, t.slug, t.created_at
		FROM post_tags pt JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = ANY($1::uuid[])
		ORDER BY t.name`, idStrings(ids))
	if err != nil {
		return r.handlePostgresError("load post tags", err)
	}
	defer rows.Close()
	for rows.Next() {
		var postID uuid.UUID
		var t blog.Tag
		if err := rows.Scan(&postID, &t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return r.handlePostgresError("load post tags", err)
		}
		p := byID[postID]
		p.Tags = append(p.Tags, t)
	}
	if err := rows.Err(); err != nil {
		return r.handlePostgresError("load post tags", err)
	}
	return nil
}

// replaceRelations rewrites the category and tag links of a post.
func (r *Repository) replaceRelations(ctx context.Context, post *blog.Post) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM post_categories WHERE post_id = $1`, post.ID); err != nil {
		return r.handlePostgresError("replace post categories", err)
	}
	if len(post.CategoryIDs) > 0 {
		_, err := r.db.Exec(ctx,
			`INSERT INTO post_categories (post_id, category_id) SELECT $1, unnest($2::uuid[]) ON CONFLICT DO NOTHING`,
			post.ID, idStrings(post.CategoryIDs))
		if err != nil {
			return r.handlePostgresError("replace post categories", err)
		}
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM post_tags WHERE post_id = $1`, post.ID); err != nil {
		return r.handlePostgresError("replace post tags", err)
	}
	if len(post.Tags) > 0 {
		tagIDs := make([]uuid.UUID, len(post.Tags))
		for i, t := range post.Tags {
			tagIDs[i] = t.ID
		}
		_, err := r.db.Exec(ctx,
			`INSERT INTO post_tags (post_id, tag_id) SELECT $1, unnest($2::uuid[]) ON CONFLICT DO NOTHING`,
			post.ID, idStrings(tagIDs))
		if err != nil {
			return r.handlePostgresError("replace post tags", err)
		}
	}
	return nil
}

func (r *Repository) CreatePost(ctx context.Context, post *blog.Post) error {
	query := `
		INSERT INTO posts (
			id, title, slug, content, excerpt, status, author_id, published_at,
			meta_title, meta_description, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(ctx, query,
		post.ID, post.Title, post.Slug, post.Content, post.Excerpt, string(post.Status), post.AuthorID,
		post.PublishedAt, post.MetaTitle, post.MetaDescription, post.CreatedAt, post.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("create post", err)
	}
	return r.replaceRelations(ctx, post)
}

func (r *Repository) GetPost(ctx context.Context, id uuid.UUID) (*blog.Post, error) {
	return r.getPost(ctx, "get post", `p.id = $1`, id)
}

func (r *Repository) GetPostBySlug(ctx context.Context, slug string) (*blog.Post, error) {
	return r.getPost(ctx, "get post by slug", `p.slug = $1`, slug)
}

func (r *Repository) getPost(ctx context.Context, op, predicate string, arg interface{}) (*blog.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts p WHERE ` + predicate + ` AND p.deleted_at IS NULL`
	post, err := scanPost(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blog.ErrPostNotFound
		}
		return nil, r.handlePostgresError(op, err)
	}
	if err := r.loadRelations(ctx, []*blog.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

func (r *Repository) UpdatePost(ctx context.Context, post *blog.Post) error {
	query := `
		UPDATE posts SET
			title = $2, slug = $3, content = $4, excerpt = $5, status = $6,
			published_at = $7, meta_title = $8, meta_description = $9, updated_at = $10
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.db.Exec(ctx, query,
		post.ID, post.Title, post.Slug, post.Content, post.Excerpt, string(post.Status),
		post.PublishedAt, post.MetaTitle, post.MetaDescription, post.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update post", err)
	}
	if tag.RowsAffected() == 0 {
		return blog.ErrPostNotFound
	}
	return r.replaceRelations(ctx, post)
}

func (r *Repository) SoftDeletePost(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE posts SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, at)
	if err != nil {
		return r.handlePostgresError("delete post", err)
	}
	if tag.RowsAffected() == 0 {
		return blog.ErrPostNotFound
	}
	return nil
}

func (r *Repository) ListPosts(ctx context.Context, filter blog.PostListFilter) ([]*blog.Post, error) {
	w := &where{}
	w.addRaw(`p.deleted_at IS NULL`)
	if filter.Status != nil {
		w.add(`p.status = ?`, string(*filter.Status))
	}
	if filter.AuthorID != nil {
		w.add(`p.author_id = ?`, *filter.AuthorID)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		w.add(`(p.title ILIKE ? OR p.content ILIKE ?)`, likePattern(s))
	}
	query := `SELECT ` + postColumns + ` FROM posts p` + w.String() + ` ORDER BY p.created_at DESC, p.id`
	query += w.page(filter.Limit, filter.Offset)
	return r.queryPosts(ctx, "list posts", query, w.args...)
}

const publiclyVisible = `p.status = 'published' AND p.published_at IS NOT NULL AND p.deleted_at IS NULL`

func (r *Repository) ListPublishedPosts(ctx context.Context, filter blog.PublishedPostFilter) ([]*blog.Post, error) {
	w := &where{}
	w.addRaw(publiclyVisible)
	if filter.CategorySlug != "" {
		if _, err := r.GetCategoryBySlug(ctx, filter.CategorySlug); err != nil {
			return nil, err
		}
		w.add(`EXISTS (SELECT 1 FROM post_categories pc JOIN categories c ON c.id = pc.category_id
			WHERE pc.post_id = p.id AND c.slug = ?)`, filter.CategorySlug)
	}
	if filter.TagSlug != "" {
		if _, err := r.GetTagBySlug(ctx, filter.TagSlug); err != nil {
			return nil, err
		}
		w.add(`EXISTS (SELECT 1 FROM post_tags pt JOIN tags t ON t.id = pt.tag_id
			WHERE pt.post_id = p.id AND t.slug = ?)`, filter.TagSlug)
	}
	query := `SELECT ` + postColumns + ` FROM posts p` + w.String() + ` ORDER BY p.published_at DESC, p.created_at DESC`
	query += w.page(filter.Limit, filter.Offset)
	return r.queryPosts(ctx, "list published posts", query, w.args...)
}

func (r *Repository) ListRelatedPosts(ctx context.Context, post *blog.Post, limit int) ([]*blog.Post, error) {
	tagIDs := make([]uuid.UUID, len(post.Tags))
	for i, t := range post.Tags {
		tagIDs[i] = t.ID
	}
	w := &where{}
	w.addRaw(publiclyVisible)
	w.add(`p.id <> ?`, post.ID)
	w.args = append(w.args, idStrings(post.CategoryIDs), idStrings(tagIDs))
	w.addRaw(fmt.Sprintf(`(EXISTS (SELECT 1 FROM post_categories pc WHERE pc.post_id = p.id AND pc.category_id = ANY($%d::uuid[]))
		OR EXISTS (SELECT 1 FROM post_tags pt WHERE pt.post_id = p.id AND pt.tag_id = ANY($%d::uuid[])))`,
		len(w.args)-1, len(w.args)))
	query := `SELECT ` + postColumns + ` FROM posts p` + w.String() + ` ORDER BY p.published_at DESC`
	query += w.page(limit, 0)
	return r.queryPosts(ctx, "list related posts", query, w.args...)
}

func (r *Repository) PostSlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1 AND id <> $2 AND deleted_at IS NULL)`,
		slug, excludeID).Scan(&exists)
	if err != nil {
		return false, r.handlePostgresError("check post slug", err)
	}
	return exists, nil
}

// Category operations

const categoryColumns = `id, name, slug, description, created_at, updated_at`

func scanCategory(row pgx.Row) (*blog.Category, error) {
	var c blog.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) CreateCategory(ctx context.Context, category *blog.Category) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO categories (`+categoryColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		category.ID, category.Name, category.Slug, category.Description, category.CreatedAt, category.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("create category", err)
	}
	return nil
}

func (r *Repository) getCategory(ctx context.Context, op, predicate string, arg interface{}) (*blog.Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE `+predicate, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blog.ErrCategoryNotFound
		}
		return nil, r.handlePostgresError(op, err)
	}
	return c, nil
}

func (r *Repository) GetCategory(ctx context.Context, id uuid.UUID) (*blog.Category, error) {
	return r.getCategory(ctx, "get category", `id = $1`, id)
}

func (r *Repository) GetCategoryBySlug(ctx context.Context, slug string) (*blog.Category, error) {
	return r.getCategory(ctx, "get category by slug", `slug = $1`, slug)
}

func (r *Repository) UpdateCategory(ctx context.Context, category *blog.Category) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE categories SET name = $2, slug = $3, description = $4, updated_at = $5 WHERE id = $1`,
		category.ID, category.Name, category.Slug, category.Description, category.UpdatedAt)
	if err != nil {
		return r.handlePostgresError("update category", err)
	}
	if tag.RowsAffected() == 0 {
		return blog.ErrCategoryNotFound
	}
	return nil
}

// DeleteCategory hard-deletes; post links cascade.
func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return r.handlePostgresError("delete category", err)
	}
	if tag.RowsAffected() == 0 {
		return blog.ErrCategoryNotFound
	}
	return nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]*blog.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, r.handlePostgresError("list categories", err)
	}
	defer rows.Close()

	var out []*blog.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, r.handlePostgresError("list categories", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("list categories", err)
	}
	return out, nil
}

func (r *Repository) CategorySlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE slug = $1 AND id <> $2)`, slug, excludeID).Scan(&exists)
	if err != nil {
		return false, r.handlePostgresError("check category slug", err)
	}
	return exists, nil
}

func (r *Repository) CategoryNameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE lower(name) = lower($1) AND id <> $2)`, name, excludeID).Scan(&exists)
	if err != nil {
		return false, r.handlePostgresError("check category name", err)
	}
	return exists, nil
}

// Tag operations

const tagColumns = `id, name, slug, created_at`

func scanTag(row pgx.Row) (*blog.Tag, error) {
	var t blog.Tag
	if err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repository) CreateTag(ctx context.Context, tag *blog.Tag) error {
	_, err := r.db.Exec(ctx, `INSERT INTO tags (`+tagColumns+`) VALUES ($1, $2, $3, $4)`,
		tag.ID, tag.Name, tag.Slug, tag.CreatedAt)
	if err != nil {
		return r.handlePostgresError("create tag", err)
	}
	return nil
}

func (r *Repository) getTag(ctx context.Context, op, predicate string, arg interface{}) (*blog.Tag, error) {
	t, err := scanTag(r.db.QueryRow(ctx, `SELECT `+tagColumns+` FROM tags WHERE `+predicate, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blog.ErrTagNotFound
		}
		return nil, r.handlePostgresError(op, err)
	}
	return t, nil
}

// GetTagByName matches names case-insensitively.
func (r *Repository) GetTagByName(ctx context.Context, name string) (*blog.Tag, error) {
	return r.getTag(ctx, "get tag by name", `lower(name) = lower($1)`, name)
}

func (r *Repository) GetTagBySlug(ctx context.Context, slug string) (*blog.Tag, error) {
	return r.getTag(ctx, "get tag by slug", `slug = $1`, slug)
}

func (r *Repository) ListTags(ctx context.Context) ([]*blog.Tag, error) {
	rows, err := r.db.Query(ctx, `SELECT `+tagColumns+` FROM tags ORDER BY name`)
	if err != nil {
		return nil, r.handlePostgresError("list tags", err)
	}
	defer rows.Close()

	var out []*blog.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, r.handlePostgresError("list tags", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("list tags", err)
	}
	return out, nil
}

func (r *Repository) TagSlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tags WHERE slug = $1 AND id <> $2)`, slug, excludeID).Scan(&exists)
	if err != nil {
		return false, r.handlePostgresError("check tag slug", err)
	}
	return exists, nil
}

// Comment operations

const commentColumns = `c.id, c.content, c.post_id, c.user_id, c.approved_at, c.created_at, c.deleted_at, p.author_id`

func scanComment(row pgx.Row) (*blog.Comment, error) {
	var c blog.Comment
	err := row.Scan(&c.ID, &c.Content, &c.PostID, &c.UserID, &c.ApprovedAt, &c.CreatedAt, &c.DeletedAt, &c.PostAuthorID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) CreateComment(ctx context.Context, comment *blog.Comment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO comments (id, content, post_id, user_id, approved_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		comment.ID, comment.Content, comment.PostID, comment.UserID, comment.ApprovedAt, comment.CreatedAt)
	if err != nil {
		err = r.handlePostgresError("create comment", err)
		if errors.Is(err, blog.ErrNotFound) {
			return blog.ErrPostNotFound
		}
		return err
	}
	return nil
}

func (r *Repository) GetComment(ctx context.Context, id uuid.UUID) (*blog.Comment, error) {
	c, err := scanComment(r.db.QueryRow(ctx, `
		SELECT `+commentColumns+`
		FROM comments c JOIN posts p ON p.id = c.post_id
		WHERE c.id = $1 AND c.deleted_at IS NULL`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blog.ErrCommentNotFound
		}
		return nil, r.handlePostgresError("get comment", err)
	}
	return c, nil
}

func (r *Repository) SoftDeleteComment(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE comments SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, at)
	if err != nil {
		return r.handlePostgresError("delete comment", err)
	}
	if tag.RowsAffected() == 0 {
		return blog.ErrCommentNotFound
	}
	return nil
}

func (r *Repository) ListComments(ctx context.Context, filter blog.CommentListFilter) ([]*blog.Comment, error) {
	w := &where{}
	w.addRaw(`c.deleted_at IS NULL`)
	if filter.ApprovedOnly {
		w.addRaw(`c.approved_at IS NOT NULL`)
	}
	if filter.PostID != nil {
		w.add(`c.post_id = ?`, *filter.PostID)
	}
	if filter.UserID != nil {
		w.add(`c.user_id = ?`, *filter.UserID)
	}
	if filter.PostAuthorID != nil {
		w.add(`p.author_id = ?`, *filter.PostAuthorID)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		w.add(`c.content ILIKE ?`, likePattern(s))
	}
	query := `SELECT ` + commentColumns + ` FROM comments c JOIN posts p ON p.id = c.post_id` +
		w.String() + ` ORDER BY c.created_at DESC, c.id`
	query += w.page(filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, r.handlePostgresError("list comments", err)
	}
	defer rows.Close()

	var out []*blog.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, r.handlePostgresError("list comments", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("list comments", err)
	}
	return out, nil
}
