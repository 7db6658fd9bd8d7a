package blog

import (
	"strings"

	"github.com/google/uuid"
)

// CreatePostRequest contains parameters for creating a post. An empty Slug
// is derived from Title; an empty Excerpt is derived from Content.
type CreatePostRequest struct {
	Title           string
	Slug            string
	Content         string
	Excerpt         string
	Status          PostStatus
	MetaTitle       string
	MetaDescription string
	CategoryIDs     []uuid.UUID
	Tags            []string
}

// UpdatePostRequest replaces the editable fields of a post. Nil pointers
// leave the stored value in place. A blank Excerpt clears the stored one, and
// an empty excerpt is derived again when Content changes. CategoryIDs and Tags
// replace the stored sets, so nil detaches everything.
type UpdatePostRequest struct {
	PostID          uuid.UUID
	Title           string
	Slug            *string
	Content         string
	Excerpt         *string
	Status          PostStatus
	MetaTitle       *string
	MetaDescription *string
	CategoryIDs     []uuid.UUID
	Tags            []string
}

// CreateCommentRequest contains parameters for posting a comment.
type CreateCommentRequest struct {
	PostID  uuid.UUID
	Content string
}

// CreateCategoryRequest contains parameters for creating a category.
type CreateCategoryRequest struct {
	Name        string
	Slug        string
	Description string
}

// UpdateCategoryRequest replaces a category's fields. A nil Slug keeps the
// stored one unless Name changes.
type UpdateCategoryRequest struct {
	CategoryID  uuid.UUID
	Name        string
	Slug        *string
	Description string
}

// ParseTagList splits a comma separated tag list, trimming entries and
// dropping empties and case-insensitive duplicates. First spelling wins.
func ParseTagList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return normalizeTagNames(strings.Split(raw, ","))
}

func normalizeTagNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// optionalString treats a nil or blank pointer as not supplied.
func optionalString(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	s := strings.TrimSpace(*p)
	return s, s != ""
}
