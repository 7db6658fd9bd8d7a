package blog

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Field length bounds.
const (
	MaxTitleLength           = 255
	MaxExcerptLength         = 500
	MaxMetaTitleLength       = 255
	MaxMetaDescriptionLength = 500
	MaxCategoryNameLength    = 255
	MaxCategoryDescLength    = 1000
	MaxTagNameLength         = 255
	MinCommentLength         = 3
	MaxCommentLength         = 5000
)

func requireText(v *ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field, fmt.Sprintf("The %s field is required.", field))
	}
}

func maxRunes(v *ValidationError, field, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("The %s may not be greater than %d characters.", field, max))
	}
}

func checkSlug(v *ValidationError, slug string) {
	if err := ValidateSlug(slug); err != nil {
		v.add("slug", fmt.Sprintf("The slug %s.", err))
	}
}

func validateCreatePost(req CreatePostRequest) error {
	v := &ValidationError{}
	requireText(v, "title", req.Title)
	maxRunes(v, "title", req.Title, MaxTitleLength)
	requireText(v, "content", req.Content)
	maxRunes(v, "excerpt", req.Excerpt, MaxExcerptLength)
	maxRunes(v, "meta_title", req.MetaTitle, MaxMetaTitleLength)
	maxRunes(v, "meta_description", req.MetaDescription, MaxMetaDescriptionLength)
	if req.Status != "" && !req.Status.IsValid() {
		v.add("status", "The selected status is invalid.")
	}
	if s := strings.TrimSpace(req.Slug); s != "" {
		checkSlug(v, s)
	}
	validateTagNames(v, req.Tags)
	return v.orNil()
}

func validateUpdatePost(req UpdatePostRequest) error {
	v := &ValidationError{}
	requireText(v, "title", req.Title)
	maxRunes(v, "title", req.Title, MaxTitleLength)
	requireText(v, "content", req.Content)
	if req.Excerpt != nil {
		maxRunes(v, "excerpt", *req.Excerpt, MaxExcerptLength)
	}
	if req.MetaTitle != nil {
		maxRunes(v, "meta_title", *req.MetaTitle, MaxMetaTitleLength)
	}
	if req.MetaDescription != nil {
		maxRunes(v, "meta_description", *req.MetaDescription, MaxMetaDescriptionLength)
	}
	if req.Status != "" && !req.Status.IsValid() {
		v.add("status", "The selected status is invalid.")
	}
	if s, ok := optionalString(req.Slug); ok {
		checkSlug(v, s)
	}
	validateTagNames(v, req.Tags)
	return v.orNil()
}

func validateTagNames(v *ValidationError, names []string) {
	for _, n := range names {
		if utf8.RuneCountInString(strings.TrimSpace(n)) > MaxTagNameLength {
			v.add("tags", fmt.Sprintf("Each tag may not be greater than %d characters.", MaxTagNameLength))
			return
		}
	}
}

func validateComment(req CreateCommentRequest) error {
	v := &ValidationError{}
	content := strings.TrimSpace(req.Content)
	switch n := utf8.RuneCountInString(content); {
	case n == 0:
		v.add("content", "The content field is required.")
	case n < MinCommentLength:
		v.add("content", fmt.Sprintf("The content must be at least %d characters.", MinCommentLength))
	case n > MaxCommentLength:
		v.add("content", fmt.Sprintf("The content may not be greater than %d characters.", MaxCommentLength))
	}
	return v.orNil()
}

func validateCategory(name, description string, slug *string) error {
	v := &ValidationError{}
	requireText(v, "name", name)
	maxRunes(v, "name", name, MaxCategoryNameLength)
	maxRunes(v, "description", description, MaxCategoryDescLength)
	if s, ok := optionalString(slug); ok {
		checkSlug(v, s)
	}
	return v.orNil()
}
