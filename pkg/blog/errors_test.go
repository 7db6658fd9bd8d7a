package blog_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/oilmonegov/Blog/pkg/blog"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want blog.ErrorKind
	}{
		{"nil", nil, blog.KindNone},
		{"forbidden", fmt.Errorf("wrap: %w", blog.ErrForbidden), blog.KindForbidden},
		{"validation", blog.NewValidationError("title", "required"), blog.KindValidation},
		{"post not found", blog.ErrPostNotFound, blog.KindNotFound},
		{"tag not found", blog.ErrTagNotFound, blog.KindNotFound},
		{"rate limited", &blog.RateLimitError{RetryAfter: time.Second}, blog.KindRateLimited},
		{"wrapped in PostError", &blog.PostError{PostID: uuid.New(), Op: "update", Err: blog.NewValidationError("slug", "taken")}, blog.KindValidation},
		{"infrastructure", &blog.PostError{Op: "create", Err: errors.New("connection reset")}, blog.KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, blog.Classify(tt.err))
		})
	}
}

func TestValidationError(t *testing.T) {
	err := &blog.ValidationError{Fields: map[string]string{"title": "required", "content": "required"}}
	assert.Equal(t, "validation failed: content: required; title: required", err.Error())
	assert.ErrorIs(t, err, blog.ErrValidation)

	var ve *blog.ValidationError
	wrapped := &blog.CommentError{Op: "create", Err: err}
	assert.True(t, errors.As(wrapped, &ve))
	assert.Equal(t, "required", ve.Fields["title"])
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "forbidden", blog.KindForbidden.String())
	assert.Equal(t, "rate_limited", blog.KindRateLimited.String())
	assert.Equal(t, "internal", blog.KindInternal.String())
}
