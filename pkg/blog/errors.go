package blog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrForbidden indicates the actor lacks the capability for the operation
	ErrForbidden = errors.New("forbidden")

	// ErrValidation indicates malformed or constraint-violating input
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a resource does not exist or is hidden from the actor
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates the caller should retry after a cool-down
	ErrRateLimited = errors.New("too many requests")

	ErrPostNotFound     = fmt.Errorf("post %w", ErrNotFound)
	ErrCommentNotFound  = fmt.Errorf("comment %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrTagNotFound      = fmt.Errorf("tag %w", ErrNotFound)

	// ErrEmptySlug is returned when a display name normalizes to nothing.
	// The caller must supply a fallback seed.
	ErrEmptySlug = errors.New("slug normalizes to empty string")

	// ErrSlugConflict is returned by repositories when a unique slug index rejects a write
	ErrSlugConflict = errors.New("slug already in use")

	// ErrDuplicateName is returned by repositories when a unique name index rejects a write
	ErrDuplicateName = errors.New("name already in use")
)

// ValidationError carries per-field messages.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// add records a message for field unless one is already present.
func (e *ValidationError) add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// orNil returns nil when no field failed.
func (e *ValidationError) orNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// RateLimitError is returned when comment creation is throttled.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: retry after %s", ErrRateLimited, e.RetryAfter.Round(time.Second))
}

func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// PostError represents an infrastructure failure during a post operation
type PostError struct {
	PostID uuid.UUID
	Op     string
	Err    error
}

func (e *PostError) Error() string {
	return fmt.Sprintf("post operation %s failed for post %s: %v", e.Op, e.PostID, e.Err)
}

func (e *PostError) Unwrap() error {
	return e.Err
}

// CommentError represents an infrastructure failure during a comment operation
type CommentError struct {
	CommentID uuid.UUID
	Op        string
	Err       error
}

func (e *CommentError) Error() string {
	return fmt.Sprintf("comment operation %s failed for comment %s: %v", e.Op, e.CommentID, e.Err)
}

func (e *CommentError) Unwrap() error {
	return e.Err
}

// CategoryError represents an infrastructure failure during a category operation
type CategoryError struct {
	CategoryID uuid.UUID
	Op         string
	Err        error
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("category operation %s failed for category %s: %v", e.Op, e.CategoryID, e.Err)
}

func (e *CategoryError) Unwrap() error {
	return e.Err
}

// ErrorKind is the outcome class surfaced to callers.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindForbidden
	KindValidation
	KindNotFound
	KindRateLimited
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindForbidden:
		return "forbidden"
	case KindValidation:
		return "validation_failed"
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "internal"
	}
}

// Classify maps an error returned by this package to its outcome class.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrRateLimited):
		return KindRateLimited
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindInternal
	}
}
