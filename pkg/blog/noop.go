package blog

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// NoopEventSink is a no-operation implementation of EventSink
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-operation event sink
func NewNoopEventSink() EventSink {
	return &NoopEventSink{}
}

func (n *NoopEventSink) PostCreated(ctx context.Context, post *Post) error     { return nil }
func (n *NoopEventSink) PostUpdated(ctx context.Context, post *Post) error     { return nil }
func (n *NoopEventSink) PostPublished(ctx context.Context, post *Post) error   { return nil }
func (n *NoopEventSink) PostUnpublished(ctx context.Context, post *Post) error { return nil }
func (n *NoopEventSink) PostDeleted(ctx context.Context, postID uuid.UUID) error {
	return nil
}
func (n *NoopEventSink) CommentCreated(ctx context.Context, comment *Comment) error { return nil }
func (n *NoopEventSink) CommentDeleted(ctx context.Context, commentID uuid.UUID) error {
	return nil
}
func (n *NoopEventSink) CategoryChanged(ctx context.Context, category *Category, op Operation) error {
	return nil
}

// LoggingEventSink writes one structured log line per event.
type LoggingEventSink struct {
	logger *slog.Logger
}

// NewLoggingEventSink creates an event sink that logs through logger, or
// slog.Default when logger is nil.
func NewLoggingEventSink(logger *slog.Logger) *LoggingEventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingEventSink{logger: logger}
}

func (l *LoggingEventSink) post(ctx context.Context, event string, p *Post) error {
	l.logger.InfoContext(ctx, "blog event",
		"event", event, "post_id", p.ID, "slug", p.Slug, "status", p.Status, "author_id", p.AuthorID)
	return nil
}

func (l *LoggingEventSink) PostCreated(ctx context.Context, post *Post) error {
	return l.post(ctx, "post.created", post)
}

func (l *LoggingEventSink) PostUpdated(ctx context.Context, post *Post) error {
	return l.post(ctx, "post.updated", post)
}

func (l *LoggingEventSink) PostPublished(ctx context.Context, post *Post) error {
	return l.post(ctx, "post.published", post)
}

func (l *LoggingEventSink) PostUnpublished(ctx context.Context, post *Post) error {
	return l.post(ctx, "post.unpublished", post)
}

func (l *LoggingEventSink) PostDeleted(ctx context.Context, postID uuid.UUID) error {
	l.logger.InfoContext(ctx, "blog event", "event", "post.deleted", "post_id", postID)
	return nil
}

func (l *LoggingEventSink) CommentCreated(ctx context.Context, comment *Comment) error {
	l.logger.InfoContext(ctx, "blog event",
		"event", "comment.created", "comment_id", comment.ID, "post_id", comment.PostID, "user_id", comment.UserID)
	return nil
}

func (l *LoggingEventSink) CommentDeleted(ctx context.Context, commentID uuid.UUID) error {
	l.logger.InfoContext(ctx, "blog event", "event", "comment.deleted", "comment_id", commentID)
	return nil
}

func (l *LoggingEventSink) CategoryChanged(ctx context.Context, category *Category, op Operation) error {
	l.logger.InfoContext(ctx, "blog event",
		"event", "category."+string(op), "category_id", category.ID, "slug", category.Slug)
	return nil
}

// MultiEventSink fans events out to several sinks and returns the first error.
type MultiEventSink []EventSink

func (m MultiEventSink) each(fn func(EventSink) error) error {
	var first error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := fn(s); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m MultiEventSink) PostCreated(ctx context.Context, post *Post) error {
	return m.each(func(s EventSink) error { return s.PostCreated(ctx, post) })
}

func (m MultiEventSink) PostUpdated(ctx context.Context, post *Post) error {
	return m.each(func(s EventSink) error { return s.PostUpdated(ctx, post) })
}

func (m MultiEventSink) PostPublished(ctx context.Context, post *Post) error {
	return m.each(func(s EventSink) error { return s.PostPublished(ctx, post) })
}

func (m MultiEventSink) PostUnpublished(ctx context.Context, post *Post) error {
	return m.each(func(s EventSink) error { return s.PostUnpublished(ctx, post) })
}

func (m MultiEventSink) PostDeleted(ctx context.Context, postID uuid.UUID) error {
	return m.each(func(s EventSink) error { return s.PostDeleted(ctx, postID) })
}

func (m MultiEventSink) CommentCreated(ctx context.Context, comment *Comment) error {
	return m.each(func(s EventSink) error { return s.CommentCreated(ctx, comment) })
}

func (m MultiEventSink) CommentDeleted(ctx context.Context, commentID uuid.UUID) error {
	return m.each(func(s EventSink) error { return s.CommentDeleted(ctx, commentID) })
}

func (m MultiEventSink) CategoryChanged(ctx context.Context, category *Category, op Operation) error {
	return m.each(func(s EventSink) error { return s.CategoryChanged(ctx, category, op) })
}
