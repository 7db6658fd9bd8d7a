// Package events publishes blog domain events to external brokers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/oilmonegov/Blog/pkg/blog"
)

// Event is the JSON envelope written for every domain event.
type Event struct {
	Type       string          `json:"type"`
	ID         uuid.UUID       `json:"id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data,omitempty"`
}

type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// KafkaSink implements blog.EventSink. Messages are keyed by the entity id so
// events for one post stay ordered within a partition.
type KafkaSink struct {
	writer kafkaWriter
	now    func() time.Time
}

var _ blog.EventSink = (*KafkaSink)(nil)

func NewKafkaSink(cfg KafkaConfig) (*KafkaSink, error) {
	brokers := make([]string, 0, len(cfg.Brokers))
	for _, b := range cfg.Brokers {
		trimmed := strings.TrimSpace(b)
		if trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers required")
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, fmt.Errorf("kafka topic required")
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return newKafkaSink(w), nil
}

func newKafkaSink(w kafkaWriter) *KafkaSink {
	return &KafkaSink{writer: w, now: time.Now}
}

func (k *KafkaSink) Close() error {
	if k == nil || k.writer == nil {
		return nil
	}
	return k.writer.Close()
}

func (k *KafkaSink) publish(ctx context.Context, eventType string, id uuid.UUID, data interface{}) error {
	if k == nil || k.writer == nil {
		return fmt.Errorf("kafka sink not initialized")
	}
	ev := Event{Type: eventType, ID: id, OccurredAt: k.now().UTC()}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("encode %s: %w", eventType, err)
		}
		ev.Data = raw
	}
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode %s: %w", eventType, err)
	}
	msg := kafka.Message{
		Key:     []byte(id.String()),
		Value:   value,
		Headers: []kafka.Header{{Key: "event-type", Value: []byte(eventType)}},
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}
	return nil
}

func (k *KafkaSink) PostCreated(ctx context.Context, post *blog.Post) error {
	return k.publish(ctx, "post.created", post.ID, post)
}

func (k *KafkaSink) PostUpdated(ctx context.Context, post *blog.Post) error {
	return k.publish(ctx, "post.updated", post.ID, post)
}

func (k *KafkaSink) PostPublished(ctx context.Context, post *blog.Post) error {
	return k.publish(ctx, "post.published", post.ID, post)
}

func (k *KafkaSink) PostUnpublished(ctx context.Context, post *blog.Post) error {
	return k.publish(ctx, "post.unpublished", post.ID, post)
}

func (k *KafkaSink) PostDeleted(ctx context.Context, postID uuid.UUID) error {
	return k.publish(ctx, "post.deleted", postID, nil)
}

func (k *KafkaSink) CommentCreated(ctx context.Context, comment *blog.Comment) error {
	return k.publish(ctx, "comment.created", comment.PostID, comment)
}

func (k *KafkaSink) CommentDeleted(ctx context.Context, commentID uuid.UUID) error {
	return k.publish(ctx, "comment.deleted", commentID, nil)
}

func (k *KafkaSink) CategoryChanged(ctx context.Context, category *blog.Category, op blog.Operation) error {
	return k.publish(ctx, "category."+string(op), category.ID, category)
}
