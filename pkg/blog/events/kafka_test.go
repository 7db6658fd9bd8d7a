package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oilmonegov/Blog/pkg/blog"
)

type fakeKafkaWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeKafkaWriter) Close() error {
	f.closed = true
	return nil
}

func TestNewKafkaSinkValidation(t *testing.T) {
	_, err := NewKafkaSink(KafkaConfig{Topic: "blog"})
	assert.Error(t, err)

	_, err = NewKafkaSink(KafkaConfig{Brokers: []string{" ", "\t"}, Topic: "blog"})
	assert.Error(t, err)

	_, err = NewKafkaSink(KafkaConfig{Brokers: []string{"127.0.0.1:9092"}})
	assert.Error(t, err)

	sink, err := NewKafkaSink(KafkaConfig{Brokers: []string{" 127.0.0.1:9092 "}, Topic: "blog"})
	require.NoError(t, err)
	assert.NoError(t, sink.Close())
}

func TestKafkaSinkPublishesEnvelope(t *testing.T) {
	w := &fakeKafkaWriter{}
	sink := newKafkaSink(w)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	sink.now = func() time.Time { return at }

	post := &blog.Post{ID: uuid.New(), Title: "Hello", Slug: "hello", Status: blog.PostStatusPublished}
	require.NoError(t, sink.PostPublished(context.Background(), post))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, post.ID.String(), string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "post.published", string(msg.Headers[0].Value))

	var ev Event
	require.NoError(t, json.Unmarshal(msg.Value, &ev))
	assert.Equal(t, "post.published", ev.Type)
	assert.Equal(t, post.ID, ev.ID)
	assert.True(t, at.Equal(ev.OccurredAt))

	var decoded blog.Post
	require.NoError(t, json.Unmarshal(ev.Data, &decoded))
	assert.Equal(t, "hello", decoded.Slug)
}

func TestKafkaSinkEventTypes(t *testing.T) {
	w := &fakeKafkaWriter{}
	sink := newKafkaSink(w)
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, sink.PostDeleted(ctx, id))
	require.NoError(t, sink.CommentDeleted(ctx, id))
	require.NoError(t, sink.CategoryChanged(ctx, &blog.Category{ID: id}, blog.OpDelete))
	require.NoError(t, sink.CommentCreated(ctx, &blog.Comment{ID: uuid.New(), PostID: id}))

	var types []string
	for _, m := range w.msgs {
		var ev Event
		require.NoError(t, json.Unmarshal(m.Value, &ev))
		types = append(types, ev.Type)
		assert.Equal(t, id.String(), string(m.Key))
	}
	assert.Equal(t, []string{"post.deleted", "comment.deleted", "category." + string(blog.OpDelete), "comment.created"}, types)
}

func TestKafkaSinkWriteFailure(t *testing.T) {
	boom := errors.New("broker down")
	sink := newKafkaSink(&fakeKafkaWriter{err: boom})

	err := sink.PostCreated(context.Background(), &blog.Post{ID: uuid.New()})
	assert.ErrorIs(t, err, boom)

	var nilSink *KafkaSink
	assert.NoError(t, nilSink.Close())
	assert.Error(t, nilSink.PostDeleted(context.Background(), uuid.New()))
}
