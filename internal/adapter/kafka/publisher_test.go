package kafka

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/aurora-forecast-etl/internal/config"
	"github.com/couchcryptid/aurora-forecast-etl/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	validAt := time.Date(2021, 3, 15, 4, 30, 0, 0, time.UTC)
	event := domain.ImageRendered{
		RunID:      "run-1",
		Path:       "30min/ovona_2021-30-15-04-30.jpg",
		Filename:   "ovona_2021-30-15-04-30.jpg",
		Format:     "jpg",
		ValidAt:    validAt,
		RenderedAt: validAt.Add(2 * time.Minute),
	}

	msg, err := serializeToMessage(event)
	require.NoError(t, err)

	assert.Equal(t, []byte("ovona_2021-30-15-04-30.jpg"), msg.Key)
	assert.JSONEq(t, `{
		"run_id": "run-1",
		"path": "30min/ovona_2021-30-15-04-30.jpg",
		"filename": "ovona_2021-30-15-04-30.jpg",
		"format": "jpg",
		"valid_at": "2021-03-15T04:30:00Z",
		"rendered_at": "2021-03-15T04:32:00Z"
	}`, string(msg.Value))
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "run_id", msg.Headers[0].Key)
	assert.Equal(t, []byte("run-1"), msg.Headers[0].Value)
	assert.Equal(t, "valid_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(validAt.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestNewPublisher(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: []string{"broker1:9092", "broker2:9092"}, KafkaTopic: "aurora-images"}
	p := NewPublisher(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = p.Close() })

	assert.Equal(t, "aurora-images", p.writer.Topic)
	assert.Equal(t, "broker1:9092,broker2:9092", p.writer.Addr.String())
}
