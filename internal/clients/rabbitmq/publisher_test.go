package rabbitmq_client

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/init-pkg/quiz-import/internal/config"
)

func TestNewWithoutBrokerIsNoop(t *testing.T) {
	cfg := &config.Config{}

	publisher, err := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.IsType(t, NoopPublisher{}, publisher)

	assert.NoError(t, publisher.Publish(context.Background(), "quiz.questions.imported", map[string]int{"quiz_id": 1}))
	assert.NoError(t, publisher.Close())
}
