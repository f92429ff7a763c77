package lms_client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/init-pkg/quiz-import/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *LmsClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Clients.Lms.Url = srv.URL
	cfg.Clients.Lms.Timeout = 5 * time.Second
	return New(cfg)
}

func TestCanUpdateQuiz(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/quizzes/12/abilities", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("user_id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"ok","data":{"can_view":true,"can_update":true}}`))
	})

	ok, err := client.CanUpdateQuiz(context.Background(), 7, 12)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanUpdateQuizDenied(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"can_view":true,"can_update":false}}`))
	})

	ok, err := client.CanUpdateQuiz(context.Background(), 7, 12)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanUpdateQuizUnknownQuiz(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	ok, err := client.CanUpdateQuiz(context.Background(), 7, 12)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanUpdateQuizServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	})

	_, err := client.CanUpdateQuiz(context.Background(), 7, 12)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
