package bootstrap

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/init-pkg/quiz-import/internal/config"
)

func TestSwaggerServesDocument(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "quiz-import"
	cfg.Http.BodyLimitMB = 10

	mainApp := newHttpApp(cfg)

	resp, err := mainApp.Test(httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Quiz question import API")
	assert.Contains(t, string(body), "/quizzes/{quizId}/question-imports")
}
