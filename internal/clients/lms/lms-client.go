package lms_client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/init-pkg/quiz-import/domain/app"
	"github.com/init-pkg/quiz-import/internal/config"
)

// LmsClient asks the learning platform what a user may do with a quiz.
type LmsClient struct {
	url    string
	client *http.Client
}

var _ app.QuizAuthorizer = &LmsClient{}

type APIResponse[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

type QuizAbilities struct {
	CanView   bool `json:"can_view"`
	CanUpdate bool `json:"can_update"`
}

func New(cfg *config.Config) *LmsClient {
	return &LmsClient{
		url:    cfg.Clients.Lms.Url,
		client: &http.Client{Timeout: cfg.Clients.Lms.Timeout},
	}
}

func (this *LmsClient) CanUpdateQuiz(ctx context.Context, userID, quizID uint64) (bool, error) {
	abilities, e := this.QuizAbilities(ctx, userID, quizID)
	if e != nil {
		return false, e
	}
	return abilities.CanUpdate, nil
}

// QuizAbilities returns the zero value when the quiz is unknown to the LMS.
func (this *LmsClient) QuizAbilities(ctx context.Context, userID, quizID uint64) (*QuizAbilities, error) {
	parsedURL, e := url.Parse(fmt.Sprintf("%s/api/quizzes/%d/abilities", this.url, quizID))
	if e != nil {
		return nil, fmt.Errorf("lms: %w", e)
	}
	query := parsedURL.Query()
	query.Set("user_id", strconv.FormatUint(userID, 10))
	parsedURL.RawQuery = query.Encode()

	req, e := http.NewRequestWithContext(ctx, http.MethodGet, parsedURL.String(), nil)
	if e != nil {
		return nil, fmt.Errorf("lms: %w", e)
	}
	req.Header.Set("Accept", "application/json")

	res, e := this.client.Do(req)
	if e != nil {
		return nil, fmt.Errorf("lms: %w", e)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return &QuizAbilities{}, nil
	}
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("lms: API error %d: %s", res.StatusCode, string(body))
	}

	var apiResp APIResponse[QuizAbilities]
	if e := json.NewDecoder(res.Body).Decode(&apiResp); e != nil {
		return nil, fmt.Errorf("lms: decode: %w", e)
	}
	return &apiResp.Data, nil
}
