package question_import_preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/init-pkg/quiz-import/domain/app"
	"github.com/init-pkg/quiz-import/internal/config"
)

const keyPrefix = "question-import:preview:"

const DefaultTTL = 30 * time.Minute

// RedisPreviewStore keeps staged imports as JSON blobs under a private key
// namespace. Redis expires the key with the record; retrieve also checks
// expires_at itself and deletes stale records.
type RedisPreviewStore struct {
	rdb redis.Cmdable
	ttl time.Duration
	now func() time.Time
}

var _ app.PreviewStore = &RedisPreviewStore{}

func New(rdb *redis.Client, cfg *config.Config) *RedisPreviewStore {
	return NewWithClock(rdb, cfg.Import.PreviewTTL, time.Now)
}

func NewWithClock(rdb redis.Cmdable, ttl time.Duration, now func() time.Time) *RedisPreviewStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisPreviewStore{rdb: rdb, ttl: ttl, now: now}
}

func key(token string) string {
	return keyPrefix + token
}

func (this *RedisPreviewStore) Store(ctx context.Context, quizID, userID uint64, questions []app.ParsedQuestion, warnings []string) (string, error) {
	const op = "preview.Store"

	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("%s: token: %w", op, err)
	}
	if warnings == nil {
		warnings = []string{}
	}

	now := this.now().UTC()
	record := app.PreviewRecord{
		Token:     id.String(),
		QuizID:    quizID,
		UserID:    userID,
		Questions: questions,
		Warnings:  warnings,
		CreatedAt: now,
		ExpiresAt: now.Add(this.ttl),
	}

	blob, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("%s: marshal: %w", op, err)
	}
	if err := this.rdb.Set(ctx, key(record.Token), blob, this.ttl).Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return record.Token, nil
}

// Retrieve returns nil without error when the token is unknown or expired.
func (this *RedisPreviewStore) Retrieve(ctx context.Context, token string) (*app.PreviewRecord, error) {
	const op = "preview.Retrieve"

	blob, err := this.rdb.Get(ctx, key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var record app.PreviewRecord
	if err := json.Unmarshal(blob, &record); err != nil {
		return nil, fmt.Errorf("%s: unmarshal: %w", op, err)
	}

	if record.Expired(this.now()) {
		if err := this.Forget(ctx, token); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return &record, nil
}

func (this *RedisPreviewStore) Forget(ctx context.Context, token string) error {
	if err := this.rdb.Del(ctx, key(token)).Err(); err != nil {
		return fmt.Errorf("preview.Forget: %w", err)
	}
	return nil
}
