package question_bank

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/init-pkg/quiz-import/domain/app"
	"github.com/init-pkg/quiz-import/internal/clients/storage"
	"github.com/init-pkg/quiz-import/internal/errs"
)

const ImportCommittedRoutingKey = "quiz.questions.imported"

type ImportCommittedEvent struct {
	QuizID        uint64         `json:"quiz_id"`
	UserID        uint64         `json:"user_id"`
	Mode          app.ImportMode `json:"mode"`
	ImportedCount int            `json:"imported_count"`
	RemovedCount  int64          `json:"removed_count"`
	OccurredAt    time.Time      `json:"occurred_at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// ImportCommitter writes a staged preview into a quiz in one transaction.
// Pictures are written to the image store while the transaction is open; if
// the transaction fails they are removed again.
type ImportCommitter struct {
	db     *gorm.DB
	images storage.ImageStore
	events EventPublisher
	log    *slog.Logger
}

var _ app.ImportCommitter = &ImportCommitter{}

func NewImportCommitter(db *gorm.DB, images storage.ImageStore, events EventPublisher, log *slog.Logger) *ImportCommitter {
	return &ImportCommitter{
		db:     db,
		images: images,
		events: events,
		log:    log.With("service", "ImportCommitter"),
	}
}

func (this *ImportCommitter) Commit(ctx context.Context, record *app.PreviewRecord, quizID uint64, mode app.ImportMode) (*app.CommitResult, error) {
	if record == nil {
		return nil, errs.New(http.StatusNotFound, errs.CodePreviewNotFound, "preview not found")
	}
	if !mode.IsValid() {
		return nil, errs.New(http.StatusUnprocessableEntity, errs.CodeValidationFailed, fmt.Sprintf("unknown import mode %q", mode))
	}

	var (
		result   = &app.CommitResult{QuizID: quizID, Mode: mode}
		obsolete []string
	)

	err := this.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureQuiz(tx, quizID); err != nil {
			return err
		}

		if mode == app.ImportModeReplace {
			paths, err := imagePaths(tx, quizID)
			if err != nil {
				return fmt.Errorf("collect images: %w", err)
			}
			removed, err := deleteQuestions(tx, quizID)
			if err != nil {
				return fmt.Errorf("delete questions: %w", err)
			}
			obsolete, result.RemovedCount = paths, removed
		}

		position, err := nextPosition(tx, quizID)
		if err != nil {
			return fmt.Errorf("next position: %w", err)
		}

		for i, pq := range record.Questions {
			question, err := this.buildQuestion(ctx, result, quizID, position+i, pq)
			if err != nil {
				return fmt.Errorf("question %d: %w", i+1, err)
			}
			if err := tx.Create(question).Error; err != nil {
				return fmt.Errorf("question %d: %w", i+1, err)
			}
			result.ImportedCount++
		}
		return nil
	})
	if err != nil {
		this.discard(result.StoredImageKeys)
		if errors.Is(err, ErrQuizNotFound) {
			return nil, errs.Wrap(http.StatusNotFound, errs.CodeCommitFailed, err)
		}
		this.log.Error("Question import commit failed", "quiz_id", quizID, "mode", mode, "error", err)
		return nil, errs.Wrap(http.StatusInternalServerError, errs.CodeCommitFailed, err)
	}

	this.discard(obsolete)

	this.log.Info("Question import committed",
		"quiz_id", quizID,
		"mode", mode,
		"imported", result.ImportedCount,
		"removed", result.RemovedCount)

	if this.events != nil {
		event := ImportCommittedEvent{
			QuizID:        quizID,
			UserID:        record.UserID,
			Mode:          mode,
			ImportedCount: result.ImportedCount,
			RemovedCount:  result.RemovedCount,
			OccurredAt:    time.Now().UTC(),
		}
		if err := this.events.Publish(ctx, ImportCommittedRoutingKey, event); err != nil {
			this.log.Warn("Failed to publish import event", "quiz_id", quizID, "error", err)
		}
	}

	return result, nil
}

func (this *ImportCommitter) buildQuestion(ctx context.Context, result *app.CommitResult, quizID uint64, position int, pq app.ParsedQuestion) (*QuizQuestion, error) {
	imagePath, err := this.storeImage(ctx, result, quizID, pq.Image)
	if err != nil {
		return nil, err
	}
	question := &QuizQuestion{
		QuizID:    quizID,
		Question:  pq.Question,
		ImagePath: imagePath,
		Position:  position,
		Options:   make([]QuizOption, 0, len(pq.Options)),
	}
	for i, po := range pq.Options {
		optionPath, err := this.storeImage(ctx, result, quizID, po.Image)
		if err != nil {
			return nil, fmt.Errorf("option %d: %w", i+1, err)
		}
		question.Options = append(question.Options, QuizOption{
			OptionText: po.OptionText,
			ImagePath:  optionPath,
			IsCorrect:  po.IsCorrect,
			Position:   i + 1,
		})
	}
	return question, nil
}

func (this *ImportCommitter) storeImage(ctx context.Context, result *app.CommitResult, quizID uint64, img *app.ImagePayload) (*string, error) {
	if img == nil {
		return nil, nil
	}
	data, err := img.Bytes()
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	key := fmt.Sprintf("quiz-questions/%d/%s", quizID, uuid.NewString())
	if img.Extension != "" {
		key += "." + img.Extension
	}
	stored, err := this.images.Put(ctx, key, bytes.NewReader(data), int64(len(data)), img.MimeType)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}
	result.StoredImageKeys = append(result.StoredImageKeys, stored)
	return &stored, nil
}

// discard removes stored pictures; failures are only logged.
func (this *ImportCommitter) discard(keys []string) {
	if len(keys) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, key := range keys {
		if err := this.images.Delete(ctx, key); err != nil {
			this.log.Warn("Failed to delete image", "key", key, "error", err)
		}
	}
}
