package app

import (
	"context"
)

type SpreadsheetParser interface {
	Parse(file []byte) (*ParseResult, error)
}

type PreviewStore interface {
	Store(ctx context.Context, quizID, userID uint64, questions []ParsedQuestion, warnings []string) (string, error)
	Retrieve(ctx context.Context, token string) (*PreviewRecord, error)
	Forget(ctx context.Context, token string) error
}

type ImportCommitter interface {
	Commit(ctx context.Context, record *PreviewRecord, quizID uint64, mode ImportMode) (*CommitResult, error)
}

type QuestionBank interface {
	CountQuestions(ctx context.Context, quizID uint64) (int64, error)
}

// QuizAuthorizer is the gate asked before a user may change a quiz's questions.
type QuizAuthorizer interface {
	CanUpdateQuiz(ctx context.Context, userID, quizID uint64) (bool, error)
}

type QuestionImportService interface {
	Upload(ctx context.Context, quizID, userID uint64, filename string, file []byte) (*ImportPreview, error)
	Confirm(ctx context.Context, quizID, userID uint64, token string, mode ImportMode) (*CommitResult, error)
	Cancel(ctx context.Context, quizID, userID uint64, token string) error
}

// ImportPreview is the staged upload as shown to the uploader.
type ImportPreview struct {
	Record        *PreviewRecord
	ExistingCount int64
}
