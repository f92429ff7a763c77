package question_import_service

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/init-pkg/quiz-import/domain/app"
	"github.com/init-pkg/quiz-import/internal/errs"
)

const previewNotFoundMessage = "Token pratinjau tidak valid atau sudah kedaluwarsa. Silakan unggah ulang berkas."

type QuestionImportService struct {
	parser     *SpreadsheetParser
	converter  *XlsConverter
	previews   app.PreviewStore
	committer  app.ImportCommitter
	bank       app.QuestionBank
	authorizer app.QuizAuthorizer
	log        *slog.Logger
}

var _ app.QuestionImportService = &QuestionImportService{}

func New(
	parser *SpreadsheetParser,
	converter *XlsConverter,
	previews app.PreviewStore,
	committer app.ImportCommitter,
	bank app.QuestionBank,
	authorizer app.QuizAuthorizer,
	log *slog.Logger,
) *QuestionImportService {
	return &QuestionImportService{
		parser:     parser,
		converter:  converter,
		previews:   previews,
		committer:  committer,
		bank:       bank,
		authorizer: authorizer,
		log:        log.With("service", "QuestionImportService"),
	}
}

// Upload parses the workbook and stages it as a preview. A workbook with any
// row or picture error is rejected as a whole with every problem listed.
func (this *QuestionImportService) Upload(ctx context.Context, quizID, userID uint64, filename string, file []byte) (*app.ImportPreview, error) {
	if err := this.authorize(ctx, userID, quizID); err != nil {
		return nil, err
	}

	if IsLegacyWorkbook(filename, file) {
		converted, err := this.converter.Convert(ctx, file)
		if err != nil {
			return nil, errs.Wrap(http.StatusUnprocessableEntity, errs.CodeInvalidFile, err)
		}
		file = converted
	}

	result, err := this.parser.Parse(file)
	if err != nil {
		this.log.Info("Question import rejected", "quiz_id", quizID, "error", err)
		return nil, err
	}
	if result.HasErrors() {
		this.log.Info("Question import has errors", "quiz_id", quizID, "errors", len(result.Errors))
		return nil, errs.Validation("Template berisi kesalahan.", result.Errors, result.Warnings)
	}

	token, err := this.previews.Store(ctx, quizID, userID, result.Questions, result.Warnings)
	if err != nil {
		return nil, err
	}
	record, err := this.previews.Retrieve(ctx, token)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errs.New(http.StatusNotFound, errs.CodePreviewNotFound, previewNotFoundMessage)
	}

	existing, err := this.bank.CountQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}

	this.log.Info("Question import staged",
		"quiz_id", quizID,
		"questions", len(record.Questions),
		"warnings", len(record.Warnings),
		"existing", existing)

	return &app.ImportPreview{Record: record, ExistingCount: existing}, nil
}

// Confirm commits a staged preview into the quiz and drops the preview.
func (this *QuestionImportService) Confirm(ctx context.Context, quizID, userID uint64, token string, mode app.ImportMode) (*app.CommitResult, error) {
	if !mode.IsValid() {
		return nil, errs.Validation("Mode impor tidak valid.", map[string]string{
			"mode": "Mode impor harus salah satu dari: " + strings.Join(importModeNames(), ", ") + ".",
		}, nil)
	}
	if err := this.authorize(ctx, userID, quizID); err != nil {
		return nil, err
	}

	record, err := this.ownedPreview(ctx, quizID, userID, token)
	if err != nil {
		return nil, err
	}

	result, err := this.committer.Commit(ctx, record, quizID, mode)
	if err != nil {
		return nil, err
	}

	if err := this.previews.Forget(ctx, token); err != nil {
		this.log.Warn("Failed to forget committed preview", "quiz_id", quizID, "error", err)
	}
	return result, nil
}

// Cancel drops a staged preview without importing it.
func (this *QuestionImportService) Cancel(ctx context.Context, quizID, userID uint64, token string) error {
	if err := this.authorize(ctx, userID, quizID); err != nil {
		return err
	}
	if _, err := this.ownedPreview(ctx, quizID, userID, token); err != nil {
		return err
	}
	return this.previews.Forget(ctx, token)
}

func (this *QuestionImportService) ownedPreview(ctx context.Context, quizID, userID uint64, token string) (*app.PreviewRecord, error) {
	if token == "" {
		return nil, errs.New(http.StatusNotFound, errs.CodePreviewNotFound, previewNotFoundMessage)
	}
	record, err := this.previews.Retrieve(ctx, token)
	if err != nil {
		return nil, err
	}
	if record == nil || record.QuizID != quizID || record.UserID != userID {
		return nil, errs.New(http.StatusNotFound, errs.CodePreviewNotFound, previewNotFoundMessage)
	}
	return record, nil
}

func importModeNames() []string {
	modes := app.AllImportModes()
	names := make([]string, 0, len(modes))
	for _, m := range modes {
		names = append(names, m.String())
	}
	return names
}

func (this *QuestionImportService) authorize(ctx context.Context, userID, quizID uint64) error {
	ok, err := this.authorizer.CanUpdateQuiz(ctx, userID, quizID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.New(http.StatusForbidden, errs.CodeForbidden, "Anda tidak memiliki akses untuk mengubah kuis ini.")
	}
	return nil
}
