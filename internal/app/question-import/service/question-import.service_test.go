package question_import_service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/init-pkg/quiz-import/domain/app"
	"github.com/init-pkg/quiz-import/internal/config"
	"github.com/init-pkg/quiz-import/internal/errs"
)

type memoryPreviews struct {
	records map[string]*app.PreviewRecord
	seq     int
}

func (m *memoryPreviews) Store(_ context.Context, quizID, userID uint64, questions []app.ParsedQuestion, warnings []string) (string, error) {
	m.seq++
	token := "token-" + string(rune('0'+m.seq))
	now := time.Now()
	m.records[token] = &app.PreviewRecord{
		Token:     token,
		QuizID:    quizID,
		UserID:    userID,
		Questions: questions,
		Warnings:  warnings,
		CreatedAt: now,
		ExpiresAt: now.Add(30 * time.Minute),
	}
	return token, nil
}

func (m *memoryPreviews) Retrieve(_ context.Context, token string) (*app.PreviewRecord, error) {
	return m.records[token], nil
}

func (m *memoryPreviews) Forget(_ context.Context, token string) error {
	delete(m.records, token)
	return nil
}

type recordingCommitter struct {
	calls []app.ImportMode
	err   error
}

func (c *recordingCommitter) Commit(_ context.Context, record *app.PreviewRecord, quizID uint64, mode app.ImportMode) (*app.CommitResult, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.calls = append(c.calls, mode)
	return &app.CommitResult{QuizID: quizID, Mode: mode, ImportedCount: len(record.Questions)}, nil
}

type fixedBank int64

func (b fixedBank) CountQuestions(context.Context, uint64) (int64, error) { return int64(b), nil }

type allowList map[uint64]bool

func (a allowList) CanUpdateQuiz(_ context.Context, userID, _ uint64) (bool, error) {
	return a[userID], nil
}

type serviceFixture struct {
	service   *QuestionImportService
	previews  *memoryPreviews
	committer *recordingCommitter
}

func newServiceFixture() *serviceFixture {
	log := discardLogger()
	previews := &memoryPreviews{records: map[string]*app.PreviewRecord{}}
	committer := &recordingCommitter{}
	cfg := &config.Config{}
	cfg.Import.LibreOfficeBin = "libreoffice"

	return &serviceFixture{
		service: New(
			NewSpreadsheetParser(log),
			NewXlsConverter(cfg, log),
			previews,
			committer,
			fixedBank(3),
			allowList{7: true},
			log,
		),
		previews:  previews,
		committer: committer,
	}
}

func validWorkbook(t *testing.T) []byte {
	return newWorkbook().
		row(2, "2+2?", "", "3", "", "4", "", "", "", "", "", "B").
		row(3, "Warna langit?", "", "Biru", "", "Hijau").
		bytes(t)
}

func TestUploadStagesPreview(t *testing.T) {
	fx := newServiceFixture()

	preview, err := fx.service.Upload(context.Background(), 1, 7, "soal.xlsx", validWorkbook(t))
	require.NoError(t, err)

	assert.Equal(t, int64(3), preview.ExistingCount)
	assert.Len(t, preview.Record.Questions, 2)
	assert.Equal(t, uint64(1), preview.Record.QuizID)
	assert.Equal(t, uint64(7), preview.Record.UserID)
	assert.Contains(t, fx.previews.records, preview.Record.Token)
}

func TestUploadForbidden(t *testing.T) {
	fx := newServiceFixture()

	_, err := fx.service.Upload(context.Background(), 1, 8, "soal.xlsx", validWorkbook(t))
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, errs.As(err).Status)
	assert.Empty(t, fx.previews.records)
}

func TestUploadWithRowErrorsStoresNothing(t *testing.T) {
	fx := newServiceFixture()
	file := newWorkbook().
		row(2, "2+2?", "", "3", "", "4", "", "", "", "", "", "Z").
		bytes(t)

	_, err := fx.service.Upload(context.Background(), 1, 7, "soal.xlsx", file)
	require.Error(t, err)

	appErr := errs.As(err)
	assert.Equal(t, errs.CodeValidationFailed, appErr.Code)
	assert.Contains(t, appErr.Fields, "row_2.correct_answer")
	assert.Empty(t, fx.previews.records)
}

func TestConfirmCommitsAndForgets(t *testing.T) {
	fx := newServiceFixture()
	ctx := context.Background()

	preview, err := fx.service.Upload(ctx, 1, 7, "soal.xlsx", validWorkbook(t))
	require.NoError(t, err)

	result, err := fx.service.Confirm(ctx, 1, 7, preview.Record.Token, app.ImportModeReplace)
	require.NoError(t, err)

	assert.Equal(t, 2, result.ImportedCount)
	assert.Equal(t, []app.ImportMode{app.ImportModeReplace}, fx.committer.calls)
	assert.Empty(t, fx.previews.records)

	_, err = fx.service.Confirm(ctx, 1, 7, preview.Record.Token, app.ImportModeAppend)
	assert.True(t, errs.Is(err, errs.CodePreviewNotFound))
}

func TestConfirmRejectsForeignPreview(t *testing.T) {
	fx := newServiceFixture()
	ctx := context.Background()

	preview, err := fx.service.Upload(ctx, 1, 7, "soal.xlsx", validWorkbook(t))
	require.NoError(t, err)

	_, err = fx.service.Confirm(ctx, 2, 7, preview.Record.Token, app.ImportModeAppend)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, errs.As(err).Status)
	assert.Empty(t, fx.committer.calls)
	assert.Contains(t, fx.previews.records, preview.Record.Token)
}

func TestConfirmUnknownToken(t *testing.T) {
	fx := newServiceFixture()

	_, err := fx.service.Confirm(context.Background(), 1, 7, "nope", app.ImportModeAppend)
	assert.True(t, errs.Is(err, errs.CodePreviewNotFound))
}

func TestConfirmInvalidMode(t *testing.T) {
	fx := newServiceFixture()

	_, err := fx.service.Confirm(context.Background(), 1, 7, "token-1", app.ImportMode("merge"))
	require.Error(t, err)
	assert.Equal(t, "Mode impor harus salah satu dari: append, replace.", errs.As(err).Fields["mode"])
}

func TestConfirmKeepsPreviewWhenCommitFails(t *testing.T) {
	fx := newServiceFixture()
	ctx := context.Background()

	preview, err := fx.service.Upload(ctx, 1, 7, "soal.xlsx", validWorkbook(t))
	require.NoError(t, err)

	fx.committer.err = errs.Wrap(http.StatusInternalServerError, errs.CodeCommitFailed, errors.New("db down"))
	_, err = fx.service.Confirm(ctx, 1, 7, preview.Record.Token, app.ImportModeAppend)
	assert.True(t, errs.Is(err, errs.CodeCommitFailed))
	assert.Contains(t, fx.previews.records, preview.Record.Token)
}

func TestCancelForgetsPreview(t *testing.T) {
	fx := newServiceFixture()
	ctx := context.Background()

	preview, err := fx.service.Upload(ctx, 1, 7, "soal.xlsx", validWorkbook(t))
	require.NoError(t, err)

	require.NoError(t, fx.service.Cancel(ctx, 1, 7, preview.Record.Token))
	assert.Empty(t, fx.previews.records)
	assert.True(t, errs.Is(fx.service.Cancel(ctx, 1, 7, preview.Record.Token), errs.CodePreviewNotFound))
}

func TestIsLegacyWorkbook(t *testing.T) {
	assert.True(t, IsLegacyWorkbook("soal.XLS", nil))
	assert.True(t, IsLegacyWorkbook("upload", append(append([]byte{}, oleSignature...), 0x00)))
	assert.False(t, IsLegacyWorkbook("soal.xlsx", []byte("PK\x03\x04")))
	assert.True(t, IsLegacyWorkbook("soal.xlsx", append(append([]byte{}, oleSignature...), 0x00)))
}
