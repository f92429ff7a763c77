package question_import_http_handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/init-pkg/quiz-import/domain/app"
	"github.com/init-pkg/quiz-import/domain/dtos"
	"github.com/init-pkg/quiz-import/internal/errs"
)

const (
	MaxUploadBytes = 10 * 1024 * 1024
	UserIDHeader   = "X-User-Id"
)

var allowedExtensions = map[string]bool{
	".xlsx": true,
	".xls":  true,
}

type QuestionImportHttpHandler struct {
	service app.QuestionImportService
}

func New(service app.QuestionImportService) *QuestionImportHttpHandler {
	return &QuestionImportHttpHandler{service}
}

func (this *QuestionImportHttpHandler) Register(mainApp *fiber.App) {
	var app = mainApp.Group("/quizzes/:quizId/question-imports")

	app.Post("", this.upload)
	app.Post("/confirm", this.confirm)
	app.Delete("/:token", this.cancel)
}

// upload godoc
// @Summary     Upload a question import template
// @Tags        question-imports
// @Accept      mpfd
// @Produce     json
// @Param       quizId    path     int    true "Quiz ID"
// @Param       X-User-Id header   int    true "Acting user"
// @Param       file      formData file   true "Template (.xlsx or .xls)"
// @Success     200 {object} dtos.QuestionImportPreviewResponse
// @Failure     422 {object} dtos.ErrorResponse
// @Router      /quizzes/{quizId}/question-imports [post]
func (this *QuestionImportHttpHandler) upload(fctx fiber.Ctx) error {
	quizID, userID, err := identify(fctx)
	if err != nil {
		return err
	}

	header, err := fctx.FormFile("file")
	if err != nil {
		return fileError("Berkas wajib diunggah.")
	}
	if header.Size > MaxUploadBytes {
		return fileError("Ukuran berkas maksimal 10 MB.")
	}
	if !allowedExtensions[strings.ToLower(filepath.Ext(header.Filename))] {
		return fileError("Berkas harus berformat .xlsx atau .xls.")
	}

	src, err := header.Open()
	if err != nil {
		return errs.Wrap(http.StatusBadRequest, errs.CodeInvalidFile, err)
	}
	defer src.Close()

	file, err := io.ReadAll(io.LimitReader(src, MaxUploadBytes+1))
	if err != nil {
		return errs.Wrap(http.StatusBadRequest, errs.CodeInvalidFile, err)
	}
	if len(file) > MaxUploadBytes {
		return fileError("Ukuran berkas maksimal 10 MB.")
	}

	preview, err := this.service.Upload(fctx.Context(), quizID, userID, header.Filename, file)
	if err != nil {
		return err
	}

	return fctx.Status(http.StatusOK).JSON(previewResponse(preview))
}

// confirm godoc
// @Summary     Commit a staged question import
// @Tags        question-imports
// @Accept      json
// @Produce     json
// @Param       quizId    path   int                               true "Quiz ID"
// @Param       X-User-Id header int                               true "Acting user"
// @Param       body      body   dtos.QuestionImportConfirmRequest true "Preview token and mode"
// @Success     200 {object} dtos.QuestionImportConfirmResponse
// @Failure     404 {object} dtos.ErrorResponse
// @Router      /quizzes/{quizId}/question-imports/confirm [post]
func (this *QuestionImportHttpHandler) confirm(fctx fiber.Ctx) error {
	quizID, userID, err := identify(fctx)
	if err != nil {
		return err
	}

	var req dtos.QuestionImportConfirmRequest
	if err := fctx.Bind().JSON(&req); err != nil {
		var appErr *errs.Error
		if errors.As(err, &appErr) {
			return err
		}
		return fiber.NewError(http.StatusBadRequest, "Body permintaan harus berupa JSON yang valid.")
	}

	result, err := this.service.Confirm(fctx.Context(), quizID, userID, req.Token, app.ImportMode(req.Mode))
	if err != nil {
		return err
	}

	return fctx.Status(http.StatusOK).JSON(dtos.QuestionImportConfirmResponse{
		Message:       fmt.Sprintf("%d soal berhasil diimpor.", result.ImportedCount),
		ImportedCount: result.ImportedCount,
		RemovedCount:  result.RemovedCount,
		Mode:          result.Mode.String(),
	})
}

// cancel godoc
// @Summary     Drop a staged question import
// @Tags        question-imports
// @Param       quizId    path   int    true "Quiz ID"
// @Param       X-User-Id header int    true "Acting user"
// @Param       token     path   string true "Preview token"
// @Success     204
// @Failure     404 {object} dtos.ErrorResponse
// @Router      /quizzes/{quizId}/question-imports/{token} [delete]
func (this *QuestionImportHttpHandler) cancel(fctx fiber.Ctx) error {
	quizID, userID, err := identify(fctx)
	if err != nil {
		return err
	}

	if err := this.service.Cancel(fctx.Context(), quizID, userID, fctx.Params("token")); err != nil {
		return err
	}
	return fctx.SendStatus(http.StatusNoContent)
}

func identify(fctx fiber.Ctx) (quizID, userID uint64, err error) {
	quizID, err = strconv.ParseUint(fctx.Params("quizId"), 10, 64)
	if err != nil || quizID == 0 {
		return 0, 0, fiber.NewError(http.StatusNotFound, "Kuis tidak ditemukan.")
	}
	userID, err = strconv.ParseUint(fctx.Get(UserIDHeader), 10, 64)
	if err != nil || userID == 0 {
		return 0, 0, fiber.NewError(http.StatusUnauthorized, "Pengguna tidak dikenali.")
	}
	return quizID, userID, nil
}

func fileError(msg string) error {
	return errs.Validation(msg, map[string]string{"file": msg}, nil)
}

func previewResponse(preview *app.ImportPreview) dtos.QuestionImportPreviewResponse {
	record := preview.Record
	questions := make([]dtos.QuestionPreview, 0, len(record.Questions))
	for i, q := range record.Questions {
		questions = append(questions, questionPreview(i, q))
	}

	warnings := record.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return dtos.QuestionImportPreviewResponse{
		Token:         record.Token,
		ImportedCount: len(record.Questions),
		ExistingCount: preview.ExistingCount,
		Questions:     questions,
		Warnings:      warnings,
		ExpiresAt:     record.ExpiresAt,
	}
}

func questionPreview(i int, q app.ParsedQuestion) dtos.QuestionPreview {
	options := make([]dtos.OptionPreview, 0, len(q.Options))
	for j, o := range q.Options {
		options = append(options, dtos.OptionPreview{
			Label:     optionLabel(j),
			Text:      deref(o.OptionText),
			HasImage:  o.Image != nil,
			Image:     o.Image.DataURI(),
			IsCorrect: o.IsCorrect,
		})
	}
	return dtos.QuestionPreview{
		Label:         fmt.Sprintf("Soal %d", i+1),
		Question:      deref(q.Question),
		QuestionImage: q.Image.DataURI(),
		Options:       options,
	}
}

// optionLabel gives A..Z, then falls back to the 1-based number.
func optionLabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return strconv.Itoa(i + 1)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
