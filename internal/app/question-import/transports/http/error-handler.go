package question_import_http_handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/init-pkg/quiz-import/domain/dtos"
	"github.com/init-pkg/quiz-import/internal/errs"
)

// ErrorHandler renders every error returned by a handler as dtos.ErrorResponse.
func ErrorHandler(fctx fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fctx.Status(fiberErr.Code).JSON(dtos.ErrorResponse{
			Code:    strings.ToLower(strings.ReplaceAll(http.StatusText(fiberErr.Code), " ", "_")),
			Message: fiberErr.Message,
		})
	}

	appErr := errs.As(err)
	message := appErr.Error()
	if appErr.Status >= http.StatusInternalServerError {
		message = "Terjadi kesalahan pada server. Silakan coba lagi."
	}

	return fctx.Status(appErr.Status).JSON(dtos.ErrorResponse{
		Code:     string(appErr.Code),
		Message:  message,
		Errors:   appErr.Fields,
		Warnings: appErr.Warnings,
	})
}
