package question_import_module

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"

	"github.com/init-pkg/quiz-import/domain/app"
	question_import_preview "github.com/init-pkg/quiz-import/internal/app/question-import/preview"
	question_import_service "github.com/init-pkg/quiz-import/internal/app/question-import/service"
	question_import_http_handler "github.com/init-pkg/quiz-import/internal/app/question-import/transports/http"
)

func Register() fx.Option {
	return fx.Options(
		fx.Provide(
			question_import_service.NewSpreadsheetParser,
			question_import_service.NewXlsConverter,
			fx.Annotate(question_import_preview.New, fx.As(new(app.PreviewStore))),
			fx.Annotate(question_import_service.New, fx.As(new(app.QuestionImportService))),
			question_import_http_handler.New,
		),
		fx.Invoke(func(handler *question_import_http_handler.QuestionImportHttpHandler, mainApp *fiber.App) {
			handler.Register(mainApp)
		}),
	)
}
