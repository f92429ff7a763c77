package question_bank

import (
	"go.uber.org/fx"

	"github.com/init-pkg/quiz-import/domain/app"
)

func Register() fx.Option {
	return fx.Provide(
		fx.Annotate(NewRepository, fx.As(new(app.QuestionBank))),
		fx.Annotate(NewImportCommitter, fx.As(new(app.ImportCommitter))),
	)
}
