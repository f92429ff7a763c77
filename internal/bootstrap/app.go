package bootstrap

import (
	"go.uber.org/fx"

	question_bank "github.com/init-pkg/quiz-import/internal/app/question-bank"
	question_import_module "github.com/init-pkg/quiz-import/internal/app/question-import"
)

func appOptions() fx.Option {
	return fx.Options(
		question_bank.Register(),
		question_import_module.Register(),
	)
}
