package bootstrap

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/init-pkg/quiz-import/domain/app"
	question_bank "github.com/init-pkg/quiz-import/internal/app/question-bank"
	lms_client "github.com/init-pkg/quiz-import/internal/clients/lms"
	postgres_client "github.com/init-pkg/quiz-import/internal/clients/postgres"
	rabbitmq_client "github.com/init-pkg/quiz-import/internal/clients/rabbitmq"
	redis_client "github.com/init-pkg/quiz-import/internal/clients/redis"
	"github.com/init-pkg/quiz-import/internal/clients/storage"
)

func clientsOptions() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres_client.New,
			storage.New,
			fx.Annotate(lms_client.New, fx.As(new(app.QuizAuthorizer))),
			fx.Annotate(
				redis_client.New,
				fx.OnStop(func(_ context.Context, rdb *goredis.Client) error { return rdb.Close() }),
			),
			fx.Annotate(
				rabbitmq_client.New,
				fx.OnStop(func(_ context.Context, p rabbitmq_client.Publisher) error { return p.Close() }),
			),
			func(p rabbitmq_client.Publisher) question_bank.EventPublisher { return p },
		),
	)
}
