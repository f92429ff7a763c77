package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"os"

	swagger "github.com/Flussen/swagger-fiber-v3"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	_ "github.com/init-pkg/quiz-import/docs"
	question_import_http_handler "github.com/init-pkg/quiz-import/internal/app/question-import/transports/http"
	"github.com/init-pkg/quiz-import/internal/config"
	"github.com/init-pkg/quiz-import/internal/validation"
)

func coreOptions() fx.Option {
	return fx.Options(
		fx.Provide(
			config.MustLoad[config.Config],
			newLogger,
			newHttpApp,
		),
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log.With("component", "fx")}
		}),
		fx.Invoke(serveHttp),
	)
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.IsProd() {
		opts.Level = slog.LevelInfo
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler).With("app", cfg.App.Name)
}

func newHttpApp(cfg *config.Config) *fiber.App {
	mainApp := fiber.New(fiber.Config{
		AppName:         cfg.App.Name,
		BodyLimit:       (cfg.Http.BodyLimitMB + 1) * 1024 * 1024,
		ErrorHandler:    question_import_http_handler.ErrorHandler,
		StructValidator: validation.New(),
	})

	mainApp.Get("/swagger/*", swagger.HandlerDefault)

	return mainApp
}

func serveHttp(lc fx.Lifecycle, cfg *config.Config, mainApp *fiber.App, log *slog.Logger, shutdowner fx.Shutdowner) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", cfg.Http.Addr)
			if err != nil {
				return err
			}
			go func() {
				log.Info("HTTP server listening", "addr", cfg.Http.Addr)
				if err := mainApp.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true}); err != nil && !errors.Is(err, net.ErrClosed) {
					log.Error("HTTP server stopped", "error", err)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return mainApp.ShutdownWithContext(ctx)
		},
	})
}
