package main

import (
	"database/sql"
	"flag"
	"log/slog"
	"os"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/init-pkg/quiz-import/internal/config"
	"github.com/init-pkg/quiz-import/migrations"
)

// Usage: migrate [up|down|status|version|redo|reset]
func main() {
	flag.Parse()
	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	var (
		cfg = config.MustLoad[config.Config]()
		log = slog.New(slog.NewTextHandler(os.Stdout, nil))
	)

	db, err := sql.Open("postgres", cfg.Infrastructure.Db.Dsn)
	if err != nil {
		log.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(slog.NewLogLogger(log.Handler(), slog.LevelInfo))
	if err := goose.SetDialect("postgres"); err != nil {
		log.Error("Failed to set dialect", "error", err)
		os.Exit(1)
	}

	if err := goose.Run(command, db, ".", flag.Args()[min(1, flag.NArg()):]...); err != nil {
		log.Error("Migration failed", "command", command, "error", err)
		os.Exit(1)
	}
}
