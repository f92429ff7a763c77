package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	question_import_service "github.com/init-pkg/quiz-import/internal/app/question-import/service"
	"github.com/init-pkg/quiz-import/internal/config"
)

// Parses question templates and writes the result next to them as JSON.
// Usage: parse [-out dir] file.xlsx [file.xls ...]
func main() {
	var (
		log    = slog.New(slog.NewTextHandler(os.Stderr, nil))
		cfg    = config.MustLoad[config.Config]()
		parser = question_import_service.NewSpreadsheetParser(log)
		conv   = question_import_service.NewXlsConverter(cfg, log)
		outDir = ""
		files  = os.Args[1:]
	)

	if len(files) >= 2 && files[0] == "-out" {
		outDir, files = files[1], files[2:]
		if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
			log.Error("Failed to create output dir", "dir", outDir, "error", err)
			os.Exit(1)
		}
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: parse [-out dir] file.xlsx [file.xls ...]")
		os.Exit(2)
	}

	failed := false
	for _, path := range files {
		if err := run(parser, conv, path, outDir); err != nil {
			log.Error("Parse failed", "file", path, "error", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func run(parser *question_import_service.SpreadsheetParser, conv *question_import_service.XlsConverter, path, outDir string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if question_import_service.IsLegacyWorkbook(path, file) {
		if file, err = conv.Convert(context.Background(), file); err != nil {
			return err
		}
	}

	res, err := parser.Parse(file)
	if err != nil {
		return err
	}

	js, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}

	if outDir == "" {
		_, err = fmt.Println(string(js))
		return err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return os.WriteFile(filepath.Join(outDir, name+".json"), js, 0o644)
}
