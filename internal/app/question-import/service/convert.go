package question_import_service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/init-pkg/quiz-import/internal/config"
)

// oleSignature starts every legacy BIFF (.xls) workbook.
var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// IsLegacyWorkbook matches by extension or by the OLE signature of the content.
func IsLegacyWorkbook(filename string, file []byte) bool {
	return strings.EqualFold(filepath.Ext(filename), ".xls") || bytes.HasPrefix(file, oleSignature)
}

// XlsConverter turns legacy .xls uploads into .xlsx with a headless LibreOffice.
type XlsConverter struct {
	bin string
	log *slog.Logger
}

func NewXlsConverter(cfg *config.Config, log *slog.Logger) *XlsConverter {
	return &XlsConverter{bin: cfg.Import.LibreOfficeBin, log: log}
}

func (this *XlsConverter) Convert(ctx context.Context, file []byte) ([]byte, error) {
	dir, err := os.MkdirTemp("", "question-import-*")
	if err != nil {
		return nil, fmt.Errorf("xls convert: %w", err)
	}
	defer os.RemoveAll(dir)

	inputPath := filepath.Join(dir, "upload.xls")
	if err := os.WriteFile(inputPath, file, 0o600); err != nil {
		return nil, fmt.Errorf("xls convert: %w", err)
	}

	cmd := exec.CommandContext(ctx, this.bin, "--headless", "--convert-to", "xlsx", inputPath, "--outdir", dir)
	if out, err := cmd.CombinedOutput(); err != nil {
		this.log.Error("LibreOffice conversion failed", "error", err, "output", string(out))
		return nil, fmt.Errorf("xls convert: libreoffice: %w", err)
	}

	converted, err := os.ReadFile(filepath.Join(dir, "upload.xlsx"))
	if err != nil {
		return nil, fmt.Errorf("xls convert: %w", err)
	}
	return converted, nil
}
