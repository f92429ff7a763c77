package question_import_service

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/init-pkg/quiz-import/internal/errs"
)

const noColumn = -1

const correctAnswerHeader = "Jawaban Benar*"

// Leading headers of the import template, in order.
var templateHeaders = []string{
	"Soal / Pertanyaan*",
	"Gambar Pertanyaan (opsional)",
	"Opsi 1*",
	"Gambar Opsi 1 (opsional)",
	"Opsi 2*",
	"Gambar Opsi 2 (opsional)",
	"Opsi 3*",
}

const (
	questionColumn      = 0
	questionImageColumn = 1
	firstOptionColumn   = 2
	optionalMarker      = "(opsional)"
)

type OptionColumns struct {
	Number int
	Text   int
	Image  int
}

func (o OptionColumns) HasImage() bool {
	return o.Image != noColumn
}

// ColumnConfiguration maps template fields to zero-based column indices.
type ColumnConfiguration struct {
	Question      int
	QuestionImage int
	Options       []OptionColumns
	CorrectAnswer int
}

// IsImageColumn reports whether pictures anchored in col belong to the template.
func (c *ColumnConfiguration) IsImageColumn(col int) bool {
	if col == c.QuestionImage && col != noColumn {
		return true
	}
	for _, o := range c.Options {
		if o.HasImage() && o.Image == col {
			return true
		}
	}
	return false
}

func sameHeader(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// resolveColumns validates the header row and derives the column layout.
// The first pass checks the fixed leading headers and finds the correct answer
// column; the second pass pairs option text columns with their optional image
// columns.
func resolveColumns(header []string) (*ColumnConfiguration, error) {
	for i, want := range templateHeaders {
		got := ""
		if i < len(header) {
			got = header[i]
		}
		if !sameHeader(got, want) {
			return nil, invalidSchema(fmt.Sprintf(
				"Kolom %d harus berjudul \"%s\", ditemukan \"%s\". Gunakan template impor terbaru.",
				i+1, want, strings.TrimSpace(got)))
		}
	}

	correct := noColumn
	for i := len(templateHeaders); i < len(header); i++ {
		if sameHeader(header[i], correctAnswerHeader) {
			correct = i
			break
		}
	}
	if correct == noColumn {
		return nil, invalidSchema(fmt.Sprintf(
			"Kolom \"%s\" tidak ditemukan. Gunakan template impor terbaru.", correctAnswerHeader))
	}

	cfg := &ColumnConfiguration{
		Question:      questionColumn,
		QuestionImage: questionImageColumn,
		CorrectAnswer: correct,
	}

	number := 1
	for col := firstOptionColumn; col < correct; {
		if strings.TrimSpace(header[col]) == "" || isImageHeader(header[col]) {
			col++
			continue
		}
		opt := OptionColumns{Number: number, Text: col, Image: noColumn}
		if next := col + 1; next < correct && isImageHeader(header[next]) {
			opt.Image = next
			col += 2
		} else {
			col++
		}
		cfg.Options = append(cfg.Options, opt)
		number++
	}

	return cfg, nil
}

func isImageHeader(h string) bool {
	return strings.Contains(strings.ToLower(h), optionalMarker)
}

func invalidSchema(msg string) *errs.Error {
	e := errs.New(http.StatusUnprocessableEntity, errs.CodeInvalidSchema, msg)
	e.Fields = map[string]string{fileErrorKey: msg}
	return e
}
