package question_import_service

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/init-pkg/quiz-import/domain/app"
	"github.com/init-pkg/quiz-import/internal/errs"
)

// maxEmptyRowStreak consecutive blank rows end the sheet.
const maxEmptyRowStreak = 5

type SpreadsheetParser struct {
	log *slog.Logger
}

var _ app.SpreadsheetParser = &SpreadsheetParser{}

func NewSpreadsheetParser(log *slog.Logger) *SpreadsheetParser {
	return &SpreadsheetParser{log: log}
}

// Parse reads the first worksheet of an .xlsx workbook. Template problems
// (wrong headers) fail the whole parse with an invalid_schema error; row and
// picture problems are collected in ParseResult.Errors.
func (this *SpreadsheetParser) Parse(file []byte) (*app.ParseResult, error) {
	f, err := excelize.OpenReader(bytes.NewReader(file))
	if err != nil {
		return nil, errs.Wrap(http.StatusUnprocessableEntity, errs.CodeInvalidFile,
			fmt.Errorf("berkas bukan spreadsheet yang valid: %w", err))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, invalidSchema("Berkas tidak memiliki sheet.")
	}
	sheet := sheets[0]

	grid, err := readGrid(f, sheet)
	if err != nil {
		return nil, errs.Wrap(http.StatusUnprocessableEntity, errs.CodeInvalidFile, err)
	}
	if len(grid) == 0 {
		return nil, invalidSchema("Baris judul kolom tidak ditemukan. Gunakan template impor terbaru.")
	}

	cfg, err := resolveColumns(grid[0])
	if err != nil {
		return nil, err
	}

	drawings, err := sheetDrawings(f, sheet)
	if err != nil {
		return nil, errs.Wrap(http.StatusUnprocessableEntity, errs.CodeInvalidFile, err)
	}
	index, warnings := NewDrawingIndex(drawings)
	for _, cell := range index.StrayCells(cfg) {
		warnings = append(warnings, fmt.Sprintf("Gambar di sel %s diabaikan karena tidak berada di kolom gambar.", cell))
	}

	result := walkRows(grid, cfg, index)
	result.Warnings = append(warnings, result.Warnings...)

	this.log.Info("Spreadsheet parsed",
		"sheet", sheet,
		"rows", len(grid),
		"options", len(cfg.Options),
		"questions", len(result.Questions),
		"errors", len(result.Errors),
		"warnings", len(result.Warnings))

	return result, nil
}

// walkRows runs the row loop over data rows 2..N. Each row is processed on its
// own and its outcome folded into the result.
func walkRows(grid [][]string, cfg *ColumnConfiguration, index *DrawingIndex) *app.ParseResult {
	var (
		questions = []app.ParsedQuestion{}
		warnings  = []string{}
		errors    = fieldErrors{}
		emptyRun  = 0
	)

	lastRow := len(grid)
	if index.MaxRow() > lastRow {
		lastRow = index.MaxRow()
	}

	for row := 2; row <= lastRow; row++ {
		var cells []string
		if row-1 < len(grid) {
			cells = grid[row-1]
		}

		out := parseRow(row, cells, cfg, index)
		errors = errors.merge(out.errors)
		if out.empty {
			emptyRun++
			if emptyRun >= maxEmptyRowStreak {
				break
			}
			continue
		}
		emptyRun = 0

		if out.question != nil {
			questions = append(questions, *out.question)
		}
	}

	if len(questions) == 0 && len(errors) == 0 {
		errors = errors.add(fileErrorKey, emptyFileMessage)
	}

	return &app.ParseResult{
		Questions: questions,
		Warnings:  warnings,
		Errors:    errors,
	}
}

type rowOutcome struct {
	question *app.ParsedQuestion
	empty    bool
	errors   fieldErrors
}

func parseRow(row int, cells []string, cfg *ColumnConfiguration, index *DrawingIndex) rowOutcome {
	var (
		errors      fieldErrors
		imageFailed bool
	)

	checkImage := func(img *app.ImagePayload, label, field string) *app.ImagePayload {
		valid, fe := validateImage(img, label, row, rowKey(row, field))
		if len(fe) > 0 {
			imageFailed = true
			errors = errors.merge(fe)
		}
		return valid
	}

	questionText := cellText(cells, cfg.Question)
	questionImage := checkImage(index.Lookup(cfg.QuestionImage, row), "pertanyaan", "question_image")

	options := make([]app.ParsedOption, 0, len(cfg.Options))
	for _, oc := range cfg.Options {
		text := cellText(cells, oc.Text)
		var img *app.ImagePayload
		if oc.HasImage() {
			img = index.Lookup(oc.Image, row)
		}
		option := app.ParsedOption{OptionText: text, Image: img}
		if option.IsEmpty() {
			continue
		}
		option.Image = checkImage(img, fmt.Sprintf("opsi %d", oc.Number), fmt.Sprintf("option_%d_image", oc.Number))
		if option.IsEmpty() {
			// the only content was a rejected picture
			continue
		}
		options = append(options, option)
	}

	// A rejected picture counts as absent here; its errors still reach the result.
	if questionText == nil && questionImage == nil && len(options) == 0 {
		return rowOutcome{empty: true, errors: errors}
	}

	if len(options) < 2 {
		errors = errors.add(rowKey(row, "options"), fmt.Sprintf(
			"Baris %d: soal membutuhkan minimal dua opsi berisi teks atau gambar.", row))
		return rowOutcome{errors: errors}
	}

	if imageFailed {
		return rowOutcome{errors: errors}
	}

	selected, fe := resolveCorrectAnswers(cellText(cells, cfg.CorrectAnswer), len(options), row, rowKey(row, "correct_answer"))
	if len(fe) > 0 {
		return rowOutcome{errors: errors.merge(fe)}
	}

	markCorrect(options, selected)

	return rowOutcome{
		question: &app.ParsedQuestion{
			Question: questionText,
			Image:    questionImage,
			Options:  options,
		},
		errors: errors,
	}
}

func markCorrect(options []app.ParsedOption, selected []int) {
	marked := false
	for _, idx := range selected {
		if idx >= 0 && idx < len(options) {
			options[idx].IsCorrect = true
			marked = true
		}
	}
	if !marked && len(options) > 0 {
		options[0].IsCorrect = true
	}
}

// cellText returns the trimmed cell value, nil when blank or out of range.
func cellText(cells []string, col int) *string {
	if col < 0 || col >= len(cells) {
		return nil
	}
	v := strings.TrimSpace(cells[col])
	if v == "" {
		return nil
	}
	return &v
}

func readGrid(f *excelize.File, sheet string) ([][]string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows of %q: %w", sheet, err)
	}
	for i := range rows {
		for j := range rows[i] {
			rows[i][j] = strings.TrimSpace(rows[i][j])
		}
	}
	return rows, nil
}
