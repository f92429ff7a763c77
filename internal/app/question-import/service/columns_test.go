package question_import_service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/init-pkg/quiz-import/internal/errs"
)

func TestResolveColumns(t *testing.T) {
	cfg, err := resolveColumns(fullHeader)
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Question)
	assert.Equal(t, 1, cfg.QuestionImage)
	assert.Equal(t, 10, cfg.CorrectAnswer)
	assert.Equal(t, []OptionColumns{
		{Number: 1, Text: 2, Image: 3},
		{Number: 2, Text: 4, Image: 5},
		{Number: 3, Text: 6, Image: 7},
		{Number: 4, Text: 8, Image: 9},
	}, cfg.Options)
}

func TestResolveColumnsOptionsWithoutImages(t *testing.T) {
	header := append(append([]string{}, templateHeaders...), "Opsi 4*", "Opsi 5*", "Jawaban Benar*", "Catatan")

	cfg, err := resolveColumns(header)
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.CorrectAnswer)
	require.Len(t, cfg.Options, 5)
	assert.Equal(t, OptionColumns{Number: 3, Text: 6, Image: noColumn}, cfg.Options[2])
	assert.Equal(t, OptionColumns{Number: 5, Text: 8, Image: noColumn}, cfg.Options[4])
	assert.False(t, cfg.Options[3].HasImage())
}

func TestResolveColumnsHeadersAreTrimmedAndCaseInsensitive(t *testing.T) {
	header := []string{
		"  soal / pertanyaan* ",
		"GAMBAR PERTANYAAN (OPSIONAL)",
		"opsi 1*",
		"Gambar Opsi 1 (opsional)",
		"Opsi 2*",
		"Gambar Opsi 2 (opsional)",
		"Opsi 3*",
		"jawaban benar*",
	}
	cfg, err := resolveColumns(header)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.CorrectAnswer)
	assert.Len(t, cfg.Options, 3)
}

func TestResolveColumnsRejectsWrongLeadingHeader(t *testing.T) {
	header := append([]string{}, fullHeader...)
	header[2] = "Pilihan A"

	_, err := resolveColumns(header)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.CodeInvalidSchema))
	assert.Contains(t, err.Error(), "Kolom 3")
	assert.Contains(t, err.Error(), "Pilihan A")
}

func TestResolveColumnsRequiresCorrectAnswerColumn(t *testing.T) {
	_, err := resolveColumns(fullHeader[:len(fullHeader)-1])
	require.Error(t, err)

	appErr := errs.As(err)
	assert.Equal(t, errs.CodeInvalidSchema, appErr.Code)
	assert.Equal(t, 422, appErr.Status)
	assert.Contains(t, appErr.Fields[fileErrorKey], "Jawaban Benar*")
}

func TestResolveColumnsRejectsShortHeader(t *testing.T) {
	_, err := resolveColumns([]string{"Soal / Pertanyaan*"})
	assert.True(t, errs.Is(err, errs.CodeInvalidSchema))
}

func TestIsImageColumn(t *testing.T) {
	cfg, err := resolveColumns(fullHeader)
	require.NoError(t, err)

	for _, col := range []int{1, 3, 5, 7, 9} {
		assert.True(t, cfg.IsImageColumn(col), col)
	}
	for _, col := range []int{0, 2, 4, 10, 11, noColumn} {
		assert.False(t, cfg.IsImageColumn(col), col)
	}
}
