package question_import_service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Columns: A question, B question image, C/E/G/I option text, D/F/H/J option
// image, K correct answer.
var fullHeader = []string{
	"Soal / Pertanyaan*",
	"Gambar Pertanyaan (opsional)",
	"Opsi 1*",
	"Gambar Opsi 1 (opsional)",
	"Opsi 2*",
	"Gambar Opsi 2 (opsional)",
	"Opsi 3*",
	"Gambar Opsi 3 (opsional)",
	"Opsi 4*",
	"Gambar Opsi 4 (opsional)",
	"Jawaban Benar*",
}

type workbook struct {
	header   []string
	rows     map[int][]string
	pictures map[string][]byte
}

func newWorkbook() *workbook {
	return &workbook{
		header:   fullHeader,
		rows:     map[int][]string{},
		pictures: map[string][]byte{},
	}
}

func (w *workbook) row(n int, cells ...string) *workbook {
	w.rows[n] = cells
	return w
}

func (w *workbook) picture(cell string, data []byte) *workbook {
	w.pictures[cell] = data
	return w
}

func (w *workbook) bytes(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Sheet1"

	header := w.header
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for n, cells := range w.rows {
		cell, err := excelize.CoordinatesToCellName(1, n)
		require.NoError(t, err)
		row := cells
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	for cell, data := range w.pictures {
		require.NoError(t, f.AddPictureFromBytes(sheet, cell, &excelize.Picture{
			Extension: ".png",
			File:      data,
			Format:    &excelize.GraphicOptions{AltText: "picture " + cell},
		}))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr(s string) *string { return &s }
