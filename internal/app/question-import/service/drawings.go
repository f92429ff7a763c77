package question_import_service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/init-pkg/quiz-import/domain/app"
)

var extensionMimes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"webp": "image/webp",
}

// Drawing is a picture object found on the worksheet.
type Drawing interface {
	Extract() (*app.ImagePayload, error)
}

// EmbeddedDrawing holds picture bytes stored inside the workbook package.
type EmbeddedDrawing struct {
	Format string
	Data   []byte
	Name   string
}

// LinkedDrawing points at a picture file on disk.
type LinkedDrawing struct {
	Path string
	Name string
}

func (d EmbeddedDrawing) Extract() (*app.ImagePayload, error) {
	if len(d.Data) == 0 {
		return nil, fmt.Errorf("drawing %q has no data", d.Name)
	}

	ext := normalizeExtension(d.Format)
	data := d.Data
	mime, known := extensionMimes[ext]
	if !known {
		detected := mimetype.Detect(data)
		mime = detected.String()
		ext = normalizeExtension(detected.Extension())
		if !isAllowedImageMime(mime) {
			// Anything the standard decoders understand is re-encoded as PNG.
			if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
				var buf bytes.Buffer
				if err := png.Encode(&buf, img); err != nil {
					return nil, fmt.Errorf("re-encode drawing %q: %w", d.Name, err)
				}
				data, mime, ext = buf.Bytes(), "image/png", "png"
			}
		}
	}

	return &app.ImagePayload{
		Data:         base64.StdEncoding.EncodeToString(data),
		MimeType:     mime,
		Extension:    ext,
		OriginalName: drawingName(d.Name, ext),
	}, nil
}

func (d LinkedDrawing) Extract() (*app.ImagePayload, error) {
	data, err := os.ReadFile(d.Path)
	if err != nil {
		return nil, fmt.Errorf("read linked drawing: %w", err)
	}
	name := d.Name
	if name == "" {
		name = filepath.Base(d.Path)
	}
	return EmbeddedDrawing{
		Format: filepath.Ext(d.Path),
		Data:   data,
		Name:   name,
	}.Extract()
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if ext == "jpe" {
		return "jpg"
	}
	return ext
}

func drawingName(name, ext string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "image_" + uuid.NewString()
	}
	if ext != "" && !strings.EqualFold(filepath.Ext(name), "."+ext) {
		name += "." + ext
	}
	return name
}

// AnchoredDrawing is a drawing together with the cell its top-left corner sits in.
type AnchoredDrawing struct {
	Cell    string
	Drawing Drawing
}

// DrawingIndex answers "which picture sits in this cell" for one parse.
type DrawingIndex struct {
	images  map[string]*app.ImagePayload
	maxRow  int
	columns map[string]int
}

// NewDrawingIndex extracts every drawing once. Unreadable and duplicate
// drawings are reported as warnings and left out of the index.
func NewDrawingIndex(drawings []AnchoredDrawing) (*DrawingIndex, []string) {
	var (
		idx = &DrawingIndex{
			images:  make(map[string]*app.ImagePayload, len(drawings)),
			columns: make(map[string]int, len(drawings)),
		}
		warnings []string
	)
	for _, d := range drawings {
		cell := strings.ToUpper(strings.ReplaceAll(d.Cell, "$", ""))
		col, row, err := excelize.CellNameToCoordinates(cell)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Gambar dengan posisi \"%s\" diabaikan karena posisinya tidak valid.", d.Cell))
			continue
		}
		if _, dup := idx.images[cell]; dup {
			warnings = append(warnings, fmt.Sprintf("Sel %s berisi lebih dari satu gambar; hanya gambar pertama yang dipakai.", cell))
			continue
		}
		payload, err := d.Drawing.Extract()
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Gambar di sel %s tidak dapat dibaca dan diabaikan.", cell))
			continue
		}
		idx.images[cell] = payload
		idx.columns[cell] = col - 1
		if row > idx.maxRow {
			idx.maxRow = row
		}
	}
	return idx, warnings
}

// Lookup takes a zero-based column and a 1-based row.
func (this *DrawingIndex) Lookup(col, row int) *app.ImagePayload {
	if col == noColumn {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return nil
	}
	return this.images[cell]
}

// MaxRow is the highest 1-based row holding a picture, 0 when there are none.
func (this *DrawingIndex) MaxRow() int {
	return this.maxRow
}

// StrayCells lists cells holding pictures outside the template image columns.
func (this *DrawingIndex) StrayCells(cfg *ColumnConfiguration) []string {
	var cells []string
	for cell, col := range this.columns {
		_, row, _ := excelize.CellNameToCoordinates(cell)
		if row < 2 || !cfg.IsImageColumn(col) {
			cells = append(cells, cell)
		}
	}
	sort.Strings(cells)
	return cells
}

// sheetDrawings lists the pictures anchored on sheet.
func sheetDrawings(f *excelize.File, sheet string) ([]AnchoredDrawing, error) {
	cells, err := f.GetPictureCells(sheet)
	if err != nil {
		return nil, fmt.Errorf("list picture cells: %w", err)
	}

	var drawings []AnchoredDrawing
	for _, cell := range cells {
		pics, err := f.GetPictures(sheet, cell)
		if err != nil {
			return nil, fmt.Errorf("read pictures at %s: %w", cell, err)
		}
		for _, pic := range pics {
			name := ""
			if pic.Format != nil {
				name = pic.Format.AltText
			}
			drawings = append(drawings, AnchoredDrawing{
				Cell: cell,
				Drawing: EmbeddedDrawing{
					Format: pic.Extension,
					Data:   pic.File,
					Name:   name,
				},
			})
		}
	}
	return drawings, nil
}
