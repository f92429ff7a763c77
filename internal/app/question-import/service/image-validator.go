package question_import_service

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/init-pkg/quiz-import/domain/app"
)

const MaxImageBytes = 5 * 1024 * 1024

var allowedImageMimes = map[string]struct{}{
	"image/jpeg":     {},
	"image/jpg":      {},
	"image/pjpeg":    {},
	"image/png":      {},
	"image/gif":      {},
	"image/bmp":      {},
	"image/x-ms-bmp": {},
	"image/webp":     {},
}

func isAllowedImageMime(mime string) bool {
	_, ok := allowedImageMimes[strings.ToLower(strings.TrimSpace(mime))]
	return ok
}

// validateImage checks one picture of a row. label names the picture for the
// uploader ("pertanyaan", "opsi 2"). A rejected picture comes back as nil with
// its error under key plus the generic "file" error.
func validateImage(img *app.ImagePayload, label string, row int, key string) (*app.ImagePayload, fieldErrors) {
	if img == nil {
		return nil, nil
	}

	reject := func(msg string) (*app.ImagePayload, fieldErrors) {
		return nil, fieldErrors{}.
			add(key, fmt.Sprintf("Baris %d: gambar %s %s", row, label, msg)).
			add(fileErrorKey, fileErrorMessage)
	}

	data, err := base64.StdEncoding.DecodeString(img.Data)
	if err != nil {
		return reject("tidak dapat dibaca.")
	}
	if len(data) > MaxImageBytes {
		return reject("melebihi batas ukuran 5 MB.")
	}
	if img.MimeType != "" && !isAllowedImageMime(img.MimeType) {
		return reject(fmt.Sprintf("memiliki format %s yang tidak didukung. Gunakan JPG, PNG, GIF, BMP, atau WEBP.", img.MimeType))
	}
	return img, nil
}
