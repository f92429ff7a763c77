package app

import (
	"encoding/base64"
	"time"
)

// ImagePayload is a picture lifted out of the uploaded workbook. Data is base64.
type ImagePayload struct {
	Data         string `json:"data"`
	MimeType     string `json:"mime_type"`
	Extension    string `json:"extension"`
	OriginalName string `json:"original_name"`
}

// Bytes decodes Data.
func (p *ImagePayload) Bytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(p.Data)
}

// DataURI renders the payload the way the preview UI embeds it.
func (p *ImagePayload) DataURI() string {
	if p == nil {
		return ""
	}
	mime := p.MimeType
	if mime == "" {
		mime = "application/octet-stream"
	}
	return "data:" + mime + ";base64," + p.Data
}

type ParsedOption struct {
	OptionText *string       `json:"option_text"`
	IsCorrect  bool          `json:"is_correct"`
	Image      *ImagePayload `json:"image"`
}

func (o ParsedOption) IsEmpty() bool {
	return (o.OptionText == nil || *o.OptionText == "") && o.Image == nil
}

type ParsedQuestion struct {
	Question *string        `json:"question"`
	Image    *ImagePayload  `json:"image"`
	Options  []ParsedOption `json:"options"`
}

type ParseResult struct {
	Questions []ParsedQuestion  `json:"questions"`
	Warnings  []string          `json:"warnings"`
	Errors    map[string]string `json:"errors"`
}

func (r *ParseResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// PreviewRecord is what the preview store keeps under a token until it is
// confirmed, forgotten or expired.
type PreviewRecord struct {
	Token     string           `json:"token"`
	QuizID    uint64           `json:"quiz_id"`
	UserID    uint64           `json:"user_id"`
	Questions []ParsedQuestion `json:"questions"`
	Warnings  []string         `json:"warnings"`
	CreatedAt time.Time        `json:"created_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

func (r *PreviewRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

type ImportMode string

const (
	ImportModeAppend  ImportMode = "append"
	ImportModeReplace ImportMode = "replace"
)

func (m ImportMode) String() string {
	return string(m)
}

func (m ImportMode) IsValid() bool {
	switch m {
	case ImportModeAppend, ImportModeReplace:
		return true
	default:
		return false
	}
}

var allImportModes = []ImportMode{
	ImportModeAppend,
	ImportModeReplace,
}

func AllImportModes() []ImportMode {
	return allImportModes
}

// CommitResult summarizes what an import wrote into the question bank.
type CommitResult struct {
	QuizID          uint64     `json:"quiz_id"`
	Mode            ImportMode `json:"mode"`
	ImportedCount   int        `json:"imported_count"`
	RemovedCount    int64      `json:"removed_count"`
	StoredImageKeys []string   `json:"-"`
}
