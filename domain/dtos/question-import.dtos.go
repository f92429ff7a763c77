package dtos

import "time"

type QuestionImportConfirmRequest struct {
	Token string `json:"token" validate:"required"`
	Mode  string `json:"mode" validate:"required,oneof=append replace"`
}

type QuestionImportConfirmResponse struct {
	Message       string `json:"message"`
	ImportedCount int    `json:"imported_count"`
	RemovedCount  int64  `json:"removed_count"`
	Mode          string `json:"mode"`
}

type QuestionImportPreviewResponse struct {
	Token         string            `json:"token"`
	ImportedCount int               `json:"imported_count"`
	ExistingCount int64             `json:"existing_count"`
	Questions     []QuestionPreview `json:"questions"`
	Warnings      []string          `json:"warnings"`
	ExpiresAt     time.Time         `json:"expires_at"`
}

type QuestionPreview struct {
	Label         string          `json:"label"`
	Question      string          `json:"question"`
	QuestionImage string          `json:"question_image,omitempty"`
	Options       []OptionPreview `json:"options"`
}

type OptionPreview struct {
	Label     string `json:"label"`
	Text      string `json:"text"`
	HasImage  bool   `json:"has_image"`
	Image     string `json:"image,omitempty"`
	IsCorrect bool   `json:"is_correct"`
}

type ErrorResponse struct {
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Errors   map[string]string `json:"errors,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
}
