package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsedOptionIsEmpty(t *testing.T) {
	blank, text := "", "4"

	assert.True(t, ParsedOption{}.IsEmpty())
	assert.True(t, ParsedOption{OptionText: &blank}.IsEmpty())
	assert.False(t, ParsedOption{OptionText: &text}.IsEmpty())
	assert.False(t, ParsedOption{Image: &ImagePayload{MimeType: "image/png"}}.IsEmpty())
}

func TestImportModes(t *testing.T) {
	assert.Equal(t, []ImportMode{ImportModeAppend, ImportModeReplace}, AllImportModes())
	for _, m := range AllImportModes() {
		assert.True(t, m.IsValid(), m)
	}
	assert.False(t, ImportMode("merge").IsValid())
}
