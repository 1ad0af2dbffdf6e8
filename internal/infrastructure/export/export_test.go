package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/raqm/internal/domain"
)

func sampleEntries() []domain.HistoryEntry {
	ts := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	return []domain.HistoryEntry{
		{
			ID: "c1", Kind: domain.HistoryConversion, Input: "1010", SourceRadix: domain.RadixBinary,
			Result:    &domain.ConversionResult{Binary: "1010", Decimal: "10", Octal: "12", Hexadecimal: "A", BitCount: 4, IsValid: true},
			Timestamp: ts,
		},
		{
			ID: "g1", Kind: domain.HistoryContent, Input: "اكتب تغريدة", Platform: domain.PlatformTwitter,
			ContentType: domain.ContentMarketing, Content: "قهوة الصباح", Model: "gemini-flash", Timestamp: ts,
		},
	}
}

func TestParseFormat(t *testing.T) {
	for raw, want := range map[string]Format{"": FormatJSONL, "json": FormatJSONL, "MD": FormatMarkdown, "markdown": FormatMarkdown} {
		got, err := ParseFormat(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got, raw)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestWriteJSONL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSONL, sampleEntries(), time.Now()))

	scanner := bufio.NewScanner(&buf)
	var decoded []domain.HistoryEntry
	for scanner.Scan() {
		var entry domain.HistoryEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		decoded = append(decoded, entry)
	}
	require.Len(t, decoded, 2)
	assert.Equal(t, "A", decoded[0].Result.Hexadecimal)
	assert.Equal(t, domain.RadixBinary, decoded[0].SourceRadix)
	assert.Equal(t, "قهوة الصباح", decoded[1].Content)
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatMarkdown, sampleEntries(), time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)))
	out := buf.String()

	assert.Contains(t, out, "# raqm history")
	assert.Contains(t, out, "## Conversions")
	assert.Regexp(t, `\|\s*2026-05-01 12:00:00\s*\|\s*1010\s*\|\s*binary\s*\|\s*1010\s*\|\s*12\s*\|\s*10\s*\|\s*A\s*\|\s*4\s*\|\s*yes\s*\|`, out)
	assert.Contains(t, out, "## Generated content")
	assert.Contains(t, out, "تويتر")
	assert.Contains(t, out, "قهوة الصباح")
	assert.Contains(t, out, "Model: gemini-flash")
}

func TestWriteMarkdownEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, nil, time.Now()))
	assert.True(t, strings.Contains(buf.String(), "No history recorded."))
}

func TestCellEscapesPipes(t *testing.T) {
	assert.Equal(t, `a\|b c`, cell("a|b\nc"))
}
