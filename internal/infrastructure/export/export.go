// Package export writes history entries as JSON Lines or Markdown.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"

	"github.com/doeshing/raqm/internal/domain"
)

// Format selects the export encoding.
type Format string

const (
	FormatJSONL    Format = "jsonl"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts "jsonl"/"json" and "markdown"/"md".
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "jsonl", "json":
		return FormatJSONL, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want jsonl|markdown)", raw)
	}
}

// Write encodes entries to w in the given format.
func Write(w io.Writer, format Format, entries []domain.HistoryEntry, generatedAt time.Time) error {
	switch format {
	case FormatJSONL:
		return WriteJSONL(w, entries)
	case FormatMarkdown:
		return WriteMarkdown(w, entries, generatedAt)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// WriteJSONL writes one JSON object per line.
func WriteJSONL(w io.Writer, entries []domain.HistoryEntry) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, entry := range entries {
		if err := enc.Encode(entry); err != nil {
			return err
		}
	}
	return nil
}

// WriteMarkdown renders conversions as a table and generated content as one
// section per entry.
func WriteMarkdown(w io.Writer, entries []domain.HistoryEntry, generatedAt time.Time) error {
	md := markdown.NewMarkdown(w)

	md.H1("raqm history")
	md.PlainText("")
	md.PlainText("Generated " + generatedAt.Format("2006-01-02 15:04:05 MST") + ", " + strconv.Itoa(len(entries)) + " entries.")
	md.PlainText("")

	var conversions, contents []domain.HistoryEntry
	for _, entry := range entries {
		switch entry.Kind {
		case domain.HistoryConversion:
			conversions = append(conversions, entry)
		case domain.HistoryContent:
			contents = append(contents, entry)
		}
	}

	if len(conversions) > 0 {
		writeConversions(md, conversions)
	}
	if len(contents) > 0 {
		writeContents(md, contents)
	}
	if len(entries) == 0 {
		md.PlainText("No history recorded.")
	}

	return md.Build()
}

func writeConversions(md *markdown.Markdown, entries []domain.HistoryEntry) {
	md.H2("Conversions")
	md.PlainText("")

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		result := domain.ConversionResult{}
		if entry.Result != nil {
			result = *entry.Result
		}
		valid := "yes"
		if !result.IsValid {
			valid = "no"
		}
		rows = append(rows, []string{
			entry.Timestamp.Format(time.DateTime),
			cell(entry.Input),
			entry.SourceRadix.String(),
			result.Binary,
			result.Octal,
			result.Decimal,
			result.Hexadecimal,
			strconv.Itoa(result.BitCount),
			valid,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Time", "Input", "Radix", "Binary", "Octal", "Decimal", "Hexadecimal", "Bits", "Valid"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeContents(md *markdown.Markdown, entries []domain.HistoryEntry) {
	md.H2("Generated content")
	md.PlainText("")

	for _, entry := range entries {
		md.H3(entry.Timestamp.Format(time.DateTime) + " · " + entry.Platform.Label() + " · " + entry.ContentType.Label())
		md.PlainText("")
		details := []string{"Prompt: " + entry.Input}
		if entry.Model != "" {
			details = append(details, "Model: "+entry.Model)
		}
		md.BulletList(details...)
		md.PlainText("")
		md.PlainText(entry.Content)
		md.PlainText("")
	}
}

func cell(value string) string {
	value = strings.ReplaceAll(value, "|", `\|`)
	return strings.ReplaceAll(value, "\n", " ")
}
