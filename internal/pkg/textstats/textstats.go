// Package textstats computes the character, word and reading-time summary
// attached to every assistant response.
package textstats

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/doeshing/raqm/internal/domain"
)

// Compute summarises text. Characters are counted in UTF-16 code units so the
// figures match what browser clients report for the same text. A blank text
// still counts as one word.
func Compute(text string) domain.ContentStats {
	words := Words(text)
	return domain.ContentStats{
		Characters:        len(utf16.Encode([]rune(text))),
		Words:             words,
		EstimatedReadTime: ReadTime(words),
	}
}

// Words counts whitespace separated fields, with a minimum of one.
func Words(text string) int {
	n := len(strings.Fields(text))
	if n == 0 {
		return 1
	}
	return n
}

// ReadTime renders the estimated reading time in minutes, at least one.
func ReadTime(words int) string {
	minutes := (words + domain.WordsPerMinute - 1) / domain.WordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d دقائق للقراءة", minutes)
}
