package helpers

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/doeshing/raqm/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// RenderConversion prints every representation of a converted value.
func RenderConversion(out io.Writer, input string, radix domain.Radix, result domain.ConversionResult) {
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%s (%s)", input, radix)))
	if !result.IsValid {
		fmt.Fprintln(out, errStyle.Render("invalid numeral for "+radix.String()))
		return
	}
	rows := [][2]string{
		{"binary", result.Binary},
		{"octal", result.Octal},
		{"decimal", result.Decimal},
		{"hexadecimal", result.Hexadecimal},
		{"bits", fmt.Sprint(result.BitCount)},
	}
	for _, row := range rows {
		fmt.Fprintf(out, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-12s", row[0])), valueStyle.Render(row[1]))
	}
}

// RenderStats prints the character, word and reading time summary.
func RenderStats(out io.Writer, stats domain.ContentStats) {
	fmt.Fprintln(out, labelStyle.Render(fmt.Sprintf("%d characters · %d words · %s",
		stats.Characters, stats.Words, stats.EstimatedReadTime)))
}

// RenderGenerated prints generated content followed by its stats.
func RenderGenerated(out io.Writer, resp domain.GenerateResponse) {
	fmt.Fprintln(out, resp.Response)
	fmt.Fprintln(out)
	RenderStats(out, resp.Stats)
	note := "model " + resp.Model
	if resp.FromCache {
		note += " (cached)"
	}
	fmt.Fprintln(out, labelStyle.Render(note))
}

// RenderHistory prints one line per entry, newest first.
func RenderHistory(out io.Writer, entries []domain.HistoryEntry) {
	for _, entry := range entries {
		when := labelStyle.Render(fmt.Sprintf("%-16s", humanize.Time(entry.Timestamp)))
		switch entry.Kind {
		case domain.HistoryConversion:
			summary := errStyle.Render("invalid")
			if entry.Result != nil && entry.Result.IsValid {
				summary = fmt.Sprintf("dec %s · hex %s · %d bits", entry.Result.Decimal, entry.Result.Hexadecimal, entry.Result.BitCount)
			}
			fmt.Fprintf(out, "%s %s %s → %s\n", when, valueStyle.Render(entry.Input), labelStyle.Render("("+entry.SourceRadix.String()+")"), summary)
		case domain.HistoryContent:
			fmt.Fprintf(out, "%s %s %s\n", when, labelStyle.Render("["+string(entry.Platform)+"/"+string(entry.ContentType)+"]"), truncate(entry.Input, 60))
		}
	}
}

// RenderDoctorReport prints each check with a coloured status tag.
func RenderDoctorReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		tag := "[" + strings.ToUpper(string(check.Status)) + "]"
		switch check.Status {
		case domain.HealthOK:
			tag = okStyle.Render(tag)
		case domain.HealthWarn:
			tag = warnStyle.Render(tag)
		default:
			tag = errStyle.Render(tag)
		}
		fmt.Fprintf(out, "%s %s - %s\n", tag, check.Name, check.Details)
	}
}

func truncate(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
