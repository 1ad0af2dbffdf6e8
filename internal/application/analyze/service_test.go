package analyze

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/raqm/internal/domain"
)

type stubHistory struct {
	entries []domain.HistoryEntry
	err     error
}

func (s *stubHistory) Save(_ context.Context, entry domain.HistoryEntry) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *stubHistory) Records(context.Context, domain.HistoryQuery) ([]domain.HistoryEntry, error) {
	return s.entries, nil
}

func (s *stubHistory) Clear(context.Context, domain.HistoryKind) error { return nil }
func (s *stubHistory) Path() string                                     { return "stub" }

type stubLogger struct {
	warnings []string
}

func (l *stubLogger) Debug(string, map[string]interface{}) {}
func (l *stubLogger) Info(string, map[string]interface{})  {}
func (l *stubLogger) Warn(msg string, _ map[string]interface{}) {
	l.warnings = append(l.warnings, msg)
}
func (l *stubLogger) Error(string, error, map[string]interface{}) {}

func TestAnalyzeBinaryPrompt(t *testing.T) {
	history := &stubHistory{}
	svc := &Service{History: history}

	resp, err := svc.Analyze(context.Background(), domain.AnalyzeRequest{Prompt: "1010", Platform: "binary"})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	wantResult := domain.ConversionResult{
		Binary: "1010", Decimal: "10", Octal: "12", Hexadecimal: "A", BitCount: 4, IsValid: true,
	}
	if diff := cmp.Diff(wantResult, resp.Result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}

	wantReport := strings.Join([]string{
		"تحليل للقيمة: 1010",
		"في النظام الثنائي",
		"القيمة بالنظام الثنائي: 1010",
		"القيمة بالنظام العشري: 10",
		"القيمة بالنظام الثماني: 12",
		"القيمة بالنظام السادس عشر: A",
		"عدد البتات: 4",
	}, "\n")
	if resp.Response != wantReport {
		t.Fatalf("report mismatch:\n%s\nwant:\n%s", resp.Response, wantReport)
	}

	wantStats := domain.AnalysisStats{
		ContentStats: domain.ContentStats{Characters: 4, Words: 1, EstimatedReadTime: "1 دقائق للقراءة"},
		Bits:         4,
	}
	if diff := cmp.Diff(wantStats, resp.Stats); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}

	if len(history.entries) != 1 {
		t.Fatalf("expected one history entry, got %d", len(history.entries))
	}
	entry := history.entries[0]
	if entry.Kind != domain.HistoryConversion || entry.SourceRadix != domain.RadixBinary || entry.Input != "1010" {
		t.Fatalf("unexpected history entry: %+v", entry)
	}
}

func TestAnalyzeDefaultsToDecimal(t *testing.T) {
	svc := &Service{}
	for _, platform := range []string{"", "twitter", "BINARY"} {
		resp, err := svc.Analyze(context.Background(), domain.AnalyzeRequest{Prompt: "255", Platform: platform})
		if err != nil {
			t.Fatalf("platform %q: %v", platform, err)
		}
		if resp.Radix != domain.RadixDecimal {
			t.Fatalf("platform %q resolved to %v", platform, resp.Radix)
		}
		if resp.Result.Hexadecimal != "FF" || resp.Result.Binary != "11111111" {
			t.Fatalf("platform %q: unexpected result %+v", platform, resp.Result)
		}
	}
}

func TestAnalyzeReportNamesResolvedRadix(t *testing.T) {
	resp, err := (&Service{}).Analyze(context.Background(), domain.AnalyzeRequest{Prompt: "12", Platform: "twitter"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(resp.Response, "\n")
	if len(lines) != 7 || lines[1] != "في النظام العشري" {
		t.Fatalf("report should name the decimal system it converted with, got %q", resp.Response)
	}
}

func TestAnalyzeInvalidNumeral(t *testing.T) {
	svc := &Service{}
	resp, err := svc.Analyze(context.Background(), domain.AnalyzeRequest{Prompt: "19", Platform: "octal"})
	if err != nil {
		t.Fatalf("invalid numerals must not error: %v", err)
	}
	if resp.Result.IsValid {
		t.Fatalf("expected invalid result")
	}
	if resp.Response != "القيمة المدخلة غير صالحة للنظام الثماني" {
		t.Fatalf("unexpected failure line %q", resp.Response)
	}
	if resp.Stats.Bits != 0 {
		t.Fatalf("invalid result must report zero bits, got %d", resp.Stats.Bits)
	}
}

func TestAnalyzeInvalidNumeralIsNotRecorded(t *testing.T) {
	history := &stubHistory{}
	svc := &Service{History: history}

	for _, req := range []domain.AnalyzeRequest{
		{Prompt: "102", Platform: "binary"},
		{Prompt: "   "},
	} {
		resp, err := svc.Analyze(context.Background(), req)
		if err != nil {
			t.Fatalf("prompt %q: %v", req.Prompt, err)
		}
		if resp.Result.IsValid {
			t.Fatalf("prompt %q should be invalid", req.Prompt)
		}
	}
	if len(history.entries) != 0 {
		t.Fatalf("invalid conversions must not be recorded, got %+v", history.entries)
	}
}

func TestConvertRecordsOnlyValidResults(t *testing.T) {
	history := &stubHistory{}
	svc := &Service{History: history}

	if got := svc.Convert(context.Background(), "ff", domain.RadixHexadecimal); !got.IsValid || got.Decimal != "255" {
		t.Fatalf("unexpected result %+v", got)
	}
	if got := svc.Convert(context.Background(), "8", domain.RadixOctal); got.IsValid {
		t.Fatalf("8 is not octal, got %+v", got)
	}
	if len(history.entries) != 1 || history.entries[0].Input != "ff" {
		t.Fatalf("expected only the valid conversion in history, got %+v", history.entries)
	}
}

func TestAnalyzeWhitespaceOnlyPromptIsInvalidNotMalformed(t *testing.T) {
	resp, err := (&Service{}).Analyze(context.Background(), domain.AnalyzeRequest{Prompt: "   "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Result.IsValid {
		t.Fatalf("whitespace prompt should be invalid")
	}
	if resp.Stats.Characters != 3 || resp.Stats.Words != 1 {
		t.Fatalf("unexpected stats %+v", resp.Stats)
	}
}

func TestAnalyzeEmptyPromptIsMalformed(t *testing.T) {
	_, err := (&Service{}).Analyze(context.Background(), domain.AnalyzeRequest{})
	if !errors.Is(err, domain.ErrMalformedRequest) {
		t.Fatalf("expected ErrMalformedRequest, got %v", err)
	}
}

func TestAnalyzeHistoryFailureIsLogged(t *testing.T) {
	logger := &stubLogger{}
	svc := &Service{History: &stubHistory{err: errors.New("disk full")}, Logger: logger}
	resp, err := svc.Analyze(context.Background(), domain.AnalyzeRequest{Prompt: "7", Platform: "octal"})
	if err != nil {
		t.Fatalf("history failures must not fail the conversion: %v", err)
	}
	if !resp.Result.IsValid || len(logger.warnings) != 1 {
		t.Fatalf("expected valid result and one warning, got %+v / %v", resp.Result, logger.warnings)
	}
}

func TestAnalyzeDelayHonoursCancellation(t *testing.T) {
	svc := &Service{Delay: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Analyze(ctx, domain.AnalyzeRequest{Prompt: "1"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
