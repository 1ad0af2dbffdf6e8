// Package analyze implements the numeric variant of the assistant: a prompt
// holding a numeral is converted into every supported radix and summarised
// in an Arabic report.
package analyze

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/doeshing/raqm/internal/converter"
	"github.com/doeshing/raqm/internal/domain"
	"github.com/doeshing/raqm/internal/pkg/textstats"
	"github.com/doeshing/raqm/internal/ports"
)

// ErrEmptyPrompt is returned for a request without a numeral.
var ErrEmptyPrompt = fmt.Errorf("%w: prompt must be a non-empty string", domain.ErrMalformedRequest)

// Service turns AnalyzeRequests into AnalyzeResponses. History and Logger are
// optional.
type Service struct {
	History ports.HistoryRepository
	Logger  ports.Logger
	// Delay is waited before answering; cancellation of ctx cuts it short.
	Delay time.Duration
}

// Analyze resolves the radix from req.Platform, converts the prompt and
// builds the report. An invalid numeral is not an error: the response carries
// an invalid result and the failure line.
func (s *Service) Analyze(ctx context.Context, req domain.AnalyzeRequest) (domain.AnalyzeResponse, error) {
	if req.Prompt == "" {
		return domain.AnalyzeResponse{}, ErrEmptyPrompt
	}
	if err := s.wait(ctx); err != nil {
		return domain.AnalyzeResponse{}, err
	}

	radix := domain.RadixFromPlatform(req.Platform)
	result := s.Convert(ctx, req.Prompt, radix)

	resp := domain.AnalyzeResponse{
		Response: Report(req.Prompt, radix, result),
		Stats: domain.AnalysisStats{
			ContentStats: textstats.Compute(req.Prompt),
			Bits:         result.BitCount,
		},
		Result: result,
		Radix:  radix,
	}
	return resp, nil
}

// Convert runs the converter and records the result in history when it is
// valid. Invalid input never takes a history slot.
func (s *Service) Convert(ctx context.Context, input string, radix domain.Radix) domain.ConversionResult {
	result := converter.Convert(input, radix)
	if result.IsValid {
		s.record(ctx, input, radix, result)
	}
	return result
}

// Report renders the multi-line summary for a conversion, or the one-line
// failure message when the result is invalid.
func Report(input string, radix domain.Radix, result domain.ConversionResult) string {
	if !result.IsValid {
		return "القيمة المدخلة غير صالحة للنظام " + radix.ArabicName()
	}
	lines := []string{
		"تحليل للقيمة: " + input,
		"في النظام " + radix.ArabicName(),
		"القيمة بالنظام الثنائي: " + result.Binary,
		"القيمة بالنظام العشري: " + result.Decimal,
		"القيمة بالنظام الثماني: " + result.Octal,
		"القيمة بالنظام السادس عشر: " + result.Hexadecimal,
		fmt.Sprintf("عدد البتات: %d", result.BitCount),
	}
	return strings.Join(lines, "\n")
}

func (s *Service) wait(ctx context.Context) error {
	if s.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Service) record(ctx context.Context, input string, radix domain.Radix, result domain.ConversionResult) {
	if s.History == nil {
		return
	}
	entry := domain.HistoryEntry{
		Kind:        domain.HistoryConversion,
		Input:       input,
		SourceRadix: radix,
		Result:      &result,
	}
	if err := s.History.Save(ctx, entry); err != nil && s.Logger != nil {
		s.Logger.Warn("history save failed", map[string]interface{}{
			"error": err.Error(),
			"path":  s.History.Path(),
		})
	}
}
