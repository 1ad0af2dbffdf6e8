// Package content implements the content generation variant of the
// assistant: a prompt is wrapped in platform and tone instructions and sent
// to the configured model, falling back along the model chain.
package content

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/doeshing/raqm/internal/domain"
	"github.com/doeshing/raqm/internal/infrastructure/ai"
	"github.com/doeshing/raqm/internal/pkg/textstats"
	"github.com/doeshing/raqm/internal/ports"
)

// ErrEmptyPrompt is returned for blank prompts.
var ErrEmptyPrompt = fmt.Errorf("%w: prompt must be a non-empty string", domain.ErrMalformedRequest)

// Service orchestrates a generation request end-to-end. Cache and History
// are optional.
type Service struct {
	ConfigProvider  ports.ConfigProvider
	ProviderFactory ports.ProviderFactory
	Cache           ports.CacheRepository
	History         ports.HistoryRepository
	Logger          ports.Logger
}

// Generate produces content for req. Providers are tried in ModelChain order
// and the first success wins.
func (s *Service) Generate(ctx context.Context, req domain.GenerateRequest) (domain.GenerateResponse, error) {
	if s.ConfigProvider == nil || s.ProviderFactory == nil || s.Logger == nil {
		return domain.GenerateResponse{}, errors.New("content.Service dependencies not satisfied")
	}

	prompt := norm.NFC.String(strings.TrimSpace(req.Prompt))
	if prompt == "" {
		return domain.GenerateResponse{}, ErrEmptyPrompt
	}
	if req.Platform == "" {
		req.Platform = domain.PlatformGeneral
	}
	if req.ContentType == "" {
		req.ContentType = domain.ContentGeneral
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.GenerateResponse{}, fmt.Errorf("load config: %w", err)
	}

	chain, err := cfg.ModelChain(req.ModelOverride)
	if err != nil {
		return domain.GenerateResponse{}, err
	}

	timeout := domain.DefaultRequestTimeout
	if cfg.Preferences.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.Preferences.TimeoutSeconds) * time.Second
	}

	var failures []error
	for _, model := range chain {
		text, cached, err := s.generateWith(ctx, model, prompt, req, timeout)
		if err != nil {
			if ctx.Err() != nil {
				return domain.GenerateResponse{}, ctx.Err()
			}
			s.Logger.Warn("provider failed, trying next model", map[string]interface{}{
				"model": model.Name,
				"error": err.Error(),
			})
			failures = append(failures, fmt.Errorf("%s: %w", model.Name, err))
			continue
		}

		s.record(ctx, req, prompt, text, model.Name)
		return domain.GenerateResponse{
			Response:  text,
			Stats:     textstats.Compute(text),
			Model:     model.Name,
			FromCache: cached,
		}, nil
	}

	return domain.GenerateResponse{}, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, errors.Join(failures...))
}

func (s *Service) generateWith(
	ctx context.Context,
	model domain.ModelDefinition,
	prompt string,
	req domain.GenerateRequest,
	timeout time.Duration,
) (string, bool, error) {
	system, err := ai.RenderSystemPrompt(model, ai.NewPromptData(req))
	if err != nil {
		return "", false, fmt.Errorf("render system prompt: %w", err)
	}

	key := CacheKey(model.Name, system, prompt)
	if s.Cache != nil {
		entry, ok, err := s.Cache.Get(key)
		if err != nil {
			s.Logger.Warn("cache read failed", map[string]interface{}{"error": err.Error()})
		} else if ok {
			s.Logger.Debug("cache hit", map[string]interface{}{"model": model.Name})
			return entry.Response, true, nil
		}
	}

	provider, err := s.ProviderFactory.ForModel(model)
	if err != nil {
		return "", false, fmt.Errorf("provider init: %w", err)
	}

	s.Logger.Info("calling provider", map[string]interface{}{
		"provider": provider.Name(),
		"model":    model.ModelID,
	})

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	resp, err := provider.Generate(callCtx, ports.ProviderRequest{
		SystemPrompt: system,
		Prompt:       prompt,
		Model:        model,
	})
	if err != nil {
		return "", false, fmt.Errorf("provider generate: %w", err)
	}

	if s.Cache != nil && resp.Text != ai.OfflineReply {
		if err := s.Cache.Set(domain.CacheEntry{Key: key, Response: resp.Text, Model: model.Name}); err != nil {
			s.Logger.Warn("cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return resp.Text, false, nil
}

func (s *Service) record(ctx context.Context, req domain.GenerateRequest, prompt, text, model string) {
	if s.History == nil {
		return
	}
	entry := domain.HistoryEntry{
		Kind:        domain.HistoryContent,
		Input:       prompt,
		Platform:    req.Platform,
		ContentType: req.ContentType,
		Content:     text,
		Model:       model,
	}
	if err := s.History.Save(ctx, entry); err != nil {
		s.Logger.Warn("history save failed", map[string]interface{}{
			"error": err.Error(),
			"path":  s.History.Path(),
		})
	}
}

// CacheKey hashes the NFC-normalised model name, system prompt and prompt.
func CacheKey(model, system, prompt string) string {
	h := sha256.New()
	for _, part := range []string{model, system, prompt} {
		h.Write([]byte(norm.NFC.String(part)))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
