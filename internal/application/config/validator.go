package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/doeshing/raqm/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	switch cfg.Assistant.Mode {
	case domain.ModeNumeric, domain.ModeContent:
	default:
		return fmt.Errorf("assistant.mode must be numeric|content, got %q", cfg.Assistant.Mode)
	}
	if cfg.Assistant.ResponseDelay != "" {
		if d, err := time.ParseDuration(cfg.Assistant.ResponseDelay); err != nil || d < 0 {
			return fmt.Errorf("assistant.response_delay invalid: %q", cfg.Assistant.ResponseDelay)
		}
	}
	if err := validateModels(cfg); err != nil {
		return err
	}
	if err := validateServer(cfg.Server); err != nil {
		return err
	}
	if err := validateCache(cfg.Cache); err != nil {
		return err
	}
	return validateHistory(cfg.History)
}

func validateModels(cfg domain.Config) error {
	if len(cfg.Models) == 0 {
		if cfg.Assistant.Mode == domain.ModeContent {
			return errors.New("at least one model must be configured in content mode")
		}
		return nil
	}
	seen := make(map[string]bool, len(cfg.Models))
	for _, model := range cfg.Models {
		if model.Name == "" {
			return errors.New("models: every model needs a name")
		}
		if seen[model.Name] {
			return fmt.Errorf("models: duplicate name %s", model.Name)
		}
		seen[model.Name] = true
		switch model.Provider {
		case domain.ProviderKindGemini, domain.ProviderKindOpenAI, domain.ProviderKindOffline, domain.ProviderKindUnknown:
		default:
			return fmt.Errorf("model %s: provider must be gemini|openai|offline, got %q", model.Name, model.Provider)
		}
	}
	if _, ok := cfg.FindModelByName(cfg.Preferences.DefaultModel); !ok {
		return fmt.Errorf("default model %s not found in models list", cfg.Preferences.DefaultModel)
	}
	for _, name := range cfg.Preferences.FallbackModels {
		if !cfg.HasModel(name) {
			return fmt.Errorf("fallback model %s not found", name)
		}
	}
	if cfg.Preferences.TimeoutSeconds < 0 {
		return errors.New("preferences.timeout must be >= 0")
	}
	return nil
}

func validateServer(srv domain.ServerSettings) error {
	if srv.MaxBodyBytes < 0 {
		return errors.New("server.max_body_bytes must be >= 0")
	}
	if srv.MaxConnections < 0 {
		return errors.New("server.max_connections must be >= 0")
	}
	if srv.RateLimit.RequestsPerSecond < 0 || srv.RateLimit.Burst < 0 {
		return errors.New("server.rate_limit values must be >= 0")
	}
	if srv.RateLimit.RequestsPerSecond > 0 && srv.RateLimit.Burst == 0 {
		return errors.New("server.rate_limit.burst must be > 0 when rate limiting is enabled")
	}
	if srv.Auth.Enabled && srv.Auth.SecretEnv == "" {
		return errors.New("server.auth.secret_env must be set when auth is enabled")
	}
	return nil
}

func validateCache(cache domain.CacheSettings) error {
	if _, err := time.ParseDuration(cache.TTL); err != nil {
		return fmt.Errorf("cache.ttl invalid: %w", err)
	}
	if cache.MaxEntries <= 0 {
		return fmt.Errorf("cache.max_entries must be > 0")
	}
	return nil
}

func validateHistory(history domain.HistorySettings) error {
	switch history.Backend {
	case domain.HistoryBackendSQLite, domain.HistoryBackendFile:
	default:
		return fmt.Errorf("history.backend must be sqlite|file, got %q", history.Backend)
	}
	if history.MaxEntries <= 0 {
		return fmt.Errorf("history.max_entries must be > 0")
	}
	return nil
}
