package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	appconfig "github.com/doeshing/raqm/internal/application/config"
	"github.com/doeshing/raqm/internal/converter"
	"github.com/doeshing/raqm/internal/domain"
	"github.com/doeshing/raqm/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	History        ports.HistoryRepository
	Cache          ports.CacheRepository
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded %s", cfg.ConfigFormatVersion)))

	if err := appconfig.Validate(cfg); err != nil {
		checks = append(checks, fail("Config validation", err.Error()))
	} else {
		checks = append(checks, ok("Config validation", fmt.Sprintf("mode %s", cfg.Assistant.Mode)))
	}

	checks = append(checks, converterCheck())

	if s.History != nil {
		if _, err := s.History.Records(ctx, domain.HistoryQuery{Limit: 1}); err != nil {
			checks = append(checks, fail("History store", err.Error()))
		} else {
			checks = append(checks, ok("History store", s.History.Path()))
		}
	} else {
		checks = append(checks, warn("History store", "history store not initialized"))
	}

	if s.Cache != nil {
		checks = append(checks, cacheCheck(s.Cache.Dir()))
	}

	if cfg.Assistant.Mode == domain.ModeContent || len(cfg.Models) > 0 {
		checks = append(checks, apiCheck(cfg.Models))
	}

	return domain.HealthReport{Checks: checks}, nil
}

func converterCheck() domain.HealthCheck {
	result := converter.Convert("255", domain.RadixDecimal)
	if !result.IsValid || result.Hexadecimal != "FF" || result.Binary != "11111111" {
		return fail("Converter", fmt.Sprintf("self-test produced %+v", result))
	}
	return ok("Converter", "255 → FF")
}

func cacheCheck(dir string) domain.HealthCheck {
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return fail("Response cache", err.Error())
	}
	tmp, err := os.CreateTemp(dir, ".write-check-*")
	if err != nil {
		return fail("Response cache", fmt.Sprintf("%s not writable: %v", dir, err))
	}
	name := tmp.Name()
	_ = tmp.Close()
	_ = os.Remove(name)
	return ok("Response cache", filepath.Clean(dir))
}

func apiCheck(models []domain.ModelDefinition) domain.HealthCheck {
	for _, model := range models {
		switch model.Provider {
		case domain.ProviderKindGemini:
			if envMissing(model.AuthEnvVar, "GEMINI_API_KEY") {
				return warn("API keys", "GEMINI_API_KEY missing; content falls back to the offline reply")
			}
		case domain.ProviderKindOpenAI:
			if envMissing(model.AuthEnvVar, "OPENAI_API_KEY") {
				return warn("API keys", "OPENAI_API_KEY missing; content falls back to the offline reply")
			}
		}
	}
	return ok("API keys", "detected for configured providers")
}

func envMissing(primary, fallback string) bool {
	if primary != "" && os.Getenv(primary) != "" {
		return false
	}
	if fallback != "" && os.Getenv(fallback) != "" {
		return false
	}
	return true
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
