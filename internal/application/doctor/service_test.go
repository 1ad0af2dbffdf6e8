package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/doeshing/raqm/internal/domain"
	infraconfig "github.com/doeshing/raqm/internal/infrastructure/config"
)

type stubConfig struct {
	cfg domain.Config
	err error
}

func (s stubConfig) Load(context.Context) (domain.Config, error) { return s.cfg, s.err }

type stubHistory struct{ err error }

func (s stubHistory) Save(context.Context, domain.HistoryEntry) error { return nil }
func (s stubHistory) Records(context.Context, domain.HistoryQuery) ([]domain.HistoryEntry, error) {
	return nil, s.err
}
func (s stubHistory) Clear(context.Context, domain.HistoryKind) error { return nil }
func (s stubHistory) Path() string                                     { return "/tmp/history.db" }

type stubCache struct{ dir string }

func (c stubCache) Get(string) (domain.CacheEntry, bool, error) { return domain.CacheEntry{}, false, nil }
func (c stubCache) Set(domain.CacheEntry) error                 { return nil }
func (c stubCache) Clear() error                                { return nil }
func (c stubCache) Dir() string                                 { return c.dir }

func findCheck(t *testing.T, report domain.HealthReport, name string) domain.HealthCheck {
	t.Helper()
	for _, check := range report.Checks {
		if check.Name == name {
			return check
		}
	}
	t.Fatalf("check %q missing from %+v", name, report.Checks)
	return domain.HealthCheck{}
}

func TestDoctorHealthyDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("OPENAI_API_KEY", "key")

	svc := &Service{
		ConfigProvider: stubConfig{cfg: infraconfig.Default()},
		History:        stubHistory{},
		Cache:          stubCache{dir: t.TempDir()},
	}
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if report.Status() != domain.HealthOK {
		t.Fatalf("expected healthy report, got %+v", report.Checks)
	}
	if got := findCheck(t, report, "Converter"); got.Status != domain.HealthOK {
		t.Fatalf("converter check: %+v", got)
	}
}

func TestDoctorFlagsProblems(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")

	cfg := infraconfig.Default()
	cfg.Assistant.Mode = "bogus"
	svc := &Service{
		ConfigProvider: stubConfig{cfg: cfg},
		History:        stubHistory{err: errors.New("locked")},
	}
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if report.Status() != domain.HealthError {
		t.Fatalf("expected error status, got %s", report.Status())
	}
	if got := findCheck(t, report, "Config validation"); got.Status != domain.HealthError {
		t.Fatalf("config validation: %+v", got)
	}
	if got := findCheck(t, report, "History store"); got.Status != domain.HealthError {
		t.Fatalf("history: %+v", got)
	}
	if got := findCheck(t, report, "API keys"); got.Status != domain.HealthWarn {
		t.Fatalf("api keys: %+v", got)
	}
}

func TestDoctorConfigLoadFailure(t *testing.T) {
	svc := &Service{ConfigProvider: stubConfig{err: errors.New("parse error")}}
	report, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if report.Status() != domain.HealthError {
		t.Fatalf("expected error report, got %+v", report)
	}
}
