// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). The application services depend on these interfaces,
// and the infrastructure layer provides concrete implementations: SQLite or JSONL
// history, a file backed response cache, Gemini and OpenAI providers, zap logging.
package ports

import (
	"context"

	"github.com/doeshing/raqm/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.raqm/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ProviderFactory builds content provider instances based on model definitions.
type ProviderFactory interface {
	ForModel(domain.ModelDefinition) (ContentProvider, error)
}

// ContentProvider generates text for a rendered prompt. Each implementation
// wraps a specific AI service API.
type ContentProvider interface {
	Name() string
	Model() domain.ModelDefinition
	Generate(context.Context, ProviderRequest) (ProviderResponse, error)
}

// ProviderRequest carries the system instructions and the user prompt.
type ProviderRequest struct {
	SystemPrompt string
	Prompt       string
	Model        domain.ModelDefinition
}

// ProviderResponse holds the generated text.
type ProviderResponse struct {
	Text string
}

// HistoryRepository persists assistant history, newest first.
type HistoryRepository interface {
	Save(context.Context, domain.HistoryEntry) error
	Records(context.Context, domain.HistoryQuery) ([]domain.HistoryEntry, error)
	Clear(ctx context.Context, kind domain.HistoryKind) error
	Path() string
}

// CacheRepository stores generated responses keyed by a content hash.
type CacheRepository interface {
	Get(key string) (domain.CacheEntry, bool, error)
	Set(domain.CacheEntry) error
	Clear() error
	Dir() string
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
