package ai

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/doeshing/raqm/internal/domain"
	"github.com/doeshing/raqm/internal/ports"
)

// Factory builds content providers from model definitions. One HTTP client is
// shared by every provider it creates.
type Factory struct {
	httpClient *http.Client
}

func NewFactory() *Factory {
	return &Factory{
		httpClient: &http.Client{Timeout: domain.DefaultHTTPClientTimeout},
	}
}

// NewFactoryWithClient is used by tests to point providers at a local server.
func NewFactoryWithClient(client *http.Client) *Factory {
	return &Factory{httpClient: client}
}

func (f *Factory) ForModel(model domain.ModelDefinition) (ports.ContentProvider, error) {
	kind := model.Provider
	if kind == domain.ProviderKindUnknown {
		kind = inferProviderKind(model.Endpoint, model.Name)
	}

	switch kind {
	case domain.ProviderKindGemini:
		return newGeminiProvider(model, f.httpClient), nil
	case domain.ProviderKindOpenAI:
		return newOpenAIProvider(model, f.httpClient), nil
	case domain.ProviderKindOffline:
		return newOfflineProvider(model), nil
	default:
		return nil, fmt.Errorf("unsupported provider kind %q for model %s", kind, model.Name)
	}
}

func inferProviderKind(endpoint string, name string) domain.ProviderKind {
	nameLower := strings.ToLower(name)

	switch {
	case strings.Contains(endpoint, "generativelanguage.googleapis.com"), strings.HasPrefix(nameLower, "gemini"):
		return domain.ProviderKindGemini
	case strings.Contains(endpoint, "openai.com"), strings.HasPrefix(nameLower, "gpt"):
		return domain.ProviderKindOpenAI
	case endpoint == "" && strings.Contains(nameLower, "offline"):
		return domain.ProviderKindOffline
	default:
		return domain.ProviderKindUnknown
	}
}

var _ ports.ProviderFactory = (*Factory)(nil)
