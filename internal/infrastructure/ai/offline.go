package ai

import (
	"context"

	"github.com/doeshing/raqm/internal/domain"
	"github.com/doeshing/raqm/internal/ports"
)

// OfflineReply is returned when no provider credentials are available.
const OfflineReply = "عذراً، لا يتوفر اتصال بمزود الذكاء الاصطناعي حالياً. يرجى ضبط مفتاح الواجهة البرمجية ثم المحاولة مرة أخرى."

type offlineProvider struct {
	model domain.ModelDefinition
}

func newOfflineProvider(model domain.ModelDefinition) ports.ContentProvider {
	return &offlineProvider{model: model}
}

func (p *offlineProvider) Name() string {
	return string(domain.ProviderKindOffline)
}

func (p *offlineProvider) Model() domain.ModelDefinition {
	return p.model
}

func (p *offlineProvider) Generate(ctx context.Context, _ ports.ProviderRequest) (ports.ProviderResponse, error) {
	if err := ctx.Err(); err != nil {
		return ports.ProviderResponse{}, err
	}
	return ports.ProviderResponse{Text: OfflineReply}, nil
}
