package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/doeshing/raqm/internal/domain"
	"github.com/doeshing/raqm/internal/ports"
)

const defaultGeminiModel = "gemini-2.0-flash"

type geminiProvider struct {
	model      domain.ModelDefinition
	httpClient *http.Client
}

func newGeminiProvider(model domain.ModelDefinition, client *http.Client) ports.ContentProvider {
	return &geminiProvider{model: model, httpClient: client}
}

func (p *geminiProvider) Name() string {
	return string(domain.ProviderKindGemini)
}

func (p *geminiProvider) Model() domain.ModelDefinition {
	return p.model
}

func (p *geminiProvider) Generate(ctx context.Context, req ports.ProviderRequest) (ports.ProviderResponse, error) {
	apiKey := resolveAuth(p.model.AuthEnvVar, "GEMINI_API_KEY")
	if apiKey == "" {
		return newOfflineProvider(p.model).Generate(ctx, req)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: p.httpClient,
	}
	if p.model.Endpoint != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: p.model.Endpoint}
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("create gemini client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(valueOrDefaultInt(p.model.MaxTokens, defaultMaxTokens)),
	}
	if p.model.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(p.model.Temperature))
	}
	if strings.TrimSpace(req.SystemPrompt) != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}
	result, err := client.Models.GenerateContent(ctx, valueOrDefault(p.model.ModelID, defaultGeminiModel), contents, config)
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("%w: gemini: %v", domain.ErrProviderUnavailable, err)
	}
	text := strings.TrimSpace(result.Text())
	if text == "" {
		return ports.ProviderResponse{}, fmt.Errorf("%w: gemini: empty response", domain.ErrProviderUnavailable)
	}
	return ports.ProviderResponse{Text: text}, nil
}
