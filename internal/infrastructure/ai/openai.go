package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/doeshing/raqm/internal/domain"
	"github.com/doeshing/raqm/internal/ports"
)

const (
	defaultOpenAIEndpoint = "https://api.openai.com/v1/chat/completions"
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultMaxTokens      = 1024
)

type openAIProvider struct {
	model      domain.ModelDefinition
	httpClient *http.Client
}

func newOpenAIProvider(model domain.ModelDefinition, client *http.Client) ports.ContentProvider {
	return &openAIProvider{
		model:      model,
		httpClient: client,
	}
}

func (p *openAIProvider) Name() string {
	return string(domain.ProviderKindOpenAI)
}

func (p *openAIProvider) Model() domain.ModelDefinition {
	return p.model
}

func (p *openAIProvider) Generate(ctx context.Context, req ports.ProviderRequest) (ports.ProviderResponse, error) {
	apiKey := resolveAuth(p.model.AuthEnvVar, "OPENAI_API_KEY")
	if apiKey == "" {
		return newOfflineProvider(p.model).Generate(ctx, req)
	}

	payload := chatCompletionRequest{
		Model:       valueOrDefault(p.model.ModelID, defaultOpenAIModel),
		MaxTokens:   valueOrDefaultInt(p.model.MaxTokens, defaultMaxTokens),
		Temperature: p.model.Temperature,
		Messages:    toChatMessages(req.SystemPrompt, req.Prompt),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ports.ProviderResponse{}, err
	}

	endpoint := valueOrDefault(p.model.Endpoint, defaultOpenAIEndpoint)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return ports.ProviderResponse{}, err
	}
	httpReq.Header.Set("authorization", "Bearer "+apiKey)
	httpReq.Header.Set("content-type", "application/json")
	if org := resolveOrg(p.model.OrgEnvVar, "OPENAI_ORG_ID"); org != "" {
		httpReq.Header.Set("OpenAI-Organization", org)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("%w: openai: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return ports.ProviderResponse{}, fmt.Errorf("%w: openai: %s: %s", domain.ErrProviderUnavailable, resp.Status, strings.TrimSpace(string(snippet)))
	}

	var decoded chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("openai: decode response: %w", err)
	}
	text := decoded.FirstMessage()
	if text == "" {
		return ports.ProviderResponse{}, fmt.Errorf("%w: openai: empty completion", domain.ErrProviderUnavailable)
	}
	return ports.ProviderResponse{Text: text}, nil
}
