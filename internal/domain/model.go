// Package domain defines core entities and value objects for raqm.
//
// This file contains AI model and provider definitions used by the content
// generation variant of the assistant.
package domain

// ProviderKind names the backend that serves a model.
type ProviderKind string

const (
	ProviderKindGemini  ProviderKind = "gemini"
	ProviderKindOpenAI  ProviderKind = "openai"
	ProviderKindOffline ProviderKind = "offline"
	ProviderKindUnknown ProviderKind = ""
)

// ModelDefinition describes an AI provider configuration declared in the config file.
type ModelDefinition struct {
	Name        string       `yaml:"name"`
	Provider    ProviderKind `yaml:"provider,omitempty"`
	Endpoint    string       `yaml:"endpoint,omitempty"`
	AuthEnvVar  string       `yaml:"auth_env_var,omitempty"`
	OrgEnvVar   string       `yaml:"org_env_var,omitempty"`
	ModelID     string       `yaml:"model_id"`
	MaxTokens   int          `yaml:"max_tokens,omitempty"`
	Temperature float64      `yaml:"temperature,omitempty"`
	// SystemPrompt overrides the built-in system prompt template. It is
	// rendered with text/template; see ai.PromptData for the fields.
	SystemPrompt string `yaml:"system_prompt,omitempty"`
}
