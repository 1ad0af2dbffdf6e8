package ai

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/doeshing/raqm/internal/domain"
)

// BaseInstruction opens every system prompt.
const BaseInstruction = "أجب بدقة ووضوح على الطلب التالي."

const defaultSystemTemplate = BaseInstruction +
	"{{with .PlatformInstructions}} {{.}}{{end}}" +
	"{{with .ContentTypeInstructions}} {{.}}{{end}}" +
	"{{with .Instructions}} {{.}}{{end}}"

// PromptData is the template context available to model system prompts.
type PromptData struct {
	Platform                string
	PlatformLabel           string
	PlatformInstructions    string
	ContentType             string
	ContentTypeLabel        string
	ContentTypeInstructions string
	Instructions            string
}

// NewPromptData collects the template fields for a generate request.
func NewPromptData(req domain.GenerateRequest) PromptData {
	return PromptData{
		Platform:                string(req.Platform),
		PlatformLabel:           req.Platform.Label(),
		PlatformInstructions:    req.Platform.Instructions(),
		ContentType:             string(req.ContentType),
		ContentTypeLabel:        req.ContentType.Label(),
		ContentTypeInstructions: req.ContentType.Instructions(),
		Instructions:            strings.TrimSpace(req.Instructions),
	}
}

// RenderSystemPrompt expands the model's system prompt template, or the
// built-in one when the model does not declare its own.
func RenderSystemPrompt(model domain.ModelDefinition, data PromptData) (string, error) {
	raw := model.SystemPrompt
	if strings.TrimSpace(raw) == "" {
		raw = defaultSystemTemplate
	}
	return executeTemplate(raw, data)
}

func executeTemplate(raw string, data PromptData) (string, error) {
	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(raw)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
