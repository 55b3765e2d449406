// Package renderer turns a template into the textual forms the copy actions
// expose: the composed prompt line, a JSON object for tooling, and a markdown
// document with YAML frontmatter.
package renderer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dpshade/prompt-loom/internal/batch"
	"github.com/dpshade/prompt-loom/internal/models"
)

// Renderer handles template rendering
type Renderer struct {
	template *models.Template
}

// NewRenderer creates a new renderer instance
func NewRenderer(template *models.Template) *Renderer {
	return &Renderer{template: template}
}

// RenderText renders the composed positive prompt line
func (r *Renderer) RenderText() string {
	parts := r.template.PromptParts
	return batch.Compose(parts.Top, parts.Middle, parts.Bottom)
}

// RenderJSON renders the prompt pair as a JSON object for external tooling
func (r *Renderer) RenderJSON() (string, error) {
	payload := promptPayload{
		Prompt:         r.RenderText(),
		NegativePrompt: r.template.NegativePrompt,
	}

	jsonBytes, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal to JSON: %w", err)
	}

	return string(jsonBytes), nil
}

// promptPayload is the JSON shape generation tools expect
type promptPayload struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt"`
}

// markdownMeta is the YAML frontmatter written by RenderMarkdown
type markdownMeta struct {
	Name           string `yaml:"name,omitempty"`
	NegativePrompt string `yaml:"negative_prompt,omitempty"`
	DefaultImage   string `yaml:"default_image,omitempty"`
}

// RenderMarkdown renders the template as markdown with YAML frontmatter,
// the composed prompt line as the body
func (r *Renderer) RenderMarkdown() (string, error) {
	var buf bytes.Buffer

	meta := markdownMeta{
		Name:           r.template.Name,
		NegativePrompt: r.template.NegativePrompt,
		DefaultImage:   r.template.DefaultImage,
	}

	// Write frontmatter delimiter
	buf.WriteString("---\n")

	if meta != (markdownMeta{}) {
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(meta); err != nil {
			return "", fmt.Errorf("failed to encode frontmatter: %w", err)
		}
	}

	// Write closing delimiter
	buf.WriteString("---\n")

	content := r.RenderText()
	if content != "" {
		buf.WriteString("\n")
		buf.WriteString(content)
		// Ensure document ends with newline
		if !strings.HasSuffix(content, "\n") {
			buf.WriteString("\n")
		}
	}

	return buf.String(), nil
}
