package renderer

import (
	"strings"
	"testing"

	"github.com/dpshade/prompt-loom/internal/models"
)

func sampleTemplate() *models.Template {
	return &models.Template{
		PromptParts: models.PromptParts{
			Top:    "castle, moat",
			Bottom: "oil paint",
		},
		NegativePrompt: "blurry",
		DefaultImage:   "knight.png",
		Name:           "knight",
	}
}

func TestRenderText(t *testing.T) {
	r := NewRenderer(sampleTemplate())

	got := r.RenderText()
	want := "castle, moat, __________ ,oil paint"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRenderJSON(t *testing.T) {
	r := NewRenderer(sampleTemplate())

	got, err := r.RenderJSON()
	if err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	want := "{\n  \"prompt\": \"castle, moat, __________ ,oil paint\",\n  \"negative_prompt\": \"blurry\"\n}"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRenderJSONEmptyNegative(t *testing.T) {
	template := sampleTemplate()
	template.NegativePrompt = ""
	r := NewRenderer(template)

	got, err := r.RenderJSON()
	if err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	if !strings.Contains(got, "\"negative_prompt\": \"\"") {
		t.Errorf("Expected empty negative_prompt to stay present, got %q", got)
	}
}

func TestRenderMarkdown(t *testing.T) {
	r := NewRenderer(sampleTemplate())

	got, err := r.RenderMarkdown()
	if err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	want := "---\n" +
		"name: knight\n" +
		"negative_prompt: blurry\n" +
		"default_image: knight.png\n" +
		"---\n" +
		"\n" +
		"castle, moat, __________ ,oil paint\n"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRenderMarkdownBareTemplate(t *testing.T) {
	r := NewRenderer(&models.Template{
		PromptParts: models.PromptParts{Top: "sketch"},
	})

	got, err := r.RenderMarkdown()
	if err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	want := "---\n---\n\nsketch\n"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRenderMarkdownEmptyTemplate(t *testing.T) {
	r := NewRenderer(&models.Template{})

	got, err := r.RenderMarkdown()
	if err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	want := "---\n---\n"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
