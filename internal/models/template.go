package models

import (
	"strings"
	"time"
)

// PromptParts holds the three text segments a prompt is composed from.
type PromptParts struct {
	Top    string `json:"top"`
	Middle string `json:"middle"`
	Bottom string `json:"bottom"`
}

// Template represents one saved prompt template document.
//
// A template is never mutated in place: loading one replaces the in-memory
// form state, saving writes a new or overwritten file. DefaultImage, when
// set, is a bare filename referring to a file next to the template JSON,
// never a path.
type Template struct {
	PromptParts    PromptParts `json:"prompt_parts"`
	NegativePrompt string      `json:"negative_prompt"`
	DefaultImage   string      `json:"default_image,omitempty"`

	// Derived fields, never serialized
	Name     string `json:"-"` // filename stem
	FilePath string `json:"-"` // path the template was loaded from
}

// IsEmpty reports whether every stored text field is blank.
func (t Template) IsEmpty() bool {
	return strings.TrimSpace(t.PromptParts.Top) == "" &&
		strings.TrimSpace(t.PromptParts.Middle) == "" &&
		strings.TrimSpace(t.PromptParts.Bottom) == "" &&
		strings.TrimSpace(t.NegativePrompt) == ""
}

// TemplateRef is a directory listing entry for a template file. The browser
// lists refs and parses the full template lazily, on highlight.
type TemplateRef struct {
	Name     string // filename stem
	FilePath string
	ModTime  time.Time
}

// Implement list.Item interface for bubbles list component

// FilterValue returns the value used for filtering in lists
func (r TemplateRef) FilterValue() string {
	return cleanString(r.Name)
}

// Title satisfies the list.Item interface
func (r TemplateRef) Title() string {
	return cleanString(r.Name)
}

// Description satisfies the list.Item interface
func (r TemplateRef) Description() string {
	if r.ModTime.IsZero() {
		return ""
	}
	return "Last edited: " + r.ModTime.Format("2006-01-02 15:04")
}

// cleanString removes problematic characters that might cause rendering issues
func cleanString(s string) string {
	if s == "" {
		return ""
	}

	// Remove any control characters, newlines, tabs that could break rendering
	cleaned := ""
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			cleaned += " "
		} else if r >= 32 && r != 127 { // Keep printable ASCII + unicode
			cleaned += string(r)
		}
	}

	// Collapse multiple spaces
	for cleaned != strings.ReplaceAll(cleaned, "  ", " ") {
		cleaned = strings.ReplaceAll(cleaned, "  ", " ")
	}

	return strings.TrimSpace(cleaned)
}
