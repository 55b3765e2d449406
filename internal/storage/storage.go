package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dpshade/prompt-loom/internal/errors"
	"github.com/dpshade/prompt-loom/internal/models"
)

// Store handles all file system operations for template documents and the
// batch export file. Templates live in user-chosen folders, so every
// operation takes explicit paths instead of resolving against a library root.
type Store struct {
	cache *TemplateCache
}

// NewStore creates a new store instance
func NewStore() *Store {
	return &Store{
		cache: NewTemplateCache(),
	}
}

// SaveTemplate serializes the template to pretty-printed JSON at path,
// creating or overwriting exactly one file. Parent directories are not
// created: an invalid path fails with WriteError instead of being repaired.
// On success the template's derived Name and FilePath are updated to match
// the written file.
func (s *Store) SaveTemplate(template *models.Template, path string) error {
	if template.DefaultImage != "" && template.DefaultImage != filepath.Base(template.DefaultImage) {
		return errors.InvalidInputError("Default image must be a bare filename, not a path").
			WithContext("default_image", template.DefaultImage)
	}

	data, err := json.MarshalIndent(template, "", "  ")
	if err != nil {
		return errors.WriteError("serialize template", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WriteError("save template", err).WithContext("path", path)
	}

	template.Name = templateStem(path)
	template.FilePath = path
	s.cache.Invalidate(path)
	return nil
}

// rawTemplate is the loose decode target for template JSON. The pointer on
// PromptParts distinguishes an absent required field from an empty one.
type rawTemplate struct {
	PromptParts    *models.PromptParts `json:"prompt_parts"`
	NegativePrompt string              `json:"negative_prompt"`
	DefaultImage   string              `json:"default_image"`
}

// LoadTemplate parses the JSON document at path into a strict Template.
// Malformed JSON fails with ParseError; an absent prompt_parts object fails
// with MissingFieldError. negative_prompt defaults to "" and default_image to
// unset; unknown fields are ignored. A failed load returns no template, so
// caller state is never partially populated.
func (s *Store) LoadTemplate(path string) (*models.Template, error) {
	if info, err := os.Stat(path); err == nil {
		if cached, ok := s.cache.Get(path, info); ok {
			return cached, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	template, err := parseTemplate(data, path)
	if err != nil {
		return nil, err
	}

	if info, err := os.Stat(path); err == nil {
		s.cache.Set(path, info, template)
	}

	return template, nil
}

// parseTemplate validates loose JSON into the strict template record.
func parseTemplate(data []byte, path string) (*models.Template, error) {
	var raw rawTemplate
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.ParseError(path, err)
	}

	if raw.PromptParts == nil {
		return nil, errors.MissingFieldError("prompt_parts", path)
	}

	return &models.Template{
		PromptParts:    *raw.PromptParts,
		NegativePrompt: raw.NegativePrompt,
		DefaultImage:   raw.DefaultImage,
		Name:           templateStem(path),
		FilePath:       path,
	}, nil
}

// ListTemplates returns refs for the *.json files directly inside dir, sorted
// case-insensitively by name. Templates are not parsed here; the browser
// parses lazily on highlight.
func (s *Store) ListTemplates(dir string) ([]models.TemplateRef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read templates folder: %w", err)
	}

	var refs []models.TemplateRef
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		ref := models.TemplateRef{
			Name:     templateStem(entry.Name()),
			FilePath: filepath.Join(dir, entry.Name()),
		}
		if info, err := entry.Info(); err == nil {
			ref.ModTime = info.ModTime()
		}
		refs = append(refs, ref)
	}

	sort.Slice(refs, func(i, j int) bool {
		return strings.ToLower(refs[i].Name) < strings.ToLower(refs[j].Name)
	})

	return refs, nil
}

// ExportBatch writes one composed line per text row to path, newline
// terminated, no header. Write failures surface as WriteError, same as
// template saves.
func (s *Store) ExportBatch(lines []string, path string) error {
	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.WriteError("export batch", err).WithContext("path", path)
	}

	return nil
}

// templateStem returns the filename without its extension, the unit the
// matcher compares media files against.
func templateStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
