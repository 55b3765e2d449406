// Package service owns the application state: the template store, the batch
// list, the session scratch file, and the user's folder preferences. The UI
// layer calls into it and never touches the filesystem directly.
package service

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/sahilm/fuzzy"

	"github.com/dpshade/prompt-loom/internal/batch"
	"github.com/dpshade/prompt-loom/internal/config"
	"github.com/dpshade/prompt-loom/internal/errors"
	"github.com/dpshade/prompt-loom/internal/media"
	"github.com/dpshade/prompt-loom/internal/models"
	"github.com/dpshade/prompt-loom/internal/storage"
)

// Service provides business logic for template management
type Service struct {
	store    *storage.Store
	session  *storage.Session
	settings *config.Store
	batch    *batch.List

	currentPath string // file path of the template being edited, if saved
}

// NewService creates a new service instance
func NewService() (*Service, error) {
	settings, err := config.NewStore()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize settings: %w", err)
	}

	return &Service{
		store:    storage.NewStore(),
		session:  storage.NewSession(),
		settings: settings,
		batch:    batch.NewList(),
	}, nil
}

// SweepOrphans removes scratch files left behind by crashed runs and returns
// how many were cleared
func (s *Service) SweepOrphans() int {
	return s.session.SweepOrphans()
}

// LoadTemplate reads a template from disk and remembers its folder as the
// last used one
func (s *Service) LoadTemplate(path string) (*models.Template, error) {
	template, err := s.store.LoadTemplate(path)
	if err != nil {
		return nil, err
	}

	s.currentPath = template.FilePath
	s.rememberFolder(filepath.Dir(template.FilePath))
	return template, nil
}

// SaveTemplate writes a template to disk and remembers its folder
func (s *Service) SaveTemplate(template *models.Template, path string) error {
	if err := s.store.SaveTemplate(template, path); err != nil {
		return err
	}

	s.currentPath = template.FilePath
	s.rememberFolder(filepath.Dir(template.FilePath))
	return nil
}

// ListTemplates returns the template files in a folder, sorted by name
func (s *Service) ListTemplates(dir string) ([]models.TemplateRef, error) {
	return s.store.ListTemplates(dir)
}

// SearchTemplates filters a directory listing by fuzzy-matching names
func (s *Service) SearchTemplates(query string, refs []models.TemplateRef) []models.TemplateRef {
	if query == "" {
		return refs
	}

	var searchStrings []string
	for _, ref := range refs {
		searchStrings = append(searchStrings, ref.Name)
	}

	matches := fuzzy.Find(query, searchStrings)

	var results []models.TemplateRef
	for _, match := range matches {
		results = append(results, refs[match.Index])
	}
	return results
}

// CurrentPath returns the file path of the template being edited, empty for
// an unsaved one
func (s *Service) CurrentPath() string {
	return s.currentPath
}

// ResetCurrent forgets the file association, for starting a fresh template
func (s *Service) ResetCurrent() {
	s.currentPath = ""
}

// FindCandidates ranks the media files sharing the template's folder
func (s *Service) FindCandidates(template *models.Template) ([]media.Candidate, error) {
	if template.FilePath == "" {
		return nil, nil
	}
	return media.FindCandidates(template.FilePath, template.DefaultImage)
}

// Preview holds everything the browser shows for one template
type Preview struct {
	Template   *models.Template
	Candidates []media.Candidate
	Image      image.Image
	ImageName  string

	// MissingDefault is set when the recorded default image is gone from
	// the folder; the candidate list stays usable
	MissingDefault error
}

// PreviewTemplate loads a template together with its ranked media candidates
// and a decoded preview image when one is available
func (s *Service) PreviewTemplate(path string) (*Preview, error) {
	template, err := s.store.LoadTemplate(path)
	if err != nil {
		return nil, err
	}

	preview := &Preview{Template: template}

	candidates, err := media.FindCandidates(template.FilePath, template.DefaultImage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to scan media folder: %v\n", err)
		return preview, nil
	}
	preview.Candidates = candidates

	if template.DefaultImage != "" && !hasDefault(candidates) {
		preview.MissingDefault = errors.NotFoundError(template.DefaultImage)
		return preview, nil
	}

	for _, candidate := range candidates {
		if candidate.Kind != media.KindImage {
			continue
		}
		decoder, ok := media.DecoderFor(candidate.Name)
		if !ok {
			continue
		}
		img, err := decoder.Decode(candidate.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to decode %s: %v\n", candidate.Name, err)
			continue
		}
		preview.Image = img
		preview.ImageName = candidate.Name
		break
	}

	return preview, nil
}

func hasDefault(candidates []media.Candidate) bool {
	for _, c := range candidates {
		if c.IsDefault {
			return true
		}
	}
	return false
}

// AssignDefaultImage fills in a freshly saved template's default image. With
// exactly one image candidate it records and persists it; with more it
// returns the choices for the caller to pick from.
func (s *Service) AssignDefaultImage(template *models.Template) ([]media.Candidate, bool, error) {
	if template.FilePath == "" || template.DefaultImage != "" {
		return nil, false, nil
	}

	candidates, err := media.FindCandidates(template.FilePath, "")
	if err != nil {
		return nil, false, err
	}

	var images []media.Candidate
	for _, c := range candidates {
		if c.Kind == media.KindImage {
			images = append(images, c)
		}
	}

	switch len(images) {
	case 0:
		return nil, false, nil
	case 1:
		if err := s.SetDefaultImage(template, images[0].Name); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	default:
		return images, false, nil
	}
}

// SetDefaultImage records a media file as the template's default and persists
// the change. The name must be bare, not a path.
func (s *Service) SetDefaultImage(template *models.Template, name string) error {
	template.DefaultImage = name
	return s.SaveTemplate(template, template.FilePath)
}

// Batch returns the in-memory batch list the service owns
func (s *Service) Batch() *batch.List {
	return s.batch
}

// AddToBatch composes the template's parts into a new batch line
func (s *Service) AddToBatch(template *models.Template) (models.BatchLine, error) {
	parts := template.PromptParts
	return s.batch.Add(parts.Top, parts.Middle, parts.Bottom)
}

// SaveBatch writes the batch lines to the session scratch file and returns
// its path
func (s *Service) SaveBatch() (string, error) {
	if s.batch.Len() == 0 {
		return "", errors.InvalidInputError("batch is empty")
	}

	path := s.session.Path()
	if err := s.store.ExportBatch(s.batch.Rendered(), path); err != nil {
		return "", err
	}
	return path, nil
}

// ExportBatchTo writes the batch lines to an explicit path
func (s *Service) ExportBatchTo(path string) error {
	if s.batch.Len() == 0 {
		return errors.InvalidInputError("batch is empty")
	}
	return s.store.ExportBatch(s.batch.Rendered(), path)
}

// SessionPath returns this run's scratch file path
func (s *Service) SessionPath() string {
	return s.session.Path()
}

// RememberFolder persists dir as the last used template folder, for flows
// like the browser's folder switch that touch no template file
func (s *Service) RememberFolder(dir string) {
	s.rememberFolder(dir)
}

// DefaultTemplateFolder returns the user's preferred template folder
func (s *Service) DefaultTemplateFolder() string {
	return s.settings.DefaultTemplateFolder()
}

// LastUsedFolder returns the folder of the most recent load or save
func (s *Service) LastUsedFolder() string {
	return s.settings.LastUsedFolder()
}

// SetDefaultTemplateFolder persists a new preferred template folder
func (s *Service) SetDefaultTemplateFolder(dir string) error {
	return s.settings.SetDefaultTemplateFolder(dir)
}

// Close removes the session scratch file
func (s *Service) Close() {
	s.session.Cleanup()
}

func (s *Service) rememberFolder(dir string) {
	if err := s.settings.SetLastUsedFolder(dir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to remember folder %s: %v\n", dir, err)
	}
}
