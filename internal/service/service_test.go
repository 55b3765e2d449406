package service

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dpshade/prompt-loom/internal/errors"
	"github.com/dpshade/prompt-loom/internal/models"
)

// newTestService builds a service whose app home and scratch folder both live
// under a throwaway directory.
func newTestService(t *testing.T) (*Service, string) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "service-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	scratchDir := filepath.Join(tempDir, "tmp")
	if err := os.MkdirAll(scratchDir, 0755); err != nil {
		t.Fatalf("Failed to create scratch dir: %v", err)
	}

	origHome := os.Getenv("PROMPT_LOOM_DIR")
	origTmp := os.Getenv("TMPDIR")
	os.Setenv("PROMPT_LOOM_DIR", filepath.Join(tempDir, "home"))
	os.Setenv("TMPDIR", scratchDir)
	t.Cleanup(func() {
		os.Setenv("PROMPT_LOOM_DIR", origHome)
		os.Setenv("TMPDIR", origTmp)
		os.RemoveAll(tempDir)
	})

	svc, err := NewService()
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	return svc, tempDir
}

func writePNG(t *testing.T, path string) {
	t.Helper()

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer file.Close()

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.NRGBA{G: 200, A: 255})
	if err := png.Encode(file, img); err != nil {
		t.Fatalf("Failed to encode png: %v", err)
	}
}

func TestServiceSaveAndLoad(t *testing.T) {
	svc, tempDir := newTestService(t)

	template := &models.Template{
		PromptParts:    models.PromptParts{Top: "castle", Bottom: "oil paint"},
		NegativePrompt: "blurry",
	}
	path := filepath.Join(tempDir, "gallery", "knight.json")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create gallery dir: %v", err)
	}

	if err := svc.SaveTemplate(template, path); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}
	if svc.CurrentPath() != path {
		t.Errorf("Expected current path %s, got %s", path, svc.CurrentPath())
	}
	if svc.LastUsedFolder() != filepath.Dir(path) {
		t.Errorf("Expected last used folder %s, got %s", filepath.Dir(path), svc.LastUsedFolder())
	}

	loaded, err := svc.LoadTemplate(path)
	if err != nil {
		t.Fatalf("LoadTemplate failed: %v", err)
	}
	if loaded.PromptParts.Top != "castle" {
		t.Errorf("Expected top part castle, got %q", loaded.PromptParts.Top)
	}
	if loaded.Name != "knight" {
		t.Errorf("Expected name knight, got %q", loaded.Name)
	}
}

func TestServiceResetCurrent(t *testing.T) {
	svc, tempDir := newTestService(t)

	template := &models.Template{PromptParts: models.PromptParts{Top: "sketch"}}
	path := filepath.Join(tempDir, "draft.json")
	if err := svc.SaveTemplate(template, path); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}

	svc.ResetCurrent()
	if svc.CurrentPath() != "" {
		t.Errorf("Expected empty current path, got %s", svc.CurrentPath())
	}
}

func TestServiceBatchRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)

	first := &models.Template{PromptParts: models.PromptParts{Top: "a", Middle: "b", Bottom: "c"}}
	second := &models.Template{PromptParts: models.PromptParts{Top: "second line"}}

	if _, err := svc.AddToBatch(first); err != nil {
		t.Fatalf("AddToBatch failed: %v", err)
	}
	if _, err := svc.AddToBatch(second); err != nil {
		t.Fatalf("AddToBatch failed: %v", err)
	}

	path, err := svc.SaveBatch()
	if err != nil {
		t.Fatalf("SaveBatch failed: %v", err)
	}
	if path != svc.SessionPath() {
		t.Errorf("Expected batch at session path %s, got %s", svc.SessionPath(), path)
	}
	if !strings.HasPrefix(filepath.Base(path), "sd_prompt_") {
		t.Errorf("Expected sd_prompt_ scratch name, got %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read batch file: %v", err)
	}
	want := "a, __________ ,b, __________ ,c\nsecond line\n"
	if string(data) != want {
		t.Errorf("Expected %q, got %q", want, string(data))
	}
}

func TestServiceSaveBatchEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SaveBatch()
	if err == nil {
		t.Fatal("Expected error for empty batch")
	}
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Expected invalid input error, got %v", err)
	}
}

func TestServiceAddEmptyTemplateToBatch(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.AddToBatch(&models.Template{}); err == nil {
		t.Error("Expected error when adding an empty template")
	}
}

func TestServicePreviewTemplate(t *testing.T) {
	svc, tempDir := newTestService(t)

	gallery := filepath.Join(tempDir, "gallery")
	if err := os.MkdirAll(gallery, 0755); err != nil {
		t.Fatalf("Failed to create gallery dir: %v", err)
	}
	path := filepath.Join(gallery, "scene.json")
	template := &models.Template{PromptParts: models.PromptParts{Top: "castle"}}
	if err := svc.SaveTemplate(template, path); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}
	writePNG(t, filepath.Join(gallery, "scene.png"))

	preview, err := svc.PreviewTemplate(path)
	if err != nil {
		t.Fatalf("PreviewTemplate failed: %v", err)
	}
	if len(preview.Candidates) != 1 {
		t.Fatalf("Expected 1 candidate, got %d", len(preview.Candidates))
	}
	if preview.Image == nil {
		t.Fatal("Expected a decoded preview image")
	}
	if preview.ImageName != "scene.png" {
		t.Errorf("Expected preview of scene.png, got %s", preview.ImageName)
	}
	if preview.MissingDefault != nil {
		t.Errorf("Expected no missing default, got %v", preview.MissingDefault)
	}
}

func TestServicePreviewMissingDefaultImage(t *testing.T) {
	svc, tempDir := newTestService(t)

	gallery := filepath.Join(tempDir, "gallery")
	if err := os.MkdirAll(gallery, 0755); err != nil {
		t.Fatalf("Failed to create gallery dir: %v", err)
	}
	path := filepath.Join(gallery, "scene.json")
	template := &models.Template{
		PromptParts:  models.PromptParts{Top: "castle"},
		DefaultImage: "gone.png",
	}
	if err := svc.SaveTemplate(template, path); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}
	writePNG(t, filepath.Join(gallery, "scene.png"))

	preview, err := svc.PreviewTemplate(path)
	if err != nil {
		t.Fatalf("PreviewTemplate failed: %v", err)
	}
	if preview.MissingDefault == nil {
		t.Fatal("Expected a missing default marker")
	}
	if !errors.HasCode(preview.MissingDefault, errors.ErrCodeNotFound) {
		t.Errorf("Expected not found error, got %v", preview.MissingDefault)
	}
	if preview.Image != nil {
		t.Error("Expected no preview image when the recorded default is gone")
	}
	if len(preview.Candidates) != 1 {
		t.Errorf("Expected candidate list to stay usable, got %d entries", len(preview.Candidates))
	}
}

func TestServiceAssignDefaultImageSingleCandidate(t *testing.T) {
	svc, tempDir := newTestService(t)

	gallery := filepath.Join(tempDir, "gallery")
	if err := os.MkdirAll(gallery, 0755); err != nil {
		t.Fatalf("Failed to create gallery dir: %v", err)
	}
	path := filepath.Join(gallery, "scene.json")
	template := &models.Template{PromptParts: models.PromptParts{Top: "castle"}}
	if err := svc.SaveTemplate(template, path); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}
	writePNG(t, filepath.Join(gallery, "scene.png"))

	choices, assigned, err := svc.AssignDefaultImage(template)
	if err != nil {
		t.Fatalf("AssignDefaultImage failed: %v", err)
	}
	if !assigned {
		t.Fatal("Expected the lone image to be assigned")
	}
	if len(choices) != 0 {
		t.Errorf("Expected no choices, got %d", len(choices))
	}

	reloaded, err := svc.LoadTemplate(path)
	if err != nil {
		t.Fatalf("LoadTemplate failed: %v", err)
	}
	if reloaded.DefaultImage != "scene.png" {
		t.Errorf("Expected persisted default scene.png, got %q", reloaded.DefaultImage)
	}
}

func TestServiceAssignDefaultImageSeveralCandidates(t *testing.T) {
	svc, tempDir := newTestService(t)

	gallery := filepath.Join(tempDir, "gallery")
	if err := os.MkdirAll(gallery, 0755); err != nil {
		t.Fatalf("Failed to create gallery dir: %v", err)
	}
	path := filepath.Join(gallery, "scene.json")
	template := &models.Template{PromptParts: models.PromptParts{Top: "castle"}}
	if err := svc.SaveTemplate(template, path); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}
	writePNG(t, filepath.Join(gallery, "scene.png"))
	writePNG(t, filepath.Join(gallery, "scene-02.png"))

	choices, assigned, err := svc.AssignDefaultImage(template)
	if err != nil {
		t.Fatalf("AssignDefaultImage failed: %v", err)
	}
	if assigned {
		t.Error("Expected no auto-assignment with several candidates")
	}
	if len(choices) != 2 {
		t.Fatalf("Expected 2 choices, got %d", len(choices))
	}
	if template.DefaultImage != "" {
		t.Errorf("Expected default to stay unset, got %q", template.DefaultImage)
	}
}

func TestServiceSearchTemplates(t *testing.T) {
	svc, _ := newTestService(t)

	refs := []models.TemplateRef{
		{Name: "portrait-knight"},
		{Name: "landscape"},
		{Name: "port-07"},
	}

	results := svc.SearchTemplates("port", refs)
	if len(results) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(results))
	}
	for _, ref := range results {
		if ref.Name == "landscape" {
			t.Error("Expected landscape to be filtered out")
		}
	}

	if got := svc.SearchTemplates("", refs); len(got) != 3 {
		t.Errorf("Expected empty query to keep all refs, got %d", len(got))
	}
}

func TestServiceCloseRemovesScratchFile(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.AddToBatch(&models.Template{PromptParts: models.PromptParts{Top: "line"}}); err != nil {
		t.Fatalf("AddToBatch failed: %v", err)
	}
	path, err := svc.SaveBatch()
	if err != nil {
		t.Fatalf("SaveBatch failed: %v", err)
	}

	svc.Close()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected scratch file to be removed on close")
	}
}
