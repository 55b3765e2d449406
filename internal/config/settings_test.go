package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSettingsSurviveRestart(t *testing.T) {
	origDir := os.Getenv("PROMPT_LOOM_DIR")
	defer os.Setenv("PROMPT_LOOM_DIR", origDir)

	tempDir, err := os.MkdirTemp("", "prompt-loom-settings-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)
	os.Setenv("PROMPT_LOOM_DIR", tempDir)

	store, err := NewStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if err := store.SetDefaultTemplateFolder("/srv/templates"); err != nil {
		t.Fatalf("Failed to set default folder: %v", err)
	}
	if err := store.SetLastUsedFolder("/srv/templates/characters"); err != nil {
		t.Fatalf("Failed to set last used folder: %v", err)
	}

	// Simulate a restart with a fresh store
	reopened, err := NewStore()
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}

	if got := reopened.Settings().DefaultTemplateFolder; got != "/srv/templates" {
		t.Errorf("Expected default folder '/srv/templates', got '%s'", got)
	}
	if got := reopened.Settings().LastUsedFolder; got != "/srv/templates/characters" {
		t.Errorf("Expected last used folder '/srv/templates/characters', got '%s'", got)
	}
}

func TestMissingSettingsFileYieldsDefaults(t *testing.T) {
	origDir := os.Getenv("PROMPT_LOOM_DIR")
	defer os.Setenv("PROMPT_LOOM_DIR", origDir)

	tempDir, err := os.MkdirTemp("", "prompt-loom-settings-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)
	os.Setenv("PROMPT_LOOM_DIR", tempDir)

	store, err := NewStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	settings := store.Settings()
	if settings.DefaultTemplateFolder != "" || settings.LastUsedFolder != "" {
		t.Errorf("Expected zero-value settings, got %+v", settings)
	}
}

func TestCorruptSettingsFileDegradesToDefaults(t *testing.T) {
	origDir := os.Getenv("PROMPT_LOOM_DIR")
	defer os.Setenv("PROMPT_LOOM_DIR", origDir)

	tempDir, err := os.MkdirTemp("", "prompt-loom-settings-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)
	os.Setenv("PROMPT_LOOM_DIR", tempDir)

	corrupt := filepath.Join(tempDir, "settings.json")
	if err := os.WriteFile(corrupt, []byte("{not valid json"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt settings: %v", err)
	}

	store, err := NewStore()
	if err != nil {
		t.Fatalf("Expected corrupt settings to degrade, got error: %v", err)
	}
	if settings := store.Settings(); settings.DefaultTemplateFolder != "" {
		t.Errorf("Expected defaults after corrupt file, got %+v", settings)
	}

	// The store must still be writable afterwards
	if err := store.SetDefaultTemplateFolder("/recovered"); err != nil {
		t.Fatalf("Failed to save over corrupt settings: %v", err)
	}
	reopened, err := NewStore()
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	if got := reopened.Settings().DefaultTemplateFolder; got != "/recovered" {
		t.Errorf("Expected '/recovered', got '%s'", got)
	}
}

func TestFolderFallbacks(t *testing.T) {
	origDir := os.Getenv("PROMPT_LOOM_DIR")
	defer os.Setenv("PROMPT_LOOM_DIR", origDir)

	tempDir, err := os.MkdirTemp("", "prompt-loom-settings-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)
	os.Setenv("PROMPT_LOOM_DIR", tempDir)

	store, err := NewStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("No home directory available: %v", err)
	}
	if got := store.DefaultTemplateFolder(); got != home {
		t.Errorf("Expected home fallback '%s', got '%s'", home, got)
	}
	if got := store.LastUsedFolder(); got != home {
		t.Errorf("Expected last-used to fall back to default, got '%s'", got)
	}

	if err := store.SetDefaultTemplateFolder("/srv/templates"); err != nil {
		t.Fatalf("Failed to set default folder: %v", err)
	}
	if got := store.LastUsedFolder(); got != "/srv/templates" {
		t.Errorf("Expected last-used to track default folder, got '%s'", got)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	origDir := os.Getenv("PROMPT_LOOM_DIR")
	defer os.Setenv("PROMPT_LOOM_DIR", origDir)

	tempDir, err := os.MkdirTemp("", "prompt-loom-settings-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)
	os.Setenv("PROMPT_LOOM_DIR", tempDir)

	store, err := NewStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := store.SetLastUsedFolder(filepath.Join("/srv", "run", string(rune('a'+i)))); err != nil {
			t.Fatalf("Failed to save settings: %v", err)
		}
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("Failed to read config dir: %v", err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".tmp-") {
			t.Errorf("Expected no leftover temp files, found '%s'", entry.Name())
		}
	}
}
