// Package config manages persisted user preferences.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dpshade/prompt-loom/internal/errors"
)

const settingsFile = "settings.json"

// Settings holds the preferences that survive process restarts.
type Settings struct {
	DefaultTemplateFolder string `json:"default_template_folder"`
	LastUsedFolder        string `json:"last_used_folder"`
}

// Store persists Settings as a JSON document under the app home directory.
// Reads happen once at startup; every change writes through immediately.
type Store struct {
	dir      string
	filePath string
	settings Settings
}

// NewStore resolves the app home directory (PROMPT_LOOM_DIR override, else
// ~/.prompt-loom), creates it, and loads any existing settings. A missing
// settings file yields defaults; a corrupt one degrades to defaults with a
// warning rather than blocking startup.
func NewStore() (*Store, error) {
	dir := os.Getenv("PROMPT_LOOM_DIR")
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, ".prompt-loom")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	store := &Store{
		dir:      dir,
		filePath: filepath.Join(dir, settingsFile),
	}

	if err := store.load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load settings, using defaults: %v\n", err)
		store.settings = Settings{}
	}

	return store, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.settings = Settings{}
			return nil
		}
		return fmt.Errorf("failed to read settings file: %w", err)
	}

	var loaded Settings
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to parse settings JSON: %w", err)
	}

	s.settings = loaded
	return nil
}

// save writes the settings atomically: marshal into a temp file in the same
// directory, then rename over the live file, so a crash mid-write can never
// leave a half-written settings document.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.settings, "", "  ")
	if err != nil {
		return errors.WriteError("marshal settings", err)
	}

	tmp, err := os.CreateTemp(s.dir, settingsFile+".tmp-*")
	if err != nil {
		return errors.WriteError("create settings temp file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.WriteError("write settings", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.WriteError("close settings temp file", err)
	}
	if err := os.Rename(tmpName, s.filePath); err != nil {
		os.Remove(tmpName)
		return errors.WriteError("replace settings file", err)
	}

	return nil
}

// Settings returns a copy of the current settings.
func (s *Store) Settings() Settings {
	return s.settings
}

// Dir returns the app home directory holding settings and logs.
func (s *Store) Dir() string {
	return s.dir
}

// DefaultTemplateFolder returns the preferred template folder, falling back
// to the user's home directory when none has been chosen yet.
func (s *Store) DefaultTemplateFolder() string {
	if s.settings.DefaultTemplateFolder != "" {
		return s.settings.DefaultTemplateFolder
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// LastUsedFolder returns the folder of the most recent template operation,
// falling back to the default template folder.
func (s *Store) LastUsedFolder() string {
	if s.settings.LastUsedFolder != "" {
		return s.settings.LastUsedFolder
	}
	return s.DefaultTemplateFolder()
}

// SetDefaultTemplateFolder records and persists a new default template folder.
func (s *Store) SetDefaultTemplateFolder(path string) error {
	if s.settings.DefaultTemplateFolder == path {
		return nil
	}
	s.settings.DefaultTemplateFolder = path
	return s.save()
}

// SetLastUsedFolder records and persists the folder of the most recent
// template operation.
func (s *Store) SetLastUsedFolder(path string) error {
	if s.settings.LastUsedFolder == path {
		return nil
	}
	s.settings.LastUsedFolder = path
	return s.save()
}
