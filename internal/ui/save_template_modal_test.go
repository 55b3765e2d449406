package ui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestSaveTemplateModal_Prefill(t *testing.T) {
	modal := NewSaveTemplateModal()

	modal.Show("castle", "/tmp/templates")

	if !modal.IsActive() {
		t.Error("Expected modal to be active after Show")
	}
	if modal.IsSubmitted() {
		t.Error("Expected modal not to be submitted after Show")
	}
	if got := modal.nameInput.Value(); got != "castle" {
		t.Errorf("Expected name input 'castle', got '%s'", got)
	}
	if got := modal.folderInput.Value(); got != "/tmp/templates" {
		t.Errorf("Expected folder input '/tmp/templates', got '%s'", got)
	}
}

func TestSaveTemplateModal_Validation(t *testing.T) {
	modal := NewSaveTemplateModal()

	// Empty name is rejected
	modal.Show("", "/tmp/templates")
	modal.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if modal.IsSubmitted() {
		t.Error("Expected empty name to be rejected")
	}
	if modal.errText == "" {
		t.Error("Expected an error message for empty name")
	}

	// Path separators in the name are rejected
	modal.Show("bad/name", "/tmp/templates")
	modal.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if modal.IsSubmitted() {
		t.Error("Expected name with path separator to be rejected")
	}

	// Empty folder is rejected
	modal.Show("castle", "")
	modal.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if modal.IsSubmitted() {
		t.Error("Expected empty folder to be rejected")
	}

	// Valid input submits
	modal.Show("castle", "/tmp/templates")
	modal.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !modal.IsSubmitted() {
		t.Errorf("Expected valid input to submit, got error '%s'", modal.errText)
	}
}

func TestSaveTemplateModal_GetPath(t *testing.T) {
	modal := NewSaveTemplateModal()

	modal.Show("castle", "/tmp/templates")
	expected := filepath.Join("/tmp/templates", "castle.json")
	if got := modal.GetPath(); got != expected {
		t.Errorf("Expected path '%s', got '%s'", expected, got)
	}

	// A typed .json suffix is not doubled
	modal.Show("portrait.json", "/tmp/templates")
	expected = filepath.Join("/tmp/templates", "portrait.json")
	if got := modal.GetPath(); got != expected {
		t.Errorf("Expected path '%s', got '%s'", expected, got)
	}
}

func TestSaveTemplateModal_EscCancels(t *testing.T) {
	modal := NewSaveTemplateModal()

	modal.Show("castle", "/tmp/templates")
	modal.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if modal.IsActive() {
		t.Error("Expected esc to deactivate the modal")
	}
	if modal.IsSubmitted() {
		t.Error("Expected esc not to submit")
	}
}
