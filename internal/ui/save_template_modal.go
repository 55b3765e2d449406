package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SaveTemplateModal prompts for a template name and destination folder
type SaveTemplateModal struct {
	nameInput   textinput.Model
	folderInput textinput.Model
	isActive    bool
	submitted   bool
	focusIndex  int // 0=name, 1=folder
	errText     string
	width       int
	height      int
}

// NewSaveTemplateModal creates a new save template modal
func NewSaveTemplateModal() *SaveTemplateModal {
	nameInput := textinput.New()
	nameInput.Placeholder = "template name"
	nameInput.CharLimit = 80
	nameInput.Width = 50

	folderInput := textinput.New()
	folderInput.Placeholder = "destination folder"
	folderInput.CharLimit = 200
	folderInput.Width = 50

	return &SaveTemplateModal{
		nameInput:   nameInput,
		folderInput: folderInput,
	}
}

// Show activates the modal with prefilled values
func (m *SaveTemplateModal) Show(name, folder string) {
	m.nameInput.SetValue(name)
	m.folderInput.SetValue(folder)
	m.isActive = true
	m.submitted = false
	m.errText = ""
	m.focusIndex = 0
	m.updateFocus()
}

// Hide deactivates the modal
func (m *SaveTemplateModal) Hide() {
	m.isActive = false
	m.submitted = false
}

// IsActive returns whether the modal is active
func (m *SaveTemplateModal) IsActive() bool {
	return m.isActive
}

// IsSubmitted returns whether a valid name and folder were confirmed
func (m *SaveTemplateModal) IsSubmitted() bool {
	return m.submitted
}

// Name returns the cleaned template name
func (m *SaveTemplateModal) Name() string {
	name := strings.TrimSpace(m.nameInput.Value())
	return strings.TrimSuffix(name, ".json")
}

// Folder returns the destination folder
func (m *SaveTemplateModal) Folder() string {
	return strings.TrimSpace(m.folderInput.Value())
}

// GetPath returns the full file path the template will be written to
func (m *SaveTemplateModal) GetPath() string {
	return filepath.Join(m.Folder(), m.Name()+".json")
}

// Update handles input for the modal
func (m *SaveTemplateModal) Update(msg tea.Msg) tea.Cmd {
	if !m.isActive {
		return nil
	}

	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.Hide()
			return nil

		case "tab", "shift+tab", "down", "up":
			m.focusIndex = (m.focusIndex + 1) % 2
			m.updateFocus()
			return nil

		case "enter":
			name := m.Name()
			switch {
			case name == "":
				m.errText = "Name is required"
			case strings.ContainsAny(name, `/\`):
				m.errText = "Name must not contain path separators"
			case m.Folder() == "":
				m.errText = "Folder is required"
			default:
				m.errText = ""
				m.submitted = true
			}
			return nil
		}

		// Update the focused field
		switch m.focusIndex {
		case 0:
			m.nameInput, cmd = m.nameInput.Update(msg)
		case 1:
			m.folderInput, cmd = m.folderInput.Update(msg)
		}
	}

	return cmd
}

// updateFocus manages focus between the two input fields
func (m *SaveTemplateModal) updateFocus() {
	m.nameInput.Blur()
	m.folderInput.Blur()

	switch m.focusIndex {
	case 0:
		m.nameInput.Focus()
	case 1:
		m.folderInput.Focus()
	}
}

// Resize updates the modal size
func (m *SaveTemplateModal) Resize(width, height int) {
	m.width = width
	m.height = height

	inputWidth := min(width-20, 60)
	if inputWidth < 20 {
		inputWidth = 20
	}
	m.nameInput.Width = inputWidth
	m.folderInput.Width = inputWidth
}

// View renders the modal
func (m *SaveTemplateModal) View() string {
	if !m.isActive {
		return ""
	}

	// Modal styles - use terminal default colors
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		Width(70)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		MarginBottom(1)

	labelStyle := lipgloss.NewStyle().
		Bold(true)

	focusedLabelStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12"))

	helpStyle := lipgloss.NewStyle().
		Italic(true).
		MarginTop(1).
		Foreground(lipgloss.Color("8"))

	var content []string

	content = append(content, titleStyle.Render("Save Template"))
	content = append(content, "")

	nameLabel := "Name:"
	if m.focusIndex == 0 {
		content = append(content, focusedLabelStyle.Render("▶ "+nameLabel))
	} else {
		content = append(content, labelStyle.Render(nameLabel))
	}
	content = append(content, m.nameInput.View())
	content = append(content, "")

	folderLabel := "Folder:"
	if m.focusIndex == 1 {
		content = append(content, focusedLabelStyle.Render("▶ "+folderLabel))
	} else {
		content = append(content, labelStyle.Render(folderLabel))
	}
	content = append(content, m.folderInput.View())

	if m.Name() != "" && m.Folder() != "" {
		pathStyle := lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("8"))
		content = append(content, pathStyle.Render(fmt.Sprintf("Will write %s", m.GetPath())))
	}

	if m.errText != "" {
		errStyle := lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("9"))
		content = append(content, errStyle.Render("✗ "+m.errText))
	}

	content = append(content, helpStyle.Render("Tab: switch field • Enter: save • Esc: cancel"))

	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}
