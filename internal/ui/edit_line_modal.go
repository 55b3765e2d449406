package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dpshade/prompt-loom/internal/batch"
	"github.com/dpshade/prompt-loom/internal/models"
)

var editLineLabels = [3]string{"Top:", "Middle:", "Bottom:"}

// EditLineModal edits the three source segments of one batch line
type EditLineModal struct {
	inputs     [3]textinput.Model
	index      int
	isActive   bool
	submitted  bool
	focusIndex int
	errText    string
}

// NewEditLineModal creates a new batch line editor
func NewEditLineModal() *EditLineModal {
	m := &EditLineModal{}
	for i := range m.inputs {
		input := textinput.New()
		input.CharLimit = 0
		input.Width = 50
		m.inputs[i] = input
	}
	return m
}

// Show activates the modal with the line's current segments
func (m *EditLineModal) Show(index int, parts models.PromptParts) {
	m.index = index
	m.inputs[0].SetValue(parts.Top)
	m.inputs[1].SetValue(parts.Middle)
	m.inputs[2].SetValue(parts.Bottom)
	m.isActive = true
	m.submitted = false
	m.errText = ""
	m.focusIndex = 0
	m.updateFocus()
}

// Hide deactivates the modal
func (m *EditLineModal) Hide() {
	m.isActive = false
	m.submitted = false
}

// IsActive returns whether the modal is active
func (m *EditLineModal) IsActive() bool {
	return m.isActive
}

// IsSubmitted returns whether the edit was confirmed
func (m *EditLineModal) IsSubmitted() bool {
	return m.submitted
}

// Index returns the batch line being edited
func (m *EditLineModal) Index() int {
	return m.index
}

// Parts returns the edited segments
func (m *EditLineModal) Parts() models.PromptParts {
	return models.PromptParts{
		Top:    m.inputs[0].Value(),
		Middle: m.inputs[1].Value(),
		Bottom: m.inputs[2].Value(),
	}
}

// Update handles input for the modal
func (m *EditLineModal) Update(msg tea.Msg) tea.Cmd {
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

		case "tab", "down":
			m.focusIndex = (m.focusIndex + 1) % 3
			m.updateFocus()
			return nil

		case "shift+tab", "up":
			m.focusIndex = (m.focusIndex + 2) % 3
			m.updateFocus()
			return nil

		case "enter":
			parts := m.Parts()
			if batch.Compose(parts.Top, parts.Middle, parts.Bottom) == "" {
				m.errText = "Edited line would be empty"
				return nil
			}
			m.errText = ""
			m.submitted = true
			return nil
		}

		m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	}

	return cmd
}

// updateFocus manages focus between the three input fields
func (m *EditLineModal) updateFocus() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.inputs[m.focusIndex].Focus()
}

// Resize updates the modal size
func (m *EditLineModal) Resize(width, height int) {
	inputWidth := min(width-20, 60)
	if inputWidth < 20 {
		inputWidth = 20
	}
	for i := range m.inputs {
		m.inputs[i].Width = inputWidth
	}
}

// View renders the modal
func (m *EditLineModal) View() string {
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

	content = append(content, titleStyle.Render(fmt.Sprintf("Edit Batch Line %d", m.index+1)))
	content = append(content, "")

	for i, label := range editLineLabels {
		if m.focusIndex == i {
			content = append(content, focusedLabelStyle.Render("▶ "+label))
		} else {
			content = append(content, labelStyle.Render(label))
		}
		content = append(content, m.inputs[i].View())
		content = append(content, "")
	}

	parts := m.Parts()
	if rendered := batch.Compose(parts.Top, parts.Middle, parts.Bottom); rendered != "" {
		previewStyle := lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("8"))
		content = append(content, previewStyle.Render(rendered))
	}

	if m.errText != "" {
		errStyle := lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("9"))
		content = append(content, errStyle.Render("✗ "+m.errText))
	}

	content = append(content, helpStyle.Render("Tab: switch field • Enter: apply • Esc: cancel"))

	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}
