package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dpshade/prompt-loom/internal/media"
)

// ImageSelectorModal provides a modal interface for picking a template's
// default image from the candidates in its folder
type ImageSelectorModal struct {
	list           list.Model
	isActive       bool
	width          int
	height         int
	applyRequested bool
	chosen         string
}

// candidateItem implements the list.Item interface for image selection
type candidateItem struct {
	candidate media.Candidate
	current   bool
}

func (c candidateItem) FilterValue() string {
	return c.candidate.Name
}

// candidateItemDelegate handles rendering of candidate items
type candidateItemDelegate struct{}

func (d candidateItemDelegate) Height() int                               { return 2 }
func (d candidateItemDelegate) Spacing() int                              { return 1 }
func (d candidateItemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d candidateItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(candidateItem)
	if !ok {
		return
	}

	var title string
	if item.current {
		title = fmt.Sprintf("✓ %s", item.candidate.Name)
	} else {
		title = fmt.Sprintf("  %s", item.candidate.Name)
	}

	desc := item.candidate.Kind.String()
	if item.current {
		desc += " (current default)"
	}

	if index == m.Index() {
		// Highlighted item
		if item.current {
			title = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true).Render(title)
		} else {
			title = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true).Render(title)
		}
		desc = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(desc)
	} else {
		// Normal item
		if item.current {
			title = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render(title)
		} else {
			title = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Render(title)
		}
		desc = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(desc)
	}

	fmt.Fprintf(w, "%s\n%s", title, desc)
}

// NewImageSelectorModal creates a new image selector modal
func NewImageSelectorModal() *ImageSelectorModal {
	l := list.New([]list.Item{}, candidateItemDelegate{}, 50, 15)
	l.Title = "Choose Default Image"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return &ImageSelectorModal{
		list: l,
	}
}

// SetSize updates the modal size
func (is *ImageSelectorModal) SetSize(width, height int) {
	is.width = width
	is.height = height

	listWidth := min(width-4, 70)
	listHeight := min(height-6, 20)
	is.list.SetSize(listWidth, listHeight)
}

// Show activates the modal with image candidates. The current default, if
// any, is marked and preselected.
func (is *ImageSelectorModal) Show(candidates []media.Candidate, current string) {
	items := make([]list.Item, 0, len(candidates))
	cursor := 0
	for _, candidate := range candidates {
		if candidate.Kind != media.KindImage {
			continue
		}
		if candidate.Name == current {
			cursor = len(items)
		}
		items = append(items, candidateItem{
			candidate: candidate,
			current:   candidate.Name == current,
		})
	}

	is.list.SetItems(items)
	is.list.Select(cursor)
	is.isActive = true
	is.applyRequested = false
	is.chosen = ""
}

// Hide deactivates the modal
func (is *ImageSelectorModal) Hide() {
	is.isActive = false
	is.applyRequested = false
}

// IsActive returns whether the modal is active
func (is *ImageSelectorModal) IsActive() bool {
	return is.isActive
}

// ShouldApply returns whether a choice was confirmed
func (is *ImageSelectorModal) ShouldApply() bool {
	return is.applyRequested
}

// GetChosen returns the confirmed image name
func (is *ImageSelectorModal) GetChosen() string {
	return is.chosen
}

// Update handles modal updates
func (is *ImageSelectorModal) Update(msg tea.Msg) tea.Cmd {
	if !is.isActive {
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if item, ok := is.list.SelectedItem().(candidateItem); ok {
				is.chosen = item.candidate.Name
				is.applyRequested = true
				is.isActive = false
			}
			return nil
		case "esc":
			is.Hide()
			return nil
		}
	}

	// Handle list navigation
	var cmd tea.Cmd
	is.list, cmd = is.list.Update(msg)
	return cmd
}

// View renders the modal
func (is *ImageSelectorModal) View() string {
	if !is.isActive {
		return ""
	}

	content := is.list.View()

	instructions := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Render("Enter: choose • Esc: cancel")

	modalContent := lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		"",
		instructions,
	)

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("12")).
		Padding(1, 2)

	return lipgloss.Place(
		is.width,
		is.height,
		lipgloss.Center,
		lipgloss.Center,
		modalStyle.Render(modalContent),
	)
}
