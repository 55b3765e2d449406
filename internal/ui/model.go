package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dpshade/prompt-loom/internal/batch"
	"github.com/dpshade/prompt-loom/internal/clipboard"
	"github.com/dpshade/prompt-loom/internal/errors"
	"github.com/dpshade/prompt-loom/internal/media"
	"github.com/dpshade/prompt-loom/internal/models"
	"github.com/dpshade/prompt-loom/internal/renderer"
	"github.com/dpshade/prompt-loom/internal/service"
	"github.com/dpshade/prompt-loom/internal/sysopen"
	"github.com/muesli/termenv"
)

// createGlamourRenderer creates a glamour renderer with improved contrast handling
func createGlamourRenderer(wordWrap int) (*glamour.TermRenderer, error) {
	// Check for environment variable override first
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		return glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wordWrap),
		)
	}

	// Detect terminal capabilities and background
	profile := termenv.ColorProfile()
	hasDarkBg := lipgloss.HasDarkBackground()

	// Choose appropriate style based on background detection and capabilities
	var styleOption glamour.TermRendererOption

	if hasDarkBg {
		switch profile {
		case termenv.TrueColor:
			styleOption = glamour.WithStandardStyle("dark")
		case termenv.ANSI256:
			styleOption = glamour.WithStandardStyle("dark")
		default:
			// Fallback to auto-style for limited color terminals
			styleOption = glamour.WithAutoStyle()
		}
	} else {
		switch profile {
		case termenv.TrueColor:
			styleOption = glamour.WithStandardStyle("light")
		case termenv.ANSI256:
			styleOption = glamour.WithStandardStyle("light")
		default:
			styleOption = glamour.WithAutoStyle()
		}
	}

	return glamour.NewTermRenderer(
		styleOption,
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(wordWrap),
	)
}

// ViewMode represents the current view state
type ViewMode int

const (
	ViewCompose ViewMode = iota
	ViewBatch
	ViewBrowser
)

// tickMsg drives the status bar timeout
type tickMsg time.Time

func clearStatusCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// KeyMap defines the keybindings for the app
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Back  key.Binding
	Quit  key.Binding
	Help  key.Binding

	// Compose view
	AddLine      key.Binding
	Save         key.Binding
	Browse       key.Binding
	BatchView    key.Binding
	NewTemplate  key.Binding
	CopyText     key.Binding
	CopyJSON     key.Binding
	CopyMarkdown key.Binding
	Undo         key.Binding
	Redo         key.Binding

	// Batch view
	MoveUp     key.Binding
	MoveDown   key.Binding
	EditLine   key.Binding
	DeleteLine key.Binding
	CopyLine   key.Binding
	Reveal     key.Binding
	OpenFile   key.Binding
	ClearAll   key.Binding

	// Browser view
	ChangeFolder  key.Binding
	DefaultFolder key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back},
		{k.AddLine, k.Save, k.Browse, k.BatchView},
		{k.Undo, k.Redo, k.CopyText, k.CopyJSON},
		{k.MoveUp, k.MoveDown, k.EditLine, k.DeleteLine},
		{k.ChangeFolder, k.DefaultFolder, k.Help, k.Quit},
	}
}

var keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?", "f1"),
		key.WithHelp("?", "help"),
	),
	AddLine: key.NewBinding(
		key.WithKeys("ctrl+a"),
		key.WithHelp("ctrl+a", "add to batch"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	Browse: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "browse templates"),
	),
	BatchView: key.NewBinding(
		key.WithKeys("ctrl+b"),
		key.WithHelp("ctrl+b", "batch"),
	),
	NewTemplate: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n", "new template"),
	),
	CopyText: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "copy prompt"),
	),
	CopyJSON: key.NewBinding(
		key.WithKeys("alt+j"),
		key.WithHelp("alt+j", "copy JSON"),
	),
	CopyMarkdown: key.NewBinding(
		key.WithKeys("alt+m"),
		key.WithHelp("alt+m", "copy markdown"),
	),
	Undo: key.NewBinding(
		key.WithKeys("ctrl+z"),
		key.WithHelp("ctrl+z", "undo"),
	),
	Redo: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "redo"),
	),
	MoveUp: key.NewBinding(
		key.WithKeys("K", "shift+up"),
		key.WithHelp("K", "move line up"),
	),
	MoveDown: key.NewBinding(
		key.WithKeys("J", "shift+down"),
		key.WithHelp("J", "move line down"),
	),
	EditLine: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit line"),
	),
	DeleteLine: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete line"),
	),
	CopyLine: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy line"),
	),
	Reveal: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "reveal export"),
	),
	OpenFile: key.NewBinding(
		key.WithKeys("O"),
		key.WithHelp("O", "open export"),
	),
	ClearAll: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "clear batch"),
	),
	ChangeFolder: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "change folder"),
	),
	DefaultFolder: key.NewBinding(
		key.WithKeys("F"),
		key.WithHelp("F", "set default folder"),
	),
}

// Model represents the TUI application state
type Model struct {
	service  *service.Service
	viewMode ViewMode

	// Compose view
	form *ComposeForm

	// Browser view
	templateList  list.Model
	preview       viewport.Model
	browseFolder  string
	previewedPath string
	folderPrompt  bool
	folderInput   textinput.Model

	// Batch view
	batchCursor  int
	clearConfirm bool

	// Modals
	saveModal       *SaveTemplateModal
	imageSelector   *ImageSelectorModal
	editModal       *EditLineModal
	pendingTemplate *models.Template

	// Help
	keys             KeyMap
	help             help.Model
	showHelpModal    bool
	showExpandedHelp bool
	helpViewport     viewport.Model
	modalContent     string

	// Rendering
	glamourRenderer *glamour.TermRenderer
	errorHandler    *errors.TUIErrorHandler

	// Window dimensions
	width  int
	height int

	// Status messages
	statusMsg     string
	statusKind    string
	statusTimeout int
}

// NewModel creates a new TUI model
func NewModel(svc *service.Service) (*Model, error) {
	initializeColors()

	templateList := list.New([]list.Item{}, list.NewDefaultDelegate(), 40, 20)
	templateList.SetShowTitle(false)
	templateList.SetShowStatusBar(false)
	templateList.SetShowHelp(false)
	templateList.SetFilteringEnabled(true)

	preview := viewport.New(50, 20)
	preview.Style = lipgloss.NewStyle()

	helpViewport := viewport.New(56, 20)
	helpViewport.Style = lipgloss.NewStyle()

	folderInput := textinput.New()
	folderInput.Placeholder = "template folder path"
	folderInput.CharLimit = 250
	folderInput.Width = 50

	renderer, err := createGlamourRenderer(60)
	if err != nil {
		return nil, fmt.Errorf("failed to create glamour renderer: %w", err)
	}

	return &Model{
		service:         svc,
		viewMode:        ViewCompose,
		form:            NewComposeForm(),
		templateList:    templateList,
		preview:         preview,
		folderInput:     folderInput,
		saveModal:       NewSaveTemplateModal(),
		imageSelector:   NewImageSelectorModal(),
		editModal:       NewEditLineModal(),
		keys:            keys,
		help:            help.New(),
		helpViewport:    helpViewport,
		glamourRenderer: renderer,
		errorHandler:    errors.NewTUIErrorHandler(os.Getenv("DEBUG") == "true"),
	}, nil
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tickMsg:
		if m.statusTimeout > 0 {
			m.statusTimeout--
			if m.statusTimeout == 0 {
				m.statusMsg = ""
			} else {
				return m, clearStatusCmd()
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Modals swallow all keys while active
		if m.saveModal.IsActive() {
			return m.updateSaveModal(msg)
		}
		if m.imageSelector.IsActive() {
			return m.updateImageSelector(msg)
		}
		if m.editModal.IsActive() {
			return m.updateEditModal(msg)
		}
		if m.showHelpModal {
			return m.updateHelpModal(msg)
		}

		// Pending clear confirmation
		if m.clearConfirm {
			m.clearConfirm = false
			if msg.String() == "y" || msg.String() == "Y" {
				count := m.service.Batch().Len()
				m.service.Batch().Clear()
				m.batchCursor = 0
				m.setStatus(fmt.Sprintf("Cleared %d line(s)", count), "success")
			} else {
				m.setStatus("Clear cancelled", "info")
			}
			return m, clearStatusCmd()
		}

		switch m.viewMode {
		case ViewCompose:
			if model, cmd, handled := m.handleComposeKeys(msg); handled {
				return model, cmd
			}
		case ViewBatch:
			return m.handleBatchKeys(msg)
		case ViewBrowser:
			if model, cmd, handled := m.handleBrowserKeys(msg); handled {
				return model, cmd
			}
		}
	}

	// Route everything unhandled to the active view's components, so
	// typing and cursor blinks reach the right place
	switch m.viewMode {
	case ViewCompose:
		cmds = append(cmds, m.form.Update(msg))
	case ViewBrowser:
		if m.folderPrompt {
			var cmd tea.Cmd
			m.folderInput, cmd = m.folderInput.Update(msg)
			cmds = append(cmds, cmd)
		} else {
			var cmd tea.Cmd
			m.templateList, cmd = m.templateList.Update(msg)
			cmds = append(cmds, cmd)
			m.refreshPreview()
		}
	}

	return m, tea.Batch(cmds...)
}

// handleComposeKeys intercepts the compose view's own shortcuts. Unhandled
// keys fall through to the form so plain typing still works, which is why
// help here hangs off f1 rather than "?".
func (m Model) handleComposeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case msg.String() == "f1":
		m.openHelpModal()
		return m, nil, true

	case msg.String() == "f2":
		m.showExpandedHelp = !m.showExpandedHelp
		return m, nil, true

	case key.Matches(msg, m.keys.AddLine):
		if _, err := m.service.AddToBatch(m.form.ToTemplate()); err != nil {
			return m, m.reportError(err), true
		}
		m.setStatus(fmt.Sprintf("Added line %d to batch", m.service.Batch().Len()), "success")
		return m, clearStatusCmd(), true

	case key.Matches(msg, m.keys.Save):
		m.openSaveModal()
		return m, nil, true

	case key.Matches(msg, m.keys.Browse):
		return m, m.openBrowser(), true

	case key.Matches(msg, m.keys.BatchView):
		m.viewMode = ViewBatch
		m.clampBatchCursor()
		return m, nil, true

	case key.Matches(msg, m.keys.NewTemplate):
		m.form.Reset()
		m.service.ResetCurrent()
		m.setStatus("Started a fresh template", "info")
		return m, clearStatusCmd(), true

	case key.Matches(msg, m.keys.CopyText):
		text := renderer.NewRenderer(m.form.ToTemplate()).RenderText()
		if text == "" {
			m.setStatus("Nothing to copy - prompt is empty", "warning")
			return m, clearStatusCmd(), true
		}
		return m, m.copyToClipboard(text), true

	case key.Matches(msg, m.keys.CopyJSON):
		payload, err := renderer.NewRenderer(m.form.ToTemplate()).RenderJSON()
		if err != nil {
			return m, m.reportError(err), true
		}
		return m, m.copyToClipboard(payload), true

	case key.Matches(msg, m.keys.CopyMarkdown):
		doc, err := renderer.NewRenderer(m.form.ToTemplate()).RenderMarkdown()
		if err != nil {
			return m, m.reportError(err), true
		}
		return m, m.copyToClipboard(doc), true
	}

	return m, nil, false
}

// handleBatchKeys handles all keys for the batch view
func (m Model) handleBatchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lines := m.service.Batch()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.viewMode = ViewCompose
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.openHelpModal()
		return m, nil

	case msg.String() == "f2":
		m.showExpandedHelp = !m.showExpandedHelp
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.batchCursor > 0 {
			m.batchCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.batchCursor < lines.Len()-1 {
			m.batchCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.MoveUp):
		// Moving past the edge is a silent no-op
		if err := lines.Move(m.batchCursor, batch.Up); err == nil {
			m.batchCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.MoveDown):
		if err := lines.Move(m.batchCursor, batch.Down); err == nil {
			m.batchCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.EditLine):
		if line, ok := lines.Line(m.batchCursor); ok {
			m.editModal.Resize(m.width, m.height)
			m.editModal.Show(m.batchCursor, line.Parts)
		}
		return m, nil

	case key.Matches(msg, m.keys.DeleteLine):
		if err := lines.Remove(m.batchCursor); err == nil {
			m.clampBatchCursor()
			m.setStatus("Line removed", "success")
			return m, clearStatusCmd()
		}
		return m, nil

	case key.Matches(msg, m.keys.CopyLine):
		if line, ok := lines.Line(m.batchCursor); ok {
			return m, m.copyToClipboard(line.Rendered)
		}
		return m, nil

	case key.Matches(msg, m.keys.Save):
		path, err := m.service.SaveBatch()
		if err != nil {
			return m, m.reportError(err)
		}
		m.setStatus("Batch saved to "+path, "success")
		return m, clearStatusCmd()

	case key.Matches(msg, m.keys.Reveal):
		return m, m.openExport(sysopen.Reveal, "Revealed")

	case key.Matches(msg, m.keys.OpenFile):
		return m, m.openExport(sysopen.Open, "Opened")

	case key.Matches(msg, m.keys.ClearAll):
		if lines.Len() == 0 {
			return m, nil
		}
		m.clearConfirm = true
		m.setStatus(fmt.Sprintf("Clear all %d line(s)? (y/n)", lines.Len()), "warning")
		m.statusTimeout = 100
		return m, nil
	}

	return m, nil
}

// handleBrowserKeys intercepts the browser view's shortcuts. While the list
// filter or the folder prompt is capturing text, typing wins over shortcuts.
func (m Model) handleBrowserKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if m.folderPrompt {
		switch msg.String() {
		case "esc":
			m.folderPrompt = false
			m.folderInput.Blur()
			return m, nil, true
		case "enter":
			dir := strings.TrimSpace(m.folderInput.Value())
			m.folderPrompt = false
			m.folderInput.Blur()
			if dir == "" {
				return m, nil, true
			}
			if err := m.setBrowseFolder(dir, true); err != nil {
				return m, m.reportError(err), true
			}
			m.setStatus("Folder changed to "+dir, "success")
			return m, clearStatusCmd(), true
		}
		return m, nil, false
	}

	if m.templateList.SettingFilter() {
		return m, nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit, true

	case key.Matches(msg, m.keys.Back):
		// Let esc clear an applied filter before it leaves the view
		if m.templateList.FilterState() == list.FilterApplied {
			return m, nil, false
		}
		m.viewMode = ViewCompose
		return m, nil, true

	case key.Matches(msg, m.keys.Help):
		m.openHelpModal()
		return m, nil, true

	case msg.String() == "f2":
		m.showExpandedHelp = !m.showExpandedHelp
		return m, nil, true

	case msg.String() == "ctrl+u":
		m.preview.HalfViewUp()
		return m, nil, true

	case msg.String() == "ctrl+d":
		m.preview.HalfViewDown()
		return m, nil, true

	case key.Matches(msg, m.keys.Enter):
		ref, ok := m.templateList.SelectedItem().(models.TemplateRef)
		if !ok {
			return m, nil, true
		}
		template, err := m.service.LoadTemplate(ref.FilePath)
		if err != nil {
			return m, m.reportError(err), true
		}
		m.form.LoadTemplate(template)
		m.viewMode = ViewCompose
		m.setStatus("Loaded "+template.Name, "success")
		return m, clearStatusCmd(), true

	case key.Matches(msg, m.keys.ChangeFolder):
		m.folderInput.SetValue(m.browseFolder)
		m.folderInput.CursorEnd()
		m.folderInput.Focus()
		m.folderPrompt = true
		return m, nil, true

	case key.Matches(msg, m.keys.DefaultFolder):
		if err := m.service.SetDefaultTemplateFolder(m.browseFolder); err != nil {
			return m, m.reportError(err), true
		}
		m.setStatus("Default template folder set to "+m.browseFolder, "success")
		return m, clearStatusCmd(), true
	}

	return m, nil, false
}

// updateSaveModal drives the save dialog and, on submit, the whole save
// flow: write the template, then offer a default image when the folder
// holds exactly one choice or several.
func (m Model) updateSaveModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd := m.saveModal.Update(msg)
	if !m.saveModal.IsSubmitted() {
		return m, cmd
	}

	path := m.saveModal.GetPath()
	template := m.form.ToTemplate()
	m.saveModal.Hide()

	if err := m.service.SaveTemplate(template, path); err != nil {
		return m, m.reportError(err)
	}

	choices, assigned, err := m.service.AssignDefaultImage(template)
	switch {
	case err != nil:
		m.setStatus(fmt.Sprintf("Saved %s, but scanning for images failed", template.Name), "warning")
	case assigned:
		m.setStatus(fmt.Sprintf("Saved %s with default image %s", template.Name, template.DefaultImage), "success")
	case len(choices) > 0:
		m.pendingTemplate = template
		m.imageSelector.SetSize(m.width, m.height)
		m.imageSelector.Show(choices, template.DefaultImage)
		return m, nil
	default:
		m.setStatus("Saved "+template.Name, "success")
	}
	return m, clearStatusCmd()
}

// updateImageSelector drives the default image picker opened after a save
func (m Model) updateImageSelector(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd := m.imageSelector.Update(msg)

	if m.imageSelector.ShouldApply() {
		chosen := m.imageSelector.GetChosen()
		m.imageSelector.Hide()
		if m.pendingTemplate != nil && chosen != "" {
			if err := m.service.SetDefaultImage(m.pendingTemplate, chosen); err != nil {
				m.pendingTemplate = nil
				return m, m.reportError(err)
			}
			m.setStatus("Default image set to "+chosen, "success")
		}
		m.pendingTemplate = nil
		return m, clearStatusCmd()
	}

	if !m.imageSelector.IsActive() {
		// Dismissed without choosing; the template stays saved
		m.pendingTemplate = nil
		m.setStatus("Template saved without a default image", "info")
		return m, clearStatusCmd()
	}

	return m, cmd
}

// updateEditModal drives the batch line editor
func (m Model) updateEditModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd := m.editModal.Update(msg)
	if !m.editModal.IsSubmitted() {
		return m, cmd
	}

	index := m.editModal.Index()
	parts := m.editModal.Parts()
	m.editModal.Hide()

	if _, err := m.service.Batch().Edit(index, parts.Top, parts.Middle, parts.Bottom); err != nil {
		return m, m.reportError(err)
	}
	m.setStatus("Line updated", "success")
	return m, clearStatusCmd()
}

// updateHelpModal scrolls and dismisses the help overlay
func (m Model) updateHelpModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "?", "f1", "q":
		m.showHelpModal = false
		return m, nil
	case "up", "k":
		m.helpViewport.LineUp(1)
	case "down", "j":
		m.helpViewport.LineDown(1)
	case "pgup":
		m.helpViewport.HalfViewUp()
	case "pgdown":
		m.helpViewport.HalfViewDown()
	case "home":
		m.helpViewport.GotoTop()
	case "end":
		m.helpViewport.GotoBottom()
	case "c":
		if m.modalContent != "" {
			return m, m.copyToClipboard(m.modalContent)
		}
	}
	return m, nil
}

// View renders the current view
func (m Model) View() string {
	if m.showHelpModal {
		return m.renderHelpModal()
	}
	if m.saveModal.IsActive() {
		return CenterModal(m.saveModal.View(), m.width, m.height)
	}
	if m.imageSelector.IsActive() {
		// The selector centers itself
		return m.imageSelector.View()
	}
	if m.editModal.IsActive() {
		return CenterModal(m.editModal.View(), m.width, m.height)
	}

	var mainView string
	switch m.viewMode {
	case ViewCompose:
		mainView = m.renderComposeView()
	case ViewBatch:
		mainView = m.renderBatchView()
	case ViewBrowser:
		mainView = m.renderBrowserView()
	default:
		mainView = "Unknown view mode"
	}

	if m.statusMsg != "" {
		statusBar := CreateStatus(m.statusMsg, m.statusKind)
		return AddMainPadding(lipgloss.JoinVertical(lipgloss.Left, mainView, "", statusBar))
	}
	return AddMainPadding(mainView)
}

// renderComposeView renders the five-field prompt editor
func (m Model) renderComposeView() string {
	title := CreateMainHeader("Prompt Loom")

	var meta string
	if path := m.service.CurrentPath(); path != "" {
		meta = CreateMetadata("Template: " + path)
	} else {
		meta = CreateMetadata("Unsaved template")
	}

	elements := []string{title, meta, ""}
	for i := 0; i < numComposeFields; i++ {
		label := composeFieldLabels[i]
		if i == m.form.focused {
			elements = append(elements, StyleFormLabelFocused.Render("▶ "+label))
		} else {
			elements = append(elements, StyleFormLabel.Render("  "+label))
		}
		elements = append(elements, m.form.fields[i].View(), "")
	}

	template := m.form.ToTemplate()
	composed := batch.Compose(template.PromptParts.Top, template.PromptParts.Middle, template.PromptParts.Bottom)

	wrapWidth := m.width - 6
	if wrapWidth < 20 {
		wrapWidth = 60
	}
	composedLine := StyleTextMuted.Render("(empty)")
	if composed != "" {
		composedLine = StyleText.Width(wrapWidth).Render(composed)
	}
	elements = append(elements, StyleSubtitle.Render("Composed line"), composedLine, "")

	fieldNote := "Editing: " + m.form.FocusedLabel()
	if m.form.CanUndo() {
		fieldNote += " • ctrl+z undo"
	}
	if m.form.CanRedo() {
		fieldNote += " • ctrl+y redo"
	}
	elements = append(elements, CreateMetadata(fieldNote))

	essential := []string{"tab next field • ctrl+a add to batch • ctrl+b batch • ctrl+o browse"}
	additional := []string{
		"ctrl+s save template • ctrl+n new • ctrl+g copy prompt",
		"alt+j copy JSON • alt+m copy markdown • f1 help • ctrl+c quit",
	}
	elements = append(elements, CreateContextualHelp(essential, additional, m.showExpandedHelp, m.width))

	return lipgloss.JoinVertical(lipgloss.Left, elements...)
}

// renderBatchView renders the ordered list of composed lines
func (m Model) renderBatchView() string {
	title := CreateSubPageHeader("Batch")
	lines := m.service.Batch().Lines()
	meta := CreateMetadata(fmt.Sprintf("%d line(s) • exports to %s", len(lines), m.service.SessionPath()))

	elements := []string{title, meta, ""}

	if len(lines) == 0 {
		elements = append(elements, StyleTextMuted.Render("Batch is empty. Add composed lines with ctrl+a from the compose view."))
	} else {
		maxWidth := m.width - 8
		if maxWidth < 20 {
			maxWidth = 60
		}
		for i, line := range lines {
			text := fmt.Sprintf("%2d. %s", i+1, line.Rendered)
			if len(text) > maxWidth {
				text = text[:maxWidth-3] + "..."
			}
			if i == m.batchCursor {
				elements = append(elements, StyleSelected.Render(text))
			} else {
				elements = append(elements, StyleUnselected.Render(text))
			}
		}
	}

	elements = append(elements, "")
	essential := []string{"j/k select • J/K reorder • e edit • d delete"}
	additional := []string{
		"c copy line • ctrl+s export • o reveal file • O open file",
		"D clear batch • esc back • ? help • q quit",
	}
	elements = append(elements, CreateContextualHelp(essential, additional, m.showExpandedHelp, m.width))

	return lipgloss.JoinVertical(lipgloss.Left, elements...)
}

// renderBrowserView renders the template list next to the preview pane
func (m Model) renderBrowserView() string {
	title := CreateSubPageHeader("Template Browser")
	meta := CreateMetadata("Folder: " + m.browseFolder)

	topIndicator, bottomIndicator := CreateScrollIndicators(!m.preview.AtTop(), !m.preview.AtBottom(), m.preview.Width)
	previewPane := lipgloss.JoinVertical(lipgloss.Left, topIndicator, m.preview.View(), bottomIndicator)
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.templateList.View(), "  ", previewPane)

	var footer string
	if m.folderPrompt {
		prompt := StyleFormLabelFocused.Render("New folder: ") + m.folderInput.View()
		footer = lipgloss.JoinVertical(lipgloss.Left, prompt, m.help.ShortHelpView([]key.Binding{m.keys.Enter, m.keys.Back}))
	} else {
		essential := []string{"enter load • / filter • f change folder"}
		additional := []string{
			"F set default folder • ctrl+u/ctrl+d scroll preview",
			"esc back • ? help • q quit",
		}
		footer = CreateContextualHelp(essential, additional, m.showExpandedHelp, m.width)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, meta, body, "", footer)
}

// renderHelpModal renders the key reference overlay
func (m Model) renderHelpModal() string {
	maxWidth := min(68, m.width-4)
	maxHeight := min(26, m.height-4)
	if maxWidth < 20 {
		maxWidth = 20
	}
	if maxHeight < 8 {
		maxHeight = 8
	}

	hint := StyleTextDim.Render("↑/↓ scroll • c copy • esc close")
	content := lipgloss.JoinVertical(lipgloss.Left, m.helpViewport.View(), "", hint)

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		Width(maxWidth).
		MaxHeight(maxHeight).
		Render(content)

	return CenterModal(modal, m.width, m.height)
}

// resize recomputes every component's dimensions from the window size
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	m.form.Resize(width, height)

	contentHeight := height - 8
	if contentHeight < 5 {
		contentHeight = 5
	}

	listWidth := width * 2 / 5
	if listWidth < 28 {
		listWidth = 28
	}
	previewWidth := width - listWidth - 8
	if previewWidth < 30 {
		previewWidth = 30
	}
	m.templateList.SetSize(listWidth, contentHeight)
	m.preview.Width = previewWidth
	m.preview.Height = contentHeight - 2

	if renderer, err := createGlamourRenderer(previewWidth - 2); err == nil {
		m.glamourRenderer = renderer
	}

	m.folderInput.Width = min(width-20, 60)

	m.saveModal.Resize(width, height)
	m.editModal.Resize(width, height)
	m.imageSelector.SetSize(width, height)

	m.helpViewport.Width = min(68, width-4) - 6
	m.helpViewport.Height = min(26, height-4) - 5
	if m.helpViewport.Width < 16 {
		m.helpViewport.Width = 16
	}
	if m.helpViewport.Height < 4 {
		m.helpViewport.Height = 4
	}
	if m.showHelpModal {
		m.openHelpModal()
	}

	// Glamour output is wrapped to the old width, so render again
	if m.viewMode == ViewBrowser && m.previewedPath != "" {
		m.previewedPath = ""
		m.refreshPreview()
	}
}

// openBrowser switches to the browser view, falling back to the default
// folder when the remembered one is no longer listable
func (m *Model) openBrowser() tea.Cmd {
	folder := m.browseFolder
	if folder == "" {
		folder = m.service.LastUsedFolder()
	}

	err := m.setBrowseFolder(folder, false)
	if err != nil {
		if fallback := m.service.DefaultTemplateFolder(); fallback != folder {
			err = m.setBrowseFolder(fallback, false)
		}
	}
	if err != nil {
		return m.reportError(err)
	}

	m.viewMode = ViewBrowser
	return nil
}

// setBrowseFolder lists dir into the template list and primes the preview
func (m *Model) setBrowseFolder(dir string, remember bool) error {
	refs, err := m.service.ListTemplates(dir)
	if err != nil {
		return err
	}

	m.browseFolder = dir
	if remember {
		m.service.RememberFolder(dir)
	}

	items := make([]list.Item, len(refs))
	for i, ref := range refs {
		items[i] = ref
	}
	m.templateList.ResetFilter()
	m.templateList.SetItems(items)
	m.templateList.Select(0)

	m.previewedPath = ""
	if len(refs) == 0 {
		m.preview.SetContent(StyleTextMuted.Render("No templates in this folder."))
		return nil
	}
	m.refreshPreview()
	return nil
}

// refreshPreview re-renders the preview pane when the highlighted template
// changed since the last render
func (m *Model) refreshPreview() {
	ref, ok := m.templateList.SelectedItem().(models.TemplateRef)
	if !ok {
		m.preview.SetContent(StyleTextMuted.Render("No template selected."))
		m.previewedPath = ""
		return
	}
	if ref.FilePath == m.previewedPath {
		return
	}
	m.previewedPath = ref.FilePath

	preview, err := m.service.PreviewTemplate(ref.FilePath)
	if err != nil {
		// A broken file should not block browsing the rest
		m.errorHandler.HandleError(err)
		m.preview.SetContent(StyleError.Render(m.errorHandler.FormatError(err)))
		m.preview.GotoTop()
		return
	}

	m.preview.SetContent(m.renderPreviewContent(preview))
	m.preview.GotoTop()
}

// renderPreviewContent turns a template preview into glamour markdown plus
// an ANSI thumbnail when a decodable default image exists
func (m *Model) renderPreviewContent(preview *service.Preview) string {
	markdown := previewMarkdown(preview)
	rendered, err := m.glamourRenderer.Render(markdown)
	if err != nil {
		rendered = markdown
	}

	if preview.Image == nil {
		return rendered
	}

	cols := m.preview.Width - 4
	if cols < 16 {
		cols = 16
	}
	rows := m.preview.Height / 2
	if rows < 6 {
		rows = 6
	}
	thumbnail := media.Thumbnail(preview.Image, cols, rows)
	caption := CreateMetadata("Preview: " + preview.ImageName)
	return lipgloss.JoinVertical(lipgloss.Left, rendered, thumbnail, caption)
}

// previewMarkdown builds the markdown body the preview pane renders
func previewMarkdown(preview *service.Preview) string {
	template := preview.Template

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", template.Name)

	writeSection := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		fmt.Fprintf(&b, "**%s**\n\n%s\n\n", label, value)
	}
	writeSection("Top", template.PromptParts.Top)
	writeSection("Middle", template.PromptParts.Middle)
	writeSection("Bottom", template.PromptParts.Bottom)
	writeSection("Negative prompt", template.NegativePrompt)

	if composed := batch.Compose(template.PromptParts.Top, template.PromptParts.Middle, template.PromptParts.Bottom); composed != "" {
		writeSection("Composed", composed)
	}

	if len(preview.Candidates) > 0 {
		b.WriteString("## Related media\n\n")
		for _, candidate := range preview.Candidates {
			note := candidate.Kind.String()
			if candidate.IsDefault {
				note += ", default"
			}
			fmt.Fprintf(&b, "- %s (%s)\n", candidate.Name, note)
		}
		b.WriteString("\n")
	}

	if preview.MissingDefault != nil {
		fmt.Fprintf(&b, "_Default image %s is missing from the folder. No preview available._\n", template.DefaultImage)
	} else if preview.Image == nil {
		b.WriteString("_No preview available._\n")
	}

	return b.String()
}

// openSaveModal shows the save dialog, prefilled from the current file
// association or the last used folder
func (m *Model) openSaveModal() {
	name := ""
	folder := m.service.LastUsedFolder()
	if path := m.service.CurrentPath(); path != "" {
		name = media.Stem(path)
		folder = filepath.Dir(path)
	}
	m.saveModal.Resize(m.width, m.height)
	m.saveModal.Show(name, folder)
}

// openHelpModal renders the key reference into the help viewport
func (m *Model) openHelpModal() {
	m.modalContent = helpText
	rendered, err := m.glamourRenderer.Render(helpText)
	if err != nil {
		rendered = helpText
	}
	m.helpViewport.SetContent(rendered)
	m.helpViewport.GotoTop()
	m.showHelpModal = true
}

// openExport runs a system opener against the exported session file
func (m *Model) openExport(open func(string) error, verb string) tea.Cmd {
	path := m.service.SessionPath()
	if _, err := os.Stat(path); err != nil {
		m.setStatus("No exported batch yet - save with ctrl+s first", "warning")
		return clearStatusCmd()
	}
	if err := open(path); err != nil {
		return m.reportError(err)
	}
	m.setStatus(verb+" "+path, "success")
	return clearStatusCmd()
}

// copyToClipboard copies text and reports the outcome in the status bar
func (m *Model) copyToClipboard(text string) tea.Cmd {
	statusMsg, err := clipboard.CopyWithFallback(text)
	if err != nil {
		return m.reportError(err)
	}
	m.setStatus(statusMsg, "success")
	return clearStatusCmd()
}

// clampBatchCursor keeps the cursor inside the list after removals
func (m *Model) clampBatchCursor() {
	if count := m.service.Batch().Len(); m.batchCursor >= count {
		m.batchCursor = count - 1
	}
	if m.batchCursor < 0 {
		m.batchCursor = 0
	}
}

// setStatus shows a transient message in the status bar
func (m *Model) setStatus(text, kind string) {
	m.statusMsg = text
	m.statusKind = kind
	m.statusTimeout = 3
}

// reportError logs the error and surfaces its user-facing form in the
// status bar, colored by severity
func (m *Model) reportError(err error) tea.Cmd {
	m.errorHandler.HandleError(err)
	m.statusMsg = m.errorHandler.FormatError(err)
	switch errors.GetAppError(err).Severity {
	case errors.SeverityInfo:
		m.statusKind = "info"
	case errors.SeverityWarning:
		m.statusKind = "warning"
	default:
		m.statusKind = "error"
	}
	m.statusTimeout = 4
	return clearStatusCmd()
}

const helpText = `# Prompt Loom

Compose Stable Diffusion prompts from three stacked segments, collect them
into a batch, and save reusable templates as JSON files.

## Compose view

- ` + "`tab` / `shift+tab`" + ` cycle through the five fields
- ` + "`ctrl+z` / `ctrl+y`" + ` undo / redo edits in the focused field
- ` + "`ctrl+a`" + ` add the composed line to the batch
- ` + "`ctrl+s`" + ` save the current template
- ` + "`ctrl+o`" + ` open the template browser
- ` + "`ctrl+b`" + ` open the batch view
- ` + "`ctrl+n`" + ` start a fresh template
- ` + "`ctrl+g`" + ` copy the composed prompt text
- ` + "`alt+j`" + ` copy the template as a JSON payload
- ` + "`alt+m`" + ` copy the template as markdown

## Batch view

- ` + "`j` / `k`" + ` move the cursor, ` + "`J` / `K`" + ` reorder the line
- ` + "`e`" + ` edit the line, ` + "`d`" + ` delete it, ` + "`c`" + ` copy it
- ` + "`ctrl+s`" + ` export all lines to this run's scratch file
- ` + "`o`" + ` reveal the export in the file manager, ` + "`O`" + ` open it
- ` + "`D`" + ` clear the batch (asks y/n)

## Template browser

- ` + "`/`" + ` filter templates by name
- ` + "`enter`" + ` load the highlighted template into the compose form
- ` + "`f`" + ` browse a different folder, ` + "`F`" + ` make it the default
- ` + "`ctrl+u` / `ctrl+d`" + ` scroll the preview pane

## Everywhere

- ` + "`f1`" + ` (or ` + "`?`" + ` outside the compose form) this help
- ` + "`f2`" + ` expanded key hints, ` + "`esc`" + ` back, ` + "`ctrl+c`" + ` quit

Templates are plain JSON files in folders you pick. Preferences live in
` + "`~/.prompt-loom/settings.json`" + `.
`
