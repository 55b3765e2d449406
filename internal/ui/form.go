package ui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dpshade/prompt-loom/internal/history"
	"github.com/dpshade/prompt-loom/internal/models"
)

// Compose form field indices
const (
	topField = iota
	middleField
	bottomField
	negativeField
	scratchField
	numComposeFields
)

var composeFieldLabels = [numComposeFields]string{
	"Top",
	"Middle",
	"Bottom",
	"Negative prompt",
	"Scratchpad",
}

// ComposeForm handles editing of the three prompt parts plus the negative
// prompt, with an independent undo history per field. The scratchpad is a
// session-only workspace and never saved.
type ComposeForm struct {
	fields  [numComposeFields]textarea.Model
	history [numComposeFields]*history.Stack
	focused int
}

// NewComposeForm creates an empty compose form with the top field focused
func NewComposeForm() *ComposeForm {
	f := &ComposeForm{}

	for i := range f.fields {
		ta := textarea.New()
		ta.CharLimit = 0
		ta.MaxHeight = 0
		ta.ShowLineNumbers = false
		ta.SetWidth(80)
		ta.SetHeight(composeFieldHeight(i))
		f.fields[i] = ta
		f.history[i] = history.NewStack("")
	}

	f.fields[topField].Placeholder = "subject, scene framing..."
	f.fields[middleField].Placeholder = "style, medium..."
	f.fields[bottomField].Placeholder = "quality boosters, lighting..."
	f.fields[negativeField].Placeholder = "artifacts to avoid..."
	f.fields[scratchField].Placeholder = "session notes, spare fragments..."

	f.fields[topField].Focus()
	return f
}

func composeFieldHeight(field int) int {
	switch field {
	case negativeField:
		return 2
	case scratchField:
		return 4
	default:
		return 3
	}
}

// Update handles form updates
func (f *ComposeForm) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			f.nextField()
			return nil
		case "shift+tab":
			f.prevField()
			return nil
		case "ctrl+z":
			f.undo()
			return nil
		case "ctrl+y":
			f.redo()
			return nil
		}

		// Pass everything else to the focused textarea. Every keystroke
		// that changes the content lands a snapshot; Record drops
		// no-op duplicates itself.
		var cmd tea.Cmd
		f.fields[f.focused], cmd = f.fields[f.focused].Update(msg)
		f.history[f.focused].Record(f.fields[f.focused].Value())
		return cmd
	}

	var cmd tea.Cmd
	f.fields[f.focused], cmd = f.fields[f.focused].Update(msg)
	return cmd
}

// undo reverts the focused field to its previous snapshot. Edits since the
// last snapshot are captured first so nothing is lost.
func (f *ComposeForm) undo() {
	stack := f.history[f.focused]
	stack.Record(f.fields[f.focused].Value())
	if value, ok := stack.Undo(); ok {
		f.fields[f.focused].SetValue(value)
	}
}

// redo re-applies an undone snapshot. Fresh edits invalidate the redo chain.
func (f *ComposeForm) redo() {
	stack := f.history[f.focused]
	stack.Record(f.fields[f.focused].Value())
	if value, ok := stack.Redo(); ok {
		f.fields[f.focused].SetValue(value)
	}
}

// nextField moves to the next form field
func (f *ComposeForm) nextField() {
	f.moveFocus((f.focused + 1) % numComposeFields)
}

// prevField moves to the previous form field
func (f *ComposeForm) prevField() {
	f.moveFocus((f.focused + numComposeFields - 1) % numComposeFields)
}

// moveFocus blurs the current field, snapshotting its value as an undo point
func (f *ComposeForm) moveFocus(target int) {
	f.history[f.focused].Record(f.fields[f.focused].Value())
	f.fields[f.focused].Blur()
	f.focused = target
	f.fields[f.focused].Focus()
}

// FocusedLabel returns the label of the field being edited
func (f *ComposeForm) FocusedLabel() string {
	return composeFieldLabels[f.focused]
}

// CanUndo reports whether the focused field has an earlier snapshot. Pending
// edits count as an undoable step.
func (f *ComposeForm) CanUndo() bool {
	stack := f.history[f.focused]
	return stack.CanUndo() || f.fields[f.focused].Value() != stack.Current()
}

// CanRedo reports whether the focused field has an undone snapshot ahead
func (f *ComposeForm) CanRedo() bool {
	stack := f.history[f.focused]
	return stack.CanRedo() && f.fields[f.focused].Value() == stack.Current()
}

// LoadTemplate replaces the prompt fields with a template's content. The
// previous text stays one undo step away; the scratchpad is left alone.
func (f *ComposeForm) LoadTemplate(template *models.Template) {
	f.setField(topField, template.PromptParts.Top)
	f.setField(middleField, template.PromptParts.Middle)
	f.setField(bottomField, template.PromptParts.Bottom)
	f.setField(negativeField, template.NegativePrompt)
}

func (f *ComposeForm) setField(field int, value string) {
	stack := f.history[field]
	stack.Record(f.fields[field].Value())
	f.fields[field].SetValue(value)
	stack.Record(value)
}

// ToTemplate converts form data to a Template model
func (f *ComposeForm) ToTemplate() *models.Template {
	return &models.Template{
		PromptParts: models.PromptParts{
			Top:    f.fields[topField].Value(),
			Middle: f.fields[middleField].Value(),
			Bottom: f.fields[bottomField].Value(),
		},
		NegativePrompt: f.fields[negativeField].Value(),
	}
}

// Reset clears every prompt field and its history for a fresh template. The
// scratchpad survives.
func (f *ComposeForm) Reset() {
	for i := range f.fields {
		if i == scratchField {
			continue
		}
		f.fields[i].SetValue("")
		f.history[i].Reset("")
	}
	f.moveFocus(topField)
}

// Resize updates form dimensions based on window size
func (f *ComposeForm) Resize(width, height int) {
	fieldWidth := width - 10
	if fieldWidth < 20 {
		fieldWidth = 20
	}
	for i := range f.fields {
		f.fields[i].SetWidth(fieldWidth)
	}

	// Give spare rows to the scratchpad on tall terminals
	reservedHeight := 22
	spare := height - reservedHeight
	scratchHeight := composeFieldHeight(scratchField)
	if spare > scratchHeight {
		scratchHeight = min(spare, 10)
	}
	f.fields[scratchField].SetHeight(scratchHeight)
}
