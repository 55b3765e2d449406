// Package batch composes prompt lines from three text segments and maintains
// the transient, reorderable list of composed lines.
package batch

import (
	"strings"

	"github.com/dpshade/prompt-loom/internal/errors"
	"github.com/dpshade/prompt-loom/internal/models"
)

// Separator joins the prompt segments inside a composed line. The spacing is
// asymmetric on purpose and must not change: saved batches and the edit
// splitter both depend on the exact byte sequence.
const Separator = ", __________ ,"

// Compose builds the composed prompt line for three segments. Whitespace runs
// inside each segment collapse to single spaces, leading/trailing whitespace
// is trimmed, and segments left empty after normalization drop out together
// with their separator. Pure function, no side effects.
func Compose(top, middle, bottom string) string {
	parts := make([]string, 0, 3)
	for _, segment := range []string{top, middle, bottom} {
		if normalized := normalizeSegment(segment); normalized != "" {
			parts = append(parts, normalized)
		}
	}
	return strings.Join(parts, Separator)
}

// Split is the inverse of Compose for the edit flow: it cuts a composed line
// on the separator back into up to three segments. Lines composed from fewer
// than three non-empty segments yield empty strings for the missing ones.
func Split(line string) (top, middle, bottom string) {
	segments := strings.SplitN(line, Separator, 3)
	switch len(segments) {
	case 3:
		bottom = segments[2]
		fallthrough
	case 2:
		middle = segments[1]
		fallthrough
	case 1:
		top = segments[0]
	}
	return top, middle, bottom
}

// normalizeSegment collapses whitespace runs to single spaces and trims the
// ends, so multi-line textarea input becomes one clean segment.
func normalizeSegment(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Direction selects which neighbor a Move swaps with.
type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

// List is the ordered, process-scoped sequence of batch lines. All methods
// run on the caller's stack; the list is owned by a single UI process and is
// never shared.
type List struct {
	lines []models.BatchLine
}

// NewList creates an empty batch list.
func NewList() *List {
	return &List{}
}

// Add appends a composed line built from the three segments. Lines that
// compose to the empty string are rejected with InvalidInput so the batch
// never holds blank rows.
func (l *List) Add(top, middle, bottom string) (models.BatchLine, error) {
	rendered := Compose(top, middle, bottom)
	if rendered == "" {
		return models.BatchLine{}, errors.InvalidInputError("Nothing to add: all prompt fields are empty")
	}
	line := models.BatchLine{
		Parts:    models.PromptParts{Top: top, Middle: middle, Bottom: bottom},
		Rendered: rendered,
	}
	l.lines = append(l.lines, line)
	return line, nil
}

// Remove deletes the line at index. An out-of-range index returns a
// BoundsError and leaves the list unchanged.
func (l *List) Remove(index int) error {
	if index < 0 || index >= len(l.lines) {
		return errors.BoundsError("remove batch line")
	}
	l.lines = append(l.lines[:index], l.lines[index+1:]...)
	return nil
}

// Move swaps the line at index with its neighbor in the given direction.
// Moving the first line up or the last line down returns a BoundsError and
// leaves the list unchanged; callers treat that as a no-op.
func (l *List) Move(index int, dir Direction) error {
	if index < 0 || index >= len(l.lines) {
		return errors.BoundsError("move batch line")
	}
	target := index + int(dir)
	if target < 0 || target >= len(l.lines) {
		return errors.BoundsError("move batch line")
	}
	l.lines[index], l.lines[target] = l.lines[target], l.lines[index]
	return nil
}

// Edit replaces the three source segments of the line at index and re-renders
// its composed string. Editing a line down to all-empty segments is rejected
// with InvalidInput; an out-of-range index returns a BoundsError. Either way
// the list is unchanged on failure.
func (l *List) Edit(index int, top, middle, bottom string) (models.BatchLine, error) {
	if index < 0 || index >= len(l.lines) {
		return models.BatchLine{}, errors.BoundsError("edit batch line")
	}
	rendered := Compose(top, middle, bottom)
	if rendered == "" {
		return models.BatchLine{}, errors.InvalidInputError("Edited line would be empty")
	}
	l.lines[index] = models.BatchLine{
		Parts:    models.PromptParts{Top: top, Middle: middle, Bottom: bottom},
		Rendered: rendered,
	}
	return l.lines[index], nil
}

// Clear drops every line.
func (l *List) Clear() {
	l.lines = l.lines[:0]
}

// Len returns the number of lines.
func (l *List) Len() int {
	return len(l.lines)
}

// Lines returns a copy of the current lines in order.
func (l *List) Lines() []models.BatchLine {
	out := make([]models.BatchLine, len(l.lines))
	copy(out, l.lines)
	return out
}

// Rendered returns just the composed strings in order, the form the export
// file is written from.
func (l *List) Rendered() []string {
	out := make([]string, len(l.lines))
	for i, line := range l.lines {
		out[i] = line.Rendered
	}
	return out
}

// Line returns the line at index.
func (l *List) Line(index int) (models.BatchLine, bool) {
	if index < 0 || index >= len(l.lines) {
		return models.BatchLine{}, false
	}
	return l.lines[index], true
}
