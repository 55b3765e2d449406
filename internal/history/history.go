// Package history implements per-field undo/redo tracking for text fields.
//
// Each editable field owns one Stack. The stack keeps a linear history: a new
// edit recorded after an undo discards the redo side entirely, so there are
// never branching timelines.
package history

// Stack tracks the edit history of a single text field.
type Stack struct {
	undo    []string
	redo    []string
	current string
}

// NewStack creates a history stack seeded with the field's initial value.
func NewStack(initial string) *Stack {
	return &Stack{current: initial}
}

// Current returns the value the stack considers the field's present content.
func (s *Stack) Current() string {
	return s.current
}

// Record adopts value as the new current content, pushing the prior content
// onto the undo history. Recording a value equal to the current content is a
// no-op. Any redo history is cleared.
func (s *Stack) Record(value string) {
	if value == s.current {
		return
	}
	s.undo = append(s.undo, s.current)
	s.current = value
	s.redo = s.redo[:0]
}

// Undo steps back one snapshot and returns the restored value. When there is
// nothing to undo it returns the current value and false.
func (s *Stack) Undo() (string, bool) {
	if len(s.undo) == 0 {
		return s.current, false
	}
	s.redo = append(s.redo, s.current)
	s.current = s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	return s.current, true
}

// Redo steps forward one snapshot and returns the reapplied value. When there
// is nothing to redo it returns the current value and false.
func (s *Stack) Redo() (string, bool) {
	if len(s.redo) == 0 {
		return s.current, false
	}
	s.undo = append(s.undo, s.current)
	s.current = s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	return s.current, true
}

// CanUndo reports whether an undo step is available.
func (s *Stack) CanUndo() bool {
	return len(s.undo) > 0
}

// CanRedo reports whether a redo step is available.
func (s *Stack) CanRedo() bool {
	return len(s.redo) > 0
}

// UndoDepth returns the number of snapshots on the undo side.
func (s *Stack) UndoDepth() int {
	return len(s.undo)
}

// RedoDepth returns the number of snapshots on the redo side.
func (s *Stack) RedoDepth() int {
	return len(s.redo)
}

// Reset replaces the tracked content and drops both histories. Used when a
// fresh template wipes the field wholesale.
func (s *Stack) Reset(value string) {
	s.current = value
	s.undo = s.undo[:0]
	s.redo = s.redo[:0]
}
