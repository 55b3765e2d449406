package models

// BatchLine is one composed prompt row held in the transient batch list.
// Parts keeps the three source segments so an edit can re-render the line.
type BatchLine struct {
	Parts    PromptParts
	Rendered string
}
