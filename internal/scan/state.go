// Package scan implements the line-at-a-time tokenizer. It classifies each
// line of source text into contiguous spans and threads a small State value
// from one line to the next so strings left open at the end of a line carry
// over.
package scan

import "github.com/zjrosen/retrolex/internal/dialect"

// State is the carry-over between successive lines of one buffer.
// Delimiter is only meaningful while InString is true.
type State struct {
	InString    bool `json:"in_string" yaml:"in_string"`
	Delimiter   byte `json:"delimiter,omitempty" yaml:"delimiter,omitempty"`
	AtLineStart bool `json:"at_line_start" yaml:"at_line_start"`
}

// InitialState is the state for the first line of a buffer and for any
// buffer whose dialect has just changed.
func InitialState() State {
	return State{AtLineStart: true}
}

// sanitize drops string state that cannot belong to d, which happens when a
// host switches dialect without resetting its states.
func (s State) sanitize(d *dialect.Dialect) State {
	if s.InString && (s.Delimiter == 0 || !d.IsStringDelimiter(s.Delimiter)) {
		return InitialState()
	}
	if !s.InString {
		s.Delimiter = 0
	}
	return s
}

// next returns the state that begins the following line.
func (s State) next() State {
	if s.InString {
		return State{InString: true, Delimiter: s.Delimiter}
	}
	return InitialState()
}
