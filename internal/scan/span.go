package scan

import "github.com/zjrosen/retrolex/internal/dialect"

// Span is a classified half-open byte range [Start, End) of one line.
type Span struct {
	Start    int              `json:"start" yaml:"start"`
	End      int              `json:"end" yaml:"end"`
	Category dialect.Category `json:"category" yaml:"category"`
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Text returns the slice of line covered by the span.
func (s Span) Text(line string) string {
	return line[s.Start:s.End]
}
