package session

import (
	"fmt"
	"strings"

	"github.com/zjrosen/retrolex/internal/dialect"
)

// Breakdown lists the classified spans of the line, e.g.
// "L3 LDA:keyword #:operator". Whitespace and unclassified text are left out.
func (r LineResult) Breakdown() string {
	parts := []string{fmt.Sprintf("L%d", r.Index+1)}
	for _, s := range r.Spans {
		if s.Category == dialect.None {
			continue
		}
		parts = append(parts, s.Text(r.Text)+":"+s.Category.String())
	}
	if len(parts) == 1 {
		parts = append(parts, "(no tokens)")
	}
	if r.Exit.InString {
		parts = append(parts, fmt.Sprintf("[string open %q]", r.Exit.Delimiter))
	}
	return strings.Join(parts, " ")
}
