// Package markdown renders markdown documents for the terminal.
package markdown

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// noMarginStyle removes the document margins glamour adds by default.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Styles accepted by New. An empty style detects the terminal background.
var Styles = []string{"dark", "light", "notty"}

// Renderer wraps glamour with retrolex's document settings.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
	style    string
}

// New creates a renderer wrapping at width in the named glamour style.
func New(width int, style string) (*Renderer, error) {
	styleOpt := glamour.WithAutoStyle()
	if style != "" {
		if !validStyle(style) {
			return nil, fmt.Errorf("unknown markdown style %q", style)
		}
		styleOpt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width, style: style}, nil
}

func validStyle(style string) bool {
	for _, s := range Styles {
		if s == style {
			return true
		}
	}
	return false
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}

// Wrap word-wraps plain text to width and indents every line by pad spaces.
func Wrap(text string, width int, pad uint) string {
	wrapped := wordwrap.String(text, max(1, width-int(pad)))
	if pad == 0 {
		return wrapped
	}
	return indent.String(wrapped, pad)
}
