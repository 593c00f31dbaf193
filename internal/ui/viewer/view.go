package viewer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/retrolex/internal/highlight"
	"github.com/zjrosen/retrolex/internal/keys"
)

// View renders the viewer.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	var b strings.Builder
	body := m.bodyHeight()
	gutter := len(fmt.Sprint(m.buf.Len()))

	for row := 0; row < body; row++ {
		i := m.top + row
		if row > 0 {
			b.WriteByte('\n')
		}
		if i >= m.buf.Len() {
			b.WriteString(m.theme.TokenStyle(highlight.TokenLineNumber).Render("~"))
			continue
		}
		b.WriteString(zone.Mark(lineZoneID(i), m.renderLine(i, gutter)))
	}

	if m.cfg.ShowStatusBar {
		b.WriteByte('\n')
		b.WriteString(m.statusBar())
	}
	if m.showHelp {
		b.WriteByte('\n')
		b.WriteString(m.help.View(keys.Viewer))
	}
	return zone.Scan(b.String())
}

func (m Model) renderLine(i, gutter int) string {
	var line string
	if m.cfg.LineNumbers {
		style := m.theme.TokenStyle(highlight.TokenLineNumber)
		if i == m.cursor {
			style = m.theme.TokenStyle(highlight.TokenLabel).Bold(true)
		}
		line = style.Render(fmt.Sprintf("%*d ", gutter, i+1))
	} else if i == m.cursor {
		line = m.theme.TokenStyle(highlight.TokenStatusAccent).Render(">")
	} else {
		line = " "
	}

	j := i - m.windowStart
	if j >= 0 && j < len(m.window) {
		res := m.window[j]
		line += highlight.RenderLine(res.Text, res.Spans, m.theme, m.cfg.TabWidth)
	}
	return ansi.Truncate(line, m.width, "…")
}

func (m Model) statusBar() string {
	name := filepath.Base(m.cfg.Path)
	if m.cfg.Path == "" {
		name = "[stdin]"
	}
	left := fmt.Sprintf(" %s │ %s ", name, m.buf.Dialect().Name)
	if m.status != "" {
		left += "│ " + m.status + " "
	}
	right := fmt.Sprintf(" %d/%d ", m.clampedCursor()+1, m.buf.Len())

	avail := m.width - runewidth.StringWidth(right)
	if avail < 1 {
		return m.theme.TokenStyle(highlight.TokenStatusAccent).Render(runewidth.Truncate(right, m.width, ""))
	}
	left = runewidth.FillRight(runewidth.Truncate(left, avail, "…"), avail)

	return m.theme.TokenStyle(highlight.TokenStatusText).Render(left) +
		m.theme.TokenStyle(highlight.TokenStatusAccent).Render(right)
}
