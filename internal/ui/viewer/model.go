// Package viewer is a read-only terminal viewer for retro source files.
// Only the visible window plus a margin is scanned; scan states for the lines
// above come from the buffer's checkpoints.
package viewer

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/retrolex/internal/dialect"
	"github.com/zjrosen/retrolex/internal/highlight"
	"github.com/zjrosen/retrolex/internal/keys"
	"github.com/zjrosen/retrolex/internal/log"
	"github.com/zjrosen/retrolex/internal/pubsub"
	"github.com/zjrosen/retrolex/internal/session"
)

const wheelStep = 3

// Config holds viewer options.
type Config struct {
	Path          string
	Margin        int
	TabWidth      int
	LineNumbers   bool
	ShowStatusBar bool

	// Load re-reads the file. Nil disables reloading.
	Load func() (string, error)
	// OnModeChange is called with the new mode id after the dialect is
	// cycled, typically to remember it for the file.
	OnModeChange func(mode string) error
	// FileEvents delivers ReloadedEvents from a file watcher.
	FileEvents *pubsub.Broker[string]
}

// Model is the bubbletea model of the viewer.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	buf   *session.Buffer
	theme *highlight.Theme
	cfg   Config
	help  help.Model

	width, height int
	top, cursor   int
	showHelp      bool

	// window holds scanned lines [windowStart, windowStart+len(window))
	window      []session.LineResult
	windowStart int

	status string

	sessionEvents *pubsub.ContinuousListener[session.Event]
	fileEvents    *pubsub.ContinuousListener[string]
	logEvents     *log.Listener
}

// New creates a viewer over buf.
func New(ctx context.Context, buf *session.Buffer, theme *highlight.Theme, cfg Config) Model {
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = highlight.DefaultTabWidth
	}
	if cfg.Margin < 0 {
		cfg.Margin = 0
	}
	ctx, cancel := context.WithCancel(ctx)

	m := Model{
		ctx:    ctx,
		cancel: cancel,
		buf:    buf,
		theme:  theme,
		cfg:    cfg,
		help:   help.New(),
		sessionEvents: pubsub.NewFilteredListener(ctx, buf.Events(), func(e pubsub.Event[session.Event]) bool {
			return e.Payload.BufferID == buf.ID()
		}),
	}
	if cfg.FileEvents != nil {
		m.fileEvents = pubsub.NewFilteredListener(ctx, cfg.FileEvents, func(e pubsub.Event[string]) bool {
			return e.Type == pubsub.ReloadedEvent
		})
	}
	m.logEvents = log.NewListener(ctx, log.LevelWarn)
	return m
}

// Init starts listening for buffer and file events.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.sessionEvents.Listen()}
	if m.fileEvents != nil {
		cmds = append(cmds, m.fileEvents.Listen())
	}
	if m.logEvents != nil {
		cmds = append(cmds, m.logEvents.Listen())
	}
	return tea.Batch(cmds...)
}

// Close stops the event listeners.
func (m Model) Close() {
	m.cancel()
}

// Buffer returns the buffer being viewed.
func (m Model) Buffer() *session.Buffer {
	return m.buf
}

// Cursor returns the selected line index.
func (m Model) Cursor() int {
	return m.cursor
}

// Top returns the first visible line index.
func (m Model) Top() int {
	return m.top
}

// Status returns the status bar message.
func (m Model) Status() string {
	return m.status
}

// SetSize sets the terminal size and rescans the window.
func (m Model) SetSize(width, height int) Model {
	m.width, m.height = width, height
	m.help.Width = width
	m.scroll()
	return m.refresh()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case pubsub.Event[session.Event]:
		log.Debug(log.CatUI, "Buffer event", "type", msg.Type, "from", msg.Payload.FromLine)
		return m.refresh(), m.sessionEvents.Listen()

	case pubsub.Event[string]:
		switch {
		case msg.Type == pubsub.LoggedEvent && m.logEvents != nil:
			m.status = strings.TrimSpace(msg.Payload)
			return m, m.logEvents.Listen()
		case msg.Type == pubsub.ReloadedEvent && m.fileEvents != nil:
			return m.reload(), m.fileEvents.Listen()
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := keys.Viewer
	switch {
	case key.Matches(msg, k.Quit):
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, k.Up):
		m.cursor--
	case key.Matches(msg, k.Down):
		m.cursor++
	case key.Matches(msg, k.PageUp):
		m.cursor -= m.bodyHeight()
		m.top -= m.bodyHeight()
	case key.Matches(msg, k.PageDown):
		m.cursor += m.bodyHeight()
		m.top += m.bodyHeight()
	case key.Matches(msg, k.Top):
		m.cursor = 0
	case key.Matches(msg, k.Bottom):
		m.cursor = m.buf.Len() - 1
	case key.Matches(msg, k.CycleMode):
		m = m.cycleMode()
	case key.Matches(msg, k.Inspect):
		m = m.inspect(m.clampedCursor())
	case key.Matches(msg, k.Reload):
		m = m.reload()
	case key.Matches(msg, k.ToggleLines):
		m.cfg.LineNumbers = !m.cfg.LineNumbers
	case key.Matches(msg, k.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	default:
		return m, nil
	}
	m.scroll()
	return m.refresh(), nil
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.top -= wheelStep
		m.cursor = min(m.cursor, m.top+m.bodyHeight()-1)
		m.cursor = max(m.cursor, m.top)
	case tea.MouseButtonWheelDown:
		m.top += wheelStep
		m.cursor = max(m.cursor, m.top)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionRelease {
			return m
		}
		for i := m.top; i < m.visibleEnd(); i++ {
			if z := zone.Get(lineZoneID(i)); z != nil && z.InBounds(msg) {
				m.cursor = i
				m = m.inspect(i)
				break
			}
		}
	default:
		return m
	}
	m.scroll()
	return m.refresh()
}

// cycleMode switches the buffer to the next dialect, which resets every
// scan state.
func (m Model) cycleMode() Model {
	ids := dialect.IDs()
	current := m.buf.Dialect().ID
	next := ids[0]
	for i, id := range ids {
		if id == current {
			next = ids[(i+1)%len(ids)]
			break
		}
	}

	d := dialect.ResolveOrPlain(next)
	m.buf.SetDialect(d)
	m.status = "mode: " + d.Name
	log.Info(log.CatUI, "Cycled dialect", "from", current, "to", next)

	if m.cfg.OnModeChange != nil {
		if err := m.cfg.OnModeChange(next); err != nil {
			log.ErrorErr(log.CatUI, "Mode change hook failed", err, "mode", next)
			m.status = fmt.Sprintf("mode: %s (not saved: %v)", d.Name, err)
		}
	}
	return m
}

// inspect shows the span breakdown of line i in the status bar.
func (m Model) inspect(i int) Model {
	res, err := m.buf.Line(m.ctx, i)
	if err != nil {
		m.status = err.Error()
		return m
	}
	m.status = res.Breakdown()
	return m
}

func (m Model) reload() Model {
	if m.cfg.Load == nil {
		m.status = "reload unavailable"
		return m
	}
	text, err := m.cfg.Load()
	if err != nil {
		log.ErrorErr(log.CatUI, "Reload failed", err, "path", m.cfg.Path)
		m.status = "reload failed: " + err.Error()
		return m
	}

	first := m.buf.SetText(text)
	if first < 0 {
		m.status = "reloaded (no changes)"
	} else {
		m.status = fmt.Sprintf("reloaded (changed from line %d)", first+1)
	}
	m.scroll()
	return m.refresh()
}

// scroll clamps cursor and top and keeps the cursor visible.
func (m *Model) scroll() {
	n := m.buf.Len()
	body := m.bodyHeight()

	m.cursor = max(0, min(m.cursor, n-1))
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if body > 0 && m.cursor >= m.top+body {
		m.top = m.cursor - body + 1
	}
	m.top = max(0, min(m.top, n-max(body, 1)))
}

// refresh scans the visible window plus the margin on both sides.
func (m Model) refresh() Model {
	if m.height <= 0 {
		return m
	}
	n := m.buf.Len()
	m.scroll()
	lo := max(0, m.top-m.cfg.Margin)
	hi := min(n, m.top+m.bodyHeight()+m.cfg.Margin)
	if hi <= lo {
		hi = min(n, lo+1)
	}

	res, err := m.buf.Range(m.ctx, lo, hi)
	if err != nil {
		log.ErrorErr(log.CatUI, "Failed to scan window", err, "from", lo, "to", hi)
		m.status = err.Error()
		m.window = nil
		return m
	}
	m.window = res
	m.windowStart = lo
	return m
}

func (m Model) clampedCursor() int {
	return max(0, min(m.cursor, m.buf.Len()-1))
}

func (m Model) bodyHeight() int {
	h := m.height
	if m.cfg.ShowStatusBar {
		h--
	}
	if m.showHelp {
		h -= strings.Count(m.help.View(keys.Viewer), "\n") + 1
	}
	return max(h, 1)
}

func (m Model) visibleEnd() int {
	return min(m.buf.Len(), m.top+m.bodyHeight())
}

func lineZoneID(i int) string {
	return fmt.Sprintf("viewer-line-%d", i)
}
