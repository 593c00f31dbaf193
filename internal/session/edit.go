package session

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/zjrosen/retrolex/internal/dialect"
	"github.com/zjrosen/retrolex/internal/log"
	"github.com/zjrosen/retrolex/internal/pubsub"
	"github.com/zjrosen/retrolex/internal/scan"
)

// SetText replaces the whole document. Checkpoints before the first changed
// line survive. It returns that line, or -1 when nothing changed.
func (b *Buffer) SetText(text string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	newLines := SplitLines(text)
	first := firstChangedLine(b.lines, newLines)
	if first < 0 {
		if len(newLines) == len(b.lines) {
			return -1
		}
		first = 0
	}

	b.setLines(newLines)
	b.invalidateFrom(first)
	return first
}

// ReplaceLines replaces lines [start, end) with lines, the primitive behind
// editor edits. Inserting is start == end; deleting passes no lines.
func (b *Buffer) ReplaceLines(start, end int, lines ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || end < start || end > len(b.lines) {
		return fmt.Errorf("%w: replace [%d, %d) of %d lines", ErrLineOutOfRange, start, end, len(b.lines))
	}

	next := make([]string, 0, len(b.lines)-(end-start)+len(lines))
	next = append(next, b.lines[:start]...)
	next = append(next, lines...)
	next = append(next, b.lines[end:]...)

	b.setLines(next)
	b.invalidateFrom(start)
	return nil
}

// SetDialect switches the buffer to d and drops every checkpoint; states
// produced under one dialect are never fed to another.
func (b *Buffer) SetDialect(d *dialect.Dialect) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if d == b.d {
		return
	}
	log.Info(log.CatSession, "Dialect changed", "id", b.id, "from", b.d.ID, "to", d.ID)
	b.d = d
	b.resetCheckpoints()
	b.broker.Publish(pubsub.DialectChangedEvent, Event{BufferID: b.id, FromLine: 0, Dialect: d.ID})
}

// setLines installs new lines and resizes the checkpoint table, keeping the
// known prefix.
func (b *Buffer) setLines(lines []string) {
	b.lines = lines
	entries := make([]scan.State, len(lines)+1)
	copy(entries, b.entries)
	b.entries = entries
	if b.known > len(entries) {
		b.known = len(entries)
	}
}

func (b *Buffer) resetCheckpoints() {
	b.entries[0] = scan.InitialState()
	b.known = 1
}

// invalidateFrom forgets the entry states of every line after line. The
// entry state of line itself depends only on earlier lines and stays.
func (b *Buffer) invalidateFrom(line int) {
	if b.known > line+1 {
		b.known = line + 1
	}
	log.Debug(log.CatSession, "Checkpoints invalidated", "id", b.id, "from", line, "known", b.known)
	b.broker.Publish(pubsub.InvalidatedEvent, Event{BufferID: b.id, FromLine: line, Dialect: b.d.ID})
}

// firstChangedLine returns the index of the first line that differs between
// old and next, or -1 if they are identical.
func firstChangedLine(old, next []string) int {
	a, c := strings.Join(old, "\n"), strings.Join(next, "\n")
	if a == c {
		return -1
	}

	dmp := diffmatchpatch.New()
	ca, cb, lineArray := dmp.DiffLinesToChars(a, c)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lineArray)

	line := 0
	for _, d := range diffs {
		if d.Type != diffmatchpatch.DiffEqual {
			return line
		}
		line += strings.Count(d.Text, "\n")
	}
	return line
}
