// Package pager is the interactive core of skim: a two-mode state machine
// that turns keys into viewport movement and search edits, and produces a
// snapshot of what should be on screen after every event.
//
// The dispatcher is not safe for concurrent use. The driver delivers one
// event at a time and reads Frame between events.
package pager

import (
	"github.com/Iron-Ham/skim/internal/keymap"
	"github.com/Iron-Ham/skim/internal/logging"
	"github.com/Iron-Ham/skim/internal/search"
	"github.com/Iron-Ham/skim/internal/viewport"
)

// promptRows is the number of terminal rows not available for content.
const promptRows = 1

// Dispatcher owns the viewport and search state of one session.
type Dispatcher struct {
	src    search.Source
	keys   *keymap.Keymap
	logger *logging.Logger

	mode    Mode
	view    *viewport.Viewport
	search  searchState
	message string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithKeymap replaces the default key bindings.
func WithKeymap(km *keymap.Keymap) Option {
	return func(d *Dispatcher) {
		if km != nil {
			d.keys = km
		}
	}
}

// WithLogger sets the logger used for mode transitions.
func WithLogger(l *logging.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l.WithComponent("pager")
		}
	}
}

// New creates a dispatcher in Normal mode at the top of src. height is the
// full terminal height including the prompt row.
func New(src search.Source, height int, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		src:    src,
		keys:   keymap.DefaultKeymap(),
		logger: logging.NopLogger(),
		mode:   ModeNormal,
		view:   viewport.New(src.LineCount(), contentHeight(height)),
		search: newSearchState(src),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func contentHeight(terminalHeight int) int {
	return max(1, terminalHeight-promptRows)
}

// HandleKey processes one key to completion. Keys with no binding in the
// current mode are ignored.
func (d *Dispatcher) HandleKey(k keymap.Key) Effect {
	d.message = ""

	cmd, ok := d.keys.Lookup(d.mode.keymapMode(), k)
	if !ok {
		return EffectNone
	}

	var t transition
	switch d.mode {
	case ModeNormal:
		t = handleNormal(navigator{view: d.view, search: &d.search, status: &d.message}, cmd)
	case ModeSearchEdit:
		t = handleSearchEdit(highlighter{search: &d.search, status: &d.message}, cmd, k)
	}
	return d.apply(t)
}

// Resize re-clamps the viewport to a new terminal size. Width does not
// affect the core; lines are truncated by the renderer.
func (d *Dispatcher) Resize(width, height int) {
	d.message = ""
	d.view.Resize(contentHeight(height))
	d.logger.Debug("resized", "width", width, "height", height, "top", d.view.Top())
}

type transition int

const (
	stay transition = iota
	toSearchEdit
	toNormal
	quit
	toggleHelp
)

func (d *Dispatcher) apply(t transition) Effect {
	switch t {
	case toSearchEdit:
		d.mode = ModeSearchEdit
		d.logger.Debug("mode changed", "mode", d.mode.String(), "pending", d.search.pending)
	case toNormal:
		d.mode = ModeNormal
		d.logger.Debug("mode changed",
			"mode", d.mode.String(),
			"query", d.search.committed.Query(),
			"matches", d.search.committed.Len())
	case quit:
		return EffectQuit
	case toggleHelp:
		return EffectToggleHelp
	}
	return EffectNone
}

func handleNormal(nav navigator, cmd keymap.Command) transition {
	switch cmd {
	case keymap.CmdScrollDown:
		nav.view.ScrollBy(1)
	case keymap.CmdScrollUp:
		nav.view.ScrollBy(-1)
	case keymap.CmdHalfPageDown:
		nav.view.HalfPageDown()
	case keymap.CmdHalfPageUp:
		nav.view.HalfPageUp()
	case keymap.CmdGotoStart:
		nav.view.GotoStart()
	case keymap.CmdGotoEnd:
		nav.view.GotoEnd()
	case keymap.CmdNextMatch:
		nav.jump(true)
	case keymap.CmdPrevMatch:
		nav.jump(false)
	case keymap.CmdEnterSearch:
		nav.begin()
		return toSearchEdit
	case keymap.CmdToggleHelp:
		return toggleHelp
	case keymap.CmdQuit:
		return quit
	}
	return stay
}

func handleSearchEdit(hl highlighter, cmd keymap.Command, k keymap.Key) transition {
	switch cmd {
	case keymap.CmdInsertChar:
		if k.Printable() {
			hl.insert(k.Rune)
		}
	case keymap.CmdDeleteBack:
		hl.deleteBack()
	case keymap.CmdClearPending:
		hl.clear()
	case keymap.CmdCommitSearch:
		hl.commit()
		return toNormal
	case keymap.CmdCancelSearch:
		hl.cancel()
		return toNormal
	case keymap.CmdQuit:
		return quit
	}
	return stay
}

// Mode returns the current mode.
func (d *Dispatcher) Mode() Mode { return d.mode }

// Top returns the first visible line.
func (d *Dispatcher) Top() int { return d.view.Top() }

// Height returns the number of content rows.
func (d *Dispatcher) Height() int { return d.view.Height() }

// Query returns the committed query.
func (d *Dispatcher) Query() string { return d.search.committed.Query() }

// Pending returns the query being edited.
func (d *Dispatcher) Pending() string { return d.search.pending }

// Matches returns the matches of the committed query.
func (d *Dispatcher) Matches() []search.MatchSpan { return d.search.committed.Matches() }

// Preview returns the live matches of the pending query.
func (d *Dispatcher) Preview() []search.MatchSpan { return d.search.preview.Matches() }

// Cursor returns the index of the current match, or -1.
func (d *Dispatcher) Cursor() int { return d.search.cursor }

// Message returns the status message produced by the last event.
func (d *Dispatcher) Message() string { return d.message }

// Keymap returns the active key bindings.
func (d *Dispatcher) Keymap() *keymap.Keymap { return d.keys }
