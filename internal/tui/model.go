// Package tui drives a pager.Dispatcher with bubbletea: it turns terminal
// events into dispatcher events and draws the dispatcher's frames.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/skim/internal/keymap"
	"github.com/Iron-Ham/skim/internal/logging"
	"github.com/Iron-Ham/skim/internal/pager"
	"github.com/Iron-Ham/skim/internal/tui/styles"
)

// Model is the bubbletea model of a pager session.
type Model struct {
	d      *pager.Dispatcher
	opts   options
	logger *logging.Logger

	width, height int
	frame         pager.Frame
	showHelp      bool
	help          help.Model
	helpKeys      helpKeys

	err error
}

// NewModel creates a model for d.
func NewModel(d *pager.Dispatcher, opts ...Option) Model {
	o := newOptions(opts)
	m := Model{
		d:        d,
		opts:     o,
		logger:   o.logger.WithComponent("tui"),
		help:     newHelpModel(),
		helpKeys: newHelpKeys(d.Keymap()),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.d.Resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		for _, k := range keymap.FromMsg(msg) {
			if m.handleKey(k) == pager.EffectQuit {
				return m, tea.Quit
			}
		}

	default:
		return m, nil
	}

	if !m.refresh() {
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleKey(k keymap.Key) pager.Effect {
	if m.showHelp {
		// Any key closes the overlay; quit still quits.
		if cmd, ok := m.d.Keymap().Lookup(keymap.ModeNormal, k); ok && cmd == keymap.CmdQuit {
			return pager.EffectQuit
		}
		m.showHelp = false
		return pager.EffectNone
	}

	effect := m.d.HandleKey(k)
	if effect == pager.EffectToggleHelp {
		m.showHelp = true
	}
	return effect
}

// refresh snapshots the dispatcher. It reports false when the frame could
// not be built; Err then holds the cause.
func (m *Model) refresh() bool {
	f, err := m.d.Frame()
	if err != nil {
		m.err = err
		m.logger.Error("frame failed", "error", err, "top", m.d.Top())
		return false
	}
	m.frame = f
	return true
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.showHelp {
		return renderHelp(m.help, m.helpKeys, m.width, m.height) + "\n" +
			renderPrompt(m.frame, m.width, m.opts.showPosition, m.opts.theme)
	}
	return renderFrame(m.frame, m.width, m.height, m.opts.tabWidth, m.opts.showPosition, m.opts.theme)
}

// Frame returns the last frame drawn.
func (m Model) Frame() pager.Frame { return m.frame }

// ShowingHelp reports whether the help overlay is open.
func (m Model) ShowingHelp() bool { return m.showHelp }

// Err returns the error that ended the session, if any.
func (m Model) Err() error { return m.err }

type options struct {
	theme        styles.Theme
	tabWidth     int
	showPosition bool
	logger       *logging.Logger
	programOpts  []tea.ProgramOption
}

// Option configures the model and program.
type Option func(*options)

func newOptions(opts []Option) options {
	o := options{
		theme:        styles.DefaultTheme(),
		tabWidth:     8,
		showPosition: true,
		logger:       logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithTheme sets the render styles.
func WithTheme(t styles.Theme) Option {
	return func(o *options) { o.theme = t }
}

// WithTabWidth sets the tab stop width.
func WithTabWidth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.tabWidth = n
		}
	}
}

// WithShowPosition toggles the position indicator in the prompt row.
func WithShowPosition(show bool) Option {
	return func(o *options) { o.showPosition = show }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithProgramOptions passes extra options to the bubbletea program, after
// the defaults, so they can replace the terminal input or output.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(o *options) { o.programOpts = append(o.programOpts, opts...) }
}
