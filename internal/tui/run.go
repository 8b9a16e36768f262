package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/skim/internal/errors"
	"github.com/Iron-Ham/skim/internal/pager"
)

// Run owns the terminal for one session. Keys are read from the
// controlling terminal rather than stdin, which may carry the content.
// The alternate screen and raw mode are undone on every exit path,
// including cancellation of ctx, which ends the session without error.
func Run(ctx context.Context, d *pager.Dispatcher, opts ...Option) error {
	m := NewModel(d, opts...)

	programOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithInputTTY(),
		tea.WithContext(ctx),
	}
	programOpts = append(programOpts, m.opts.programOpts...)

	m.logger.Debug("session started", "lines", m.frame.LineCount)
	final, err := tea.NewProgram(m, programOpts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			m.logger.Debug("session cancelled", "cause", ctx.Err())
			return nil
		}
		return errors.Wrap(err, "run pager")
	}

	if fm, ok := final.(Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	m.logger.Debug("session ended")
	return nil
}
