package pager

import "github.com/Iron-Ham/skim/internal/keymap"

// Mode is the dispatcher state.
type Mode int

const (
	// ModeNormal interprets keys as navigation commands.
	ModeNormal Mode = iota
	// ModeSearchEdit interprets keys as edits to the pending query.
	ModeSearchEdit
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeSearchEdit:
		return "search"
	default:
		return "unknown"
	}
}

// Prompt returns the character shown at the start of the prompt row.
func (m Mode) Prompt() rune {
	if m == ModeSearchEdit {
		return '/'
	}
	return ':'
}

func (m Mode) keymapMode() keymap.Mode {
	if m == ModeSearchEdit {
		return keymap.ModeSearch
	}
	return keymap.ModeNormal
}

// Effect is a request the dispatcher cannot satisfy itself and hands to
// the driver.
type Effect int

const (
	EffectNone Effect = iota
	// EffectQuit asks the driver to end the session.
	EffectQuit
	// EffectToggleHelp asks the driver to show or hide the key help.
	EffectToggleHelp
)
