package keymap

import tea "github.com/charmbracelet/bubbletea"

type commandHelp struct {
	mode        Mode
	description string
	category    string
}

// commands is the registry of every bindable command.
var commands = map[Command]commandHelp{
	CmdScrollDown:   {ModeNormal, "Scroll down one line", "Scrolling"},
	CmdScrollUp:     {ModeNormal, "Scroll up one line", "Scrolling"},
	CmdHalfPageDown: {ModeNormal, "Scroll down half a page", "Scrolling"},
	CmdHalfPageUp:   {ModeNormal, "Scroll up half a page", "Scrolling"},
	CmdGotoStart:    {ModeNormal, "Go to start", "Scrolling"},
	CmdGotoEnd:      {ModeNormal, "Go to end", "Scrolling"},
	CmdNextMatch:    {ModeNormal, "Next match", "Search"},
	CmdPrevMatch:    {ModeNormal, "Previous match", "Search"},
	CmdEnterSearch:  {ModeNormal, "Search", "Search"},
	CmdToggleHelp:   {ModeNormal, "Toggle help", "Application"},
	CmdQuit:         {ModeNormal, "Quit", "Application"},

	CmdInsertChar:   {ModeSearch, "Type query", "Editing"},
	CmdDeleteBack:   {ModeSearch, "Delete character", "Editing"},
	CmdClearPending: {ModeSearch, "Clear query", "Editing"},
	CmdCancelSearch: {ModeSearch, "Cancel search", "Query"},
	CmdCommitSearch: {ModeSearch, "Run search", "Query"},
}

// validIn reports whether cmd may be bound in mode. Quit is available
// everywhere.
func validIn(cmd Command, mode Mode) bool {
	h, ok := commands[cmd]
	return ok && (h.mode == mode || cmd == CmdQuit)
}

func bind(k Key, cmd Command) KeyBinding {
	h := commands[cmd]
	return KeyBinding{Key: k, Command: cmd, Description: h.description, Category: h.category}
}

// DefaultKeymap returns the built-in bindings.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name: "default",
		Modes: map[Mode]*ModeBindings{
			ModeNormal: defaultNormalBindings(),
			ModeSearch: defaultSearchBindings(),
		},
	}
}

func defaultNormalBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeNormal,
		Bindings: []KeyBinding{
			bind(TypeKey(tea.KeyDown), CmdScrollDown),
			bind(RuneKey('j'), CmdScrollDown),
			bind(TypeKey(tea.KeyEnter), CmdScrollDown),
			bind(TypeKey(tea.KeyUp), CmdScrollUp),
			bind(RuneKey('k'), CmdScrollUp),

			bind(RuneKey('f'), CmdHalfPageDown),
			bind(RuneKey('d'), CmdHalfPageDown),
			bind(TypeKey(tea.KeySpace), CmdHalfPageDown),
			bind(RuneKey('b'), CmdHalfPageUp),
			bind(RuneKey('u'), CmdHalfPageUp),

			bind(RuneKey('g'), CmdGotoStart),
			bind(RuneKey('G'), CmdGotoEnd),

			bind(RuneKey('/'), CmdEnterSearch),
			bind(RuneKey('n'), CmdNextMatch),
			bind(RuneKey('N'), CmdPrevMatch),

			bind(RuneKey('?'), CmdToggleHelp),
			bind(RuneKey('q'), CmdQuit),
			bind(TypeKey(tea.KeyCtrlC), CmdQuit),
		},
	}
}

func defaultSearchBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeSearch,
		Bindings: []KeyBinding{
			bind(TypeKey(tea.KeyEnter), CmdCommitSearch),
			bind(TypeKey(tea.KeyEsc), CmdCancelSearch),
			bind(RuneKey('q'), CmdCancelSearch),
			bind(TypeKey(tea.KeyBackspace), CmdDeleteBack),
			bind(TypeKey(tea.KeyCtrlU), CmdClearPending),
			bind(TypeKey(tea.KeyCtrlC), CmdQuit),

			// Must stay last: matches every printable rune.
			bind(TypeKey(tea.KeySpace), CmdInsertChar),
			bind(Key{Type: tea.KeyRunes}, CmdInsertChar),
		},
	}
}
