// Package keymap maps decoded keys to pager commands. Bindings are
// mode-aware and declarative so the defaults can be overridden from the
// config file and rendered as help.
package keymap

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode names a set of active bindings.
type Mode string

const (
	ModeNormal Mode = "normal" // Navigation keys
	ModeSearch Mode = "search" // Editing the search query (after /)
)

// Modes lists every mode in display order.
func Modes() []Mode {
	return []Mode{ModeNormal, ModeSearch}
}

// Command represents a named action that can be triggered by a key binding.
type Command string

// Normal mode commands
const (
	CmdScrollDown   Command = "scroll_down"
	CmdScrollUp     Command = "scroll_up"
	CmdHalfPageDown Command = "half_page_down"
	CmdHalfPageUp   Command = "half_page_up"
	CmdGotoStart    Command = "goto_start"
	CmdGotoEnd      Command = "goto_end"
	CmdNextMatch    Command = "next_match"
	CmdPrevMatch    Command = "prev_match"
	CmdEnterSearch  Command = "enter_search"
	CmdToggleHelp   Command = "toggle_help"
	CmdQuit         Command = "quit"
)

// Search mode commands
const (
	CmdInsertChar   Command = "insert_char"
	CmdDeleteBack   Command = "delete_back"
	CmdClearPending Command = "clear_pending"
	CmdCancelSearch Command = "cancel_search"
	CmdCommitSearch Command = "commit_search"
)

// Key is a single decoded keypress.
type Key struct {
	// Type is the bubbletea key type. Printable characters are tea.KeyRunes.
	Type tea.KeyType
	// Rune is the character for tea.KeyRunes and tea.KeySpace keys.
	Rune rune
	// Alt is set when the key was pressed with Alt/Meta.
	Alt bool
}

// RuneKey returns the key for a printable character.
func RuneKey(r rune) Key {
	if r == ' ' {
		return Key{Type: tea.KeySpace, Rune: ' '}
	}
	return Key{Type: tea.KeyRunes, Rune: r}
}

// TypeKey returns the key for a special key such as tea.KeyEnter.
func TypeKey(t tea.KeyType) Key {
	if t == tea.KeySpace {
		return Key{Type: tea.KeySpace, Rune: ' '}
	}
	return Key{Type: t}
}

// FromMsg splits a bubbletea key message into keys. A message carrying
// several runes (a paste) yields one key per rune.
func FromMsg(msg tea.KeyMsg) []Key {
	switch msg.Type {
	case tea.KeyRunes:
		keys := make([]Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			k := RuneKey(r)
			k.Alt = msg.Alt
			keys = append(keys, k)
		}
		return keys
	default:
		k := TypeKey(msg.Type)
		k.Alt = msg.Alt
		return []Key{k}
	}
}

// Printable reports whether the key inserts text.
func (k Key) Printable() bool {
	return !k.Alt && (k.Type == tea.KeyRunes || k.Type == tea.KeySpace) && k.Rune != 0
}

// String returns the key in the same syntax ParseKeySpec accepts.
func (k Key) String() string {
	prefix := ""
	if k.Alt {
		prefix = "alt+"
	}
	switch k.Type {
	case tea.KeyRunes:
		return prefix + string(k.Rune)
	case tea.KeySpace:
		return prefix + "space"
	default:
		return prefix + k.Type.String()
	}
}

// KeyBinding represents a single key binding configuration.
type KeyBinding struct {
	// Key is the bound key. A tea.KeyRunes key with a zero Rune matches any
	// printable character.
	Key Key

	// Command is the action to execute when this binding is triggered.
	Command Command

	// Description is a human-readable description for help display.
	Description string

	// Category groups related bindings together in help display.
	Category string
}

// Matches reports whether k triggers this binding.
func (kb KeyBinding) Matches(k Key) bool {
	if k.Alt != kb.Key.Alt {
		return false
	}
	if kb.Key.Type != tea.KeyRunes {
		return k.Type == kb.Key.Type
	}
	if k.Type != tea.KeyRunes || k.Rune == 0 {
		return false
	}
	return kb.Key.Rune == 0 || kb.Key.Rune == k.Rune
}

// catchAll reports whether the binding matches every printable character.
func (kb KeyBinding) catchAll() bool {
	return kb.Key.Type == tea.KeyRunes && kb.Key.Rune == 0
}

// ModeBindings holds all key bindings for a specific mode. The first
// matching binding wins.
type ModeBindings struct {
	Mode     Mode
	Bindings []KeyBinding
}

// Lookup returns the command bound to k.
func (mb *ModeBindings) Lookup(k Key) (Command, bool) {
	for _, binding := range mb.Bindings {
		if binding.Matches(k) {
			return binding.Command, true
		}
	}
	return "", false
}

// Keymap contains all key bindings organized by mode.
type Keymap struct {
	// Name identifies this keymap.
	Name string

	// Modes maps each mode to its bindings.
	Modes map[Mode]*ModeBindings
}

// Lookup returns the command bound to k in mode.
func (km *Keymap) Lookup(mode Mode, k Key) (Command, bool) {
	mb, ok := km.Modes[mode]
	if !ok {
		return "", false
	}
	return mb.Lookup(k)
}

// Bindings returns all bindings for a mode.
func (km *Keymap) Bindings(mode Mode) []KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}
	return mb.Bindings
}

// BindingsForCommand returns every binding of cmd in mode.
func (km *Keymap) BindingsForCommand(mode Mode, cmd Command) []KeyBinding {
	var result []KeyBinding
	for _, binding := range km.Bindings(mode) {
		if binding.Command == cmd {
			result = append(result, binding)
		}
	}
	return result
}

// Categories returns the categories of a mode in first-seen order.
func (km *Keymap) Categories(mode Mode) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, binding := range km.Bindings(mode) {
		if binding.Category != "" && !seen[binding.Category] {
			seen[binding.Category] = true
			categories = append(categories, binding.Category)
		}
	}
	return categories
}

// BindingsByCategory returns bindings grouped by category for a mode.
func (km *Keymap) BindingsByCategory(mode Mode) map[string][]KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}

	result := make(map[string][]KeyBinding)
	for _, binding := range mb.Bindings {
		cat := binding.Category
		if cat == "" {
			cat = "Other"
		}
		result[cat] = append(result[cat], binding)
	}
	return result
}

// ParseKeySpec parses a key specification such as "j", "G", "ctrl+u",
// "enter", "space", "alt+n" or "f1".
func ParseKeySpec(spec string) (Key, error) {
	var k Key
	remaining := spec
	ctrl := false
	for {
		switch {
		case len(remaining) > 5 && strings.EqualFold(remaining[:5], "ctrl+"):
			ctrl = true
			remaining = remaining[5:]
		case len(remaining) > 4 && strings.EqualFold(remaining[:4], "alt+"):
			k.Alt = true
			remaining = remaining[4:]
		case len(remaining) > 6 && strings.EqualFold(remaining[:6], "shift+"):
			if !strings.EqualFold(remaining[6:], "tab") {
				return Key{}, fmt.Errorf("unrecognized key spec: %s", spec)
			}
			k.Type = tea.KeyShiftTab
			return k, nil
		default:
			goto parseKey
		}
	}

parseKey:
	if t, ok := namedKeys[strings.ToLower(remaining)]; ok {
		if ctrl {
			return Key{}, fmt.Errorf("unrecognized key spec: %s", spec)
		}
		k.Type = t
		if t == tea.KeySpace {
			k.Rune = ' '
		}
		return k, nil
	}

	if ctrl {
		if len(remaining) == 1 {
			ch := remaining[0] | 0x20 // ctrl+U and ctrl+u are the same key
			if ch >= 'a' && ch <= 'z' {
				k.Type = tea.KeyCtrlA + tea.KeyType(ch-'a')
				return k, nil
			}
		}
		return Key{}, fmt.Errorf("unrecognized key spec: %s", spec)
	}

	if len(remaining) >= 2 && (remaining[0] == 'f' || remaining[0] == 'F') {
		var n int
		if _, err := fmt.Sscanf(remaining[1:], "%d", &n); err == nil && n >= 1 && n <= 12 {
			k.Type = functionKeys[n-1]
			return k, nil
		}
	}

	if utf8.RuneCountInString(remaining) == 1 {
		r, _ := utf8.DecodeRuneInString(remaining)
		if r == ' ' {
			k.Type, k.Rune = tea.KeySpace, ' '
			return k, nil
		}
		k.Type, k.Rune = tea.KeyRunes, r
		return k, nil
	}

	return Key{}, fmt.Errorf("unrecognized key spec: %s", spec)
}

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"tab":       tea.KeyTab,
	"esc":       tea.KeyEsc,
	"escape":    tea.KeyEsc,
	"space":     tea.KeySpace,
	"backspace": tea.KeyBackspace,
	"delete":    tea.KeyDelete,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
	"pgup":      tea.KeyPgUp,
	"pageup":    tea.KeyPgUp,
	"pgdown":    tea.KeyPgDown,
	"pagedown":  tea.KeyPgDown,
	"insert":    tea.KeyInsert,
}

var functionKeys = []tea.KeyType{
	tea.KeyF1, tea.KeyF2, tea.KeyF3, tea.KeyF4, tea.KeyF5, tea.KeyF6,
	tea.KeyF7, tea.KeyF8, tea.KeyF9, tea.KeyF10, tea.KeyF11, tea.KeyF12,
}
