package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/skim/internal/keymap"
	"github.com/Iron-Ham/skim/internal/tui/styles"
)

// helpKeys adapts a keymap to bubbles/help. Each column is one category;
// a category used by both modes shares a column and lists each command
// once.
type helpKeys struct {
	columns [][]key.Binding
}

func newHelpKeys(km *keymap.Keymap) helpKeys {
	var (
		order   []string
		columns = make(map[string][]key.Binding)
		shown   = make(map[string]map[keymap.Command]bool)
	)
	for _, mode := range keymap.Modes() {
		byCat := km.BindingsByCategory(mode)
		for _, cat := range km.Categories(mode) {
			if shown[cat] == nil {
				order = append(order, cat)
				shown[cat] = make(map[keymap.Command]bool)
			}
			columns[cat] = append(columns[cat], commandBindings(km, mode, byCat[cat], shown[cat])...)
		}
	}

	h := helpKeys{columns: make([][]key.Binding, 0, len(order))}
	for _, cat := range order {
		h.columns = append(h.columns, columns[cat])
	}
	return h
}

// commandBindings returns one help entry per command in bindings that is
// not already in shown, keeping first-seen order. Each entry lists every
// key bound to the command in mode.
func commandBindings(km *keymap.Keymap, mode keymap.Mode, bindings []keymap.KeyBinding, shown map[keymap.Command]bool) []key.Binding {
	var out []key.Binding
	for _, b := range bindings {
		if shown[b.Command] {
			continue
		}
		shown[b.Command] = true

		var keys []string
		for _, kb := range km.BindingsForCommand(mode, b.Command) {
			keys = append(keys, keyLabel(kb.Key))
		}
		out = append(out, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), b.Description),
		))
	}
	return out
}

func keyLabel(k keymap.Key) string {
	if k.Type == tea.KeyRunes && k.Rune == 0 {
		return "text"
	}
	return k.String()
}

// ShortHelp implements help.KeyMap.
func (h helpKeys) ShortHelp() []key.Binding {
	var out []key.Binding
	for _, col := range h.columns {
		if len(col) > 0 {
			out = append(out, col[0])
		}
	}
	return out
}

// FullHelp implements help.KeyMap.
func (h helpKeys) FullHelp() [][]key.Binding {
	return h.columns
}

func newHelpModel() help.Model {
	m := help.New()
	m.ShowAll = true
	keyStyle := lipgloss.NewStyle().Foreground(styles.HelpKeyColor)
	descStyle := lipgloss.NewStyle().Foreground(styles.HelpDescColor)
	sepStyle := lipgloss.NewStyle().Foreground(styles.HelpSepColor)
	m.Styles.FullKey = keyStyle
	m.Styles.FullDesc = descStyle
	m.Styles.FullSeparator = sepStyle
	m.Styles.ShortKey = keyStyle
	m.Styles.ShortDesc = descStyle
	m.Styles.ShortSeparator = sepStyle
	return m
}

// renderHelp draws the help overlay in place of the content rows.
func renderHelp(h help.Model, keys helpKeys, width, height int) string {
	h.Width = width
	lines := strings.Split(h.View(keys), "\n")

	rows := max(1, height-1)
	if len(lines) > rows {
		lines = lines[:rows]
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
