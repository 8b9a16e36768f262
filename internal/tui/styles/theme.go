// Package styles turns the configured theme into lipgloss styles.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/skim/internal/config"
)

var (
	// HelpKeyColor and HelpDescColor are used by the help overlay.
	HelpKeyColor  = lipgloss.Color("#A78BFA")
	HelpDescColor = lipgloss.Color("#9CA3AF")
	HelpSepColor  = lipgloss.Color("#6B7280")
)

// Theme holds the styles the pager renders with.
type Theme struct {
	Match   lipgloss.Style
	Current lipgloss.Style
	Prompt  lipgloss.Style
	Message lipgloss.Style
	// Cursor marks the insertion point while a query is edited.
	Cursor lipgloss.Style
}

// NewTheme builds a Theme from configuration. Colors are assumed to be
// valid; config.Validate rejects anything lipgloss cannot parse.
func NewTheme(tc config.ThemeConfig) Theme {
	return Theme{
		Match:   fromConfig(tc.Match),
		Current: fromConfig(tc.Current),
		Prompt:  fromConfig(tc.Prompt),
		Message: fromConfig(tc.Message),
		Cursor:  lipgloss.NewStyle().Reverse(true),
	}
}

// DefaultTheme is the theme of the default configuration.
func DefaultTheme() Theme {
	return NewTheme(config.Default().Theme)
}

func fromConfig(sc config.StyleConfig) lipgloss.Style {
	s := lipgloss.NewStyle()
	if sc.Foreground != "" {
		s = s.Foreground(lipgloss.Color(sc.Foreground))
	}
	if sc.Background != "" {
		s = s.Background(lipgloss.Color(sc.Background))
	}
	if sc.Bold {
		s = s.Bold(true)
	}
	if sc.Reverse {
		s = s.Reverse(true)
	}
	return s
}
