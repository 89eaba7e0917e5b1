package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the palette the catalog views are drawn with.
type Theme struct {
	Name string

	Background string // behind centered dialogs
	Surface    string // header bar

	SelectionBg   string // highlighted row and current page
	SelectionText string
	Border        string // table header rule and panels

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles holds the lipgloss styles built from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style
	Panel    lipgloss.Style
	Modal    lipgloss.Style
}

func (t Theme) fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// Styles builds the styles used by the views.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        t.fg(t.Text),
		MutedText:   t.fg(t.Muted),
		FaintText:   t.fg(t.Faint),
		AccentText:  t.fg(t.Accent),
		SuccessText: t.fg(t.Success).Bold(true),
		WarningText: t.fg(t.Warning),
		DangerText:  t.fg(t.Danger).Bold(true),
		InfoText:    t.fg(t.Info),

		Header: t.fg(t.Text).
			Background(lipgloss.Color(t.Surface)).
			Padding(0, 1),
		Footer:   t.fg(t.Muted).Padding(0, 1),
		Logo:     t.fg(t.Warning).Bold(true),
		Selected: t.fg(t.SelectionText).Background(lipgloss.Color(t.SelectionBg)),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Accent)).
			Padding(1, 2),
	}
}

// ToneStyle returns the banner style for t.
func (s Styles) ToneStyle(t tone) lipgloss.Style {
	switch t {
	case toneSuccess:
		return s.SuccessText
	case toneWarning:
		return s.WarningText.Bold(true)
	case toneInfo:
		return s.InfoText.Bold(true)
	default:
		return s.DangerText
	}
}

// themes is the cycle order of the T key. The first entry is the default.
var themes = []Theme{
	{
		// https://draculatheme.com
		Name:          "Dracula",
		Background:    "#191A21",
		Surface:       "#282A36",
		SelectionBg:   "#44475A",
		SelectionText: "#F8F8F2",
		Border:        "#44475A",
		Text:          "#F8F8F2",
		Muted:         "#6272A4",
		Faint:         "#44475A",
		Accent:        "#BD93F9",
		Success:       "#50FA7B",
		Warning:       "#FFB86C",
		Danger:        "#FF5555",
		Info:          "#8BE9FD",
	},
	{
		// Tailwind slate and sky
		Name:          "Slate",
		Background:    "#020617",
		Surface:       "#0f172a",
		SelectionBg:   "#0284c7",
		SelectionText: "#f8fafc",
		Border:        "#334155",
		Text:          "#f1f5f9",
		Muted:         "#94a3b8",
		Faint:         "#64748b",
		Accent:        "#38bdf8",
		Success:       "#22c55e",
		Warning:       "#f59e0b",
		Danger:        "#ef4444",
		Info:          "#06b6d4",
	},
}

// GetTheme returns the named theme, or the default for unknown names.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the name after current in the cycle.
func NextTheme(current string) string {
	for i, t := range themes {
		if t.Name == current {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}
