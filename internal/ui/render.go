package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shelf/internal/state"
)

// renderMain renders the product browser.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSearch())
	b.WriteString("\n")

	if !m.snapshot.Loaded() {
		b.WriteString(m.renderLoadError())
		b.WriteString("\n")
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
		b.WriteString(m.renderPageBar())
		b.WriteString("\n")
	}

	b.WriteString(m.renderBanner())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	parts := []string{styles.Logo.Render("shelf")}

	switch m.snapshot.Source {
	case state.SourceRemote:
		parts = append(parts, styles.SuccessText.Render("● API"))
	case state.SourceMirror:
		parts = append(parts, styles.InfoText.Render("● Local mirror"))
	default:
		parts = append(parts, styles.DangerText.Render("● No data"))
	}

	parts = append(parts, styles.MutedText.Render("Products: ")+styles.Text.Render(fmt.Sprint(m.snapshot.Total)))
	if m.snapshot.Filter != "" {
		parts = append(parts, styles.MutedText.Render("Matches: ")+styles.Text.Render(fmt.Sprint(m.snapshot.Matches)))
	}
	parts = append(parts, styles.MutedText.Render("Per page: ")+styles.Text.Render(fmt.Sprint(m.snapshot.PageSize)))

	if m.busy {
		parts = append(parts, styles.WarningText.Render("Working..."))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderSearch() string {
	if m.mode == modeSearch || m.search.Value() != "" {
		return " " + m.search.View()
	}
	return " " + m.theme.Styles().FaintText.Render("/ to search")
}

// renderPageBar shows the row range on the left and the pager on the right.
func (m Model) renderPageBar() string {
	styles := m.theme.Styles()
	left := styles.MutedText.Render(summary(m.slice.PageInfo))
	right := renderPager(m.links, styles)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 2 {
		gap = 2
	}
	return " " + left + strings.Repeat(" ", gap) + right
}

// renderLoadError replaces the table when nothing could be loaded.
func (m Model) renderLoadError() string {
	styles := m.theme.Styles()

	var b strings.Builder
	if m.snapshot.LoadErr != nil {
		b.WriteString(styles.DangerText.Render("Could not load products"))
		b.WriteString("\n\n")
		b.WriteString(styles.Text.Render(m.snapshot.LoadErr.Error()))
		b.WriteString("\n\n")
		b.WriteString(styles.MutedText.Render("Press R to retry."))
		if m.logFile != "" {
			b.WriteString("\n")
			b.WriteString(styles.FaintText.Render("logs ") + styles.MutedText.Render(m.logFile))
		}
	} else {
		b.WriteString(styles.MutedText.Render("Loading products..."))
	}

	panel := styles.Panel.
		BorderForeground(lipgloss.Color(m.theme.Danger)).
		Width(min(max(m.width-4, 20), 80))

	return lipgloss.Place(
		m.width,
		m.tableHeight(),
		lipgloss.Center,
		lipgloss.Center,
		panel.Render(b.String()),
	)
}

func (m Model) renderBanner() string {
	if m.banner.text == "" {
		return ""
	}
	return " " + m.theme.Styles().ToneStyle(m.banner.tone).Render(m.banner.text)
}

func (m Model) renderFooter() string {
	return m.theme.Styles().Footer.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

// renderForm renders the edit or create dialog.
func (m Model) renderForm() string {
	styles := m.theme.Styles()
	f := m.form

	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render(f.title()))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 50)))
	b.WriteString("\n\n")

	for _, line := range f.info {
		b.WriteString(styles.MutedText.Render(line))
		b.WriteString("\n")
	}
	if len(f.info) > 0 {
		b.WriteString("\n")
	}

	for i, in := range f.inputs {
		label := fmt.Sprintf("%-13s", f.labels[i]+":")
		if i == f.focus {
			label = styles.AccentText.Render(label)
		} else {
			label = styles.MutedText.Render(label)
		}
		b.WriteString(label)
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}

	switch {
	case m.busy:
		b.WriteString(styles.WarningText.Render("Saving..."))
	case m.banner.text != "":
		b.WriteString(styles.ToneStyle(m.banner.tone).Render(m.banner.text))
	default:
		b.WriteString(styles.FaintText.Render("Enter: Save  •  Tab: Next field  •  Esc: Cancel"))
	}

	return m.placeModal(styles.Modal.Width(66).Render(b.String()))
}

func (m Model) renderConfirmReset() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.WarningText.Bold(true).Render("Reset local data?"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render("Local edits will be discarded and the catalog reloaded from the API."))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("y: Reset  •  any other key: Cancel"))

	return m.placeModal(styles.Modal.Width(50).Render(b.String()))
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))

	return m.placeModal(styles.Modal.Render(b.String()))
}

// renderLog renders the recent log overlay.
func (m Model) renderLog() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Recent log"))
	if m.logFile != "" {
		b.WriteString("  ")
		b.WriteString(styles.FaintText.Render(m.logFile))
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	if len(m.logTail) == 0 {
		b.WriteString(styles.MutedText.Render("No log entries."))
	}
	for i, line := range m.logTail {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.logLineStyle(line).Render(line))
	}

	width := max(m.width-4, 20)
	return m.placeModal(styles.Modal.Width(width).Render(b.String()))
}

// logLineStyle colors a rendered log line by its level tag.
func (m Model) logLineStyle(line string) lipgloss.Style {
	styles := m.theme.Styles()
	switch {
	case strings.Contains(line, " ERR ") || strings.Contains(line, " FTL "):
		return styles.DangerText
	case strings.Contains(line, " WRN "):
		return styles.WarningText
	case strings.Contains(line, " DBG "):
		return styles.FaintText
	default:
		return styles.Text
	}
}

func (m Model) placeModal(content string) string {
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
