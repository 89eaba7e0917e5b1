package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/view"
)

// pageSizes is the cycle offered by the page size key.
var pageSizes = []int{5, 10, 20, 50}

// nextPageSize returns the next size in the cycle after current. Sizes that
// are not part of the cycle advance to the next larger one.
func nextPageSize(current int) int {
	for _, n := range pageSizes {
		if n > current {
			return n
		}
	}
	return pageSizes[0]
}

const (
	idWidth       = 6
	priceWidth    = 10
	categoryWidth = 14
	minTitleWidth = 20
	minImageWidth = 16
)

// columnWidths splits the terminal width between the title and image columns.
func columnWidths(width int) (title, image int) {
	// Each bubbles table cell carries one column of padding on both sides.
	fixed := idWidth + priceWidth + categoryWidth + 5*2
	rest := width - fixed
	title = max(rest*3/5, minTitleWidth)
	image = max(rest-title, minImageWidth)
	return title, image
}

// headerTitle appends the sort arrow to a sortable column name.
func headerTitle(name string, ind view.Indicator) string {
	return name + " " + ind.Arrow()
}

func (m Model) columns() []table.Column {
	titleWidth, imageWidth := columnWidths(m.width)
	return []table.Column{
		{Title: "ID", Width: idWidth},
		{Title: headerTitle("Title", m.indicators[view.ColumnTitle]), Width: titleWidth},
		{Title: headerTitle("Price", m.indicators[view.ColumnPrice]), Width: priceWidth},
		{Title: "Category", Width: categoryWidth},
		{Title: "Image", Width: imageWidth},
	}
}

// productRows renders one table row per product.
func productRows(products []catalog.Product) []table.Row {
	rows := make([]table.Row, 0, len(products))
	for _, p := range products {
		image := p.FirstImage()
		if image == "" {
			image = "-"
		}
		rows = append(rows, table.Row{
			strconv.FormatInt(p.ID, 10),
			p.Title,
			formatPrice(p.Price),
			p.CategoryName(),
			image,
		})
	}
	return rows
}

func formatPrice(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', -1, 64)
}

// newTable builds the product table styled for theme.
func newTable(theme Theme) table.Model {
	t := table.New(table.WithFocused(true))
	t.SetStyles(tableStyles(theme))
	return t
}

func tableStyles(theme Theme) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.Border)).
		BorderBottom(true).
		Foreground(lipgloss.Color(theme.Accent)).
		Bold(true)
	s.Cell = s.Cell.Foreground(lipgloss.Color(theme.Text))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(theme.SelectionText)).
		Background(lipgloss.Color(theme.SelectionBg)).
		Bold(false)
	return s
}

// selectedID returns the id in the highlighted row.
func (m Model) selectedID() (int64, bool) {
	rows := m.slice.Rows
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(rows) {
		return 0, false
	}
	return rows[cursor].ID, true
}

// summary is the "Showing a-b of n" line under the table.
func summary(info view.PageInfo) string {
	if info.TotalItems == 0 {
		return "No products to show"
	}
	return fmt.Sprintf("Showing %d-%d of %d products", info.StartIndex+1, info.EndIndex, info.TotalItems)
}

// renderPager draws the page window with the current page highlighted.
func renderPager(links []view.PageLink, styles Styles) string {
	if len(links) == 0 {
		return ""
	}
	parts := make([]string, 0, len(links))
	for _, link := range links {
		switch link.Kind {
		case view.LinkPrev:
			parts = append(parts, linkStyle(link, styles).Render("‹ Prev"))
		case view.LinkNext:
			parts = append(parts, linkStyle(link, styles).Render("Next ›"))
		case view.LinkEllipsis:
			parts = append(parts, styles.FaintText.Render("…"))
		default:
			label := strconv.Itoa(link.Target)
			if link.Current {
				parts = append(parts, styles.Selected.Render(" "+label+" "))
			} else {
				parts = append(parts, styles.Text.Render(label))
			}
		}
	}
	return strings.Join(parts, " ")
}

func linkStyle(link view.PageLink, styles Styles) lipgloss.Style {
	if link.Disabled {
		return styles.FaintText
	}
	return styles.AccentText
}
