package view

import (
	"cmp"
	"slices"
	"strings"

	"github.com/five82/shelf/internal/catalog"
)

// Column identifies a sortable column.
type Column string

const (
	ColumnTitle Column = "title"
	ColumnPrice Column = "price"
)

// Valid reports whether c is a sortable column.
func (c Column) Valid() bool {
	return c == ColumnTitle || c == ColumnPrice
}

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort is the active sort. The zero value means unsorted.
type Sort struct {
	Column    Column
	Direction Direction
}

// Active reports whether a column is selected.
func (s Sort) Active() bool {
	return s.Column != ""
}

// Toggle returns the sort after the user picks column: the same column flips
// direction, a new column starts ascending.
func (s Sort) Toggle(column Column) Sort {
	if s.Column == column {
		if s.Direction == Asc {
			return Sort{Column: column, Direction: Desc}
		}
		return Sort{Column: column, Direction: Asc}
	}
	return Sort{Column: column, Direction: Asc}
}

// Filter keeps products whose title contains term, ignoring case.
func Filter(all []catalog.Product, term string) []catalog.Product {
	needle := strings.ToLower(term)
	out := make([]catalog.Product, 0, len(all))
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Title), needle) {
			out = append(out, p)
		}
	}
	return out
}

// SortProducts returns a stably sorted copy of products.
func SortProducts(products []catalog.Product, s Sort) []catalog.Product {
	out := slices.Clone(products)
	if !s.Active() {
		return out
	}
	slices.SortStableFunc(out, func(a, b catalog.Product) int {
		var c int
		switch s.Column {
		case ColumnPrice:
			c = cmp.Compare(a.Price, b.Price)
		case ColumnTitle:
			c = strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
		if s.Direction == Desc {
			return -c
		}
		return c
	})
	return out
}

// Indicator describes how a column header should show the sort state.
type Indicator struct {
	Active    bool
	Direction Direction
}

// IndicatorFor returns the header state of column under s.
func IndicatorFor(s Sort, column Column) Indicator {
	if s.Column != column {
		return Indicator{}
	}
	return Indicator{Active: true, Direction: s.Direction}
}

// Arrow renders the indicator the way the table header shows it.
func (i Indicator) Arrow() string {
	if !i.Active {
		return "↕"
	}
	if i.Direction == Desc {
		return "↓"
	}
	return "↑"
}
