package state

import (
	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/view"
)

// Snapshot is a point-in-time copy of the store's scalar state.
type Snapshot struct {
	Source   Source
	LoadErr  error
	Filter   string
	Sort     view.Sort
	Page     int
	PageSize int
	Total    int
	Matches  int
}

// Loaded reports whether a collection has been adopted.
func (s Snapshot) Loaded() bool {
	return s.Source != SourceNone
}

// Snapshot returns the current scalar state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Source:   s.source,
		LoadErr:  s.loadErr,
		Filter:   s.filter,
		Sort:     s.sort,
		Page:     s.page,
		PageSize: s.pageSize,
		Total:    len(s.all),
		Matches:  len(s.filtered),
	}
}

// VisibleSlice returns the rows of the current page and its bounds.
func (s *Store) VisibleSlice() view.Slice {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return view.PageOf(s.filtered, s.sort, s.page, s.pageSize)
}

// ExportRows returns the same rows as VisibleSlice, for CSV export.
func (s *Store) ExportRows() []catalog.Product {
	return s.VisibleSlice().Rows
}

// SortIndicator reports how the header of column should be drawn.
func (s *Store) SortIndicator(column view.Column) view.Indicator {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return view.IndicatorFor(s.sort, column)
}

// PageWindow returns the pagination controls for the current page.
func (s *Store) PageWindow() []view.PageLink {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return view.Window(s.page, view.TotalPages(len(s.filtered), s.pageSize))
}

// All returns a copy of the whole collection in arrival order.
func (s *Store) All() []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return catalog.CloneAll(s.all)
}

// Filtered returns a copy of the products matching the current filter.
func (s *Store) Filtered() []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return catalog.CloneAll(s.filtered)
}

// Product looks up a product by id.
func (s *Store) Product(id int64) (catalog.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := catalog.IndexOf(s.all, id)
	if idx < 0 {
		return catalog.Product{}, false
	}
	return s.all[idx].Clone(), true
}
