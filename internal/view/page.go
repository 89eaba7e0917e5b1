package view

import "github.com/five82/shelf/internal/catalog"

// PageInfo describes the current page. StartIndex is 0-based and EndIndex is
// exclusive, both relative to the filtered collection.
type PageInfo struct {
	Page       int
	StartIndex int
	EndIndex   int
	TotalItems int
	TotalPages int
}

// Slice is the visible page plus its metadata.
type Slice struct {
	Rows     []catalog.Product
	PageInfo PageInfo
}

// TotalPages returns max(1, ceil(total/pageSize)).
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage forces page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate computes the page bounds for total items.
func Paginate(total, page, pageSize int) PageInfo {
	if pageSize < 1 {
		pageSize = 1
	}
	pages := TotalPages(total, pageSize)
	page = ClampPage(page, pages)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := min(start+pageSize, total)
	return PageInfo{
		Page:       page,
		StartIndex: start,
		EndIndex:   end,
		TotalItems: total,
		TotalPages: pages,
	}
}

// Project filters, sorts and paginates all in one step.
func Project(all []catalog.Product, filter string, s Sort, page, pageSize int) Slice {
	return PageOf(Filter(all, filter), s, page, pageSize)
}

// PageOf sorts an already filtered collection and cuts out the requested page.
func PageOf(filtered []catalog.Product, s Sort, page, pageSize int) Slice {
	ordered := SortProducts(filtered, s)
	info := Paginate(len(ordered), page, pageSize)
	rows := make([]catalog.Product, 0, info.EndIndex-info.StartIndex)
	for _, p := range ordered[info.StartIndex:info.EndIndex] {
		rows = append(rows, p.Clone())
	}
	return Slice{Rows: rows, PageInfo: info}
}
