package view

// LinkKind classifies a pagination control.
type LinkKind int

const (
	LinkPrev LinkKind = iota
	LinkPage
	LinkEllipsis
	LinkNext
)

// PageLink is one pagination control. Target is the page it navigates to and
// is zero for ellipses.
type PageLink struct {
	Kind     LinkKind
	Target   int
	Current  bool
	Disabled bool
}

const windowRadius = 2

// Window lays out the pagination controls: prev, first page, the pages within
// two of the current one, last page and next, with ellipses over gaps.
// Nothing is returned when everything fits on one page.
func Window(page, totalPages int) []PageLink {
	if totalPages <= 1 {
		return nil
	}
	page = ClampPage(page, totalPages)

	links := []PageLink{{Kind: LinkPrev, Target: page - 1, Disabled: page == 1}}

	start := max(1, page-windowRadius)
	end := min(totalPages, page+windowRadius)

	if start > 1 {
		links = append(links, PageLink{Kind: LinkPage, Target: 1})
		if start > 2 {
			links = append(links, PageLink{Kind: LinkEllipsis, Disabled: true})
		}
	}
	for i := start; i <= end; i++ {
		links = append(links, PageLink{Kind: LinkPage, Target: i, Current: i == page})
	}
	if end < totalPages {
		if end < totalPages-1 {
			links = append(links, PageLink{Kind: LinkEllipsis, Disabled: true})
		}
		links = append(links, PageLink{Kind: LinkPage, Target: totalPages})
	}

	links = append(links, PageLink{Kind: LinkNext, Target: page + 1, Disabled: page == totalPages})
	return links
}
