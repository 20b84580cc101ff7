package pagination

import "github.com/4oBuko/tag-browser/internal/query"

// Link is one navigation control. Disabled links have an empty Href.
type Link struct {
	Label    string
	Page     int
	Href     string
	Disabled bool
}

type Control struct {
	Page  int
	Pages int
	Items int
	First Link
	Prev  Link
	Next  Link
	Last  Link
}

// New builds the pagination control for the current page. Every href goes
// through query.State so the filter is kept.
func New(pages, items, page int, state query.State) Control {
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	// a target outside [1, pages] or equal to the current page is disabled
	enabled := func(target int) bool {
		return target >= 1 && target <= pages && target != page
	}
	return Control{
		Page:  page,
		Pages: pages,
		Items: items,
		First: link("First", 1, enabled(1), state),
		Prev:  link("Previous", page-1, enabled(page-1), state),
		Next:  link("Next", page+1, enabled(page+1), state),
		Last:  link("Last", pages, enabled(pages), state),
	}
}

func link(label string, page int, enabled bool, state query.State) Link {
	if !enabled {
		return Link{Label: label, Page: page, Disabled: true}
	}
	return Link{Label: label, Page: page, Href: state.WithPage(page).Href("/")}
}

func (c Control) Links() []Link {
	return []Link{c.First, c.Prev, c.Next, c.Last}
}
