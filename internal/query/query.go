// Package query holds the page/filter state that the tags page keeps in its URL.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	PageParam   = "page"
	FilterParam = "filter"
)

// State is the committed page and filter. It is never mutated in place;
// Commit and WithPage return new values.
type State struct {
	Page   int
	Filter string
}

func FromValues(values url.Values) State {
	return State{
		Page:   parsePage(values.Get(PageParam)),
		Filter: values.Get(FilterParam),
	}
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Commit submits a draft filter. The page always goes back to 1.
func (s State) Commit(draft string) State {
	return State{Page: 1, Filter: draft}
}

func (s State) WithPage(page int) State {
	if page < 1 {
		page = 1
	}
	return State{Page: page, Filter: s.Filter}
}

func (s State) Values() url.Values {
	values := url.Values{}
	values.Set(FilterParam, s.Filter)
	values.Set(PageParam, strconv.Itoa(s.Page))
	return values
}

func (s State) Encode() string {
	return s.Values().Encode()
}

func (s State) Href(path string) string {
	return path + "?" + s.Encode()
}
