// Package pagination validates the requested results page and builds the
// page links shown under the results.
package pagination

import (
	"errors"
	"strconv"
	"strings"

	"github.com/rubiojr/catalogue/pkg/querystring"
)

// Defaults for the catalogue search.
const (
	ResultsPerPage = 20
	PageLimit      = 500
)

// PageParam is the request parameter holding the page number.
const PageParam = "page"

// Link titles.
const (
	TitlePrevious = "Previous page of results"
	TitleNext     = "Next page of results"
)

// ErrPageNotFound is returned for a page that is not a positive integer or
// lies beyond the last page.
var ErrPageNotFound = errors.New("page not found")

// ParsePage parses the page parameter. An empty value is page 1.
func ParsePage(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, ErrPageNotFound
	}
	return page, nil
}

// Range is the 1-based position of the displayed results.
type Range struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Pagination describes the current page of a result set.
type Pagination struct {
	Page    int   `json:"page"`
	Pages   int   `json:"pages"`
	PerPage int   `json:"per_page"`
	Total   int   `json:"total"`
	Range   Range `json:"results_range"`
}

// New computes the pages of total results, results of them being on page.
// pages is capped at limit. ErrPageNotFound is returned when page lies
// outside 1..pages, which includes every page of an empty result set.
func New(total, results, page, perPage, limit int) (*Pagination, error) {
	if perPage < 1 {
		perPage = ResultsPerPage
	}
	pages := 0
	if total > 0 {
		pages = (total + perPage - 1) / perPage
	}
	if limit > 0 && pages > limit {
		pages = limit
	}
	if page < 1 || page > pages {
		return nil, ErrPageNotFound
	}

	offset := (page - 1) * perPage
	return &Pagination{
		Page:    page,
		Pages:   pages,
		PerPage: perPage,
		Total:   total,
		Range:   Range{From: offset + 1, To: offset + results},
	}, nil
}

// Item is one entry of the page list. Ellipsis items carry nothing else.
type Item struct {
	Number   int    `json:"number,omitempty"`
	Href     string `json:"href,omitempty"`
	Current  bool   `json:"current,omitempty"`
	Ellipsis bool   `json:"ellipsis,omitempty"`
}

// Link points to the previous or next page.
type Link struct {
	Href  string `json:"href"`
	Title string `json:"title"`
}

// Links is the page navigation.
type Links struct {
	Items    []Item `json:"items"`
	Previous *Link  `json:"previous,omitempty"`
	Next     *Link  `json:"next,omitempty"`
}

// Links builds the navigation for p. Hrefs keep every parameter of params
// and replace the page number.
//
// The first page, the last page, the current page and its neighbours are
// always listed. A gap of a single page lists that page; longer gaps
// collapse into an ellipsis.
func (p *Pagination) Links(params *querystring.Values) Links {
	if params == nil {
		params = querystring.New()
	}
	href := func(n int) string {
		return params.Replace(PageParam, strconv.Itoa(n)).Href()
	}

	var shown []int
	for _, n := range []int{1, p.Page - 1, p.Page, p.Page + 1, p.Pages} {
		if n < 1 || n > p.Pages {
			continue
		}
		if len(shown) > 0 && shown[len(shown)-1] >= n {
			continue
		}
		shown = append(shown, n)
	}

	var links Links
	prev := 0
	for _, n := range shown {
		switch gap := n - prev; {
		case prev > 0 && gap == 2:
			links.Items = append(links.Items, Item{Number: prev + 1, Href: href(prev + 1)})
		case prev > 0 && gap > 2:
			links.Items = append(links.Items, Item{Ellipsis: true})
		}
		links.Items = append(links.Items, Item{Number: n, Href: href(n), Current: n == p.Page})
		prev = n
	}

	if p.Page > 1 {
		links.Previous = &Link{Href: href(p.Page - 1), Title: TitlePrevious}
	}
	if p.Page < p.Pages {
		links.Next = &Link{Href: href(p.Page + 1), Title: TitleNext}
	}
	return links
}
