package search

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rubiojr/catalogue/pkg/bucket"
	"github.com/rubiojr/catalogue/pkg/catalogue"
	"github.com/rubiojr/catalogue/pkg/log"
	"github.com/rubiojr/catalogue/pkg/pagination"
	"github.com/rubiojr/catalogue/pkg/query"
	"github.com/rubiojr/catalogue/pkg/querystring"
	"github.com/rubiojr/catalogue/pkg/searchapi"
)

// ErrMalformedQuery is returned when the raw query string cannot be parsed.
var ErrMalformedQuery = errors.New("malformed query string")

// Config holds the paging limits of the service.
type Config struct {
	// ResultsPerPage is the number of records requested per page.
	// Defaults to pagination.ResultsPerPage when zero.
	ResultsPerPage int

	// PageLimit is the highest page that can be requested, whatever the
	// number of matches. Defaults to pagination.PageLimit when zero.
	PageLimit int
}

func (c Config) withDefaults() Config {
	if c.ResultsPerPage < 1 {
		c.ResultsPerPage = pagination.ResultsPerPage
	}
	if c.PageLimit < 1 {
		c.PageLimit = pagination.PageLimit
	}
	return c
}

// Service runs catalogue searches against the search API.
// It is safe for concurrent use: every call works on its own form and on
// its own copy of the bucket registry.
type Service struct {
	mu       sync.RWMutex
	searcher searchapi.Searcher
	config   Config
	logger   *log.Logger
}

// NewService creates a search service calling searcher.
//
// Parameters:
//   - searcher: the search API client, usually a *searchapi.Client
//   - config: paging limits, zero values select the defaults
//
// Returns:
//   - *Service: a service ready to run searches
func NewService(searcher searchapi.Searcher, config Config) *Service {
	return &Service{
		searcher: searcher,
		config:   config.withDefaults(),
		logger:   log.ForService("search"),
	}
}

// SetSearcher replaces the search API client. Searches already running keep
// the previous client.
func (s *Service) SetSearcher(searcher searchapi.Searcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searcher = searcher
}

// SetConfig replaces the paging limits.
func (s *Service) SetConfig(config Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = config.withDefaults()
}

func (s *Service) current() (searchapi.Searcher, Config) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searcher, s.config
}

// Buckets returns the catalogue buckets without counts.
func (s *Service) Buckets() []bucket.Bucket {
	return bucket.Catalogue().Buckets()
}

// Search runs the catalogue search described by rawQuery, the query string
// of the search page ("q=ufo&group=tna&level=Item").
//
// The search operation:
//  1. Parses the query string and validates the page number
//  2. Builds the form for the requested group and rejects repeated
//     single-value parameters
//  3. For a valid form, calls the search API and updates the facets from
//     the returned aggregations. An API "not found" is handled as a search
//     without results.
//  4. Paginates, counts the buckets, lists the selected filters and decides
//     which filters are visible
//
// Invalid input is reported in Results.Errors and Results.NonFieldErrors,
// never as an error. The returned errors are:
//   - ErrMalformedQuery, or *form.MalformedInputError for repeated
//     single-value parameters
//   - pagination.ErrPageNotFound for a page that does not exist
//   - *searchapi.Error for an upstream failure other than "not found"
//
// Example:
//
//	service := search.NewService(searchapi.New(url), search.Config{})
//	results, err := service.Search(ctx, "q=ufo&level=Item")
//	if errors.Is(err, pagination.ErrPageNotFound) {
//		// render a 404
//	}
func (s *Service) Search(ctx context.Context, rawQuery string) (*Results, error) {
	searcher, cfg := s.current()

	params, err := querystring.Parse(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedQuery, err)
	}

	page, err := pagination.ParsePage(params.Get(pagination.PageParam))
	if err != nil {
		return nil, err
	}

	registry := bucket.Catalogue()
	f := catalogue.NewForm(params)
	if err := f.CheckSingleValues(); err != nil {
		s.logger.Infof("%v", err)
		return nil, err
	}

	currentKey := ""
	if f.Kind != catalogue.KindBase {
		currentKey = f.Choice(catalogue.Group).Value()
	}

	res := &Results{Form: f, Group: currentKey, Page: page}

	var resp *searchapi.Response
	if f.IsValid() {
		res.Query = f.CleanedString(catalogue.Q)
		b, err := registry.Get(f.CleanedString(catalogue.Group))
		if err != nil {
			return nil, err
		}

		p := query.Build(f, b, page, cfg.ResultsPerPage)
		resp, err = searcher.Search(ctx, searchapi.Request{
			Query:        p.Query,
			Size:         p.Size,
			Page:         p.Page,
			Sort:         p.Sort,
			Filters:      p.Filters,
			Aggregations: p.Aggregations,
			Digitised:    p.Digitised,
		})
		switch {
		case errors.Is(err, searchapi.ErrNotFound):
			s.logger.Debugf("no results for %q", rawQuery)
			resp = nil
		case err != nil:
			return nil, err
		default:
			s.applyAggregations(f, params, resp.Aggregations)
		}
	}

	if resp != nil {
		res.Records = resp.Records
		res.Stats = resp.Stats
		if resp.Stats.Total > 0 {
			pg, err := pagination.New(resp.Stats.Total, resp.Stats.Results, page, cfg.ResultsPerPage, cfg.PageLimit)
			if err != nil {
				return nil, err
			}
			links := pg.Links(params)
			res.Pagination = pg
			res.PageLinks = &links
		}
		registry.UpdateForDisplay(res.Query, resp.GroupCounts(), currentKey)
	} else {
		// keep the requested bucket in focus
		registry.UpdateForDisplay("", nil, currentKey)
	}
	res.Buckets = registry.Buckets()
	res.BucketItems = registry.Items()

	res.SelectedFilters = selectedFilters(f, params)
	res.Analytics = analytics(f, resp, len(res.SelectedFilters))
	res.FiltersVisible = setVisibility(f, resp != nil && resp.Stats.Total > 0, len(res.SelectedFilters) > 0)

	res.Errors = f.Errors()
	res.NonFieldErrors = f.NonFieldErrors()
	for _, fld := range f.Fields() {
		res.Fields = append(res.Fields, NewFieldView(fld))
	}
	res.MoreOptions = moreOptionsPage(f, params)

	return res, nil
}

// applyAggregations replaces the choices of every multi choice field with
// the aggregation entries returned for it and records whether more
// entries exist.
func (s *Service) applyAggregations(f *catalogue.Form, params *querystring.Values, aggs []searchapi.Aggregation) {
	for _, agg := range aggs {
		name, ok := bucket.FieldForAggregation(agg.Name)
		if !ok {
			name = query.SnakeCase(agg.Name)
		}
		m := f.MultiChoice(name)
		if m == nil {
			s.logger.Debugf("ignoring aggregation %q", agg.Name)
			continue
		}
		m.UpdateChoices(query.InboundEntries(name, agg.Entries), m.Value())

		more := agg.Other > 0
		url := ""
		if more {
			if a, ok := bucket.ByField(name); ok && a.LongAggs != "" {
				url = params.Replace(catalogue.FilterList, a.LongAggs).Href()
			}
		}
		m.SetMoreOptions(more, url)
	}
}

func moreOptionsPage(f *catalogue.Form, params *querystring.Values) *MoreOptionsPage {
	if !f.FilterListApplied() {
		return nil
	}
	name, ok := bucket.FieldForLongAggs(f.CleanedString(catalogue.FilterList))
	if !ok {
		return nil
	}
	fld := f.Field(name)
	if fld == nil {
		return nil
	}
	return &MoreOptionsPage{
		Field:     NewFieldView(fld),
		CancelURL: params.Remove(catalogue.FilterList).Href(),
	}
}
