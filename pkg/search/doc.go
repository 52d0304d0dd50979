// Package search runs catalogue searches: it binds the request to the
// catalogue form, queries the search API and prepares everything a page
// needs to display the outcome.
//
// # Overview
//
// A search request is a query string such as
//
//	?group=tna&q=ufo&level=Item&level=Division&covering_date_from-year=2020&page=2
//
// The service turns it into a *Results value holding the validated form,
// the records of the requested page, facet choices with counts, the bucket
// navigation, page links, removable filter chips and analytics data.
//
// # Request flow
//
//   - The page number is checked first. A page that is not a positive
//     integer is a "not found", not a form error.
//   - The form is built for the requested group. Unknown groups get a form
//     with the common fields only, so the group error can be displayed.
//   - Parameters repeated for single-value fields are rejected as malformed
//     input.
//   - Valid forms are translated to API parameters (see package query) and
//     sent to the search API. Aggregations update the facet choices without
//     dropping the user's selections.
//   - Invalid forms are rendered with their errors and no API call is made.
//
// # Error handling
//
// User mistakes never produce an error: they are reported in
// Results.Errors and Results.NonFieldErrors. Errors returned by Search are
// routing signals (malformed input, page not found) or upstream failures.
// An API "not found" is the one upstream answer treated as a search without
// results.
//
// # Usage
//
//	client := searchapi.New(cfg.API.URL, searchapi.WithAPIKey(cfg.API.Key))
//	service := search.NewService(client, search.Config{ResultsPerPage: 20, PageLimit: 500})
//
//	results, err := service.Search(ctx, r.URL.RawQuery)
//	switch {
//	case errors.Is(err, pagination.ErrPageNotFound):
//		// 404
//	case err != nil:
//		// 400 or 5xx
//	}
//	for _, f := range results.SelectedFilters {
//		fmt.Println(f.Label, f.Href)
//	}
package search
