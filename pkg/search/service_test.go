package search

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rubiojr/catalogue/pkg/field"
	"github.com/rubiojr/catalogue/pkg/form"
	"github.com/rubiojr/catalogue/pkg/pagination"
	"github.com/rubiojr/catalogue/pkg/searchapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSearcher returns a canned response and records the requests it saw.
type fakeSearcher struct {
	resp     *searchapi.Response
	err      error
	requests []searchapi.Request
}

func (f *fakeSearcher) Search(_ context.Context, req searchapi.Request) (*searchapi.Response, error) {
	f.requests = append(f.requests, req)
	return f.resp, f.err
}

func oneRecord(total int, aggs ...searchapi.Aggregation) *searchapi.Response {
	return &searchapi.Response{
		Records:      []searchapi.Record{{ID: "C123456"}},
		Aggregations: aggs,
		Buckets: []searchapi.Bucket{{
			Name:    searchapi.GroupBucket,
			Entries: []searchapi.BucketEntry{{Value: "tna", Count: total}, {Value: "nonTna", Count: 7}},
		}},
		Stats: searchapi.Stats{Total: total, Results: 1},
	}
}

func newService(s *fakeSearcher) *Service {
	return NewService(s, Config{})
}

func fieldView(t *testing.T, r *Results, name string) FieldView {
	t.Helper()
	for _, f := range r.Fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("field %q not in results", name)
	return FieldView{}
}

func TestSearchLevelAliasScenario(t *testing.T) {
	api := &fakeSearcher{resp: oneRecord(26008838, searchapi.Aggregation{
		Name:    "level",
		Entries: []field.Entry{{Value: "Lettercode", DocCount: 100}},
	})}

	r, err := newService(api).Search(context.Background(), "q=ufo&level=Department&level=Division")
	require.NoError(t, err)

	require.Len(t, api.requests, 1)
	assert.Equal(t, []string{"group:tna", "level:Lettercode", "level:Division"}, api.requests[0].Filters)
	assert.Equal(t, "ufo", api.requests[0].Query)
	assert.Equal(t, 20, api.requests[0].Size)

	level := fieldView(t, r, "level")
	assert.Equal(t, []field.Item{
		{Text: "Department (100)", Value: "Department", Checked: true},
		{Text: "Division (0)", Value: "Division", Checked: true},
	}, level.Items)
	assert.True(t, level.Visible)
	assert.True(t, level.ChoicesUpdated)

	want := []SelectedFilter{
		{Label: "Level: Department", Href: "?q=ufo&level=Division", Title: "Remove Department level"},
		{Label: "Level: Division", Href: "?q=ufo&level=Department", Title: "Remove Division level"},
	}
	if diff := cmp.Diff(want, r.SelectedFilters); diff != "" {
		t.Errorf("selected filters mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, r.FiltersVisible)
}

func TestSearchPaginationAndBuckets(t *testing.T) {
	api := &fakeSearcher{resp: oneRecord(26008838)}

	r, err := newService(api).Search(context.Background(), "q=ufo")
	require.NoError(t, err)

	require.NotNil(t, r.Pagination)
	assert.Equal(t, 500, r.Pagination.Pages)
	assert.Equal(t, pagination.Range{From: 1, To: 1}, r.Pagination.Range)
	require.NotNil(t, r.PageLinks)
	assert.Equal(t, &pagination.Link{Href: "?q=ufo&page=2", Title: pagination.TitleNext}, r.PageLinks.Next)

	assert.Equal(t, "tna", r.Group)
	require.Len(t, r.Buckets, 2)
	assert.Equal(t, "?group=tna&q=ufo", r.Buckets[0].Href)
	assert.Equal(t, 26008838, r.Buckets[0].RecordCount)
	assert.True(t, r.Buckets[0].IsCurrent)
	assert.Equal(t, "Records at other UK archives (7)", r.BucketItems[1].Name)

	assert.Equal(t, Analytics{
		ContentGroup:  "Search the catalogue",
		PageType:      "catalogue_search",
		ContentSource: "TNA catalogue",
		SearchType:    "Records at The National Archives",
		SearchTerm:    "ufo",
		SearchTotal:   26008838,
	}, r.Analytics)
}

func TestSearchInvalidGroupSkipsAPI(t *testing.T) {
	api := &fakeSearcher{resp: oneRecord(1)}

	r, err := newService(api).Search(context.Background(), "group=community&q=ufo")
	require.NoError(t, err)

	assert.Empty(t, api.requests)
	assert.Contains(t, r.Errors, "group")
	assert.Equal(t, "", r.Group)
	assert.False(t, r.FiltersVisible)
	for _, b := range r.Buckets {
		assert.False(t, b.IsCurrent)
		assert.NotContains(t, b.Href, "q=")
	}
	assert.Equal(t, "", r.Analytics.ContentSource)
	assert.Equal(t, "ufo", r.Analytics.SearchTerm)
}

func TestSearchInvalidFieldKeepsBucketFocus(t *testing.T) {
	api := &fakeSearcher{}

	r, err := newService(api).Search(context.Background(), "group=tna&q=ufo&level=Galaxy")
	require.NoError(t, err)

	assert.Empty(t, api.requests)
	assert.True(t, r.Buckets[0].IsCurrent)
	assert.Equal(t, "?group=tna", r.Buckets[0].Href)
	assert.Equal(t, "", r.Query)

	// no valid selection, so every level is listed at zero
	level := fieldView(t, r, "level")
	require.Len(t, level.Items, 7)
	assert.Equal(t, field.Item{Text: "Department (0)", Value: "Department"}, level.Items[0])
	assert.True(t, r.FiltersVisible)
}

func TestSearchNotFoundIsZeroResults(t *testing.T) {
	api := &fakeSearcher{err: &searchapi.Error{Cause: searchapi.ErrNotFound, Message: "No results found"}}

	r, err := newService(api).Search(context.Background(), "q=nothing-matches")
	require.NoError(t, err)

	assert.Nil(t, r.Records)
	assert.Nil(t, r.Pagination)
	assert.Equal(t, 0, r.Analytics.SearchTotal)
	assert.False(t, r.FiltersVisible)
	assert.False(t, fieldView(t, r, "online").Visible)
	assert.False(t, fieldView(t, r, "covering_date_from").Visible)
}

func TestSearchUpstreamFailurePropagates(t *testing.T) {
	api := &fakeSearcher{err: &searchapi.Error{Cause: searchapi.ErrTimeout}}

	r, err := newService(api).Search(context.Background(), "q=ufo")
	assert.Nil(t, r)
	assert.ErrorIs(t, err, searchapi.ErrTimeout)
}

func TestSearchPageErrors(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"non numeric", "q=ufo&page=two"},
		{"zero", "q=ufo&page=0"},
		{"beyond last page", "q=ufo&page=3"},
		{"beyond limit", "q=ufo&page=501"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := 30
			if tt.name == "beyond limit" {
				total = 26008838
			}
			api := &fakeSearcher{resp: oneRecord(total)}
			_, err := newService(api).Search(context.Background(), tt.query)
			assert.ErrorIs(t, err, pagination.ErrPageNotFound)
		})
	}
}

func TestSearchRejectsRepeatedSingleValues(t *testing.T) {
	api := &fakeSearcher{}

	_, err := newService(api).Search(context.Background(), "q=a&q=b")

	var malformed *form.MalformedInputError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "q", malformed.Param)
	assert.Empty(t, api.requests)
}

func TestSearchMalformedQuery(t *testing.T) {
	_, err := newService(&fakeSearcher{}).Search(context.Background(), "q=%zz")
	assert.ErrorIs(t, err, ErrMalformedQuery)
}

func TestSearchMoreOptions(t *testing.T) {
	api := &fakeSearcher{resp: oneRecord(100, searchapi.Aggregation{
		Name:    "collection",
		Entries: []field.Entry{{Value: "BT", DocCount: 50}, {Value: "WO", DocCount: 35}},
		Other:   12,
	})}

	r, err := newService(api).Search(context.Background(), "q=ufo&collection=WO")
	require.NoError(t, err)

	collection := fieldView(t, r, "collection")
	assert.Equal(t, &field.MoreOptions{
		Available: true,
		Text:      "See more collections",
		URL:       "?q=ufo&collection=WO&filter_list=longCollection",
	}, collection.MoreOptions)
	assert.Equal(t, []field.Item{
		{Text: "BT - Board of Trade and successors (50)", Value: "BT"},
		{Text: "WO - War Office, Armed Forces, Judge Advocate General, and related bodies (35)", Value: "WO", Checked: true},
	}, collection.Items)
	assert.Equal(t, []SelectedFilter{{
		Label: "Collection: WO - War Office, Armed Forces, Judge Advocate General, and related bodies",
		Href:  "?q=ufo",
		Title: "Remove WO - War Office, Armed Forces, Judge Advocate General, and related bodies collection",
	}}, r.SelectedFilters)
	assert.Nil(t, r.MoreOptions)
}

func TestSearchFilterListPage(t *testing.T) {
	api := &fakeSearcher{resp: oneRecord(100, searchapi.Aggregation{
		Name:    "longCollection",
		Entries: []field.Entry{{Value: "BT", DocCount: 50}, {Value: "ADM", DocCount: 2}},
	})}

	r, err := newService(api).Search(context.Background(), "q=ufo&filter_list=longCollection")
	require.NoError(t, err)

	require.Len(t, api.requests, 1)
	assert.Equal(t, 0, api.requests[0].Size)
	assert.Equal(t, []string{"longCollection"}, api.requests[0].Aggregations)

	require.NotNil(t, r.MoreOptions)
	assert.Equal(t, "collection", r.MoreOptions.Field.Name)
	assert.Equal(t, "?q=ufo", r.MoreOptions.CancelURL)
	assert.Len(t, r.MoreOptions.Field.Items, 2)
}

func TestSearchFilterListOfOtherGroup(t *testing.T) {
	api := &fakeSearcher{resp: oneRecord(100)}

	r, err := newService(api).Search(context.Background(), "group=tna&q=ufo&filter_list=longHeldBy")
	require.NoError(t, err)

	assert.Empty(t, api.requests)
	assert.Contains(t, r.Errors, "filter_list")
	assert.Nil(t, r.MoreOptions)
}

func TestSearchOnlineFilter(t *testing.T) {
	api := &fakeSearcher{resp: oneRecord(10)}

	r, err := newService(api).Search(context.Background(), "q=ufo&online=true")
	require.NoError(t, err)

	assert.True(t, api.requests[0].Digitised)
	assert.Equal(t, []SelectedFilter{{Label: "Online only", Href: "?q=ufo", Title: "Remove online only"}}, r.SelectedFilters)
	assert.True(t, fieldView(t, r, "online").Visible)
	assert.Equal(t, 1, r.Analytics.SearchFilters)
}

func TestSearchOnlyOnlineErrorHidesFilters(t *testing.T) {
	api := &fakeSearcher{}

	r, err := newService(api).Search(context.Background(), "q=ufo&online=yes")
	require.NoError(t, err)

	assert.Len(t, r.Errors, 1)
	assert.False(t, r.FiltersVisible)
}

func TestSearchDateRangeRetrofit(t *testing.T) {
	api := &fakeSearcher{}

	r, err := newService(api).Search(context.Background(),
		"q=ufo&covering_date_from-year=2000&covering_date_to-year=1999")
	require.NoError(t, err)

	assert.Empty(t, api.requests)
	assert.Equal(t, map[string]field.Error{
		"covering_date_from": {Text: "This date must be earlier than or equal to the 'to' date."},
	}, r.Errors)
	assert.Equal(t, []field.Error{{Text: "Record date 'from' cannot be later than 'to' date"}}, r.NonFieldErrors)

	want := []SelectedFilter{
		{
			Label: "Record date from: 01-01-2000",
			Href:  "?q=ufo&covering_date_to-year=1999&group=tna&sort=&display=list",
			Title: "Remove 01-01-2000 record date from",
		},
		{
			Label: "Record date to: 31-12-1999",
			Href:  "?q=ufo&covering_date_from-year=2000&group=tna&sort=&display=list",
			Title: "Remove 31-12-1999 record date to",
		},
	}
	if diff := cmp.Diff(want, r.SelectedFilters); diff != "" {
		t.Errorf("selected filters mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, fieldView(t, r, "covering_date_from").Visible)
	assert.True(t, r.FiltersVisible)
}

func TestSearchNonTNA(t *testing.T) {
	api := &fakeSearcher{resp: oneRecord(5, searchapi.Aggregation{
		Name:    "heldBy",
		Entries: []field.Entry{{Value: "Lancashire Archives", DocCount: 1234}},
	})}

	r, err := newService(api).Search(context.Background(), "group=nonTna&q=mill&held_by=Lancashire+Archives")
	require.NoError(t, err)

	assert.Equal(t, []string{"group:nonTna", "datatype:record", "heldBy:Lancashire Archives"}, api.requests[0].Filters)
	assert.Equal(t, []field.Item{{Text: "Lancashire Archives (1,234)", Value: "Lancashire Archives", Checked: true}},
		fieldView(t, r, "held_by").Items)
	assert.Equal(t, "Other Archives catalogues", r.Analytics.ContentSource)
	assert.Equal(t, "nonTna", r.Group)
	assert.True(t, r.Buckets[1].IsCurrent)
}

func TestSetSearcherSwapsClient(t *testing.T) {
	first := &fakeSearcher{resp: oneRecord(1)}
	second := &fakeSearcher{resp: oneRecord(1)}
	s := newService(first)

	_, err := s.Search(context.Background(), "q=a")
	require.NoError(t, err)
	s.SetSearcher(second)
	_, err = s.Search(context.Background(), "q=b")
	require.NoError(t, err)

	assert.Len(t, first.requests, 1)
	assert.Len(t, second.requests, 1)
	assert.Len(t, s.Buckets(), 2)
}
