package query

import (
	"testing"

	"github.com/rubiojr/catalogue/pkg/bucket"
	"github.com/rubiojr/catalogue/pkg/catalogue"
	"github.com/rubiojr/catalogue/pkg/field"
	"github.com/rubiojr/catalogue/pkg/querystring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm(t *testing.T, raw string) *catalogue.Form {
	t.Helper()
	params, err := querystring.Parse(raw)
	require.NoError(t, err)
	f := catalogue.NewForm(params)
	require.True(t, f.IsValid(), "form errors: %v", f.Errors())
	return f
}

func mustBucket(t *testing.T, key string) bucket.Bucket {
	t.Helper()
	b, err := bucket.Catalogue().Get(key)
	require.NoError(t, err)
	return b
}

func TestBuildTNA(t *testing.T) {
	f := validForm(t, "q=ufo&level=Department&level=Division&collection=AIR"+
		"&covering_date_from-year=1950&opening_date_to-year=2000&opening_date_to-month=6&online=true&sort=title:asc")

	p := Build(f, mustBucket(t, bucket.KeyTNA), 2, 20)

	assert.Equal(t, Params{
		Query: "ufo",
		Size:  20,
		Page:  2,
		Sort:  "title:asc",
		Filters: []string{
			"group:tna",
			"coveringFromDate:(>=1950-01-01)",
			"openingToDate:(<=2000-06-30)",
			"level:Lettercode",
			"level:Division",
			"collection:AIR",
		},
		Aggregations: []string{"level", "collection", "closure", "subject"},
		Digitised:    true,
	}, p)
}

func TestBuildNonTNA(t *testing.T) {
	f := validForm(t, "group=nonTna&held_by=Lancashire+Archives&covering_date_to-year=1900")

	p := Build(f, mustBucket(t, bucket.KeyNonTNA), 1, 20)

	assert.Equal(t, MatchAll, p.Query)
	assert.Equal(t, []string{
		"group:nonTna",
		FilterDatatypeRecord,
		"coveringToDate:(<=1900-12-31)",
		"heldBy:Lancashire Archives",
	}, p.Filters)
	assert.Equal(t, []string{"heldBy"}, p.Aggregations)
	assert.False(t, p.Digitised)
}

func TestBuildFilterListMode(t *testing.T) {
	f := validForm(t, "q=ufo&filter_list=longCollection")

	p := Build(f, mustBucket(t, bucket.KeyTNA), 1, 20)

	assert.Equal(t, 0, p.Size)
	assert.Equal(t, []string{"longCollection"}, p.Aggregations)
	assert.Equal(t, []string{"group:tna"}, p.Filters)
}

func TestBuildDoesNotShareBucketAggregations(t *testing.T) {
	b := mustBucket(t, bucket.KeyTNA)
	p := Build(validForm(t, "q=x"), b, 1, 20)
	p.Aggregations[0] = "tampered"
	assert.Equal(t, "level", b.Aggregations[0])
}

func TestCamelAndSnakeCase(t *testing.T) {
	tests := []struct {
		snake, camel string
	}{
		{"held_by", "heldBy"},
		{"level", "level"},
		{"covering_date_from", "coveringDateFrom"},
		{"long_held_by", "longHeldBy"},
	}
	for _, tt := range tests {
		t.Run(tt.snake, func(t *testing.T) {
			assert.Equal(t, tt.camel, CamelCase(tt.snake))
			assert.Equal(t, tt.snake, SnakeCase(tt.camel))
		})
	}
	assert.Equal(t, "http_server", SnakeCase("HTTPServer"))
	assert.Equal(t, "subject", SnakeCase("subject"))
	assert.Equal(t, "long_collection", SnakeCase("longCollection"))
}

func TestLevelAliasRoundTrip(t *testing.T) {
	assert.Equal(t, "Lettercode", Outbound(catalogue.Level, "Department"))
	assert.Equal(t, "Department", Inbound(catalogue.Level, "Lettercode"))
	assert.Equal(t, "Item", Outbound(catalogue.Level, "Item"))
	assert.Equal(t, "Department", Outbound(catalogue.Collection, "Department"))

	entries := []field.Entry{{Value: "Lettercode", DocCount: 100}, {Value: "Item", DocCount: 3}}
	got := InboundEntries(catalogue.Level, entries)
	assert.Equal(t, []field.Entry{{Value: "Department", DocCount: 100}, {Value: "Item", DocCount: 3}}, got)
	assert.Equal(t, "Lettercode", entries[0].Value)
}
