// Package query turns a validated catalogue search form into search API
// parameters.
package query

import (
	"fmt"

	"github.com/rubiojr/catalogue/pkg/bucket"
	"github.com/rubiojr/catalogue/pkg/catalogue"
)

// FilterDatatypeRecord restricts the non-TNA index to records. That index
// also holds non-record documents.
const FilterDatatypeRecord = "datatype:record"

// MatchAll is sent when the user searched for nothing.
const MatchAll = "*"

// Params are the parameters of one search API request.
type Params struct {
	Query        string
	Size         int
	Page         int
	Sort         string
	Filters      []string
	Aggregations []string
	Digitised    bool
}

// dateFilters maps date fields to their API filter format.
var dateFilters = map[string]string{
	catalogue.CoveringDateFrom: "coveringFromDate:(>=%s)",
	catalogue.CoveringDateTo:   "coveringToDate:(<=%s)",
	catalogue.OpeningDateFrom:  "openingFromDate:(>=%s)",
	catalogue.OpeningDateTo:    "openingToDate:(<=%s)",
}

// Build returns the API parameters for a valid form searching bucket b.
// perPage is ignored in "more options" mode, which requests no records.
func Build(f *catalogue.Form, b bucket.Bucket, page, perPage int) Params {
	p := Params{
		Query: f.CleanedString(catalogue.Q),
		Size:  perPage,
		Page:  page,
		Sort:  f.CleanedString(catalogue.Sort),
	}
	if p.Query == "" {
		p.Query = MatchAll
	}

	p.Filters = append(p.Filters, "group:"+b.Key)
	if b.Key == bucket.KeyNonTNA {
		p.Filters = append(p.Filters, FilterDatatypeRecord)
	}

	if f.FilterListApplied() {
		p.Aggregations = []string{f.CleanedString(catalogue.FilterList)}
		p.Size = 0
	} else {
		p.Aggregations = append([]string(nil), b.Aggregations...)
	}

	p.Filters = append(p.Filters, DateFilters(f)...)
	p.Filters = append(p.Filters, FacetFilters(f)...)

	if b.Key == bucket.KeyTNA && f.CleanedString(catalogue.Online) == "true" {
		p.Digitised = true
	}
	return p
}

// DateFilters returns a range filter for every date field with a cleaned
// value, in declaration order.
func DateFilters(f *catalogue.Form) []string {
	var out []string
	for _, d := range f.Dates() {
		format, ok := dateFilters[d.Name()]
		if !ok {
			continue
		}
		if v := d.APIValue(); v != "" {
			out = append(out, fmt.Sprintf(format, v))
		}
	}
	return out
}

// FacetFilters returns one "<apiName>:<value>" filter per selected value of
// every multi choice field.
func FacetFilters(f *catalogue.Form) []string {
	var out []string
	for _, m := range f.MultiChoices() {
		values, ok := m.Cleaned()
		if !ok {
			continue
		}
		name := CamelCase(m.Name())
		for _, v := range values {
			out = append(out, name+":"+Outbound(m.Name(), v))
		}
	}
	return out
}
