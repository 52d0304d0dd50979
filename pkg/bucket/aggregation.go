package bucket

import "slices"

// Aggregation links a form field to the aggregation names the search API
// understands. LongAggs is empty when the API has no extended aggregation
// for the field.
type Aggregation struct {
	Field    string
	Aggs     string
	LongAggs string
}

// aggregations lists every aggregation the catalogue requests.
var aggregations = []Aggregation{
	{Field: "level", Aggs: "level"},
	{Field: "collection", Aggs: "collection", LongAggs: "longCollection"},
	{Field: "held_by", Aggs: "heldBy", LongAggs: "longHeldBy"},
	{Field: "closure", Aggs: "closure"},
	{Field: "subject", Aggs: "subject", LongAggs: "longSubject"},
}

// ByField returns the aggregation of a form field.
func ByField(field string) (Aggregation, bool) {
	for _, a := range aggregations {
		if a.Field == field {
			return a, true
		}
	}
	return Aggregation{}, false
}

// FieldForAggregation maps an aggregation name returned by the API, short
// or long, to its form field.
func FieldForAggregation(name string) (string, bool) {
	for _, a := range aggregations {
		if a.Aggs == name || (a.LongAggs != "" && a.LongAggs == name) {
			return a.Field, true
		}
	}
	return "", false
}

// FieldForLongAggs maps a long aggregation name to its form field.
func FieldForLongAggs(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for _, a := range aggregations {
		if a.LongAggs == name {
			return a.Field, true
		}
	}
	return "", false
}

// LongAggsChoices returns the filter_list choices for the fields the
// bucket aggregates, led by the "no filter" choice.
func (b Bucket) LongAggsChoices() [][2]string {
	out := [][2]string{{"", "No filter"}}
	for _, a := range aggregations {
		if a.LongAggs != "" && slices.Contains(b.Aggregations, a.Aggs) {
			out = append(out, [2]string{a.LongAggs, a.Field})
		}
	}
	return out
}

// LongAggsChoices returns (long aggs, field) pairs usable as the choices of
// the filter_list parameter, led by the "no filter" choice.
func LongAggsChoices() [][2]string {
	out := [][2]string{{"", "No filter"}}
	for _, a := range aggregations {
		if a.LongAggs != "" {
			out = append(out, [2]string{a.LongAggs, a.Field})
		}
	}
	return out
}
