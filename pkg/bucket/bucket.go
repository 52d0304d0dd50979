// Package bucket holds the catalogue of result buckets. A bucket is a slice
// of the search index (records held at The National Archives, records held
// elsewhere) with its own form fields and aggregations.
//
// The registry returned by Catalogue is shared, process-wide configuration.
// Requests must Clone it before updating counts or the current bucket.
package bucket

import (
	"fmt"
	"net/url"
	"slices"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Keys of the catalogue buckets.
const (
	KeyTNA    = "tna"
	KeyNonTNA = "nonTna"
)

// Bucket is one group of search results.
type Bucket struct {
	Key          string   `json:"key"`
	Label        string   `json:"label"`
	Description  string   `json:"description"`
	Href         string   `json:"href"`
	RecordCount  int      `json:"record_count"`
	IsCurrent    bool     `json:"is_current"`
	Aggregations []string `json:"aggregations"`
}

// LabelWithCount renders "Label (1,234)".
func (b Bucket) LabelWithCount() string {
	return message.NewPrinter(language.BritishEnglish).Sprintf("%s (%d)", b.Label, b.RecordCount)
}

// Item is a bucket rendered for the secondary navigation.
type Item struct {
	Name    string `json:"name"`
	Href    string `json:"href"`
	Current bool   `json:"current"`
}

// Item returns the navigation item of the bucket.
func (b Bucket) Item() Item {
	return Item{Name: b.LabelWithCount(), Href: b.Href, Current: b.IsCurrent}
}

// NotFoundError is returned by Get for an unknown key.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("bucket matching the key '%s' could not be found", e.Key)
}

// Registry is an ordered list of buckets.
type Registry struct {
	buckets []Bucket
}

// NewRegistry returns a registry holding copies of buckets.
func NewRegistry(buckets ...Bucket) *Registry {
	r := &Registry{}
	for _, b := range buckets {
		r.buckets = append(r.buckets, clone(b))
	}
	return r
}

func clone(b Bucket) Bucket {
	b.Aggregations = slices.Clone(b.Aggregations)
	return b
}

// Clone returns a deep copy, safe to mutate per request.
func (r *Registry) Clone() *Registry {
	return NewRegistry(r.buckets...)
}

// Buckets returns copies of the buckets in order.
func (r *Registry) Buckets() []Bucket {
	out := make([]Bucket, len(r.buckets))
	for i, b := range r.buckets {
		out[i] = clone(b)
	}
	return out
}

// Get returns a copy of the bucket with key.
func (r *Registry) Get(key string) (Bucket, error) {
	for _, b := range r.buckets {
		if b.Key == key {
			return clone(b), nil
		}
	}
	return Bucket{}, &NotFoundError{Key: key}
}

// Keys returns the bucket keys in order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.buckets))
	for i, b := range r.buckets {
		out[i] = b.Key
	}
	return out
}

// Choices returns (key, label) pairs in order.
func (r *Registry) Choices() [][2]string {
	out := make([][2]string, len(r.buckets))
	for i, b := range r.buckets {
		out[i] = [2]string{b.Key, b.Label}
	}
	return out
}

// UpdateForDisplay sets record counts from counts (missing keys count zero),
// marks the current bucket and builds each bucket's href.
func (r *Registry) UpdateForDisplay(query string, counts map[string]int, currentKey string) {
	for i := range r.buckets {
		b := &r.buckets[i]
		b.RecordCount = counts[b.Key]
		b.IsCurrent = b.Key == currentKey
		b.Href = "?group=" + url.QueryEscape(b.Key)
		if query != "" {
			b.Href += "&q=" + url.QueryEscape(query)
		}
	}
}

// Items returns the navigation items in order.
func (r *Registry) Items() []Item {
	out := make([]Item, len(r.buckets))
	for i, b := range r.buckets {
		out[i] = b.Item()
	}
	return out
}

var catalogue = NewRegistry(
	Bucket{
		Key:         KeyTNA,
		Label:       "Records at the National Archives",
		Description: "Results for records held at The National Archives that match your search term.",
		Href:        "#",
		Aggregations: []string{
			mustAggs("level"),
			mustAggs("collection"),
			mustAggs("closure"),
			mustAggs("subject"),
		},
	},
	Bucket{
		Key:          KeyNonTNA,
		Label:        "Records at other UK archives",
		Description:  "Results for records held at other archives in the UK (and not at The National Archives) that match your search term.",
		Href:         "#",
		Aggregations: []string{mustAggs("held_by")},
	},
)

func mustAggs(field string) string {
	a, ok := ByField(field)
	if !ok {
		panic("bucket: no aggregation for field " + field)
	}
	return a.Aggs
}

// Catalogue returns a deep copy of the catalogue buckets.
func Catalogue() *Registry {
	return catalogue.Clone()
}
