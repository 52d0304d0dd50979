package searchapi

import (
	"encoding/json"

	"github.com/rubiojr/catalogue/pkg/field"
)

// GroupBucket is the name of the bucket aggregation holding per-group
// record counts.
const GroupBucket = "group"

// Response is the decoded body of a search call.
type Response struct {
	Records      []Record      `json:"data"`
	Aggregations []Aggregation `json:"aggregations"`
	Buckets      []Bucket      `json:"buckets"`
	Stats        Stats         `json:"stats"`
}

// Aggregation holds facet counts for one aggregation name. Other counts the
// documents in entries that were not returned.
type Aggregation struct {
	Name    string        `json:"name"`
	Entries []field.Entry `json:"entries"`
	Other   int           `json:"other"`
	Total   int           `json:"total"`
}

// Bucket holds per-value record counts, such as the count of each group.
type Bucket struct {
	Name    string        `json:"name"`
	Entries []BucketEntry `json:"entries"`
}

// BucketEntry is one value of a Bucket.
type BucketEntry struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Stats counts all matching records and the records on this page.
type Stats struct {
	Total   int `json:"total"`
	Results int `json:"results"`
}

// GroupCounts returns the record count of each group.
func (r *Response) GroupCounts() map[string]int {
	counts := make(map[string]int)
	for _, b := range r.Buckets {
		if b.Name != GroupBucket {
			continue
		}
		for _, e := range b.Entries {
			counts[e.Value] = e.Count
		}
	}
	return counts
}

// Record is one search hit.
type Record struct {
	ID            string `json:"id"`
	Title         string `json:"title,omitempty"`
	Reference     string `json:"reference,omitempty"`
	CoveringDates string `json:"covering_dates,omitempty"`
	HeldBy        string `json:"held_by,omitempty"`
	Level         string `json:"level,omitempty"`
	Description   string `json:"description,omitempty"`
	Source        string `json:"source,omitempty"`
}

type recordJSON struct {
	Template struct {
		Details struct {
			IAID            string `json:"iaid"`
			ID              string `json:"id"`
			SummaryTitle    string `json:"summaryTitle"`
			ReferenceNumber string `json:"referenceNumber"`
			CoveringDates   string `json:"coveringDates"`
			HeldBy          string `json:"heldBy"`
			Level           string `json:"level"`
			Description     string `json:"description"`
			Source          string `json:"source"`
		} `json:"details"`
	} `json:"@template"`
}

// UnmarshalJSON reads a hit from its "@template.details" object.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d := raw.Template.Details
	*r = Record{
		ID:            d.IAID,
		Title:         d.SummaryTitle,
		Reference:     d.ReferenceNumber,
		CoveringDates: d.CoveringDates,
		HeldBy:        d.HeldBy,
		Level:         d.Level,
		Description:   d.Description,
		Source:        d.Source,
	}
	if r.ID == "" {
		r.ID = d.ID
	}
	return nil
}
