package search

import (
	"github.com/rubiojr/catalogue/pkg/bucket"
	"github.com/rubiojr/catalogue/pkg/catalogue"
	"github.com/rubiojr/catalogue/pkg/field"
	"github.com/rubiojr/catalogue/pkg/pagination"
	"github.com/rubiojr/catalogue/pkg/searchapi"
)

// Results contains everything needed to render one catalogue search page:
// the bound form, the records, the facets and the navigation.
type Results struct {
	// Form is the bound and validated form. Field state (choices, errors,
	// visibility) has been updated from the search response.
	Form *catalogue.Form `json:"-"`

	// Query is the cleaned search term, empty when the form was invalid.
	Query string `json:"query"`

	// Group is the key of the bucket in focus, empty for an unknown group.
	Group string `json:"group"`

	// Page is the requested page number.
	Page int `json:"page"`

	// Records holds the hits of the current page. It is nil when no search
	// was run (invalid form or no results).
	Records []searchapi.Record `json:"records"`

	// Stats are the API totals. Total and Results are zero when no search
	// was run.
	Stats searchapi.Stats `json:"stats"`

	// Pagination is nil unless the search matched records.
	Pagination *pagination.Pagination `json:"pagination,omitempty"`
	PageLinks  *pagination.Links      `json:"page_links,omitempty"`

	// Buckets are the result groups with their counts and links.
	Buckets     []bucket.Bucket `json:"buckets"`
	BucketItems []bucket.Item   `json:"bucket_items"`

	Fields          []FieldView            `json:"fields"`
	Errors          map[string]field.Error `json:"errors"`
	NonFieldErrors  []field.Error          `json:"non_field_errors"`
	SelectedFilters []SelectedFilter       `json:"selected_filters"`
	FiltersVisible  bool                   `json:"filters_visible"`

	// MoreOptions is set while the user browses every option of one facet.
	MoreOptions *MoreOptionsPage `json:"more_options,omitempty"`

	Analytics Analytics `json:"analytics"`
}

// SelectedFilter is an applied filter with the link that removes it.
type SelectedFilter struct {
	Label string `json:"label"`
	Href  string `json:"href"`
	Title string `json:"title"`
}

// MoreOptionsPage lists every option of one facet.
type MoreOptionsPage struct {
	Field     FieldView `json:"field"`
	CancelURL string    `json:"cancel_url"`
}

// Analytics is the data layer pushed to the analytics service.
type Analytics struct {
	ContentGroup  string `json:"content_group"`
	PageType      string `json:"page_type"`
	ContentSource string `json:"content_source"`
	SearchType    string `json:"search_type"`
	SearchTerm    string `json:"search_term"`
	SearchTotal   int    `json:"search_total"`
	SearchFilters int    `json:"search_filters"`
}

// Field types of a FieldView.
const (
	TypeText        = "text"
	TypeChoice      = "choice"
	TypeMultiChoice = "multichoice"
	TypeDate        = "date"
)

// FieldView is the presentation state of one form field.
type FieldView struct {
	Name              string             `json:"name"`
	Type              string             `json:"type"`
	Label             string             `json:"label"`
	ActiveFilterLabel string             `json:"active_filter_label,omitempty"`
	Hint              string             `json:"hint,omitempty"`
	Value             any                `json:"value"`
	Items             []field.Item       `json:"items,omitempty"`
	Error             *field.Error       `json:"error,omitempty"`
	Visible           bool               `json:"visible"`
	ChoicesUpdated    bool               `json:"choices_updated,omitempty"`
	MoreOptions       *field.MoreOptions `json:"more_options,omitempty"`
}

// NewFieldView renders the state of fld. Reading the items of a multi
// choice field may repair its choices (see field.DynamicMultiChoice.Items).
func NewFieldView(fld field.Field) FieldView {
	v := FieldView{
		Name:              fld.Name(),
		Label:             fld.Label(),
		ActiveFilterLabel: fld.ActiveFilterLabel(),
		Hint:              fld.Hint(),
		Error:             fld.Error(),
		Visible:           fld.Visible(),
	}
	switch f := fld.(type) {
	case *field.Text:
		v.Type = TypeText
		v.Value = f.Value()
	case *field.SingleChoice:
		v.Type = TypeChoice
		v.Value = f.Value()
		v.Items = f.Items()
	case *field.DynamicMultiChoice:
		v.Type = TypeMultiChoice
		v.Value = f.Value()
		v.Items = f.Items()
		v.ChoicesUpdated = f.ChoicesUpdated()
		more := f.MoreOptions()
		v.MoreOptions = &more
	case *field.Date:
		v.Type = TypeDate
		v.Value = f.Value()
	}
	return v
}
