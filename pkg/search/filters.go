package search

import (
	"strings"

	"github.com/rubiojr/catalogue/pkg/bucket"
	"github.com/rubiojr/catalogue/pkg/catalogue"
	"github.com/rubiojr/catalogue/pkg/field"
	"github.com/rubiojr/catalogue/pkg/querystring"
	"github.com/rubiojr/catalogue/pkg/searchapi"
)

// selectedFilters lists the applied filters in display order: online,
// multi choice values, then dates. Removal links start from the request
// parameters, except for dates which start from the bound form data.
func selectedFilters(f *catalogue.Form, params *querystring.Values) []SelectedFilter {
	filters := []SelectedFilter{}

	if online := f.Choice(catalogue.Online); online != nil && f.CleanedString(catalogue.Online) != "" {
		label := online.ActiveFilterLabel()
		filters = append(filters, SelectedFilter{
			Label: label,
			Href:  params.Remove(catalogue.Online).Href(),
			Title: "Remove " + strings.ToLower(label),
		})
	}

	for _, m := range f.MultiChoices() {
		active := m.ActiveFilterLabel()
		for _, v := range m.Value() {
			label := v
			if m.Name() != catalogue.Level {
				label = m.DisplayLabel(v)
			}
			filters = append(filters, SelectedFilter{
				Label: active + ": " + label,
				Href:  params.Toggle(m.Name(), v).Href(),
				Title: "Remove " + label + " " + strings.ToLower(active),
			})
		}
	}

	if f.Kind == catalogue.KindBase {
		return filters
	}
	data := f.Data()
	for _, d := range f.Dates() {
		cleaned, ok := d.InternalCleaned()
		if !ok {
			continue
		}
		shown := cleaned.Format(field.DisplayDateLayout)
		active := d.ActiveFilterLabel()
		filters = append(filters, SelectedFilter{
			Label: active + ": " + shown,
			Href:  dateRemovalHref(data, d),
			Title: "Remove " + shown + " " + strings.ToLower(active),
		})
	}
	return filters
}

// dateRemovalHref drops the year parameter of d and, following the order
// of the parts, the month and day parameters that were supplied with it.
func dateRemovalHref(data *querystring.Values, d *field.Date) string {
	parts := d.Value()
	var remove []string
	if parts.Year != "" {
		remove = append(remove, d.PartName(field.PartYear))
		if parts.Month != "" {
			remove = append(remove, d.PartName(field.PartMonth))
			if parts.Day != "" {
				remove = append(remove, d.PartName(field.PartDay))
			}
		}
	}
	return data.Remove(remove...).Href()
}

// setVisibility sets the visibility of every filter field and reports
// whether the filters panel is shown at all.
//
// Filters are hidden when the search returned nothing and the user has
// nothing to correct or remove. On the TNA bucket they are also hidden when
// the only problem is an invalid online value.
func setVisibility(f *catalogue.Form, hasResults, hasSelected bool) bool {
	group := f.CleanedString(catalogue.Group)
	if group == "" {
		return false
	}

	errs := f.Errors()
	visible := true
	_, onlineErr := errs[catalogue.Online]
	switch {
	case group == bucket.KeyTNA && onlineErr && len(errs) == 1 && !hasResults:
		visible = false
	case !hasResults && len(errs) == 0 && len(f.NonFieldErrors()) == 0 && !hasSelected:
		visible = false
	}

	if online := f.Choice(catalogue.Online); online != nil {
		online.SetVisible(hasResults)
	}
	for _, r := range catalogue.DateRanges {
		from, to := f.Date(r.From), f.Date(r.To)
		if from == nil || to == nil {
			continue
		}
		show := hasResults || from.Value().Year != "" || to.Value().Year != ""
		from.SetVisible(show)
		to.SetVisible(show)
	}
	for _, m := range f.MultiChoices() {
		m.SetVisible(len(m.Items()) > 0)
	}
	return visible
}

// analytics builds the data layer of the page.
func analytics(f *catalogue.Form, resp *searchapi.Response, selected int) Analytics {
	a := Analytics{
		ContentGroup:  "Search the catalogue",
		PageType:      "catalogue_search",
		SearchFilters: selected,
	}
	switch f.Choice(catalogue.Group).Value() {
	case bucket.KeyTNA:
		a.ContentSource = "TNA catalogue"
		a.SearchType = "Records at The National Archives"
	case bucket.KeyNonTNA:
		a.ContentSource = "Other Archives catalogues"
		a.SearchType = "Records at other UK archives"
	}
	if q := f.Text(catalogue.Q); q != nil {
		a.SearchTerm = q.Value()
	}
	if resp != nil {
		a.SearchTotal = resp.Stats.Total
	}
	return a
}
