// Package catalogue declares the catalogue search forms: the field names,
// their static choices and the form built for each result bucket.
package catalogue

import (
	"github.com/rubiojr/catalogue/pkg/bucket"
	"github.com/rubiojr/catalogue/pkg/field"
	"github.com/rubiojr/catalogue/pkg/form"
	"github.com/rubiojr/catalogue/pkg/querystring"
)

// Field names, also used as request parameter names.
const (
	Q                = "q"
	Sort             = "sort"
	Group            = "group"
	Display          = "display"
	FilterList       = "filter_list"
	Level            = "level"
	Collection       = "collection"
	Online           = "online"
	Closure          = "closure"
	Subject          = "subject"
	HeldBy           = "held_by"
	CoveringDateFrom = "covering_date_from"
	CoveringDateTo   = "covering_date_to"
	OpeningDateFrom  = "opening_date_from"
	OpeningDateTo    = "opening_date_to"
	Page             = "page"
)

// Defaults applied when a parameter is absent.
const (
	DefaultGroup   = bucket.KeyTNA
	DefaultSort    = SortRelevance
	DefaultDisplay = DisplayList
)

// Cross validation messages.
const (
	MsgFromAfterTo            = "This date must be earlier than or equal to the 'to' date."
	MsgRecordDateFromAfterTo  = "Record date 'from' cannot be later than 'to' date"
	MsgOpeningDateFromAfterTo = "Opening date 'from' cannot be later than 'to' date"
)

// Kind tells which form was built for a request.
type Kind int

const (
	// KindBase is built for an unknown group. It only holds the common
	// fields so the group error can be shown.
	KindBase Kind = iota
	KindTNA
	KindNonTNA
)

func (k Kind) String() string {
	switch k {
	case KindTNA:
		return bucket.KeyTNA
	case KindNonTNA:
		return bucket.KeyNonTNA
	default:
		return "base"
	}
}

// Form is a catalogue search form.
type Form struct {
	*form.Form
	Kind Kind
}

// DateRange pairs the from and to fields of a date filter.
type DateRange struct {
	From, To string
	Message  string
}

// DateRanges lists the date filters in display order.
var DateRanges = []DateRange{
	{From: CoveringDateFrom, To: CoveringDateTo, Message: MsgRecordDateFromAfterTo},
	{From: OpeningDateFrom, To: OpeningDateTo, Message: MsgOpeningDateFromAfterTo},
}

// GroupOf returns the group a request targets, applying the default when
// every occurrence of the parameter is empty. The last occurrence wins.
func GroupOf(params *querystring.Values) string {
	if params == nil {
		return DefaultGroup
	}
	vals := params.GetAll(Group)
	for _, v := range vals {
		if v != "" {
			return vals[len(vals)-1]
		}
	}
	return DefaultGroup
}

// NewForm builds the form for the group requested in params.
func NewForm(params *querystring.Values) *Form {
	switch GroupOf(params) {
	case bucket.KeyTNA:
		return newForm(params, KindTNA, tnaFields()...)
	case bucket.KeyNonTNA:
		return newForm(params, KindNonTNA, nonTNAFields()...)
	default:
		return newForm(params, KindBase)
	}
}

func newForm(params *querystring.Values, kind Kind, specific ...form.Entry) *Form {
	f := form.New(params,
		form.WithFields(commonFields(kind)...),
		form.WithFields(specific...),
		form.WithDefault(Group, DefaultGroup),
		form.WithDefault(Sort, DefaultSort),
		form.WithDefault(Display, DefaultDisplay),
		form.WithCrossValidator(validateDateRanges),
	)
	return &Form{Form: f, Kind: kind}
}

func groupChoices() []field.Choice {
	var out []field.Choice
	for _, c := range bucket.Catalogue().Choices() {
		out = append(out, field.Choice{Value: c[0], Label: c[1]})
	}
	return out
}

// filterListChoices offers the long aggregations of the bucket the form
// searches. Forms for an unknown group accept every long aggregation.
func filterListChoices(kind Kind) []field.Choice {
	choices := bucket.LongAggsChoices()
	if b, err := bucket.Catalogue().Get(kind.String()); err == nil {
		choices = b.LongAggsChoices()
	}
	var out []field.Choice
	for _, c := range choices {
		out = append(out, field.Choice{Value: c[0], Label: c[1]})
	}
	return out
}

func commonFields(kind Kind) []form.Entry {
	return []form.Entry{
		{Name: Group, Field: field.NewSingleChoice(groupChoices(), field.Required())},
		{Name: Sort, Field: field.NewSingleChoice(sortChoices)},
		{Name: Display, Field: field.NewSingleChoice(displayChoices)},
		{Name: FilterList, Field: field.NewSingleChoice(filterListChoices(kind))},
		{Name: Q, Field: field.NewText()},
		{Name: CoveringDateFrom, Field: field.NewDate(
			field.WithLabel("Record date from"),
			field.WithPadding(field.PadStart),
		)},
		{Name: CoveringDateTo, Field: field.NewDate(
			field.WithLabel("Record date to"),
			field.WithPadding(field.PadEnd),
		)},
	}
}

func tnaFields() []form.Entry {
	return []form.Entry{
		{Name: Level, Field: field.NewDynamicMultiChoice(levelChoices(),
			field.WithLabel("Filter by levels"),
			field.WithActiveFilterLabel("Level"),
		)},
		{Name: Collection, Field: field.NewDynamicMultiChoice(collectionChoices,
			field.WithLabel("Collections"),
			field.WithActiveFilterLabel("Collection"),
			field.ValidateInput(false),
		)},
		{Name: Online, Field: field.NewSingleChoice(onlineChoices,
			field.WithActiveFilterLabel("Online only"),
		)},
		{Name: Subject, Field: field.NewDynamicMultiChoice(nil,
			field.WithLabel("Subjects"),
			field.WithActiveFilterLabel("Subject"),
		)},
		{Name: Closure, Field: field.NewDynamicMultiChoice(nil,
			field.WithLabel("Closure status"),
		)},
		{Name: OpeningDateFrom, Field: field.NewDate(
			field.WithLabel("Opening date from"),
			field.WithPadding(field.PadStart),
		)},
		{Name: OpeningDateTo, Field: field.NewDate(
			field.WithLabel("Opening date to"),
			field.WithPadding(field.PadEnd),
		)},
	}
}

func nonTNAFields() []form.Entry {
	return []form.Entry{
		{Name: HeldBy, Field: field.NewDynamicMultiChoice(nil,
			field.WithLabel("Held by"),
		)},
	}
}

// validateDateRanges rejects ranges whose from date is later than the to
// date. The error is attached to the from field as well, so the field is
// rendered as invalid while its date stays available for display.
func validateDateRanges(f *form.Form) []string {
	var msgs []string
	for _, r := range DateRanges {
		from, ok := f.Field(r.From).(*field.Date)
		if !ok {
			continue
		}
		to, ok := f.Field(r.To).(*field.Date)
		if !ok {
			continue
		}
		a, okA := from.Cleaned()
		b, okB := to.Cleaned()
		if okA && okB && a.After(b) {
			from.AddError(MsgFromAfterTo)
			msgs = append(msgs, r.Message)
		}
	}
	return msgs
}

// Text returns the named text field or nil.
func (f *Form) Text(name string) *field.Text {
	t, _ := f.Field(name).(*field.Text)
	return t
}

// Choice returns the named single choice field or nil.
func (f *Form) Choice(name string) *field.SingleChoice {
	c, _ := f.Field(name).(*field.SingleChoice)
	return c
}

// MultiChoice returns the named multi choice field or nil.
func (f *Form) MultiChoice(name string) *field.DynamicMultiChoice {
	m, _ := f.Field(name).(*field.DynamicMultiChoice)
	return m
}

// Date returns the named date field or nil.
func (f *Form) Date(name string) *field.Date {
	d, _ := f.Field(name).(*field.Date)
	return d
}

// MultiChoices returns the multi choice fields in declaration order.
func (f *Form) MultiChoices() []*field.DynamicMultiChoice {
	var out []*field.DynamicMultiChoice
	for _, fld := range f.Fields() {
		if m, ok := fld.(*field.DynamicMultiChoice); ok {
			out = append(out, m)
		}
	}
	return out
}

// Dates returns the date fields in declaration order.
func (f *Form) Dates() []*field.Date {
	var out []*field.Date
	for _, fld := range f.Fields() {
		if d, ok := fld.(*field.Date); ok {
			out = append(out, d)
		}
	}
	return out
}

// CleanedString returns the cleaned value of a text or single choice field.
func (f *Form) CleanedString(name string) string {
	switch fld := f.Field(name).(type) {
	case *field.Text:
		v, _ := fld.Cleaned()
		return v
	case *field.SingleChoice:
		v, _ := fld.Cleaned()
		return v
	}
	return ""
}

// FilterListApplied reports whether the form is in "more options" mode for
// a long aggregation.
func (f *Form) FilterListApplied() bool {
	return f.CleanedString(FilterList) != ""
}
