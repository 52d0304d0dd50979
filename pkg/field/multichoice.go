package field

import (
	"fmt"
	"slices"
	"strings"
)

// DynamicMultiChoice accepts any number of values. Its display choices are
// rebuilt from search aggregations after every request (see UpdateChoices),
// while the configured choices act as the validation set and label lookup.
type DynamicMultiChoice struct {
	Base
	configured     []Choice
	labels         map[string]string
	choices        []Choice
	validateInput  bool
	validChoices   []string
	choicesUpdated bool
	value          []string
	cleaned        []string
	ok             bool
	more           MoreOptions
	moreText       string
}

// MoreOptions describes the "see more options" link shown when the
// aggregation holds more entries than returned.
type MoreOptions struct {
	Available bool   `json:"available"`
	Text      string `json:"text,omitempty"`
	URL       string `json:"url,omitempty"`
}

// NewDynamicMultiChoice returns a multi choice field. Input is validated
// against choices by default when choices is non-empty; without choices
// validation is always off.
func NewDynamicMultiChoice(choices []Choice, opts ...Option) *DynamicMultiChoice {
	o := applyOptions(opts)
	f := &DynamicMultiChoice{
		Base:       newBase(o),
		configured: slices.Clone(choices),
		choices:    slices.Clone(choices),
		value:      []string{},
		moreText:   o.moreText,
	}
	if len(choices) > 0 {
		f.validateInput = true
		if o.validateInput != nil {
			f.validateInput = *o.validateInput
		}
	}
	if f.validateInput {
		for _, c := range choices {
			f.validChoices = append(f.validChoices, c.Value)
		}
	}
	f.labels = make(map[string]string, len(choices))
	for _, c := range choices {
		f.labels[c.Value] = c.Label
	}
	return f
}

func (f *DynamicMultiChoice) Bind(name string, src Source) {
	f.bindName(name)
	f.value = src.GetAll(name)
	if f.value == nil {
		f.value = []string{}
	}
}

// Value returns every bound value in request order.
func (f *DynamicMultiChoice) Value() []string { return slices.Clone(f.value) }

func (f *DynamicMultiChoice) SingleValued() bool { return false }

// ValidatesInput reports whether input is checked against the configured
// choices.
func (f *DynamicMultiChoice) ValidatesInput() bool { return f.validateInput }

// ValidChoices returns the values input is validated against.
func (f *DynamicMultiChoice) ValidChoices() []string { return slices.Clone(f.validChoices) }

// ConfiguredChoices returns the static choices.
func (f *DynamicMultiChoice) ConfiguredChoices() []Choice { return slices.Clone(f.configured) }

// ConfiguredChoiceLabels maps configured values to their labels.
func (f *DynamicMultiChoice) ConfiguredChoiceLabels() map[string]string {
	out := make(map[string]string, len(f.labels))
	for k, v := range f.labels {
		out[k] = v
	}
	return out
}

// DisplayLabel returns the configured label for value, or value itself.
func (f *DynamicMultiChoice) DisplayLabel(value string) string {
	if l, ok := f.labels[value]; ok {
		return l
	}
	return value
}

// Choices returns the current display choices.
func (f *DynamicMultiChoice) Choices() []Choice { return slices.Clone(f.choices) }

// ChoicesUpdated reports whether UpdateChoices replaced the choices.
func (f *DynamicMultiChoice) ChoicesUpdated() bool { return f.choicesUpdated }

func (f *DynamicMultiChoice) hasAll(values []string) bool {
	for _, v := range values {
		if !slices.Contains(f.validChoices, v) {
			return false
		}
	}
	return true
}

func (f *DynamicMultiChoice) validate(values []string) error {
	if !f.required && !f.validateInput {
		return nil
	}
	if err := f.validateRequired(len(values) == 0); err != nil {
		return err
	}
	if f.validateInput && !f.hasAll(values) {
		return invalid(fmt.Sprintf(
			"Enter a valid choice. Value(s) [%s] do not belong to the available choices. Valid choices are [%s]",
			strings.Join(values, ", "), strings.Join(f.validChoices, ", "),
		))
	}
	return nil
}

func (f *DynamicMultiChoice) IsValid() bool {
	f.reset()
	f.cleaned, f.ok = nil, false
	if err := f.validate(f.value); err != nil {
		f.record(err)
		return false
	}
	f.cleaned, f.ok = slices.Clone(f.value), true
	return true
}

// Cleaned returns the selected values while the field has no error.
func (f *DynamicMultiChoice) Cleaned() ([]string, bool) {
	if f.HasError() || !f.ok {
		return nil, false
	}
	return slices.Clone(f.cleaned), true
}

// MoreOptions returns the "see more options" link state.
func (f *DynamicMultiChoice) MoreOptions() MoreOptions { return f.more }

// SetMoreOptions records whether more options are available and where to
// find them. When unavailable, text and URL are cleared.
func (f *DynamicMultiChoice) SetMoreOptions(available bool, url string) {
	if !available {
		f.more = MoreOptions{}
		return
	}
	text := f.moreText
	if text == "" {
		text = "See more " + strings.ToLower(f.Label())
	}
	f.more = MoreOptions{Available: true, Text: text, URL: url}
}

// Items renders the display choices with the bound values checked.
//
// When the field has an error the search returned no aggregation data for
// it, so the selected values are repaired into zero-count choices first:
// selected values that are valid choices are kept, and when none of them
// is, every valid choice is listed at zero. The repaired choices replace
// the current ones, so repeated reads return the same items.
func (f *DynamicMultiChoice) Items() []Item {
	if f.HasError() {
		var zero []Entry
		partial := false
		if !f.hasAll(f.value) {
			for _, v := range f.value {
				if slices.Contains(f.validChoices, v) {
					partial = true
					zero = append(zero, Entry{Value: v})
				}
			}
		}
		if !partial {
			for _, v := range f.validChoices {
				zero = append(zero, Entry{Value: v})
			}
		}
		if len(zero) > 0 {
			f.UpdateChoices(zero, f.value)
		}
	}

	items := make([]Item, len(f.choices))
	for i, c := range f.choices {
		items[i] = Item{Text: c.Label, Value: c.Value, Checked: slices.Contains(f.value, c.Value)}
	}
	return items
}
