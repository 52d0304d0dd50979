package field

import (
	"fmt"
	"slices"
	"strings"
)

// SingleChoice accepts one value out of a static list of choices.
type SingleChoice struct {
	Base
	choices []Choice
	value   string
	cleaned string
	ok      bool
}

// NewSingleChoice returns a choice field. choices keep their order in error
// messages and items.
func NewSingleChoice(choices []Choice, opts ...Option) *SingleChoice {
	return &SingleChoice{
		Base:    newBase(applyOptions(opts)),
		choices: slices.Clone(choices),
	}
}

func (f *SingleChoice) Bind(name string, src Source) {
	f.bindName(name)
	f.value = last(src.GetAll(name))
}

func (f *SingleChoice) Value() string { return f.value }

func (f *SingleChoice) SingleValued() bool { return true }

// Choices returns the configured choices.
func (f *SingleChoice) Choices() []Choice { return slices.Clone(f.choices) }

// Values returns the choice values in configured order.
func (f *SingleChoice) Values() []string {
	out := make([]string, len(f.choices))
	for i, c := range f.choices {
		out[i] = c.Value
	}
	return out
}

func (f *SingleChoice) validate(value string) error {
	if err := f.validateRequired(value == ""); err != nil {
		return err
	}
	valid := f.Values()
	if !slices.Contains(valid, value) {
		shown := value
		if shown == "" {
			shown = "Empty param value"
		}
		return invalid(fmt.Sprintf(
			"Enter a valid choice. [%s] is not one of the available choices. Valid choices are [%s]",
			shown, strings.Join(valid, ", "),
		))
	}
	return nil
}

func (f *SingleChoice) IsValid() bool {
	f.reset()
	f.cleaned, f.ok = "", false
	if err := f.validate(f.value); err != nil {
		f.record(err)
		return false
	}
	f.cleaned, f.ok = f.value, true
	return true
}

// Cleaned returns the selected value while the field has no error.
func (f *SingleChoice) Cleaned() (string, bool) {
	if f.HasError() {
		return "", false
	}
	return f.cleaned, f.ok
}

// Items renders the choices, checking the bound value.
func (f *SingleChoice) Items() []Item {
	items := make([]Item, len(f.choices))
	for i, c := range f.choices {
		items[i] = Item{Text: c.Label, Value: c.Value, Checked: c.Value == f.value}
	}
	return items
}
