package field

import "strings"

// Text is a single free-text value. Repeated parameters bind the last one.
type Text struct {
	Base
	value   string
	cleaned string
	ok      bool
}

// NewText returns a text field.
func NewText(opts ...Option) *Text {
	return &Text{Base: newBase(applyOptions(opts))}
}

func (f *Text) Bind(name string, src Source) {
	f.bindName(name)
	f.value = last(src.GetAll(name))
}

// Value returns the bound (raw) value.
func (f *Text) Value() string { return f.value }

func (f *Text) SingleValued() bool { return true }

func (f *Text) IsValid() bool {
	f.reset()
	f.cleaned, f.ok = "", false
	if err := f.validateRequired(f.value == ""); err != nil {
		f.record(err)
		return false
	}
	f.cleaned, f.ok = strings.TrimSpace(f.value), true
	return true
}

// Cleaned returns the trimmed value while the field has no error.
func (f *Text) Cleaned() (string, bool) {
	if f.HasError() {
		return "", false
	}
	return f.cleaned, f.ok
}
