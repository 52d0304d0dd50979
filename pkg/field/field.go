// Package field implements the typed form fields used by the catalogue
// search forms.
//
// Every field follows the same flow:
//
//  1. construct the field with its static configuration
//  2. Bind the request parameters
//  3. IsValid cleans and validates the bound value
//  4. on failure the error is stored on the field
//  5. read Cleaned, Error, Items for presentation
//
// The set of variants is closed: Text, SingleChoice, DynamicMultiChoice and
// Date. Cleaned values are only visible while the field carries no error; an
// error attached after a successful validation (see AddError) hides the
// public cleaned value but keeps the internal one available to the caller.
package field

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MsgRequired is returned when a required field has no value.
const MsgRequired = "Value is required."

// Source is the bound request data. querystring.Values satisfies it.
type Source interface {
	GetAll(key string) []string
}

// Error is the error attached to a field, shaped for the front-end
// components.
type Error struct {
	Text string `json:"text"`
}

// ValidationError is raised while cleaning a value. It never escapes IsValid.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// Choice is a (value, label) pair.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Item is a choice rendered for a checkbox or radio component.
type Item struct {
	Text    string `json:"text"`
	Value   string `json:"value"`
	Checked bool   `json:"checked,omitempty"`
}

// Field is implemented by the four field variants only.
type Field interface {
	Name() string
	Label() string
	Required() bool
	Hint() string
	ActiveFilterLabel() string

	// Bind stores the field name and reads the field's parameters from src.
	Bind(name string, src Source)
	// IsValid cleans and validates the bound value. It resets any previous
	// error first, so repeated calls give the same result.
	IsValid() bool
	Error() *Error
	AddError(msg string)

	// ParamNames lists the request parameters the field reads.
	ParamNames() []string
	// SingleValued reports whether more than one occurrence of a parameter
	// is malformed input.
	SingleValued() bool

	Visible() bool
	SetVisible(bool)

	base() *Base
}

// Base holds the state shared by all variants.
type Base struct {
	name        string
	label       string
	required    bool
	hint        string
	activeLabel string
	err         *Error
	visible     bool
}

// Option configures a field at construction.
type Option func(*options)

type options struct {
	label         string
	required      bool
	hint          string
	activeLabel   string
	validateInput *bool
	padding       Padding
	moreText      string
}

// WithLabel sets the display label. Without it the label is derived from the
// field name on Bind.
func WithLabel(label string) Option {
	return func(o *options) { o.label = label }
}

// Required marks the field as required.
func Required() Option {
	return func(o *options) { o.required = true }
}

// WithHint sets the hint text.
func WithHint(hint string) Option {
	return func(o *options) { o.hint = hint }
}

// WithActiveFilterLabel sets the label used for selected-filter chips.
func WithActiveFilterLabel(label string) Option {
	return func(o *options) { o.activeLabel = label }
}

// ValidateInput overrides the DynamicMultiChoice default. It has no effect
// on fields without static choices.
func ValidateInput(v bool) Option {
	return func(o *options) { o.validateInput = &v }
}

// WithPadding sets the Date padding strategy.
func WithPadding(p Padding) Option {
	return func(o *options) { o.padding = p }
}

// WithMoreOptionsText sets the text of the "see more options" link of a
// DynamicMultiChoice field.
func WithMoreOptionsText(text string) Option {
	return func(o *options) { o.moreText = text }
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newBase(o options) Base {
	return Base{
		label:       o.label,
		required:    o.required,
		hint:        o.hint,
		activeLabel: o.activeLabel,
	}
}

func (b *Base) base() *Base { return b }

func (b *Base) bindName(name string) {
	b.name = name
	if b.label == "" {
		b.label = DefaultLabel(name)
	}
}

func (b *Base) Name() string { return b.name }
func (b *Base) Label() string { return b.label }
func (b *Base) Required() bool { return b.required }
func (b *Base) Hint() string { return b.hint }
func (b *Base) Visible() bool { return b.visible }
func (b *Base) SetVisible(v bool) { b.visible = v }

// ActiveFilterLabel falls back to the label when none was configured.
func (b *Base) ActiveFilterLabel() string {
	if b.activeLabel != "" {
		return b.activeLabel
	}
	return b.label
}

// Error returns the current error or nil.
func (b *Base) Error() *Error {
	return b.err
}

// AddError replaces the current error.
func (b *Base) AddError(msg string) {
	b.err = &Error{Text: msg}
}

// HasError reports whether an error is attached.
func (b *Base) HasError() bool {
	return b.err != nil
}

func (b *Base) ParamNames() []string { return []string{b.name} }

func (b *Base) reset() {
	b.err = nil
}

// record attaches err to the field.
func (b *Base) record(err error) {
	if err == nil {
		return
	}
	b.AddError(err.Error())
}

func (b *Base) validateRequired(empty bool) error {
	if b.required && empty {
		return invalid(MsgRequired)
	}
	return nil
}

// DefaultLabel derives a label from a field name: "held_by" becomes
// "Held by".
func DefaultLabel(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	if len(words) == 0 {
		return ""
	}
	words[0] = cases.Title(language.BritishEnglish).String(words[0])
	for i := 1; i < len(words); i++ {
		words[i] = strings.ToLower(words[i])
	}
	return strings.Join(words, " ")
}

func last(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[len(values)-1]
}
