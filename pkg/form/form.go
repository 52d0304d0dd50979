// Package form binds request parameters to an ordered set of fields and
// validates them together.
//
// Flow:
//
//  1. declare the fields (order matters for rendering only)
//  2. New drops all-empty parameters, applies defaults and binds every field
//  3. IsValid validates every field, then runs the cross validator
//  4. read Errors and NonFieldErrors, or the fields' cleaned values
package form

import (
	"fmt"
	"slices"

	"github.com/rubiojr/catalogue/pkg/field"
	"github.com/rubiojr/catalogue/pkg/querystring"
)

// Entry declares one named field.
type Entry struct {
	Name  string
	Field field.Field
}

// CrossValidator validates relations between fields after all fields ran.
// It may attach errors to fields with AddError and returns form-level
// messages. It must cope with fields that have no cleaned value.
type CrossValidator func(f *Form) []string

// Option configures a Form.
type Option func(*Form)

// WithFields declares fields in order. Later declarations of the same name
// replace the earlier field in place.
func WithFields(entries ...Entry) Option {
	return func(f *Form) {
		for _, e := range entries {
			if i := slices.Index(f.names, e.Name); i >= 0 {
				f.fields[e.Name] = e.Field
				continue
			}
			f.names = append(f.names, e.Name)
			f.fields[e.Name] = e.Field
		}
	}
}

// WithDefault sets the value used when name is absent from the request.
// Defaults are appended to the data in declaration order.
func WithDefault(name, value string) Option {
	return func(f *Form) {
		f.defaults = append(f.defaults, [2]string{name, value})
	}
}

// WithCrossValidator sets the form-level validation.
func WithCrossValidator(cv CrossValidator) Option {
	return func(f *Form) { f.cross = cv }
}

// Form is an ordered mapping of field name to Field. A Form is request
// scoped and not safe for concurrent use.
type Form struct {
	data           *querystring.Values
	names          []string
	fields         map[string]field.Field
	defaults       [][2]string
	cross          CrossValidator
	nonFieldErrors []field.Error
}

// New builds the form data from params and binds every field.
//
// Parameters whose every occurrence is the empty string are treated as
// absent before defaults apply, so "?online=" does not mask a default.
func New(params *querystring.Values, opts ...Option) *Form {
	f := &Form{fields: make(map[string]field.Field)}
	for _, opt := range opts {
		opt(f)
	}

	if params == nil {
		params = querystring.New()
	}
	data := params.Clone()
	for _, k := range data.Keys() {
		if allEmpty(data.GetAll(k)) {
			data.Del(k)
		}
	}
	for _, d := range f.defaults {
		data.SetDefault(d[0], d[1])
	}
	f.data = data

	f.bind()
	return f
}

func allEmpty(values []string) bool {
	for _, v := range values {
		if v != "" {
			return false
		}
	}
	return true
}

func (f *Form) bind() {
	for _, name := range f.names {
		f.fields[name].Bind(name, f.data)
	}
}

// Data returns a copy of the bound data (request parameters with empty
// parameters dropped and defaults applied).
func (f *Form) Data() *querystring.Values {
	return f.data.Clone()
}

// Names returns the field names in declaration order.
func (f *Form) Names() []string {
	return slices.Clone(f.names)
}

// Fields returns the fields in declaration order.
func (f *Form) Fields() []field.Field {
	out := make([]field.Field, len(f.names))
	for i, n := range f.names {
		out[i] = f.fields[n]
	}
	return out
}

// Field returns the named field or nil.
func (f *Form) Field(name string) field.Field {
	return f.fields[name]
}

// Has reports whether the form declares name.
func (f *Form) Has(name string) bool {
	_, ok := f.fields[name]
	return ok
}

// IsValid validates every field, then runs the cross validator even if some
// fields failed. Non-field errors are replaced on every call.
func (f *Form) IsValid() bool {
	valid := true
	for _, name := range f.names {
		if !f.fields[name].IsValid() {
			valid = false
		}
	}

	f.nonFieldErrors = nil
	if f.cross != nil {
		if msgs := f.cross(f); len(msgs) > 0 {
			f.nonFieldErrors = make([]field.Error, len(msgs))
			for i, m := range msgs {
				f.nonFieldErrors[i] = field.Error{Text: m}
			}
			valid = false
		}
	}
	return valid
}

// Errors maps field names to their current error. Fields without an error
// are omitted. The map is built on every call.
func (f *Form) Errors() map[string]field.Error {
	errs := make(map[string]field.Error)
	for _, name := range f.names {
		if e := f.fields[name].Error(); e != nil {
			errs[name] = *e
		}
	}
	return errs
}

// NonFieldErrors returns the messages of the last cross validation.
func (f *Form) NonFieldErrors() []field.Error {
	if f.nonFieldErrors == nil {
		return []field.Error{}
	}
	return slices.Clone(f.nonFieldErrors)
}

// MalformedInputError reports a request parameter bound more than once to a
// field that takes a single value.
type MalformedInputError struct {
	Param string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("Field %s can only bind to single value", e.Param)
}

// CheckSingleValues returns a *MalformedInputError for the first
// single-valued field parameter that occurs more than once in the bound
// data.
func (f *Form) CheckSingleValues() error {
	for _, name := range f.names {
		fld := f.fields[name]
		if !fld.SingleValued() {
			continue
		}
		for _, p := range fld.ParamNames() {
			if len(f.data.GetAll(p)) > 1 {
				return &MalformedInputError{Param: p}
			}
		}
	}
	return nil
}
