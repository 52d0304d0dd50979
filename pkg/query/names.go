package query

import (
	"github.com/iancoleman/strcase"
	"github.com/rubiojr/catalogue/pkg/catalogue"
	"github.com/rubiojr/catalogue/pkg/field"
)

// CamelCase converts a field name to its API name: "held_by" becomes
// "heldBy".
func CamelCase(name string) string {
	return strcase.ToLowerCamel(name)
}

// SnakeCase converts an API name to a field name: "longHeldBy" becomes
// "long_held_by".
func SnakeCase(name string) string {
	return strcase.ToSnake(name)
}

// alias renames a value of one field between what users see and what the
// API indexes.
type alias struct {
	field  string
	local  string
	remote string
}

// The API still indexes departments under their legacy level name.
var aliases = []alias{
	{field: catalogue.Level, local: "Department", remote: "Lettercode"},
}

// Outbound translates a selected value before it is sent to the API.
func Outbound(fieldName, value string) string {
	for _, a := range aliases {
		if a.field == fieldName && a.local == value {
			return a.remote
		}
	}
	return value
}

// Inbound translates a value returned by the API for display.
func Inbound(fieldName, value string) string {
	for _, a := range aliases {
		if a.field == fieldName && a.remote == value {
			return a.local
		}
	}
	return value
}

// InboundEntries returns a copy of entries with Inbound applied.
func InboundEntries(fieldName string, entries []field.Entry) []field.Entry {
	out := make([]field.Entry, len(entries))
	for i, e := range entries {
		e.Value = Inbound(fieldName, e.Value)
		out[i] = e
	}
	return out
}
