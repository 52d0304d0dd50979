// Package querystring implements an ordered query-string multimap.
//
// url.Values loses parameter order when encoding (keys are sorted), which
// makes removal and toggle links differ from the URL the user is looking at.
// Values keeps keys in first-insertion order and groups repeated values under
// their key, so "?q=ufo&level=Item&level=Division" round-trips unchanged.
package querystring

import (
	"net/url"
	"strings"
)

// Values is an ordered multimap of query parameters. The zero value is an
// empty set ready to use.
type Values struct {
	keys []string
	m    map[string][]string
}

// New returns an empty Values.
func New() *Values {
	return &Values{m: make(map[string][]string)}
}

// Parse parses a raw query string (with or without a leading "?"). Keys
// without "=" get an empty value; blank values are kept.
func Parse(raw string) (*Values, error) {
	v := New()
	raw = strings.TrimPrefix(raw, "?")
	for raw != "" {
		var pair string
		pair, raw, _ = strings.Cut(raw, "&")
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		k, err := url.QueryUnescape(key)
		if err != nil {
			return nil, err
		}
		val, err := url.QueryUnescape(value)
		if err != nil {
			return nil, err
		}
		v.Add(k, val)
	}
	return v, nil
}

func (v *Values) init() {
	if v.m == nil {
		v.m = make(map[string][]string)
	}
}

// Get returns the last value bound to key, or "" when absent.
func (v *Values) Get(key string) string {
	vals := v.m[key]
	if len(vals) == 0 {
		return ""
	}
	return vals[len(vals)-1]
}

// GetAll returns a copy of every value bound to key, in order. It returns an
// empty, non-nil slice when the key is absent.
func (v *Values) GetAll(key string) []string {
	vals := v.m[key]
	out := make([]string, len(vals))
	copy(out, vals)
	return out
}

// Has reports whether key is present.
func (v *Values) Has(key string) bool {
	_, ok := v.m[key]
	return ok
}

// Keys returns the keys in insertion order.
func (v *Values) Keys() []string {
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

// Add appends value to key. A new key goes to the end.
func (v *Values) Add(key, value string) {
	v.init()
	if _, ok := v.m[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.m[key] = append(v.m[key], value)
}

// Set replaces the values of key, keeping its position if present.
func (v *Values) Set(key string, values ...string) {
	v.init()
	if len(values) == 0 {
		v.Del(key)
		return
	}
	if _, ok := v.m[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.m[key] = append([]string(nil), values...)
}

// SetDefault sets key to value only when key is absent.
func (v *Values) SetDefault(key, value string) {
	if !v.Has(key) {
		v.Add(key, value)
	}
}

// Del removes key and all its values.
func (v *Values) Del(key string) {
	if _, ok := v.m[key]; !ok {
		return
	}
	delete(v.m, key)
	for i, k := range v.keys {
		if k == key {
			v.keys = append(v.keys[:i:i], v.keys[i+1:]...)
			break
		}
	}
}

// Clone returns a deep copy.
func (v *Values) Clone() *Values {
	c := New()
	for _, k := range v.keys {
		c.keys = append(c.keys, k)
		c.m[k] = append([]string(nil), v.m[k]...)
	}
	return c
}

// Encode returns the URL encoded form ("a=1&b=2&b=3"), preserving order.
// Spaces are encoded as "+".
func (v *Values) Encode() string {
	if v == nil {
		return ""
	}
	var b strings.Builder
	for _, k := range v.keys {
		ek := url.QueryEscape(k)
		for _, val := range v.m[k] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(ek)
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(val))
		}
	}
	return b.String()
}
