package querystring

import "slices"

// IsActive reports whether value is one of the values bound to key.
func (v *Values) IsActive(key, value string) bool {
	return slices.Contains(v.m[key], value)
}

// Toggle returns a copy with value removed from key when present, or
// appended to key otherwise. A key left without values is dropped.
func (v *Values) Toggle(key, value string) *Values {
	c := v.Clone()
	if !c.IsActive(key, value) {
		c.Add(key, value)
		return c
	}
	vals := c.m[key]
	i := slices.Index(vals, value)
	vals = slices.Delete(slices.Clone(vals), i, i+1)
	if len(vals) == 0 {
		c.Del(key)
	} else {
		c.m[key] = vals
	}
	return c
}

// Replace returns a copy with key bound to the single value.
func (v *Values) Replace(key, value string) *Values {
	c := v.Clone()
	c.Set(key, value)
	return c
}

// Remove returns a copy without the given keys.
func (v *Values) Remove(keys ...string) *Values {
	c := v.Clone()
	for _, k := range keys {
		c.Del(k)
	}
	return c
}

// Href renders the values as a relative link ("?a=1&b=2"). An empty set
// renders as "?".
func (v *Values) Href() string {
	return "?" + v.Encode()
}
