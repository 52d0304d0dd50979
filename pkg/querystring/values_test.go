package querystring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreservesOrder(t *testing.T) {
	v, err := Parse("?q=ufo&level=Item&group=tna&level=Division&online=")
	require.NoError(t, err)

	assert.Equal(t, []string{"q", "level", "group", "online"}, v.Keys())
	assert.Equal(t, []string{"Item", "Division"}, v.GetAll("level"))
	assert.Equal(t, "Division", v.Get("level"))
	assert.True(t, v.Has("online"))
	assert.Equal(t, []string{""}, v.GetAll("online"))
	assert.Equal(t, "q=ufo&level=Item&level=Division&group=tna&online=", v.Encode())
}

func TestParseDecodesPlusAndPercent(t *testing.T) {
	v, err := Parse("closure=Open+Document%2C+Open+Description&subject=Air Force")
	require.NoError(t, err)

	assert.Equal(t, "Open Document, Open Description", v.Get("closure"))
	assert.Equal(t, "Air Force", v.Get("subject"))
	assert.Equal(t, "closure=Open+Document%2C+Open+Description&subject=Air+Force", v.Encode())
}

func TestParseRejectsBadEscape(t *testing.T) {
	_, err := Parse("q=%zz")
	assert.Error(t, err)
}

func TestGetAllOnMissingKey(t *testing.T) {
	v := New()
	got := v.GetAll("missing")
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, "", v.Get("missing"))
}

func TestZeroValueIsUsable(t *testing.T) {
	var v Values
	v.Add("a", "1")
	assert.Equal(t, "a=1", v.Encode())
}

func TestSetKeepsPosition(t *testing.T) {
	v, _ := Parse("a=1&b=2&c=3")
	v.Set("b", "x", "y")
	assert.Equal(t, "a=1&b=x&b=y&c=3", v.Encode())

	v.Set("b")
	assert.Equal(t, "a=1&c=3", v.Encode())
}

func TestToggle(t *testing.T) {
	v, _ := Parse("q=ufo&level=Department&level=Division")

	off := v.Toggle("level", "Department")
	assert.Equal(t, "q=ufo&level=Division", off.Encode())

	on := v.Toggle("level", "Item")
	assert.Equal(t, "q=ufo&level=Department&level=Division&level=Item", on.Encode())

	empty := off.Toggle("level", "Division")
	assert.Equal(t, "q=ufo", empty.Encode())
	assert.False(t, empty.Has("level"))

	// original untouched
	assert.Equal(t, "q=ufo&level=Department&level=Division", v.Encode())
}

func TestReplaceRemove(t *testing.T) {
	v, _ := Parse("q=ufo&page=3&collection=BT")

	assert.Equal(t, "q=ufo&page=1&collection=BT", v.Replace("page", "1").Encode())
	assert.Equal(t, "q=ufo&page=3&collection=BT&filter_list=longCollection", v.Replace("filter_list", "longCollection").Encode())
	assert.Equal(t, "q=ufo&collection=BT", v.Remove("page").Encode())
}

func TestHref(t *testing.T) {
	assert.Equal(t, "?", New().Href())
	v, _ := Parse("online=true")
	assert.Equal(t, "?", v.Remove("online").Href())
}
