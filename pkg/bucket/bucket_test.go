package bucket

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogueOrder(t *testing.T) {
	r := Catalogue()
	assert.Equal(t, []string{KeyTNA, KeyNonTNA}, r.Keys())
	assert.Equal(t, [][2]string{
		{KeyTNA, "Records at the National Archives"},
		{KeyNonTNA, "Records at other UK archives"},
	}, r.Choices())

	tna, err := r.Get(KeyTNA)
	require.NoError(t, err)
	assert.Equal(t, []string{"level", "collection", "closure", "subject"}, tna.Aggregations)

	nonTNA, err := r.Get(KeyNonTNA)
	require.NoError(t, err)
	assert.Equal(t, []string{"heldBy"}, nonTNA.Aggregations)
}

func TestGetUnknownKey(t *testing.T) {
	_, err := Catalogue().Get("community")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "community", nf.Key)
	assert.Equal(t, "bucket matching the key 'community' could not be found", err.Error())
}

func TestUpdateForDisplay(t *testing.T) {
	r := Catalogue()
	r.UpdateForDisplay("ufo sightings", map[string]int{KeyTNA: 1234}, KeyTNA)

	buckets := r.Buckets()
	assert.Equal(t, "?group=tna&q=ufo+sightings", buckets[0].Href)
	assert.Equal(t, 1234, buckets[0].RecordCount)
	assert.True(t, buckets[0].IsCurrent)
	assert.Equal(t, "Records at the National Archives (1,234)", buckets[0].LabelWithCount())

	assert.Equal(t, "?group=nonTna&q=ufo+sightings", buckets[1].Href)
	assert.Equal(t, 0, buckets[1].RecordCount)
	assert.False(t, buckets[1].IsCurrent)

	assert.Equal(t, []Item{
		{Name: "Records at the National Archives (1,234)", Href: "?group=tna&q=ufo+sightings", Current: true},
		{Name: "Records at other UK archives (0)", Href: "?group=nonTna&q=ufo+sightings"},
	}, r.Items())
}

func TestUpdateForDisplayWithoutQuery(t *testing.T) {
	r := Catalogue()
	r.UpdateForDisplay("", nil, KeyNonTNA)
	assert.Equal(t, "?group=tna", r.Buckets()[0].Href)
	assert.True(t, r.Buckets()[1].IsCurrent)
}

func TestCloneIsolatesRequests(t *testing.T) {
	a := Catalogue()
	a.UpdateForDisplay("x", map[string]int{KeyTNA: 5}, KeyTNA)
	b := Catalogue()

	tna, _ := b.Get(KeyTNA)
	assert.Equal(t, 0, tna.RecordCount)
	assert.False(t, tna.IsCurrent)
	assert.Equal(t, "#", tna.Href)

	got, _ := a.Get(KeyTNA)
	got.Aggregations[0] = "tampered"
	again, _ := a.Get(KeyTNA)
	assert.Equal(t, "level", again.Aggregations[0])
}

func TestAggregationLookups(t *testing.T) {
	tests := []struct {
		name  string
		field string
		ok    bool
	}{
		{"level", "level", true},
		{"heldBy", "held_by", true},
		{"longHeldBy", "held_by", true},
		{"longCollection", "collection", true},
		{"longSubject", "subject", true},
		{"unknown", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := FieldForAggregation(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.field, f)
		})
	}

	a, ok := ByField("closure")
	require.True(t, ok)
	assert.Empty(t, a.LongAggs)

	f, ok := FieldForLongAggs("longCollection")
	assert.True(t, ok)
	assert.Equal(t, "collection", f)
	_, ok = FieldForLongAggs("")
	assert.False(t, ok)
	_, ok = FieldForLongAggs("level")
	assert.False(t, ok)

	assert.Equal(t, [][2]string{
		{"", "No filter"},
		{"longCollection", "collection"},
		{"longHeldBy", "held_by"},
		{"longSubject", "subject"},
	}, LongAggsChoices())
}

func TestBucketLongAggsChoices(t *testing.T) {
	r := Catalogue()
	tna, err := r.Get(KeyTNA)
	require.NoError(t, err)
	nonTNA, err := r.Get(KeyNonTNA)
	require.NoError(t, err)

	assert.Equal(t, [][2]string{
		{"", "No filter"},
		{"longCollection", "collection"},
		{"longSubject", "subject"},
	}, tna.LongAggsChoices())
	assert.Equal(t, [][2]string{
		{"", "No filter"},
		{"longHeldBy", "held_by"},
	}, nonTNA.LongAggsChoices())
}
