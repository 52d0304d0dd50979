package field

import (
	"slices"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Entry is one aggregation bucket returned by the search API.
type Entry struct {
	Value    string `json:"value"`
	DocCount int    `json:"doc_count"`
}

// FormatCount renders n with thousands grouping ("1,234").
func FormatCount(n int) string {
	return message.NewPrinter(language.BritishEnglish).Sprintf("%d", n)
}

// ChoiceLabel renders the label for an aggregation entry: the configured
// label when known, the raw value otherwise, followed by the count.
func (f *DynamicMultiChoice) ChoiceLabel(e Entry) string {
	return f.DisplayLabel(e.Value) + " (" + FormatCount(e.DocCount) + ")"
}

// UpdateChoices replaces the display choices with the aggregation entries
// of the latest search.
//
// Selected values missing from entries are appended once each as zero-count
// choices in selection order, so a selection never disappears from display. When
// the field validates its input, only selected values from the valid set
// are kept.
func (f *DynamicMultiChoice) UpdateChoices(entries []Entry, selected []string) {
	choices := make([]Choice, 0, len(entries)+len(selected))
	hits := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := hits[e.Value]; ok {
			continue
		}
		choices = append(choices, Choice{Value: e.Value, Label: f.ChoiceLabel(e)})
		hits[e.Value] = struct{}{}
	}

	for _, v := range selected {
		if _, ok := hits[v]; ok {
			continue
		}
		if f.validateInput && !slices.Contains(f.validChoices, v) {
			continue
		}
		choices = append(choices, Choice{Value: v, Label: f.DisplayLabel(v) + " (0)"})
		hits[v] = struct{}{}
	}

	f.choices = choices
	f.choicesUpdated = true
}
