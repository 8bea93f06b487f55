package search

import (
	"reflect"
	"testing"
)

type record struct {
	Title       string
	Category    string
	Description string
}

func recordFields(r record) []string {
	return []string{r.Title, r.Category, r.Description}
}

func titles(items []record) []string {
	out := make([]string, len(items))
	for i, r := range items {
		out[i] = r.Title
	}
	return out
}

func TestFilter(t *testing.T) {
	items := []record{
		{Title: "Lunch", Category: "Food"},
		{Title: "Gas", Category: "Transport"},
		{Title: "Gas station snacks", Category: "Food", Description: "chips at the station"},
		{Title: "Rent", Category: "Housing"},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"partial substring match", "lun", []string{"Lunch"}},
		{"case insensitive", "LUNCH", []string{"Lunch"}},
		{"matches across fields", "transport", []string{"Gas"}},
		{"two tokens match non-contiguously", "gas station", []string{"Gas station snacks"}},
		{"no match yields empty", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(items, tt.query, recordFields)
			if !reflect.DeepEqual(titles(got), tt.want) && !(len(got) == 0 && len(tt.want) == 0) {
				t.Errorf("Filter(%q) = %v, want %v", tt.query, titles(got), tt.want)
			}
		})
	}
}

func TestFilter_EmptyQueryReturnsInputUnchanged(t *testing.T) {
	items := []record{{Title: "Lunch"}, {Title: "Gas"}}
	got := Filter(items, "", recordFields)
	if !reflect.DeepEqual(got, items) {
		t.Errorf("Filter with empty query = %v, want input unchanged", got)
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	items := []record{
		{Title: "Gas refill"},
		{Title: "Lunch"},
		{Title: "Gas station"},
	}
	got := Filter(items, "gas", recordFields)
	want := []string{"Gas refill", "Gas station"}
	if !reflect.DeepEqual(titles(got), want) {
		t.Errorf("Filter order = %v, want %v", titles(got), want)
	}
}

func TestFilter_EmptyFieldValuesNeverMatch(t *testing.T) {
	items := []record{{Title: ""}, {Title: "Lunch"}}
	got := Filter(items, "lunch", recordFields)
	if len(got) != 1 || got[0].Title != "Lunch" {
		t.Errorf("Filter = %v, want only the Lunch record", titles(got))
	}
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  string
	}{
		{"wraps first match case-insensitively", "Lunch at cafe", "lunch", "<mark>Lunch</mark> at cafe"},
		{"no match returns original", "Groceries", "lunch", "Groceries"},
		{"empty query returns original", "Lunch", "", "Lunch"},
		{"empty text returns original", "", "lunch", ""},
		{"only first occurrence marked", "gas and gas", "gas", "<mark>gas</mark> and gas"},
		{"mid-word match", "Lunchtime", "ncht", "Lu<mark>ncht</mark>ime"},
		{"multibyte query folds", "CAFÉ latte", "café", "<mark>CAFÉ</mark> latte"},
		{"shrinking fold before match", "İİİa", "a", "İİİ<mark>a</mark>"},
		{"growing fold before match", "ȺȺȺa", "a", "ȺȺȺ<mark>a</mark>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Highlight(tt.text, tt.query); got != tt.want {
				t.Errorf("Highlight(%q, %q) = %q, want %q", tt.text, tt.query, got, tt.want)
			}
		})
	}
}

func TestSuggestCategory(t *testing.T) {
	known := []string{"Food", "Transport", "Housing", "Entertainment"}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"exact match adopts known casing", "food", "Food"},
		{"one-letter typo", "Fod", "Food"},
		{"two-letter typo", "Transprt", "Transport"},
		{"too far keeps input", "Groceries", "Groceries"},
		{"empty input unchanged", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SuggestCategory(tt.input, known); got != tt.want {
				t.Errorf("SuggestCategory(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
