package core

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestRawPlace_EditorialText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "absent", raw: "", want: ""},
		{name: "plain string", raw: `"  Cozy ramen bar  "`, want: "Cozy ramen bar"},
		{name: "overview object", raw: `{"overview":" Late-night tacos ","language":"en"}`, want: "Late-night tacos"},
		{name: "object without overview", raw: `{"language":"en"}`, want: ""},
		{name: "null", raw: `null`, want: ""},
		{name: "number", raw: `42`, want: ""},
		{name: "list", raw: `["a","b"]`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			place := RawPlace{PlaceID: "p1"}
			if tt.raw != "" {
				place.EditorialSummary = json.RawMessage(tt.raw)
			}
			if got := place.EditorialText(); got != tt.want {
				t.Errorf("EditorialText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRawPlace_ReviewTexts(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		limit int
		want  []string
	}{
		{
			name:  "absent",
			raw:   "",
			limit: 3,
			want:  nil,
		},
		{
			name:  "not a list",
			raw:   `{"text":"great"}`,
			limit: 3,
			want:  nil,
		},
		{
			name:  "first three non-empty in order",
			raw:   `[{"text":"one"},{"text":"  "},{"text":"two"},"junk",{"rating":5},{"text":" three "},{"text":"four"}]`,
			limit: 3,
			want:  []string{"one", "two", "three"},
		},
		{
			name:  "fewer than limit",
			raw:   `[{"text":"only"}]`,
			limit: 3,
			want:  []string{"only"},
		},
		{
			name:  "zero limit",
			raw:   `[{"text":"only"}]`,
			limit: 0,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			place := RawPlace{PlaceID: "p1"}
			if tt.raw != "" {
				place.Reviews = json.RawMessage(tt.raw)
			}
			got := place.ReviewTexts(tt.limit)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReviewTexts() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNumberedList(t *testing.T) {
	got := NumberedList([]string{"first", "second"})
	want := "1. first\n2. second"
	if got != want {
		t.Errorf("NumberedList() = %q, want %q", got, want)
	}

	if got := NumberedList(nil); got != "" {
		t.Errorf("NumberedList(nil) = %q, want empty", got)
	}
}

func TestRawPlace_JSONPassthrough(t *testing.T) {
	input := `{"place_id":"abc","name":"Thai Tom","price_level":1,"opening_hours":{"open_now":true},"reviews":"broken"}`

	var place RawPlace
	if err := json.Unmarshal([]byte(input), &place); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if place.PriceLevel == nil || *place.PriceLevel != 1 {
		t.Errorf("PriceLevel = %v, want 1", place.PriceLevel)
	}
	if place.Rating != nil {
		t.Errorf("Rating = %v, want nil", *place.Rating)
	}
	if got := place.ReviewTexts(3); len(got) != 0 {
		t.Errorf("ReviewTexts() = %v, want none for malformed reviews", got)
	}
	if string(place.OpeningHours) != `{"open_now":true}` {
		t.Errorf("OpeningHours = %s, want passthrough", place.OpeningHours)
	}
}
