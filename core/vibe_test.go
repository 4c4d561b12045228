package core

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseVibe(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Vibe
		wantErr error
	}{
		{
			name:    "well formed",
			content: `{"summary":" Buzzy noodle counter. ","tags":["Spicy"," Late Night "]}`,
			want:    Vibe{Summary: "Buzzy noodle counter.", Tags: []string{"Spicy", "Late Night"}},
		},
		{
			name:    "more than five tags keeps first five in order",
			content: `{"summary":"s","tags":["a","b","c","d","e","f","g"]}`,
			want:    Vibe{Summary: "s", Tags: []string{"a", "b", "c", "d", "e"}},
		},
		{
			name:    "blank tags are dropped before truncation",
			content: `{"summary":"s","tags":["", "a", " ", "b", "c", "d", "e", "f"]}`,
			want:    Vibe{Summary: "s", Tags: []string{"a", "b", "c", "d", "e"}},
		},
		{
			name:    "scalar tag becomes single element",
			content: `{"summary":"s","tags":"Date Night"}`,
			want:    Vibe{Summary: "s", Tags: []string{"Date Night"}},
		},
		{
			name:    "missing fields fall back to defaults",
			content: `{}`,
			want:    Vibe{Summary: DefaultSummary, Tags: DefaultTags()},
		},
		{
			name:    "blank summary and tags fall back to defaults",
			content: `{"summary":"   ","tags":[" ",""]}`,
			want:    Vibe{Summary: DefaultSummary, Tags: DefaultTags()},
		},
		{
			name:    "not json",
			content: `Sure! Here is the JSON`,
			wantErr: ErrMalformedVibe,
		},
		{
			name:    "json array",
			content: `["summary"]`,
			wantErr: ErrMalformedVibe,
		},
		{
			name:    "json null",
			content: `null`,
			wantErr: ErrMalformedVibe,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVibe(tt.content)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseVibe() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVibe() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseVibe() = %+v, want %+v", got, tt.want)
			}
			if err := ValidateTags(got.Tags); err != nil {
				t.Errorf("ParseVibe() produced invalid tags: %v", err)
			}
		})
	}
}

func TestDefaultTags_ReturnsFreshSlice(t *testing.T) {
	a := DefaultTags()
	a[0] = "changed"
	if DefaultTags()[0] != "Seattle" {
		t.Error("DefaultTags() shares its backing array")
	}
}

func TestEmbeddingInput(t *testing.T) {
	got := EmbeddingInput("Thai Tom", Vibe{Summary: "Tiny and fiery.", Tags: []string{"Spicy", "Cash Only"}})
	want := "Thai Tom: Tiny and fiery. Spicy, Cash Only"
	if got != want {
		t.Errorf("EmbeddingInput() = %q, want %q", got, want)
	}
}
