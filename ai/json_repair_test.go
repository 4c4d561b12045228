package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain object",
			in:   `{"summary": "Cozy.", "tags": ["Casual"]}`,
			want: `{"summary": "Cozy.", "tags": ["Casual"]}`,
		},
		{
			name: "json fence",
			in:   "```json\n{\"summary\": \"Cozy.\"}\n```",
			want: `{"summary": "Cozy."}`,
		},
		{
			name: "bare fence with padding",
			in:   "  ```\n{\"tags\": []}\n```  ",
			want: `{"tags": []}`,
		},
		{
			name: "missing opening quote on key",
			in:   `{"summary": "Cozy.", tags": ["Casual"]}`,
			want: `{"summary": "Cozy.", "tags": ["Casual"]}`,
		},
		{
			name: "missing opening quote on first key",
			in:   `{summary": "Cozy."}`,
			want: `{"summary": "Cozy."}`,
		},
		{
			name: "commas inside values untouched",
			in:   `{"summary": "Tacos, beer, and views"}`,
			want: `{"summary": "Tacos, beer, and views"}`,
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSON(tt.in))
		})
	}
}

func TestCheckDimensions(t *testing.T) {
	assert.NoError(t, CheckDimensions([]float32{1, 2, 3}, 3))
	assert.NoError(t, CheckDimensions([]float32{1, 2, 3}, 0))
	assert.ErrorIs(t, CheckDimensions([]float32{1, 2}, 3), ErrDimensionMismatch)
	assert.ErrorIs(t, CheckDimensions(nil, 3), ErrEmptyResponse)
}
