// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// MaxTags is the upper bound on tags kept per place.
	MaxTags = 5

	// DefaultSummary replaces a missing or blank summary.
	DefaultSummary = "Popular local spot with a distinct neighborhood vibe."
)

// DefaultTags returns the tag set used when the provider yields no usable tags.
func DefaultTags() []string {
	return []string{"Seattle", "Neighborhood Gem", "Casual", "Food", "Local Favorite"}
}

// ParseVibe decodes a provider answer and repairs it into a valid Vibe.
// Only a response that is not a JSON object is an error; every other defect
// is fixed by NormalizeVibe.
func ParseVibe(content string) (Vibe, error) {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return Vibe{}, fmt.Errorf("%w: %w", ErrMalformedVibe, err)
	}
	if parsed == nil {
		return Vibe{}, fmt.Errorf("%w: null document", ErrMalformedVibe)
	}
	return NormalizeVibe(parsed["summary"], parsed["tags"]), nil
}

// NormalizeVibe applies the summary and tag rules:
//   - summary is trimmed; blank becomes DefaultSummary
//   - a scalar tags value is treated as a one-element list
//   - tags are trimmed, blanks dropped, the first MaxTags kept
//   - no remaining tags becomes DefaultTags
func NormalizeVibe(summary any, tags any) Vibe {
	vibe := Vibe{Summary: strings.TrimSpace(textOf(summary))}
	if vibe.Summary == "" {
		vibe.Summary = DefaultSummary
	}

	var raw []any
	switch t := tags.(type) {
	case nil:
	case []any:
		raw = t
	default:
		raw = []any{t}
	}

	for _, tag := range raw {
		text := strings.TrimSpace(textOf(tag))
		if text == "" {
			continue
		}
		vibe.Tags = append(vibe.Tags, text)
		if len(vibe.Tags) == MaxTags {
			break
		}
	}
	if len(vibe.Tags) == 0 {
		vibe.Tags = DefaultTags()
	}
	return vibe
}

// EmbeddingInput is the text whose embedding represents a place.
func EmbeddingInput(name string, vibe Vibe) string {
	return name + ": " + vibe.Summary + " " + strings.Join(vibe.Tags, ", ")
}
