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
	"strconv"
	"strings"
)

// EditorialText normalizes the editorial summary to plain text.
// The provider sends either a string or an object with an "overview" field;
// anything else yields an empty string.
func (p *RawPlace) EditorialText() string {
	if len(p.EditorialSummary) == 0 {
		return ""
	}

	var value any
	if err := json.Unmarshal(p.EditorialSummary, &value); err != nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		return strings.TrimSpace(textOf(v["overview"]))
	default:
		return ""
	}
}

// ReviewTexts returns up to limit non-empty review texts in provider order.
// A missing or non-list reviews field is treated as no reviews, and entries
// that are not objects are skipped.
func (p *RawPlace) ReviewTexts(limit int) []string {
	if len(p.Reviews) == 0 || limit <= 0 {
		return nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(p.Reviews, &entries); err != nil {
		return nil
	}

	texts := make([]string, 0, limit)
	for _, entry := range entries {
		var review map[string]any
		if err := json.Unmarshal(entry, &review); err != nil || review == nil {
			continue
		}
		text := strings.TrimSpace(textOf(review["text"]))
		if text == "" {
			continue
		}
		texts = append(texts, text)
		if len(texts) >= limit {
			break
		}
	}
	return texts
}

// NumberedList renders texts as "1. a\n2. b".
func NumberedList(texts []string) string {
	var b strings.Builder
	for i, text := range texts {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, text)
	}
	return b.String()
}

// textOf converts scalar JSON values to text. Objects, arrays and null
// are not text.
func textOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
