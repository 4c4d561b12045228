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


package ai

import "strings"

// CleanJSON prepares a model answer for decoding. It strips markdown code
// fences and repairs keys that lost their opening quote.
func CleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	return repairJSON(s)
}

// repairJSON attempts to fix common JSON formatting issues from LLM responses.
// It specifically handles missing opening quotes before keys in JSON objects.
func repairJSON(s string) string {
	// Pattern: after { or , followed by optional whitespace, then a word followed by ":
	// Example: `, tags":` -> `, "tags":`
	result := []rune(s)
	fixed := make([]rune, 0, len(result)+16)

	i := 0
	for i < len(result) {
		ch := result[i]

		if ch != '{' && ch != ',' {
			fixed = append(fixed, ch)
			i++
			continue
		}

		fixed = append(fixed, ch)
		i++

		for i < len(result) && (result[i] == ' ' || result[i] == '\n' || result[i] == '\t') {
			fixed = append(fixed, result[i])
			i++
		}

		if i >= len(result) || result[i] == '"' || !isLetter(result[i]) {
			continue
		}

		keyStart := i
		for i < len(result) && (isLetter(result[i]) || result[i] == '_') {
			i++
		}

		// A bare word followed by ": is a key that lost its opening quote.
		if i+1 < len(result) && result[i] == '"' && result[i+1] == ':' {
			fixed = append(fixed, '"')
		}
		fixed = append(fixed, result[keyStart:i]...)
	}

	return string(fixed)
}

// isLetter returns true if the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
