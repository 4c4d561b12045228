package refine

import (
	"encoding/hex"
	"fmt"

	"github.com/go-crypt/x/blake2b"
)

// SystemPrompt casts the model as a local food critic and fixes the answer shape.
const SystemPrompt = "You are a local Seattle food critic. Analyze the reviews and summary. " +
	"Output a strict JSON object with two fields: " +
	"1. summary: A 1-sentence 'vibe check' description " +
	"(e.g. 'A chaotic but authentic late-night spot...'). " +
	"2. tags: A list of 5 short, punchy tags " +
	"(e.g. ['Study Friendly', 'Spicy', 'Date Night'])."

const (
	unknownPlace = "Unknown Place"
	notAvailable = "N/A"

	// reviewLimit is the number of review texts quoted in a prompt.
	reviewLimit = 3
)

// UserPrompt renders the per-place prompt. Blank inputs are replaced with
// explicit markers so the prompt shape never changes.
func UserPrompt(name, editorial, reviews string) string {
	if name == "" {
		name = unknownPlace
	}
	if editorial == "" {
		editorial = notAvailable
	}
	if reviews == "" {
		reviews = notAvailable
	}
	return fmt.Sprintf("Name: %s\nEditorial Summary: %s\nTop Reviews:\n%s\n\nReturn only strict JSON with keys: summary, tags.",
		name, editorial, reviews)
}

// CacheKey identifies an enrichment by everything that shapes it: the
// model identity in salt and both prompts.
func CacheKey(salt, systemPrompt, userPrompt string) string {
	h, _ := blake2b.New(16, nil)
	for _, part := range []string{salt, systemPrompt, userPrompt} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
