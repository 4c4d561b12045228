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
	"fmt"
	"strings"
)

// ValidateRawPlace validates a RawPlace according to domain rules.
//
// Validation rules:
//   - PlaceID must not be empty
//
// Everything else may be absent or malformed and is handled by the readers.
func ValidateRawPlace(place *RawPlace) error {
	if place == nil {
		return fmt.Errorf("%w: place is nil", ErrInvalidRawPlace)
	}

	if strings.TrimSpace(place.PlaceID) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRawPlace, ErrMissingPlaceID)
	}

	return nil
}

// ValidateEnrichedPlace validates an EnrichedPlace before it is accepted
// into the enriched artifact.
//
// Validation rules:
//   - ReviewsSummary must not be blank
//   - Tags must hold between 1 and MaxTags non-blank values
//   - Embedding must not be empty
func ValidateEnrichedPlace(place *EnrichedPlace) error {
	if place == nil {
		return fmt.Errorf("%w: place is nil", ErrInvalidEnrichedPlace)
	}

	if strings.TrimSpace(place.ReviewsSummary) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEnrichedPlace, ErrEmptySummary)
	}

	if err := ValidateTags(place.Tags); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEnrichedPlace, err)
	}

	if len(place.Embedding) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidEnrichedPlace, ErrEmptyEmbedding)
	}

	return nil
}

// ValidateTags checks the tag list length and that no tag is blank.
func ValidateTags(tags []string) error {
	if len(tags) == 0 || len(tags) > MaxTags {
		return fmt.Errorf("%w: got %d", ErrInvalidTags, len(tags))
	}
	for i, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("%w: tag %d is blank", ErrInvalidTags, i)
		}
	}
	return nil
}
