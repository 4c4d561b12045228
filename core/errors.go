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

import "errors"

// Domain validation errors
var (
	// ErrInvalidRawPlace indicates a RawPlace failed validation.
	ErrInvalidRawPlace = errors.New("invalid raw place")

	// ErrInvalidEnrichedPlace indicates an EnrichedPlace failed validation.
	ErrInvalidEnrichedPlace = errors.New("invalid enriched place")

	// ErrMissingPlaceID indicates the place_id field is empty.
	ErrMissingPlaceID = errors.New("place_id cannot be empty")

	// ErrEmptySummary indicates the reviews_summary field is empty.
	ErrEmptySummary = errors.New("reviews summary cannot be empty")

	// ErrInvalidTags indicates the tag list is empty, too long or holds blank tags.
	ErrInvalidTags = errors.New("tags must hold 1 to 5 non-empty values")

	// ErrEmptyEmbedding indicates the embedding vector is missing.
	ErrEmptyEmbedding = errors.New("embedding cannot be empty")

	// ErrMalformedVibe indicates the provider answer is not a JSON object.
	ErrMalformedVibe = errors.New("malformed vibe response")
)
