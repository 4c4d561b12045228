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


package storage

import (
	"encoding/json"
	"fmt"

	"github.com/poiesic/chowdown/core"
)

// Cache values are stored as JSON documents.

// MarshalRawPlace serializes a RawPlace to bytes.
func MarshalRawPlace(place *core.RawPlace) ([]byte, error) {
	return marshal(place)
}

// UnmarshalRawPlace deserializes a RawPlace from bytes.
func UnmarshalRawPlace(data []byte) (*core.RawPlace, error) {
	var place core.RawPlace
	if err := unmarshal(data, &place); err != nil {
		return nil, err
	}
	return &place, nil
}

// MarshalEnrichment serializes an Enrichment to bytes.
func MarshalEnrichment(enrichment *Enrichment) ([]byte, error) {
	return marshal(enrichment)
}

// UnmarshalEnrichment deserializes an Enrichment from bytes.
func UnmarshalEnrichment(data []byte) (*Enrichment, error) {
	var enrichment Enrichment
	if err := unmarshal(data, &enrichment); err != nil {
		return nil, err
	}
	return &enrichment, nil
}

// MarshalCheckpoint serializes a Checkpoint to bytes.
func MarshalCheckpoint(checkpoint *core.Checkpoint) ([]byte, error) {
	return marshal(checkpoint)
}

// UnmarshalCheckpoint deserializes a Checkpoint from bytes.
func UnmarshalCheckpoint(data []byte) (*core.Checkpoint, error) {
	var checkpoint core.Checkpoint
	if err := unmarshal(data, &checkpoint); err != nil {
		return nil, err
	}
	return &checkpoint, nil
}

func marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

func unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return nil
}
