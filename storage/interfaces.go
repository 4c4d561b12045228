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
	"context"

	"github.com/poiesic/chowdown/core"
)

// Enrichment is a cached refine result for one prompt.
type Enrichment struct {
	Vibe      core.Vibe `json:"vibe"`
	Embedding []float32 `json:"embedding"`
}

// DetailCache stores place detail records by place id.
type DetailCache interface {
	// LoadDetail returns the cached record or nil, nil on a miss.
	LoadDetail(ctx context.Context, placeID string) (*core.RawPlace, error)

	// SaveDetail stores a record under its PlaceID.
	SaveDetail(ctx context.Context, place *core.RawPlace) error
}

// EnrichmentCache stores refine results under a caller-computed key.
type EnrichmentCache interface {
	// LoadEnrichment returns the cached result or nil, nil on a miss.
	LoadEnrichment(ctx context.Context, key string) (*Enrichment, error)

	// SaveEnrichment stores a result under key.
	SaveEnrichment(ctx context.Context, key string, enrichment *Enrichment) error
}

// CheckpointRepository records the outcome of the last run of each stage.
type CheckpointRepository interface {
	// SaveCheckpoint persists a checkpoint for checkpoint.Stage.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint returns the last checkpoint of stage or nil, nil.
	LoadCheckpoint(ctx context.Context, stage string) (*core.Checkpoint, error)
}

// RecordStore is the datastore the upload stage writes to.
type RecordStore interface {
	// Upsert inserts records or updates the rows they conflict with.
	// The batch succeeds or fails as a whole.
	Upsert(ctx context.Context, records []core.DbRecord) error

	// Close releases the connection pool.
	Close() error
}
