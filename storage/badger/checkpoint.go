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


package badger

import (
	"context"
	"time"

	"github.com/poiesic/chowdown/core"
	"github.com/poiesic/chowdown/storage"
)

// CheckpointRepository implements storage.CheckpointRepository for BadgerDB.
// Checkpoints never expire.
type CheckpointRepository struct {
	backend *Backend
}

var _ storage.CheckpointRepository = (*CheckpointRepository)(nil)

// NewCheckpointRepository creates a new CheckpointRepository.
func NewCheckpointRepository(backend *Backend) *CheckpointRepository {
	return &CheckpointRepository{
		backend: backend,
	}
}

// SaveCheckpoint persists a checkpoint for a stage.
func (r *CheckpointRepository) SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error {
	checkpoint.UpdatedAt = time.Now().UTC()
	value, err := storage.MarshalCheckpoint(checkpoint)
	if err != nil {
		return err
	}
	return r.backend.put(makeCheckpointKey(checkpoint.Stage), value, 0)
}

// LoadCheckpoint retrieves the checkpoint for a stage.
// Returns nil, nil if no checkpoint exists.
func (r *CheckpointRepository) LoadCheckpoint(ctx context.Context, stage string) (*core.Checkpoint, error) {
	value, err := r.backend.get(makeCheckpointKey(stage))
	if err != nil || value == nil {
		return nil, err
	}
	return storage.UnmarshalCheckpoint(value)
}
