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


package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/poiesic/chowdown/core"
	"github.com/poiesic/chowdown/storage"
)

// BatchFailure describes a batch the datastore rejected.
type BatchFailure struct {
	// Batch is the 1-based batch number.
	Batch   int
	Records int
	Err     error
}

// Outcome summarizes an upload run.
type Outcome struct {
	Uploaded       int
	Batches        int
	FailedBatches  int
	SchemaMismatch bool
	Failures       []BatchFailure
}

// Err returns a non-nil error when the run stopped on a schema mismatch.
func (o *Outcome) Err() error {
	if !o.SchemaMismatch || len(o.Failures) == 0 {
		return nil
	}
	last := o.Failures[len(o.Failures)-1]
	return fmt.Errorf("%w: batch %d: %w", ErrSchemaMismatch, last.Batch, last.Err)
}

// Uploader runs the upload stage against a RecordStore.
type Uploader struct {
	store     storage.RecordStore
	batchSize int
	out       io.Writer
	logger    *slog.Logger
}

// Option configures an Uploader.
type Option func(*Uploader)

// WithBatchSize overrides BatchSize.
func WithBatchSize(size int) Option {
	return func(u *Uploader) {
		u.batchSize = size
	}
}

// WithOutput writes per-batch progress lines to w.
func WithOutput(w io.Writer) Option {
	return func(u *Uploader) {
		u.out = w
	}
}

// New creates an Uploader.
func New(store storage.RecordStore, opts ...Option) *Uploader {
	u := &Uploader{
		store:     store,
		batchSize: BatchSize,
		out:       io.Discard,
		logger:    slog.Default().With("component", "uploader"),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Run upserts records in order, one batch at a time. Zero records is a
// successful no-op.
func (u *Uploader) Run(ctx context.Context, records []core.DbRecord) *Outcome {
	outcome := &Outcome{}
	if len(records) == 0 {
		fmt.Fprintln(u.out, "No places to upload.")
		return outcome
	}

	batches := Chunk(records, u.batchSize)
	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			outcome.FailedBatches++
			outcome.Failures = append(outcome.Failures, BatchFailure{Batch: i + 1, Records: len(batch), Err: err})
			break
		}

		fmt.Fprintf(u.out, "Uploading batch %d/%d (%d records)...\n", i+1, len(batches), len(batch))
		outcome.Batches++

		err := u.store.Upsert(ctx, batch)
		if err == nil {
			outcome.Uploaded += len(batch)
			fmt.Fprintf(u.out, "Batch %d uploaded\n", i+1)
			continue
		}
		fmt.Fprintf(u.out, "Batch %d failed: %v\n", i+1, err)

		outcome.FailedBatches++
		outcome.Failures = append(outcome.Failures, BatchFailure{Batch: i + 1, Records: len(batch), Err: err})

		if IsSchemaError(err) {
			outcome.SchemaMismatch = true
			fmt.Fprintln(u.out, "Stopping upload due to schema mismatch.")
			u.logger.Error("schema mismatch, stopping upload",
				"batch", i+1, "remaining_batches", len(batches)-i-1, "err", err)
			break
		}
		u.logger.Warn("batch upload failed", "batch", i+1, "records", len(batch), "err", err)
	}
	return outcome
}
