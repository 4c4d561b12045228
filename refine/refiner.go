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


// Package refine turns raw place records into enriched ones.
//
// For every place the refiner builds a prompt from the name, editorial
// summary and first reviews, asks the completion model for a summary and
// tags, repairs the answer, and embeds the result. Completion and embedding
// calls run under a shared retry.Policy. A place whose calls still fail is
// skipped and reported; it never stops the run.
package refine

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/poiesic/chowdown/ai"
	"github.com/poiesic/chowdown/core"
	"github.com/poiesic/chowdown/progress"
	"github.com/poiesic/chowdown/retry"
	"github.com/poiesic/chowdown/storage"
)

// Result is the outcome of a refine run.
type Result struct {
	Places    []core.EnrichedPlace
	Failures  []core.Failure
	CacheHits int
}

// Refiner runs the refine stage.
type Refiner struct {
	completer ai.Completer
	embedder  ai.Embedder
	policy    retry.Policy
	cache     storage.EnrichmentCache
	cacheSalt string
	out       io.Writer
	logger    *slog.Logger
}

// Option configures a Refiner.
type Option func(*Refiner)

// WithPolicy replaces the retry policy used for provider calls.
func WithPolicy(policy retry.Policy) Option {
	return func(r *Refiner) {
		r.policy = policy
	}
}

// WithCache reuses enrichments stored in cache. salt must change whenever
// the models change, so that cached answers of other models are ignored.
func WithCache(cache storage.EnrichmentCache, salt string) Option {
	return func(r *Refiner) {
		r.cache = cache
		r.cacheSalt = salt
	}
}

// WithProgress writes progress reports to w.
func WithProgress(w io.Writer) Option {
	return func(r *Refiner) {
		r.out = w
	}
}

// WithLogger replaces the logger used to report skipped places.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Refiner) {
		r.logger = logger
	}
}

// New creates a Refiner.
func New(completer ai.Completer, embedder ai.Embedder, opts ...Option) *Refiner {
	r := &Refiner{
		completer: completer,
		embedder:  embedder,
		policy:    retry.DefaultPolicy(),
		out:       io.Discard,
		logger:    slog.Default().With("component", "refiner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run refines every place. Failed places are logged by name and listed in
// Result.Failures.
func (r *Refiner) Run(ctx context.Context, places []core.RawPlace) *Result {
	result := &Result{Places: make([]core.EnrichedPlace, 0, len(places))}

	tracker := progress.NewTracker(r.out, "Refining places", "places", len(places), 1)
	tracker.Start()
	for i := range places {
		place := &places[i]
		enriched, hit, err := r.refine(ctx, place)
		if err != nil {
			failure := core.Failure{PlaceID: place.PlaceID, Name: place.Name, Err: err}
			r.logger.Warn("skipping place", "name", failure.Label(), "err", err)
			result.Failures = append(result.Failures, failure)
		} else {
			if hit {
				result.CacheHits++
			}
			result.Places = append(result.Places, *enriched)
		}
		tracker.Increment(1)
	}
	tracker.Finish()

	return result
}

// Refine enriches a single place.
func (r *Refiner) Refine(ctx context.Context, place *core.RawPlace) (*core.EnrichedPlace, error) {
	enriched, _, err := r.refine(ctx, place)
	return enriched, err
}

func (r *Refiner) refine(ctx context.Context, place *core.RawPlace) (*core.EnrichedPlace, bool, error) {
	name := strings.TrimSpace(place.Name)
	prompt := UserPrompt(name, place.EditorialText(), core.NumberedList(place.ReviewTexts(reviewLimit)))

	var key string
	if r.cache != nil {
		key = CacheKey(r.cacheSalt, SystemPrompt, prompt)
		if enrichment := r.cached(ctx, key); enrichment != nil {
			enriched := assemble(place, name, enrichment.Vibe, enrichment.Embedding)
			if core.ValidateEnrichedPlace(enriched) == nil {
				return enriched, true, nil
			}
		}
	}

	vibe, err := retry.Value(ctx, r.policy, func(ctx context.Context) (core.Vibe, error) {
		content, err := r.completer.Complete(ctx, SystemPrompt, prompt)
		if err != nil {
			return core.Vibe{}, err
		}
		return core.ParseVibe(content)
	})
	if err != nil {
		return nil, false, err
	}

	embedding, err := retry.Value(ctx, r.policy, func(ctx context.Context) ([]float32, error) {
		return r.embedder.EmbedText(ctx, core.EmbeddingInput(name, vibe))
	})
	if err != nil {
		return nil, false, err
	}

	enriched := assemble(place, name, vibe, embedding)
	if err := core.ValidateEnrichedPlace(enriched); err != nil {
		return nil, false, err
	}

	if r.cache != nil {
		if err := r.cache.SaveEnrichment(ctx, key, &storage.Enrichment{Vibe: vibe, Embedding: embedding}); err != nil {
			r.logger.Warn("failed to cache enrichment", "place_id", place.PlaceID, "err", err)
		}
	}
	return enriched, false, nil
}

func (r *Refiner) cached(ctx context.Context, key string) *storage.Enrichment {
	enrichment, err := r.cache.LoadEnrichment(ctx, key)
	if err != nil {
		r.logger.Warn("failed to read enrichment cache", "err", err)
		return nil
	}
	return enrichment
}

func assemble(place *core.RawPlace, name string, vibe core.Vibe, embedding []float32) *core.EnrichedPlace {
	return &core.EnrichedPlace{
		ID:             place.PlaceID,
		Name:           name,
		Address:        strings.TrimSpace(place.FormattedAddress),
		PriceLevel:     place.PriceLevel,
		Rating:         place.Rating,
		ReviewsSummary: vibe.Summary,
		Tags:           vibe.Tags,
		Embedding:      embedding,
	}
}
