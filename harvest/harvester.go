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


package harvest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/chowdown/core"
	"github.com/poiesic/chowdown/places"
	"github.com/poiesic/chowdown/progress"
	"github.com/poiesic/chowdown/retry"
	"github.com/poiesic/chowdown/storage"
)

// Result is the outcome of a harvest run.
type Result struct {
	// Places holds resolved detail records in resolution order.
	Places []core.RawPlace

	// RawResults counts search results across all anchors and pages,
	// duplicates included.
	RawResults int

	// Candidates counts unique place ids.
	Candidates int

	// Empty lists places whose detail request returned no result.
	Empty []core.PlaceSummary

	// Failures lists places whose detail request failed.
	Failures []core.Failure

	// CacheHits counts details served from the cache.
	CacheHits int
}

// Harvester runs the harvest stage against a places.Searcher.
type Harvester struct {
	searcher places.Searcher
	config   Config
	cache    storage.DetailCache
	sleep    func(ctx context.Context, d time.Duration) error
	out      io.Writer
	logger   *slog.Logger
}

// Option configures a Harvester.
type Option func(*Harvester)

// WithCache serves detail records from cache and stores fetched ones.
func WithCache(cache storage.DetailCache) Option {
	return func(h *Harvester) {
		h.cache = cache
	}
}

// WithSleep replaces the cooldown wait.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(h *Harvester) {
		h.sleep = sleep
	}
}

// WithProgress writes progress reports to w.
func WithProgress(w io.Writer) Option {
	return func(h *Harvester) {
		h.out = w
	}
}

// New creates a Harvester.
func New(searcher places.Searcher, config Config, opts ...Option) *Harvester {
	h := &Harvester{
		searcher: searcher,
		config:   config,
		sleep:    retry.Sleep,
		out:      io.Discard,
		logger:   slog.Default().With("component", "harvester"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run searches every anchor, deduplicates the results and fetches details.
func (h *Harvester) Run(ctx context.Context) (*Result, error) {
	result := &Result{}

	candidates, err := h.collect(ctx, result)
	if err != nil {
		return nil, err
	}
	result.Candidates = len(candidates)
	h.logger.Info("collected candidates",
		"anchors", len(h.config.Anchors),
		"raw_results", result.RawResults,
		"unique", result.Candidates)

	tracker := progress.NewTracker(h.out, "Enriching places", "places", len(candidates), 1)
	tracker.Start()
	for _, candidate := range candidates {
		h.resolve(ctx, candidate, result)
		tracker.Increment(1)
	}
	tracker.Finish()

	return result, nil
}

// collect returns the unique candidates in first-seen order.
func (h *Harvester) collect(ctx context.Context, result *Result) ([]core.PlaceSummary, error) {
	seen := make(map[string]struct{})
	var candidates []core.PlaceSummary

	for _, anchor := range h.config.Anchors {
		err := h.searchAnchor(ctx, anchor, func(summary core.PlaceSummary) {
			result.RawResults++
			if summary.PlaceID == "" {
				return
			}
			if _, dup := seen[summary.PlaceID]; dup {
				return
			}
			seen[summary.PlaceID] = struct{}{}
			candidates = append(candidates, summary)
		})
		if err != nil {
			return nil, fmt.Errorf("nearby search at %.4f,%.4f: %w", anchor.Lat, anchor.Lng, err)
		}
	}
	return candidates, nil
}

// searchAnchor follows continuation tokens until the provider stops
// returning them, waiting the cooldown before each continuation request.
func (h *Harvester) searchAnchor(ctx context.Context, anchor core.Anchor, visit func(core.PlaceSummary)) error {
	req := places.NearbyRequest{
		Location: anchor,
		Radius:   h.config.Radius,
		Category: h.config.Category,
	}

	for pageNum := 1; ; pageNum++ {
		page, err := h.searcher.SearchNearby(ctx, req)
		if err != nil {
			return err
		}
		for _, summary := range page.Results {
			visit(summary)
		}
		h.logger.Debug("fetched page", "anchor", anchor, "page", pageNum, "results", len(page.Results))

		if page.NextPageToken == "" {
			return nil
		}
		if err := h.sleep(ctx, h.config.Cooldown); err != nil {
			return err
		}
		req.PageToken = page.NextPageToken
	}
}

// resolve fetches one detail record and files the outcome in result.
func (h *Harvester) resolve(ctx context.Context, candidate core.PlaceSummary, result *Result) {
	if place := h.cached(ctx, candidate.PlaceID); place != nil {
		result.CacheHits++
		result.Places = append(result.Places, *place)
		return
	}

	place, err := h.searcher.FetchDetail(ctx, candidate.PlaceID, h.config.Fields)
	if err != nil {
		h.logger.Warn("detail fetch failed", "place_id", candidate.PlaceID, "name", candidate.Name, "err", err)
		result.Failures = append(result.Failures, core.Failure{PlaceID: candidate.PlaceID, Name: candidate.Name, Err: err})
		return
	}
	if place == nil {
		h.logger.Warn("detail fetch returned no result", "place_id", candidate.PlaceID, "name", candidate.Name)
		result.Empty = append(result.Empty, candidate)
		return
	}
	if place.PlaceID == "" {
		place.PlaceID = candidate.PlaceID
	}

	result.Places = append(result.Places, *place)
	if h.cache != nil {
		if err := h.cache.SaveDetail(ctx, place); err != nil {
			h.logger.Warn("failed to cache detail", "place_id", place.PlaceID, "err", err)
		}
	}
}

func (h *Harvester) cached(ctx context.Context, placeID string) *core.RawPlace {
	if h.cache == nil {
		return nil
	}
	place, err := h.cache.LoadDetail(ctx, placeID)
	if err != nil {
		h.logger.Warn("failed to read detail cache", "place_id", placeID, "err", err)
		return nil
	}
	return place
}
