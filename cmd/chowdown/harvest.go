package main

import (
	"context"
	"fmt"
	"io"

	"github.com/poiesic/chowdown/cmd/fx/cachefx"
	"github.com/poiesic/chowdown/cmd/fx/placesfx"
	"github.com/poiesic/chowdown/config"
	"github.com/poiesic/chowdown/core"
	"github.com/poiesic/chowdown/harvest"
	"github.com/poiesic/chowdown/places"
	"github.com/poiesic/chowdown/storage"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
)

const harvestStage = "harvest"

func harvestCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := configFrom(c)
	if err != nil {
		return err
	}
	if err := cfg.RequireHarvest(); err != nil {
		return err
	}

	var (
		searcher places.Searcher
		caches   *cachefx.Caches
	)
	stop, err := startServices(ctx, cfg, []fx.Option{placesfx.Module, cachefx.Module}, &searcher, &caches)
	if err != nil {
		return err
	}
	defer stop()

	return runHarvest(ctx, c.App.Writer, cfg, runIDFrom(c), searcher, caches, harvest.DefaultConfig())
}

func runHarvest(ctx context.Context, w io.Writer, cfg *config.Config, runID string, searcher places.Searcher, caches *cachefx.Caches, hc harvest.Config) error {
	opts := []harvest.Option{harvest.WithProgress(w)}
	if caches.Enabled() {
		reportPrevious(ctx, w, caches.Checkpoints, harvestStage)
		opts = append(opts, harvest.WithCache(caches.Details))
	}

	fmt.Fprintf(w, "Harvesting %s places around %d anchors (radius %dm)\n", hc.Category, len(hc.Anchors), hc.Radius)

	h := harvest.New(searcher, hc, opts...)
	result, err := h.Run(ctx)
	if err != nil {
		return fmt.Errorf("harvest failed: %w", err)
	}

	if err := storage.WriteJSONArray(cfg.RawPath(), result.Places); err != nil {
		return err
	}

	fmt.Fprintf(w, "Found %d results, %d unique places\n", result.RawResults, result.Candidates)
	fmt.Fprintf(w, "Saved %d places to %s\n", len(result.Places), cfg.RawPath())
	if result.CacheHits > 0 {
		fmt.Fprintf(w, "Reused %d cached details\n", result.CacheHits)
	}
	for _, p := range result.Empty {
		fmt.Fprintf(w, "  no details for %s (%s)\n", p.Name, p.PlaceID)
	}
	printFailures(w, result.Failures)

	saveCheckpoint(ctx, caches.Checkpoints, &core.Checkpoint{
		Stage:     harvestStage,
		RunID:     runID,
		Processed: len(result.Places),
		Failed:    len(result.Failures) + len(result.Empty),
	})
	return nil
}
