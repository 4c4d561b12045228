package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/poiesic/chowdown/ai"
	"github.com/poiesic/chowdown/cmd/fx/aifx"
	"github.com/poiesic/chowdown/cmd/fx/cachefx"
	"github.com/poiesic/chowdown/config"
	"github.com/poiesic/chowdown/core"
	"github.com/poiesic/chowdown/refine"
	"github.com/poiesic/chowdown/storage"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
)

const refineStage = "refine"

func refineCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := configFrom(c)
	if err != nil {
		return err
	}
	if err := cfg.RequireRefine(); err != nil {
		return err
	}

	items, err := storage.ReadJSONArray(cfg.RawPath())
	if err != nil {
		return err
	}

	var (
		completer ai.Completer
		embedder  ai.Embedder
		caches    *cachefx.Caches
	)
	stop, err := startServices(ctx, cfg, []fx.Option{aifx.Module, cachefx.Module}, &completer, &embedder, &caches)
	if err != nil {
		return err
	}
	defer stop()

	return runRefine(ctx, c.App.Writer, cfg, runIDFrom(c), items, completer, embedder, caches, refine.WithProgress(c.App.Writer))
}

func runRefine(ctx context.Context, w io.Writer, cfg *config.Config, runID string, items []json.RawMessage, completer ai.Completer, embedder ai.Embedder, caches *cachefx.Caches, opts ...refine.Option) error {
	places, failures := refine.DecodeRawPlaces(items)
	for _, f := range failures {
		slog.Warn("skipping malformed place", "name", f.Label(), "err", f.Err)
	}

	if caches.Enabled() {
		reportPrevious(ctx, w, caches.Checkpoints, refineStage)
		opts = append(opts, refine.WithCache(caches.Enrichments, cfg.CacheSalt()))
	}

	fmt.Fprintf(w, "Refining %d places from %s\n", len(places), cfg.RawPath())

	r := refine.New(completer, embedder, opts...)
	result := r.Run(ctx, places)
	failures = append(failures, result.Failures...)

	if err := storage.WriteJSONArray(cfg.EnrichedPath(), result.Places); err != nil {
		return err
	}

	fmt.Fprintf(w, "Saved %d enriched places to %s\n", len(result.Places), cfg.EnrichedPath())
	if result.CacheHits > 0 {
		fmt.Fprintf(w, "Reused %d cached enrichments\n", result.CacheHits)
	}
	if len(failures) > 0 {
		fmt.Fprintf(w, "Skipped %d places\n", len(failures))
		printFailures(w, failures)
	}

	saveCheckpoint(ctx, caches.Checkpoints, &core.Checkpoint{
		Stage:     refineStage,
		RunID:     runID,
		Processed: len(result.Places),
		Failed:    len(failures),
	})
	return nil
}
