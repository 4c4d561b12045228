package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/poiesic/chowdown/cmd/fx/dbfx"
	"github.com/poiesic/chowdown/config"
	"github.com/poiesic/chowdown/storage"
	"github.com/poiesic/chowdown/upload"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
)

func uploadCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := configFrom(c)
	if err != nil {
		return err
	}
	if err := cfg.RequireUpload(); err != nil {
		return err
	}

	items, err := storage.ReadJSONArray(cfg.EnrichedPath())
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(c.App.Writer, "No places to upload.")
		return nil
	}

	var store storage.RecordStore
	stop, err := startServices(ctx, cfg, []fx.Option{dbfx.Module}, &store)
	if err != nil {
		return err
	}
	defer stop()

	return runUpload(ctx, c.App.Writer, cfg, items, store)
}

func runUpload(ctx context.Context, w io.Writer, cfg *config.Config, items []json.RawMessage, store storage.RecordStore) error {
	records, skipped := upload.MapRecords(items)
	if skipped > 0 {
		slog.Warn("skipped artifact elements that are not objects", "count", skipped)
	}

	u := upload.New(store, upload.WithOutput(w))
	outcome := u.Run(ctx, records)

	if outcome.Uploaded > 0 {
		fmt.Fprintf(w, "Successfully uploaded %d places to %s.\n", outcome.Uploaded, cfg.DatastoreTable)
	}
	if outcome.FailedBatches > 0 {
		fmt.Fprintf(w, "Completed with %d failed batch(es).\n", outcome.FailedBatches)
	}
	return outcome.Err()
}
