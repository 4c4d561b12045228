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


package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/chowdown/config"
	"github.com/poiesic/chowdown/core"
	"github.com/poiesic/chowdown/storage"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

const (
	configKey = "config"
	runIDKey  = "run_id"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(w io.Writer) *cli.App {
	return &cli.App{
		Name:   "chowdown",
		Usage:  "Harvest, enrich and publish neighborhood restaurants",
		Writer: w,
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "harvest",
				Usage:  "Collect restaurant details from the places API into the raw artifact",
				Action: harvestCommand,
			},
			{
				Name:   "refine",
				Usage:  "Generate vibe summaries, tags and embeddings for harvested places",
				Action: refineCommand,
			},
			{
				Name:   "upload",
				Usage:  "Upsert enriched places into the datastore",
				Action: uploadCommand,
			},
		},
	}
}

// setup loads the configuration and installs the default logger with a
// fresh run id.
func setup(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})).With(runIDKey, runID)
	slog.SetDefault(logger)

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[configKey] = cfg
	c.App.Metadata[runIDKey] = runID
	return nil
}

func configFrom(c *cli.Context) (*config.Config, error) {
	cfg, ok := c.App.Metadata[configKey].(*config.Config)
	if !ok {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return cfg, nil
}

func runIDFrom(c *cli.Context) string {
	id, _ := c.App.Metadata[runIDKey].(string)
	return id
}

// startServices builds an fx app that provides the stage dependencies,
// fills targets and starts it. The returned stop function closes every
// client the app opened.
func startServices(ctx context.Context, cfg *config.Config, modules []fx.Option, targets ...interface{}) (func(), error) {
	opts := append([]fx.Option{
		fx.Supply(cfg),
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.SlogLogger{Logger: slog.Default().With("component", "fx")}
			l.UseLogLevel(slog.LevelDebug)
			return l
		}),
		fx.Populate(targets...),
	}, modules...)

	app := fx.New(opts...)
	if err := app.Err(); err != nil {
		return nil, err
	}
	if err := app.Start(ctx); err != nil {
		return nil, err
	}

	stop := func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := app.Stop(stopCtx); err != nil {
			slog.Warn("failed to stop services", "err", err)
		}
	}
	return stop, nil
}

// saveCheckpoint records the outcome of a stage when checkpoints are enabled.
func saveCheckpoint(ctx context.Context, repo storage.CheckpointRepository, checkpoint *core.Checkpoint) {
	if repo == nil {
		return
	}
	if err := repo.SaveCheckpoint(ctx, checkpoint); err != nil {
		slog.Warn("failed to save checkpoint", "stage", checkpoint.Stage, "err", err)
	}
}

// reportPrevious prints the previous run of a stage when one is recorded.
func reportPrevious(ctx context.Context, w io.Writer, repo storage.CheckpointRepository, stage string) {
	if repo == nil {
		return
	}
	previous, err := repo.LoadCheckpoint(ctx, stage)
	if err != nil {
		slog.Warn("failed to load checkpoint", "stage", stage, "err", err)
		return
	}
	if previous == nil {
		return
	}
	fmt.Fprintf(w, "Previous %s run %s at %s: %d processed, %d failed\n",
		stage, previous.RunID, previous.UpdatedAt.Format(time.RFC3339), previous.Processed, previous.Failed)
}

// printFailures lists every skipped item by name.
func printFailures(w io.Writer, failures []core.Failure) {
	for _, f := range failures {
		fmt.Fprintf(w, "  skipped %s: %v\n", f.Label(), f.Err)
	}
}
