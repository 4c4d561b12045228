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


package cachefx

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/chowdown/config"
	"github.com/poiesic/chowdown/storage"
	"github.com/poiesic/chowdown/storage/badger"
	"go.uber.org/fx"
)

var Module = fx.Provide(ProvideCaches)

// Caches holds the response caches and checkpoint store. All fields are
// nil when CACHE_DIR is unset.
type Caches struct {
	Details     storage.DetailCache
	Enrichments storage.EnrichmentCache
	Checkpoints storage.CheckpointRepository
}

// Enabled reports whether a cache backend is open.
func (c *Caches) Enabled() bool {
	return c != nil && c.Checkpoints != nil
}

// ProvideCaches opens the badger cache in CACHE_DIR and closes it when the
// app stops.
func ProvideCaches(lc fx.Lifecycle, cfg *config.Config) (*Caches, error) {
	if !cfg.CacheEnabled() {
		return &Caches{}, nil
	}

	cache, err := badger.OpenCache(cfg.CacheDir, cfg.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	slog.Debug("opened response cache", "dir", cfg.CacheDir, "ttl", cfg.CacheTTL)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return cache.Close()
		},
	})
	return &Caches{
		Details:     cache,
		Enrichments: cache,
		Checkpoints: badger.NewCheckpointRepository(cache.Backend()),
	}, nil
}
