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

// Cache implements storage.DetailCache and storage.EnrichmentCache.
// Entries expire after the configured TTL; a zero TTL keeps them forever.
type Cache struct {
	backend *Backend
	ttl     time.Duration
}

var (
	_ storage.DetailCache     = (*Cache)(nil)
	_ storage.EnrichmentCache = (*Cache)(nil)
)

// NewCache creates a Cache on an open backend.
func NewCache(backend *Backend, ttl time.Duration) *Cache {
	return &Cache{backend: backend, ttl: ttl}
}

// OpenCache opens a backend at dir and wraps it in a Cache.
func OpenCache(dir string, ttl time.Duration) (*Cache, error) {
	backend, err := OpenBackend(dir, false)
	if err != nil {
		return nil, err
	}
	return NewCache(backend, ttl), nil
}

// Backend returns the underlying backend.
func (c *Cache) Backend() *Backend {
	return c.backend
}

// Close closes the underlying backend.
func (c *Cache) Close() error {
	return c.backend.Close()
}

// LoadDetail returns the cached detail record for placeID.
func (c *Cache) LoadDetail(ctx context.Context, placeID string) (*core.RawPlace, error) {
	data, err := c.backend.get(makeDetailKey(placeID))
	if err != nil || data == nil {
		return nil, err
	}
	return storage.UnmarshalRawPlace(data)
}

// SaveDetail caches a detail record under its PlaceID.
func (c *Cache) SaveDetail(ctx context.Context, place *core.RawPlace) error {
	if err := core.ValidateRawPlace(place); err != nil {
		return err
	}
	data, err := storage.MarshalRawPlace(place)
	if err != nil {
		return err
	}
	return c.backend.put(makeDetailKey(place.PlaceID), data, c.ttl)
}

// LoadEnrichment returns the cached enrichment for key.
func (c *Cache) LoadEnrichment(ctx context.Context, key string) (*storage.Enrichment, error) {
	data, err := c.backend.get(makeEnrichmentKey(key))
	if err != nil || data == nil {
		return nil, err
	}
	return storage.UnmarshalEnrichment(data)
}

// SaveEnrichment caches an enrichment under key.
func (c *Cache) SaveEnrichment(ctx context.Context, key string, enrichment *storage.Enrichment) error {
	data, err := storage.MarshalEnrichment(enrichment)
	if err != nil {
		return err
	}
	return c.backend.put(makeEnrichmentKey(key), data, c.ttl)
}
