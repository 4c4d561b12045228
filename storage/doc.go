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


// Package storage provides the persistence surface for the pipeline.
//
// Three kinds of storage are involved:
//
//   - Artifacts: the JSON-array files handed from one stage to the next
//     (raw_places.json, enriched_places.json). See ReadJSONArray and
//     WriteJSONArray.
//   - Caches: optional response caches that let a re-run skip provider
//     calls already paid for. See DetailCache, EnrichmentCache and the
//     badger implementation.
//   - The datastore: the destination of the upload stage. See RecordStore
//     and the postgres implementation.
//
// # Constructor Return Type Pattern
//
// Backend constructors return interfaces where consumers only need the
// abstraction:
//
//	cache, err := badger.OpenCache(dir, ttl)  // concrete *badger.Cache
//	var details storage.DetailCache = cache
//
// # Artifacts
//
// Artifacts are written whole. WriteJSONArray writes to a temporary file in
// the destination directory and renames it over the target, so a reader
// never observes a partially written artifact.
package storage
