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


// Package upload writes enriched places to the datastore.
//
// Each artifact element is projected onto the persisted column set by
// MapRecord, split into contiguous batches of BatchSize, and upserted one
// batch at a time. A failed batch is counted and skipped. A batch that
// fails with a schema error stops the run, since every later batch would
// fail the same way.
package upload
