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


package upload

import (
	"encoding/json"

	"github.com/poiesic/chowdown/core"
)

// fieldColumns maps enriched-artifact fields onto datastore columns.
// Fields missing from it are never written.
var fieldColumns = []struct{ field, column string }{
	{"name", "name"},
	{"address", "address"},
	{"price_level", "price_level"},
	{"rating", "rating"},
	{"reviews_summary", "review_summary"},
	{"tags", "vibe_tags"},
	{"embedding", "embedding"},
}

// AllowedColumns returns the persisted column set in mapping order.
func AllowedColumns() []string {
	columns := make([]string, len(fieldColumns))
	for i, fc := range fieldColumns {
		columns[i] = fc.column
	}
	return columns
}

// MapRecord projects one enriched item onto the persisted columns. Every
// allowed column is present in the result; fields the item lacks map to
// nil. It never fails and never touches the datastore.
func MapRecord(item map[string]any) core.DbRecord {
	record := make(core.DbRecord, len(fieldColumns))
	for _, fc := range fieldColumns {
		record[fc.column] = item[fc.field]
	}
	return record
}

// MapRecords decodes artifact elements and maps each one. Elements that
// are not JSON objects are skipped and counted.
func MapRecords(items []json.RawMessage) ([]core.DbRecord, int) {
	records := make([]core.DbRecord, 0, len(items))
	skipped := 0
	for _, raw := range items {
		var item map[string]any
		if err := json.Unmarshal(raw, &item); err != nil || item == nil {
			skipped++
			continue
		}
		records = append(records, MapRecord(item))
	}
	return records, skipped
}
