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


package postgres

import (
	"fmt"
	"math"
	"sort"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/poiesic/chowdown/core"
)

// toRows converts records to the driver's value types and returns the
// sorted union of their columns.
func toRows(records []core.DbRecord) ([]map[string]interface{}, []string) {
	seen := map[string]bool{}
	rows := make([]map[string]interface{}, len(records))
	for i, record := range records {
		row := make(map[string]interface{}, len(record))
		for column, value := range record {
			row[column] = convertValue(column, value)
			seen[column] = true
		}
		rows[i] = row
	}

	columns := make([]string, 0, len(seen))
	for column := range seen {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	return rows, columns
}

// convertValue maps list values decoded from JSON onto postgres array and
// vector types. Values of unexpected shape pass through unchanged and are
// left for the database to reject.
func convertValue(column string, value any) any {
	switch column {
	case "vibe_tags":
		if tags, ok := toStrings(value); ok {
			return pq.StringArray(tags)
		}
	case "embedding":
		if vec, ok := toFloats(value); ok {
			return pgvector.NewVector(vec)
		}
	case "price_level":
		if f, ok := value.(float64); ok && f == math.Trunc(f) {
			return int64(f)
		}
	}
	return value
}

func toStrings(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				s = fmt.Sprint(item)
			}
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

func toFloats(value any) ([]float32, bool) {
	switch v := value.(type) {
	case []float32:
		return v, true
	case []float64:
		out := make([]float32, len(v))
		for i, f := range v {
			out[i] = float32(f)
		}
		return out, true
	case []any:
		out := make([]float32, len(v))
		for i, item := range v {
			f, ok := item.(float64)
			if !ok {
				return nil, false
			}
			out[i] = float32(f)
		}
		return out, true
	}
	return nil, false
}
