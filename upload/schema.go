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
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrSchemaMismatch reports that the datastore rejected a batch because
// the table does not match the records.
var ErrSchemaMismatch = errors.New("datastore schema mismatch")

// schemaMarkers are substrings of datastore errors that indicate a
// structural mismatch rather than a bad batch.
var schemaMarkers = []string{"could not find", "column", "schema", "does not exist"}

// schemaStates are the SQLSTATE codes for an undefined column, table or
// schema.
var schemaStates = []string{"42703", "42P01", "3F000"}

// IsSchemaError reports whether err looks like a schema mismatch. Matching
// is a best-effort heuristic on the error text, widened by the SQLSTATE
// when the driver exposes one.
func IsSchemaError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrSchemaMismatch) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		for _, state := range schemaStates {
			if pgErr.Code == state {
				return true
			}
		}
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range schemaMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
