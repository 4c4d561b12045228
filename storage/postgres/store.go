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


// Package postgres implements storage.RecordStore on PostgreSQL with gorm.
// Tag lists are written as text[] and embeddings as pgvector vectors.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/poiesic/chowdown/core"
	"github.com/poiesic/chowdown/storage"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Config describes the datastore connection and target table.
type Config struct {
	// URL is a postgres:// connection URL.
	URL string

	// ServiceKey is the privileged role password. It replaces any password
	// present in URL.
	ServiceKey string

	// Table receives the records.
	Table string

	// ConflictColumns identify a row for upserts. They must carry a unique
	// constraint in the table.
	ConflictColumns []string

	// EmbeddingDimensions sizes the vector column created by EnsureTable.
	EmbeddingDimensions int
}

// Store is a gorm-backed storage.RecordStore.
type Store struct {
	db       *gorm.DB
	table    string
	conflict []string
	dims     int
	logger   *slog.Logger
}

var _ storage.RecordStore = (*Store)(nil)

// DSN builds the connection string from cfg.
func DSN(cfg Config) (string, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return "", fmt.Errorf("invalid datastore url: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", fmt.Errorf("invalid datastore url: unsupported scheme %q", u.Scheme)
	}
	if cfg.ServiceKey != "" {
		user := "postgres"
		if u.User != nil && u.User.Username() != "" {
			user = u.User.Username()
		}
		u.User = url.UserPassword(user, cfg.ServiceKey)
	}
	return u.String(), nil
}

// Open connects to the datastore described by cfg.
func Open(cfg Config) (*Store, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: newGormLogger()})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to datastore: %w", err)
	}
	return New(db, cfg), nil
}

// New wraps an existing gorm handle.
func New(db *gorm.DB, cfg Config) *Store {
	return &Store{
		db:       db,
		table:    cfg.Table,
		conflict: cfg.ConflictColumns,
		dims:     cfg.EmbeddingDimensions,
		logger:   slog.Default().With("component", "postgres-store"),
	}
}

// Upsert writes records in one INSERT ... ON CONFLICT statement. Columns
// present in the batch but not in the conflict key are updated on conflict.
// Records sharing a conflict key within the batch collapse to the last one,
// since a single statement may not touch the same row twice.
func (s *Store) Upsert(ctx context.Context, records []core.DbRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows, columns := toRows(s.collapse(records))

	onConflict := clause.OnConflict{Columns: make([]clause.Column, 0, len(s.conflict))}
	for _, c := range s.conflict {
		onConflict.Columns = append(onConflict.Columns, clause.Column{Name: c})
	}
	updates := slices.DeleteFunc(columns, func(c string) bool {
		return slices.Contains(s.conflict, c)
	})
	if len(updates) == 0 {
		onConflict.DoNothing = true
	} else {
		onConflict.DoUpdates = clause.AssignmentColumns(updates)
	}

	result := s.db.WithContext(ctx).Table(s.table).Clauses(onConflict).Create(&rows)
	if result.Error != nil {
		return result.Error
	}
	s.logger.Debug("upserted batch", "table", s.table, "records", len(rows), "affected", result.RowsAffected)
	return nil
}

// collapse keeps the last record for each conflict key in place of the
// first. Records with a NULL key column never conflict and are kept.
func (s *Store) collapse(records []core.DbRecord) []core.DbRecord {
	if len(s.conflict) == 0 {
		return records
	}
	index := make(map[string]int, len(records))
	out := make([]core.DbRecord, 0, len(records))
	for _, record := range records {
		key, ok := conflictKey(record, s.conflict)
		if !ok {
			out = append(out, record)
			continue
		}
		if i, dup := index[key]; dup {
			s.logger.Warn("dropping duplicate record in batch", "table", s.table, "key", key)
			out[i] = record
			continue
		}
		index[key] = len(out)
		out = append(out, record)
	}
	return out
}

func conflictKey(record core.DbRecord, columns []string) (string, bool) {
	parts := make([]string, len(columns))
	for i, c := range columns {
		v := record[c]
		if v == nil {
			return "", false
		}
		parts[i] = fmt.Sprint(v)
	}
	return fmt.Sprintf("%q", parts), true
}

// EnsureTable creates the vector extension and the target table when they
// are missing. Existing tables are left untouched.
func (s *Store) EnsureTable(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return err
	}
	return db.Exec(createTableSQL(s.table, s.conflict, s.dims)).Error
}

func createTableSQL(table string, conflict []string, dims int) string {
	vector := "vector"
	if dims > 0 {
		vector = fmt.Sprintf("vector(%d)", dims)
	}
	unique := ""
	if len(conflict) > 0 {
		quoted := make([]string, len(conflict))
		for i, c := range conflict {
			quoted[i] = pq.QuoteIdentifier(c)
		}
		unique = fmt.Sprintf(",\n  UNIQUE (%s)", strings.Join(quoted, ", "))
	}
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
  id bigserial PRIMARY KEY,
  name text,
  address text,
  price_level integer,
  rating double precision,
  review_summary text,
  vibe_tags text[],
  embedding %s%s
)`, pq.QuoteIdentifier(table), vector, unique)
}

// Close closes the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// gormLogWriter routes gorm's logger onto slog.
type gormLogWriter struct {
	logger *slog.Logger
}

func (w gormLogWriter) Printf(format string, args ...any) {
	w.logger.Debug(fmt.Sprintf(format, args...))
}

func newGormLogger() logger.Interface {
	return logger.New(gormLogWriter{logger: slog.Default().With("component", "gorm")}, logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}
