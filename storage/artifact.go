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


package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// ReadJSONArray loads an artifact and returns its object elements.
// Elements that are not JSON objects are skipped with a warning. A missing
// file yields ErrArtifactNotFound, a document that is not an array yields
// ErrInvalidArtifact.
func ReadJSONArray(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
		}
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidArtifact, path, err)
	}
	if items == nil && !bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArtifact, path)
	}

	objects := make([]json.RawMessage, 0, len(items))
	for i, item := range items {
		if !isObject(item) {
			slog.Warn("skipping non-object artifact element", "path", path, "index", i)
			continue
		}
		objects = append(objects, item)
	}
	return objects, nil
}

// WriteJSONArray replaces the artifact at path with items. The directory is
// created if needed. A nil slice is written as an empty array.
func WriteJSONArray[T any](path string, items []T) error {
	if items == nil {
		items = []T{}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
