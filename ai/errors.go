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


package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey indicates the provider API key is not configured.
	ErrMissingAPIKey = errors.New("ai config: APIKey is required")

	// ErrUnsupportedProvider indicates an unknown provider name.
	ErrUnsupportedProvider = errors.New("ai config: unsupported provider")

	// ErrEmptyResponse indicates the model returned no content.
	ErrEmptyResponse = errors.New("model returned an empty response")

	// ErrDimensionMismatch indicates an embedding of unexpected length.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

// CheckDimensions returns ErrDimensionMismatch when want > 0 and the vector
// length differs from it. An empty vector is always an error.
func CheckDimensions(vector []float32, want int) error {
	if len(vector) == 0 {
		return fmt.Errorf("%w: empty vector", ErrEmptyResponse)
	}
	if want > 0 && len(vector) != want {
		return fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, want, len(vector))
	}
	return nil
}
