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

import "context"

// Completer produces structured answers from a generative-text model.
type Completer interface {
	// Complete sends the system and user prompts and asks for a JSON object
	// in return. The raw answer text is returned unparsed.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Embedder generates vector embeddings from text for semantic similarity search.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns ErrDimensionMismatch when the vector length differs from the
	// configured dimensionality.
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle management.
type Provider interface {
	// Completer returns the structured completion service.
	Completer() Completer

	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Close releases resources held by the provider and its services.
	Close() error
}
