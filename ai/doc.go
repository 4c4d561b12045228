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


// Package ai provides abstractions for the generative-text services used by
// the refine stage.
//
// # Design Principles
//
// The package is designed around three interfaces:
//
//   - Completer: turns a system and user prompt into a JSON answer
//   - Embedder: generates vector embeddings from text
//   - Provider: aggregates both for convenient initialization and cleanup
//
// # Implementation Packages
//
//   - ai/openai: langchaingo client for any OpenAI-compatible host (OpenRouter by default)
//   - ai/gopenai: go-openai client for the OpenAI API
//   - ai/gemini: Google Gemini client
//   - ai/mock: test doubles for unit testing without external dependencies
//
// Implementations issue exactly one request per call. Retrying is the
// caller's job, see package retry.
package ai
