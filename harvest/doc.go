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


// Package harvest collects places around fixed anchors and resolves their
// detail records.
//
// Every anchor is searched page by page. Results are merged into one
// candidate set keyed by place id where the first occurrence wins, so
// overlapping anchors never produce duplicates. Each unique place is then
// detail-fetched exactly once.
//
// A failing page request aborts the harvest. A failing detail request only
// drops that place and is reported in Result.Failures.
package harvest
