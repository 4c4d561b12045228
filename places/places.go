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


// Package places defines the geo-search provider surface used by the
// harvest stage.
package places

import (
	"context"

	"github.com/poiesic/chowdown/core"
)

// DetailFields is the field set requested for every place detail.
var DetailFields = []string{
	"place_id",
	"name",
	"formatted_address",
	"price_level",
	"rating",
	"user_ratings_total",
	"website",
	"opening_hours",
	"reviews",
	"editorial_summary",
}

// NearbyRequest describes one page of a nearby search. When PageToken is
// set the provider ignores the other fields and continues a previous search.
type NearbyRequest struct {
	Location  core.Anchor
	Radius    uint
	Category  string
	PageToken string
}

// NearbyPage is one page of nearby-search results.
type NearbyPage struct {
	Results       []core.PlaceSummary
	NextPageToken string
}

// Searcher is the fetch client adapter for a geo-search provider.
type Searcher interface {
	// SearchNearby returns one page of results around a location.
	SearchNearby(ctx context.Context, req NearbyRequest) (*NearbyPage, error)

	// FetchDetail returns the detail record for placeID restricted to fields.
	// A nil record with a nil error means the provider had no result body.
	FetchDetail(ctx context.Context, placeID string, fields []string) (*core.RawPlace, error)
}
