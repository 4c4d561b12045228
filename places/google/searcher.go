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


// Package google implements places.Searcher on the Google Maps Places API.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/poiesic/chowdown/core"
	"github.com/poiesic/chowdown/places"
	"googlemaps.github.io/maps"
)

// Searcher wraps a maps.Client.
type Searcher struct {
	client *maps.Client
	logger *slog.Logger
}

// NewSearcher creates a Searcher authenticated with apiKey. Extra client
// options (base URL, HTTP client, rate limit) are passed through.
func NewSearcher(apiKey string, opts ...maps.ClientOption) (*Searcher, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Searcher{
		client: client,
		logger: slog.Default().With("component", "places-google"),
	}, nil
}

// SearchNearby issues one nearby-search request.
func (s *Searcher) SearchNearby(ctx context.Context, req places.NearbyRequest) (*places.NearbyPage, error) {
	r := &maps.NearbySearchRequest{PageToken: req.PageToken}
	if req.PageToken == "" {
		r.Location = &maps.LatLng{Lat: req.Location.Lat, Lng: req.Location.Lng}
		r.Radius = req.Radius
		if req.Category != "" {
			placeType, err := maps.ParsePlaceType(req.Category)
			if err != nil {
				return nil, err
			}
			r.Type = placeType
		}
	}

	resp, err := s.client.NearbySearch(ctx, r)
	if err != nil {
		return nil, err
	}

	page := &places.NearbyPage{
		Results:       make([]core.PlaceSummary, 0, len(resp.Results)),
		NextPageToken: resp.NextPageToken,
	}
	for _, result := range resp.Results {
		page.Results = append(page.Results, core.PlaceSummary{PlaceID: result.PlaceID, Name: result.Name})
	}
	s.logger.Debug("nearby page", "results", len(page.Results), "has_next", page.NextPageToken != "")
	return page, nil
}

// FetchDetail issues one place-details request.
func (s *Searcher) FetchDetail(ctx context.Context, placeID string, fields []string) (*core.RawPlace, error) {
	masks := make([]maps.PlaceDetailsFieldMask, 0, len(fields))
	for _, f := range fields {
		mask, err := maps.ParsePlaceDetailsFieldMask(f)
		if err != nil {
			return nil, err
		}
		masks = append(masks, mask)
	}

	result, err := s.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields:  masks,
	})
	if err != nil {
		return nil, err
	}
	if result.PlaceID == "" {
		return nil, nil
	}
	return toRawPlace(result)
}

// toRawPlace converts a details result. The SDK decodes numeric fields
// without presence information, so zero rating and zero price level are
// reported as absent.
func toRawPlace(r maps.PlaceDetailsResult) (*core.RawPlace, error) {
	p := &core.RawPlace{
		PlaceID:          r.PlaceID,
		Name:             r.Name,
		FormattedAddress: r.FormattedAddress,
		Website:          r.Website,
	}
	if r.PriceLevel != 0 {
		level := r.PriceLevel
		p.PriceLevel = &level
	}
	if r.Rating != 0 {
		rating := float64(r.Rating)
		p.Rating = &rating
	}
	if r.UserRatingsTotal != 0 {
		total := r.UserRatingsTotal
		p.UserRatingsTotal = &total
	}

	var err error
	if r.OpeningHours != nil {
		if p.OpeningHours, err = json.Marshal(r.OpeningHours); err != nil {
			return nil, err
		}
	}
	if len(r.Reviews) > 0 {
		if p.Reviews, err = json.Marshal(r.Reviews); err != nil {
			return nil, err
		}
	}
	if r.EditorialSummary != nil {
		if p.EditorialSummary, err = json.Marshal(r.EditorialSummary); err != nil {
			return nil, err
		}
	}
	return p, nil
}

var _ places.Searcher = (*Searcher)(nil)
