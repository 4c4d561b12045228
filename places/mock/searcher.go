// Package mock provides a scripted places.Searcher for tests.
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/poiesic/chowdown/core"
	"github.com/poiesic/chowdown/places"
)

// MockSearcher is a test double for places.Searcher.
// Behavior is injected via function fields; without them it serves Pages
// and Details.
type MockSearcher struct {
	// SearchNearbyFunc is called by SearchNearby if set.
	SearchNearbyFunc func(ctx context.Context, req places.NearbyRequest) (*places.NearbyPage, error)

	// FetchDetailFunc is called by FetchDetail if set.
	FetchDetailFunc func(ctx context.Context, placeID string, fields []string) (*core.RawPlace, error)

	// Pages maps an anchor to its result pages. The token of page i is
	// "<lat>,<lng>#<i>".
	Pages map[core.Anchor][][]core.PlaceSummary

	// Details maps a place id to its record. Missing ids return nil, nil.
	Details map[string]*core.RawPlace

	mu             sync.Mutex
	searchRequests []places.NearbyRequest
	detailRequests []string
}

// NewMockSearcher creates an empty mock searcher.
func NewMockSearcher() *MockSearcher {
	return &MockSearcher{
		Pages:   map[core.Anchor][][]core.PlaceSummary{},
		Details: map[string]*core.RawPlace{},
	}
}

// SearchNearby records the request and serves the scripted page.
func (m *MockSearcher) SearchNearby(ctx context.Context, req places.NearbyRequest) (*places.NearbyPage, error) {
	m.mu.Lock()
	m.searchRequests = append(m.searchRequests, req)
	m.mu.Unlock()

	if m.SearchNearbyFunc != nil {
		return m.SearchNearbyFunc(ctx, req)
	}

	anchor, index := req.Location, 0
	if req.PageToken != "" {
		if _, err := fmt.Sscanf(req.PageToken, "%g,%g#%d", &anchor.Lat, &anchor.Lng, &index); err != nil {
			return nil, fmt.Errorf("invalid page token %q: %w", req.PageToken, err)
		}
	}

	pages := m.Pages[anchor]
	if index >= len(pages) {
		return &places.NearbyPage{}, nil
	}
	page := &places.NearbyPage{Results: pages[index]}
	if index+1 < len(pages) {
		page.NextPageToken = fmt.Sprintf("%g,%g#%d", anchor.Lat, anchor.Lng, index+1)
	}
	return page, nil
}

// FetchDetail records the request and serves the scripted record.
func (m *MockSearcher) FetchDetail(ctx context.Context, placeID string, fields []string) (*core.RawPlace, error) {
	m.mu.Lock()
	m.detailRequests = append(m.detailRequests, placeID)
	m.mu.Unlock()

	if m.FetchDetailFunc != nil {
		return m.FetchDetailFunc(ctx, placeID, fields)
	}
	return m.Details[placeID], nil
}

// SearchRequests returns every nearby request received, in call order.
func (m *MockSearcher) SearchRequests() []places.NearbyRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]places.NearbyRequest(nil), m.searchRequests...)
}

// DetailRequests returns every place id requested, in call order.
func (m *MockSearcher) DetailRequests() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.detailRequests...)
}

var _ places.Searcher = (*MockSearcher)(nil)
