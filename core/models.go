package core

import (
	"encoding/json"
	"time"
)

// Anchor is a fixed coordinate used as the center of one nearby search.
type Anchor struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PlaceSummary is a single entry of a nearby-search result page.
type PlaceSummary struct {
	PlaceID string
	Name    string
}

// RawPlace is a detail record as returned by the geo-search provider.
// Loosely typed fields are kept as raw JSON so malformed provider data
// survives the round trip through the raw artifact.
type RawPlace struct {
	PlaceID          string          `json:"place_id"`
	Name             string          `json:"name,omitempty"`
	FormattedAddress string          `json:"formatted_address,omitempty"`
	// PriceLevel is nil when the provider reports 0, which also covers "Free".
	PriceLevel       *int            `json:"price_level,omitempty"`
	Rating           *float64        `json:"rating,omitempty"`
	UserRatingsTotal *int            `json:"user_ratings_total,omitempty"`
	Website          string          `json:"website,omitempty"`
	OpeningHours     json.RawMessage `json:"opening_hours,omitempty"`
	Reviews          json.RawMessage `json:"reviews,omitempty"`
	EditorialSummary json.RawMessage `json:"editorial_summary,omitempty"`
}

// Review is the part of a provider review the pipeline reads.
type Review struct {
	AuthorName string `json:"author_name,omitempty"`
	Rating     int    `json:"rating,omitempty"`
	Text       string `json:"text"`
}

// Vibe is the validated answer of the generative-text provider.
type Vibe struct {
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

// EnrichedPlace is a RawPlace after summary, tags and embedding were attached.
type EnrichedPlace struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	PriceLevel     *int      `json:"price_level"`
	Rating         *float64  `json:"rating"`
	ReviewsSummary string    `json:"reviews_summary"`
	Tags           []string  `json:"tags"`
	Embedding      []float32 `json:"embedding"`
}

// DbRecord is an EnrichedPlace projected onto the persisted column set.
// Keys are column names.
type DbRecord map[string]any

// Checkpoint records the outcome of the last completed run of a stage.
type Checkpoint struct {
	Stage     string    `json:"stage"`
	RunID     string    `json:"run_id"`
	Processed int       `json:"processed"`
	Failed    int       `json:"failed"`
	UpdatedAt time.Time `json:"updated_at"`
}
