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


package harvest

import (
	"time"

	"github.com/poiesic/chowdown/core"
	"github.com/poiesic/chowdown/places"
)

// DefaultCooldown is the wait before requesting a continuation page. Page
// tokens become valid roughly two seconds after they are issued.
const DefaultCooldown = 3 * time.Second

// Config describes the search area and detail payload.
type Config struct {
	Anchors  []core.Anchor
	Radius   uint
	Category string
	Fields   []string
	Cooldown time.Duration
}

// DefaultConfig covers the University District in Seattle with three
// overlapping 500 m restaurant searches.
func DefaultConfig() Config {
	return Config{
		Anchors: []core.Anchor{
			{Lat: 47.6570, Lng: -122.3131},
			{Lat: 47.6612, Lng: -122.3131},
			{Lat: 47.6660, Lng: -122.3131},
		},
		Radius:   500,
		Category: "restaurant",
		Fields:   append([]string(nil), places.DetailFields...),
		Cooldown: DefaultCooldown,
	}
}
