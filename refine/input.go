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


package refine

import (
	"encoding/json"
	"fmt"

	"github.com/poiesic/chowdown/core"
)

// DecodeRawPlaces decodes artifact elements into RawPlaces. Elements that
// do not fit the RawPlace shape are returned as failures named after
// whatever name and place_id they carry.
func DecodeRawPlaces(items []json.RawMessage) ([]core.RawPlace, []core.Failure) {
	places := make([]core.RawPlace, 0, len(items))
	var failures []core.Failure

	for i, item := range items {
		var place core.RawPlace
		if err := json.Unmarshal(item, &place); err != nil {
			failures = append(failures, decodeFailure(i, item, err))
			continue
		}
		places = append(places, place)
	}
	return places, failures
}

func decodeFailure(index int, item json.RawMessage, err error) core.Failure {
	var loose map[string]any
	_ = json.Unmarshal(item, &loose)

	f := core.Failure{Err: fmt.Errorf("element %d: %w", index, err)}
	if name, ok := loose["name"].(string); ok {
		f.Name = name
	}
	if id, ok := loose["place_id"].(string); ok {
		f.PlaceID = id
	}
	return f
}
