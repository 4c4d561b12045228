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


package badger

import "fmt"

const (
	detailPrefix     = "detail"
	enrichmentPrefix = "enriched"
	checkpointSuffix = "chkpt"
)

func makeDetailKey(placeID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", detailPrefix, placeID))
}

func makeEnrichmentKey(key string) []byte {
	return []byte(fmt.Sprintf("%s:%s", enrichmentPrefix, key))
}

func makeCheckpointKey(stage string) []byte {
	return []byte(fmt.Sprintf("%s:%s", stage, checkpointSuffix))
}
