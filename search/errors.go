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

package search

import "errors"

var (
	// ErrCorpusRequired is returned when a corpus is not provided.
	ErrCorpusRequired = errors.New("corpus required")

	// ErrIndexRequired is returned when an embedding index is not provided.
	ErrIndexRequired = errors.New("embedding index required")

	// ErrInvalidMaxHits is returned when the result cap is less than one.
	ErrInvalidMaxHits = errors.New("max hits must be at least 1")

	// ErrInvalidThreshold is returned when the similarity threshold is
	// outside [-1, 1].
	ErrInvalidThreshold = errors.New("threshold must be between -1 and 1")
)
