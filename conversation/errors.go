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

package conversation

import "errors"

var (
	// ErrInvalidMaxTurns is returned when the history bound is less than one.
	ErrInvalidMaxTurns = errors.New("max turns must be at least 1")

	// ErrEmptySessionID is returned when an explicit session ID is empty.
	ErrEmptySessionID = errors.New("session ID must not be empty")
)
