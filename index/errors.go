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

package index

import "errors"

var (
	// ErrCorpusRequired is returned by Build when no corpus is provided.
	ErrCorpusRequired = errors.New("corpus is required")

	// ErrEmbedderRequired is returned by Build when no embedder is provided.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrInvalidBatchSize is returned when the batch size is less than one.
	ErrInvalidBatchSize = errors.New("batch size must be at least 1")

	// ErrBuildFailed wraps any failure during index construction.
	ErrBuildFailed = errors.New("index build failed")
)
