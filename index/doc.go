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

// Package index builds and serves the in-memory embedding index. Each
// payroll record becomes one text chunk, embedded once at startup by a
// worker pool; queries are then scored against the cached vectors with
// cosine similarity. Construction is all-or-nothing: a failed build
// returns an error instead of a partial index.
package index
