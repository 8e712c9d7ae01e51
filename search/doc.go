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

// Package search ranks payroll records against a query.
//
// The Ranker type implements a two-stage retrieval algorithm:
//   - Structured filters extracted from the query act as hard constraints
//   - Embedding similarity ranks the records that survive the filters
//
// When the filters exclude every record the ranker falls back to ranking
// the whole corpus, so a mis-specified query still returns the closest
// matches. Results below the similarity threshold are dropped in every
// mode.
package search
