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

// Package folhabot answers natural-language questions about a payroll
// dataset. An Engine loads the dataset once, embeds every record into an
// in-memory index and then serves queries through a fixed pipeline:
// sanitize, classify intent, extract structured filters, retrieve by
// filter-constrained embedding similarity and generate a grounded
// response. Conversation history is kept per session with bounded FIFO
// eviction.
package folhabot
