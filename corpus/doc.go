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


// Package corpus holds the immutable in-memory payroll dataset.
//
// A Corpus is loaded once (from CSV or a prebuilt record slice), validated,
// and then shared read-only across sessions. It supplies the retrieval
// pipeline with chunk texts for indexing, the known employee names and the
// most recent competency year for filter extraction, plus dataset
// aggregates and year-projection adjustments for direct structured queries.
package corpus
