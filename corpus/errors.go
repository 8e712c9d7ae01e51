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


package corpus

import "errors"

var (
	// ErrLoadFailed indicates the dataset could not be read or parsed.
	ErrLoadFailed = errors.New("payroll dataset load failed")

	// ErrMissingColumns indicates required CSV columns are absent.
	ErrMissingColumns = errors.New("payroll dataset is missing columns")

	// ErrAdjustmentYearMissing indicates an adjustment command without a year.
	ErrAdjustmentYearMissing = errors.New("adjustment command has no year")

	// ErrAdjustmentPercentMissing indicates an adjustment command without a percentage.
	ErrAdjustmentPercentMissing = errors.New("adjustment command has no percentage")

	// ErrAdjustmentBaseMissing indicates the base year has no records to project from.
	ErrAdjustmentBaseMissing = errors.New("no records for adjustment base year")

	// ErrAdjustmentYearExists indicates the target year is already in the corpus.
	ErrAdjustmentYearExists = errors.New("records already exist for adjustment year")
)
