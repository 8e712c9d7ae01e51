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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidRecord indicates a payroll Record failed validation.
	ErrInvalidRecord = errors.New("invalid payroll record")

	// ErrEmptyEmployeeID indicates the EmployeeID field is empty.
	ErrEmptyEmployeeID = errors.New("employee id cannot be empty")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("employee name cannot be empty")

	// ErrInvalidCompetency indicates a competency is not in YYYY-MM form.
	ErrInvalidCompetency = errors.New("competency must be in YYYY-MM form")

	// ErrNegativeAmount indicates a monetary field is negative.
	ErrNegativeAmount = errors.New("monetary fields cannot be negative")

	// ErrInvalidTurn indicates a conversation Turn failed validation.
	ErrInvalidTurn = errors.New("invalid conversation turn")

	// ErrEmptyTurnText indicates a Turn with no user text.
	ErrEmptyTurnText = errors.New("turn user text cannot be empty")
)
