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

import (
	"fmt"
	"regexp"
)

var competencyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// IsValidCompetency reports whether s is a normalized YYYY-MM competency.
func IsValidCompetency(s string) bool {
	return competencyPattern.MatchString(s)
}

// ValidateRecord validates a payroll Record according to domain rules.
//
// Validation rules:
//   - EmployeeID and Name must not be empty
//   - Competency must be normalized YYYY-MM
//   - every monetary field must be non-negative
//
// NOT validated:
//   - the net pay identity (source data may violate it)
//   - PaymentDate (a zero date is tolerated; some exports omit it)
func ValidateRecord(record *Record) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if record.EmployeeID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyEmployeeID)
	}

	if record.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyName)
	}

	if !IsValidCompetency(record.Competency) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidRecord, ErrInvalidCompetency, record.Competency)
	}

	amounts := []float64{
		record.BaseSalary, record.Bonus, record.BenefitsVTVR, record.OtherEarnings,
		record.DeductionsINSS, record.DeductionsIRRF, record.OtherDeductions, record.NetPay,
	}
	for _, amount := range amounts {
		if amount < 0 {
			return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrNegativeAmount)
		}
	}

	return nil
}

// ValidateTurn validates a conversation Turn according to domain rules.
// The response text may be empty (a turn is appended before generation in
// some flows); the user text may not.
func ValidateTurn(turn *Turn) error {
	if turn == nil {
		return fmt.Errorf("%w: turn is nil", ErrInvalidTurn)
	}

	if turn.UserText == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTurn, ErrEmptyTurnText)
	}

	return nil
}
