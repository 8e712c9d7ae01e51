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

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/folhabot/core"
)

// expectedColumns is the required CSV header, in any order.
var expectedColumns = []string{
	"employee_id", "name", "competency", "base_salary", "bonus",
	"benefits_vt_vr", "other_earnings", "deductions_inss",
	"deductions_irrf", "other_deductions", "net_pay", "payment_date",
}

// dateLayouts are tried in order when parsing payment dates.
var dateLayouts = []string{"2006-01-02", time.RFC3339, "02/01/2006"}

// Load reads a payroll dataset in CSV form and builds a validated corpus.
// Text fields are trimmed; monetary fields must parse as decimals. A row
// that fails parsing or validation aborts the load with the row number in
// the error.
func Load(r io.Reader) (*Corpus, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range expectedColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrMissingColumns, missing)
	}

	var records []core.Record
	for row := 2; ; row++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrLoadFailed, row, err)
		}

		record, err := parseRow(fields, columns)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrLoadFailed, row, err)
		}
		records = append(records, record)
	}

	corpus, err := New(records)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	slog.Default().Info("payroll dataset loaded", "records", corpus.Len())
	return corpus, nil
}

// LoadFile opens and loads a CSV dataset from disk.
func LoadFile(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	defer f.Close()

	return Load(f)
}

func parseRow(fields []string, columns map[string]int) (core.Record, error) {
	get := func(name string) string {
		i := columns[name]
		if i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	money := func(name string) (float64, error) {
		raw := get(name)
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, fmt.Errorf("column %s: %q is not a decimal", name, raw)
		}
		return value, nil
	}

	record := core.Record{
		EmployeeID: get("employee_id"),
		Name:       get("name"),
		Competency: get("competency"),
	}

	var err error
	if record.BaseSalary, err = money("base_salary"); err != nil {
		return core.Record{}, err
	}
	if record.Bonus, err = money("bonus"); err != nil {
		return core.Record{}, err
	}
	if record.BenefitsVTVR, err = money("benefits_vt_vr"); err != nil {
		return core.Record{}, err
	}
	if record.OtherEarnings, err = money("other_earnings"); err != nil {
		return core.Record{}, err
	}
	if record.DeductionsINSS, err = money("deductions_inss"); err != nil {
		return core.Record{}, err
	}
	if record.DeductionsIRRF, err = money("deductions_irrf"); err != nil {
		return core.Record{}, err
	}
	if record.OtherDeductions, err = money("other_deductions"); err != nil {
		return core.Record{}, err
	}
	if record.NetPay, err = money("net_pay"); err != nil {
		return core.Record{}, err
	}

	if raw := get("payment_date"); raw != "" {
		parsed := false
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, raw); err == nil {
				record.PaymentDate = ts
				parsed = true
				break
			}
		}
		if !parsed {
			slog.Default().Warn("unparseable payment date", "value", raw, "employee", record.EmployeeID)
		}
	}

	return record, nil
}
