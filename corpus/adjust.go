package corpus

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/folhabot/core"
)

var (
	adjustYearPattern    = regexp.MustCompile(`\b(20\d{2})\b`)
	adjustPercentPattern = regexp.MustCompile(`(\d+(\.\d+)?)\s*%`)
)

// ParseAdjustmentCommand interprets a salary adjustment command such as
// "reajuste os salários de 2027 em 8%". It returns the target year and the
// adjustment factor (8% -> 1.08).
func ParseAdjustmentCommand(text string) (year int, factor float64, err error) {
	yearMatch := adjustYearPattern.FindStringSubmatch(text)
	if yearMatch == nil {
		return 0, 0, ErrAdjustmentYearMissing
	}
	year, _ = strconv.Atoi(yearMatch[1])

	percentMatch := adjustPercentPattern.FindStringSubmatch(text)
	if percentMatch == nil {
		return 0, 0, ErrAdjustmentPercentMissing
	}
	percent, _ := strconv.ParseFloat(percentMatch[1], 64)

	return year, 1 + percent/100, nil
}

// WithAdjustedYear returns a new corpus extended with a projected year:
// for every record of the base year (target year minus one), a record for
// the target year is generated with salary, bonus, benefits and both tax
// deductions scaled by factor. Other earnings and other deductions are
// carried over unchanged, net pay is recomputed, and the payment date is
// fixed to the 28th of each month.
//
// Returns ErrAdjustmentBaseMissing when the base year has no records and
// ErrAdjustmentYearExists when the target year is already present.
func (c *Corpus) WithAdjustedYear(targetYear int, factor float64) (*Corpus, error) {
	baseYear := targetYear - 1
	basePrefix := fmt.Sprintf("%d-", baseYear)
	targetPrefix := fmt.Sprintf("%d-", targetYear)

	for i := range c.records {
		if strings.HasPrefix(c.records[i].Competency, targetPrefix) {
			return nil, fmt.Errorf("%w: %d", ErrAdjustmentYearExists, targetYear)
		}
	}

	var projected []core.Record
	for i := range c.records {
		r := &c.records[i]
		if !strings.HasPrefix(r.Competency, basePrefix) {
			continue
		}

		_, month := core.CompetencyParts(r.Competency)
		monthNumber, _ := strconv.Atoi(month)

		adjusted := core.Record{
			EmployeeID:      r.EmployeeID,
			Name:            r.Name,
			Competency:      fmt.Sprintf("%d-%s", targetYear, month),
			BaseSalary:      round2(r.BaseSalary * factor),
			Bonus:           round2(r.Bonus * factor),
			BenefitsVTVR:    round2(r.BenefitsVTVR * factor),
			OtherEarnings:   r.OtherEarnings,
			DeductionsINSS:  round2(r.DeductionsINSS * factor),
			DeductionsIRRF:  round2(r.DeductionsIRRF * factor),
			OtherDeductions: r.OtherDeductions,
			PaymentDate:     time.Date(targetYear, time.Month(monthNumber), 28, 0, 0, 0, 0, time.UTC),
		}
		adjusted.NetPay = round2(adjusted.BaseSalary + adjusted.Bonus + adjusted.BenefitsVTVR +
			adjusted.OtherEarnings - adjusted.DeductionsINSS - adjusted.DeductionsIRRF - adjusted.OtherDeductions)

		projected = append(projected, adjusted)
	}

	if len(projected) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrAdjustmentBaseMissing, baseYear)
	}

	combined := make([]core.Record, 0, len(c.records)+len(projected))
	combined = append(combined, c.records...)
	combined = append(combined, projected...)
	return New(combined)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
