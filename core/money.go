package core

import (
	"fmt"
	"strings"
)

// FormatBRL formats an amount in Brazilian real convention: "R$ 9.000,50".
// Thousands are separated with dots and cents with a comma.
func FormatBRL(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)

	intPart, fracPart, _ := strings.Cut(s, ".")

	negative := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return "R$ " + sign + b.String() + "," + fracPart
}

// monthNames maps the numeric month of a competency to its Portuguese name.
var monthNames = map[string]string{
	"01": "janeiro", "02": "fevereiro", "03": "março", "04": "abril",
	"05": "maio", "06": "junho", "07": "julho", "08": "agosto",
	"09": "setembro", "10": "outubro", "11": "novembro", "12": "dezembro",
}

// MonthName returns the Portuguese name for a two-digit month ("03" -> "março").
// Unknown input is returned unchanged.
func MonthName(month string) string {
	if name, ok := monthNames[month]; ok {
		return name
	}
	return month
}

// CompetencyParts splits a normalized competency into year and month.
func CompetencyParts(competency string) (year, month string) {
	year, month, _ = strings.Cut(competency, "-")
	return year, month
}
