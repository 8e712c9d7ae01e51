package extract

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/poiesic/folhabot/core"
)

var (
	competencyPattern = regexp.MustCompile(`\b(\d{4})-(0[1-9]|1[0-2])\b`)
	monthYearPattern  = regexp.MustCompile(`\b(janeiro|fevereiro|marco|abril|maio|junho|julho|agosto|setembro|outubro|novembro|dezembro)\s+de\s+(\d{4})\b`)
	monthOnlyPattern  = regexp.MustCompile(`\b(janeiro|fevereiro|marco|abril|maio|junho|julho|agosto|setembro|outubro|novembro|dezembro)\b`)
	employeeIDPattern = regexp.MustCompile(`\be\d{3}\b`)
	wordPattern       = regexp.MustCompile(`[a-z0-9-]+`)
)

// monthNumbers maps folded Portuguese month names to their two-digit form.
var monthNumbers = map[string]string{
	"janeiro": "01", "fevereiro": "02", "marco": "03", "abril": "04",
	"maio": "05", "junho": "06", "julho": "07", "agosto": "08",
	"setembro": "09", "outubro": "10", "novembro": "11", "dezembro": "12",
}

// fieldKeywords maps query keywords to monetary fields, in match priority
// order: "salário líquido" must resolve to net pay, not base salary, so the
// net-pay row comes first.
var fieldKeywords = []struct {
	keywords []string
	field    core.MoneyField
}{
	{[]string{"liquido", "net"}, core.FieldNetPay},
	{[]string{"inss"}, core.FieldDeductionsINSS},
	{[]string{"irrf", "imposto"}, core.FieldDeductionsIRRF},
	{[]string{"outros descontos"}, core.FieldOtherDeductions},
	{[]string{"outros proventos"}, core.FieldOtherEarnings},
	{[]string{"beneficio", "beneficios", "vt", "vr"}, core.FieldBenefits},
	{[]string{"bonus"}, core.FieldBonus},
	{[]string{"salario", "salarios"}, core.FieldBaseSalary},
}

// knownName is one employee name prepared for matching.
type knownName struct {
	canonical  string // as stored in the corpus
	normalized string // folded, lower-cased full name
	firstToken string // folded first name
}

// Extractor pulls structured filters out of free-text queries. It is pure
// and side-effect-free: the same query always yields the same FilterSet.
//
// Name matching needs the corpus's known-name set and bare month names need
// a default year, so an Extractor is built against a corpus snapshot and
// rebuilt when the corpus is reloaded.
type Extractor struct {
	names       []knownName
	defaultYear int
	logger      *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewExtractor creates an extractor for the given known employee names.
// defaultYear resolves bare month names ("pagamento de maio"); pass the
// corpus's most recent year, or 0 to leave bare months unresolved.
func NewExtractor(names []string, defaultYear int, opts ...Option) (*Extractor, error) {
	if defaultYear != 0 && (defaultYear < 1900 || defaultYear > 9999) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDefaultYear, defaultYear)
	}

	e := &Extractor{
		defaultYear: defaultYear,
		logger:      slog.Default(),
	}

	for _, name := range names {
		normalized := core.NormalizeQuery(name)
		if normalized == "" {
			continue
		}
		first, _, _ := strings.Cut(normalized, " ")
		e.names = append(e.names, knownName{
			canonical:  name,
			normalized: normalized,
			firstToken: first,
		})
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Extract returns the filters detected in the query. Rules fire
// independently; a key is absent (zero) when nothing was detected, never a
// placeholder.
func (e *Extractor) Extract(query string) core.FilterSet {
	normalized := core.NormalizeQuery(query)
	if normalized == "" {
		return core.FilterSet{}
	}

	words := make(map[string]bool)
	for _, w := range wordPattern.FindAllString(normalized, -1) {
		words[w] = true
	}

	filters := core.FilterSet{
		Name:       e.extractName(normalized, words),
		Competency: e.extractCompetency(normalized),
		EmployeeID: extractEmployeeID(normalized),
		Field:      extractField(normalized, words),
	}

	if !filters.Empty() {
		e.logger.Debug("filters extracted",
			"name", filters.Name, "competency", filters.Competency,
			"employee_id", filters.EmployeeID, "field", filters.Field.String())
	}

	return filters
}

// extractName matches query tokens against the known employee names.
// Names are assumed non-overlapping, so the first match wins.
func (e *Extractor) extractName(normalized string, words map[string]bool) string {
	for _, name := range e.names {
		if strings.Contains(normalized, name.normalized) {
			return name.canonical
		}
		if words[name.firstToken] {
			return name.canonical
		}
	}
	return ""
}

// extractCompetency recognizes "YYYY-MM", "<month> de <year>" and a bare
// month name, normalizing all three to YYYY-MM. More explicit forms win.
func (e *Extractor) extractCompetency(normalized string) string {
	if m := competencyPattern.FindStringSubmatch(normalized); m != nil {
		return m[1] + "-" + m[2]
	}

	if m := monthYearPattern.FindStringSubmatch(normalized); m != nil {
		return m[2] + "-" + monthNumbers[m[1]]
	}

	if m := monthOnlyPattern.FindStringSubmatch(normalized); m != nil && e.defaultYear != 0 {
		return fmt.Sprintf("%04d-%s", e.defaultYear, monthNumbers[m[1]])
	}

	return ""
}

func extractEmployeeID(normalized string) string {
	if m := employeeIDPattern.FindString(normalized); m != "" {
		return strings.ToUpper(m)
	}
	return ""
}

// extractField matches whole words (or whole phrases, for multi-word
// keywords) so that short keywords like "vr" cannot fire inside other words.
func extractField(normalized string, words map[string]bool) core.MoneyField {
	for _, entry := range fieldKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(keyword, " ") {
				if strings.Contains(normalized, keyword) {
					return entry.field
				}
			} else if words[keyword] {
				return entry.field
			}
		}
	}
	return 0
}
