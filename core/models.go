package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities, generated from content hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Record is one payroll entry for one employee in one competency month.
// Records are immutable once loaded into a corpus. The net pay identity
// (earnings minus deductions) is advisory only; source data may violate it
// and retrieval never recomputes it.
type Record struct {
	EmployeeID      string
	Name            string
	Competency      string // normalized "YYYY-MM"
	BaseSalary      float64
	Bonus           float64
	BenefitsVTVR    float64
	OtherEarnings   float64
	DeductionsINSS  float64
	DeductionsIRRF  float64
	OtherDeductions float64
	NetPay          float64
	PaymentDate     time.Time
}

// MoneyField identifies one of the monetary fields of a Record.
type MoneyField int

const (
	FieldBaseSalary MoneyField = iota + 1
	FieldBonus
	FieldBenefits
	FieldOtherEarnings
	FieldDeductionsINSS
	FieldDeductionsIRRF
	FieldOtherDeductions
	FieldNetPay
)

// String returns the dataset column name for the field.
func (f MoneyField) String() string {
	switch f {
	case FieldBaseSalary:
		return "base_salary"
	case FieldBonus:
		return "bonus"
	case FieldBenefits:
		return "benefits_vt_vr"
	case FieldOtherEarnings:
		return "other_earnings"
	case FieldDeductionsINSS:
		return "deductions_inss"
	case FieldDeductionsIRRF:
		return "deductions_irrf"
	case FieldOtherDeductions:
		return "other_deductions"
	case FieldNetPay:
		return "net_pay"
	}
	return "unknown"
}

// Amount returns the value of the field on the given record.
func (f MoneyField) Amount(r *Record) float64 {
	switch f {
	case FieldBaseSalary:
		return r.BaseSalary
	case FieldBonus:
		return r.Bonus
	case FieldBenefits:
		return r.BenefitsVTVR
	case FieldOtherEarnings:
		return r.OtherEarnings
	case FieldDeductionsINSS:
		return r.DeductionsINSS
	case FieldDeductionsIRRF:
		return r.DeductionsIRRF
	case FieldOtherDeductions:
		return r.OtherDeductions
	case FieldNetPay:
		return r.NetPay
	}
	return 0
}

// Intent is the coarse category of a query's purpose.
type Intent int

const (
	// IntentPayroll is a lookup against the payroll dataset.
	IntentPayroll Intent = iota + 1
	// IntentStatistics asks for aggregates across the dataset.
	IntentStatistics
	// IntentHelp asks what the assistant can do.
	IntentHelp
	// IntentGeneral is everything else: greetings, chatter, the fallback.
	IntentGeneral
)

// String returns the wire name of the intent.
func (i Intent) String() string {
	switch i {
	case IntentPayroll:
		return "payroll_query"
	case IntentStatistics:
		return "statistics"
	case IntentHelp:
		return "help"
	case IntentGeneral:
		return "general_chat"
	}
	return "unknown"
}

// FilterSet holds structured constraints extracted from a free-text query.
// A zero value for a field means the filter was not detected; there are
// no placeholders.
type FilterSet struct {
	Name       string
	Competency string // normalized "YYYY-MM"
	EmployeeID string
	Field      MoneyField // 0 when no field of interest was detected
}

// Empty reports whether no filter was extracted.
func (f FilterSet) Empty() bool {
	return f.Name == "" && f.Competency == "" && f.EmployeeID == "" && f.Field == 0
}

// HasConstraints reports whether the set carries at least one record-narrowing
// filter. Field of interest shapes the answer, not the candidate set.
func (f FilterSet) HasConstraints() bool {
	return f.Name != "" || f.Competency != "" || f.EmployeeID != ""
}

// Matches reports whether a record satisfies every present constraint.
// Matching is exact equality on the stored values; normalization happens at
// extraction time, not here.
func (f FilterSet) Matches(r *Record) bool {
	if f.Name != "" && r.Name != f.Name {
		return false
	}
	if f.Competency != "" && r.Competency != f.Competency {
		return false
	}
	if f.EmployeeID != "" && r.EmployeeID != f.EmployeeID {
		return false
	}
	return true
}

// RetrievalMode flags which path the ranker took to produce its results.
type RetrievalMode int

const (
	// RetrievalSemantic ranks the full corpus by similarity; no filters fired.
	RetrievalSemantic RetrievalMode = iota + 1
	// RetrievalFiltered ranks only records that passed the extracted filters.
	RetrievalFiltered
	// RetrievalFallback means filters excluded every record and the ranker
	// degraded to full-corpus similarity ranking.
	RetrievalFallback
	// RetrievalNoResults means nothing cleared the relevance threshold.
	RetrievalNoResults
)

// String returns a short name for the mode.
func (m RetrievalMode) String() string {
	switch m {
	case RetrievalSemantic:
		return "semantic"
	case RetrievalFiltered:
		return "filtered"
	case RetrievalFallback:
		return "fallback"
	case RetrievalNoResults:
		return "no_results"
	}
	return "unknown"
}

// SearchResult is one ranked piece of evidence: a record, its position in the
// corpus (the citation index), and its relevance score.
type SearchResult struct {
	Record *Record
	Index  int
	Score  float32
}

// TurnMetadata records how the pipeline handled one query.
type TurnMetadata struct {
	Intent     Intent
	Confidence float64
	Mode       RetrievalMode
	Sources    []int // corpus indices of cited records
	Filters    FilterSet
	Suspicious bool
	Timestamp  time.Time
}

// Turn is one user/assistant exchange plus its pipeline metadata.
type Turn struct {
	UserText     string
	ResponseText string
	Metadata     TurnMetadata
}
