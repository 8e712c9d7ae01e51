package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := IDFromContent("folha de pagamento")
		b := IDFromContent("folha de pagamento")
		assert.Equal(t, a, b)
	})

	t.Run("different content different id", func(t *testing.T) {
		a := IDFromContent("ana souza 2025-03")
		b := IDFromContent("bruno lima 2025-03")
		assert.NotEqual(t, a, b)
	})
}

func TestFilterSetEmpty(t *testing.T) {
	assert.True(t, FilterSet{}.Empty())
	assert.False(t, FilterSet{Name: "Ana"}.Empty())
	assert.False(t, FilterSet{Field: FieldNetPay}.Empty())
}

func TestFilterSetHasConstraints(t *testing.T) {
	// A field of interest alone does not narrow the candidate set.
	assert.False(t, FilterSet{Field: FieldBonus}.HasConstraints())
	assert.True(t, FilterSet{Competency: "2025-03"}.HasConstraints())
	assert.True(t, FilterSet{EmployeeID: "E001"}.HasConstraints())
}

func TestFilterSetMatches(t *testing.T) {
	record := &Record{
		EmployeeID: "E001",
		Name:       "Ana Souza",
		Competency: "2025-03",
	}

	t.Run("all present filters match", func(t *testing.T) {
		f := FilterSet{Name: "Ana Souza", Competency: "2025-03"}
		assert.True(t, f.Matches(record))
	})

	t.Run("any mismatch excludes", func(t *testing.T) {
		f := FilterSet{Name: "Ana Souza", Competency: "2025-04"}
		assert.False(t, f.Matches(record))
	})

	t.Run("absent filters are ignored", func(t *testing.T) {
		f := FilterSet{EmployeeID: "E001"}
		assert.True(t, f.Matches(record))
	})

	t.Run("empty set matches everything", func(t *testing.T) {
		assert.True(t, FilterSet{}.Matches(record))
	})
}

func TestMoneyFieldAmount(t *testing.T) {
	record := &Record{
		BaseSalary:      8000,
		Bonus:           500,
		BenefitsVTVR:    400,
		OtherEarnings:   100,
		DeductionsINSS:  880,
		DeductionsIRRF:  620,
		OtherDeductions: 50,
		NetPay:          7450,
	}

	assert.Equal(t, 8000.0, FieldBaseSalary.Amount(record))
	assert.Equal(t, 500.0, FieldBonus.Amount(record))
	assert.Equal(t, 880.0, FieldDeductionsINSS.Amount(record))
	assert.Equal(t, 7450.0, FieldNetPay.Amount(record))
}

func TestIntentString(t *testing.T) {
	assert.Equal(t, "payroll_query", IntentPayroll.String())
	assert.Equal(t, "statistics", IntentStatistics.String())
	assert.Equal(t, "help", IntentHelp.String())
	assert.Equal(t, "general_chat", IntentGeneral.String())
}

func TestRetrievalModeString(t *testing.T) {
	assert.Equal(t, "filtered", RetrievalFiltered.String())
	assert.Equal(t, "fallback", RetrievalFallback.String())
	assert.Equal(t, "no_results", RetrievalNoResults.String())
	assert.Equal(t, "semantic", RetrievalSemantic.String())
}
