package corpus

import (
	"testing"
	"time"

	"github.com/poiesic/folhabot/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecords() []core.Record {
	return []core.Record{
		{
			EmployeeID: "E001", Name: "Ana Souza", Competency: "2025-01",
			BaseSalary: 8000, Bonus: 500, BenefitsVTVR: 400, OtherEarnings: 0,
			DeductionsINSS: 880, DeductionsIRRF: 620, OtherDeductions: 0, NetPay: 7400,
			PaymentDate: time.Date(2025, 1, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			EmployeeID: "E001", Name: "Ana Souza", Competency: "2025-03",
			BaseSalary: 8000, Bonus: 1500, BenefitsVTVR: 400, OtherEarnings: 0,
			DeductionsINSS: 880, DeductionsIRRF: 620, OtherDeductions: 0, NetPay: 9000,
			PaymentDate: time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			EmployeeID: "E002", Name: "Bruno Lima", Competency: "2025-03",
			BaseSalary: 6000, Bonus: 0, BenefitsVTVR: 400, OtherEarnings: 200,
			DeductionsINSS: 660, DeductionsIRRF: 310, OtherDeductions: 30, NetPay: 5600,
			PaymentDate: time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC),
		},
	}
}

func testCorpus(t *testing.T) *Corpus {
	t.Helper()
	c, err := New(testRecords())
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	t.Run("valid records", func(t *testing.T) {
		c := testCorpus(t)
		assert.Equal(t, 3, c.Len())
		assert.Equal(t, "Ana Souza", c.Record(0).Name)
	})

	t.Run("invalid record is rejected with its index", func(t *testing.T) {
		records := testRecords()
		records[1].Competency = "março"
		_, err := New(records)
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrInvalidCompetency)
		assert.Contains(t, err.Error(), "record 1")
	})

	t.Run("empty corpus is allowed", func(t *testing.T) {
		c, err := New(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("input slice is copied", func(t *testing.T) {
		records := testRecords()
		c, err := New(records)
		require.NoError(t, err)

		records[0].Name = "Mutated"
		assert.Equal(t, "Ana Souza", c.Record(0).Name)
	})
}

func TestNames(t *testing.T) {
	c := testCorpus(t)
	assert.Equal(t, []string{"Ana Souza", "Bruno Lima"}, c.Names())
}

func TestMostRecentYear(t *testing.T) {
	t.Run("populated corpus", func(t *testing.T) {
		assert.Equal(t, 2025, testCorpus(t).MostRecentYear())
	})

	t.Run("empty corpus", func(t *testing.T) {
		c, err := New(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, c.MostRecentYear())
	})
}

func TestSelect(t *testing.T) {
	c := testCorpus(t)

	t.Run("by name substring", func(t *testing.T) {
		assert.Equal(t, []int{0, 1}, c.Select(Criteria{Name: "ana"}))
	})

	t.Run("by competency", func(t *testing.T) {
		assert.Equal(t, []int{1, 2}, c.Select(Criteria{Competency: "2025-03"}))
	})

	t.Run("by employee id", func(t *testing.T) {
		assert.Equal(t, []int{2}, c.Select(Criteria{EmployeeID: "E002"}))
	})

	t.Run("by net pay range", func(t *testing.T) {
		min := 7000.0
		max := 9500.0
		assert.Equal(t, []int{0, 1}, c.Select(Criteria{MinNetPay: &min, MaxNetPay: &max}))
	})

	t.Run("combined criteria", func(t *testing.T) {
		assert.Equal(t, []int{1}, c.Select(Criteria{Name: "Ana", Competency: "2025-03"}))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, c.Select(Criteria{Name: "Carla"}))
	})
}
