package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics(t *testing.T) {
	c := testCorpus(t)
	stats := c.Statistics()

	assert.Equal(t, 3, stats.TotalRecords)
	assert.Equal(t, 2, stats.UniqueEmployees)
	assert.Equal(t, []string{"2025-01", "2025-03"}, stats.Competencies)
	assert.Equal(t, 9000.0, stats.MaxNetPay)
	assert.Equal(t, 5600.0, stats.MinNetPay)
	assert.Equal(t, 22000.0, stats.TotalPaid)
	assert.InDelta(t, 7333.33, stats.AvgNetPay, 0.01)
}

func TestStatisticsEmptyCorpus(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)

	stats := c.Statistics()
	assert.Equal(t, 0, stats.TotalRecords)
	assert.Equal(t, 0.0, stats.TotalPaid)
}

func TestStatisticsFormat(t *testing.T) {
	text := testCorpus(t).Statistics().Format()

	assert.Contains(t, text, "Total de Registros: 3")
	assert.Contains(t, text, "Funcionários Únicos: 2")
	assert.Contains(t, text, "Competências: 2025-01, 2025-03")
	assert.Contains(t, text, "Maior Pagamento: R$ 9.000,00")
	assert.Contains(t, text, "Total Pago (período): R$ 22.000,00")
}
