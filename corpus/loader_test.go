package corpus

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = `employee_id,name,competency,base_salary,bonus,benefits_vt_vr,other_earnings,deductions_inss,deductions_irrf,other_deductions,net_pay,payment_date
E001, Ana Souza ,2025-03,8000.00,1500.00,400.00,0.00,880.00,620.00,0.00,9000.00,2025-03-28
E002,Bruno Lima,2025-03,6000.00,0.00,400.00,200.00,660.00,310.00,30.00,5600.00,2025-03-28
`

func TestLoad(t *testing.T) {
	c, err := Load(strings.NewReader(testCSV))
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	ana := c.Record(0)
	assert.Equal(t, "E001", ana.EmployeeID)
	// Whitespace around text fields is trimmed.
	assert.Equal(t, "Ana Souza", ana.Name)
	assert.Equal(t, "2025-03", ana.Competency)
	assert.Equal(t, 9000.0, ana.NetPay)
	assert.Equal(t, time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC), ana.PaymentDate)
}

func TestLoadMissingColumns(t *testing.T) {
	csv := "employee_id,name,competency\nE001,Ana,2025-03\n"
	_, err := Load(strings.NewReader(csv))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumns)
	assert.Contains(t, err.Error(), "net_pay")
}

func TestLoadBadAmount(t *testing.T) {
	csv := strings.Replace(testCSV, "8000.00", "oito mil", 1)
	_, err := Load(strings.NewReader(csv))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoadFailed)
	assert.Contains(t, err.Error(), "row 2")
}

func TestLoadInvalidRecord(t *testing.T) {
	csv := strings.Replace(testCSV, "2025-03,8000.00", "03/2025,8000.00", 1)
	_, err := Load(strings.NewReader(csv))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoadFailed)
}

func TestLoadUnparseablePaymentDate(t *testing.T) {
	// Bad dates are tolerated; the record keeps a zero date.
	csv := strings.Replace(testCSV, "2025-03-28\nE002", "algum dia\nE002", 1)
	c, err := Load(strings.NewReader(csv))
	require.NoError(t, err)
	assert.True(t, c.Record(0).PaymentDate.IsZero())
}

func TestLoadEmptyDataset(t *testing.T) {
	header := testCSV[:strings.Index(testCSV, "\n")+1]
	c, err := Load(strings.NewReader(header))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}
