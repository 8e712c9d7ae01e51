package main

import (
	"context"
	"flag"
	"strings"
	"testing"

	"github.com/poiesic/folhabot"
	"github.com/poiesic/folhabot/ai/mock"
	"github.com/poiesic/folhabot/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const testCSV = `employee_id,name,competency,payment_date,base_salary,bonus,other_earnings,benefits_vt_vr,deductions_inss,deductions_irrf,other_deductions,net_pay
E001,Ana Souza,2025-01,2025-01-28,8000.00,0.00,0.00,0.00,880.00,620.00,0.00,6500.00
E001,Ana Souza,2025-03,2025-03-28,8000.00,2000.00,0.00,0.00,880.00,620.00,0.00,9000.00
E002,Bruno Lima,2025-03,2025-03-28,6500.00,0.00,0.00,0.00,715.00,410.00,0.00,5375.00
`

func testContext(t *testing.T, args map[string]string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for name, value := range args {
		set.String(name, value, "")
	}
	return cli.NewContext(cli.NewApp(), set, nil)
}

func testEngine(t *testing.T) *folhabot.Engine {
	t.Helper()
	payroll, err := corpus.Load(strings.NewReader(testCSV))
	require.NoError(t, err)
	engine, err := folhabot.NewEngine(context.Background(), payroll, mock.NewMockProvider())
	require.NoError(t, err)
	return engine
}

func TestSetupLogLevel(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"WARN", false},
		{"error", false},
		{"verbose", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			err := setup(testContext(t, map[string]string{"log-level": tt.level}))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRespondRoutesQueries(t *testing.T) {
	ctx := context.Background()
	engine := testEngine(t)

	t.Run("regular query goes through the pipeline", func(t *testing.T) {
		answer, err := respond(ctx, engine, "Olá, bom dia!")
		require.NoError(t, err)
		assert.Contains(t, answer, "Olá")
	})

	t.Run("adjustment command mutates the corpus", func(t *testing.T) {
		answer, err := respond(ctx, engine, "Reajuste os salários de 2026 em 8%")
		require.NoError(t, err)
		assert.Contains(t, answer, "2026")
		assert.Equal(t, 6, engine.Corpus().Len())
	})

	t.Run("malformed adjustment command fails", func(t *testing.T) {
		_, err := respond(ctx, engine, "reajuste os salários")
		assert.Error(t, err)
	})
}
