package mock

import (
	"context"
	"testing"

	"github.com/poiesic/folhabot/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleChunk = `Funcionário: Ana Souza (ID: E001)
Competência: março de 2025 (2025-03)
Salário Base: R$ 8.000,00
Bônus: R$ 500,00
Benefícios (VT/VR): R$ 400,00
Outros Proventos: R$ 0,00
Desconto INSS: R$ 880,00
Desconto IRRF: R$ 620,00
Outros Descontos: R$ 0,00
Pagamento Líquido: R$ 9.000,00
Data de Pagamento: 28/03/2025`

func userMessage(text string) []ai.Message {
	return []ai.Message{{Role: ai.RoleUser, Content: text}}
}

func TestMockGeneratorGreeting(t *testing.T) {
	g := NewMockGenerator()

	response, err := g.GenerateResponse(context.Background(), userMessage("Olá, bom dia!"), nil)
	require.NoError(t, err)
	assert.Contains(t, response, "assistente de folha de pagamento")
	assert.Equal(t, 1, g.CallCount())
}

func TestMockGeneratorHelp(t *testing.T) {
	g := NewMockGenerator()

	response, err := g.GenerateResponse(context.Background(), userMessage("preciso de ajuda"), nil)
	require.NoError(t, err)
	assert.Contains(t, response, "Posso ajudar você com")
}

func TestMockGeneratorEvidence(t *testing.T) {
	g := NewMockGenerator()
	evidence := []ai.Evidence{{Text: sampleChunk, Source: 0, Score: 0.92}}

	t.Run("field-specific lines", func(t *testing.T) {
		response, err := g.GenerateResponse(context.Background(),
			userMessage("Qual o salário líquido da Ana em março de 2025?"), evidence)
		require.NoError(t, err)
		assert.Contains(t, response, "Ana Souza")
		assert.Contains(t, response, "Pagamento Líquido: R$ 9.000,00")
		assert.Contains(t, response, "Fonte: linhas 2")
	})

	t.Run("summary when no field named", func(t *testing.T) {
		response, err := g.GenerateResponse(context.Background(),
			userMessage("Mostre os dados da Ana"), evidence)
		require.NoError(t, err)
		assert.Contains(t, response, "Salário Base: R$ 8.000,00")
		assert.Contains(t, response, "Bônus: R$ 500,00")
	})

	t.Run("multiple results are numbered", func(t *testing.T) {
		response, err := g.GenerateResponse(context.Background(),
			userMessage("pagamentos de março"),
			[]ai.Evidence{
				{Text: sampleChunk, Source: 0},
				{Text: sampleChunk, Source: 3},
			})
		require.NoError(t, err)
		assert.Contains(t, response, "Encontrei 2 resultados")
		assert.Contains(t, response, "1. Funcionário")
		assert.Contains(t, response, "2. Funcionário")
		assert.Contains(t, response, "Fonte: linhas 2, 5")
	})
}

func TestMockGeneratorInjectedBehavior(t *testing.T) {
	g := NewMockGenerator()
	g.GenerateResponseFunc = func(ctx context.Context, messages []ai.Message, evidence []ai.Evidence) (string, error) {
		return "injected", nil
	}

	response, err := g.GenerateResponse(context.Background(), userMessage("qualquer coisa"), nil)
	require.NoError(t, err)
	assert.Equal(t, "injected", response)
}
