package mock

import (
	"context"
	"fmt"
	"strings"

	"github.com/poiesic/folhabot/ai"
)

// MockGenerator is a test double for ai.Generator that also serves as the
// offline demonstration backend: it assembles a readable Portuguese answer
// from the evidence chunks instead of calling a model.
type MockGenerator struct {
	// GenerateResponseFunc is called by GenerateResponse if set.
	// If nil, uses the default template behavior.
	GenerateResponseFunc func(ctx context.Context, messages []ai.Message, evidence []ai.Evidence) (string, error)

	callCount int
}

// NewMockGenerator creates a mock generator with default template behavior.
// Note: Returns concrete type to allow test assertions via GetMockGenerator().
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// GenerateResponse produces a canned or evidence-derived answer.
func (m *MockGenerator) GenerateResponse(ctx context.Context, messages []ai.Message, evidence []ai.Evidence) (string, error) {
	m.callCount++

	if m.GenerateResponseFunc != nil {
		return m.GenerateResponseFunc(ctx, messages, evidence)
	}

	query := ""
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == ai.RoleUser {
			query = strings.ToLower(messages[i].Content)
			break
		}
	}

	if len(evidence) > 0 {
		return evidenceResponse(evidence, query), nil
	}

	switch {
	case containsAny(query, "olá", "ola", "oi", "bom dia", "boa tarde", "boa noite"):
		return "Olá! Sou seu assistente de folha de pagamento. Posso ajudar você com informações sobre salários, bônus, descontos e datas de pagamento. Como posso ajudar?", nil
	case containsAny(query, "ajuda", "help", "o que você faz", "o que voce faz"):
		return helpResponse, nil
	case containsAny(query, "obrigado", "obrigada", "valeu"):
		return "Por nada! Fico feliz em ajudar. Se precisar de mais alguma informação, é só perguntar!", nil
	}

	return "Entendo sua pergunta. Para consultas sobre folha de pagamento, posso buscar informações específicas por nome, competência, ou período. Poderia reformular sua pergunta incluindo um nome de funcionário ou período?", nil
}

// CallCount returns the number of times GenerateResponse was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.GenerateResponseFunc = nil
}

const helpResponse = `Posso ajudar você com:
• Consultas sobre folha de pagamento de funcionários
• Informações sobre salários, bônus e descontos
• Dados de competência específica (ex: janeiro/2025)
• Comparações entre períodos
• Estatísticas gerais

Tente perguntar algo como: "Qual o salário líquido da Ana em março de 2025?" ou "Mostre os pagamentos do Bruno Lima".`

// lineSelectors maps query keywords to the chunk line labels worth quoting.
var lineSelectors = []struct {
	keywords []string
	label    string
}{
	{[]string{"líquido", "liquido", "net", "total"}, "Pagamento Líquido:"},
	{[]string{"salário", "salario", "base"}, "Salário Base:"},
	{[]string{"bônus", "bonus"}, "Bônus:"},
	{[]string{"inss"}, "Desconto INSS:"},
	{[]string{"irrf", "imposto"}, "Desconto IRRF:"},
	{[]string{"benefício", "beneficio", "vt", "vr"}, "Benefícios (VT/VR):"},
	{[]string{"data", "quando", "pagamento"}, "Data de Pagamento:"},
}

// summaryLabels are quoted when the query names no specific field.
var summaryLabels = []string{"Salário Base:", "Bônus:", "Pagamento Líquido:"}

// evidenceResponse builds a structured answer from chunk texts, quoting the
// lines the query asked about and citing the source rows.
func evidenceResponse(evidence []ai.Evidence, query string) string {
	if len(evidence) > 3 {
		evidence = evidence[:3]
	}

	var wanted []string
	for _, sel := range lineSelectors {
		if containsAny(query, sel.keywords...) {
			wanted = append(wanted, sel.label)
		}
	}

	entries := make([]string, 0, len(evidence))
	for _, ev := range evidence {
		entries = append(entries, formatEvidence(ev.Text, wanted))
	}

	var b strings.Builder
	if len(entries) == 1 {
		b.WriteString("Encontrei a seguinte informação:\n\n")
		b.WriteString(entries[0])
	} else {
		fmt.Fprintf(&b, "Encontrei %d resultados:\n\n", len(entries))
		for i, entry := range entries {
			if i > 0 {
				b.WriteString("\n\n")
			}
			fmt.Fprintf(&b, "%d. %s", i+1, entry)
		}
	}

	rows := make([]string, 0, len(evidence))
	for _, ev := range evidence {
		// +2: CSV header plus 1-based row numbering, matching the dataset file
		rows = append(rows, fmt.Sprintf("%d", ev.Source+2))
	}
	fmt.Fprintf(&b, "\n\nFonte: linhas %s do dataset de folha de pagamento.", strings.Join(rows, ", "))

	return b.String()
}

// formatEvidence picks the relevant lines out of a chunk text.
func formatEvidence(chunkText string, wanted []string) string {
	lines := strings.Split(chunkText, "\n")

	parts := make([]string, 0, len(wanted)+1)
	// The first line identifies the employee and competency.
	if len(lines) > 0 {
		parts = append(parts, strings.TrimSpace(lines[0]))
	}

	labels := wanted
	if len(labels) == 0 {
		labels = summaryLabels
	}
	for _, label := range labels {
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, label) {
				parts = append(parts, "• "+line)
				break
			}
		}
	}

	return strings.Join(parts, "\n")
}

func containsAny(text string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
