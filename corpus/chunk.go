package corpus

import (
	"fmt"
	"strings"

	"github.com/poiesic/folhabot/core"
)

// ChunkText renders one record as the canonical natural-language description
// indexed for semantic search. Field labels and order are fixed; downstream
// consumers (the mock generator in particular) rely on the line labels.
func ChunkText(r *core.Record) string {
	year, month := core.CompetencyParts(r.Competency)

	lines := []string{
		fmt.Sprintf("Funcionário: %s (ID: %s)", r.Name, r.EmployeeID),
		fmt.Sprintf("Competência: %s de %s (%s)", core.MonthName(month), year, r.Competency),
		fmt.Sprintf("Salário Base: %s", core.FormatBRL(r.BaseSalary)),
		fmt.Sprintf("Bônus: %s", core.FormatBRL(r.Bonus)),
		fmt.Sprintf("Benefícios (VT/VR): %s", core.FormatBRL(r.BenefitsVTVR)),
		fmt.Sprintf("Outros Proventos: %s", core.FormatBRL(r.OtherEarnings)),
		fmt.Sprintf("Desconto INSS: %s", core.FormatBRL(r.DeductionsINSS)),
		fmt.Sprintf("Desconto IRRF: %s", core.FormatBRL(r.DeductionsIRRF)),
		fmt.Sprintf("Outros Descontos: %s", core.FormatBRL(r.OtherDeductions)),
		fmt.Sprintf("Pagamento Líquido: %s", core.FormatBRL(r.NetPay)),
	}

	if !r.PaymentDate.IsZero() {
		lines = append(lines, fmt.Sprintf("Data de Pagamento: %s", r.PaymentDate.Format("02/01/2006")))
	}

	return strings.Join(lines, "\n")
}

// ChunkTexts renders every record in corpus order.
func (c *Corpus) ChunkTexts() []string {
	texts := make([]string, len(c.records))
	for i := range c.records {
		texts[i] = ChunkText(&c.records[i])
	}
	return texts
}
