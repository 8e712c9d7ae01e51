package corpus

import (
	"fmt"
	"sort"
	"strings"

	"github.com/poiesic/folhabot/core"
)

// Statistics summarizes the dataset for statistics-intent answers.
type Statistics struct {
	TotalRecords    int
	UniqueEmployees int
	Competencies    []string
	AvgNetPay       float64
	MaxNetPay       float64
	MinNetPay       float64
	TotalPaid       float64
}

// Statistics computes aggregates over the whole corpus.
// An empty corpus yields the zero value.
func (c *Corpus) Statistics() Statistics {
	if len(c.records) == 0 {
		return Statistics{}
	}

	employees := make(map[string]bool)
	competencies := make(map[string]bool)

	stats := Statistics{
		TotalRecords: len(c.records),
		MinNetPay:    c.records[0].NetPay,
	}

	for i := range c.records {
		r := &c.records[i]
		employees[r.EmployeeID] = true
		competencies[r.Competency] = true

		stats.TotalPaid += r.NetPay
		if r.NetPay > stats.MaxNetPay {
			stats.MaxNetPay = r.NetPay
		}
		if r.NetPay < stats.MinNetPay {
			stats.MinNetPay = r.NetPay
		}
	}

	stats.UniqueEmployees = len(employees)
	stats.AvgNetPay = stats.TotalPaid / float64(stats.TotalRecords)

	stats.Competencies = make([]string, 0, len(competencies))
	for competency := range competencies {
		stats.Competencies = append(stats.Competencies, competency)
	}
	sort.Strings(stats.Competencies)

	return stats
}

// Format renders the statistics as a Portuguese answer.
func (s Statistics) Format() string {
	var b strings.Builder
	b.WriteString("Estatísticas do dataset de folha de pagamento:\n\n")
	fmt.Fprintf(&b, "• Total de Registros: %d\n", s.TotalRecords)
	fmt.Fprintf(&b, "• Funcionários Únicos: %d\n", s.UniqueEmployees)
	fmt.Fprintf(&b, "• Competências: %s\n", strings.Join(s.Competencies, ", "))
	fmt.Fprintf(&b, "• Pagamento Médio: %s\n", core.FormatBRL(s.AvgNetPay))
	fmt.Fprintf(&b, "• Maior Pagamento: %s\n", core.FormatBRL(s.MaxNetPay))
	fmt.Fprintf(&b, "• Menor Pagamento: %s\n", core.FormatBRL(s.MinNetPay))
	fmt.Fprintf(&b, "• Total Pago (período): %s\n", core.FormatBRL(s.TotalPaid))
	return b.String()
}
