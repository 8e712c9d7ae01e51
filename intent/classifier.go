package intent

import (
	"log/slog"
	"regexp"

	"github.com/poiesic/folhabot/core"
)

// DefaultConfidenceFloor is the minimum winning confidence below which a
// query is routed to the general-chat intent.
const DefaultConfidenceFloor = 0.1

// rule is one intent's indicator table: a fixed ordered list of regular
// expressions evaluated against the normalized query. Confidence is the
// share of distinct indicators that matched, clipped to [0, 1].
//
// Queries are normalized with core.NormalizeQuery before matching, so the
// patterns are written lower-case and diacritic-free ("marco", not "março").
type rule struct {
	intent     core.Intent
	indicators []*regexp.Regexp
}

// rules lists intents in tie-break priority order: payroll-specific signal
// is more informative than generic chat signal, so it wins ties.
var rules = []rule{
	{
		intent: core.IntentPayroll,
		indicators: []*regexp.Regexp{
			regexp.MustCompile(`\b(salario|salarios|pagamento|pagamentos|liquido|holerite)\b`),
			regexp.MustCompile(`\bbonus\b`),
			regexp.MustCompile(`\b(inss|irrf|desconto|descontos|imposto)\b`),
			regexp.MustCompile(`\b(beneficio|beneficios|vt|vr)\b`),
			regexp.MustCompile(`\b(competencia|mes)\b`),
			regexp.MustCompile(`\b(janeiro|fevereiro|marco|abril|maio|junho|julho|agosto|setembro|outubro|novembro|dezembro)\b`),
			regexp.MustCompile(`\b\d{4}-(0[1-9]|1[0-2])\b`),
			regexp.MustCompile(`\be\d{3}\b`),
		},
	},
	{
		intent: core.IntentStatistics,
		indicators: []*regexp.Regexp{
			regexp.MustCompile(`\b(estatistica|estatisticas|media|total|soma)\b`),
			regexp.MustCompile(`\b(quantos|quantas)\b`),
			regexp.MustCompile(`\b(todos|todas|geral)\b`),
			regexp.MustCompile(`\b(maior|menor|maximo|minimo)\b`),
		},
	},
	{
		intent: core.IntentHelp,
		indicators: []*regexp.Regexp{
			regexp.MustCompile(`\b(ajuda|help|como funciona)\b`),
			regexp.MustCompile(`\bo que voce faz\b`),
			regexp.MustCompile(`\b(pode fazer|consegue fazer)\b`),
		},
	},
	{
		intent: core.IntentGeneral,
		indicators: []*regexp.Regexp{
			regexp.MustCompile(`\b(ola|oi|bom dia|boa tarde|boa noite)\b`),
			regexp.MustCompile(`\b(obrigado|obrigada|valeu|tchau)\b`),
			regexp.MustCompile(`\b(tudo bem|como vai)\b`),
		},
	},
}

// Classifier routes queries to intents by scoring each intent's indicator
// table. It is deterministic and stateless.
type Classifier struct {
	floor  float64
	logger *slog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier) error

// WithConfidenceFloor sets the minimum winning confidence. A winner below
// the floor is demoted to the general-chat intent.
func WithConfidenceFloor(floor float64) Option {
	return func(c *Classifier) error {
		if floor < 0 || floor >= 1 {
			return ErrInvalidConfidenceFloor
		}
		c.floor = floor
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewClassifier creates a classifier with the default confidence floor.
func NewClassifier(opts ...Option) (*Classifier, error) {
	c := &Classifier{
		floor:  DefaultConfidenceFloor,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Classify scores the query against every intent table and returns the best
// intent with its confidence in [0, 1]. Classification always returns a
// value; an unrecognizable query is general chat with confidence 0.
func (c *Classifier) Classify(query string) (core.Intent, float64) {
	normalized := core.NormalizeQuery(query)

	best := core.IntentGeneral
	bestConfidence := 0.0
	generalConfidence := 0.0

	// rules is in priority order, so a strict > keeps the higher-priority
	// intent on ties.
	for _, r := range rules {
		matched := 0
		for _, indicator := range r.indicators {
			if indicator.MatchString(normalized) {
				matched++
			}
		}
		confidence := float64(matched) / float64(len(r.indicators))
		if confidence > 1 {
			confidence = 1
		}

		if r.intent == core.IntentGeneral {
			generalConfidence = confidence
		}
		if confidence > bestConfidence {
			best = r.intent
			bestConfidence = confidence
		}
	}

	if bestConfidence < c.floor {
		c.logger.Debug("no intent cleared the confidence floor",
			"best", best.String(), "confidence", bestConfidence, "floor", c.floor)
		return core.IntentGeneral, generalConfidence
	}

	c.logger.Debug("query classified", "intent", best.String(), "confidence", bestConfidence)
	return best, bestConfidence
}

// Floor returns the configured confidence floor.
func (c *Classifier) Floor() float64 {
	return c.floor
}
