package netgen

import (
	"fmt"

	"go.uber.org/zap"
)

// maxWarningsPerKind is how many warnings of one kind are delivered before
// the rest are suppressed.
const maxWarningsPerKind = 5

// WarningKind classifies warnings for rate limiting.
type WarningKind int

const (
	// WarnAgg: a product approaches or exceeds MaxAgg.
	WarnAgg WarningKind = iota
	// WarnStoich: a product approaches or exceeds MaxStoich.
	WarnStoich
	// WarnSpecies: the species count approaches or reaches MaxSpecies.
	WarnSpecies
	// WarnRejected: a malformed rule variant or product was rejected.
	WarnRejected
)

func (k WarningKind) String() string {
	switch k {
	case WarnAgg:
		return "max_agg"
	case WarnStoich:
		return "max_stoich"
	case WarnSpecies:
		return "max_species"
	case WarnRejected:
		return "rejected"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning is one rate-limited diagnostic.
type Warning struct {
	Kind    WarningKind
	Rule    string
	Message string

	// Suppressed is set on the single notice that further warnings of this
	// kind are dropped.
	Suppressed bool
}

// warner delivers the first maxWarningsPerKind warnings of each kind, then
// one suppression notice, then nothing.
type warner struct {
	counts map[WarningKind]int
	sink   func(Warning)
	log    *zap.Logger
}

func newWarner(sink func(Warning), log *zap.Logger) *warner {
	return &warner{counts: make(map[WarningKind]int), sink: sink, log: log}
}

func (w *warner) warn(kind WarningKind, rule, format string, args ...any) {
	n := w.counts[kind]
	w.counts[kind]++
	if n > maxWarningsPerKind {
		return
	}
	wr := Warning{Kind: kind, Rule: rule, Message: fmt.Sprintf(format, args...)}
	if n == maxWarningsPerKind {
		wr.Message = kind.String() + ": further occurrences suppressed"
		wr.Suppressed = true
	}
	w.log.Warn(wr.Message, zap.Stringer("kind", kind), zap.String("rule", rule))
	if w.sink != nil {
		w.sink(wr)
	}
}
