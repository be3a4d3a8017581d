package pegtree

import (
	"github.com/google/uuid"
	"github.com/mna/pegtree/internal/telemetry"
)

// Outcome is the public result of a Parse call: exactly one of
// Matched or Failed is meaningful, selected by Ok.
type Outcome[U any] struct {
	Ok       bool
	Value    U
	Reason   Reason
	Position Location
}

// Matched builds a successful Outcome.
func Matched[U any](value U) Outcome[U] {
	return Outcome[U]{Ok: true, Value: value}
}

// Failed builds a failed Outcome.
func Failed[U any](reason Reason, pos Location) Outcome[U] {
	return Outcome[U]{Ok: false, Reason: reason, Position: pos}
}

// Parse resolves the grammar's start rule, runs it against input, and
// enforces that the whole input was consumed - spec.md §4.3's
// top-level driver, grounded on the teacher's GrammarFromBytes/
// GrammarFromFile orchestration shape (go/api.go), which likewise
// resolves inputs through a single entry point down to one result.
func Parse[U any](g *Grammar[U], input string, cfg Config) Outcome[U] {
	runes := []rune(input)
	s := newState(runes)

	start, ok := g.GetRule(g.GetStartRule())
	if !ok {
		return Failed[U](noStartRule(), Location{})
	}

	runID := ""
	log := telemetry.New(cfg.Debug, nil)
	if log.Enabled() {
		runID = uuid.New().String()
		log.Trace(runID, "parse.start", map[string]any{"rule": g.GetStartRule(), "len": len(runes)})
	}

	ctx := &evalCtx[U]{grammar: g, maxDepth: cfg.maxDepth(), log: log, runID: runID}

	tok, reason := ctx.eval(start, s, 0)
	if reason != nil {
		// reason.Offset is where the failure was actually observed,
		// not s.pos - the latter has already been rewound by whatever
		// composite operators backtracked on the way back up.
		pos := resolvePosition(runes, reason.Offset)
		if log.Enabled() {
			log.Trace(runID, "parse.fail", map[string]any{"pos": pos})
		}
		return Failed[U](*reason, pos)
	}

	if s.pos != len(runes) {
		sample := ctx.sampleAt(s, s.pos)
		reason := byExpectation(Expected{Kind: ExpectedEndOfInput}, sample, s.pos)
		pos := resolvePosition(runes, s.pos)
		if log.Enabled() {
			log.Trace(runID, "parse.residual", map[string]any{"pos": pos})
		}
		return Failed[U](reason, pos)
	}

	var value U
	if g.adapter != nil {
		value = g.adapter(tok)
	}
	if log.Enabled() {
		log.Trace(runID, "parse.ok", map[string]any{"pos": s.pos})
	}
	return Matched[U](value)
}
