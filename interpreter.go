package pegtree

import (
	"unicode/utf8"

	"github.com/mna/pegtree/internal/telemetry"
)

// evalCtx bundles everything a single Parse call's recursive eval
// needs besides the operator and state: the grammar it's walking, how
// deep it's allowed to recurse, and where to send trace events. It is
// grounded directly on spec.md §4.2 - this file is "the bulk of the
// work" spec.md §2 calls out, and its shape intentionally mirrors the
// teacher's own backtracking discipline (go/vm.go's choice/commit/
// backtrack-frame handling) reinterpreted as direct recursion instead
// of a compiled stack machine, since spec.md rules out a VM/packrat
// architecture.
type evalCtx[U any] struct {
	grammar  *Grammar[U]
	maxDepth int
	log      telemetry.Logger
	runID    string
}

// eval is the interpreter: it dispatches on op's concrete variant,
// advances or rewinds s accordingly, and returns either a Token (on
// success) or a *Reason (on failure, with s already rewound to the
// operator's entry position - the "backtracking soundness" property
// spec.md §8 names first). The one exception is a Do whose callback
// returns Fail: s is left at the position its inner operator reached.
func (c *evalCtx[U]) eval(op Operator, s *state, depth int) (Token, *Reason) {
	if depth > c.maxDepth {
		r := byExpectation(Expected{Kind: ExpectedAnything, Description: "maximum recursion depth exceeded"}, c.sampleAt(s, s.pos), s.pos)
		return nil, &r
	}

	switch o := op.(type) {
	case anyOp:
		return c.evalAny(s)
	case litOp:
		return c.evalLit(o, s)
	case regexOp:
		return c.evalRegex(o, s)
	case lexOp:
		return c.evalLex(o, s, depth)
	case optOp:
		return c.evalOpt(o, s, depth)
	case plusOp:
		return c.evalPlus(o, s, depth)
	case starOp:
		return c.evalStar(o, s, depth)
	case andOp:
		return c.evalAnd(o, s, depth)
	case notOp:
		return c.evalNot(o, s, depth)
	case seqOp:
		return c.evalSeq(o, s, depth)
	case choiceOp:
		return c.evalChoice(o, s, depth)
	case doOp:
		return c.evalDo(o, s, depth)
	case predOp:
		return c.evalPred(o, s)
	case notPredOp:
		return c.evalNotPred(o, s)
	case labelOp:
		return c.evalLabel(o, s, depth)
	case callOp:
		return c.evalCall(o, s, depth)
	case callAsOp:
		return c.evalCallAs(o, s, depth)
	default:
		r := byExpectation(Expected{Kind: ExpectedAnything, Description: "unknown operator"}, c.sampleAt(s, s.pos), s.pos)
		return nil, &r
	}
}

func (c *evalCtx[U]) sampleAt(s *state, pos int) Sample {
	if pos >= len(s.input) {
		return gotEndOfInput()
	}
	return gotValue(s.input[pos])
}

// --- NextChar ---

func (c *evalCtx[U]) evalAny(s *state) (Token, *Reason) {
	start := s.pos
	ch := s.peek()
	if ch == eof {
		r := byExpectation(Expected{Kind: ExpectedAny}, gotEndOfInput(), start)
		return nil, &r
	}
	s.pos++
	return NewLexeme(string(ch), spanFrom(s.input, start, s.pos)), nil
}

// --- Match(s) ---

func (c *evalCtx[U]) evalLit(o litOp, s *state) (Token, *Reason) {
	start := s.pos
	want := []rune(o.value)
	if start+len(want) > len(s.input) {
		r := byExpectation(Expected{Kind: ExpectedValue, Description: o.value}, c.sampleAt(s, start), start)
		return nil, &r
	}
	for i, w := range want {
		if s.input[start+i] != w {
			r := byExpectation(Expected{Kind: ExpectedValue, Description: o.value}, c.sampleAt(s, start), start)
			return nil, &r
		}
	}
	s.pos = start + len(want)
	return NewLexeme(o.value, spanFrom(s.input, start, s.pos)), nil
}

// --- Regex(pat, desc) ---

func (c *evalCtx[U]) evalRegex(o regexOp, s *state) (Token, *Reason) {
	start := s.pos
	remaining := string(s.input[start:])
	loc := o.re.FindStringIndex(remaining)
	desc := o.desc
	if desc == "" {
		desc = o.re.String()
	}
	if loc == nil || loc[0] != 0 {
		r := byExpectation(Expected{Kind: ExpectedRegexMatch, Description: desc}, c.sampleAt(s, start), start)
		return nil, &r
	}
	matched := remaining[:loc[1]]
	s.pos = start + utf8.RuneCountInString(matched)
	return NewLexeme(matched, spanFrom(s.input, start, s.pos)), nil
}

// --- TextOf(a) ---

func (c *evalCtx[U]) evalLex(o lexOp, s *state, depth int) (Token, *Reason) {
	start := s.pos
	_, reason := c.eval(o.inner, s, depth+1)
	if reason != nil {
		return nil, reason
	}
	text := string(s.input[start:s.pos])
	return NewLexeme(text, spanFrom(s.input, start, s.pos)), nil
}

// --- Maybe(a) ---

func (c *evalCtx[U]) evalOpt(o optOp, s *state, depth int) (Token, *Reason) {
	start := s.pos
	tok, reason := c.eval(o.inner, s, depth+1)
	if reason != nil {
		s.restore(start)
		return NewLexeme("", spanFrom(s.input, start, start)), nil
	}
	return tok, nil
}

// --- Some(a) ---

func (c *evalCtx[U]) evalPlus(o plusOp, s *state, depth int) (Token, *Reason) {
	start := s.pos
	first, reason := c.eval(o.inner, s, depth+1)
	if reason != nil {
		return nil, reason
	}
	items := []Token{first}
	items = append(items, c.repeat(o.inner, s, depth)...)
	return NewChildren(items, spanFrom(s.input, start, s.pos)), nil
}

// --- Any(a) (zero or more) ---

func (c *evalCtx[U]) evalStar(o starOp, s *state, depth int) (Token, *Reason) {
	start := s.pos
	items := c.repeat(o.inner, s, depth)
	return NewChildren(items, spanFrom(s.input, start, s.pos)), nil
}

// repeat greedily matches inner until it fails, discarding the
// trailing failure and leaving s at the end of the last success -
// shared by Some and Any per spec.md §4.2: "repeatedly invoke the
// inner operator with the state advanced by the previous success
// until a failure occurs; the trailing failure's position is
// discarded."
func (c *evalCtx[U]) repeat(inner Operator, s *state, depth int) []Token {
	var items []Token
	for {
		before := s.pos
		tok, reason := c.eval(inner, s, depth+1)
		if reason != nil {
			s.restore(before)
			return items
		}
		items = append(items, tok)
		if s.pos == before {
			// inner matched without consuming input - looping
			// again would never terminate, so stop here, same as
			// a failing iteration.
			return items
		}
	}
}

// --- And(a) ---

func (c *evalCtx[U]) evalAnd(o andOp, s *state, depth int) (Token, *Reason) {
	start := s.pos
	_, reason := c.eval(o.inner, s, depth+1)
	s.restore(start)
	if reason != nil {
		return nil, reason
	}
	return NewLexeme("", spanFrom(s.input, start, start)), nil
}

// --- Not(a) ---

func (c *evalCtx[U]) evalNot(o notOp, s *state, depth int) (Token, *Reason) {
	start := s.pos
	_, reason := c.eval(o.inner, s, depth+1)
	s.restore(start)
	if reason == nil {
		r := byExpectation(Expected{Kind: ExpectedEndOfInput}, c.sampleAt(s, start), start)
		return nil, &r
	}
	return NewLexeme("", spanFrom(s.input, start, start)), nil
}

// --- Sequence([a1...an]) ---

func (c *evalCtx[U]) evalSeq(o seqOp, s *state, depth int) (Token, *Reason) {
	start := s.pos
	items := make([]Token, 0, len(o.items))
	for _, item := range o.items {
		tok, reason := c.eval(item, s, depth+1)
		if reason != nil {
			s.restore(start)
			return nil, reason
		}
		items = append(items, tok)
	}
	return NewChildren(items, spanFrom(s.input, start, s.pos)), nil
}

// --- Choice([a1...an]) ---

func (c *evalCtx[U]) evalChoice(o choiceOp, s *state, depth int) (Token, *Reason) {
	start := s.pos
	reasons := make([]Reason, 0, len(o.alts))
	for _, alt := range o.alts {
		s.restore(start)
		tok, reason := c.eval(alt, s, depth+1)
		if reason == nil {
			return tok, nil
		}
		reasons = append(reasons, *reason)
	}
	s.restore(start)
	r := followingNestedOperator(reasons, c.sampleAt(s, start), start)
	return nil, &r
}

// --- Action(a, f) ---

func (c *evalCtx[U]) evalDo(o doOp, s *state, depth int) (Token, *Reason) {
	start := s.pos
	tok, reason := c.eval(o.inner, s, depth+1)
	if reason != nil {
		return nil, reason
	}
	pos := resolvePosition(s.input, s.pos)

	var adapted any
	if c.grammar.adapter != nil {
		adapted = c.grammar.adapter(tok)
	} else {
		adapted = tok
	}

	verdict, value := o.fn(adapted, pos, s.labelView())
	switch verdict {
	case Pass:
		// If the callback's value is already a Token (e.g. one read
		// back from Labels, as in the label-replay scenario), return
		// it directly rather than burying it under another layer of
		// Custom - spec.md §8's S6 expects the replayed Lexeme
		// unchanged, not Custom(Lexeme(...)).
		if t, ok := value.(Token); ok {
			return t, nil
		}
		return NewCustom(value, spanFrom(s.input, start, s.pos)), nil
	case PassThrough:
		return tok, nil
	default: // Fail
		r := byExpectation(Expected{Kind: ExpectedAnything}, gotEmptyValue(), s.pos)
		return nil, &r
	}
}

// --- PreExec(f) ---

func (c *evalCtx[U]) evalPred(o predOp, s *state) (Token, *Reason) {
	pos := resolvePosition(s.input, s.pos)
	if o.fn(pos, s.labelView()) {
		return NewLexeme("", spanFrom(s.input, s.pos, s.pos)), nil
	}
	r := byExpectation(Expected{Kind: ExpectedEndOfInput}, c.sampleAt(s, s.pos), s.pos)
	return nil, &r
}

// --- NegPreExec(f) ---

func (c *evalCtx[U]) evalNotPred(o notPredOp, s *state) (Token, *Reason) {
	pos := resolvePosition(s.input, s.pos)
	if !o.fn(pos, s.labelView()) {
		return NewLexeme("", spanFrom(s.input, s.pos, s.pos)), nil
	}
	r := byExpectation(Expected{Kind: ExpectedEndOfInput}, c.sampleAt(s, s.pos), s.pos)
	return nil, &r
}

// --- Label(name, a) ---

func (c *evalCtx[U]) evalLabel(o labelOp, s *state, depth int) (Token, *Reason) {
	tok, reason := c.eval(o.inner, s, depth+1)
	if reason != nil {
		return nil, reason
	}
	// Policy (a), DESIGN.md open-question #1: the label map is
	// global-per-run and is never rolled back on a later backtrack.
	s.labels[o.name] = tok
	return tok, nil
}

// --- Call(name) ---

func (c *evalCtx[U]) evalCall(o callOp, s *state, depth int) (Token, *Reason) {
	return c.evalCallNamed(o.name, o.name, s, depth)
}

// --- CallAs(alias, target) ---

func (c *evalCtx[U]) evalCallAs(o callAsOp, s *state, depth int) (Token, *Reason) {
	return c.evalCallNamed(o.target, o.alias, s, depth)
}

// evalCallNamed resolves lookupName in the grammar and, on success,
// wraps the result as InRule(wrapAs, ...); on failure, wraps the
// reason as FollowingRule(wrapAs, ...). Call passes the same name
// twice; CallAs passes (target, alias), grounded on the teacher's
// import-rename mechanism (go/grammar_import.go).
func (c *evalCtx[U]) evalCallNamed(lookupName, wrapAs string, s *state, depth int) (Token, *Reason) {
	start := s.pos
	rule, ok := c.grammar.GetRule(lookupName)
	if !ok {
		inner := byExpectation(Expected{Kind: ExpectedRuleDefinition, Description: lookupName}, c.sampleAt(s, start), start)
		r := followingRule(wrapAs, inner)
		return nil, &r
	}

	if c.log.Enabled() {
		c.log.Trace(c.runID, "call.enter", map[string]any{"rule": wrapAs, "pos": start})
	}

	tok, reason := c.eval(rule, s, depth+1)

	if reason != nil {
		if c.log.Enabled() {
			c.log.Trace(c.runID, "call.fail", map[string]any{"rule": wrapAs, "pos": start})
		}
		r := followingRule(wrapAs, *reason)
		return nil, &r
	}

	if c.log.Enabled() {
		c.log.Trace(c.runID, "call.ok", map[string]any{"rule": wrapAs, "pos": s.pos})
	}

	return NewInRule(wrapAs, tok, spanFrom(s.input, start, s.pos)), nil
}
