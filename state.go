package pegtree

// state is the cursor threaded through every eval call: the input, its
// length, the current rune position, and the per-run label map.
//
// It mirrors the teacher's BaseParser cursor/line/column bookkeeping
// (go/base_parser.go), generalized with the label map spec.md §3/§9
// requires. Position is resolved to (line, column) lazily, only when a
// failure or a token's Span needs it, rather than tracked incrementally
// like the teacher does — the operator tree here has no notion of "the
// current line" mid-evaluation, only offsets, which keeps backtracking
// a matter of restoring one int.
type state struct {
	input  []rune
	pos    int
	labels map[string]Token
}

func newState(input []rune) *state {
	return &state{input: input, pos: 0, labels: map[string]Token{}}
}

// peek returns the rune under the cursor, or eof (-1) past the end.
func (s *state) peek() rune {
	if s.pos >= len(s.input) {
		return eof
	}
	return s.input[s.pos]
}

const eof = -1

// save captures the one thing backtracking ever needs to restore: the
// position. The label map is never rolled back (policy (a), DESIGN.md
// open-question #1): labels set on a branch that later fails remain
// set, matching spec.md's committed test expectations.
func (s *state) save() int { return s.pos }

func (s *state) restore(pos int) { s.pos = pos }

// Labels is a read-only view over a run's label map, handed to Action
// and predicate callbacks so they can read a value captured earlier by
// Label (spec.md §8's S6 scenario: an Action reading back
// state.values["a"]) without being able to mutate it themselves.
type Labels struct {
	m map[string]Token
}

// Get returns the token bound to name, if any.
func (l Labels) Get(name string) (Token, bool) {
	t, ok := l.m[name]
	return t, ok
}

func (s *state) labelView() Labels { return Labels{m: s.labels} }
