package pegtree

import "fmt"

// ExpectedKind identifies what a ByExpectation failure was looking for.
type ExpectedKind int

const (
	ExpectedValue ExpectedKind = iota
	ExpectedAny
	ExpectedRuleDefinition
	ExpectedRegexMatch
	ExpectedEndOfInput
	ExpectedAnything
)

func (k ExpectedKind) String() string {
	switch k {
	case ExpectedValue:
		return "value"
	case ExpectedAny:
		return "any character"
	case ExpectedRuleDefinition:
		return "rule definition"
	case ExpectedRegexMatch:
		return "regex match"
	case ExpectedEndOfInput:
		return "end of input"
	case ExpectedAnything:
		return "anything"
	default:
		return "unknown"
	}
}

// Expected describes one concrete expectation that did not hold.
type Expected struct {
	Kind        ExpectedKind
	Description string // the literal value, rule name, or regex/description text
}

func (e Expected) String() string {
	if e.Description == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s %q", e.Kind, e.Description)
}

// Sample is either a concrete character, the empty string, or the
// fact that input had already run out. It never carries more than a
// single character: spec.md fixes the sample to one character, never
// the unmatched remainder. The empty-string case is distinct from
// end-of-input: spec.md §7 reports an Action Fail as GotValue("")
// specifically, not GotEndOfInput, even when plenty of input remains.
type Sample struct {
	IsEOF bool
	Value string // meaningful when !IsEOF; "" is itself a valid sample
}

func gotValue(r rune) Sample  { return Sample{Value: string(r)} }
func gotEmptyValue() Sample  { return Sample{Value: ""} }
func gotEndOfInput() Sample  { return Sample{IsEOF: true} }

func (s Sample) String() string {
	if s.IsEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", s.Value)
}

// Reason is the closed sum of ways an operator can fail, mirroring
// spec.md §3's Failure Reason. It mirrors the teacher's
// ParsingError/backtrackingError split (go/errors.go) generalized
// into one tagged value instead of two Go error types, so it can be
// threaded through the interpreter without allocating an `error` on
// every backtrack.
type Reason struct {
	// exactly one of the following is meaningful, selected by Kind
	Kind ReasonKind

	// ByExpectation
	Expected Expected
	Sample   Sample

	// FollowingRule
	RuleName string
	Inner    *Reason

	// FollowingNestedOperator
	Children []Reason

	// Offset is the character offset the failure was actually observed
	// at - where Sample was taken, captured at the moment of failure,
	// not wherever the enclosing composite has since rewound state to.
	// It travels unchanged through FollowingRule (the failing child's
	// offset, not the Call's entry), matching the teacher's NewError
	// capturing the current Location at the point of failure
	// (base_parser.go), preserved across Backtrack rather than
	// recomputed from the backtracked position.
	Offset int
}

type ReasonKind int

const (
	ReasonByExpectation ReasonKind = iota
	ReasonFollowingRule
	ReasonFollowingNestedOperator
	ReasonNoStartRule
)

func byExpectation(expected Expected, sample Sample, offset int) Reason {
	return Reason{Kind: ReasonByExpectation, Expected: expected, Sample: sample, Offset: offset}
}

// followingRule wraps inner under a rule name, carrying inner's offset
// forward unchanged: the rule call's entry position isn't where the
// failure happened, the wrapped reason's is.
func followingRule(name string, inner Reason) Reason {
	return Reason{Kind: ReasonFollowingRule, RuleName: name, Inner: &inner, Offset: inner.Offset}
}

// followingNestedOperator aggregates every alternative's failure. Per
// spec.md's explicit "reporting sample on aggregate failures" note,
// both the Sample and the Offset are the composite's own entry
// position, not any child's - unlike FollowingRule, which is a single
// passthrough rather than an aggregate.
func followingNestedOperator(children []Reason, sample Sample, offset int) Reason {
	return Reason{Kind: ReasonFollowingNestedOperator, Children: children, Sample: sample, Offset: offset}
}

func noStartRule() Reason {
	return Reason{Kind: ReasonNoStartRule}
}

// String renders a human-readable diagnostic. Pretty-printing beyond
// this single-line form is an external collaborator's job (spec.md
// §1 keeps export/pretty-print helpers out of the core).
func (r Reason) String() string {
	switch r.Kind {
	case ReasonByExpectation:
		return fmt.Sprintf("expected %s, got %s", r.Expected, r.Sample)
	case ReasonFollowingRule:
		return fmt.Sprintf("in rule %q: %s", r.RuleName, r.Inner)
	case ReasonFollowingNestedOperator:
		var s string
		for i, c := range r.Children {
			if i > 0 {
				s += " / "
			}
			s += c.String()
		}
		return fmt.Sprintf("none of [%s] matched, got %s", s, r.Sample)
	case ReasonNoStartRule:
		return "grammar has no start rule"
	default:
		return "unknown parse failure"
	}
}

// ParseError is an error value pairing a failed parse's Reason with
// its resolved (line, column) position. Parse itself does not return
// it: Parse returns an Outcome, whose Reason and Position fields a
// caller can wrap in a ParseError. It matches the teacher's Span-carrying ParsingError
// (go/errors.go) but over a Reason instead of a bare message string.
type ParseError struct {
	Reason   Reason
	Position Location
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s @ %s", e.Reason, e.Position)
}
