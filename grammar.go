package pegtree

import "golang.org/x/exp/slices"

// DefaultStartRule is the rule name used when a Grammar is built
// without an explicit start rule - spec.md §6: "A rule named 'start'
// is the default start rule."
const DefaultStartRule = "start"

// Grammar is a read-only-shareable mapping from rule name to operator
// tree, a designated start rule, and the Adapter that projects every
// successful Token into the caller's result type U. It mirrors the
// teacher's rule registry (go/grammar_compiler.go's DefsByName),
// generalized over U.
type Grammar[U any] struct {
	rules   map[string]Operator
	start   string
	adapter Adapter[U]
}

// Rule pairs a name with the operator tree it's bound to, for use with
// NewGrammar.
type Rule struct {
	Name string
	Expr Operator
}

// NewGrammar builds a Grammar from a list of (name, operator) pairs
// and an Adapter. If start is "", DefaultStartRule is used. It does
// not validate that start actually names one of rules; a missing
// start rule is only diagnosed at Parse time (spec.md §4.3:
// "Resolves the start rule; if absent, returns Failed(NoStartRule,
// ...)"), since a Grammar assembled incrementally may have its start
// rule added after construction via no exposed mutator other than
// SetStartRule.
func NewGrammar[U any](rules []Rule, start string, adapter Adapter[U]) *Grammar[U] {
	if start == "" {
		start = DefaultStartRule
	}
	m := make(map[string]Operator, len(rules))
	for _, r := range rules {
		m[r.Name] = r.Expr
	}
	return &Grammar[U]{rules: m, start: start, adapter: adapter}
}

// GetRule returns the operator tree bound to name, if any.
func (g *Grammar[U]) GetRule(name string) (Operator, bool) {
	op, ok := g.rules[name]
	return op, ok
}

// GetStartRule returns the grammar's designated start rule name.
func (g *Grammar[U]) GetStartRule() string { return g.start }

// SetStartRule changes which rule Parse begins from.
func (g *Grammar[U]) SetStartRule(name string) { g.start = name }

// ruleNames returns the grammar's rule names, sorted, for
// diagnostics (e.g. "did you mean" suggestions a pretty-printer might
// build on top of Reason). Uses golang.org/x/exp/slices, grounded on
// alecthomas/participle's dependency on golang.org/x/exp.
func (g *Grammar[U]) ruleNames() []string {
	names := make([]string, 0, len(g.rules))
	for name := range g.rules {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// RuleNames returns the grammar's rule names in sorted order, handy
// for CLI introspection (cmd/pegtree's --list-rules) or test
// diagnostics.
func (g *Grammar[U]) RuleNames() []string { return g.ruleNames() }
