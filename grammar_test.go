package pegtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrammar_DefaultsStartRule(t *testing.T) {
	g := NewGrammar([]Rule{{Name: "start", Expr: Lit("x")}}, "", IdentityAdapter())
	assert.Equal(t, DefaultStartRule, g.GetStartRule())
}

func TestNewGrammar_ExplicitStartRule(t *testing.T) {
	g := NewGrammar([]Rule{
		{Name: "entry", Expr: Lit("x")},
		{Name: "start", Expr: Lit("y")},
	}, "entry", IdentityAdapter())
	assert.Equal(t, "entry", g.GetStartRule())
}

func TestGrammar_GetRule(t *testing.T) {
	op := Lit("x")
	g := NewGrammar([]Rule{{Name: "a", Expr: op}}, "a", IdentityAdapter())

	got, ok := g.GetRule("a")
	require.True(t, ok)
	assert.Equal(t, op, got)

	_, ok = g.GetRule("missing")
	assert.False(t, ok)
}

func TestGrammar_SetStartRule(t *testing.T) {
	g := NewGrammar([]Rule{
		{Name: "a", Expr: Lit("x")},
		{Name: "b", Expr: Lit("y")},
	}, "a", IdentityAdapter())
	g.SetStartRule("b")
	assert.Equal(t, "b", g.GetStartRule())
}

func TestGrammar_RuleNamesSorted(t *testing.T) {
	g := NewGrammar([]Rule{
		{Name: "zeta", Expr: Lit("z")},
		{Name: "alpha", Expr: Lit("a")},
		{Name: "mid", Expr: Lit("m")},
	}, "alpha", IdentityAdapter())
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, g.RuleNames())
}
