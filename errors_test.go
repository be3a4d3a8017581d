package pegtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpectedKind_String(t *testing.T) {
	tests := []struct {
		kind ExpectedKind
		want string
	}{
		{ExpectedValue, "value"},
		{ExpectedAny, "any character"},
		{ExpectedRuleDefinition, "rule definition"},
		{ExpectedRegexMatch, "regex match"},
		{ExpectedEndOfInput, "end of input"},
		{ExpectedAnything, "anything"},
		{ExpectedKind(999), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestExpected_StringWithAndWithoutDescription(t *testing.T) {
	assert.Equal(t, "end of input", Expected{Kind: ExpectedEndOfInput}.String())
	assert.Equal(t, `value "abc"`, Expected{Kind: ExpectedValue, Description: "abc"}.String())
}

func TestSample_String(t *testing.T) {
	assert.Equal(t, "end of input", gotEndOfInput().String())
	assert.Equal(t, `"a"`, gotValue('a').String())
	assert.Equal(t, `""`, gotEmptyValue().String())
}

func TestReason_String(t *testing.T) {
	byExp := byExpectation(Expected{Kind: ExpectedValue, Description: "abc"}, gotValue('a'), 3)
	assert.Equal(t, `expected value "abc", got "a"`, byExp.String())

	rule := followingRule("test", byExp)
	assert.Equal(t, `in rule "test": expected value "abc", got "a"`, rule.String())
	assert.Equal(t, 3, rule.Offset, "FollowingRule carries the failing child's offset forward")

	agg := followingNestedOperator([]Reason{
		byExpectation(Expected{Kind: ExpectedValue, Description: "a"}, gotValue('d'), 7),
		byExpectation(Expected{Kind: ExpectedValue, Description: "b"}, gotValue('d'), 7),
	}, gotValue('d'), 5)
	assert.Equal(t, `none of [expected value "a", got "d" / expected value "b", got "d"] matched, got "d"`, agg.String())
	assert.Equal(t, 5, agg.Offset, "the aggregate's own offset is the composite's entry, not a child's")

	assert.Equal(t, "grammar has no start rule", noStartRule().String())
}

func TestParseError_Error(t *testing.T) {
	err := &ParseError{
		Reason:   byExpectation(Expected{Kind: ExpectedValue, Description: "abc"}, gotValue('a'), 0),
		Position: Location{Line: 0, Column: 0},
	}
	assert.Equal(t, `expected value "abc", got "a" @ 0:0`, err.Error())
}
