package transitions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-spellchain/internal/engine/transitions"
	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
)

func ptr(v actions.Value) *actions.Value {
	return &v
}

func TestHolds_Flags(t *testing.T) {
	testCases := []struct {
		name  string
		kind  actions.ConditionKind
		facts transitions.Facts
		want  bool
	}{
		{name: "always", kind: actions.ConditionAlways, want: true},
		{name: "empty kind is always", kind: "", want: true},
		{name: "crit", kind: actions.ConditionCrit, facts: transitions.Facts{Crit: true}, want: true},
		{name: "no crit", kind: actions.ConditionCrit},
		{name: "crit fail", kind: actions.ConditionCritFail, facts: transitions.Facts{CritFail: true}, want: true},
		{name: "success", kind: actions.ConditionSuccess, facts: transitions.Facts{Success: true}, want: true},
		{name: "success masked by crit fail", kind: actions.ConditionSuccess, facts: transitions.Facts{Success: true, CritFail: true}},
		{name: "fail when not successful", kind: actions.ConditionFail, want: true},
		{name: "fail on crit fail", kind: actions.ConditionFail, facts: transitions.Facts{Success: true, CritFail: true}, want: true},
		{name: "fail on success", kind: actions.ConditionFail, facts: transitions.Facts{Success: true}},
		{name: "unknown kind", kind: "sometimes"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, transitions.Holds(actions.Condition{Kind: tc.kind}, tc.facts))
		})
	}
}

func TestHolds_Values(t *testing.T) {
	facts := transitions.Facts{Values: map[string]actions.Value{
		"elementChoice": actions.IntValue(1),
		"power":         actions.RealValue(4.5),
		"element":       actions.LabelValue("water"),
		"numeric_label": actions.LabelValue("7"),
	}}

	testCases := []struct {
		name string
		cond actions.Condition
		want bool
	}{
		{
			name: "equals int",
			cond: actions.Condition{Kind: actions.ConditionValueEquals, Key: "elementChoice", Value: ptr(actions.IntValue(1))},
			want: true,
		},
		{
			name: "equals across int and real",
			cond: actions.Condition{Kind: actions.ConditionValueEquals, Key: "elementChoice", Value: ptr(actions.RealValue(1.0))},
			want: true,
		},
		{
			name: "equals across int and label",
			cond: actions.Condition{Kind: actions.ConditionValueEquals, Key: "elementChoice", Value: ptr(actions.LabelValue("1"))},
			want: true,
		},
		{
			name: "not equal",
			cond: actions.Condition{Kind: actions.ConditionValueEquals, Key: "elementChoice", Value: ptr(actions.IntValue(2))},
		},
		{
			name: "equals label",
			cond: actions.Condition{Kind: actions.ConditionValueEquals, Key: "element", Value: ptr(actions.LabelValue("water"))},
			want: true,
		},
		{
			name: "equals missing key",
			cond: actions.Condition{Kind: actions.ConditionValueEquals, Key: "nope", Value: ptr(actions.IntValue(0))},
		},
		{
			name: "gte",
			cond: actions.Condition{Kind: actions.ConditionValueGTE, Key: "power", Value: ptr(actions.IntValue(4))},
			want: true,
		},
		{
			name: "gte numeric label",
			cond: actions.Condition{Kind: actions.ConditionValueGTE, Key: "numeric_label", Value: ptr(actions.IntValue(7))},
			want: true,
		},
		{
			name: "gte non numeric",
			cond: actions.Condition{Kind: actions.ConditionValueGTE, Key: "element", Value: ptr(actions.IntValue(0))},
		},
		{
			name: "lte",
			cond: actions.Condition{Kind: actions.ConditionValueLTE, Key: "power", Value: ptr(actions.IntValue(4))},
		},
		{
			name: "exists",
			cond: actions.Condition{Kind: actions.ConditionValueExists, Key: "element"},
			want: true,
		},
		{
			name: "does not exist",
			cond: actions.Condition{Kind: actions.ConditionValueExists, Key: "nope"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, transitions.Holds(tc.cond, facts))
		})
	}
}

func TestHolds_InRange(t *testing.T) {
	for v := 0; v <= 12; v++ {
		facts := transitions.Facts{Values: map[string]actions.Value{"roll": actions.IntValue(v)}}
		cond := actions.Condition{
			Kind:     actions.ConditionValueInRange,
			Key:      "roll",
			Value:    ptr(actions.IntValue(3)),
			ValueMax: ptr(actions.IntValue(8)),
		}
		assert.Equal(t, v >= 3 && v <= 8, transitions.Holds(cond, facts), "roll %d", v)
	}

	single := actions.Condition{Kind: actions.ConditionValueInRange, Key: "roll", Value: ptr(actions.IntValue(5))}
	assert.True(t, transitions.Holds(single, transitions.Facts{Values: map[string]actions.Value{"roll": actions.IntValue(5)}}))
	assert.False(t, transitions.Holds(single, transitions.Facts{Values: map[string]actions.Value{"roll": actions.IntValue(6)}}))
	assert.False(t, transitions.Holds(single, transitions.Facts{}))
}

func TestHolds_Expression(t *testing.T) {
	facts := transitions.Facts{
		Values:      map[string]actions.Value{"check_total": actions.IntValue(17), "element": actions.LabelValue("fire")},
		Success:     true,
		TotalDamage: 12,
	}

	assert.True(t, transitions.Holds(actions.Condition{Kind: actions.ConditionExpression, Expression: `check_total >= 15 && element == "fire"`}, facts))
	assert.True(t, transitions.Holds(actions.Condition{Kind: actions.ConditionExpression, Expression: `success && total_damage > 10`}, facts))
	assert.False(t, transitions.Holds(actions.Condition{Kind: actions.ConditionExpression, Expression: `crit`}, facts))
	assert.False(t, transitions.Holds(actions.Condition{Kind: actions.ConditionExpression, Expression: `missing > 3`}, facts))
	assert.False(t, transitions.Holds(actions.Condition{Kind: actions.ConditionExpression, Expression: `check_total >=`}, facts))
}

func TestNewGuard_InvalidExpression(t *testing.T) {
	g, err := transitions.NewGuard(actions.Condition{Kind: actions.ConditionExpression, Expression: "(("})
	require.Error(t, err)
	assert.False(t, g.Holds(transitions.Facts{}))

	_, err = transitions.NewGuard(actions.Condition{Kind: actions.ConditionExpression})
	require.Error(t, err)
}

func TestRules_Priority(t *testing.T) {
	rules, errs := transitions.Compile([]actions.Transition{
		{Condition: actions.ConditionAlways, Target: "fallback", Priority: 10},
		{Condition: actions.ConditionSuccess, Target: "hit", Priority: 1},
		{Condition: actions.ConditionCrit, Target: "crit", Priority: 0},
		{Condition: actions.ConditionSuccess, Target: "hit_again", Priority: 1},
	})
	require.Empty(t, errs)
	require.Len(t, rules, 4)
	assert.Equal(t, "crit", rules[0].Target)
	assert.Equal(t, "hit", rules[1].Target, "ties keep authored order")
	assert.Equal(t, "hit_again", rules[2].Target)

	target, ok := rules.Evaluate(transitions.Facts{Success: true, Crit: true})
	require.True(t, ok)
	assert.Equal(t, "crit", target)

	target, ok = rules.Evaluate(transitions.Facts{Success: true})
	require.True(t, ok)
	assert.Equal(t, "hit", target)

	target, ok = rules.Evaluate(transitions.Facts{})
	require.True(t, ok)
	assert.Equal(t, "fallback", target)
}

func TestRules_NoMatch(t *testing.T) {
	rules, errs := transitions.Compile([]actions.Transition{
		{Condition: actions.ConditionCrit, Target: "crit"},
		{Condition: actions.ConditionExpression, Expression: "((", Target: "broken"},
	})
	require.Len(t, errs, 1)
	require.Len(t, rules, 2)

	_, ok := rules.Evaluate(transitions.Facts{})
	assert.False(t, ok)

	var empty transitions.Rules
	_, ok = empty.Evaluate(transitions.Facts{})
	assert.False(t, ok)
}
