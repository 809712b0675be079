package actions

import (
	"encoding/json"
	"strings"
)

// ConditionKind names a guard evaluated against an execution context
type ConditionKind string

// Condition kinds
const (
	ConditionAlways       ConditionKind = "always"
	ConditionCrit         ConditionKind = "crit"
	ConditionCritFail     ConditionKind = "crit_fail"
	ConditionSuccess      ConditionKind = "success"
	ConditionFail         ConditionKind = "fail"
	ConditionValueEquals  ConditionKind = "value_equals"
	ConditionValueGTE     ConditionKind = "value_gte"
	ConditionValueLTE     ConditionKind = "value_lte"
	ConditionValueInRange ConditionKind = "value_in_range"
	ConditionValueExists  ConditionKind = "value_exists"
	ConditionExpression   ConditionKind = "expression"
)

// Special transition targets
const (
	TargetNext = "next"
	TargetStop = "stop"
)

// branch conditions use the short names
var conditionAliases = map[string]ConditionKind{
	"":         ConditionAlways,
	"equals":   ConditionValueEquals,
	"eq":       ConditionValueEquals,
	"gte":      ConditionValueGTE,
	"lte":      ConditionValueLTE,
	"in_range": ConditionValueInRange,
	"range":    ConditionValueInRange,
	"exists":   ConditionValueExists,
	"expr":     ConditionExpression,
}

// NormalizeConditionKind maps short and legacy names onto the canonical kinds
func NormalizeConditionKind(kind string) ConditionKind {
	k := strings.ToLower(strings.TrimSpace(kind))
	if alias, ok := conditionAliases[k]; ok {
		return alias
	}
	return ConditionKind(k)
}

// Condition is a single guard. Key, Value and ValueMax are only read by the
// value_* kinds; Expression only by the expression kind.
type Condition struct {
	Kind       ConditionKind `json:"kind"`
	Key        string        `json:"key,omitempty"`
	Value      *Value        `json:"value,omitempty"`
	ValueMax   *Value        `json:"value_max,omitempty"`
	Expression string        `json:"expression,omitempty"`
}

// UnmarshalJSON normalizes the condition kind
func (c *Condition) UnmarshalJSON(data []byte) error {
	type plain Condition
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	p.Kind = NormalizeConditionKind(string(p.Kind))
	*c = Condition(p)
	return nil
}

// IsAlways reports whether the condition always holds
func (c *Condition) IsAlways() bool {
	return c == nil || c.Kind == "" || c.Kind == ConditionAlways
}

// Transition is a guarded pointer from a node to its successor
type Transition struct {
	Condition  ConditionKind `json:"condition"`
	Key        string        `json:"key,omitempty"`
	Value      *Value        `json:"value,omitempty"`
	ValueMax   *Value        `json:"value_max,omitempty"`
	Expression string        `json:"expression,omitempty"`
	Target     string        `json:"target"`
	Priority   int           `json:"priority"`
}

// UnmarshalJSON normalizes the condition kind
func (t *Transition) UnmarshalJSON(data []byte) error {
	type plain Transition
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	p.Condition = NormalizeConditionKind(string(p.Condition))
	*t = Transition(p)
	return nil
}

// Guard returns the transition's condition
func (t Transition) Guard() Condition {
	return Condition{
		Kind:       t.Condition,
		Key:        t.Key,
		Value:      t.Value,
		ValueMax:   t.ValueMax,
		Expression: t.Expression,
	}
}
