// Package transitions decides which guarded transition of a node fires
package transitions

import (
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
	"github.com/KirkDiggler/rpg-spellchain/internal/errors"
)

// Facts is the slice of execution state a guard may read
type Facts struct {
	Values      map[string]actions.Value
	Crit        bool
	CritFail    bool
	Success     bool
	TotalDamage int
}

// Guard is a condition ready to evaluate. Expression conditions are
// compiled once when the guard is built.
type Guard struct {
	Condition actions.Condition
	program   *vm.Program
}

// NewGuard compiles a condition. A guard whose expression fails to compile
// is still returned and never holds.
func NewGuard(cond actions.Condition) (Guard, error) {
	g := Guard{Condition: cond}
	if cond.Kind != actions.ConditionExpression {
		return g, nil
	}
	if cond.Expression == "" {
		return g, errors.InvalidArgument("expression condition has no expression")
	}

	program, err := expr.Compile(cond.Expression, expr.AsBool())
	if err != nil {
		return g, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "invalid expression %q", cond.Expression)
	}
	g.program = program
	return g, nil
}

// Holds evaluates the guard against the facts
func (g Guard) Holds(f Facts) bool {
	c := g.Condition
	switch c.Kind {
	case "", actions.ConditionAlways:
		return true
	case actions.ConditionCrit:
		return f.Crit
	case actions.ConditionCritFail:
		return f.CritFail
	case actions.ConditionSuccess:
		return f.Success && !f.CritFail
	case actions.ConditionFail:
		return !f.Success || f.CritFail
	case actions.ConditionValueExists:
		_, ok := f.Values[c.Key]
		return ok
	case actions.ConditionValueEquals:
		v, ok := f.Values[c.Key]
		if !ok || c.Value == nil {
			return false
		}
		return v.Equal(*c.Value)
	case actions.ConditionValueGTE:
		v, want, ok := numericPair(f, c.Key, c.Value)
		return ok && v >= want
	case actions.ConditionValueLTE:
		v, want, ok := numericPair(f, c.Key, c.Value)
		return ok && v <= want
	case actions.ConditionValueInRange:
		v, lo, ok := numericPair(f, c.Key, c.Value)
		if !ok {
			return false
		}
		hi := lo
		if c.ValueMax != nil {
			upper, isNum := c.ValueMax.Float()
			if !isNum {
				return false
			}
			hi = upper
		}
		return lo <= v && v <= hi
	case actions.ConditionExpression:
		return g.runExpression(f)
	default:
		return false
	}
}

func (g Guard) runExpression(f Facts) bool {
	if g.program == nil {
		return false
	}
	out, err := vm.Run(g.program, expressionEnv(f))
	if err != nil {
		return false
	}
	b, ok := out.(bool)
	return ok && b
}

func expressionEnv(f Facts) map[string]interface{} {
	env := make(map[string]interface{}, len(f.Values)+4)
	for k, v := range f.Values {
		env[k] = v.Interface()
	}
	env["crit"] = f.Crit
	env["crit_fail"] = f.CritFail
	env["success"] = f.Success
	env["total_damage"] = f.TotalDamage
	return env
}

func numericPair(f Facts, key string, want *actions.Value) (float64, float64, bool) {
	if want == nil {
		return 0, 0, false
	}
	v, ok := f.Values[key]
	if !ok {
		return 0, 0, false
	}
	have, ok := v.Float()
	if !ok {
		return 0, 0, false
	}
	w, ok := want.Float()
	if !ok {
		return 0, 0, false
	}
	return have, w, true
}

// Holds evaluates a single condition. Expressions are compiled on the fly;
// prefer NewGuard when the condition is evaluated repeatedly.
func Holds(cond actions.Condition, f Facts) bool {
	g, err := NewGuard(cond)
	if err != nil {
		return false
	}
	return g.Holds(f)
}

// Rule is a compiled transition
type Rule struct {
	Guard
	Target   string
	Priority int
}

// Rules are transitions sorted by ascending priority
type Rules []Rule

// Compile sorts transitions by priority, keeping authored order for ties,
// and compiles their guards. Transitions whose guard fails to compile are
// kept as never-firing rules and reported.
func Compile(ts []actions.Transition) (Rules, []error) {
	if len(ts) == 0 {
		return nil, nil
	}

	var errs []error
	rules := make(Rules, 0, len(ts))
	for i, t := range ts {
		g, err := NewGuard(t.Guard())
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "transition %d to %q", i, t.Target))
		}
		rules = append(rules, Rule{Guard: g, Target: t.Target, Priority: t.Priority})
	}

	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority < rules[j].Priority
	})
	return rules, errs
}

// Evaluate returns the target of the first rule whose guard holds
func (r Rules) Evaluate(f Facts) (string, bool) {
	for _, rule := range r {
		if rule.Holds(f) {
			return rule.Target, true
		}
	}
	return "", false
}
