package chain

import (
	"fmt"

	"github.com/KirkDiggler/rpg-spellchain/internal/engine/transitions"
	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
)

// ExecutionContext is the scratchpad of a single chain invocation. It is
// created fresh for every run and never shared.
type ExecutionContext struct {
	Chain           *actions.Chain
	Caster          *actions.CasterSnapshot
	TargetCount     int
	ProjectileCount int
	RollModifier    actions.RollModifier

	Values map[string]actions.Value

	Rolls       []actions.RollRecord
	TotalDamage int
	Damage      []actions.DamageEntry

	IsCrit           bool
	IsCritFail       bool
	DoubleDamageDice bool
	ManaDiscount     float64

	Log            []string
	PendingChanges []actions.ResourceChange

	Stopped bool
	Success bool
	Pointer int

	// attack and cast rolls after the first always roll normally
	modifierSpent bool
}

func newExecutionContext(chain *actions.Chain, caster *actions.CasterSnapshot, opts actions.Options) *ExecutionContext {
	targets := opts.TargetCount
	if targets <= 0 {
		targets = 1
	}
	mod := opts.RollModifier
	if mod == "" {
		mod = actions.RollNormal
	}

	return &ExecutionContext{
		Chain:           chain,
		Caster:          caster,
		TargetCount:     targets,
		ProjectileCount: opts.ProjectileCount,
		RollModifier:    mod,
		Values:          make(map[string]actions.Value),
		Success:         true,
	}
}

// Facts is the view of the context that guards read
func (c *ExecutionContext) Facts() transitions.Facts {
	return transitions.Facts{
		Values:      c.Values,
		Crit:        c.IsCrit,
		CritFail:    c.IsCritFail,
		Success:     c.Success,
		TotalDamage: c.TotalDamage,
	}
}

// Set stores a value under key. Empty keys are ignored.
func (c *ExecutionContext) Set(key string, v actions.Value) {
	if key == "" {
		return
	}
	c.Values[key] = v
}

// Get reads a value
func (c *ExecutionContext) Get(key string) (actions.Value, bool) {
	v, ok := c.Values[key]
	return v, ok
}

// Logf appends a line to the trace
func (c *ExecutionContext) Logf(format string, args ...interface{}) {
	c.Log = append(c.Log, fmt.Sprintf(format, args...))
}

// Warnf appends a warning line to the trace
func (c *ExecutionContext) Warnf(format string, args ...interface{}) {
	c.Log = append(c.Log, "warning: "+fmt.Sprintf(format, args...))
}

func (c *ExecutionContext) casterName() string {
	if name := c.Caster.DisplayName(); name != "" {
		return name
	}
	return "caster"
}

// takeRollModifier returns the requested modifier for the first attack or
// cast roll of the chain and normal for every one after it
func (c *ExecutionContext) takeRollModifier() actions.RollModifier {
	if c.modifierSpent {
		return actions.RollNormal
	}
	c.modifierSpent = true
	return c.RollModifier
}
