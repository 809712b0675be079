// Package chain executes authored action chains against a caster snapshot
package chain

import (
	"fmt"
	"math"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-spellchain/internal/engine/dice"
	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
)

const (
	// MinIterationCap is the floor of the per-run step budget
	MinIterationCap = 100

	// IterationsPerNode scales the step budget with chain size
	IterationsPerNode = 10
)

// Caller misuse messages
const (
	ErrMsgNoNodes         = "chain has no nodes"
	ErrMsgCasterRequired  = "caster is required"
	ErrMsgIterationCapFmt = "iteration cap of %d steps exceeded"
)

// Input is everything one invocation needs
type Input struct {
	Chain   *actions.Chain
	Caster  *actions.CasterSnapshot
	Options actions.Options

	// Program is an optional precompiled form of Chain
	Program *Program
}

// Interpreter runs chains. It holds no per-run state and is safe for
// concurrent use when its roller is.
type Interpreter struct {
	roller *dice.Roller
}

// NewInterpreter creates an interpreter rolling through source. A nil
// source uses the toolkit default roller.
func NewInterpreter(source toolkitdice.Roller) *Interpreter {
	return &Interpreter{roller: dice.NewRoller(source)}
}

// Execute runs a chain to completion. Every outcome, including caller
// misuse and runaway chains, is reported through the result.
func (in *Interpreter) Execute(input Input) *actions.ExecutionResult {
	program := input.Program
	if program == nil || program.Chain != input.Chain {
		program = Compile(input.Chain)
	}

	if program.Len() == 0 {
		return misuse(input.Chain, ErrMsgNoNodes)
	}
	if input.Caster == nil {
		return misuse(input.Chain, ErrMsgCasterRequired)
	}

	ctx := newExecutionContext(input.Chain, input.Caster, input.Options)
	for _, w := range program.Warnings {
		ctx.Warnf("%s", w)
	}

	steps, exhausted := in.run(program, ctx)

	res := in.assemble(ctx)
	res.Steps = steps
	if exhausted {
		res.Success = false
		res.Error = fmt.Sprintf(ErrMsgIterationCapFmt, program.IterationCap())
	}
	return res
}

// Execute runs a chain with the default roller
func Execute(input Input) *actions.ExecutionResult {
	return NewInterpreter(nil).Execute(input)
}

func (in *Interpreter) run(p *Program, ctx *ExecutionContext) (int, bool) {
	limit := p.IterationCap()
	steps := 0

	for !ctx.Stopped && ctx.Pointer >= 0 && ctx.Pointer < len(p.nodes) {
		if steps >= limit {
			ctx.Logf("Halted after %d steps: the chain never reached an end", steps)
			return steps, true
		}
		steps++

		cn := &p.nodes[ctx.Pointer]
		if cn.precondition != nil && !cn.precondition.Holds(ctx.Facts()) {
			ctx.Logf("Skipped %s: condition not met", nodeName(cn.node))
			ctx.Pointer++
			continue
		}

		target := in.dispatch(ctx, cn)
		ctx.Pointer = p.resolve(ctx, target)
	}

	return steps, false
}

// resolve turns a target into the next pointer
func (p *Program) resolve(ctx *ExecutionContext, target string) int {
	switch target {
	case "", actions.TargetNext:
		return ctx.Pointer + 1
	case actions.TargetStop:
		ctx.Stopped = true
		return ctx.Pointer
	}
	if idx, ok := p.index[target]; ok {
		return idx
	}
	ctx.Warnf("unknown jump target %q, continuing with the next node", target)
	return ctx.Pointer + 1
}

// follow picks the successor of a node that does not choose its own:
// the first matching transition, then the declared default, then next
func (cn *compiledNode) follow(ctx *ExecutionContext) string {
	if target, ok := cn.rules.Evaluate(ctx.Facts()); ok {
		return target
	}
	if cn.node.Next != "" {
		return cn.node.Next
	}
	return actions.TargetNext
}

func (in *Interpreter) assemble(ctx *ExecutionContext) *actions.ExecutionResult {
	cost := resolveCosts(ctx)

	res := &actions.ExecutionResult{
		Success:                ctx.Success,
		TotalDamage:            ctx.TotalDamage,
		ResolvedResourceCost:   cost,
		PendingResourceChanges: nonNil(ctx.PendingChanges),
		RollHistory:            nonNil(ctx.Rolls),
		DamageBreakdown:        nonNil(ctx.Damage),
		Log:                    nonNil(ctx.Log),
		ContextValues:          make(map[string]actions.Value, len(ctx.Values)),
		IsCrit:                 ctx.IsCrit,
		IsCritFail:             ctx.IsCritFail,
	}
	if ctx.Chain != nil {
		res.ChainID = ctx.Chain.ID
	}
	if len(ctx.Damage) > 0 {
		res.InferredDamageType = ctx.Damage[0].Type
	}
	for k, v := range ctx.Values {
		res.ContextValues[k] = v
	}
	return res
}

// resolveCosts turns chain costs into pending spends. Mana costs are
// reduced by the caster's affinity for each chain element and then by the
// crit discount.
func resolveCosts(ctx *ExecutionContext) int {
	if ctx.Chain == nil {
		return 0
	}

	total := 0
	for _, c := range ctx.Chain.Costs {
		amount := c.Amount
		if c.ResourceKind == actions.ResourceMana {
			for _, element := range ctx.Chain.Affinities {
				amount -= ctx.Caster.Affinity(element).ManaReduction
			}
			amount = int(math.Floor(float64(amount)*(1-ctx.ManaDiscount) + 0.5))
		}
		amount = max(0, amount)

		total += amount
		ctx.PendingChanges = append(ctx.PendingChanges, actions.ResourceChange{
			ResourceKind: c.ResourceKind,
			Amount:       -amount,
			ResourceID:   c.ResourceID,
			Source:       "cost",
		})
	}
	return total
}

func misuse(chain *actions.Chain, msg string) *actions.ExecutionResult {
	res := &actions.ExecutionResult{
		Success:                false,
		PendingResourceChanges: []actions.ResourceChange{},
		RollHistory:            []actions.RollRecord{},
		DamageBreakdown:        []actions.DamageEntry{},
		Log:                    []string{"error: " + msg},
		ContextValues:          map[string]actions.Value{},
		Error:                  msg,
	}
	if chain != nil {
		res.ChainID = chain.ID
	}
	return res
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
