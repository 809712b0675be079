package engine

import (
	"github.com/KirkDiggler/rpg-spellchain/internal/engine/dice"
	"github.com/KirkDiggler/rpg-spellchain/internal/engine/mitigation"
	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
)

// ExecuteChainInput contains the chain, who runs it and how
type ExecuteChainInput struct {
	Chain   *actions.Chain
	Caster  *actions.CasterSnapshot
	Options actions.Options
}

// ExecuteChainOutput contains the execution result
type ExecuteChainOutput struct {
	Result *actions.ExecutionResult
}

// ValidateChainInput contains the chain to check
type ValidateChainInput struct {
	Chain *actions.Chain
}

// ValidateChainOutput reports structural problems and compile warnings
type ValidateChainOutput struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

// RollFormulaInput contains a formula and the advantage mode
type RollFormulaInput struct {
	Formula  string
	Modifier actions.RollModifier
}

// RollFormulaOutput contains the roll
type RollFormulaOutput struct {
	Result dice.Result
}

// ResolveDamageInput contains damage to mitigate. Either Breakdown is set,
// or Raw and Subtype describe a single value.
type ResolveDamageInput struct {
	Breakdown []actions.DamageEntry
	Raw       int
	Subtype   string
	Profile   mitigation.Profile
}

// ResolveDamageOutput contains the mitigated damage
type ResolveDamageOutput struct {
	Breakdown mitigation.Breakdown
}
