package action

import (
	"time"

	"github.com/KirkDiggler/rpg-spellchain/internal/engine/dice"
	"github.com/KirkDiggler/rpg-spellchain/internal/engine/mitigation"
	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
	executionhistory "github.com/KirkDiggler/rpg-spellchain/internal/repositories/execution_history"
)

// SaveChainInput defines the request for storing a chain definition
type SaveChainInput struct {
	// Chain to store. An empty ID is assigned by the service.
	Chain *actions.Chain
}

// SaveChainOutput defines the response for storing a chain definition
type SaveChainOutput struct {
	Chain    *actions.Chain
	Created  bool
	Warnings []string
}

// GetChainInput defines the request for loading a chain
type GetChainInput struct {
	ChainID string
}

// GetChainOutput defines the response for loading a chain
type GetChainOutput struct {
	Chain     *actions.Chain
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListChainsInput defines the request for listing chains
type ListChainsInput struct {
	Affinity string
}

// ListChainsOutput defines the response for listing chains
type ListChainsOutput struct {
	Chains []*actions.Chain
}

// DeleteChainInput defines the request for deleting a chain
type DeleteChainInput struct {
	ChainID string
}

// DeleteChainOutput defines the response for deleting a chain
type DeleteChainOutput struct{}

// ExecuteChainInput defines the request for running a chain.
// Exactly one of ChainID (stored) or Chain (inline) must be set.
type ExecuteChainInput struct {
	ChainID string
	Chain   *actions.Chain
	Caster  *actions.CasterSnapshot
	Options actions.Options
}

// ExecuteChainOutput defines the response for running a chain
type ExecuteChainOutput struct {
	ExecutionID string
	Result      *actions.ExecutionResult
}

// RollFormulaInput defines the request for a standalone roll
type RollFormulaInput struct {
	Formula  string
	Modifier actions.RollModifier
}

// RollFormulaOutput defines the response for a standalone roll
type RollFormulaOutput struct {
	Result dice.Result
}

// ResolveDamageInput defines the request for mitigating damage against a target
type ResolveDamageInput struct {
	Breakdown []actions.DamageEntry
	Raw       int
	Subtype   string
	Profile   mitigation.Profile
}

// ResolveDamageOutput defines the response for mitigating damage
type ResolveDamageOutput struct {
	Breakdown mitigation.Breakdown
}

// GetHistoryInput defines the request for a caster's recent executions
type GetHistoryInput struct {
	CasterID string
}

// GetHistoryOutput defines the response for a caster's recent executions
type GetHistoryOutput struct {
	History *executionhistory.History
}
