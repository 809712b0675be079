// Package engine is the entry point to the action resolution engine
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/rpg-spellchain/internal/engine Engine

import (
	"context"
)

// Engine resolves action chains, dice formulas and damage mitigation
type Engine interface {
	// Chain execution
	ExecuteChain(ctx context.Context, input *ExecuteChainInput) (*ExecuteChainOutput, error)
	ValidateChain(ctx context.Context, input *ValidateChainInput) (*ValidateChainOutput, error)

	// Standalone dice
	RollFormula(ctx context.Context, input *RollFormulaInput) (*RollFormulaOutput, error)

	// Post-hoc mitigation of an execution's damage
	ResolveDamage(ctx context.Context, input *ResolveDamageInput) (*ResolveDamageOutput, error)
}
