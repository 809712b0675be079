package engine

import (
	"context"
	"log/slog"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-spellchain/internal/engine/chain"
	"github.com/KirkDiggler/rpg-spellchain/internal/engine/dice"
	"github.com/KirkDiggler/rpg-spellchain/internal/engine/mitigation"
	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
	"github.com/KirkDiggler/rpg-spellchain/internal/errors"
)

type engine struct {
	interpreter *chain.Interpreter
	roller      *dice.Roller
}

// Config holds the engine dependencies
type Config struct {
	// DiceRoller is the source of randomness. Nil uses the toolkit default.
	DiceRoller toolkitdice.Roller
}

// Validate has nothing to check; every field has a default
func (cfg *Config) Validate() error {
	return nil
}

// New creates an engine
func New(cfg *Config) (Engine, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &engine{
		interpreter: chain.NewInterpreter(cfg.DiceRoller),
		roller:      dice.NewRoller(cfg.DiceRoller),
	}, nil
}

func (e *engine) ExecuteChain(ctx context.Context, input *ExecuteChainInput) (*ExecuteChainOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	res := e.interpreter.Execute(chain.Input{
		Chain:   input.Chain,
		Caster:  input.Caster,
		Options: input.Options,
	})
	if res.HasError() {
		slog.WarnContext(ctx, "chain execution ended with an error",
			"chain_id", res.ChainID,
			"error", res.Error,
			"steps", res.Steps)
	}

	return &ExecuteChainOutput{Result: res}, nil
}

func (e *engine) ValidateChain(_ context.Context, input *ValidateChainInput) (*ValidateChainOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out := &ValidateChainOutput{IsValid: true, Errors: []string{}, Warnings: []string{}}
	if err := input.Chain.Validate(); err != nil {
		out.IsValid = false
		msgs := errors.FieldMessages(err)
		if len(msgs) == 0 {
			msgs = []string{errors.GetMessage(err)}
		}
		out.Errors = append(out.Errors, msgs...)
	}
	if input.Chain != nil {
		out.Warnings = append(out.Warnings, chain.Compile(input.Chain).Warnings...)
	}
	return out, nil
}

func (e *engine) RollFormula(_ context.Context, input *RollFormulaInput) (*RollFormulaOutput, error) {
	if input == nil || input.Formula == "" {
		return nil, errors.InvalidArgument("formula is required")
	}

	f, err := dice.Parse(input.Formula)
	if err != nil {
		return nil, err
	}

	mod := input.Modifier
	if mod == "" {
		mod = actions.RollNormal
	}
	res := e.roller.RollFormulaWithModifier(f, mod)
	if res.Invalid {
		return nil, errors.WrapWithCode(res.Err, errors.CodeInternal, "failed to roll")
	}
	return &RollFormulaOutput{Result: res}, nil
}

func (e *engine) ResolveDamage(_ context.Context, input *ResolveDamageInput) (*ResolveDamageOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	entries := input.Breakdown
	if len(entries) == 0 {
		entries = []actions.DamageEntry{{Result: input.Raw, Type: input.Subtype}}
	}
	return &ResolveDamageOutput{Breakdown: mitigation.ApplyBreakdown(entries, input.Profile)}, nil
}
