// Package action implements the orchestrator for storing and running action chains
package action

//go:generate mockgen -destination=mock/mock_service.go -package=actionmock github.com/KirkDiggler/rpg-spellchain/internal/orchestrators/action Service

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-spellchain/internal/engine"
	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
	"github.com/KirkDiggler/rpg-spellchain/internal/errors"
	"github.com/KirkDiggler/rpg-spellchain/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-spellchain/internal/pkg/idgen"
	actionchain "github.com/KirkDiggler/rpg-spellchain/internal/repositories/action_chain"
	executionhistory "github.com/KirkDiggler/rpg-spellchain/internal/repositories/execution_history"
)

const (
	// EventChainExecuted is published after every execution, sourced by the caster
	EventChainExecuted = "action.chain.executed"

	// Keys set on the event context
	EventKeyChainID     = "chain_id"
	EventKeyExecutionID = "execution_id"
	EventKeySuccess     = "success"
	EventKeyTotalDamage = "total_damage"
)

// Service defines the interface for action chain operations
type Service interface {
	// Chain definitions
	SaveChain(ctx context.Context, input *SaveChainInput) (*SaveChainOutput, error)
	GetChain(ctx context.Context, input *GetChainInput) (*GetChainOutput, error)
	ListChains(ctx context.Context, input *ListChainsInput) (*ListChainsOutput, error)
	DeleteChain(ctx context.Context, input *DeleteChainInput) (*DeleteChainOutput, error)

	// Execution
	ExecuteChain(ctx context.Context, input *ExecuteChainInput) (*ExecuteChainOutput, error)
	GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error)

	// Standalone helpers
	RollFormula(ctx context.Context, input *RollFormulaInput) (*RollFormulaOutput, error)
	ResolveDamage(ctx context.Context, input *ResolveDamageInput) (*ResolveDamageOutput, error)
}

// Config holds the dependencies for the action orchestrator
type Config struct {
	ChainRepo   actionchain.Repository
	HistoryRepo executionhistory.Repository
	Engine      engine.Engine
	IDGenerator idgen.Generator

	// EventBus is optional; executions are not published without one
	EventBus events.EventBus
	Clock    clock.Clock

	// HistoryTTL overrides the history repository default when set
	HistoryTTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.ChainRepo == nil {
		vb.RequiredField("ChainRepo")
	}
	if c.HistoryRepo == nil {
		vb.RequiredField("HistoryRepo")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.HistoryTTL < 0 {
		vb.InvalidField("HistoryTTL", "cannot be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	chainRepo   actionchain.Repository
	historyRepo executionhistory.Repository
	engine      engine.Engine
	idGen       idgen.Generator
	eventBus    events.EventBus
	clock       clock.Clock
	historyTTL  time.Duration
}

// NewOrchestrator creates a new action orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &orchestrator{
		chainRepo:   cfg.ChainRepo,
		historyRepo: cfg.HistoryRepo,
		engine:      cfg.Engine,
		idGen:       cfg.IDGenerator,
		eventBus:    cfg.EventBus,
		clock:       c,
		historyTTL:  cfg.HistoryTTL,
	}, nil
}

// SaveChain validates and stores a chain definition
func (o *orchestrator) SaveChain(ctx context.Context, input *SaveChainInput) (*SaveChainOutput, error) {
	if input == nil || input.Chain == nil {
		return nil, errors.InvalidArgument("chain is required")
	}

	chain := input.Chain
	if chain.ID == "" {
		chain.ID = o.idGen.Generate(idgen.KindChain)
	}
	if chain.Version == 0 {
		chain.Version = actions.CurrentChainVersion
	}

	validation, err := o.engine.ValidateChain(ctx, &engine.ValidateChainInput{Chain: chain})
	if err != nil {
		return nil, errors.Wrap(err, "failed to validate chain")
	}
	if !validation.IsValid {
		return nil, errors.InvalidArgumentf("chain %s is invalid", chain.ID).
			WithMeta(errors.MetaValidationErrors, validation.Errors)
	}

	saved, err := o.chainRepo.Save(ctx, actionchain.SaveInput{Chain: chain})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save chain %s", chain.ID)
	}

	slog.InfoContext(ctx, "saved action chain",
		"chain_id", chain.ID,
		"created", saved.Created,
		"nodes", len(chain.Nodes),
		"warnings", len(validation.Warnings))

	return &SaveChainOutput{
		Chain:    saved.Chain,
		Created:  saved.Created,
		Warnings: validation.Warnings,
	}, nil
}

// GetChain loads a stored chain
func (o *orchestrator) GetChain(ctx context.Context, input *GetChainInput) (*GetChainOutput, error) {
	if input == nil || input.ChainID == "" {
		return nil, errors.InvalidArgument("chain ID is required")
	}

	out, err := o.chainRepo.Get(ctx, actionchain.GetInput{ID: input.ChainID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get chain %s", input.ChainID)
	}

	return &GetChainOutput{
		Chain:     out.Chain,
		CreatedAt: out.CreatedAt,
		UpdatedAt: out.UpdatedAt,
	}, nil
}

// ListChains returns stored chains, optionally by affinity
func (o *orchestrator) ListChains(ctx context.Context, input *ListChainsInput) (*ListChainsOutput, error) {
	if input == nil {
		input = &ListChainsInput{}
	}

	out, err := o.chainRepo.List(ctx, actionchain.ListInput{Affinity: input.Affinity})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list chains")
	}

	return &ListChainsOutput{Chains: out.Chains}, nil
}

// DeleteChain removes a stored chain
func (o *orchestrator) DeleteChain(ctx context.Context, input *DeleteChainInput) (*DeleteChainOutput, error) {
	if input == nil || input.ChainID == "" {
		return nil, errors.InvalidArgument("chain ID is required")
	}

	if _, err := o.chainRepo.Delete(ctx, actionchain.DeleteInput{ID: input.ChainID}); err != nil {
		return nil, errors.Wrapf(err, "failed to delete chain %s", input.ChainID)
	}

	slog.InfoContext(ctx, "deleted action chain", "chain_id", input.ChainID)
	return &DeleteChainOutput{}, nil
}

// ExecuteChain runs a stored or inline chain, records it and publishes the outcome.
// Anomalies inside the chain are part of the result, not errors.
func (o *orchestrator) ExecuteChain(ctx context.Context, input *ExecuteChainInput) (*ExecuteChainOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Caster == nil || input.Caster.ID == "" {
		return nil, errors.InvalidArgument("caster with an ID is required")
	}
	if (input.ChainID == "") == (input.Chain == nil) {
		return nil, errors.InvalidArgument("exactly one of chain ID or inline chain is required")
	}

	chain := input.Chain
	if input.ChainID != "" {
		loaded, err := o.chainRepo.Get(ctx, actionchain.GetInput{ID: input.ChainID})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load chain %s", input.ChainID)
		}
		chain = loaded.Chain
	}

	out, err := o.engine.ExecuteChain(ctx, &engine.ExecuteChainInput{
		Chain:   chain,
		Caster:  input.Caster,
		Options: input.Options,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute chain")
	}

	executionID := o.idGen.Generate(idgen.KindExecution)
	result := out.Result

	o.recordHistory(ctx, input.Caster.ID, executionID, result)
	o.publishExecuted(ctx, input.Caster, executionID, result)

	slog.InfoContext(ctx, "executed action chain",
		"chain_id", result.ChainID,
		"execution_id", executionID,
		"caster_id", input.Caster.ID,
		"success", result.Success,
		"total_damage", result.TotalDamage,
		"steps", result.Steps)

	return &ExecuteChainOutput{
		ExecutionID: executionID,
		Result:      result,
	}, nil
}

// GetHistory returns the recent executions of a caster. A caster with none gets an empty history.
func (o *orchestrator) GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error) {
	if input == nil || input.CasterID == "" {
		return nil, errors.InvalidArgument("caster ID is required")
	}

	out, err := o.historyRepo.Get(ctx, executionhistory.GetInput{CasterID: input.CasterID})
	if err != nil {
		if errors.IsNotFound(err) {
			return &GetHistoryOutput{History: &executionhistory.History{
				CasterID: input.CasterID,
				Entries:  []executionhistory.Entry{},
			}}, nil
		}
		return nil, errors.Wrapf(err, "failed to get history for caster %s", input.CasterID)
	}

	return &GetHistoryOutput{History: out.History}, nil
}

// RollFormula rolls a standalone dice formula
func (o *orchestrator) RollFormula(ctx context.Context, input *RollFormulaInput) (*RollFormulaOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.engine.RollFormula(ctx, &engine.RollFormulaInput{
		Formula:  input.Formula,
		Modifier: input.Modifier,
	})
	if err != nil {
		return nil, err
	}

	return &RollFormulaOutput{Result: out.Result}, nil
}

// ResolveDamage mitigates damage against a target profile
func (o *orchestrator) ResolveDamage(ctx context.Context, input *ResolveDamageInput) (*ResolveDamageOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.engine.ResolveDamage(ctx, &engine.ResolveDamageInput{
		Breakdown: input.Breakdown,
		Raw:       input.Raw,
		Subtype:   input.Subtype,
		Profile:   input.Profile,
	})
	if err != nil {
		return nil, err
	}

	return &ResolveDamageOutput{Breakdown: out.Breakdown}, nil
}

// recordHistory appends the execution. Failures are logged; the result still stands.
func (o *orchestrator) recordHistory(ctx context.Context, casterID, executionID string, result *actions.ExecutionResult) {
	_, err := o.historyRepo.Append(ctx, executionhistory.AppendInput{
		CasterID: casterID,
		TTL:      o.historyTTL,
		Entry: executionhistory.Entry{
			ExecutionID:          executionID,
			ChainID:              result.ChainID,
			Success:              result.Success,
			TotalDamage:          result.TotalDamage,
			InferredDamageType:   result.InferredDamageType,
			ResolvedResourceCost: result.ResolvedResourceCost,
			IsCrit:               result.IsCrit,
			IsCritFail:           result.IsCritFail,
			Steps:                result.Steps,
			Error:                result.Error,
			ExecutedAt:           o.clock.Now(),
		},
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to record execution history",
			"caster_id", casterID,
			"execution_id", executionID,
			"error", err.Error())
	}
}

func (o *orchestrator) publishExecuted(
	ctx context.Context,
	caster *actions.CasterSnapshot,
	executionID string,
	result *actions.ExecutionResult,
) {
	if o.eventBus == nil {
		return
	}

	event := events.NewGameEvent(EventChainExecuted, caster, nil)
	event.Context().Set(EventKeyChainID, result.ChainID)
	event.Context().Set(EventKeyExecutionID, executionID)
	event.Context().Set(EventKeySuccess, result.Success)
	event.Context().Set(EventKeyTotalDamage, result.TotalDamage)

	if err := o.eventBus.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish execution event",
			"execution_id", executionID,
			"error", err.Error())
	}
}
