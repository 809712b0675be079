// Package v1alpha1 handles the action chain grpc service interface
package v1alpha1

import (
	"context"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-spellchain/internal/errors"
	"github.com/KirkDiggler/rpg-spellchain/internal/orchestrators/action"
)

// HandlerConfig holds dependencies for the action handler
type HandlerConfig struct {
	ActionService action.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil || c.ActionService == nil {
		return errors.InvalidArgument("action service is required")
	}
	return nil
}

// Handler implements the action chain gRPC service
type Handler struct {
	actionService action.Service
}

var _ ActionServiceServer = (*Handler)(nil)

// NewHandler creates a new action handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		actionService: cfg.ActionService,
	}, nil
}

// SaveChain validates and stores a chain definition
func (h *Handler) SaveChain(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in SaveChainRequest
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.Chain == nil {
		return nil, errors.ToGRPCError(errors.InvalidArgument("chain is required"))
	}

	out, err := h.actionService.SaveChain(ctx, &action.SaveChainInput{Chain: in.Chain})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&SaveChainResponse{
		Chain:    out.Chain,
		Created:  out.Created,
		Warnings: nonNilStrings(out.Warnings),
	})
}

// GetChain loads a stored chain
func (h *Handler) GetChain(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in GetChainRequest
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.ChainID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("chain_id is required"))
	}

	out, err := h.actionService.GetChain(ctx, &action.GetChainInput{ChainID: in.ChainID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&GetChainResponse{
		Chain:     out.Chain,
		CreatedAt: formatTime(out.CreatedAt),
		UpdatedAt: formatTime(out.UpdatedAt),
	})
}

// ListChains lists stored chains
func (h *Handler) ListChains(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in ListChainsRequest
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.actionService.ListChains(ctx, &action.ListChainsInput{Affinity: in.Affinity})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&ListChainsResponse{Chains: out.Chains})
}

// DeleteChain removes a stored chain
func (h *Handler) DeleteChain(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in DeleteChainRequest
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.ChainID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("chain_id is required"))
	}

	if _, err := h.actionService.DeleteChain(ctx, &action.DeleteChainInput{ChainID: in.ChainID}); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&DeleteChainResponse{})
}

// ExecuteChain runs a stored or inline chain
func (h *Handler) ExecuteChain(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in ExecuteChainRequest
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.Caster == nil {
		return nil, errors.ToGRPCError(errors.InvalidArgument("caster is required"))
	}

	out, err := h.actionService.ExecuteChain(ctx, &action.ExecuteChainInput{
		ChainID: in.ChainID,
		Chain:   in.Chain,
		Caster:  in.Caster,
		Options: in.Options,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&ExecuteChainResponse{
		ExecutionID: out.ExecutionID,
		Result:      out.Result,
	})
}

// RollFormula rolls a standalone formula
func (h *Handler) RollFormula(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in RollFormulaRequest
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.Formula == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("formula is required"))
	}

	out, err := h.actionService.RollFormula(ctx, &action.RollFormulaInput{
		Formula:  in.Formula,
		Modifier: in.Modifier,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(newRollFormulaResponse(out.Result))
}

// ResolveDamage mitigates damage against a target profile
func (h *Handler) ResolveDamage(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in ResolveDamageRequest
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.actionService.ResolveDamage(ctx, &action.ResolveDamageInput{
		Breakdown: in.Breakdown,
		Raw:       in.Raw,
		Subtype:   in.Subtype,
		Profile:   in.Profile,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&ResolveDamageResponse{Breakdown: out.Breakdown})
}

// GetHistory returns a caster's recent executions
func (h *Handler) GetHistory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in GetHistoryRequest
	if err := Decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.CasterID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("caster_id is required"))
	}

	out, err := h.actionService.GetHistory(ctx, &action.GetHistoryInput{CasterID: in.CasterID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&GetHistoryResponse{History: out.History})
}

func respond(msg any) (*structpb.Struct, error) {
	out, err := Encode(msg)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return out, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
