package v1alpha1

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-spellchain/internal/engine/dice"
	"github.com/KirkDiggler/rpg-spellchain/internal/engine/mitigation"
	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
	"github.com/KirkDiggler/rpg-spellchain/internal/errors"
	executionhistory "github.com/KirkDiggler/rpg-spellchain/internal/repositories/execution_history"
)

// SaveChainRequest stores a chain definition
type SaveChainRequest struct {
	Chain *actions.Chain `json:"chain"`
}

// SaveChainResponse returns the stored chain and its compile warnings
type SaveChainResponse struct {
	Chain    *actions.Chain `json:"chain"`
	Created  bool           `json:"created"`
	Warnings []string       `json:"warnings"`
}

// GetChainRequest loads a chain
type GetChainRequest struct {
	ChainID string `json:"chain_id"`
}

// GetChainResponse returns a stored chain
type GetChainResponse struct {
	Chain     *actions.Chain `json:"chain"`
	CreatedAt string         `json:"created_at,omitempty"`
	UpdatedAt string         `json:"updated_at,omitempty"`
}

// ListChainsRequest lists stored chains
type ListChainsRequest struct {
	Affinity string `json:"affinity,omitempty"`
}

// ListChainsResponse returns stored chains
type ListChainsResponse struct {
	Chains []*actions.Chain `json:"chains"`
}

// DeleteChainRequest removes a chain
type DeleteChainRequest struct {
	ChainID string `json:"chain_id"`
}

// DeleteChainResponse is empty
type DeleteChainResponse struct{}

// ExecuteChainRequest runs a stored chain by ID or an inline chain
type ExecuteChainRequest struct {
	ChainID string                  `json:"chain_id,omitempty"`
	Chain   *actions.Chain          `json:"chain,omitempty"`
	Caster  *actions.CasterSnapshot `json:"caster"`
	Options actions.Options         `json:"options"`
}

// ExecuteChainResponse returns the execution result
type ExecuteChainResponse struct {
	ExecutionID string                   `json:"execution_id"`
	Result      *actions.ExecutionResult `json:"result"`
}

// RollFormulaRequest rolls a standalone formula
type RollFormulaRequest struct {
	Formula  string               `json:"formula"`
	Modifier actions.RollModifier `json:"modifier,omitempty"`
}

// RollFormulaResponse returns a standalone roll
type RollFormulaResponse struct {
	Formula   string `json:"formula"`
	Dice      []int  `json:"dice"`
	Discarded []int  `json:"discarded,omitempty"`
	Modifier  int    `json:"modifier"`
	Total     int    `json:"total"`
	Natural   int    `json:"natural,omitempty"`
}

// ResolveDamageRequest mitigates a breakdown, or a single raw value, against a profile
type ResolveDamageRequest struct {
	Breakdown []actions.DamageEntry `json:"breakdown,omitempty"`
	Raw       int                   `json:"raw,omitempty"`
	Subtype   string                `json:"subtype,omitempty"`
	Profile   mitigation.Profile    `json:"profile"`
}

// ResolveDamageResponse returns mitigated damage
type ResolveDamageResponse struct {
	Breakdown mitigation.Breakdown `json:"breakdown"`
}

// GetHistoryRequest loads a caster's recent executions
type GetHistoryRequest struct {
	CasterID string `json:"caster_id"`
}

// GetHistoryResponse returns a caster's recent executions
type GetHistoryResponse struct {
	History *executionhistory.History `json:"history"`
}

func newRollFormulaResponse(r dice.Result) *RollFormulaResponse {
	return &RollFormulaResponse{
		Formula:   r.Formula,
		Dice:      r.Dice,
		Discarded: r.Discarded,
		Modifier:  r.Modifier,
		Total:     r.Total,
		Natural:   r.Natural,
	}
}

// Encode converts a message into the Struct sent on the wire
func Encode(msg any) (*structpb.Struct, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal message")
	}

	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, errors.Wrapf(err, "failed to convert message to struct")
	}
	return out, nil
}

// Decode converts a wire Struct into a message. Malformed input is an invalid argument.
func Decode(in *structpb.Struct, msg any) error {
	if in == nil {
		return errors.InvalidArgument("request is required")
	}

	data, err := protojson.Marshal(in)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read request")
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed request")
	}
	return nil
}

// Invoke sends req to method and decodes the reply into resp
func Invoke(ctx context.Context, client ActionServiceClient, method string, req, resp any, opts ...grpc.CallOption) error {
	in, err := Encode(req)
	if err != nil {
		return err
	}

	out, err := client.Call(ctx, method, in, opts...)
	if err != nil {
		return errors.FromGRPCError(err)
	}

	return Decode(out, resp)
}
