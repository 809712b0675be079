// Package executionhistory provides repository interface and types for per-caster execution history
package executionhistory

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=executionhistorymock github.com/KirkDiggler/rpg-spellchain/internal/repositories/execution_history Repository

// History is the recent executions of one caster, newest last
type History struct {
	// Caster that ran these chains
	CasterID string `json:"caster_id"`

	Entries []Entry `json:"entries"`

	// When this history was first written
	CreatedAt time.Time `json:"created_at"`

	// When this history expires unless another execution is appended
	ExpiresAt time.Time `json:"expires_at"`
}

// Entry summarizes a single chain execution
type Entry struct {
	ExecutionID          string `json:"execution_id"`
	ChainID              string `json:"chain_id"`
	Success              bool   `json:"success"`
	TotalDamage          int    `json:"total_damage"`
	InferredDamageType   string `json:"inferred_damage_type,omitempty"`
	ResolvedResourceCost int    `json:"resolved_resource_cost"`
	IsCrit               bool   `json:"is_crit,omitempty"`
	IsCritFail           bool   `json:"is_crit_fail,omitempty"`
	Steps                int    `json:"steps"`

	// Error is set when the execution was flagged
	Error string `json:"error,omitempty"`

	ExecutedAt time.Time `json:"executed_at"`
}

// AppendInput contains parameters for recording an execution
type AppendInput struct {
	CasterID string
	Entry    Entry
	TTL      time.Duration // How long the history lives after this append
}

// AppendOutput contains the history after the append
type AppendOutput struct {
	History *History
}

// GetInput contains parameters for retrieving a history
type GetInput struct {
	CasterID string
}

// GetOutput contains the retrieved history
type GetOutput struct {
	History *History
}

// DeleteInput contains parameters for deleting a history
type DeleteInput struct {
	CasterID string
}

// DeleteOutput contains the result of deleting a history
type DeleteOutput struct {
	EntriesDeleted int32
}

// Repository defines the interface for execution history storage operations
type Repository interface {
	// Append adds an entry, trimming the oldest beyond the configured limit
	Append(ctx context.Context, input AppendInput) (*AppendOutput, error)

	// Get retrieves the history for a caster
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes the history for a caster
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
