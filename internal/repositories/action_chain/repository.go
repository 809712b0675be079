// Package actionchain provides storage for authored action chain definitions
package actionchain

import (
	"context"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=actionchainmock github.com/KirkDiggler/rpg-spellchain/internal/repositories/action_chain Repository

// SaveInput contains the chain to store. Existing chains with the same ID are replaced.
type SaveInput struct {
	Chain *actions.Chain
}

// SaveOutput contains the stored chain
type SaveOutput struct {
	Chain     *actions.Chain
	Created   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetInput contains parameters for retrieving a chain
type GetInput struct {
	ID string
}

// GetOutput contains the retrieved chain
type GetOutput struct {
	Chain     *actions.Chain
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListInput contains parameters for listing chains
type ListInput struct {
	// Affinity limits the result to chains tagged with this element. Empty lists everything.
	Affinity string
}

// ListOutput contains the stored chains ordered by ID
type ListOutput struct {
	Chains []*actions.Chain
}

// DeleteInput contains parameters for deleting a chain
type DeleteInput struct {
	ID string
}

// DeleteOutput contains the result of deleting a chain
type DeleteOutput struct{}

// Repository defines the interface for action chain storage
type Repository interface {
	// Save creates or replaces a chain definition
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get retrieves a chain by ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List returns stored chains, optionally filtered by affinity
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Delete removes a chain
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

const (
	errChainNil     = "chain cannot be nil"
	errChainIDEmpty = "chain ID cannot be empty"
)

// record is the persisted form shared by every store
type record struct {
	Chain     *actions.Chain `json:"chain"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func hasAffinity(chain *actions.Chain, affinity string) bool {
	if affinity == "" {
		return true
	}
	for _, a := range chain.Affinities {
		if strings.EqualFold(a, affinity) {
			return true
		}
	}
	return false
}
