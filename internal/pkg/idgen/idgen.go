// Package idgen generates the identifiers the service assigns: chain IDs for
// chains saved without one, and execution IDs for every run
package idgen

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/KirkDiggler/rpg-spellchain/internal/pkg/idgen Generator

// Kind is the ID namespace and doubles as its prefix
type Kind string

// ID kinds
const (
	KindChain     Kind = "chain"
	KindExecution Kind = "exec"
)

// Generator generates unique identifiers of a kind
type Generator interface {
	Generate(kind Kind) string
}

// UUIDGenerator generates kind-prefixed random UUIDs
type UUIDGenerator struct{}

// NewUUID creates a UUID generator
func NewUUID() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns kind_<uuid>
func (g *UUIDGenerator) Generate(kind Kind) string {
	return format(kind, uuid.NewString())
}

// SequentialGenerator numbers IDs per kind starting at 1. Output is
// deterministic, so simulations and tests use it.
type SequentialGenerator struct {
	mu       sync.Mutex
	counters map[Kind]uint64
}

// NewSequential creates a sequential generator
func NewSequential() *SequentialGenerator {
	return &SequentialGenerator{counters: make(map[Kind]uint64)}
}

// Generate returns kind_<n>
func (g *SequentialGenerator) Generate(kind Kind) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.counters[kind]++
	return format(kind, fmt.Sprintf("%d", g.counters[kind]))
}

func format(kind Kind, id string) string {
	if kind == "" {
		return id
	}
	return string(kind) + "_" + id
}
