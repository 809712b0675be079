// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
)

// ChainBuilder provides a fluent interface for building test chains. Nodes
// get increasing order values in the sequence they are added.
type ChainBuilder struct {
	chain *actions.Chain
}

// NewChainBuilder creates a builder for an empty version 1 chain
func NewChainBuilder(id string) *ChainBuilder {
	return &ChainBuilder{
		chain: &actions.Chain{
			ID:      id,
			Name:    id,
			Version: actions.CurrentChainVersion,
		},
	}
}

// WithName sets the display name
func (b *ChainBuilder) WithName(name string) *ChainBuilder {
	b.chain.Name = name
	return b
}

// WithAffinities sets the element tags
func (b *ChainBuilder) WithAffinities(elements ...string) *ChainBuilder {
	b.chain.Affinities = elements
	return b
}

// WithCost adds a resource cost
func (b *ChainBuilder) WithCost(kind string, amount int) *ChainBuilder {
	b.chain.Costs = append(b.chain.Costs, actions.Cost{ResourceKind: kind, Amount: amount})
	return b
}

// Node appends a node with the next order
func (b *ChainBuilder) Node(id string, step actions.Step) *ChainBuilder {
	return b.NodeWith(actions.Node{ID: id, Step: step})
}

// NodeWith appends a fully specified node, assigning the next order
func (b *ChainBuilder) NodeWith(n actions.Node) *ChainBuilder {
	n.Order = (len(b.chain.Nodes) + 1) * 10
	b.chain.Nodes = append(b.chain.Nodes, n)
	return b
}

// Build returns the chain
func (b *ChainBuilder) Build() *actions.Chain {
	return b.chain
}

// Cast is a d20 cast check with a flat bonus
func Cast(threshold, bonus int) actions.RollCheck {
	return actions.RollCheck{
		Kind:             actions.CheckCast,
		DiceFormula:      "d20",
		Bonuses:          []actions.Bonus{{Kind: actions.BonusFlat, Value: bonus}},
		SuccessThreshold: threshold,
	}
}

// Attack is a d20 attack check with no bonus
func Attack(threshold int) actions.RollCheck {
	return actions.RollCheck{Kind: actions.CheckAttack, SuccessThreshold: threshold}
}

// Damage is a typed damage roll
func Damage(formula, damageType string) actions.RollDamage {
	return actions.RollDamage{DamageFormula: formula, DamageType: damageType}
}

// CasterBuilder provides a fluent interface for building caster snapshots
type CasterBuilder struct {
	caster *actions.CasterSnapshot
}

// NewCasterBuilder creates a caster with no stats
func NewCasterBuilder() *CasterBuilder {
	return &CasterBuilder{
		caster: &actions.CasterSnapshot{
			ID:            "caster-test-123",
			Name:          "Ayla",
			Stats:         map[string]int{},
			Proficiencies: map[string]int{},
			Affinities:    map[string]actions.Affinity{},
		},
	}
}

// WithID sets the caster ID
func (b *CasterBuilder) WithID(id string) *CasterBuilder {
	b.caster.ID = id
	return b
}

// WithStat sets a stat score
func (b *CasterBuilder) WithStat(stat string, score int) *CasterBuilder {
	b.caster.Stats[stat] = score
	return b
}

// WithProficiency sets a proficiency level
func (b *CasterBuilder) WithProficiency(key string, level int) *CasterBuilder {
	b.caster.Proficiencies[key] = level
	return b
}

// WithAffinity sets the modifiers for an element
func (b *CasterBuilder) WithAffinity(element string, a actions.Affinity) *CasterBuilder {
	b.caster.Affinities[element] = a
	return b
}

// Build returns the caster
func (b *CasterBuilder) Build() *actions.CasterSnapshot {
	return b.caster
}
