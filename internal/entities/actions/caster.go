package actions

import "github.com/KirkDiggler/rpg-toolkit/core"

// EntityTypeCaster is the rpg-toolkit entity type of a caster snapshot
const EntityTypeCaster = "caster"

// Affinity holds a caster's per-element modifiers
type Affinity struct {
	CastBonus     int `json:"cast_bonus,omitempty"`
	DamageBonus   int `json:"damage_bonus,omitempty"`
	ManaReduction int `json:"mana_reduction,omitempty"`
}

// CasterSnapshot is the read-only view of whoever invokes a chain
type CasterSnapshot struct {
	ID            string              `json:"id"`
	Name          string              `json:"name,omitempty"`
	Stats         map[string]int      `json:"stats,omitempty"`
	Proficiencies map[string]int      `json:"proficiencies,omitempty"`
	Affinities    map[string]Affinity `json:"affinities,omitempty"`
}

var _ core.Entity = (*CasterSnapshot)(nil)

// GetID returns the caster ID
func (c *CasterSnapshot) GetID() string {
	return c.ID
}

// GetType returns the entity type for rpg-toolkit
func (c *CasterSnapshot) GetType() string {
	return EntityTypeCaster
}

// Stat returns a stat score, 0 when absent
func (c *CasterSnapshot) Stat(name string) int {
	if c == nil {
		return 0
	}
	return c.Stats[name]
}

// Proficiency returns a proficiency level, 0 when absent
func (c *CasterSnapshot) Proficiency(key string) int {
	if c == nil {
		return 0
	}
	return c.Proficiencies[key]
}

// Affinity returns the modifiers for an element
func (c *CasterSnapshot) Affinity(element string) Affinity {
	if c == nil || element == "" {
		return Affinity{}
	}
	return c.Affinities[element]
}

// DisplayName prefers the name and falls back to the ID
func (c *CasterSnapshot) DisplayName() string {
	if c == nil {
		return ""
	}
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}
