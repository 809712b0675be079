// Package mitigation turns raw damage into the damage a target actually takes
package mitigation

import (
	"math"
	"strings"

	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
)

// Damage subtypes with special handling
const (
	TypePure        = "pure"
	TypePhysical    = "physical"
	TypeSlashing    = "slashing"
	TypePiercing    = "piercing"
	TypeBludgeoning = "bludgeoning"
	TypeNecrotic    = "necrotic"
	TypePoison      = "poison"
)

// Profile is a target's armor and resistance block
type Profile struct {
	PhysicalArmor int                `json:"physical_armor,omitempty"`
	MagicArmor    int                `json:"magic_armor,omitempty"`
	Multipliers   map[string]float64 `json:"multipliers,omitempty"`
	Undead        bool               `json:"undead,omitempty"`
	UndeadBonus   int                `json:"undead_bonus,omitempty"`
}

// Outcome explains how a single damage value was mitigated
type Outcome struct {
	Raw         int     `json:"raw"`
	Subtype     string  `json:"subtype,omitempty"`
	Multiplier  float64 `json:"multiplier"`
	Armor       int     `json:"armor"`
	UndeadBonus int     `json:"undead_bonus,omitempty"`
	Final       int     `json:"final"`
}

// IsPhysical reports whether a subtype is stopped by physical armor
func IsPhysical(subtype string) bool {
	switch normalize(subtype) {
	case TypePhysical, TypeSlashing, TypePiercing, TypeBludgeoning:
		return true
	default:
		return false
	}
}

// Multiplier returns the profile's multiplier for a subtype, 1 when unset
func (p Profile) Multiplier(subtype string) float64 {
	if m, ok := p.Multipliers[normalize(subtype)]; ok {
		return m
	}
	return 1
}

// Calculate mitigates raw damage of one subtype. Pure damage skips every
// adjustment; nothing ever goes below zero.
func Calculate(raw int, subtype string, p Profile) Outcome {
	subtype = normalize(subtype)
	out := Outcome{Raw: raw, Subtype: subtype, Multiplier: 1}

	if subtype == TypePure {
		out.Final = max(0, raw)
		return out
	}

	out.Multiplier = p.Multiplier(subtype)
	if IsPhysical(subtype) {
		out.Armor = p.PhysicalArmor
	} else {
		out.Armor = p.MagicArmor
	}
	if p.Undead && (subtype == TypeNecrotic || subtype == TypePoison) {
		out.UndeadBonus = p.UndeadBonus
	}

	adjusted := float64(raw)*out.Multiplier - float64(out.Armor) - float64(out.UndeadBonus)
	out.Final = max(0, roundHalfUp(adjusted))
	return out
}

// Breakdown is the mitigated form of an execution's damage breakdown
type Breakdown struct {
	Entries []Outcome `json:"entries"`
	Total   int       `json:"total"`
}

// ApplyBreakdown mitigates every damage entry independently and sums them
func ApplyBreakdown(entries []actions.DamageEntry, p Profile) Breakdown {
	b := Breakdown{Entries: make([]Outcome, 0, len(entries))}
	for _, e := range entries {
		o := Calculate(e.Result, e.Type, p)
		b.Entries = append(b.Entries, o)
		b.Total += o.Final
	}
	return b
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func normalize(subtype string) string {
	return strings.ToLower(strings.TrimSpace(subtype))
}
