package actions

import (
	"fmt"

	"github.com/KirkDiggler/rpg-spellchain/internal/errors"
)

// MaxChainNameLength bounds the display name of a chain
const MaxChainNameLength = 128

// Validate checks the authored structure of a chain before it is stored.
// Execution never requires a valid chain; it degrades on bad nodes instead.
func (c *Chain) Validate() error {
	vb := errors.NewValidationBuilder()

	if c == nil {
		return vb.RequiredField("chain").Build()
	}

	errors.ValidateRequired("id", c.ID, vb)
	errors.ValidateMaxLength("name", c.Name, MaxChainNameLength, vb)
	errors.ValidateRange("version", c.Version, 0, CurrentChainVersion, vb)
	if len(c.Nodes) == 0 {
		vb.Field("nodes", "at least one node is required")
	}

	seen := make(map[string]bool, len(c.Nodes))
	for i, node := range c.Nodes {
		field := fmt.Sprintf("nodes[%d]", i)
		if node.ID == "" {
			vb.Field(field+".id", "is required")
			continue
		}
		if node.ID == TargetNext || node.ID == TargetStop {
			vb.Fieldf(field+".id", "%q is reserved", node.ID)
		}
		if seen[node.ID] {
			vb.Fieldf(field+".id", "duplicate id %q", node.ID)
		}
		seen[node.ID] = true
		switch step := node.Step.(type) {
		case nil:
			vb.Field(field+".type", "is required")
		case RollTable:
			ranges := make([][2]int, len(step.Entries))
			for j, e := range step.Entries {
				ranges[j] = [2]int{e.Min, e.Max}
			}
			validateRanges(field+".entries", ranges, vb)
		case DamageTiers:
			ranges := make([][2]int, len(step.Tiers))
			for j, t := range step.Tiers {
				ranges[j] = [2]int{t.MinRoll, t.MaxRoll}
			}
			validateRanges(field+".tiers", ranges, vb)
		}
	}

	for i, cost := range c.Costs {
		if cost.ResourceKind == "" {
			vb.RequiredField(fmt.Sprintf("costs[%d].resource_kind", i))
		}
		if cost.Amount < 0 {
			vb.Fieldf(fmt.Sprintf("costs[%d].amount", i), "must not be negative")
		}
	}

	return vb.Build()
}

// validateRanges flags inverted ranges and any pair that shares a roll
func validateRanges(field string, ranges [][2]int, vb *errors.ValidationBuilder) {
	for i, r := range ranges {
		if r[0] > r[1] {
			vb.Fieldf(fmt.Sprintf("%s[%d]", field, i), "min %d is greater than max %d", r[0], r[1])
			continue
		}
		for j := 0; j < i; j++ {
			prev := ranges[j]
			if prev[0] <= prev[1] && r[0] <= prev[1] && prev[0] <= r[1] {
				vb.Fieldf(fmt.Sprintf("%s[%d]", field, i), "overlaps %s[%d]", field, j)
			}
		}
	}
}
