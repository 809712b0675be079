package actions

// RollModifier selects advantage handling for a d20 roll
type RollModifier string

// Roll modifiers
const (
	RollNormal       RollModifier = "normal"
	RollAdvantage    RollModifier = "advantage"
	RollDisadvantage RollModifier = "disadvantage"
)

// ParseRollModifier maps free-form input onto a modifier, defaulting to normal
func ParseRollModifier(s string) RollModifier {
	switch RollModifier(s) {
	case RollAdvantage, "adv":
		return RollAdvantage
	case RollDisadvantage, "dis":
		return RollDisadvantage
	default:
		return RollNormal
	}
}

// Options are the per-invocation knobs supplied by the caller
type Options struct {
	TargetCount     int          `json:"target_count,omitempty"`
	ProjectileCount int          `json:"projectile_count,omitempty"`
	RollModifier    RollModifier `json:"roll_modifier,omitempty"`
}

// RollRecord is one entry of the roll history
type RollRecord struct {
	NodeID    string `json:"node_id,omitempty"`
	Formula   string `json:"formula"`
	Dice      []int  `json:"dice"`
	Discarded []int  `json:"discarded,omitempty"`
	Modifier  int    `json:"modifier"`
	Total     int    `json:"total"`
	Natural   int    `json:"natural,omitempty"`
}

// DamageEntry is one line of the damage breakdown
type DamageEntry struct {
	NodeID  string `json:"node_id,omitempty"`
	Formula string `json:"formula"`
	Result  int    `json:"result"`
	Type    string `json:"type,omitempty"`
	Crit    bool   `json:"crit,omitempty"`
}

// ResourceChange is a pending adjustment the caller applies after execution
type ResourceChange struct {
	ResourceKind string `json:"resource_kind"`
	Amount       int    `json:"amount"`
	ResourceID   string `json:"resource_id,omitempty"`
	Source       string `json:"source,omitempty"`
}

// ExecutionResult is the outcome of one chain invocation
type ExecutionResult struct {
	ChainID                string           `json:"chain_id,omitempty"`
	Success                bool             `json:"success"`
	TotalDamage            int              `json:"total_damage"`
	InferredDamageType     string           `json:"inferred_damage_type,omitempty"`
	ResolvedResourceCost   int              `json:"resolved_resource_cost"`
	PendingResourceChanges []ResourceChange `json:"pending_resource_changes"`
	RollHistory            []RollRecord     `json:"roll_history"`
	DamageBreakdown        []DamageEntry    `json:"damage_breakdown"`
	Log                    []string         `json:"log"`
	ContextValues          map[string]Value `json:"context_values"`
	IsCrit                 bool             `json:"is_crit,omitempty"`
	IsCritFail             bool             `json:"is_crit_fail,omitempty"`
	Steps                  int              `json:"steps"`
	Error                  string           `json:"error,omitempty"`
}

// HasError reports whether execution ended on an anomaly
func (r *ExecutionResult) HasError() bool {
	return r != nil && r.Error != ""
}
