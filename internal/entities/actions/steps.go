package actions

// StepType is the wire discriminator of a node payload
type StepType string

// Step types
const (
	StepRollCheck      StepType = "roll_check"
	StepRollDamage     StepType = "roll_damage"
	StepRollDice       StepType = "roll_dice"
	StepRollTable      StepType = "roll_table"
	StepDamageTiers    StepType = "damage_tiers"
	StepBranch         StepType = "branch"
	StepGoto           StepType = "goto"
	StepStop           StepType = "stop"
	StepSetValue       StepType = "set_value"
	StepModifyResource StepType = "modify_resource"
	StepMessage        StepType = "message"
)

// Step is the type-specific payload of a node. The set of implementations
// is closed to this package.
type Step interface {
	StepType() StepType
	isStep()
}

// CheckKind distinguishes attack, cast and plain checks
type CheckKind string

// Check kinds
const (
	CheckAttack CheckKind = "attack"
	CheckCast   CheckKind = "cast"
	CheckPlain  CheckKind = "check"
)

// BonusKind names where a roll bonus comes from
type BonusKind string

// Bonus kinds
const (
	BonusFlat        BonusKind = "flat"
	BonusStat        BonusKind = "stat"
	BonusProficiency BonusKind = "proficiency"
	BonusAffinity    BonusKind = "affinity"
)

// Bonus adds to a check total
type Bonus struct {
	Kind       BonusKind `json:"kind"`
	Value      int       `json:"value,omitempty"`
	Stat       string    `json:"stat,omitempty"`
	Multiplier float64   `json:"multiplier,omitempty"`
	Key        string    `json:"key,omitempty"`
	Element    string    `json:"element,omitempty"`
	Label      string    `json:"label,omitempty"`
}

// RollCheck rolls d20 plus bonuses against a threshold
type RollCheck struct {
	Kind             CheckKind `json:"kind"`
	DiceFormula      string    `json:"dice_formula,omitempty"`
	Bonuses          []Bonus   `json:"bonuses,omitempty"`
	SuccessThreshold int       `json:"success_threshold"`
	SaveAs           string    `json:"save_as,omitempty"`
}

// RollDamage rolls a damage formula into the breakdown
type RollDamage struct {
	DamageFormula     string `json:"damage_formula"`
	DamageType        string `json:"damage_type,omitempty"`
	FromContext       string `json:"from_context,omitempty"`
	CritMultiplier    int    `json:"crit_multiplier,omitempty"`
	AddElementalBonus bool   `json:"add_elemental_bonus,omitempty"`
	ForcePureOnCrit   bool   `json:"force_pure_on_crit,omitempty"`
	SaveAs            string `json:"save_as,omitempty"`
}

// RollDice rolls a formula and stores the total
type RollDice struct {
	DiceFormula string `json:"dice_formula"`
	SaveAs      string `json:"save_as,omitempty"`
}

// TableEntry maps an inclusive roll range to an outcome
type TableEntry struct {
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Value Value  `json:"value"`
	Label string `json:"label,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// RollTable rolls a formula and looks up the matching entry
type RollTable struct {
	DiceFormula string       `json:"dice_formula"`
	Entries     []TableEntry `json:"entries"`
	SaveAs      string       `json:"save_as,omitempty"`
}

// DamageTier maps an inclusive selector range to a damage formula
type DamageTier struct {
	MinRoll int    `json:"min_roll"`
	MaxRoll int    `json:"max_roll"`
	Formula string `json:"formula"`
	Label   string `json:"label,omitempty"`
}

// DamageTiers rolls a selector and then the matching tier's damage
type DamageTiers struct {
	DiceFormula       string       `json:"dice_formula"`
	Tiers             []DamageTier `json:"tiers"`
	DamageType        string       `json:"damage_type,omitempty"`
	FromContext       string       `json:"from_context,omitempty"`
	CritMultiplier    int          `json:"crit_multiplier,omitempty"`
	AddElementalBonus bool         `json:"add_elemental_bonus,omitempty"`
	ForcePureOnCrit   bool         `json:"force_pure_on_crit,omitempty"`
}

// Branch picks one of two targets from a single condition
type Branch struct {
	Condition   Condition `json:"condition"`
	TrueTarget  string    `json:"true_target"`
	FalseTarget string    `json:"false_target"`
}

// Goto jumps unconditionally
type Goto struct {
	Target string `json:"target"`
}

// Stop ends the chain
type Stop struct{}

// SetValue writes one of a literal, a rolled formula or a copied value
type SetValue struct {
	Key      string `json:"key"`
	Literal  *Value `json:"literal,omitempty"`
	Formula  string `json:"formula,omitempty"`
	CopyFrom string `json:"copy_from,omitempty"`
}

// ResourceOperation is spend or restore
type ResourceOperation string

// Resource operations
const (
	ResourceSpend   ResourceOperation = "spend"
	ResourceRestore ResourceOperation = "restore"
)

// ModifyResource queues a resource change for the caller
type ModifyResource struct {
	ResourceKind string            `json:"resource_kind"`
	Operation    ResourceOperation `json:"operation"`
	Amount       string            `json:"amount"`
	ResourceID   string            `json:"resource_id,omitempty"`
}

// Message renders a template into the log
type Message struct {
	Template string `json:"template"`
}

// UnknownStep holds a node whose type this build does not recognize
type UnknownStep struct {
	Type string `json:"-"`
}

func (RollCheck) StepType() StepType      { return StepRollCheck }
func (RollDamage) StepType() StepType     { return StepRollDamage }
func (RollDice) StepType() StepType       { return StepRollDice }
func (RollTable) StepType() StepType      { return StepRollTable }
func (DamageTiers) StepType() StepType    { return StepDamageTiers }
func (Branch) StepType() StepType         { return StepBranch }
func (Goto) StepType() StepType           { return StepGoto }
func (Stop) StepType() StepType           { return StepStop }
func (SetValue) StepType() StepType       { return StepSetValue }
func (ModifyResource) StepType() StepType { return StepModifyResource }
func (Message) StepType() StepType        { return StepMessage }
func (u UnknownStep) StepType() StepType  { return StepType(u.Type) }

func (RollCheck) isStep()      {}
func (RollDamage) isStep()     {}
func (RollDice) isStep()       {}
func (RollTable) isStep()      {}
func (DamageTiers) isStep()    {}
func (Branch) isStep()         {}
func (Goto) isStep()           {}
func (Stop) isStep()           {}
func (SetValue) isStep()       {}
func (ModifyResource) isStep() {}
func (Message) isStep()        {}
func (UnknownStep) isStep()    {}
