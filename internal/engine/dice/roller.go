package dice

import (
	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
	"github.com/KirkDiggler/rpg-spellchain/internal/errors"
)

// GroupResult is the outcome of one dice group
type GroupResult struct {
	Group    Group
	Dice     []int
	Subtotal int
}

// Result is the full audit trail of a single formula evaluation
type Result struct {
	Formula   string
	Groups    []GroupResult
	Dice      []int
	Discarded []int
	Modifier  int
	Total     int

	// Natural is the face of a lone d20, 0 when the formula is anything else
	Natural int

	Invalid bool
	Err     error
}

// IsNatural20 reports a natural 20 on a lone d20
func (r Result) IsNatural20() bool {
	return r.Natural == 20
}

// IsNatural1 reports a natural 1 on a lone d20
func (r Result) IsNatural1() bool {
	return r.Natural == 1
}

// Record converts the result into a roll history entry
func (r Result) Record(nodeID string) actions.RollRecord {
	return actions.RollRecord{
		NodeID:    nodeID,
		Formula:   r.Formula,
		Dice:      append([]int{}, r.Dice...),
		Discarded: r.Discarded,
		Modifier:  r.Modifier,
		Total:     r.Total,
		Natural:   r.Natural,
	}
}

// Roller evaluates formulas with an injected source of randomness
type Roller struct {
	source toolkitdice.Roller
}

// NewRoller creates a roller. A nil source falls back to the toolkit's
// default cryptographic roller.
func NewRoller(source toolkitdice.Roller) *Roller {
	if source == nil {
		source = toolkitdice.DefaultRoller
	}
	return &Roller{source: source}
}

// Roll parses and rolls a formula. Unparsable input yields a zero result
// flagged Invalid rather than an error.
func (r *Roller) Roll(raw string) Result {
	return r.RollWithModifier(raw, actions.RollNormal)
}

// RollFormula rolls an already parsed formula
func (r *Roller) RollFormula(f Formula) Result {
	return r.rollFormula(f, actions.RollNormal)
}

// RollWithModifier rolls a formula applying advantage or disadvantage to
// its first d20. Formulas without a d20 roll normally.
func (r *Roller) RollWithModifier(raw string, mod actions.RollModifier) Result {
	f, err := Parse(raw)
	if err != nil {
		return Result{Formula: raw, Invalid: true, Err: err}
	}
	return r.rollFormula(f, mod)
}

// RollFormulaWithModifier is RollWithModifier for a parsed formula
func (r *Roller) RollFormulaWithModifier(f Formula, mod actions.RollModifier) Result {
	return r.rollFormula(f, mod)
}

func (r *Roller) rollFormula(f Formula, mod actions.RollModifier) Result {
	if !f.Valid() {
		return Result{Formula: f.Raw, Invalid: true, Err: errors.InvalidArgumentf("invalid dice formula: %s", f.Raw)}
	}

	res := Result{
		Formula:  f.String(),
		Modifier: f.Modifier,
		Total:    f.Modifier,
	}

	keyed := -1
	if mod == actions.RollAdvantage || mod == actions.RollDisadvantage {
		for i, g := range f.Groups {
			if g.Sides == 20 && g.Count != 0 {
				keyed = i
				break
			}
		}
	}

	var chosen int
	if keyed >= 0 {
		first, err := r.source.Roll(20)
		if err != nil {
			return r.failed(f, err)
		}
		second, err := r.source.Roll(20)
		if err != nil {
			return r.failed(f, err)
		}
		chosen, res.Discarded = pick(first, second, mod)
	}

	for i, g := range f.Groups {
		count := g.Count
		if count < 0 {
			count = -count
		}

		var faces []int
		if i == keyed {
			faces = append(faces, chosen)
			count--
		}
		if count > 0 {
			rolled, err := r.source.RollN(count, g.Sides)
			if err != nil {
				return r.failed(f, err)
			}
			faces = append(faces, rolled...)
		}

		sum := 0
		for _, face := range faces {
			sum += face
		}
		if g.Count < 0 {
			sum = -sum
		}

		res.Groups = append(res.Groups, GroupResult{Group: g, Dice: faces, Subtotal: sum})
		res.Dice = append(res.Dice, faces...)
		res.Total += sum
	}

	if f.IsLoneD20() && len(res.Dice) == 1 {
		res.Natural = res.Dice[0]
	}

	return res
}

func (r *Roller) failed(f Formula, err error) Result {
	return Result{
		Formula: f.String(),
		Invalid: true,
		Err:     errors.Wrapf(err, "failed to roll %s", f.String()),
	}
}

func pick(first, second int, mod actions.RollModifier) (int, []int) {
	keepFirst := first >= second
	if mod == actions.RollDisadvantage {
		keepFirst = first <= second
	}
	if keepFirst {
		return first, []int{second}
	}
	return second, []int{first}
}
