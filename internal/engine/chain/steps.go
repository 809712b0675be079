package chain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-spellchain/internal/engine/dice"
	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
)

// Value keys written by the executors
const (
	KeyCheckTotal   = "check_total"
	KeyCheckNatural = "check_natural"
	KeyDiceTotal    = "dice_total"
	KeyTableResult  = "table_result"
	KeyTierRoll     = "tier_roll"
	KeyTierLabel    = "tier_label"
	KeyTierCrit     = "tier_crit"
)

const (
	defaultCheckFormula   = "d20"
	defaultCritMultiplier = 2
	critDiscount          = 0.5
	tierCritSignal        = 20
)

var templateToken = regexp.MustCompile(`\{([A-Za-z0-9_.\-]+)\}`)

// dispatch runs the executor for a node's step and returns its target
func (in *Interpreter) dispatch(ctx *ExecutionContext, cn *compiledNode) string {
	n := cn.node
	switch step := n.Step.(type) {
	case actions.RollCheck:
		in.rollCheck(ctx, n, step)
	case actions.RollDamage:
		in.rollDamage(ctx, n, step)
	case actions.RollDice:
		in.rollDice(ctx, n, step)
	case actions.RollTable:
		in.rollTable(ctx, n, step)
	case actions.DamageTiers:
		in.damageTiers(ctx, n, step)
	case actions.SetValue:
		in.setValue(ctx, n, step)
	case actions.ModifyResource:
		in.modifyResource(ctx, n, step)
	case actions.Message:
		ctx.Logf("%s", render(ctx, step.Template))
	case actions.Branch:
		return branch(ctx, cn, step)
	case actions.Goto:
		if step.Target == "" {
			ctx.Warnf("goto %s has no target, continuing with the next node", nodeName(n))
			return actions.TargetNext
		}
		return step.Target
	case actions.Stop:
		ctx.Stopped = true
		ctx.Logf("Stopped at %s", nodeName(n))
		return actions.TargetStop
	case actions.UnknownStep:
		ctx.Warnf("skipping %s: unknown node type %q", nodeName(n), step.Type)
		return actions.TargetNext
	default:
		ctx.Warnf("skipping %s: node has no step", nodeName(n))
		return actions.TargetNext
	}
	return cn.follow(ctx)
}

func (in *Interpreter) rollCheck(ctx *ExecutionContext, n actions.Node, step actions.RollCheck) {
	raw := step.DiceFormula
	if raw == "" {
		raw = defaultCheckFormula
	}

	formula, err := dice.Parse(raw)
	if err != nil {
		ctx.Warnf("%s: %v", nodeName(n), err)
		ctx.Success = false
		ctx.Set(KeyCheckTotal, actions.IntValue(0))
		return
	}

	mod := actions.RollNormal
	if step.Kind == actions.CheckAttack || step.Kind == actions.CheckCast {
		mod = ctx.takeRollModifier()
	}
	formula = formula.WithModifier(checkBonus(ctx, step.Bonuses))

	res := in.roller.RollFormulaWithModifier(formula, mod)
	ctx.Rolls = append(ctx.Rolls, res.Record(n.ID))
	if res.Invalid {
		ctx.Warnf("%s: %v", nodeName(n), res.Err)
		ctx.Success = false
		ctx.Set(KeyCheckTotal, actions.IntValue(0))
		return
	}

	verdict := "failure"
	switch {
	case res.IsNatural1():
		ctx.IsCritFail = true
		ctx.Success = false
		verdict = "critical failure"
	case res.IsNatural20():
		ctx.IsCrit = true
		switch step.Kind {
		case actions.CheckAttack:
			ctx.DoubleDamageDice = true
		case actions.CheckCast:
			ctx.DoubleDamageDice = true
			ctx.ManaDiscount = critDiscount
		}
		ctx.Success = true
		verdict = "critical success"
	case res.Total >= step.SuccessThreshold:
		ctx.Success = true
		verdict = "success"
	default:
		ctx.Success = false
	}

	ctx.Set(KeyCheckTotal, actions.IntValue(res.Total))
	ctx.Set(KeyCheckNatural, actions.IntValue(res.Natural))
	ctx.Set(step.SaveAs, actions.IntValue(res.Total))

	kind := step.Kind
	if kind == "" {
		kind = actions.CheckPlain
	}
	line := fmt.Sprintf("%s %s roll: %s = %d vs %d (%s)",
		ctx.casterName(), kind, res.Formula, res.Total, step.SuccessThreshold, verdict)
	if len(res.Discarded) > 0 {
		line += fmt.Sprintf(" with %s, discarded %d", mod, res.Discarded[0])
	}
	ctx.Log = append(ctx.Log, line)
}

func checkBonus(ctx *ExecutionContext, bonuses []actions.Bonus) int {
	total := 0
	for _, b := range bonuses {
		switch b.Kind {
		case actions.BonusFlat, "":
			total += b.Value
		case actions.BonusStat:
			mult := b.Multiplier
			if mult == 0 {
				mult = 1
			}
			total += int(math.Floor(float64(ctx.Caster.Stat(b.Stat)) * mult))
		case actions.BonusProficiency:
			total += ctx.Caster.Proficiency(b.Key)
		case actions.BonusAffinity:
			if b.Element != "" {
				total += ctx.Caster.Affinity(b.Element).CastBonus
				continue
			}
			for _, element := range chainAffinities(ctx) {
				total += ctx.Caster.Affinity(element).CastBonus
			}
		default:
			ctx.Warnf("ignoring unknown bonus kind %q", b.Kind)
		}
	}
	return total
}

// damageRoll is what roll_damage and damage_tiers share
type damageRoll struct {
	formula           string
	damageType        string
	fromContext       string
	critMultiplier    int
	addElementalBonus bool
	forcePureOnCrit   bool
	saveAs            string
	crit              bool
	doubleDice        bool
}

func (in *Interpreter) rollDamage(ctx *ExecutionContext, n actions.Node, step actions.RollDamage) {
	in.dealDamage(ctx, n, damageRoll{
		formula:           step.DamageFormula,
		damageType:        step.DamageType,
		fromContext:       step.FromContext,
		critMultiplier:    step.CritMultiplier,
		addElementalBonus: step.AddElementalBonus,
		forcePureOnCrit:   step.ForcePureOnCrit,
		saveAs:            step.SaveAs,
		crit:              ctx.IsCrit,
		doubleDice:        ctx.DoubleDamageDice,
	})
}

func (in *Interpreter) dealDamage(ctx *ExecutionContext, n actions.Node, d damageRoll) {
	formula, err := dice.Parse(d.formula)
	if err != nil {
		ctx.Warnf("%s: %v", nodeName(n), err)
		return
	}

	damageType := resolveDamageType(ctx, d)
	if d.addElementalBonus {
		formula = formula.WithModifier(elementalBonus(ctx, damageType))
	}
	if d.doubleDice {
		mult := d.critMultiplier
		if mult <= 0 {
			mult = defaultCritMultiplier
		}
		formula = formula.MultiplyDice(mult)
	}
	if d.forcePureOnCrit && d.crit {
		damageType = "pure"
	}

	res := in.roller.RollFormula(formula)
	ctx.Rolls = append(ctx.Rolls, res.Record(n.ID))
	if res.Invalid {
		ctx.Warnf("%s: %v", nodeName(n), res.Err)
		return
	}

	amount := max(0, res.Total)
	ctx.TotalDamage += amount
	ctx.Damage = append(ctx.Damage, actions.DamageEntry{
		NodeID:  n.ID,
		Formula: res.Formula,
		Result:  amount,
		Type:    damageType,
		Crit:    d.crit,
	})
	ctx.Set(d.saveAs, actions.IntValue(amount))

	line := nodeName(n) + ": " + res.Formula + " = " + strconv.Itoa(amount)
	if damageType != "" {
		line += " " + damageType
	}
	line += " damage"
	if d.crit {
		line += " (critical)"
	}
	ctx.Log = append(ctx.Log, line)
}

func resolveDamageType(ctx *ExecutionContext, d damageRoll) string {
	if d.fromContext != "" {
		if v, ok := ctx.Get(d.fromContext); ok && v.String() != "" {
			return v.String()
		}
		ctx.Warnf("damage type key %q is not set", d.fromContext)
	}
	if d.damageType != "" {
		return d.damageType
	}
	if affinities := chainAffinities(ctx); len(affinities) > 0 {
		return affinities[0]
	}
	return ""
}

func elementalBonus(ctx *ExecutionContext, damageType string) int {
	if damageType != "" {
		return ctx.Caster.Affinity(damageType).DamageBonus
	}
	total := 0
	for _, element := range chainAffinities(ctx) {
		total += ctx.Caster.Affinity(element).DamageBonus
	}
	return total
}

func (in *Interpreter) rollDice(ctx *ExecutionContext, n actions.Node, step actions.RollDice) {
	res := in.roller.Roll(step.DiceFormula)
	ctx.Rolls = append(ctx.Rolls, res.Record(n.ID))
	if res.Invalid {
		ctx.Warnf("%s: %v", nodeName(n), res.Err)
	}

	key := step.SaveAs
	if key == "" {
		key = KeyDiceTotal
	}
	ctx.Set(key, actions.IntValue(res.Total))
	ctx.Logf("%s: %s = %d", nodeName(n), res.Formula, res.Total)
}

func (in *Interpreter) rollTable(ctx *ExecutionContext, n actions.Node, step actions.RollTable) {
	res := in.roller.Roll(step.DiceFormula)
	ctx.Rolls = append(ctx.Rolls, res.Record(n.ID))
	if res.Invalid {
		ctx.Warnf("%s: %v", nodeName(n), res.Err)
		return
	}

	key := step.SaveAs
	if key == "" {
		key = KeyTableResult
	}
	ctx.Set(key+"_roll", actions.IntValue(res.Total))

	for _, e := range step.Entries {
		if res.Total < e.Min || res.Total > e.Max {
			continue
		}
		ctx.Set(key, e.Value)
		if e.Label != "" {
			ctx.Set(key+"_label", actions.LabelValue(e.Label))
		}
		if e.Icon != "" {
			ctx.Set(key+"_icon", actions.LabelValue(e.Icon))
		}

		shown := e.Label
		if shown == "" {
			shown = e.Value.String()
		}
		ctx.Logf("%s: rolled %d on %s, %s", nodeName(n), res.Total, res.Formula, shown)
		return
	}

	ctx.Logf("%s: rolled %d on %s, no entry matched", nodeName(n), res.Total, res.Formula)
}

func (in *Interpreter) damageTiers(ctx *ExecutionContext, n actions.Node, step actions.DamageTiers) {
	sel := in.roller.Roll(step.DiceFormula)
	ctx.Rolls = append(ctx.Rolls, sel.Record(n.ID))
	if sel.Invalid {
		ctx.Warnf("%s: %v", nodeName(n), sel.Err)
		return
	}
	ctx.Set(KeyTierRoll, actions.IntValue(sel.Total))

	// a selector of 20 crits this step only
	tierCrit := sel.Total == tierCritSignal
	if tierCrit {
		ctx.Set(KeyTierCrit, actions.IntValue(1))
	}

	for _, tier := range step.Tiers {
		if sel.Total < tier.MinRoll || sel.Total > tier.MaxRoll {
			continue
		}
		label := tier.Label
		if label == "" {
			label = strconv.Itoa(tier.MinRoll) + "-" + strconv.Itoa(tier.MaxRoll)
		}
		ctx.Set(KeyTierLabel, actions.LabelValue(label))
		ctx.Logf("%s: tier roll %d selects %s", nodeName(n), sel.Total, label)

		in.dealDamage(ctx, n, damageRoll{
			formula:           tier.Formula,
			damageType:        step.DamageType,
			fromContext:       step.FromContext,
			critMultiplier:    step.CritMultiplier,
			addElementalBonus: step.AddElementalBonus,
			forcePureOnCrit:   step.ForcePureOnCrit,
			crit:              ctx.IsCrit || tierCrit,
			doubleDice:        ctx.DoubleDamageDice || tierCrit,
		})
		return
	}

	ctx.Logf("%s: tier roll %d matched no tier", nodeName(n), sel.Total)
}

func (in *Interpreter) setValue(ctx *ExecutionContext, n actions.Node, step actions.SetValue) {
	if step.Key == "" {
		ctx.Warnf("%s has no key", nodeName(n))
		return
	}

	switch {
	case step.Literal != nil:
		ctx.Set(step.Key, *step.Literal)
	case step.Formula != "":
		res := in.roller.Roll(step.Formula)
		ctx.Rolls = append(ctx.Rolls, res.Record(n.ID))
		if res.Invalid {
			ctx.Warnf("%s: %v", nodeName(n), res.Err)
		}
		ctx.Set(step.Key, actions.IntValue(res.Total))
	case step.CopyFrom != "":
		v, ok := ctx.Get(step.CopyFrom)
		if !ok {
			ctx.Warnf("%s: %q is not set", nodeName(n), step.CopyFrom)
			return
		}
		ctx.Set(step.Key, v)
	default:
		ctx.Warnf("%s has nothing to set", nodeName(n))
	}
}

func (in *Interpreter) modifyResource(ctx *ExecutionContext, n actions.Node, step actions.ModifyResource) {
	if step.ResourceKind == "" {
		ctx.Warnf("%s has no resource kind", nodeName(n))
		return
	}

	formula, err := dice.Parse(step.Amount)
	if err != nil {
		ctx.Warnf("%s: %v", nodeName(n), err)
		return
	}

	amount := formula.Modifier
	if len(formula.Groups) > 0 {
		res := in.roller.RollFormula(formula)
		ctx.Rolls = append(ctx.Rolls, res.Record(n.ID))
		if res.Invalid {
			ctx.Warnf("%s: %v", nodeName(n), res.Err)
			return
		}
		amount = res.Total
	}
	amount = max(0, amount)

	verb := "restores"
	signed := amount
	if step.Operation == actions.ResourceSpend {
		verb = "spends"
		signed = -amount
	} else if step.Operation != actions.ResourceRestore {
		ctx.Warnf("%s: unknown operation %q, treating as restore", nodeName(n), step.Operation)
	}

	ctx.PendingChanges = append(ctx.PendingChanges, actions.ResourceChange{
		ResourceKind: step.ResourceKind,
		Amount:       signed,
		ResourceID:   step.ResourceID,
		Source:       n.ID,
	})
	ctx.Logf("%s %s %d %s", ctx.casterName(), verb, amount, step.ResourceKind)
}

func branch(ctx *ExecutionContext, cn *compiledNode, step actions.Branch) string {
	holds := cn.branch.Holds(ctx.Facts())
	target := step.FalseTarget
	if holds {
		target = step.TrueTarget
	}
	if target == "" {
		target = actions.TargetNext
	}
	ctx.Logf("%s: %t, going to %s", nodeName(cn.node), holds, target)
	return target
}

// render substitutes {key} tokens. Context values win over the built-in
// caster, total_damage and target_count tokens; unknown tokens stay as is.
func render(ctx *ExecutionContext, template string) string {
	return templateToken.ReplaceAllStringFunc(template, func(tok string) string {
		key := strings.Trim(tok, "{}")
		if v, ok := ctx.Get(key); ok {
			return v.String()
		}
		switch key {
		case "caster":
			return ctx.casterName()
		case "total_damage":
			return strconv.Itoa(ctx.TotalDamage)
		case "target_count":
			return strconv.Itoa(ctx.TargetCount)
		}
		return tok
	})
}

func chainAffinities(ctx *ExecutionContext) []string {
	if ctx.Chain == nil {
		return nil
	}
	return ctx.Chain.Affinities
}

func nodeName(n actions.Node) string {
	if n.Label != "" {
		return n.Label
	}
	if n.ID != "" {
		return n.ID
	}
	return string(n.Type())
}
