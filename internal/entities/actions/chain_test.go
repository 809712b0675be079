package actions_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
	"github.com/KirkDiggler/rpg-spellchain/internal/errors"
)

const fireboltJSON = `{
  "id": "firebolt",
  "name": "Firebolt",
  "version": 1,
  "affinities": ["fire"],
  "costs": [{"resource_kind": "mana", "amount": 4}],
  "nodes": [
    {
      "id": "cast", "type": "roll_cast", "order": 1, "success_threshold": 10,
      "bonuses": [{"kind": "stat", "stat": "int", "multiplier": 0.5}],
      "transitions": [
        {"condition": "crit_fail", "target": "stop", "priority": 0},
        {"condition": "fail", "target": "stop", "priority": 1}
      ]
    },
    {"id": "pick", "type": "branch", "order": 2,
     "condition": {"kind": "equals", "key": "elementChoice", "value": 1},
     "true_target": "burn", "false_target": "stop"},
    {"id": "burn", "type": "roll_damage", "order": 3, "damage_formula": "2d6",
     "damage_type": "fire", "force_pure_on_crit": true,
     "precondition": {"kind": "value_gte", "key": "check_total", "value": 12}},
    {"id": "pay", "type": "modify_resource", "order": 4, "resource_kind": "mana",
     "operation": "spend", "amount": 3},
    {"id": "mystery", "type": "summon_dragon", "order": 5}
  ]
}`

type ChainTestSuite struct {
	suite.Suite
}

func TestChainSuite(t *testing.T) {
	suite.Run(t, new(ChainTestSuite))
}

func (s *ChainTestSuite) decode() *actions.Chain {
	var chain actions.Chain
	s.Require().NoError(json.Unmarshal([]byte(fireboltJSON), &chain))
	return &chain
}

func (s *ChainTestSuite) TestDecodeStepVariants() {
	chain := s.decode()
	s.Require().Len(chain.Nodes, 5)

	cast, ok := chain.Nodes[0].Step.(actions.RollCheck)
	s.Require().True(ok)
	s.Equal(actions.CheckCast, cast.Kind)
	s.Equal(10, cast.SuccessThreshold)
	s.Require().Len(cast.Bonuses, 1)
	s.Equal(0.5, cast.Bonuses[0].Multiplier)
	s.Require().Len(chain.Nodes[0].Transitions, 2)
	s.Equal(actions.ConditionCritFail, chain.Nodes[0].Transitions[0].Condition)

	branch, ok := chain.Nodes[1].Step.(actions.Branch)
	s.Require().True(ok)
	s.Equal(actions.ConditionValueEquals, branch.Condition.Kind)
	s.Require().NotNil(branch.Condition.Value)
	s.Equal(actions.ValueKindInt, branch.Condition.Value.Kind())
	s.Nil(chain.Nodes[1].Condition, "branch condition must not leak into the precondition")

	damage, ok := chain.Nodes[2].Step.(actions.RollDamage)
	s.Require().True(ok)
	s.True(damage.ForcePureOnCrit)
	s.Require().NotNil(chain.Nodes[2].Condition)
	s.Equal(actions.ConditionValueGTE, chain.Nodes[2].Condition.Kind)

	resource, ok := chain.Nodes[3].Step.(actions.ModifyResource)
	s.Require().True(ok)
	s.Equal("3", resource.Amount)

	unknown, ok := chain.Nodes[4].Step.(actions.UnknownStep)
	s.Require().True(ok)
	s.Equal("summon_dragon", unknown.Type)
}

func (s *ChainTestSuite) TestEncodeKeepsDiscriminator() {
	chain := s.decode()

	data, err := json.Marshal(chain)
	s.Require().NoError(err)

	var again actions.Chain
	s.Require().NoError(json.Unmarshal(data, &again))
	s.Require().Len(again.Nodes, len(chain.Nodes))
	for i := range chain.Nodes {
		s.Equal(chain.Nodes[i].Type(), again.Nodes[i].Type(), "node %s", chain.Nodes[i].ID)
	}
	s.Equal(chain.Nodes[1].Step, again.Nodes[1].Step)
}

func (s *ChainTestSuite) TestValidate() {
	s.NoError(s.decode().Validate())

	testCases := []struct {
		name  string
		chain *actions.Chain
	}{
		{
			name:  "nil chain",
			chain: nil,
		},
		{
			name:  "missing id",
			chain: &actions.Chain{Nodes: []actions.Node{{ID: "a", Step: actions.Stop{}}}},
		},
		{
			name:  "no nodes",
			chain: &actions.Chain{ID: "empty"},
		},
		{
			name: "duplicate node ids",
			chain: &actions.Chain{ID: "dup", Nodes: []actions.Node{
				{ID: "a", Step: actions.Stop{}},
				{ID: "a", Step: actions.Stop{}},
			}},
		},
		{
			name: "reserved node id",
			chain: &actions.Chain{ID: "reserved", Nodes: []actions.Node{
				{ID: "stop", Step: actions.Stop{}},
			}},
		},
		{
			name: "future version",
			chain: &actions.Chain{ID: "future", Version: actions.CurrentChainVersion + 1, Nodes: []actions.Node{
				{ID: "a", Step: actions.Stop{}},
			}},
		},
		{
			name: "negative cost",
			chain: &actions.Chain{ID: "cost", Nodes: []actions.Node{{ID: "a", Step: actions.Stop{}}},
				Costs: []actions.Cost{{ResourceKind: "mana", Amount: -1}}},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.chain.Validate()
			s.Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *ChainTestSuite) TestValidateRanges() {
	c := &actions.Chain{ID: "ranges", Nodes: []actions.Node{
		{ID: "element", Step: actions.RollTable{
			DiceFormula: "1d12",
			Entries: []actions.TableEntry{
				{Min: 1, Max: 6, Value: actions.LabelValue("fire")},
				{Min: 6, Max: 12, Value: actions.LabelValue("water")},
			},
		}},
		{ID: "surge", Step: actions.DamageTiers{
			DiceFormula: "d20",
			Tiers: []actions.DamageTier{
				{MinRoll: 1, MaxRoll: 10, Formula: "1d6"},
				{MinRoll: 11, MaxRoll: 20, Formula: "2d6"},
				{MinRoll: 15, MaxRoll: 12, Formula: "3d6"},
			},
		}},
	}}

	err := c.Validate()
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Equal([]string{
		"nodes[0].entries[1]: overlaps nodes[0].entries[0]",
		"nodes[1].tiers[2]: min 15 is greater than max 12",
	}, errors.FieldMessages(err))

	c.Nodes[0].Step = actions.RollTable{DiceFormula: "1d12", Entries: []actions.TableEntry{
		{Min: 1, Max: 6, Value: actions.LabelValue("fire")},
		{Min: 7, Max: 12, Value: actions.LabelValue("water")},
	}}
	c.Nodes[1].Step = actions.DamageTiers{DiceFormula: "d20", Tiers: []actions.DamageTier{
		{MinRoll: 1, MaxRoll: 10, Formula: "1d6"},
		{MinRoll: 11, MaxRoll: 20, Formula: "2d6"},
	}}
	s.NoError(c.Validate())
}

func (s *ChainTestSuite) TestValueCanonicalForms() {
	var v actions.Value
	s.Require().NoError(json.Unmarshal([]byte(`1.0`), &v))
	s.Equal(actions.ValueKindReal, v.Kind())
	s.True(v.Equal(actions.IntValue(1)))
	s.True(v.Equal(actions.LabelValue("1")))
	s.False(v.Equal(actions.LabelValue("1.5")))

	s.Require().NoError(json.Unmarshal([]byte(`"water"`), &v))
	label, ok := v.Label()
	s.True(ok)
	s.Equal("water", label)
	_, ok = v.Float()
	s.False(ok)

	n, ok := actions.LabelValue(" 7 ").Int()
	s.True(ok)
	s.Equal(7, n)

	floored, ok := actions.RealValue(-1.5).Int()
	s.True(ok)
	s.Equal(-2, floored)
}
