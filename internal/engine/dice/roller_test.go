package dice_test

import (
	"testing"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-spellchain/internal/engine/dice"
	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
	"github.com/KirkDiggler/rpg-spellchain/internal/testutils"
)

type RollerTestSuite struct {
	suite.Suite
}

func TestRollerSuite(t *testing.T) {
	suite.Run(t, new(RollerTestSuite))
}

func (s *RollerTestSuite) TestRoll_CountsRangeAndTotal() {
	roller := dice.NewRoller(toolkitdice.DefaultRoller)

	for i := 0; i < 50; i++ {
		res := roller.Roll("3d6+2")
		s.Require().False(res.Invalid)
		s.Require().Len(res.Dice, 3)

		sum := 0
		for _, face := range res.Dice {
			s.GreaterOrEqual(face, 1)
			s.LessOrEqual(face, 6)
			sum += face
		}
		s.Equal(sum+2, res.Total)
		s.Equal(2, res.Modifier)
		s.Zero(res.Natural, "natural only applies to a lone d20")
	}
}

func (s *RollerTestSuite) TestRoll_Scripted() {
	roller := dice.NewRoller(testutils.NewScriptedRoller(3, 4, 2))

	res := roller.Roll("2d6-1d4+1")
	s.Require().False(res.Invalid)
	s.Equal([]int{3, 4, 2}, res.Dice)
	s.Equal(3+4-2+1, res.Total)
	s.Require().Len(res.Groups, 2)
	s.Equal(7, res.Groups[0].Subtotal)
	s.Equal(-2, res.Groups[1].Subtotal)
}

func (s *RollerTestSuite) TestRoll_InvalidFormulaDegrades() {
	script := testutils.NewScriptedRoller(5)
	roller := dice.NewRoller(script)

	res := roller.Roll("fireball")
	s.True(res.Invalid)
	s.Error(res.Err)
	s.Zero(res.Total)
	s.Empty(res.Dice)
	s.Equal(1, script.Remaining(), "nothing is rolled for a bad formula")
}

func (s *RollerTestSuite) TestRoll_SourceFailure() {
	roller := dice.NewRoller(testutils.NewScriptedRoller())

	res := roller.Roll("1d6")
	s.True(res.Invalid)
	s.Error(res.Err)
	s.Zero(res.Total)
}

func (s *RollerTestSuite) TestNaturals() {
	testCases := []struct {
		name    string
		formula string
		faces   []int
		natural int
		nat20   bool
		nat1    bool
	}{
		{name: "natural 20", formula: "d20", faces: []int{20}, natural: 20, nat20: true},
		{name: "natural 20 with bonus", formula: "1d20+7", faces: []int{20}, natural: 20, nat20: true},
		{name: "natural 1", formula: "1d20", faces: []int{1}, natural: 1, nat1: true},
		{name: "plain d20", formula: "d20", faces: []int{11}, natural: 11},
		{name: "two d20 are not natural", formula: "2d20", faces: []int{20, 20}},
		{name: "extra dice are not natural", formula: "1d20+1d4", faces: []int{20, 4}},
		{name: "d12 is not natural", formula: "1d12", faces: []int{1}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			roller := dice.NewRoller(testutils.NewScriptedRoller(tc.faces...))
			res := roller.Roll(tc.formula)
			s.Require().False(res.Invalid)
			s.Equal(tc.natural, res.Natural)
			s.Equal(tc.nat20, res.IsNatural20())
			s.Equal(tc.nat1, res.IsNatural1())
		})
	}
}

func (s *RollerTestSuite) TestRollWithModifier() {
	testCases := []struct {
		name      string
		formula   string
		mod       actions.RollModifier
		faces     []int
		dice      []int
		discarded []int
		total     int
	}{
		{
			name:      "advantage keeps the higher d20",
			formula:   "1d20+2",
			mod:       actions.RollAdvantage,
			faces:     []int{4, 17},
			dice:      []int{17},
			discarded: []int{4},
			total:     19,
		},
		{
			name:      "disadvantage keeps the lower d20",
			formula:   "1d20+2",
			mod:       actions.RollDisadvantage,
			faces:     []int{4, 17},
			dice:      []int{4},
			discarded: []int{17},
			total:     6,
		},
		{
			name:      "other groups roll normally",
			formula:   "1d6+1d20",
			mod:       actions.RollAdvantage,
			faces:     []int{9, 12, 5},
			dice:      []int{5, 12},
			discarded: []int{9},
			total:     17,
		},
		{
			name:    "no d20 ignores the modifier",
			formula: "2d6",
			mod:     actions.RollDisadvantage,
			faces:   []int{6, 6},
			dice:    []int{6, 6},
			total:   12,
		},
		{
			name:    "normal rolls once",
			formula: "d20",
			mod:     actions.RollNormal,
			faces:   []int{8},
			dice:    []int{8},
			total:   8,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			script := testutils.NewScriptedRoller(tc.faces...)
			res := dice.NewRoller(script).RollWithModifier(tc.formula, tc.mod)
			s.Require().False(res.Invalid, "%v", res.Err)
			s.Equal(tc.dice, res.Dice)
			s.Equal(tc.discarded, res.Discarded)
			s.Equal(tc.total, res.Total)
			s.Zero(script.Remaining())
		})
	}
}

func (s *RollerTestSuite) TestAdvantageNatural() {
	roller := dice.NewRoller(testutils.NewScriptedRoller(1, 20))
	res := roller.RollWithModifier("d20", actions.RollAdvantage)
	s.True(res.IsNatural20())

	roller = dice.NewRoller(testutils.NewScriptedRoller(1, 20))
	res = roller.RollWithModifier("d20", actions.RollDisadvantage)
	s.True(res.IsNatural1())
}

func (s *RollerTestSuite) TestRecord() {
	res := dice.NewRoller(testutils.NewScriptedRoller(3, 4)).Roll("2d6+1")
	rec := res.Record("burn")
	s.Equal("burn", rec.NodeID)
	s.Equal("2d6+1", rec.Formula)
	s.Equal([]int{3, 4}, rec.Dice)
	s.Equal(8, rec.Total)
}
