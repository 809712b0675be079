package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-spellchain/internal/engine"
	"github.com/KirkDiggler/rpg-spellchain/internal/engine/mitigation"
	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
	"github.com/KirkDiggler/rpg-spellchain/internal/errors"
	"github.com/KirkDiggler/rpg-spellchain/internal/testutils"
	"github.com/KirkDiggler/rpg-spellchain/internal/testutils/builders"
)

type EngineTestSuite struct {
	suite.Suite
	ctx    context.Context
	roller *testutils.ScriptedRoller
	engine engine.Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.roller = testutils.NewScriptedRoller()

	e, err := engine.New(&engine.Config{DiceRoller: s.roller})
	s.Require().NoError(err)
	s.engine = e
}

func (s *EngineTestSuite) withFaces(faces ...int) {
	s.roller = testutils.NewScriptedRoller(faces...)
	e, err := engine.New(&engine.Config{DiceRoller: s.roller})
	s.Require().NoError(err)
	s.engine = e
}

func (s *EngineTestSuite) TestNewWithNilConfig() {
	e, err := engine.New(nil)
	s.NoError(err)
	s.NotNil(e)
}

func (s *EngineTestSuite) TestExecuteChain() {
	s.withFaces(15, 3, 4)

	c := builders.NewChainBuilder("firebolt").
		Node("cast", builders.Cast(10, 0)).
		Node("burn", builders.Damage("2d6", "fire")).
		Build()

	out, err := s.engine.ExecuteChain(s.ctx, &engine.ExecuteChainInput{
		Chain:  c,
		Caster: builders.NewCasterBuilder().Build(),
	})
	s.Require().NoError(err)
	s.Equal(7, out.Result.TotalDamage)
	s.Equal("firebolt", out.Result.ChainID)
}

func (s *EngineTestSuite) TestExecuteChain_MisuseIsAResult() {
	out, err := s.engine.ExecuteChain(s.ctx, &engine.ExecuteChainInput{})
	s.Require().NoError(err)
	s.True(out.Result.HasError())

	_, err = s.engine.ExecuteChain(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *EngineTestSuite) TestValidateChain() {
	valid := builders.NewChainBuilder("ok").Node("a", actions.Stop{}).Build()
	out, err := s.engine.ValidateChain(s.ctx, &engine.ValidateChainInput{Chain: valid})
	s.Require().NoError(err)
	s.True(out.IsValid)
	s.Empty(out.Errors)
	s.Empty(out.Warnings)

	broken := builders.NewChainBuilder("").
		Node("a", actions.Goto{Target: "missing"}).
		Node("a", actions.Stop{}).
		Build()
	out, err = s.engine.ValidateChain(s.ctx, &engine.ValidateChainInput{Chain: broken})
	s.Require().NoError(err)
	s.False(out.IsValid)
	s.NotEmpty(out.Errors)
	s.Len(out.Warnings, 2)
}

func (s *EngineTestSuite) TestRollFormula() {
	s.withFaces(6, 17)

	out, err := s.engine.RollFormula(s.ctx, &engine.RollFormulaInput{Formula: "d20+1", Modifier: actions.RollAdvantage})
	s.Require().NoError(err)
	s.Equal(18, out.Result.Total)
	s.Equal([]int{6}, out.Result.Discarded)
}

func (s *EngineTestSuite) TestRollFormula_Errors() {
	_, err := s.engine.RollFormula(s.ctx, &engine.RollFormulaInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.engine.RollFormula(s.ctx, &engine.RollFormulaInput{Formula: "banana"})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.engine.RollFormula(s.ctx, &engine.RollFormulaInput{Formula: "1d6"})
	s.True(errors.IsInternal(err), "the scripted roller is empty")
}

func (s *EngineTestSuite) TestResolveDamage() {
	out, err := s.engine.ResolveDamage(s.ctx, &engine.ResolveDamageInput{
		Raw:     10,
		Subtype: "fire",
		Profile: mitigation.Profile{MagicArmor: 3},
	})
	s.Require().NoError(err)
	s.Equal(7, out.Breakdown.Total)

	out, err = s.engine.ResolveDamage(s.ctx, &engine.ResolveDamageInput{
		Breakdown: []actions.DamageEntry{
			{Result: 5, Type: "slashing"},
			{Result: 5, Type: "pure"},
		},
		Profile: mitigation.Profile{PhysicalArmor: 2},
	})
	s.Require().NoError(err)
	s.Equal(8, out.Breakdown.Total)
	s.Len(out.Breakdown.Entries, 2)
}
