package action_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-spellchain/internal/engine"
	"github.com/KirkDiggler/rpg-spellchain/internal/engine/dice"
	"github.com/KirkDiggler/rpg-spellchain/internal/engine/mitigation"
	enginemock "github.com/KirkDiggler/rpg-spellchain/internal/engine/mock"
	"github.com/KirkDiggler/rpg-spellchain/internal/entities/actions"
	"github.com/KirkDiggler/rpg-spellchain/internal/errors"
	"github.com/KirkDiggler/rpg-spellchain/internal/orchestrators/action"
	mockclock "github.com/KirkDiggler/rpg-spellchain/internal/pkg/clock/mock"
	"github.com/KirkDiggler/rpg-spellchain/internal/pkg/idgen"
	idgenmock "github.com/KirkDiggler/rpg-spellchain/internal/pkg/idgen/mock"
	actionchain "github.com/KirkDiggler/rpg-spellchain/internal/repositories/action_chain"
	actionchainmock "github.com/KirkDiggler/rpg-spellchain/internal/repositories/action_chain/mock"
	executionhistory "github.com/KirkDiggler/rpg-spellchain/internal/repositories/execution_history"
	executionhistorymock "github.com/KirkDiggler/rpg-spellchain/internal/repositories/execution_history/mock"
	"github.com/KirkDiggler/rpg-spellchain/internal/testutils/builders"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	mockChainRepo   *actionchainmock.MockRepository
	mockHistoryRepo *executionhistorymock.MockRepository
	mockEngine      *enginemock.MockEngine
	mockIDGen       *idgenmock.MockGenerator
	mockClock       *mockclock.MockClock
	orchestrator    action.Service
	ctx             context.Context
	now             time.Time

	chain  *actions.Chain
	caster *actions.CasterSnapshot
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockChainRepo = actionchainmock.NewMockRepository(s.ctrl)
	s.mockHistoryRepo = executionhistorymock.NewMockRepository(s.ctrl)
	s.mockEngine = enginemock.NewMockEngine(s.ctrl)
	s.mockIDGen = idgenmock.NewMockGenerator(s.ctrl)
	s.mockClock = mockclock.NewMockClock(s.ctrl)
	s.ctx = context.Background()
	s.now = time.Date(2026, 7, 14, 9, 0, 0, 0, time.UTC)

	var err error
	s.orchestrator, err = action.NewOrchestrator(&action.Config{
		ChainRepo:   s.mockChainRepo,
		HistoryRepo: s.mockHistoryRepo,
		Engine:      s.mockEngine,
		IDGenerator: s.mockIDGen,
		Clock:       s.mockClock,
		HistoryTTL:  time.Hour,
	})
	s.Require().NoError(err)

	s.chain = builders.NewChainBuilder("chain_fireball").
		WithAffinities("fire").
		Node("cast", builders.Cast(12, 3)).
		Node("burn", builders.Damage("8d6", "fire")).
		Build()
	s.caster = builders.NewCasterBuilder().Build()
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) TestNewOrchestrator_RequiresDependencies() {
	_, err := action.NewOrchestrator(&action.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = action.NewOrchestrator(nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestSaveChain() {
	s.Run("assigns an id and stores a valid chain", func() {
		chain := builders.NewChainBuilder("").Node("cast", builders.Cast(10, 0)).Build()

		s.mockIDGen.EXPECT().Generate(idgen.KindChain).Return("chain_generated")
		s.mockEngine.EXPECT().
			ValidateChain(s.ctx, &engine.ValidateChainInput{Chain: chain}).
			Return(&engine.ValidateChainOutput{IsValid: true, Warnings: []string{"node cast: unknown"}}, nil)
		s.mockChainRepo.EXPECT().
			Save(s.ctx, actionchain.SaveInput{Chain: chain}).
			Return(&actionchain.SaveOutput{Chain: chain, Created: true}, nil)

		out, err := s.orchestrator.SaveChain(s.ctx, &action.SaveChainInput{Chain: chain})
		s.Require().NoError(err)
		s.Equal("chain_generated", out.Chain.ID)
		s.Equal(actions.CurrentChainVersion, out.Chain.Version)
		s.True(out.Created)
		s.Equal([]string{"node cast: unknown"}, out.Warnings)
	})

	s.Run("rejects an invalid chain", func() {
		s.mockEngine.EXPECT().
			ValidateChain(s.ctx, gomock.Any()).
			Return(&engine.ValidateChainOutput{IsValid: false, Errors: []string{"nodes: at least one node is required"}}, nil)

		_, err := s.orchestrator.SaveChain(s.ctx, &action.SaveChainInput{Chain: &actions.Chain{ID: "chain_empty"}})
		s.Require().Error(err)
		s.True(errors.IsInvalidArgument(err))
		s.Equal([]string{"nodes: at least one node is required"}, errors.FieldMessages(err))
	})

	s.Run("requires a chain", func() {
		_, err := s.orchestrator.SaveChain(s.ctx, &action.SaveChainInput{})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("keeps the repository error code", func() {
		s.mockEngine.EXPECT().
			ValidateChain(s.ctx, gomock.Any()).
			Return(&engine.ValidateChainOutput{IsValid: true}, nil)
		s.mockChainRepo.EXPECT().
			Save(s.ctx, gomock.Any()).
			Return(nil, errors.Unavailable("redis down"))

		_, err := s.orchestrator.SaveChain(s.ctx, &action.SaveChainInput{Chain: s.chain})
		s.True(errors.IsUnavailable(err))
	})
}

func (s *OrchestratorTestSuite) TestGetChain() {
	s.mockChainRepo.EXPECT().
		Get(s.ctx, actionchain.GetInput{ID: "chain_fireball"}).
		Return(&actionchain.GetOutput{Chain: s.chain, CreatedAt: s.now}, nil)

	out, err := s.orchestrator.GetChain(s.ctx, &action.GetChainInput{ChainID: "chain_fireball"})
	s.Require().NoError(err)
	s.Equal(s.chain, out.Chain)
	s.Equal(s.now, out.CreatedAt)

	s.mockChainRepo.EXPECT().
		Get(s.ctx, actionchain.GetInput{ID: "chain_missing"}).
		Return(nil, errors.NotFound("chain with ID chain_missing not found"))

	_, err = s.orchestrator.GetChain(s.ctx, &action.GetChainInput{ChainID: "chain_missing"})
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.GetChain(s.ctx, &action.GetChainInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestListAndDeleteChains() {
	s.mockChainRepo.EXPECT().
		List(s.ctx, actionchain.ListInput{Affinity: "fire"}).
		Return(&actionchain.ListOutput{Chains: []*actions.Chain{s.chain}}, nil)

	list, err := s.orchestrator.ListChains(s.ctx, &action.ListChainsInput{Affinity: "fire"})
	s.Require().NoError(err)
	s.Len(list.Chains, 1)

	s.mockChainRepo.EXPECT().
		Delete(s.ctx, actionchain.DeleteInput{ID: "chain_fireball"}).
		Return(&actionchain.DeleteOutput{}, nil)

	_, err = s.orchestrator.DeleteChain(s.ctx, &action.DeleteChainInput{ChainID: "chain_fireball"})
	s.Require().NoError(err)

	_, err = s.orchestrator.DeleteChain(s.ctx, &action.DeleteChainInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestExecuteChain_Stored() {
	result := &actions.ExecutionResult{
		ChainID:            "chain_fireball",
		Success:            true,
		TotalDamage:        31,
		InferredDamageType: "fire",
		Steps:              2,
	}
	options := actions.Options{RollModifier: actions.RollAdvantage}

	s.mockChainRepo.EXPECT().
		Get(s.ctx, actionchain.GetInput{ID: "chain_fireball"}).
		Return(&actionchain.GetOutput{Chain: s.chain}, nil)
	s.mockEngine.EXPECT().
		ExecuteChain(s.ctx, &engine.ExecuteChainInput{Chain: s.chain, Caster: s.caster, Options: options}).
		Return(&engine.ExecuteChainOutput{Result: result}, nil)
	s.mockIDGen.EXPECT().Generate(idgen.KindExecution).Return("exec_1")
	s.mockClock.EXPECT().Now().Return(s.now)
	s.mockHistoryRepo.EXPECT().
		Append(s.ctx, executionhistory.AppendInput{
			CasterID: s.caster.ID,
			TTL:      time.Hour,
			Entry: executionhistory.Entry{
				ExecutionID:        "exec_1",
				ChainID:            "chain_fireball",
				Success:            true,
				TotalDamage:        31,
				InferredDamageType: "fire",
				Steps:              2,
				ExecutedAt:         s.now,
			},
		}).
		Return(&executionhistory.AppendOutput{}, nil)

	out, err := s.orchestrator.ExecuteChain(s.ctx, &action.ExecuteChainInput{
		ChainID: "chain_fireball",
		Caster:  s.caster,
		Options: options,
	})
	s.Require().NoError(err)
	s.Equal("exec_1", out.ExecutionID)
	s.Equal(result, out.Result)
}

func (s *OrchestratorTestSuite) TestExecuteChain_InlineSurvivesHistoryFailure() {
	result := &actions.ExecutionResult{ChainID: s.chain.ID, Error: "chain has no nodes"}

	s.mockEngine.EXPECT().
		ExecuteChain(s.ctx, gomock.Any()).
		Return(&engine.ExecuteChainOutput{Result: result}, nil)
	s.mockIDGen.EXPECT().Generate(idgen.KindExecution).Return("exec_2")
	s.mockClock.EXPECT().Now().Return(s.now)
	s.mockHistoryRepo.EXPECT().
		Append(s.ctx, gomock.Any()).
		Return(nil, errors.Unavailable("redis down"))

	out, err := s.orchestrator.ExecuteChain(s.ctx, &action.ExecuteChainInput{Chain: s.chain, Caster: s.caster})
	s.Require().NoError(err)
	s.Equal("chain has no nodes", out.Result.Error)
}

func (s *OrchestratorTestSuite) TestExecuteChain_InvalidInput() {
	testCases := []struct {
		name  string
		input *action.ExecuteChainInput
	}{
		{name: "nil input"},
		{name: "no caster", input: &action.ExecuteChainInput{Chain: s.chain}},
		{name: "caster without id", input: &action.ExecuteChainInput{Chain: s.chain, Caster: &actions.CasterSnapshot{}}},
		{name: "no chain", input: &action.ExecuteChainInput{Caster: s.caster}},
		{name: "both chain forms", input: &action.ExecuteChainInput{ChainID: "chain_fireball", Chain: s.chain, Caster: s.caster}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.orchestrator.ExecuteChain(s.ctx, tc.input)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *OrchestratorTestSuite) TestExecuteChain_MissingStoredChain() {
	s.mockChainRepo.EXPECT().
		Get(s.ctx, actionchain.GetInput{ID: "chain_missing"}).
		Return(nil, errors.NotFound("chain with ID chain_missing not found"))

	_, err := s.orchestrator.ExecuteChain(s.ctx, &action.ExecuteChainInput{ChainID: "chain_missing", Caster: s.caster})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestGetHistory() {
	history := &executionhistory.History{
		CasterID: s.caster.ID,
		Entries:  []executionhistory.Entry{{ExecutionID: "exec_1"}},
	}
	s.mockHistoryRepo.EXPECT().
		Get(s.ctx, executionhistory.GetInput{CasterID: s.caster.ID}).
		Return(&executionhistory.GetOutput{History: history}, nil)

	out, err := s.orchestrator.GetHistory(s.ctx, &action.GetHistoryInput{CasterID: s.caster.ID})
	s.Require().NoError(err)
	s.Equal(history, out.History)

	s.mockHistoryRepo.EXPECT().
		Get(s.ctx, executionhistory.GetInput{CasterID: "caster_new"}).
		Return(nil, errors.NotFound("no execution history"))

	out, err = s.orchestrator.GetHistory(s.ctx, &action.GetHistoryInput{CasterID: "caster_new"})
	s.Require().NoError(err)
	s.Equal("caster_new", out.History.CasterID)
	s.Empty(out.History.Entries)

	_, err = s.orchestrator.GetHistory(s.ctx, &action.GetHistoryInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestRollFormula() {
	roll := dice.Result{Formula: "1d20+5", Dice: []int{14}, Modifier: 5, Total: 19, Natural: 14}
	s.mockEngine.EXPECT().
		RollFormula(s.ctx, &engine.RollFormulaInput{Formula: "1d20+5", Modifier: actions.RollDisadvantage}).
		Return(&engine.RollFormulaOutput{Result: roll}, nil)

	out, err := s.orchestrator.RollFormula(s.ctx, &action.RollFormulaInput{Formula: "1d20+5", Modifier: actions.RollDisadvantage})
	s.Require().NoError(err)
	s.Equal(19, out.Result.Total)

	s.mockEngine.EXPECT().
		RollFormula(s.ctx, gomock.Any()).
		Return(nil, errors.InvalidArgument("invalid formula"))

	_, err = s.orchestrator.RollFormula(s.ctx, &action.RollFormulaInput{Formula: "fireball"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestResolveDamage() {
	profile := mitigation.Profile{PhysicalArmor: 3}
	breakdown := mitigation.Breakdown{Total: 7}
	s.mockEngine.EXPECT().
		ResolveDamage(s.ctx, &engine.ResolveDamageInput{Raw: 10, Subtype: "slashing", Profile: profile}).
		Return(&engine.ResolveDamageOutput{Breakdown: breakdown}, nil)

	out, err := s.orchestrator.ResolveDamage(s.ctx, &action.ResolveDamageInput{Raw: 10, Subtype: "slashing", Profile: profile})
	s.Require().NoError(err)
	s.Equal(7, out.Breakdown.Total)
}
