package run_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-nuzlocke/internal/clients/species"
	nz "github.com/KirkDiggler/rpg-nuzlocke/internal/entities/nuzlocke"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/errors"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/orchestrators/run"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/pkg/bitmap"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/repositories/flags"
	flagsmock "github.com/KirkDiggler/rpg-nuzlocke/internal/repositories/flags/mock"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/repositories/journal"
	journalmock "github.com/KirkDiggler/rpg-nuzlocke/internal/repositories/journal/mock"
	runrepo "github.com/KirkDiggler/rpg-nuzlocke/internal/repositories/run"
	runrepomock "github.com/KirkDiggler/rpg-nuzlocke/internal/repositories/run/mock"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/testutils"
)

// StorageTestSuite drives the orchestrator against mocked stores to check
// how storage failures surface and what is left unwritten.
type StorageTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockRunRepo   *runrepomock.MockRepository
	mockAreaFlags *flagsmock.MockRepository
	mockDexFlags  *flagsmock.MockRepository
	mockJournal   *journalmock.MockRepository
	service       run.Service
	ctx           context.Context
}

func TestStorageTestSuite(t *testing.T) {
	suite.Run(t, new(StorageTestSuite))
}

func (s *StorageTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRunRepo = runrepomock.NewMockRepository(s.ctrl)
	s.mockAreaFlags = flagsmock.NewMockRepository(s.ctrl)
	s.mockDexFlags = flagsmock.NewMockRepository(s.ctrl)
	s.mockJournal = journalmock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()

	table, err := species.NewDefault()
	s.Require().NoError(err)

	s.service, err = run.NewOrchestrator(&run.Config{
		RunRepo:     s.mockRunRepo,
		AreaFlags:   s.mockAreaFlags,
		DexFlags:    s.mockDexFlags,
		Journal:     s.mockJournal,
		Species:     table,
		EventBus:    events.NewBus(),
		DiceRoller:  &stubRoller{rolls: []int{1, 1}},
		IDGenerator: idgen.NewSequential("run"),
	})
	s.Require().NoError(err)
}

func (s *StorageTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// expectSnapshots returns flag snapshots with the given area bits set
func (s *StorageTestSuite) expectSnapshots(areas ...nz.AreaID) {
	areaBits := bitmap.New(nz.DefaultAreaCount)
	for _, area := range areas {
		areaBits.Set(int(area))
	}

	s.mockAreaFlags.EXPECT().
		Get(gomock.Any(), flags.GetInput{RunID: testutils.TestRunID, Size: nz.DefaultAreaCount}).
		Return(&flags.GetOutput{Flags: areaBits}, nil)
	s.mockDexFlags.EXPECT().
		Get(gomock.Any(), flags.GetInput{RunID: testutils.TestRunID, Size: nz.DefaultNationalDexCount}).
		Return(&flags.GetOutput{Flags: bitmap.New(nz.DefaultNationalDexCount)}, nil)
}

func (s *StorageTestSuite) battleRun() *nz.Run {
	r := testutils.CreateTestRun()
	r.Opponent = &nz.Creature{
		Species:     testutils.SpeciesZigzagoon,
		Personality: testutils.PlainPersonality(testutils.TestTrainerID),
		TrainerID:   testutils.TestTrainerID,
	}
	r.Encounter = nz.EncounterState{Phase: nz.EncounterPhasePending}
	return r
}

func (s *StorageTestSuite) TestCreateRun_AlreadyExists() {
	s.mockRunRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, errors.AlreadyExists("run already exists"))

	_, err := s.service.CreateRun(s.ctx, &run.CreateRunInput{
		TrainerID:     testutils.TestTrainerID,
		RulesetActive: true,
		Party:         []nz.Creature{{Species: testutils.SpeciesTreecko}},
	})
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))
}

func (s *StorageTestSuite) TestCreateRun_DexFailure() {
	s.mockRunRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input runrepo.CreateInput) (*runrepo.CreateOutput, error) {
			return &runrepo.CreateOutput{Run: input.Run}, nil
		})
	s.mockDexFlags.EXPECT().
		Set(gomock.Any(), flags.SetInput{RunID: "run_1", Offsets: []int{252}}).
		Return(nil, errors.Internal("redis unavailable"))

	_, err := s.service.CreateRun(s.ctx, &run.CreateRunInput{
		TrainerID:     testutils.TestTrainerID,
		RulesetActive: true,
		Party:         []nz.Creature{{Species: testutils.SpeciesTreecko}},
	})
	s.Require().Error(err)
	s.True(errors.IsInternal(err))
	s.Contains(err.Error(), "failed to save dex flags")
}

func (s *StorageTestSuite) TestGetRun_StoreError() {
	s.mockRunRepo.EXPECT().
		Get(gomock.Any(), runrepo.GetInput{ID: testutils.TestRunID}).
		Return(nil, errors.Internal("redis unavailable"))

	_, err := s.service.GetRun(s.ctx, &run.GetRunInput{RunID: testutils.TestRunID})
	s.Require().Error(err)
	s.True(errors.IsInternal(err))
	s.Contains(err.Error(), "failed to load run")
}

func (s *StorageTestSuite) TestEnterArea_ReportsEncountered() {
	s.mockRunRepo.EXPECT().
		Get(gomock.Any(), runrepo.GetInput{ID: testutils.TestRunID}).
		Return(&runrepo.GetOutput{Run: testutils.CreateTestRun()}, nil)
	s.mockRunRepo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input runrepo.UpdateInput) (*runrepo.UpdateOutput, error) {
			s.Equal(testutils.AreaRoute102, input.Run.CurrentArea)
			return &runrepo.UpdateOutput{Run: input.Run}, nil
		})
	s.mockAreaFlags.EXPECT().
		IsSet(gomock.Any(), flags.IsSetInput{RunID: testutils.TestRunID, Offset: int(testutils.AreaRoute102)}).
		Return(&flags.IsSetOutput{Set: true}, nil)

	out, err := s.service.EnterArea(s.ctx, &run.EnterAreaInput{
		RunID: testutils.TestRunID,
		Area:  testutils.AreaRoute102,
	})
	s.Require().NoError(err)
	s.True(out.Encountered)
}

func (s *StorageTestSuite) TestEnterArea_FlagFailureLeavesAreaUnchanged() {
	s.mockRunRepo.EXPECT().
		Get(gomock.Any(), runrepo.GetInput{ID: testutils.TestRunID}).
		Return(&runrepo.GetOutput{Run: testutils.CreateTestRun()}, nil)
	s.mockAreaFlags.EXPECT().
		IsSet(gomock.Any(), gomock.Any()).
		Return(nil, errors.Internal("redis unavailable"))
	// No Update may follow

	_, err := s.service.EnterArea(s.ctx, &run.EnterAreaInput{
		RunID: testutils.TestRunID,
		Area:  testutils.AreaRoute102,
	})
	s.Require().Error(err)
	s.True(errors.IsInternal(err))
	s.Contains(err.Error(), "failed to load area flags")
}

func (s *StorageTestSuite) TestEnterArea_UnknownAreaSkipsFlags() {
	s.mockRunRepo.EXPECT().
		Get(gomock.Any(), runrepo.GetInput{ID: testutils.TestRunID}).
		Return(&runrepo.GetOutput{Run: testutils.CreateTestRun()}, nil)
	s.mockRunRepo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input runrepo.UpdateInput) (*runrepo.UpdateOutput, error) {
			return &runrepo.UpdateOutput{Run: input.Run}, nil
		})

	out, err := s.service.EnterArea(s.ctx, &run.EnterAreaInput{
		RunID: testutils.TestRunID,
		Area:  nz.AreaID(nz.DefaultAreaCount),
	})
	s.Require().NoError(err)
	s.False(out.Encountered)
}

func (s *StorageTestSuite) TestStartEncounter_SaveFailure() {
	s.mockRunRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(&runrepo.GetOutput{Run: testutils.CreateTestRun()}, nil)
	s.expectSnapshots()
	s.mockRunRepo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound("run not found"))

	_, err := s.service.StartEncounter(s.ctx, &run.StartEncounterInput{
		RunID:   testutils.TestRunID,
		Species: testutils.SpeciesZigzagoon,
	})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
	s.Contains(err.Error(), "failed to save run")
}

func (s *StorageTestSuite) TestEndBattle_FlagFailureLeavesRunUnsaved() {
	s.mockRunRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(&runrepo.GetOutput{Run: s.battleRun()}, nil)
	s.expectSnapshots()
	s.mockAreaFlags.EXPECT().
		Set(gomock.Any(), flags.SetInput{
			RunID:   testutils.TestRunID,
			Offsets: []int{int(testutils.AreaRoute101)},
		}).
		Return(nil, errors.Internal("redis unavailable"))
	// No Update and no journal entry may follow

	_, err := s.service.EndBattle(s.ctx, &run.EndBattleInput{
		RunID:         testutils.TestRunID,
		CaughtSpecies: testutils.SpeciesZigzagoon,
	})
	s.Require().Error(err)
	s.True(errors.IsInternal(err))
	s.Contains(err.Error(), "failed to save area flags")
}

func (s *StorageTestSuite) TestEndBattle_StaleQueueSparesCatch() {
	stale := s.battleRun()
	stale.Releases[1] = true
	s.mockRunRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(&runrepo.GetOutput{Run: stale}, nil)
	s.expectSnapshots()
	s.mockAreaFlags.EXPECT().
		Set(gomock.Any(), gomock.Any()).
		Return(&flags.SetOutput{Changed: 1}, nil)
	s.mockDexFlags.EXPECT().
		Set(gomock.Any(), flags.SetInput{RunID: testutils.TestRunID, Offsets: []int{263}}).
		Return(&flags.SetOutput{Changed: 1}, nil)
	s.mockRunRepo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input runrepo.UpdateInput) (*runrepo.UpdateOutput, error) {
			return &runrepo.UpdateOutput{Run: input.Run}, nil
		})
	s.mockJournal.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input journal.AppendInput) (*journal.AppendOutput, error) {
			return &journal.AppendOutput{Entry: input.Entry}, nil
		})

	out, err := s.service.EndBattle(s.ctx, &run.EndBattleInput{
		RunID:         testutils.TestRunID,
		CaughtSpecies: testutils.SpeciesZigzagoon,
	})
	s.Require().NoError(err)
	s.Equal(1, out.CaughtSlot)
	s.Zero(out.Released)
	s.Equal(testutils.SpeciesZigzagoon, out.Run.Party[1].Species)
	s.False(out.Run.Releases[1])
}

func (s *StorageTestSuite) TestEndBattle_DexLoadFailure() {
	s.mockRunRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(&runrepo.GetOutput{Run: s.battleRun()}, nil)
	s.mockAreaFlags.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(&flags.GetOutput{Flags: bitmap.New(nz.DefaultAreaCount)}, nil)
	s.mockDexFlags.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(nil, errors.Internal("redis unavailable"))

	_, err := s.service.EndBattle(s.ctx, &run.EndBattleInput{RunID: testutils.TestRunID})
	s.Require().Error(err)
	s.Contains(err.Error(), "failed to load dex flags")
}

func (s *StorageTestSuite) TestDeleteRun_StopsWhenRunMissing() {
	s.mockRunRepo.EXPECT().
		Delete(gomock.Any(), runrepo.DeleteInput{ID: testutils.TestRunID}).
		Return(nil, errors.NotFound("run not found"))

	_, err := s.service.DeleteRun(s.ctx, &run.DeleteRunInput{RunID: testutils.TestRunID})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}
