package rules_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	nz "github.com/KirkDiggler/rpg-nuzlocke/internal/entities/nuzlocke"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/engine/rules"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/errors"
)

const (
	route101   nz.AreaID    = 16
	zigzagoon  nz.SpeciesID = 288
	poochyena  nz.SpeciesID = 286
	plainTrain uint32       = 0x00010002
)

type EngineTestSuite struct {
	suite.Suite
	ruleset *fakeRuleset
	areas   *fakeAreas
	dex     *fakeDex
	locator *fakeLocator
	battle  *fakeBattle
	state   *nz.EncounterState
	engine  *rules.Engine
}

func (s *EngineTestSuite) SetupTest() {
	s.ruleset = &fakeRuleset{active: true}
	s.areas = newFakeAreas()
	s.dex = &fakeDex{caught: make(map[uint16]bool)}
	s.locator = &fakeLocator{area: route101}
	s.battle = &fakeBattle{opponent: s.plainCreature(zigzagoon)}
	s.state = &nz.EncounterState{}

	engine, err := rules.New(&rules.Config{
		Ruleset: s.ruleset,
		Areas:   s.areas,
		Dex:     s.dex,
		Species: offsetSpecies{},
		Locator: s.locator,
		Battle:  s.battle,
		State:   s.state,
	})
	s.Require().NoError(err)
	s.engine = engine
}

// plainCreature returns a creature whose shiny value is far above the threshold
func (s *EngineTestSuite) plainCreature(species nz.SpeciesID) *nz.Creature {
	return &nz.Creature{Species: species, Personality: 0x0F0000F0, TrainerID: plainTrain}
}

func (s *EngineTestSuite) shinyCreature(species nz.SpeciesID) *nz.Creature {
	return &nz.Creature{Species: species, Personality: 0x00010002, TrainerID: plainTrain}
}

func (s *EngineTestSuite) markCaught(species nz.SpeciesID) {
	s.dex.caught[offsetSpecies{}.NationalDexNumber(species)] = true
}

func (s *EngineTestSuite) TestNew_Validation() {
	_, err := rules.New(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = rules.New(&rules.Config{Ruleset: s.ruleset, AreaCount: -1})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "Areas: is required")
	s.Contains(err.Error(), "Battle: is required")
	s.Contains(err.Error(), "AreaCount: must not be negative")
}

func (s *EngineTestSuite) TestEvaluateDupe() {
	testCases := []struct {
		name     string
		active   bool
		opponent *nz.Creature
		caught   bool
		wantDupe bool
		lookups  int
	}{
		{name: "caught species is a dupe", active: true, opponent: s.plainCreature(zigzagoon), caught: true, wantDupe: true, lookups: 1},
		{name: "new species is not a dupe", active: true, opponent: s.plainCreature(zigzagoon), lookups: 1},
		{name: "ruleset off never dupes", active: false, opponent: s.plainCreature(zigzagoon), caught: true},
		{name: "egg is not looked up", active: true, opponent: &nz.Creature{Species: zigzagoon, IsEgg: true}, caught: true},
		{name: "missing opponent is not looked up", active: true, opponent: nil, caught: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			s.ruleset.active = tc.active
			s.battle.opponent = tc.opponent
			if tc.caught {
				s.markCaught(zigzagoon)
			}
			s.state.Dupe = !tc.wantDupe

			s.engine.EvaluateDupeAtEncounterStart()

			s.Equal(tc.wantDupe, s.engine.State().Dupe)
			s.Equal(nz.EncounterPhasePending, s.engine.State().Phase)
			s.Len(s.dex.lookups, tc.lookups)
		})
	}
}

func (s *EngineTestSuite) TestIsSpeciesAlreadyCaught_UsesNationalNumber() {
	s.dex.caught[263] = true

	s.True(s.engine.IsSpeciesAlreadyCaught(zigzagoon))
	s.Equal([]uint16{263}, s.dex.lookups)

	s.False(s.engine.IsSpeciesAlreadyCaught(nz.SpeciesNone))
	s.False(s.engine.IsSpeciesAlreadyCaught(nz.SpeciesEgg))
	s.Len(s.dex.lookups, 1, "sentinels never reach the registry")
}

func (s *EngineTestSuite) TestCanCapture_RulesetOff() {
	s.ruleset.active = false
	s.areas.set[route101] = true

	s.True(s.engine.CanCaptureInCurrentArea())
}

func (s *EngineTestSuite) TestCanCapture_ShinyClause() {
	s.areas.set[route101] = true
	s.battle.opponent = s.shinyCreature(zigzagoon)

	s.True(s.engine.CanCaptureInCurrentArea())

	s.battle.opponent = s.plainCreature(zigzagoon)
	s.False(s.engine.CanCaptureInCurrentArea())
}

func (s *EngineTestSuite) TestCanCapture_AreaState() {
	s.True(s.engine.CanCaptureInCurrentArea())

	s.areas.set[route101] = true
	s.False(s.engine.CanCaptureInCurrentArea())

	s.locator.area = route101 + 1
	s.True(s.engine.CanCaptureInCurrentArea(), "other areas are unaffected")
}

func (s *EngineTestSuite) TestCanCapture_UnknownAreaIsOpen() {
	s.locator.area = nz.DefaultAreaCount
	s.areas.set[nz.DefaultAreaCount] = true

	s.False(s.engine.HasEncounteredInArea())
	s.True(s.engine.CanCaptureInCurrentArea())
}

func (s *EngineTestSuite) TestDupeAndFlee_KeepsAreaOpen() {
	s.markCaught(zigzagoon)
	s.engine.EvaluateDupeAtEncounterStart()
	s.Require().True(s.engine.State().Dupe)

	s.battle.outcome = nz.BattleOutcome{CaughtSpecies: nz.SpeciesNone}
	marked := s.engine.MarkAreaEncounteredAfterBattle()

	s.False(marked)
	s.False(s.areas.set[route101])
	s.Equal(nz.EncounterState{Phase: nz.EncounterPhaseResolved}, s.engine.State())
	s.True(s.engine.CanCaptureInCurrentArea())
}

func (s *EngineTestSuite) TestDupeAndCatch_UsesArea() {
	s.markCaught(zigzagoon)
	s.engine.EvaluateDupeAtEncounterStart()

	s.battle.outcome = nz.BattleOutcome{CaughtSpecies: zigzagoon}
	marked := s.engine.MarkAreaEncounteredAfterBattle()

	s.True(marked)
	s.True(s.areas.set[route101])
	s.False(s.engine.State().Dupe)

	s.battle.opponent = s.plainCreature(poochyena)
	s.engine.EvaluateDupeAtEncounterStart()
	s.False(s.engine.CanCaptureInCurrentArea())

	s.battle.opponent = s.shinyCreature(poochyena)
	s.True(s.engine.CanCaptureInCurrentArea(), "shiny clause still applies")
}

func (s *EngineTestSuite) TestNonDupe_AlwaysUsesArea() {
	outcomes := []nz.SpeciesID{nz.SpeciesNone, zigzagoon}

	for _, caught := range outcomes {
		s.SetupTest()
		s.engine.EvaluateDupeAtEncounterStart()
		s.battle.outcome = nz.BattleOutcome{CaughtSpecies: caught}

		s.True(s.engine.MarkAreaEncounteredAfterBattle())
		s.True(s.areas.set[route101], "caught species %d", caught)
		s.False(s.engine.CanCaptureInCurrentArea())
	}
}

func (s *EngineTestSuite) TestMark_WithoutEvaluationIsNotADupe() {
	s.True(s.engine.MarkAreaEncounteredAfterBattle())
	s.True(s.areas.set[route101])
}

func (s *EngineTestSuite) TestMark_Guards() {
	s.Run("ruleset off", func() {
		s.SetupTest()
		s.engine.EvaluateDupeAtEncounterStart()
		s.ruleset.active = false

		s.False(s.engine.MarkAreaEncounteredAfterBattle())
		s.Zero(s.areas.marks)
		s.Equal(nz.EncounterPhasePending, s.engine.State().Phase)
	})

	s.Run("area out of range", func() {
		s.SetupTest()
		s.markCaught(zigzagoon)
		s.engine.EvaluateDupeAtEncounterStart()
		s.locator.area = nz.DefaultAreaCount

		s.False(s.engine.MarkAreaEncounteredAfterBattle())
		s.Zero(s.areas.marks)
		s.True(s.engine.State().Dupe, "guards leave the pending encounter alone")
	})
}

func (s *EngineTestSuite) TestAreaCount_Configurable() {
	engine, err := rules.New(&rules.Config{
		Ruleset:   s.ruleset,
		Areas:     s.areas,
		Dex:       s.dex,
		Species:   offsetSpecies{},
		Locator:   s.locator,
		Battle:    s.battle,
		AreaCount: 10,
	})
	s.Require().NoError(err)

	s.False(engine.MarkAreaEncounteredAfterBattle(), "route101 is out of range for ten areas")

	s.locator.area = 9
	s.True(engine.MarkAreaEncounteredAfterBattle())
	s.True(s.areas.set[9])
}

func (s *EngineTestSuite) TestRetryAfterFleeingDupe() {
	s.markCaught(zigzagoon)

	s.engine.EvaluateDupeAtEncounterStart()
	s.battle.outcome = nz.BattleOutcome{}
	s.engine.MarkAreaEncounteredAfterBattle()

	s.battle.opponent = s.plainCreature(poochyena)
	s.engine.EvaluateDupeAtEncounterStart()
	s.False(s.engine.State().Dupe)
	s.True(s.engine.CanCaptureInCurrentArea())

	s.battle.outcome = nz.BattleOutcome{}
	s.True(s.engine.MarkAreaEncounteredAfterBattle(), "fleeing a new species still uses the area")
	s.False(s.engine.CanCaptureInCurrentArea())
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}
