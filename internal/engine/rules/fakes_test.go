package rules_test

import (
	nz "github.com/KirkDiggler/rpg-nuzlocke/internal/entities/nuzlocke"
)

type fakeRuleset struct{ active bool }

func (f *fakeRuleset) Active() bool { return f.active }

type fakeAreas struct {
	set   map[nz.AreaID]bool
	marks int
}

func newFakeAreas() *fakeAreas { return &fakeAreas{set: make(map[nz.AreaID]bool)} }

func (f *fakeAreas) Encountered(area nz.AreaID) bool { return f.set[area] }
func (f *fakeAreas) MarkEncountered(area nz.AreaID) {
	f.set[area] = true
	f.marks++
}

// fakeDex records every lookup so tests can assert the sentinels skip it
type fakeDex struct {
	caught  map[uint16]bool
	lookups []uint16
}

func (f *fakeDex) Caught(nationalDex uint16) bool {
	f.lookups = append(f.lookups, nationalDex)
	return f.caught[nationalDex]
}

// offsetSpecies maps species to national dex by subtracting an offset above
// the threshold, the way the Hoenn block is shifted.
type offsetSpecies struct{}

func (offsetSpecies) NationalDexNumber(species nz.SpeciesID) uint16 {
	if species > 276 {
		return uint16(species) - 25
	}
	return uint16(species)
}

type fakeLocator struct{ area nz.AreaID }

func (f *fakeLocator) CurrentArea() nz.AreaID { return f.area }

type fakeBattle struct {
	opponent *nz.Creature
	outcome  nz.BattleOutcome
}

func (f *fakeBattle) WildOpponent() *nz.Creature  { return f.opponent }
func (f *fakeBattle) Outcome() nz.BattleOutcome { return f.outcome }
