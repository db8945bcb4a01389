package run

import (
	"fmt"

	nz "github.com/KirkDiggler/rpg-nuzlocke/internal/entities/nuzlocke"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/engine/rules"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/pkg/bitmap"
)

// runView exposes the ruleset switch and the current area of a run
type runView struct {
	run *nz.Run
}

func (v runView) Active() bool {
	return v.run.RulesetActive
}

func (v runView) CurrentArea() nz.AreaID {
	return v.run.CurrentArea
}

// battleView is the battle as the rules see it
type battleView struct {
	opponent *nz.Creature
	outcome  nz.BattleOutcome
}

func (b *battleView) WildOpponent() *nz.Creature {
	return b.opponent
}

func (b *battleView) Outcome() nz.BattleOutcome {
	return b.outcome
}

// areaSnapshot is a loaded area bitmap that remembers the bits set since load
type areaSnapshot struct {
	bits   *bitmap.Bitmap
	marked []int
}

func (a *areaSnapshot) Encountered(area nz.AreaID) bool {
	return a.bits.Get(int(area))
}

func (a *areaSnapshot) MarkEncountered(area nz.AreaID) {
	if a.bits.Set(int(area)) {
		a.marked = append(a.marked, int(area))
	}
}

// dexSnapshot is a loaded caught bitmap indexed by national dex number
type dexSnapshot struct {
	bits *bitmap.Bitmap
}

func (d *dexSnapshot) Caught(nationalDex uint16) bool {
	return nationalDex != 0 && d.bits.Get(int(nationalDex))
}

// creatureEntity names a creature of a run for event consumers
type creatureEntity struct {
	runID    string
	slot     string
	creature *nz.Creature
}

func (c *creatureEntity) GetID() string {
	return fmt.Sprintf("%s:%s", c.runID, c.slot)
}

func (c *creatureEntity) GetType() string {
	return entityTypeCreature
}

// Ensure the views satisfy the rule interfaces
var (
	_ rules.Ruleset        = runView{}
	_ rules.AreaLocator    = runView{}
	_ rules.Battle         = (*battleView)(nil)
	_ rules.AreaFlags      = (*areaSnapshot)(nil)
	_ rules.CaughtRegistry = (*dexSnapshot)(nil)
)
