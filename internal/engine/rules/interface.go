package rules

import (
	nz "github.com/KirkDiggler/rpg-nuzlocke/internal/entities/nuzlocke"
)

// Ruleset reports whether the Nuzlocke ruleset is switched on. The engine
// only reads it.
type Ruleset interface {
	Active() bool
}

// AreaFlags is the persisted per-area encountered state. The engine sets
// bits and never clears them.
type AreaFlags interface {
	Encountered(area nz.AreaID) bool
	MarkEncountered(area nz.AreaID)
}

// CaughtRegistry answers whether a national dex entry is marked caught
type CaughtRegistry interface {
	Caught(nationalDex uint16) bool
}

// SpeciesIndex maps game species to national dex numbers
type SpeciesIndex interface {
	NationalDexNumber(species nz.SpeciesID) uint16
}

// AreaLocator resolves the area the player is standing in
type AreaLocator interface {
	CurrentArea() nz.AreaID
}

// Battle exposes the wild opponent and, once the battle is over, its outcome
type Battle interface {
	WildOpponent() *nz.Creature
	Outcome() nz.BattleOutcome
}

// Party is the player's party as the release queue sees it
type Party interface {
	Size() int
	SpeciesOrEgg(slot int) nz.SpeciesID
	Zero(slot int)
	Compact()
}
