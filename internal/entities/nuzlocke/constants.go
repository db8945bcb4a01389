package nuzlocke

// MaxPartySize is the number of party slots
const MaxPartySize = 6

// SpeciesID is the game-internal species identifier. It is not the national
// dex number; see the species client for that mapping.
type SpeciesID uint16

// Sentinel species
const (
	SpeciesNone SpeciesID = 0
	SpeciesEgg  SpeciesID = 412
)

// IsReal reports whether the species names an actual creature
func (s SpeciesID) IsReal() bool {
	return s != SpeciesNone && s != SpeciesEgg
}

// AreaID identifies a world area (map section)
type AreaID uint16

// DefaultAreaCount is the number of valid area identifiers; ids at or above
// it are out of range.
const DefaultAreaCount = 213

// DefaultNationalDexCount covers national dex numbers 0 through 386
const DefaultNationalDexCount = 387

// BattleTypeFlags describes the just-ended battle
type BattleTypeFlags uint32

// Battle type bits
const (
	BattleTypeDouble  BattleTypeFlags = 1 << 0
	BattleTypeLink    BattleTypeFlags = 1 << 1
	BattleTypeTrainer BattleTypeFlags = 1 << 3
)

// Has reports whether every bit of flag is set
func (f BattleTypeFlags) Has(flag BattleTypeFlags) bool {
	return f&flag == flag
}
