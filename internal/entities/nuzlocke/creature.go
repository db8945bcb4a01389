// Package nuzlocke holds the data types of a Nuzlocke run: creatures, the
// party, battle outcomes and the persisted rule state. Rule logic lives in
// internal/engine/rules.
package nuzlocke

// Creature is one party slot. The zero value is an empty slot.
type Creature struct {
	Species     SpeciesID `json:"species"`
	IsEgg       bool      `json:"is_egg,omitempty"`
	Personality uint32    `json:"personality"`
	TrainerID   uint32    `json:"trainer_id"`
	Nickname    string    `json:"nickname,omitempty"`
}

// SpeciesOrEgg returns the species, SpeciesEgg for eggs and SpeciesNone for
// empty slots or a nil creature.
func (c *Creature) SpeciesOrEgg() SpeciesID {
	if c == nil {
		return SpeciesNone
	}
	if c.IsEgg {
		return SpeciesEgg
	}
	return c.Species
}

// IsEmpty reports whether the slot holds nothing
func (c *Creature) IsEmpty() bool {
	return c.SpeciesOrEgg() == SpeciesNone
}
