package rules

import (
	nz "github.com/KirkDiggler/rpg-nuzlocke/internal/entities/nuzlocke"
)

// shinyThreshold is the exclusive upper bound of the shiny value
const shinyThreshold = 8

// ShinyValue folds a personality and trainer id into the 16-bit value the
// shiny check compares against.
func ShinyValue(personality, trainerID uint32) uint16 {
	return uint16(personality>>16) ^ uint16(personality) ^ uint16(trainerID>>16) ^ uint16(trainerID)
}

// IsShiny reports whether a creature is shiny. A nil creature is not.
func IsShiny(c *nz.Creature) bool {
	if c == nil {
		return false
	}
	return ShinyValue(c.Personality, c.TrainerID) < shinyThreshold
}
