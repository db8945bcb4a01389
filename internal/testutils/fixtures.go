package testutils

import (
	"time"

	nz "github.com/KirkDiggler/rpg-nuzlocke/internal/entities/nuzlocke"
)

// Fixture values shared by tests
const (
	TestRunID     = "run_test_001"
	TestTrainerID = uint32(0x3A4B5C6D)

	SpeciesTreecko   nz.SpeciesID = 277
	SpeciesPoochyena nz.SpeciesID = 286
	SpeciesZigzagoon nz.SpeciesID = 288
	SpeciesWurmple   nz.SpeciesID = 290

	AreaRoute101 nz.AreaID = 16
	AreaRoute102 nz.AreaID = 17
)

// TestTime is the fixed instant used with clock.Fixed
var TestTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// ShinyPersonality returns a personality that is shiny for trainerID
func ShinyPersonality(trainerID uint32) uint32 {
	return trainerID
}

// PlainPersonality returns a personality that is not shiny for trainerID
func PlainPersonality(trainerID uint32) uint32 {
	return trainerID ^ 0x00000100
}

// CreateTestRun returns an active run standing in Route 101 with a starter
func CreateTestRun() *nz.Run {
	return &nz.Run{
		ID:            TestRunID,
		TrainerID:     TestTrainerID,
		RulesetActive: true,
		CurrentArea:   AreaRoute101,
		Party: nz.Party{
			{Species: SpeciesTreecko, Personality: PlainPersonality(TestTrainerID), TrainerID: TestTrainerID},
		},
	}
}
