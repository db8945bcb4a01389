package run

import (
	nz "github.com/KirkDiggler/rpg-nuzlocke/internal/entities/nuzlocke"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/repositories/journal"
)

// CreateRunInput defines the request for starting a run
type CreateRunInput struct {
	TrainerID     uint32
	RulesetActive bool
	StartingArea  nz.AreaID
	Party         []nz.Creature
}

// CreateRunOutput defines the response for starting a run
type CreateRunOutput struct {
	Run *nz.Run
}

// GetRunInput defines the request for loading a run
type GetRunInput struct {
	RunID string
}

// GetRunOutput defines the response for loading a run
type GetRunOutput struct {
	Run              *nz.Run
	EncounteredAreas []nz.AreaID
	CaughtCount      int
}

// DeleteRunInput defines the request for deleting a run
type DeleteRunInput struct {
	RunID string
}

// DeleteRunOutput defines the response for deleting a run
type DeleteRunOutput struct{}

// SetRulesetInput defines the request for switching the ruleset on or off
type SetRulesetInput struct {
	RunID  string
	Active bool
}

// SetRulesetOutput defines the response for switching the ruleset
type SetRulesetOutput struct {
	Run *nz.Run
}

// EnterAreaInput defines the request for moving to another area
type EnterAreaInput struct {
	RunID string
	Area  nz.AreaID
}

// EnterAreaOutput defines the response for moving to another area
type EnterAreaOutput struct {
	Run *nz.Run
	// Encountered reports whether the area already had its encounter
	Encountered bool
}

// StartEncounterInput defines the request for starting a wild encounter
type StartEncounterInput struct {
	RunID   string
	Species nz.SpeciesID
	// Personality is rolled when nil
	Personality *uint32
}

// StartEncounterOutput defines the response for starting a wild encounter
type StartEncounterOutput struct {
	Run        *nz.Run
	Opponent   *nz.Creature
	Dupe       bool
	Shiny      bool
	CanCapture bool
}

// QueueReleaseInput defines the request for marking a party slot for release
type QueueReleaseInput struct {
	RunID string
	Slot  int
}

// QueueReleaseOutput defines the response for marking a party slot
type QueueReleaseOutput struct {
	Run    *nz.Run
	Queued []int
}

// ClearReleasesInput defines the request for emptying the release queue
type ClearReleasesInput struct {
	RunID string
}

// ClearReleasesOutput defines the response for emptying the release queue
type ClearReleasesOutput struct {
	Run *nz.Run
}

// EndBattleInput defines the request for reporting a battle outcome
type EndBattleInput struct {
	RunID         string
	CaughtSpecies nz.SpeciesID
	BattleFlags   nz.BattleTypeFlags
}

// EndBattleOutput defines the response for reporting a battle outcome
type EndBattleOutput struct {
	Run *nz.Run
	// CaughtSlot is the party slot of the capture, -1 when nothing joined
	// the party
	CaughtSlot int
	Released   int
	AreaMarked bool
	// Entry is the journal entry of a wild battle, nil otherwise
	Entry *journal.Entry
}

// ListEncountersInput defines the request for reading the encounter history
type ListEncountersInput struct {
	RunID string
	Limit int
}

// ListEncountersOutput defines the response for reading the encounter history
type ListEncountersOutput struct {
	Entries []*journal.Entry
}
