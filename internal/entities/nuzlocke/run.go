package nuzlocke

import "time"

// EntityTypeRun is the toolkit entity type of a run
const EntityTypeRun = "nuzlocke_run"

// EncounterPhase is the position of a run in the encounter state machine
type EncounterPhase string

// Encounter phases. An encounter goes none -> pending -> resolved, and the
// next evaluation moves it back to pending.
const (
	EncounterPhaseNone     EncounterPhase = ""
	EncounterPhasePending  EncounterPhase = "pending"
	EncounterPhaseResolved EncounterPhase = "resolved"
)

// EncounterState is the transient per-encounter rule state. Dupe is only
// meaningful while the phase is pending.
type EncounterState struct {
	Phase EncounterPhase `json:"phase,omitempty"`
	Dupe  bool           `json:"dupe,omitempty"`
}

// ReleaseQueue marks party slots to be released at the end of the battle
type ReleaseQueue [MaxPartySize]bool

// BattleOutcome is what the battle system reports once a battle has ended
type BattleOutcome struct {
	CaughtSpecies SpeciesID       `json:"caught_species"`
	TypeFlags     BattleTypeFlags `json:"type_flags"`
}

// Run is one save file played under the ruleset
type Run struct {
	ID            string         `json:"id"`
	TrainerID     uint32         `json:"trainer_id"`
	RulesetActive bool           `json:"ruleset_active"`
	CurrentArea   AreaID         `json:"current_area"`
	Party         Party          `json:"party"`
	Encounter     EncounterState `json:"encounter"`
	Opponent      *Creature      `json:"opponent,omitempty"`
	Releases      ReleaseQueue   `json:"releases"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// GetID returns the run ID
func (r *Run) GetID() string {
	return r.ID
}

// GetType returns the entity type for rpg-toolkit
func (r *Run) GetType() string {
	return EntityTypeRun
}

// InBattle reports whether a wild opponent is waiting for its outcome
func (r *Run) InBattle() bool {
	return r.Opponent != nil
}
