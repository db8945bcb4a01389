package v1alpha1

// Wire messages of the ruleset service. Each travels as a
// google.protobuf.Struct whose fields follow the json tags.

// Creature is a party member or wild opponent
type Creature struct {
	Slot        int    `json:"slot"`
	Species     uint16 `json:"species"`
	IsEgg       bool   `json:"is_egg,omitempty"`
	Personality uint32 `json:"personality"`
	TrainerID   uint32 `json:"trainer_id"`
	Nickname    string `json:"nickname,omitempty"`
	Shiny       bool   `json:"shiny,omitempty"`
}

// Run is the state of one run
type Run struct {
	ID             string     `json:"id"`
	TrainerID      uint32     `json:"trainer_id"`
	RulesetActive  bool       `json:"ruleset_active"`
	CurrentArea    uint16     `json:"current_area"`
	Party          []Creature `json:"party"`
	EncounterPhase string     `json:"encounter_phase,omitempty"`
	Dupe           bool       `json:"dupe,omitempty"`
	Opponent       *Creature  `json:"opponent,omitempty"`
	QueuedReleases []int      `json:"queued_releases"`
	CreatedAt      string     `json:"created_at"`
	UpdatedAt      string     `json:"updated_at"`
}

// Encounter is one journal entry
type Encounter struct {
	ID            string `json:"id"`
	Area          uint16 `json:"area"`
	Species       uint16 `json:"species"`
	Personality   uint32 `json:"personality"`
	CaughtSpecies uint16 `json:"caught_species"`
	BattleFlags   uint32 `json:"battle_flags"`
	Dupe          bool   `json:"dupe"`
	Shiny         bool   `json:"shiny"`
	AreaMarked    bool   `json:"area_marked"`
	Released      int    `json:"released"`
	CreatedAt     string `json:"created_at"`
}

// CreateRunRequest starts a run
type CreateRunRequest struct {
	TrainerID     uint32     `json:"trainer_id"`
	RulesetActive bool       `json:"ruleset_active"`
	StartingArea  uint16     `json:"starting_area"`
	Party         []Creature `json:"party"`
}

// RunIDRequest addresses a run
type RunIDRequest struct {
	RunID string `json:"run_id"`
}

// RunResponse returns a run
type RunResponse struct {
	Run              *Run     `json:"run"`
	EncounteredAreas []uint16 `json:"encountered_areas,omitempty"`
	CaughtCount      int      `json:"caught_count,omitempty"`
}

// DeleteRunResponse is empty
type DeleteRunResponse struct{}

// SetRulesetRequest switches the ruleset
type SetRulesetRequest struct {
	RunID  string `json:"run_id"`
	Active bool   `json:"active"`
}

// EnterAreaRequest moves the player
type EnterAreaRequest struct {
	RunID string `json:"run_id"`
	Area  uint16 `json:"area"`
}

// EnterAreaResponse reports the area state
type EnterAreaResponse struct {
	Run         *Run `json:"run"`
	Encountered bool `json:"encountered"`
}

// StartEncounterRequest opens a wild battle
type StartEncounterRequest struct {
	RunID       string  `json:"run_id"`
	Species     uint16  `json:"species"`
	Personality *uint32 `json:"personality,omitempty"`
}

// StartEncounterResponse reports the rule checks of the encounter
type StartEncounterResponse struct {
	Run        *Run      `json:"run"`
	Opponent   *Creature `json:"opponent"`
	Dupe       bool      `json:"dupe"`
	Shiny      bool      `json:"shiny"`
	CanCapture bool      `json:"can_capture"`
}

// QueueReleaseRequest marks a party slot
type QueueReleaseRequest struct {
	RunID string `json:"run_id"`
	Slot  int    `json:"slot"`
}

// QueueReleaseResponse lists the marked slots
type QueueReleaseResponse struct {
	Run    *Run  `json:"run"`
	Queued []int `json:"queued"`
}

// EndBattleRequest reports a battle outcome
type EndBattleRequest struct {
	RunID         string `json:"run_id"`
	CaughtSpecies uint16 `json:"caught_species"`
	BattleFlags   uint32 `json:"battle_flags"`
}

// EndBattleResponse reports what the outcome changed
type EndBattleResponse struct {
	Run        *Run       `json:"run"`
	CaughtSlot int        `json:"caught_slot"`
	Released   int        `json:"released"`
	AreaMarked bool       `json:"area_marked"`
	Encounter  *Encounter `json:"encounter,omitempty"`
}

// ListEncountersRequest reads the journal
type ListEncountersRequest struct {
	RunID string `json:"run_id"`
	Limit int    `json:"limit,omitempty"`
}

// ListEncountersResponse holds journal entries, oldest first
type ListEncountersResponse struct {
	Encounters []Encounter `json:"encounters"`
}
