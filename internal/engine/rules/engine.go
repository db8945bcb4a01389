// Package rules implements the Nuzlocke encounter rules and the deferred
// party release queue.
//
// Everything here runs synchronously inside one game step and never returns
// an error: when a rule does not apply (ruleset off, unknown area, bad slot)
// the call quietly does nothing. Storage and transport concerns belong to the
// callers, which hand the engine in-memory views through the interfaces in
// interface.go.
package rules

import (
	"github.com/KirkDiggler/rpg-nuzlocke/internal/errors"

	nz "github.com/KirkDiggler/rpg-nuzlocke/internal/entities/nuzlocke"
)

// Config holds the collaborators of the encounter rule engine
type Config struct {
	Ruleset Ruleset
	Areas   AreaFlags
	Dex     CaughtRegistry
	Species SpeciesIndex
	Locator AreaLocator
	Battle  Battle

	// AreaCount bounds valid area ids. Zero means nz.DefaultAreaCount.
	AreaCount int

	// State is the encounter state to drive. Nil starts from a fresh state.
	State *nz.EncounterState
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Ruleset == nil {
		vb.RequiredField("Ruleset")
	}
	if c.Areas == nil {
		vb.RequiredField("Areas")
	}
	if c.Dex == nil {
		vb.RequiredField("Dex")
	}
	if c.Species == nil {
		vb.RequiredField("Species")
	}
	if c.Locator == nil {
		vb.RequiredField("Locator")
	}
	if c.Battle == nil {
		vb.RequiredField("Battle")
	}
	if c.AreaCount < 0 {
		vb.Fieldf("AreaCount", "must not be negative, got %d", c.AreaCount)
	}

	return vb.Build()
}

// Engine decides catch eligibility per area and tracks the Dupe Clause
// across one encounter.
type Engine struct {
	ruleset   Ruleset
	areas     AreaFlags
	dex       CaughtRegistry
	species   SpeciesIndex
	locator   AreaLocator
	battle    Battle
	areaCount int
	state     *nz.EncounterState
}

// New creates an engine over the given collaborators
func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	areaCount := cfg.AreaCount
	if areaCount == 0 {
		areaCount = nz.DefaultAreaCount
	}

	state := cfg.State
	if state == nil {
		state = &nz.EncounterState{}
	}

	return &Engine{
		ruleset:   cfg.Ruleset,
		areas:     cfg.Areas,
		dex:       cfg.Dex,
		species:   cfg.Species,
		locator:   cfg.Locator,
		battle:    cfg.Battle,
		areaCount: areaCount,
		state:     state,
	}, nil
}

// State returns a copy of the current encounter state
func (e *Engine) State() nz.EncounterState {
	return *e.state
}

// EvaluateDupeAtEncounterStart opens a new encounter and records whether the
// wild opponent's species is already caught.
func (e *Engine) EvaluateDupeAtEncounterStart() {
	*e.state = nz.EncounterState{Phase: nz.EncounterPhasePending}

	if !e.ruleset.Active() {
		return
	}

	e.state.Dupe = e.IsSpeciesAlreadyCaught(e.battle.WildOpponent().SpeciesOrEgg())
}

// IsSpeciesAlreadyCaught asks the dex whether species is caught. The none and
// egg sentinels are never caught and are not looked up.
func (e *Engine) IsSpeciesAlreadyCaught(species nz.SpeciesID) bool {
	if !species.IsReal() {
		return false
	}
	return e.dex.Caught(e.species.NationalDexNumber(species))
}

// HasEncounteredInArea reports whether the current area already had its
// encounter. Unknown areas report false.
func (e *Engine) HasEncounteredInArea() bool {
	area := e.locator.CurrentArea()
	if !e.validArea(area) {
		return false
	}
	return e.areas.Encountered(area)
}

// CanCaptureInCurrentArea reports whether a capture attempt is allowed right
// now. A shiny opponent is always allowed.
func (e *Engine) CanCaptureInCurrentArea() bool {
	if !e.ruleset.Active() {
		return true
	}
	if IsShiny(e.battle.WildOpponent()) {
		return true
	}
	return !e.HasEncounteredInArea()
}

// MarkAreaEncounteredAfterBattle resolves the encounter once a wild battle is
// over and reports whether the area bit was set.
//
// A dupe that was not captured leaves the area open so the player keeps the
// catch for this area. Anything else, including capturing a dupe, uses the
// area up. When the ruleset is off or the area is unknown nothing changes.
func (e *Engine) MarkAreaEncounteredAfterBattle() bool {
	if !e.ruleset.Active() {
		return false
	}

	area := e.locator.CurrentArea()
	if !e.validArea(area) {
		return false
	}

	if e.dupePending() && e.battle.Outcome().CaughtSpecies == nz.SpeciesNone {
		*e.state = nz.EncounterState{Phase: nz.EncounterPhaseResolved}
		return false
	}

	e.areas.MarkEncountered(area)
	*e.state = nz.EncounterState{Phase: nz.EncounterPhaseResolved}
	return true
}

func (e *Engine) dupePending() bool {
	return e.state.Phase == nz.EncounterPhasePending && e.state.Dupe
}

func (e *Engine) validArea(area nz.AreaID) bool {
	return int(area) < e.areaCount
}
