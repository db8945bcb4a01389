package v1alpha1

import (
	"time"

	nz "github.com/KirkDiggler/rpg-nuzlocke/internal/entities/nuzlocke"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/engine/rules"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/repositories/journal"
)

func creatureFromMessage(c Creature) nz.Creature {
	return nz.Creature{
		Species:     nz.SpeciesID(c.Species),
		IsEgg:       c.IsEgg,
		Personality: c.Personality,
		TrainerID:   c.TrainerID,
		Nickname:    c.Nickname,
	}
}

func convertCreature(slot int, c *nz.Creature) *Creature {
	if c == nil {
		return nil
	}
	return &Creature{
		Slot:        slot,
		Species:     uint16(c.Species),
		IsEgg:       c.IsEgg,
		Personality: c.Personality,
		TrainerID:   c.TrainerID,
		Nickname:    c.Nickname,
		Shiny:       rules.IsShiny(c),
	}
}

func convertRun(r *nz.Run) *Run {
	if r == nil {
		return nil
	}

	out := &Run{
		ID:             r.ID,
		TrainerID:      r.TrainerID,
		RulesetActive:  r.RulesetActive,
		CurrentArea:    uint16(r.CurrentArea),
		Party:          make([]Creature, 0, nz.MaxPartySize),
		EncounterPhase: string(r.Encounter.Phase),
		Dupe:           r.Encounter.Dupe,
		Opponent:       convertCreature(-1, r.Opponent),
		QueuedReleases: rules.NewReleaseQueue(&r.Releases).Queued(),
		CreatedAt:      formatTime(r.CreatedAt),
		UpdatedAt:      formatTime(r.UpdatedAt),
	}
	if out.QueuedReleases == nil {
		out.QueuedReleases = []int{}
	}

	for i := range r.Party {
		if r.Party[i].IsEmpty() {
			continue
		}
		out.Party = append(out.Party, *convertCreature(i, &r.Party[i]))
	}

	return out
}

func convertEncounter(e *journal.Entry) Encounter {
	return Encounter{
		ID:            e.ID,
		Area:          uint16(e.Area),
		Species:       uint16(e.Species),
		Personality:   e.Personality,
		CaughtSpecies: uint16(e.CaughtSpecies),
		BattleFlags:   uint32(e.BattleFlags),
		Dupe:          e.Dupe,
		Shiny:         e.Shiny,
		AreaMarked:    e.AreaMarked,
		Released:      e.Released,
		CreatedAt:     formatTime(e.CreatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
