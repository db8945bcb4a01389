package client

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/rpg-nuzlocke/internal/handlers/nuzlocke/v1alpha1"
)

func printRun(run *v1alpha1.Run) {
	if run == nil {
		return
	}

	fmt.Printf("Run ID: %s\n", run.ID)
	fmt.Printf("Trainer ID: %08X\n", run.TrainerID)
	fmt.Printf("Ruleset Active: %t\n", run.RulesetActive)
	fmt.Printf("Current Area: %d\n", run.CurrentArea)
	if run.EncounterPhase != "" {
		fmt.Printf("Encounter: %s (dupe: %t)\n", run.EncounterPhase, run.Dupe)
	}
	if run.Opponent != nil {
		fmt.Printf("Opponent: %s\n", describeCreature(run.Opponent))
	}

	fmt.Printf("\nParty (%d):\n", len(run.Party))
	for i := range run.Party {
		fmt.Printf("  [%d] %s\n", run.Party[i].Slot, describeCreature(&run.Party[i]))
	}
	if len(run.QueuedReleases) > 0 {
		fmt.Printf("Queued Releases: %v\n", run.QueuedReleases)
	}
}

func describeCreature(c *v1alpha1.Creature) string {
	if c.IsEgg {
		return "Egg"
	}

	parts := []string{fmt.Sprintf("species %d", c.Species)}
	if c.Nickname != "" {
		parts = append(parts, fmt.Sprintf("%q", c.Nickname))
	}
	parts = append(parts, fmt.Sprintf("pid %08X", c.Personality))
	if c.Shiny {
		parts = append(parts, "shiny")
	}
	return strings.Join(parts, ", ")
}

func printEncounter(e *v1alpha1.Encounter) {
	caught := "nothing"
	if e.CaughtSpecies != 0 {
		caught = fmt.Sprintf("species %d", e.CaughtSpecies)
	}

	fmt.Printf("  %s  area %d  species %d  caught %s", e.CreatedAt, e.Area, e.Species, caught)
	var notes []string
	if e.Dupe {
		notes = append(notes, "dupe")
	}
	if e.Shiny {
		notes = append(notes, "shiny")
	}
	if e.AreaMarked {
		notes = append(notes, "area marked")
	}
	if e.Released > 0 {
		notes = append(notes, fmt.Sprintf("released %d", e.Released))
	}
	if len(notes) > 0 {
		fmt.Printf("  (%s)", strings.Join(notes, ", "))
	}
	fmt.Println()
}
