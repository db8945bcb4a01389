package run

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"
)

// Event types published on the bus. The run is always the source.
const (
	EventEncounterStarted  = "nuzlocke.encounter.started"
	EventCreatureCaught    = "nuzlocke.creature.caught"
	EventAreaMarked        = "nuzlocke.area.marked"
	EventReleasesCommitted = "nuzlocke.releases.committed"
)

// Event context keys
const (
	EventKeyArea     = "area"
	EventKeySpecies  = "species"
	EventKeyDupe     = "dupe"
	EventKeyShiny    = "shiny"
	EventKeySlot     = "slot"
	EventKeyReleased = "released"
)

const entityTypeCreature = "nuzlocke_creature"

// publish sends an event to the bus. Subscribers observe the run; a failing
// subscriber does not fail the step that already persisted.
func (o *orchestrator) publish(ctx context.Context, eventType string, source, target core.Entity, data map[string]any) {
	event := events.NewGameEvent(eventType, source, target)
	for key, value := range data {
		event.Context().Set(key, value)
	}

	if err := o.eventBus.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish event",
			"event_type", eventType,
			"source_id", source.GetID(),
			"error", err,
		)
	}
}
