package run

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	nz "github.com/KirkDiggler/rpg-nuzlocke/internal/entities/nuzlocke"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/engine/rules"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/errors"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/repositories/journal"
)

// EndBattle applies the outcome of the battle in progress.
//
// The order is fixed: the catch is registered, queued releases are
// committed, then a wild battle resolves the area. Trainer and link battles
// have no wild opponent and only commit releases.
func (o *orchestrator) EndBattle(ctx context.Context, input *EndBattleInput) (*EndBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := o.startSpan(ctx, "EndBattle", input.RunID)
	defer span.End()

	unlock := o.lock(input.RunID)
	defer unlock()

	run, err := o.loadRun(ctx, input.RunID)
	if err != nil {
		return nil, o.fail(span, err)
	}

	wild := isWildBattle(input.BattleFlags)
	switch {
	case wild && !run.InBattle():
		return nil, errors.FailedPrecondition("no wild battle in progress").WithMeta("run_id", run.ID)
	case !wild && run.InBattle():
		return nil, errors.FailedPrecondition("a wild battle is in progress").WithMeta("run_id", run.ID)
	case !wild && input.CaughtSpecies != nz.SpeciesNone:
		return nil, errors.InvalidArgument("only wild creatures can be caught")
	case wild && input.CaughtSpecies != nz.SpeciesNone && input.CaughtSpecies != run.Opponent.Species:
		return nil, errors.InvalidArgumentf("caught species %d is not the opponent %d",
			input.CaughtSpecies, run.Opponent.Species)
	}

	battle := &battleView{
		opponent: run.Opponent,
		outcome: nz.BattleOutcome{
			CaughtSpecies: input.CaughtSpecies,
			TypeFlags:     input.BattleFlags,
		},
	}
	engine, areas, dex, err := o.buildEngine(ctx, run, battle)
	if err != nil {
		return nil, o.fail(span, err)
	}

	output := &EndBattleOutput{Run: run, CaughtSlot: -1}
	opponent := run.Opponent
	dupe := run.Encounter.Phase == nz.EncounterPhasePending && run.Encounter.Dupe

	var caughtDex []int
	if input.CaughtSpecies != nz.SpeciesNone {
		if !engine.CanCaptureInCurrentArea() {
			return nil, errors.FailedPrecondition("capture is not allowed in this area").
				WithMeta("run_id", run.ID).
				WithMeta("area", run.CurrentArea)
		}

		national := o.species.NationalDexNumber(input.CaughtSpecies)
		if national != 0 && dex.bits.Set(int(national)) {
			caughtDex = append(caughtDex, int(national))
		}
		output.CaughtSlot = run.Party.Add(*opponent)
		if output.CaughtSlot >= 0 {
			// The slot the catch filled was empty when the queue was built
			run.Releases[output.CaughtSlot] = false
		}
	}

	queue := rules.NewReleaseQueue(&run.Releases)
	queued := queue.Queued()
	output.Released = queue.CommitReleases(&run.Party, input.BattleFlags)
	output.CaughtSlot = slotAfterCommit(output.CaughtSlot, queued, output.Released)

	if wild {
		output.AreaMarked = engine.MarkAreaEncounteredAfterBattle()
		run.Opponent = nil
	}

	if err := o.saveFlags(ctx, run.ID, areas.marked, caughtDex); err != nil {
		return nil, o.fail(span, err)
	}
	if err := o.saveRun(ctx, run); err != nil {
		return nil, o.fail(span, err)
	}

	if wild {
		entry := &journal.Entry{
			ID:            o.entryIDGen.Generate(),
			RunID:         run.ID,
			Area:          run.CurrentArea,
			Species:       opponent.Species,
			Personality:   opponent.Personality,
			CaughtSpecies: input.CaughtSpecies,
			BattleFlags:   input.BattleFlags,
			Dupe:          dupe,
			Shiny:         rules.IsShiny(opponent),
			AreaMarked:    output.AreaMarked,
			Released:      output.Released,
			CreatedAt:     o.clock.Now(),
		}
		appended, err := o.journal.Append(ctx, journal.AppendInput{Entry: entry})
		if err != nil {
			return nil, o.fail(span, errors.Wrap(err, "failed to journal encounter"))
		}
		output.Entry = appended.Entry
	}

	span.SetAttributes(
		attribute.Int("nuzlocke.caught_species", int(input.CaughtSpecies)),
		attribute.Int("nuzlocke.released", output.Released),
		attribute.Bool("nuzlocke.area_marked", output.AreaMarked),
	)

	slog.Info("Battle ended",
		"run_id", run.ID,
		"wild", wild,
		"battle_flags", uint32(input.BattleFlags),
		"caught_species", input.CaughtSpecies,
		"caught_slot", output.CaughtSlot,
		"released", output.Released,
		"area_marked", output.AreaMarked,
	)

	o.publishBattleEvents(ctx, run, opponent, input, output)

	return output, nil
}

func (o *orchestrator) publishBattleEvents(ctx context.Context, run *nz.Run, opponent *nz.Creature, input *EndBattleInput, output *EndBattleOutput) {
	if input.CaughtSpecies != nz.SpeciesNone {
		o.publish(ctx, EventCreatureCaught, run,
			&creatureEntity{runID: run.ID, slot: "wild", creature: opponent},
			map[string]any{
				EventKeySpecies: input.CaughtSpecies,
				EventKeySlot:    output.CaughtSlot,
			})
	}
	if output.Released > 0 {
		o.publish(ctx, EventReleasesCommitted, run, nil,
			map[string]any{EventKeyReleased: output.Released})
	}
	if output.AreaMarked {
		o.publish(ctx, EventAreaMarked, run, nil,
			map[string]any{EventKeyArea: run.CurrentArea})
	}
}

// slotAfterCommit follows a caught creature through compaction. The party
// has no gaps below the slot Add chose, so every queued slot below it was
// occupied and released.
func slotAfterCommit(slot int, queued []int, released int) int {
	if slot < 0 || released == 0 {
		return slot
	}

	shift := 0
	for _, q := range queued {
		if q < slot {
			shift++
		}
	}
	return slot - shift
}

func isWildBattle(flags nz.BattleTypeFlags) bool {
	return !flags.Has(nz.BattleTypeTrainer) && !flags.Has(nz.BattleTypeLink)
}
