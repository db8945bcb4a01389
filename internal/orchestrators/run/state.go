package run

import (
	"context"

	nz "github.com/KirkDiggler/rpg-nuzlocke/internal/entities/nuzlocke"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/engine/rules"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/errors"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/repositories/flags"
	runrepo "github.com/KirkDiggler/rpg-nuzlocke/internal/repositories/run"
)

func (o *orchestrator) loadRun(ctx context.Context, runID string) (*nz.Run, error) {
	if runID == "" {
		return nil, errors.InvalidArgument("run ID is required")
	}

	out, err := o.runRepo.Get(ctx, runrepo.GetInput{ID: runID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load run")
	}

	return out.Run, nil
}

func (o *orchestrator) saveRun(ctx context.Context, run *nz.Run) error {
	if _, err := o.runRepo.Update(ctx, runrepo.UpdateInput{Run: run}); err != nil {
		return errors.Wrap(err, "failed to save run")
	}
	return nil
}

func (o *orchestrator) loadAreas(ctx context.Context, runID string) (*areaSnapshot, error) {
	out, err := o.areaFlags.Get(ctx, flags.GetInput{RunID: runID, Size: o.areaCount})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load area flags")
	}
	return &areaSnapshot{bits: out.Flags}, nil
}

// areaEncountered reads a single area bit. Unknown areas read as not
// encountered, as they do in the rules engine.
func (o *orchestrator) areaEncountered(ctx context.Context, runID string, area nz.AreaID) (bool, error) {
	if int(area) >= o.areaCount {
		return false, nil
	}

	out, err := o.areaFlags.IsSet(ctx, flags.IsSetInput{RunID: runID, Offset: int(area)})
	if err != nil {
		return false, errors.Wrap(err, "failed to load area flags")
	}
	return out.Set, nil
}

func (o *orchestrator) loadDex(ctx context.Context, runID string) (*dexSnapshot, error) {
	out, err := o.dexFlags.Get(ctx, flags.GetInput{RunID: runID, Size: o.species.NationalDexCount()})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load dex flags")
	}
	return &dexSnapshot{bits: out.Flags}, nil
}

// buildEngine loads the flag snapshots of a run and wires an engine over
// them. The engine drives run.Encounter in place.
func (o *orchestrator) buildEngine(ctx context.Context, run *nz.Run, battle *battleView) (*rules.Engine, *areaSnapshot, *dexSnapshot, error) {
	areas, err := o.loadAreas(ctx, run.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	dex, err := o.loadDex(ctx, run.ID)
	if err != nil {
		return nil, nil, nil, err
	}

	view := runView{run: run}
	engine, err := rules.New(&rules.Config{
		Ruleset:   view,
		Areas:     areas,
		Dex:       dex,
		Species:   o.species,
		Locator:   view,
		Battle:    battle,
		AreaCount: o.areaCount,
		State:     &run.Encounter,
	})
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "failed to build rules engine")
	}

	return engine, areas, dex, nil
}

// saveFlags persists the bits set during a step
func (o *orchestrator) saveFlags(ctx context.Context, runID string, areaOffsets, dexOffsets []int) error {
	if len(areaOffsets) > 0 {
		if _, err := o.areaFlags.Set(ctx, flags.SetInput{RunID: runID, Offsets: areaOffsets}); err != nil {
			return errors.Wrap(err, "failed to save area flags")
		}
	}
	if len(dexOffsets) > 0 {
		if _, err := o.dexFlags.Set(ctx, flags.SetInput{RunID: runID, Offsets: dexOffsets}); err != nil {
			return errors.Wrap(err, "failed to save dex flags")
		}
	}
	return nil
}
