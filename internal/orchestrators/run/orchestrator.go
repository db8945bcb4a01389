// Package run implements the run orchestrator: it loads a run and its flags,
// drives the Nuzlocke rules for one step and persists the result.
package run

//go:generate mockgen -destination=mock/mock_service.go -package=runmock github.com/KirkDiggler/rpg-nuzlocke/internal/orchestrators/run Service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/rpg-nuzlocke/internal/clients/species"
	nz "github.com/KirkDiggler/rpg-nuzlocke/internal/entities/nuzlocke"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/engine/rules"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/errors"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/repositories/flags"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/repositories/journal"
	runrepo "github.com/KirkDiggler/rpg-nuzlocke/internal/repositories/run"
)

const tracerName = "github.com/KirkDiggler/rpg-nuzlocke/internal/orchestrators/run"

// Service defines the interface for run operations
type Service interface {
	CreateRun(ctx context.Context, input *CreateRunInput) (*CreateRunOutput, error)
	GetRun(ctx context.Context, input *GetRunInput) (*GetRunOutput, error)
	DeleteRun(ctx context.Context, input *DeleteRunInput) (*DeleteRunOutput, error)

	// SetRuleset switches the Nuzlocke rules on or off for a run
	SetRuleset(ctx context.Context, input *SetRulesetInput) (*SetRulesetOutput, error)

	// EnterArea moves the player to another area
	EnterArea(ctx context.Context, input *EnterAreaInput) (*EnterAreaOutput, error)

	// StartEncounter opens a wild battle and evaluates the Dupe Clause
	StartEncounter(ctx context.Context, input *StartEncounterInput) (*StartEncounterOutput, error)

	// Party management during a battle
	QueueRelease(ctx context.Context, input *QueueReleaseInput) (*QueueReleaseOutput, error)
	ClearReleases(ctx context.Context, input *ClearReleasesInput) (*ClearReleasesOutput, error)

	// EndBattle applies the outcome: catch, releases, then area marking
	EndBattle(ctx context.Context, input *EndBattleInput) (*EndBattleOutput, error)

	// ListEncounters returns the encounter history of a run, oldest first
	ListEncounters(ctx context.Context, input *ListEncountersInput) (*ListEncountersOutput, error)
}

// Config holds the dependencies for the run orchestrator
type Config struct {
	RunRepo     runrepo.Repository
	AreaFlags   flags.Repository
	DexFlags    flags.Repository
	Journal     journal.Repository
	Species     species.Client
	EventBus    events.EventBus
	DiceRoller  dice.Roller
	IDGenerator idgen.Generator
	// EntryIDGenerator names journal entries. Defaults to IDGenerator.
	EntryIDGenerator idgen.Generator
	Clock            clock.Clock

	// AreaCount bounds valid area ids. Zero means nz.DefaultAreaCount.
	AreaCount int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.RunRepo == nil {
		vb.RequiredField("RunRepo")
	}
	if c.AreaFlags == nil {
		vb.RequiredField("AreaFlags")
	}
	if c.DexFlags == nil {
		vb.RequiredField("DexFlags")
	}
	if c.Journal == nil {
		vb.RequiredField("Journal")
	}
	if c.Species == nil {
		vb.RequiredField("Species")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.DiceRoller == nil {
		vb.RequiredField("DiceRoller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.AreaCount < 0 {
		vb.Fieldf("AreaCount", "must not be negative, got %d", c.AreaCount)
	}

	return vb.Build()
}

type orchestrator struct {
	runRepo    runrepo.Repository
	areaFlags  flags.Repository
	dexFlags   flags.Repository
	journal    journal.Repository
	species    species.Client
	eventBus   events.EventBus
	diceRoller dice.Roller
	idGen      idgen.Generator
	entryIDGen idgen.Generator
	clock      clock.Clock
	areaCount  int
	tracer     trace.Tracer

	// Steps of one run never interleave
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewOrchestrator creates a new run orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
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

	entryIDGen := cfg.EntryIDGenerator
	if entryIDGen == nil {
		entryIDGen = cfg.IDGenerator
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &orchestrator{
		runRepo:    cfg.RunRepo,
		areaFlags:  cfg.AreaFlags,
		dexFlags:   cfg.DexFlags,
		journal:    cfg.Journal,
		species:    cfg.Species,
		eventBus:   cfg.EventBus,
		diceRoller: cfg.DiceRoller,
		idGen:      cfg.IDGenerator,
		entryIDGen: entryIDGen,
		clock:      c,
		areaCount:  areaCount,
		tracer:     otel.Tracer(tracerName),
		locks:      make(map[string]*sync.Mutex),
	}, nil
}

// CreateRun starts a new run
func (o *orchestrator) CreateRun(ctx context.Context, input *CreateRunInput) (*CreateRunOutput, error) {
	ctx, span := o.startSpan(ctx, "CreateRun", "")
	defer span.End()

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if len(input.Party) > nz.MaxPartySize {
		return nil, errors.InvalidArgumentf("party cannot hold more than %d creatures", nz.MaxPartySize)
	}
	if int(input.StartingArea) >= o.areaCount {
		return nil, errors.InvalidArgumentf("starting area %d is out of range", input.StartingArea)
	}

	run := &nz.Run{
		ID:            o.idGen.Generate(),
		TrainerID:     input.TrainerID,
		RulesetActive: input.RulesetActive,
		CurrentArea:   input.StartingArea,
	}
	// The starting party counts as caught
	var caughtDex []int
	for i, c := range input.Party {
		if c.IsEmpty() {
			return nil, errors.InvalidArgumentf("party slot %d is empty", i)
		}
		if c.SpeciesOrEgg().IsReal() {
			national := o.species.NationalDexNumber(c.Species)
			if national == 0 {
				return nil, errors.InvalidArgumentf("party slot %d has unknown species %d", i, c.Species)
			}
			caughtDex = append(caughtDex, int(national))
		}
		run.Party.Add(c)
	}

	out, err := o.runRepo.Create(ctx, runrepo.CreateInput{Run: run})
	if err != nil {
		return nil, o.fail(span, errors.Wrap(err, "failed to create run"))
	}
	if err := o.saveFlags(ctx, run.ID, nil, caughtDex); err != nil {
		return nil, o.fail(span, err)
	}

	slog.Info("Run created",
		"run_id", run.ID,
		"trainer_id", run.TrainerID,
		"ruleset_active", run.RulesetActive,
		"party_size", len(run.Party.Members()),
	)

	return &CreateRunOutput{Run: out.Run}, nil
}

// GetRun loads a run with its encountered areas
func (o *orchestrator) GetRun(ctx context.Context, input *GetRunInput) (*GetRunOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := o.startSpan(ctx, "GetRun", input.RunID)
	defer span.End()

	run, err := o.loadRun(ctx, input.RunID)
	if err != nil {
		return nil, o.fail(span, err)
	}

	areas, err := o.loadAreas(ctx, run.ID)
	if err != nil {
		return nil, o.fail(span, err)
	}
	dex, err := o.loadDex(ctx, run.ID)
	if err != nil {
		return nil, o.fail(span, err)
	}

	output := &GetRunOutput{
		Run:              run,
		EncounteredAreas: make([]nz.AreaID, 0),
		CaughtCount:      len(dex.bits.Ones()),
	}
	for _, offset := range areas.bits.Ones() {
		output.EncounteredAreas = append(output.EncounteredAreas, nz.AreaID(offset))
	}

	return output, nil
}

// DeleteRun removes a run and everything recorded for it
func (o *orchestrator) DeleteRun(ctx context.Context, input *DeleteRunInput) (*DeleteRunOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := o.startSpan(ctx, "DeleteRun", input.RunID)
	defer span.End()

	if input.RunID == "" {
		return nil, errors.InvalidArgument("run ID is required")
	}

	defer o.forget(input.RunID)
	unlock := o.lock(input.RunID)
	defer unlock()

	if _, err := o.runRepo.Delete(ctx, runrepo.DeleteInput{ID: input.RunID}); err != nil {
		return nil, o.fail(span, errors.Wrap(err, "failed to delete run"))
	}
	if _, err := o.areaFlags.Reset(ctx, flags.ResetInput{RunID: input.RunID}); err != nil {
		return nil, o.fail(span, errors.Wrap(err, "failed to reset area flags"))
	}
	if _, err := o.dexFlags.Reset(ctx, flags.ResetInput{RunID: input.RunID}); err != nil {
		return nil, o.fail(span, errors.Wrap(err, "failed to reset dex flags"))
	}
	deleted, err := o.journal.DeleteRun(ctx, journal.DeleteRunInput{RunID: input.RunID})
	if err != nil {
		return nil, o.fail(span, errors.Wrap(err, "failed to delete encounter journal"))
	}

	slog.Info("Run deleted",
		"run_id", input.RunID,
		"journal_entries", deleted.Deleted,
	)

	return &DeleteRunOutput{}, nil
}

// SetRuleset switches the rules on or off
func (o *orchestrator) SetRuleset(ctx context.Context, input *SetRulesetInput) (*SetRulesetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := o.startSpan(ctx, "SetRuleset", input.RunID)
	defer span.End()

	unlock := o.lock(input.RunID)
	defer unlock()

	run, err := o.loadRun(ctx, input.RunID)
	if err != nil {
		return nil, o.fail(span, err)
	}

	run.RulesetActive = input.Active
	if err := o.saveRun(ctx, run); err != nil {
		return nil, o.fail(span, err)
	}

	slog.Info("Ruleset switched", "run_id", run.ID, "active", run.RulesetActive)

	return &SetRulesetOutput{Run: run}, nil
}

// EnterArea moves the player. Entering an area does not touch its flag.
func (o *orchestrator) EnterArea(ctx context.Context, input *EnterAreaInput) (*EnterAreaOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := o.startSpan(ctx, "EnterArea", input.RunID)
	defer span.End()

	unlock := o.lock(input.RunID)
	defer unlock()

	run, err := o.loadRun(ctx, input.RunID)
	if err != nil {
		return nil, o.fail(span, err)
	}
	if run.InBattle() {
		return nil, errors.FailedPrecondition("cannot change area during a battle").WithMeta("run_id", run.ID)
	}

	encountered, err := o.areaEncountered(ctx, run.ID, input.Area)
	if err != nil {
		return nil, o.fail(span, err)
	}

	run.CurrentArea = input.Area
	if err := o.saveRun(ctx, run); err != nil {
		return nil, o.fail(span, err)
	}

	return &EnterAreaOutput{
		Run:         run,
		Encountered: encountered,
	}, nil
}

// StartEncounter opens a wild battle against input.Species
func (o *orchestrator) StartEncounter(ctx context.Context, input *StartEncounterInput) (*StartEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := o.startSpan(ctx, "StartEncounter", input.RunID)
	defer span.End()

	if !input.Species.IsReal() {
		return nil, errors.InvalidArgumentf("species %d cannot be encountered", input.Species)
	}
	if _, ok := o.species.Lookup(input.Species); !ok {
		return nil, errors.InvalidArgumentf("unknown species %d", input.Species)
	}

	unlock := o.lock(input.RunID)
	defer unlock()

	run, err := o.loadRun(ctx, input.RunID)
	if err != nil {
		return nil, o.fail(span, err)
	}
	if run.InBattle() {
		return nil, errors.FailedPrecondition("a battle is already in progress").WithMeta("run_id", run.ID)
	}

	personality, err := o.personality(input.Personality)
	if err != nil {
		return nil, o.fail(span, err)
	}

	// Wild creatures carry the player's trainer id
	opponent := &nz.Creature{
		Species:     input.Species,
		Personality: personality,
		TrainerID:   run.TrainerID,
	}

	battle := &battleView{opponent: opponent}
	engine, _, _, err := o.buildEngine(ctx, run, battle)
	if err != nil {
		return nil, o.fail(span, err)
	}

	rules.NewReleaseQueue(&run.Releases).ClearQueue()
	engine.EvaluateDupeAtEncounterStart()

	run.Opponent = opponent

	output := &StartEncounterOutput{
		Run:        run,
		Opponent:   opponent,
		Dupe:       run.Encounter.Dupe,
		Shiny:      rules.IsShiny(opponent),
		CanCapture: engine.CanCaptureInCurrentArea(),
	}

	if err := o.saveRun(ctx, run); err != nil {
		return nil, o.fail(span, err)
	}

	span.SetAttributes(
		attribute.Int("nuzlocke.species", int(input.Species)),
		attribute.Bool("nuzlocke.dupe", output.Dupe),
		attribute.Bool("nuzlocke.shiny", output.Shiny),
	)

	slog.Info("Wild encounter started",
		"run_id", run.ID,
		"area", run.CurrentArea,
		"species", input.Species,
		"dupe", output.Dupe,
		"shiny", output.Shiny,
		"can_capture", output.CanCapture,
	)

	o.publish(ctx, EventEncounterStarted, run,
		&creatureEntity{runID: run.ID, slot: "wild", creature: opponent},
		map[string]any{
			EventKeyArea:    run.CurrentArea,
			EventKeySpecies: input.Species,
			EventKeyDupe:    output.Dupe,
			EventKeyShiny:   output.Shiny,
		})

	return output, nil
}

// QueueRelease marks a party slot for release when the battle ends
func (o *orchestrator) QueueRelease(ctx context.Context, input *QueueReleaseInput) (*QueueReleaseOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := o.startSpan(ctx, "QueueRelease", input.RunID)
	defer span.End()

	unlock := o.lock(input.RunID)
	defer unlock()

	run, err := o.loadRun(ctx, input.RunID)
	if err != nil {
		return nil, o.fail(span, err)
	}

	queue := rules.NewReleaseQueue(&run.Releases)
	// Only occupied slots can be released; empty ones are ignored like
	// out-of-range ones
	if run.Party.SpeciesOrEgg(input.Slot) != nz.SpeciesNone {
		queue.EnqueueSlot(input.Slot)
	}

	if err := o.saveRun(ctx, run); err != nil {
		return nil, o.fail(span, err)
	}

	slog.Debug("Release queued", "run_id", run.ID, "slot", input.Slot, "queued", queue.Queued())

	return &QueueReleaseOutput{Run: run, Queued: queue.Queued()}, nil
}

// ClearReleases empties the release queue
func (o *orchestrator) ClearReleases(ctx context.Context, input *ClearReleasesInput) (*ClearReleasesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := o.startSpan(ctx, "ClearReleases", input.RunID)
	defer span.End()

	unlock := o.lock(input.RunID)
	defer unlock()

	run, err := o.loadRun(ctx, input.RunID)
	if err != nil {
		return nil, o.fail(span, err)
	}

	rules.NewReleaseQueue(&run.Releases).ClearQueue()

	if err := o.saveRun(ctx, run); err != nil {
		return nil, o.fail(span, err)
	}

	return &ClearReleasesOutput{Run: run}, nil
}

// ListEncounters reads the journal of a run
func (o *orchestrator) ListEncounters(ctx context.Context, input *ListEncountersInput) (*ListEncountersOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	ctx, span := o.startSpan(ctx, "ListEncounters", input.RunID)
	defer span.End()

	if _, err := o.loadRun(ctx, input.RunID); err != nil {
		return nil, o.fail(span, err)
	}

	out, err := o.journal.List(ctx, journal.ListInput{RunID: input.RunID, Limit: input.Limit})
	if err != nil {
		return nil, o.fail(span, errors.Wrap(err, "failed to list encounters"))
	}

	return &ListEncountersOutput{Entries: out.Entries}, nil
}

// personality returns the requested personality or rolls one, 16 bits at a time
func (o *orchestrator) personality(requested *uint32) (uint32, error) {
	if requested != nil {
		return *requested, nil
	}

	halves, err := o.diceRoller.RollN(2, 1<<16)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll personality")
	}
	if len(halves) != 2 {
		return 0, errors.Internalf("expected 2 personality rolls, got %d", len(halves))
	}

	return uint32(halves[0]-1)<<16 | uint32(halves[1]-1), nil
}

func (o *orchestrator) lock(runID string) func() {
	o.mu.Lock()
	l, ok := o.locks[runID]
	if !ok {
		l = &sync.Mutex{}
		o.locks[runID] = l
	}
	o.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// forget drops the lock of a deleted run
func (o *orchestrator) forget(runID string) {
	o.mu.Lock()
	delete(o.locks, runID)
	o.mu.Unlock()
}

func (o *orchestrator) startSpan(ctx context.Context, name, runID string) (context.Context, trace.Span) {
	ctx, span := o.tracer.Start(ctx, "run."+name)
	if runID != "" {
		span.SetAttributes(attribute.String("nuzlocke.run_id", runID))
	}
	return ctx, span
}

func (o *orchestrator) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(otelcodes.Error, err.Error())
	return err
}
