// Package v1alpha1 handles the Nuzlocke ruleset grpc service interface
package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	nz "github.com/KirkDiggler/rpg-nuzlocke/internal/entities/nuzlocke"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/errors"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/orchestrators/run"
)

// HandlerConfig holds dependencies for the ruleset handler
type HandlerConfig struct {
	RunService run.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.RunService == nil {
		return errors.InvalidArgument("run service is required")
	}
	return nil
}

// Handler implements the ruleset gRPC service
type Handler struct {
	runService run.Service
}

// Ensure Handler implements RulesetServiceServer
var _ RulesetServiceServer = (*Handler)(nil)

// NewHandler creates a new ruleset handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		runService: cfg.RunService,
	}, nil
}

// CreateRun starts a run
func (h *Handler) CreateRun(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req CreateRunRequest
	if err := decode(in, &req); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	party := make([]nz.Creature, 0, len(req.Party))
	for _, c := range req.Party {
		party = append(party, creatureFromMessage(c))
	}

	output, err := h.runService.CreateRun(ctx, &run.CreateRunInput{
		TrainerID:     req.TrainerID,
		RulesetActive: req.RulesetActive,
		StartingArea:  nz.AreaID(req.StartingArea),
		Party:         party,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return reply(&RunResponse{Run: convertRun(output.Run)})
}

// GetRun loads a run with its encountered areas
func (h *Handler) GetRun(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req RunIDRequest
	if err := decodeRunID(in, &req.RunID, &req); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.runService.GetRun(ctx, &run.GetRunInput{RunID: req.RunID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	areas := make([]uint16, 0, len(output.EncounteredAreas))
	for _, area := range output.EncounteredAreas {
		areas = append(areas, uint16(area))
	}

	return reply(&RunResponse{
		Run:              convertRun(output.Run),
		EncounteredAreas: areas,
		CaughtCount:      output.CaughtCount,
	})
}

// DeleteRun removes a run
func (h *Handler) DeleteRun(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req RunIDRequest
	if err := decodeRunID(in, &req.RunID, &req); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	if _, err := h.runService.DeleteRun(ctx, &run.DeleteRunInput{RunID: req.RunID}); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return reply(&DeleteRunResponse{})
}

// SetRuleset switches the ruleset on or off
func (h *Handler) SetRuleset(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req SetRulesetRequest
	if err := decodeRunID(in, &req.RunID, &req); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.runService.SetRuleset(ctx, &run.SetRulesetInput{
		RunID:  req.RunID,
		Active: req.Active,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return reply(&RunResponse{Run: convertRun(output.Run)})
}

// EnterArea moves the player to another area
func (h *Handler) EnterArea(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req EnterAreaRequest
	if err := decodeRunID(in, &req.RunID, &req); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.runService.EnterArea(ctx, &run.EnterAreaInput{
		RunID: req.RunID,
		Area:  nz.AreaID(req.Area),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return reply(&EnterAreaResponse{
		Run:         convertRun(output.Run),
		Encountered: output.Encountered,
	})
}

// StartEncounter opens a wild battle
func (h *Handler) StartEncounter(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req StartEncounterRequest
	if err := decodeRunID(in, &req.RunID, &req); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if req.Species == 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("species is required"))
	}

	output, err := h.runService.StartEncounter(ctx, &run.StartEncounterInput{
		RunID:       req.RunID,
		Species:     nz.SpeciesID(req.Species),
		Personality: req.Personality,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return reply(&StartEncounterResponse{
		Run:        convertRun(output.Run),
		Opponent:   convertCreature(-1, output.Opponent),
		Dupe:       output.Dupe,
		Shiny:      output.Shiny,
		CanCapture: output.CanCapture,
	})
}

// QueueRelease marks a party slot for release
func (h *Handler) QueueRelease(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req QueueReleaseRequest
	if err := decodeRunID(in, &req.RunID, &req); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.runService.QueueRelease(ctx, &run.QueueReleaseInput{
		RunID: req.RunID,
		Slot:  req.Slot,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	queued := output.Queued
	if queued == nil {
		queued = []int{}
	}

	return reply(&QueueReleaseResponse{
		Run:    convertRun(output.Run),
		Queued: queued,
	})
}

// ClearReleases empties the release queue
func (h *Handler) ClearReleases(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req RunIDRequest
	if err := decodeRunID(in, &req.RunID, &req); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.runService.ClearReleases(ctx, &run.ClearReleasesInput{RunID: req.RunID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return reply(&RunResponse{Run: convertRun(output.Run)})
}

// EndBattle reports a battle outcome
func (h *Handler) EndBattle(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req EndBattleRequest
	if err := decodeRunID(in, &req.RunID, &req); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.runService.EndBattle(ctx, &run.EndBattleInput{
		RunID:         req.RunID,
		CaughtSpecies: nz.SpeciesID(req.CaughtSpecies),
		BattleFlags:   nz.BattleTypeFlags(req.BattleFlags),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp := &EndBattleResponse{
		Run:        convertRun(output.Run),
		CaughtSlot: output.CaughtSlot,
		Released:   output.Released,
		AreaMarked: output.AreaMarked,
	}
	if output.Entry != nil {
		encounter := convertEncounter(output.Entry)
		resp.Encounter = &encounter
	}

	return reply(resp)
}

// ListEncounters reads the encounter journal of a run
func (h *Handler) ListEncounters(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req ListEncountersRequest
	if err := decodeRunID(in, &req.RunID, &req); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if req.Limit < 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("limit cannot be negative"))
	}

	output, err := h.runService.ListEncounters(ctx, &run.ListEncountersInput{
		RunID: req.RunID,
		Limit: req.Limit,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	encounters := make([]Encounter, 0, len(output.Entries))
	for _, entry := range output.Entries {
		encounters = append(encounters, convertEncounter(entry))
	}

	return reply(&ListEncountersResponse{Encounters: encounters})
}

// decodeRunID decodes a request and requires its run_id
func decodeRunID(in *structpb.Struct, runID *string, dst any) error {
	if err := decode(in, dst); err != nil {
		return err
	}
	if *runID == "" {
		return errors.InvalidArgument("run_id is required")
	}
	return nil
}

func reply(msg any) (*structpb.Struct, error) {
	out, err := encode(msg)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return out, nil
}
