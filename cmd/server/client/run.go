package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-nuzlocke/internal/handlers/nuzlocke/v1alpha1"
)

var (
	trainerID     uint32
	rulesetActive bool
	startingArea  uint16
	partySpecies  []string
	area          uint16
)

var createRunCmd = &cobra.Command{
	Use:   "create-run",
	Short: "Start a new run",
	Long: `Start a run with a starting party. Each --party entry is species[:personality],
personality in hex or decimal. Example:

  create-run --trainer-id 0x3A4B5C6D --party 277:0x12345678 --area 16`,
	RunE: runCreateRun,
}

var getRunCmd = &cobra.Command{
	Use:   "get-run",
	Short: "Show a run",
	RunE:  runGetRun,
}

var deleteRunCmd = &cobra.Command{
	Use:   "delete-run",
	Short: "Delete a run with its area flags, dex and journal",
	RunE:  runDeleteRun,
}

var setRulesetCmd = &cobra.Command{
	Use:   "set-ruleset [on|off]",
	Short: "Switch the ruleset on or off",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetRuleset,
}

var enterAreaCmd = &cobra.Command{
	Use:   "enter-area",
	Short: "Move the player to an area",
	RunE:  runEnterArea,
}

func init() {
	createRunCmd.Flags().Uint32Var(&trainerID, "trainer-id", 0, "Player trainer ID")
	createRunCmd.Flags().BoolVar(&rulesetActive, "ruleset", true, "Start with the ruleset active")
	createRunCmd.Flags().Uint16Var(&startingArea, "area", 0, "Starting area")
	createRunCmd.Flags().StringSliceVar(&partySpecies, "party", nil, "Party members as species[:personality]")

	addRunIDFlag(getRunCmd)
	addRunIDFlag(deleteRunCmd)
	addRunIDFlag(setRulesetCmd)

	addRunIDFlag(enterAreaCmd)
	enterAreaCmd.Flags().Uint16Var(&area, "area", 0, "Area to enter")
	_ = enterAreaCmd.MarkFlagRequired("area") // nolint:errcheck // safe to ignore in init
}

func runCreateRun(_ *cobra.Command, _ []string) error {
	party := make([]v1alpha1.Creature, 0, len(partySpecies))
	for _, entry := range partySpecies {
		creature, err := parsePartyEntry(entry)
		if err != nil {
			return err
		}
		creature.TrainerID = trainerID
		party = append(party, creature)
	}

	client, cleanup, err := createRulesetClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.CreateRun(ctx, &v1alpha1.CreateRunRequest{
		TrainerID:     trainerID,
		RulesetActive: rulesetActive,
		StartingArea:  startingArea,
		Party:         party,
	})
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	fmt.Printf("Run created\n\n")
	printRun(resp.Run)
	return nil
}

func parsePartyEntry(entry string) (v1alpha1.Creature, error) {
	speciesPart, personalityPart, hasPersonality := strings.Cut(entry, ":")

	speciesID, err := strconv.ParseUint(speciesPart, 0, 16)
	if err != nil {
		return v1alpha1.Creature{}, fmt.Errorf("invalid species in %q: %w", entry, err)
	}

	creature := v1alpha1.Creature{Species: uint16(speciesID)}
	if hasPersonality {
		personality, err := strconv.ParseUint(personalityPart, 0, 32)
		if err != nil {
			return v1alpha1.Creature{}, fmt.Errorf("invalid personality in %q: %w", entry, err)
		}
		creature.Personality = uint32(personality)
	}

	return creature, nil
}

func runGetRun(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createRulesetClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.GetRun(ctx, &v1alpha1.RunIDRequest{RunID: runID})
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	printRun(resp.Run)
	fmt.Printf("\nEncountered Areas: %v\n", resp.EncounteredAreas)
	fmt.Printf("Species Caught: %d\n", resp.CaughtCount)
	return nil
}

func runDeleteRun(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createRulesetClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if _, err := client.DeleteRun(ctx, &v1alpha1.RunIDRequest{RunID: runID}); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	fmt.Printf("Run %s deleted\n", runID)
	return nil
}

func runSetRuleset(_ *cobra.Command, args []string) error {
	var active bool
	switch strings.ToLower(args[0]) {
	case "on", "true":
		active = true
	case "off", "false":
		active = false
	default:
		return fmt.Errorf("expected on or off, got %q", args[0])
	}

	client, cleanup, err := createRulesetClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.SetRuleset(ctx, &v1alpha1.SetRulesetRequest{RunID: runID, Active: active})
	if err != nil {
		return fmt.Errorf("failed to set ruleset: %w", err)
	}

	printRun(resp.Run)
	return nil
}

func runEnterArea(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createRulesetClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.EnterArea(ctx, &v1alpha1.EnterAreaRequest{RunID: runID, Area: area})
	if err != nil {
		return fmt.Errorf("failed to enter area: %w", err)
	}

	fmt.Printf("Entered area %d (already encountered: %t)\n", resp.Run.CurrentArea, resp.Encountered)
	return nil
}
