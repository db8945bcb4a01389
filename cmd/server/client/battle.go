package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	nz "github.com/KirkDiggler/rpg-nuzlocke/internal/entities/nuzlocke"
	"github.com/KirkDiggler/rpg-nuzlocke/internal/handlers/nuzlocke/v1alpha1"
)

var (
	wildSpecies     uint16
	wildPersonality string
	releaseSlot     int
	caughtSpecies   uint16
	trainerBattle   bool
	linkBattle      bool
	doubleBattle    bool
)

var startEncounterCmd = &cobra.Command{
	Use:   "start-encounter",
	Short: "Open a wild battle",
	Long:  `Open a wild battle against a species. The personality is rolled by the server unless given.`,
	RunE:  runStartEncounter,
}

var queueReleaseCmd = &cobra.Command{
	Use:   "queue-release",
	Short: "Mark a party slot for release after the battle",
	RunE:  runQueueRelease,
}

var clearReleasesCmd = &cobra.Command{
	Use:   "clear-releases",
	Short: "Empty the release queue",
	RunE:  runClearReleases,
}

var endBattleCmd = &cobra.Command{
	Use:   "end-battle",
	Short: "Report the outcome of a battle",
	RunE:  runEndBattle,
}

func init() {
	addRunIDFlag(startEncounterCmd)
	startEncounterCmd.Flags().Uint16Var(&wildSpecies, "species", 0, "Wild species (required)")
	startEncounterCmd.Flags().StringVar(&wildPersonality, "personality", "", "Personality value, hex or decimal")
	_ = startEncounterCmd.MarkFlagRequired("species") // nolint:errcheck // safe to ignore in init

	addRunIDFlag(queueReleaseCmd)
	queueReleaseCmd.Flags().IntVar(&releaseSlot, "slot", 0, "Party slot")

	addRunIDFlag(clearReleasesCmd)

	addRunIDFlag(endBattleCmd)
	endBattleCmd.Flags().Uint16Var(&caughtSpecies, "caught", 0, "Species caught, 0 for none")
	endBattleCmd.Flags().BoolVar(&trainerBattle, "trainer", false, "Battle was against a trainer")
	endBattleCmd.Flags().BoolVar(&linkBattle, "link", false, "Battle was a link battle")
	endBattleCmd.Flags().BoolVar(&doubleBattle, "double", false, "Battle was a double battle")
}

func runStartEncounter(_ *cobra.Command, _ []string) error {
	req := &v1alpha1.StartEncounterRequest{
		RunID:   runID,
		Species: wildSpecies,
	}
	if wildPersonality != "" {
		personality, err := strconv.ParseUint(wildPersonality, 0, 32)
		if err != nil {
			return fmt.Errorf("invalid personality %q: %w", wildPersonality, err)
		}
		p := uint32(personality)
		req.Personality = &p
	}

	client, cleanup, err := createRulesetClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.StartEncounter(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to start encounter: %w", err)
	}

	fmt.Printf("A wild %s appeared!\n\n", describeCreature(resp.Opponent))
	fmt.Printf("Dupe: %t\n", resp.Dupe)
	fmt.Printf("Shiny: %t\n", resp.Shiny)
	fmt.Printf("Can Capture: %t\n", resp.CanCapture)
	return nil
}

func runQueueRelease(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createRulesetClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.QueueRelease(ctx, &v1alpha1.QueueReleaseRequest{RunID: runID, Slot: releaseSlot})
	if err != nil {
		return fmt.Errorf("failed to queue release: %w", err)
	}

	fmt.Printf("Queued slots: %v\n", resp.Queued)
	return nil
}

func runClearReleases(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createRulesetClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if _, err := client.ClearReleases(ctx, &v1alpha1.RunIDRequest{RunID: runID}); err != nil {
		return fmt.Errorf("failed to clear releases: %w", err)
	}

	fmt.Println("Release queue cleared")
	return nil
}

func runEndBattle(_ *cobra.Command, _ []string) error {
	var battleFlags nz.BattleTypeFlags
	if trainerBattle {
		battleFlags |= nz.BattleTypeTrainer
	}
	if linkBattle {
		battleFlags |= nz.BattleTypeLink
	}
	if doubleBattle {
		battleFlags |= nz.BattleTypeDouble
	}

	client, cleanup, err := createRulesetClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.EndBattle(ctx, &v1alpha1.EndBattleRequest{
		RunID:         runID,
		CaughtSpecies: caughtSpecies,
		BattleFlags:   uint32(battleFlags),
	})
	if err != nil {
		return fmt.Errorf("failed to end battle: %w", err)
	}

	if resp.CaughtSlot >= 0 {
		fmt.Printf("Caught into slot %d\n", resp.CaughtSlot)
	}
	if resp.Released > 0 {
		fmt.Printf("Released %d party members\n", resp.Released)
	}
	fmt.Printf("Area marked: %t\n\n", resp.AreaMarked)
	printRun(resp.Run)
	return nil
}
