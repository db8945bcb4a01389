package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-nuzlocke/internal/handlers/nuzlocke/v1alpha1"
)

var encounterLimit int

var listEncountersCmd = &cobra.Command{
	Use:   "list-encounters",
	Short: "Show the encounter journal of a run",
	RunE:  runListEncounters,
}

func init() {
	addRunIDFlag(listEncountersCmd)
	listEncountersCmd.Flags().IntVar(&encounterLimit, "limit", 0, "Maximum entries, 0 for all")
}

func runListEncounters(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createRulesetClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.ListEncounters(ctx, &v1alpha1.ListEncountersRequest{
		RunID: runID,
		Limit: encounterLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to list encounters: %w", err)
	}

	fmt.Printf("Encounters (%d):\n", len(resp.Encounters))
	for i := range resp.Encounters {
		printEncounter(&resp.Encounters[i])
	}
	return nil
}
