// Package client provides commands that exercise the ruleset gRPC service
package client

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/KirkDiggler/rpg-nuzlocke/internal/handlers/nuzlocke/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration

	// Shared by commands that address a run
	runID string
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the ruleset service",
	Long:  `Client commands drive a run through the ruleset service with real gRPC requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	// Run commands
	ClientCmd.AddCommand(createRunCmd)
	ClientCmd.AddCommand(getRunCmd)
	ClientCmd.AddCommand(deleteRunCmd)
	ClientCmd.AddCommand(setRulesetCmd)
	ClientCmd.AddCommand(enterAreaCmd)

	// Battle commands
	ClientCmd.AddCommand(startEncounterCmd)
	ClientCmd.AddCommand(queueReleaseCmd)
	ClientCmd.AddCommand(clearReleasesCmd)
	ClientCmd.AddCommand(endBattleCmd)

	ClientCmd.AddCommand(listEncountersCmd)
}

// addRunIDFlag registers the required --run-id flag on cmd
func addRunIDFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&runID, "run-id", "", "Run ID (required)")
	_ = cmd.MarkFlagRequired("run-id") // nolint:errcheck // safe to ignore in init
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// createRulesetClient creates a ruleset service client
func createRulesetClient() (*v1alpha1.Client, func(), error) {
	conn, err := createConnection()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewClient(conn), cleanup, nil
}
