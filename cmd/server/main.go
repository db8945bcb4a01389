// Package main is the entry point for the gRPC server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-nuzlocke/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "rpg-nuzlocke",
	Short: "Nuzlocke ruleset gRPC server",
	Long:  `rpg-nuzlocke runs the Nuzlocke encounter rules and release queue for game runs over gRPC.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
