// Package commands wires the finboard CLI: project scaffolding, statement
// and matrix printing, cash positions, invoice aging, job cost metrics, and
// the collaborator API server.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finboard-dev/finboard/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "finboard",
		Short:   "Financial statement rollups from a general ledger export",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "finboard.yaml", "path to finboard.yaml")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newStatementCommand(&configPath))
	rootCmd.AddCommand(newMatrixCommand(&configPath))
	rootCmd.AddCommand(newCashCommand(&configPath))
	rootCmd.AddCommand(newAgingCommand(&configPath))
	rootCmd.AddCommand(newJobsCommand(&configPath))
	rootCmd.AddCommand(newServeCommand(&configPath))

	return rootCmd
}
