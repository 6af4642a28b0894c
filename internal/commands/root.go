package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/whalesrecords/royalty/internal/buildinfo"
	"github.com/whalesrecords/royalty/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "royalty",
		Short:   "Royalty revenue analysis for distributor CSV statements",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.FileName, "path to the configuration file")

	rootCmd.AddCommand(newAnalyzeCommand(&configPath))
	rootCmd.AddCommand(newColumnsCommand(&configPath))
	rootCmd.AddCommand(newTemplatesCommand(&configPath))
	rootCmd.AddCommand(newHistoryCommand(&configPath))
	rootCmd.AddCommand(newConsolidateCommand(&configPath))
	rootCmd.AddCommand(newStatementsCommand(&configPath))
	rootCmd.AddCommand(newMergeTracksCommand(&configPath))

	return rootCmd
}
