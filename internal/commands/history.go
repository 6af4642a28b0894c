package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage saved analyses",
	}
	cmd.AddCommand(newHistoryListCommand(configPath))
	cmd.AddCommand(newHistoryShowCommand(configPath))
	cmd.AddCommand(newHistoryDeleteCommand(configPath))
	return cmd
}

func newHistoryListCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved analyses, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			store, err := openHistory(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if store.Len() == 0 {
				fmt.Fprintln(out, "no saved analyses")
				return nil
			}
			for _, name := range store.Names() {
				entry, _ := store.Get(name)
				template := entry.Template
				if template == "" {
					template = "No Template"
				}
				fmt.Fprintf(out, "%s  (%s, %s, %d rows)\n",
					name, entry.Date.Format("2006-01-02 15:04"), template, len(entry.Results))
			}
			return nil
		},
	}
}

func newHistoryShowCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a saved analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			store, err := openHistory(cfg)
			if err != nil {
				return err
			}

			entry, ok := store.Get(args[0])
			if !ok {
				return fmt.Errorf("analysis %q not found", args[0])
			}

			out := cmd.OutOrStdout()
			for _, row := range entry.Results {
				if row.Artist != "" {
					fmt.Fprintf(out, "%-10s  %-30s  %-20s  %s\n", row.Period, row.Track, row.Artist, row.TotalRevenue)
				} else {
					fmt.Fprintf(out, "%-10s  %-30s  %s\n", row.Period, row.Track, row.TotalRevenue)
				}
			}
			fmt.Fprintln(out)
			for _, block := range entry.Summary {
				fmt.Fprintln(out, block)
			}
			return nil
		},
	}
}

func newHistoryDeleteCommand(configPath *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			store, err := openHistory(cfg)
			if err != nil {
				return err
			}

			if _, ok := store.Get(name); !ok {
				return fmt.Errorf("analysis %q not found", name)
			}
			if !force && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete analysis %q?", name)) {
				fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
				return nil
			}

			store.Delete(name)
			if err := store.Save(); err != nil {
				return fmt.Errorf("saving history: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted analysis %q\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "delete without asking")

	return cmd
}
