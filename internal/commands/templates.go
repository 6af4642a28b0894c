package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/whalesrecords/royalty/internal/model"
	"github.com/whalesrecords/royalty/internal/templates"
)

func newTemplatesCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage column mapping templates",
	}
	cmd.AddCommand(newTemplatesListCommand(configPath))
	cmd.AddCommand(newTemplatesSaveCommand(configPath))
	cmd.AddCommand(newTemplatesEditCommand(configPath))
	cmd.AddCommand(newTemplatesDeleteCommand(configPath))
	return cmd
}

func newTemplatesListCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			store, err := openTemplates(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if store.Len() == 0 {
				fmt.Fprintln(out, "no templates saved")
				return nil
			}
			for _, name := range store.Names() {
				tpl, _ := store.Get(name)
				fmt.Fprintf(out, "%s\n", name)
				fmt.Fprintf(out, "  track=%s artist=%s upc=%s revenue=%s date=%s\n",
					tpl.TrackColumn, tpl.ArtistColumn, tpl.UPCColumn, tpl.RevenueColumn, tpl.DateColumn)
				if tpl.Source != "" {
					fmt.Fprintf(out, "  source=%s\n", tpl.Source)
				}
			}
			return nil
		},
	}
}

func newTemplatesSaveCommand(configPath *string) *cobra.Command {
	var tpl model.ColumnTemplate
	var force bool

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a column mapping template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			store, err := openTemplates(cfg)
			if err != nil {
				return err
			}

			if err := templates.Validate(tpl); err != nil {
				return err
			}
			if existing, ok := store.FindByMapping(tpl); ok && existing != name {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: template %q already has this mapping\n", existing)
			}
			if _, exists := store.Get(name); exists && !force {
				if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Template %q exists. Overwrite?", name)) {
					fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
					return nil
				}
			}

			store.Put(name, tpl)
			if err := store.Save(); err != nil {
				return fmt.Errorf("saving templates: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved template %q\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&tpl.TrackColumn, "track-column", "", "column holding track titles (required)")
	cmd.Flags().StringVar(&tpl.ArtistColumn, "artist-column", "", "column holding artist names")
	cmd.Flags().StringVar(&tpl.UPCColumn, "upc-column", "", "column holding UPC codes")
	cmd.Flags().StringVar(&tpl.RevenueColumn, "revenue-column", "", "column holding revenue amounts (required)")
	cmd.Flags().StringVar(&tpl.DateColumn, "date-column", "", "column holding sale dates (required)")
	cmd.Flags().StringVar(&tpl.Source, "source", "", "distributor label used in consolidated exports")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite without asking")

	return cmd
}

func newTemplatesEditCommand(configPath *string) *cobra.Command {
	var rename string

	cmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Update or rename a saved template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			store, err := openTemplates(cfg)
			if err != nil {
				return err
			}

			tpl, ok := store.Get(name)
			if !ok {
				return fmt.Errorf("template %q not found", name)
			}

			flagColumn := map[string]*string{
				"track-column":   &tpl.TrackColumn,
				"artist-column":  &tpl.ArtistColumn,
				"upc-column":     &tpl.UPCColumn,
				"revenue-column": &tpl.RevenueColumn,
				"date-column":    &tpl.DateColumn,
				"source":         &tpl.Source,
			}
			for flag, target := range flagColumn {
				if cmd.Flags().Changed(flag) {
					*target, _ = cmd.Flags().GetString(flag)
				}
			}
			if err := templates.Validate(tpl); err != nil {
				return err
			}

			store.Put(name, tpl)
			if rename != "" && rename != name {
				if err := store.Rename(name, rename); err != nil {
					return err
				}
				name = rename
			}
			if err := store.Save(); err != nil {
				return fmt.Errorf("saving templates: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated template %q\n", name)
			return nil
		},
	}

	cmd.Flags().String("track-column", "", "column holding track titles")
	cmd.Flags().String("artist-column", "", "column holding artist names")
	cmd.Flags().String("upc-column", "", "column holding UPC codes")
	cmd.Flags().String("revenue-column", "", "column holding revenue amounts")
	cmd.Flags().String("date-column", "", "column holding sale dates")
	cmd.Flags().String("source", "", "distributor label used in consolidated exports")
	cmd.Flags().StringVar(&rename, "rename", "", "new name for the template")

	return cmd
}

func newTemplatesDeleteCommand(configPath *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			store, err := openTemplates(cfg)
			if err != nil {
				return err
			}

			if _, ok := store.Get(name); !ok {
				return fmt.Errorf("template %q not found", name)
			}
			if !force && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete template %q?", name)) {
				fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
				return nil
			}

			store.Delete(name)
			if err := store.Save(); err != nil {
				return fmt.Errorf("saving templates: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted template %q\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "delete without asking")

	return cmd
}
