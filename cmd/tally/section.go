package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tallykeep/tally/internal/database"
	"github.com/tallykeep/tally/internal/services"
	"github.com/tallykeep/tally/internal/stats"
)

func newSectionCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "section",
		Short: "Manage the sections of a facility",
	}
	cmd.AddCommand(newSectionAddCmd(opts))
	cmd.AddCommand(newSectionListCmd(opts))
	cmd.AddCommand(newSectionUpdateCmd(opts))
	cmd.AddCommand(newSectionDeleteCmd(opts))
	return cmd
}

func bindSectionFlags(cmd *cobra.Command, sec *stats.Section) {
	cmd.Flags().Int64Var(&sec.FacilityID, "facility", 0, "Owning facility id")
	cmd.Flags().Int64Var(&sec.Ordinal, "ordinal", 0, "Display position, unique within the facility")
	cmd.Flags().StringVar(&sec.Scope, "scope", "", "Section scope")
	cmd.Flags().StringVar(&sec.Slug, "slug", "", "Short identifier")
	cmd.Flags().StringVar(&sec.Title, "title", "", "Display title")
	cmd.Flags().BoolVar(&sec.Active, "active", true, "Whether the section is active")
	cmd.Flags().StringVar(&sec.Notes, "notes", "", "Free-form notes")
}

func newSectionAddCmd(opts *globalOptions) *cobra.Command {
	var sec stats.Section

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbCtx, err := opts.open()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			created, err := services.NewSectionService(dbCtx, opts.logger).Create(cmd.Context(), sec)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created section %d (%s)\n", created.ID, created.Title)
			return nil
		},
	}

	bindSectionFlags(cmd, &sec)
	_ = cmd.MarkFlagRequired("facility")
	return cmd
}

func newSectionListCmd(opts *globalOptions) *cobra.Command {
	var (
		activeOnly bool
		format     string
	)

	cmd := &cobra.Command{
		Use:   "list <facility-id>",
		Short: "List the sections of a facility",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			facilityID, err := parseID("facility", args[0])
			if err != nil {
				return err
			}
			dbCtx, err := opts.open()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			sections, err := services.NewSectionService(dbCtx, opts.logger).List(cmd.Context(), facilityID, activeOnly)
			if err != nil {
				return err
			}
			if format == formatJSON {
				return outputJSON(cmd, sections)
			}

			if len(sections) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sections")
				return nil
			}
			t := newTable(cmd)
			t.AppendHeader(table.Row{"ID", "Ordinal", "Scope", "Slug", "Title", "Active", "Notes"})
			notesWidth := getTerminalWidth() / 4
			for _, sec := range sections {
				t.AppendRow(table.Row{sec.ID, sec.Ordinal, sec.Scope, sec.Slug, sec.Title, yesNo(sec.Active), wrapString(sec.Notes, notesWidth)})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "Only active sections")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")
	return cmd
}

func newSectionUpdateCmd(opts *globalOptions) *cobra.Command {
	var sec stats.Section

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a section; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("section", args[0])
			if err != nil {
				return err
			}
			dbCtx, err := opts.open()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			svc := services.NewSectionService(dbCtx, opts.logger)
			current, err := svc.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			merge(flags.Changed("facility"), &current.FacilityID, sec.FacilityID)
			merge(flags.Changed("ordinal"), &current.Ordinal, sec.Ordinal)
			merge(flags.Changed("scope"), &current.Scope, sec.Scope)
			merge(flags.Changed("slug"), &current.Slug, sec.Slug)
			merge(flags.Changed("title"), &current.Title, sec.Title)
			merge(flags.Changed("active"), &current.Active, sec.Active)
			merge(flags.Changed("notes"), &current.Notes, sec.Notes)

			updated, err := svc.Update(cmd.Context(), *current)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated section %d (%s)\n", updated.ID, updated.Title)
			return nil
		},
	}

	bindSectionFlags(cmd, &sec)
	return cmd
}

func newSectionDeleteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a section with its categories and recorded values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("section", args[0])
			if err != nil {
				return err
			}
			dbCtx, err := opts.open()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			if err := services.NewSectionService(dbCtx, opts.logger).Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted section %d\n", id)
			return nil
		},
	}
}
