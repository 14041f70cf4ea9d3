package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tallykeep/tally/internal/database"
	"github.com/tallykeep/tally/internal/services"
	"github.com/tallykeep/tally/internal/stats"
)

func newCategoryCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage the categories of a section",
	}
	cmd.AddCommand(newCategoryAddCmd(opts))
	cmd.AddCommand(newCategoryListCmd(opts))
	cmd.AddCommand(newCategoryUpdateCmd(opts))
	cmd.AddCommand(newCategoryDeleteCmd(opts))
	return cmd
}

func bindCategoryFlags(cmd *cobra.Command, c *stats.Category) {
	cmd.Flags().Int64Var(&c.SectionID, "section", 0, "Owning section id")
	cmd.Flags().Int64Var(&c.Ordinal, "ordinal", 0, "Display position, unique within the section")
	cmd.Flags().StringVar(&c.Slug, "slug", "", "Short identifier")
	cmd.Flags().StringVar(&c.Service, "service", "", "Name of the counted service")
	cmd.Flags().BoolVar(&c.Accumulated, "accumulated", true, "Sum values over a period rather than taking the last one")
	cmd.Flags().BoolVar(&c.Active, "active", true, "Whether the category is active")
	cmd.Flags().StringVar(&c.Notes, "notes", "", "Free-form notes")
}

func newCategoryAddCmd(opts *globalOptions) *cobra.Command {
	var c stats.Category

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbCtx, err := opts.open()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			created, err := services.NewCategoryService(dbCtx, opts.logger).Create(cmd.Context(), c)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created category %d (%s)\n", created.ID, created.Service)
			return nil
		},
	}

	bindCategoryFlags(cmd, &c)
	_ = cmd.MarkFlagRequired("section")
	return cmd
}

func newCategoryListCmd(opts *globalOptions) *cobra.Command {
	var (
		activeOnly bool
		format     string
	)

	cmd := &cobra.Command{
		Use:   "list <section-id>",
		Short: "List the categories of a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			sectionID, err := parseID("section", args[0])
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

			cats, err := services.NewCategoryService(dbCtx, opts.logger).List(cmd.Context(), sectionID, activeOnly)
			if err != nil {
				return err
			}
			if format == formatJSON {
				return outputJSON(cmd, cats)
			}

			if len(cats) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No categories")
				return nil
			}
			t := newTable(cmd)
			t.AppendHeader(table.Row{"ID", "Ordinal", "Slug", "Service", "Accumulated", "Active"})
			serviceWidth := getTerminalWidth() / 3
			for _, c := range cats {
				t.AppendRow(table.Row{c.ID, c.Ordinal, c.Slug, wrapString(c.Service, serviceWidth), yesNo(c.Accumulated), yesNo(c.Active)})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "Only active categories")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")
	return cmd
}

func newCategoryUpdateCmd(opts *globalOptions) *cobra.Command {
	var c stats.Category

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("category", args[0])
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

			svc := services.NewCategoryService(dbCtx, opts.logger)
			current, err := svc.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			merge(flags.Changed("section"), &current.SectionID, c.SectionID)
			merge(flags.Changed("ordinal"), &current.Ordinal, c.Ordinal)
			merge(flags.Changed("slug"), &current.Slug, c.Slug)
			merge(flags.Changed("service"), &current.Service, c.Service)
			merge(flags.Changed("accumulated"), &current.Accumulated, c.Accumulated)
			merge(flags.Changed("active"), &current.Active, c.Active)
			merge(flags.Changed("notes"), &current.Notes, c.Notes)

			updated, err := svc.Update(cmd.Context(), *current)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated category %d (%s)\n", updated.ID, updated.Service)
			return nil
		},
	}

	bindCategoryFlags(cmd, &c)
	return cmd
}

func newCategoryDeleteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category with its details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("category", args[0])
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

			if err := services.NewCategoryService(dbCtx, opts.logger).Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %d\n", id)
			return nil
		},
	}
}
