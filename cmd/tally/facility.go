package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tallykeep/tally/internal/database"
	"github.com/tallykeep/tally/internal/services"
	"github.com/tallykeep/tally/internal/stats"
)

func newFacilityCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "facility",
		Short: "Manage facilities",
	}
	cmd.AddCommand(newFacilityAddCmd(opts))
	cmd.AddCommand(newFacilityListCmd(opts))
	cmd.AddCommand(newFacilityUpdateCmd(opts))
	cmd.AddCommand(newFacilityDeleteCmd(opts))
	return cmd
}

func bindFacilityFlags(cmd *cobra.Command, f *stats.Facility) {
	cmd.Flags().StringVar(&f.Name, "name", "", "Facility name")
	cmd.Flags().StringVar(&f.Scope, "scope", "", "Facility scope (lowercase letters, digits, '-' and '_')")
	cmd.Flags().BoolVar(&f.Active, "active", true, "Whether the facility is active")
	cmd.Flags().StringVar(&f.Address1, "address1", "", "Address line 1")
	cmd.Flags().StringVar(&f.Address2, "address2", "", "Address line 2")
	cmd.Flags().StringVar(&f.City, "city", "", "City")
	cmd.Flags().StringVar(&f.State, "state", "", "State")
	cmd.Flags().StringVar(&f.ZipCode, "zip", "", "Zip code")
}

func newFacilityAddCmd(opts *globalOptions) *cobra.Command {
	var f stats.Facility

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a facility",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbCtx, err := opts.open()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			created, err := services.NewFacilityService(dbCtx, opts.logger).Create(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created facility %d (%s)\n", created.ID, created.Scope)
			return nil
		},
	}

	bindFacilityFlags(cmd, &f)
	return cmd
}

func newFacilityListCmd(opts *globalOptions) *cobra.Command {
	var (
		activeOnly bool
		format     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List facilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			dbCtx, err := opts.open()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			facilities, err := services.NewFacilityService(dbCtx, opts.logger).List(cmd.Context(), activeOnly)
			if err != nil {
				return err
			}
			if format == formatJSON {
				return outputJSON(cmd, facilities)
			}

			if len(facilities) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No facilities")
				return nil
			}
			t := newTable(cmd)
			t.AppendHeader(table.Row{"ID", "Scope", "Name", "City", "State", "Active"})
			nameWidth := getTerminalWidth() / 3
			for _, f := range facilities {
				t.AppendRow(table.Row{f.ID, f.Scope, wrapString(f.Name, nameWidth), f.City, f.State, yesNo(f.Active)})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "Only active facilities")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")
	return cmd
}

func newFacilityUpdateCmd(opts *globalOptions) *cobra.Command {
	var f stats.Facility

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a facility; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("facility", args[0])
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

			svc := services.NewFacilityService(dbCtx, opts.logger)
			current, err := svc.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			merge(flags.Changed("name"), &current.Name, f.Name)
			merge(flags.Changed("scope"), &current.Scope, f.Scope)
			merge(flags.Changed("active"), &current.Active, f.Active)
			merge(flags.Changed("address1"), &current.Address1, f.Address1)
			merge(flags.Changed("address2"), &current.Address2, f.Address2)
			merge(flags.Changed("city"), &current.City, f.City)
			merge(flags.Changed("state"), &current.State, f.State)
			merge(flags.Changed("zip"), &current.ZipCode, f.ZipCode)

			updated, err := svc.Update(cmd.Context(), *current)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated facility %d (%s)\n", updated.ID, updated.Scope)
			return nil
		},
	}

	bindFacilityFlags(cmd, &f)
	return cmd
}

func newFacilityDeleteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a facility with its sections, categories and recorded values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("facility", args[0])
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

			if err := services.NewFacilityService(dbCtx, opts.logger).Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted facility %d\n", id)
			return nil
		},
	}
}

// merge overwrites *dst with v when the corresponding flag was set.
func merge[T any](changed bool, dst *T, v T) {
	if changed {
		*dst = v
	}
}
