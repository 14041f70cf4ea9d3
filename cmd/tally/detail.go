package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tallykeep/tally/internal/database"
	"github.com/tallykeep/tally/internal/services"
	"github.com/tallykeep/tally/internal/stats"
)

func newDetailCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detail",
		Short: "Record and list individual category values",
	}
	cmd.AddCommand(newDetailAddCmd(opts))
	cmd.AddCommand(newDetailListCmd(opts))
	return cmd
}

func newDetailAddCmd(opts *globalOptions) *cobra.Command {
	var (
		d     stats.Detail
		value string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a detail value for a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := parseOptionalFloat(value)
			if err != nil {
				return err
			}
			d.Value = v

			dbCtx, err := opts.open()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			created, err := services.NewDetailService(dbCtx, opts.logger).Create(cmd.Context(), d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded detail %d for category %d on %s\n", created.ID, created.CategoryID, created.Date)
			return nil
		},
	}

	cmd.Flags().Int64Var(&d.CategoryID, "category", 0, "Category id")
	cmd.Flags().StringVar(&d.Date, "date", "", "Date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&value, "value", "", "Value; empty or null records no value")
	cmd.Flags().StringVar(&d.Notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newDetailListCmd(opts *globalOptions) *cobra.Command {
	var (
		from, to string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "list <category-id>",
		Short: "List the details of a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			categoryID, err := parseID("category", args[0])
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

			details, err := services.NewDetailService(dbCtx, opts.logger).List(cmd.Context(), categoryID, from, to)
			if err != nil {
				return err
			}
			if format == formatJSON {
				return outputJSON(cmd, details)
			}

			if len(details) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No details")
				return nil
			}
			t := newTable(cmd)
			t.AppendHeader(table.Row{"ID", "Date", "Value", "Notes"})
			notesWidth := getTerminalWidth() / 2
			for _, d := range details {
				t.AppendRow(table.Row{d.ID, d.Date, formatValue(d.Value), wrapString(d.Notes, notesWidth)})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First date (YYYY-MM-DD), inclusive")
	cmd.Flags().StringVar(&to, "to", "", "Last date (YYYY-MM-DD), inclusive")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")
	return cmd
}

func parseOptionalFloat(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "null") {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid value %q", raw)
	}
	return &v, nil
}
