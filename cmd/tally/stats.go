package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tallykeep/tally/internal/database"
	"github.com/tallykeep/tally/internal/stats"
	"github.com/tallykeep/tally/internal/usecase"
)

func newReadCmd(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "read <facility> <section-id> <date>",
		Short: "Show the recorded values of a section for a date",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			sectionID, err := parseID("section", args[1])
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

			uc := usecase.NewStats(dbCtx, opts.logger)
			summary, err := uc.Read(cmd.Context(), args[0], sectionID, args[2])
			if err != nil {
				return err
			}
			return printSummary(cmd, uc, summary, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")
	return cmd
}

func newWriteCmd(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "write <facility> <section-id> <date> [<category-id>=<value|null>...]",
		Short: "Replace the recorded values of a section for a date",
		Long: "Replace the recorded values of a section for a date. Every category not listed is " +
			"stored as having no entry; ids that are not categories of the section are ignored.",
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			sectionID, err := parseID("section", args[1])
			if err != nil {
				return err
			}
			values, err := usecase.ParseValues(args[3:])
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

			uc := usecase.NewStats(dbCtx, opts.logger)
			summary, err := uc.Write(cmd.Context(), args[0], sectionID, args[2], values)
			if err != nil {
				return err
			}
			return printSummary(cmd, uc, summary, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")
	return cmd
}

func printSummary(cmd *cobra.Command, uc *usecase.Stats, summary *stats.Summary, format string) error {
	if format == formatJSON {
		return outputJSON(cmd, toJSON([]stats.Summary{*summary})[0])
	}
	cats, err := uc.Categories(cmd.Context(), summary.SectionID)
	if err != nil {
		return err
	}
	renderSummary(cmd, summary, cats)
	return nil
}

func newReportCmd(opts *globalOptions, monthly bool) *cobra.Command {
	var (
		input  usecase.ReportInput
		format string
	)

	use, short := "dailies <facility>", "List daily summaries of a facility"
	if monthly {
		use, short = "monthlies <facility>", "Sum daily summaries of a facility per calendar month"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			input.Facility = args[0]
			input.Monthly = monthly

			dbCtx, err := opts.open()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			report, err := usecase.NewStats(dbCtx, opts.logger).Report(cmd.Context(), input)
			if err != nil {
				return err
			}

			switch format {
			case formatJSON:
				return outputJSON(cmd, toJSON(report.Summaries))
			default:
				renderReport(cmd, report)
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&input.From, "from", "", "First date (YYYY-MM-DD), inclusive")
	cmd.Flags().StringVar(&input.To, "to", "", "Last date (YYYY-MM-DD), inclusive")
	cmd.Flags().StringVar(&input.Month, "month", "", "Calendar month (YYYY-MM) instead of --from/--to")
	cmd.Flags().BoolVar(&input.ActiveOnly, "active", false, "Only active sections and categories")
	cmd.Flags().Int64SliceVar(&input.SectionIDs, "section", nil, "Restrict to these section ids (repeatable)")
	cmd.Flags().StringVar(&format, "format", formatTable, "Output format: table or json")
	return cmd
}

func parseID(what, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, raw)
	}
	return id, nil
}
