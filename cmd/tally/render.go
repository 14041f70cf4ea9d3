package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tallykeep/tally/internal/stats"
	"github.com/tallykeep/tally/internal/usecase"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func checkFormat(format string) error {
	switch format {
	case formatTable, formatJSON:
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
	}
}

func outputJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func getTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

func newTable(cmd *cobra.Command) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	return t
}

func formatValue(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// headerWidth splits the terminal across the date column and one column per category.
func headerWidth(termWidth, categories int) int {
	if categories == 0 {
		return termWidth
	}
	// Borders and padding take roughly three cells per column.
	avail := termWidth - 12 - (categories+1)*3
	width := avail / categories
	if width < 6 {
		width = 6
	}
	return width
}

// renderReport writes one table per section: a row per summary, a column per category.
func renderReport(cmd *cobra.Command, report *usecase.Report) {
	if len(report.Summaries) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No entries for %s between %s and %s\n", report.Facility.Name, report.Range.From, report.Range.To)
		return
	}

	termWidth := getTerminalWidth()
	var (
		current int64
		t       table.Writer
		cats    []stats.Category
	)
	flush := func() {
		if t != nil {
			t.Render()
		}
	}

	for _, summary := range report.Summaries {
		if t == nil || summary.SectionID != current {
			flush()
			current = summary.SectionID
			cats = report.Categories[current]
			t = newTable(cmd)
			title := report.Sections[current].Title
			if title == "" {
				title = "Section " + strconv.FormatInt(current, 10)
			}
			t.SetTitle(runewidth.Truncate(title, termWidth-4, "..."))

			width := headerWidth(termWidth, len(cats))
			header := table.Row{"Date"}
			for _, c := range cats {
				header = append(header, runewidth.Truncate(c.Service, width, "..."))
			}
			t.AppendHeader(header)
		}

		row := table.Row{summary.Date}
		for _, c := range cats {
			row = append(row, formatValue(summary.Values[c.ID]))
		}
		t.AppendRow(row)
	}
	flush()
}

// renderSummary prints a single summary as category / value rows.
func renderSummary(cmd *cobra.Command, summary *stats.Summary, cats []stats.Category) {
	t := newTable(cmd)
	t.SetTitle(fmt.Sprintf("Section %d on %s", summary.SectionID, summary.Date))
	t.AppendHeader(table.Row{"ID", "Category", "Value"})
	for _, c := range cats {
		v, ok := summary.Values[c.ID]
		if !ok {
			continue
		}
		t.AppendRow(table.Row{c.ID, runewidth.Truncate(c.Service, 40, "..."), formatValue(v)})
	}
	t.Render()
}

type summaryJSON struct {
	SectionID int64               `json:"sectionId"`
	Date      string              `json:"date"`
	Values    map[string]*float64 `json:"values"`
}

func toJSON(summaries []stats.Summary) []summaryJSON {
	out := make([]summaryJSON, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, summaryJSON{SectionID: s.SectionID, Date: s.Date, Values: usecase.StringKeyed(s.Values)})
	}
	return out
}

// wrapString wraps s to lines no wider than maxWidth cells.
func wrapString(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return s
	}

	s = strings.TrimSpace(s)
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	var result, line strings.Builder
	width := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if width+w > maxWidth && width > 0 {
			result.WriteString(line.String())
			result.WriteString("\n")
			line.Reset()
			width = 0
		}
		line.WriteRune(r)
		width += w
	}
	result.WriteString(line.String())
	return result.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
