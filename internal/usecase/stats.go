// Package usecase composes services into the operations offered by the CLI and the MCP server.
package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tallykeep/tally/internal/database"
	"github.com/tallykeep/tally/internal/log"
	"github.com/tallykeep/tally/internal/scope"
	"github.com/tallykeep/tally/internal/services"
	"github.com/tallykeep/tally/internal/stats"
)

type Stats struct {
	facilities *services.FacilityService
	sections   *services.SectionService
	categories *services.CategoryService
	stats      *services.StatsService
}

func NewStats(dbCtx *database.Context, logger *log.Logger) *Stats {
	return &Stats{
		facilities: services.NewFacilityService(dbCtx, logger),
		sections:   services.NewSectionService(dbCtx, logger),
		categories: services.NewCategoryService(dbCtx, logger),
		stats:      services.NewStatsService(dbCtx, logger),
	}
}

// ReportInput selects a dailies or monthlies report.
type ReportInput struct {
	Facility   string
	From       string
	To         string
	Month      string
	ActiveOnly bool
	SectionIDs []int64
	Monthly    bool
}

// Report carries summaries plus the metadata needed to label them.
type Report struct {
	Facility   stats.Facility
	Range      Range
	Monthly    bool
	Sections   map[int64]stats.Section
	Categories map[int64][]stats.Category
	Summaries  []stats.Summary
}

// Report resolves the facility and range, then runs the requested aggregation.
func (u *Stats) Report(ctx context.Context, input ReportInput) (*Report, error) {
	facility, err := u.ResolveFacility(ctx, input.Facility)
	if err != nil {
		return nil, err
	}
	rng, err := ResolveRange(input.From, input.To, input.Month)
	if err != nil {
		return nil, err
	}

	query := services.RangeQuery{
		FacilityID: facility.ID,
		From:       rng.From,
		To:         rng.To,
		ActiveOnly: input.ActiveOnly,
		SectionIDs: input.SectionIDs,
	}
	var summaries []stats.Summary
	if input.Monthly {
		summaries, err = u.stats.Monthlies(ctx, query)
	} else {
		summaries, err = u.stats.Dailies(ctx, query)
	}
	if err != nil {
		return nil, err
	}

	report := &Report{
		Facility:   *facility,
		Range:      rng,
		Monthly:    input.Monthly,
		Sections:   map[int64]stats.Section{},
		Categories: map[int64][]stats.Category{},
		Summaries:  summaries,
	}
	sections, err := u.sections.List(ctx, facility.ID, input.ActiveOnly)
	if err != nil {
		return nil, err
	}
	for _, sec := range sections {
		report.Sections[sec.ID] = sec
		cats, err := u.categories.List(ctx, sec.ID, input.ActiveOnly)
		if err != nil {
			return nil, err
		}
		report.Categories[sec.ID] = cats
	}
	return report, nil
}

// Read returns the stored summary for one section and date.
func (u *Stats) Read(ctx context.Context, facilityRef string, sectionID int64, date string) (*stats.Summary, error) {
	facility, err := u.ResolveFacility(ctx, facilityRef)
	if err != nil {
		return nil, err
	}
	return u.stats.Read(ctx, facility.ID, sectionID, date)
}

// Write replaces the summary for one section and date.
func (u *Stats) Write(ctx context.Context, facilityRef string, sectionID int64, date string, values stats.Values) (*stats.Summary, error) {
	facility, err := u.ResolveFacility(ctx, facilityRef)
	if err != nil {
		return nil, err
	}
	return u.stats.Write(ctx, facility.ID, sectionID, date, stats.Summary{
		SectionID: sectionID,
		Date:      date,
		Values:    values,
	})
}

// Categories lists the categories of a section, in ordinal order.
func (u *Stats) Categories(ctx context.Context, sectionID int64) ([]stats.Category, error) {
	return u.categories.List(ctx, sectionID, false)
}

// ResolveFacility accepts a numeric id, a facility scope, or a full section scope whose
// prefix names the facility.
func (u *Stats) ResolveFacility(ctx context.Context, ref string) (*stats.Facility, error) {
	if ref == "" {
		return nil, fmt.Errorf("facility is required")
	}
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return u.facilities.Get(ctx, id)
	}
	ref, _ = scope.Split(ref)
	all, err := u.facilities.List(ctx, false)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Scope == ref {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("facility %q: %w", ref, services.ErrNotFound)
}
