// Package mcp exposes the tally statistics operations as MCP tools over stdio.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tallykeep/tally/internal/database"
	"github.com/tallykeep/tally/internal/log"
	"github.com/tallykeep/tally/internal/scope"
	"github.com/tallykeep/tally/internal/services"
	"github.com/tallykeep/tally/internal/stats"
	"github.com/tallykeep/tally/internal/usecase"
)

// Version is reported in the MCP implementation info.
const Version = "0.1.0"

// Server wraps the MCP server with the tally tools.
type Server struct {
	server     *mcp.Server
	stats      *usecase.Stats
	facilities *services.FacilityService
	sections   *services.SectionService
	logger     *log.Logger
}

// NewServer registers the tools against dbCtx. The caller owns dbCtx.
func NewServer(dbCtx *database.Context, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Nop()
	}
	s := &Server{
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "tally",
			Version: Version,
		}, nil),
		stats:      usecase.NewStats(dbCtx, logger),
		facilities: services.NewFacilityService(dbCtx, logger),
		sections:   services.NewSectionService(dbCtx, logger),
		logger:     logger.WithComponent(log.ComponentMCP),
	}
	s.registerTools()
	return s
}

// Run serves over stdio until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.InfoContext(ctx, "mcp server starting", "version", Version)
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "stats_dailies",
		Description: "List the recorded daily summaries of a facility's sections within a date range",
	}, s.handleDailies)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "stats_monthlies",
		Description: "Sum the daily summaries of a facility's sections per calendar month",
	}, s.handleMonthlies)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "stats_read",
		Description: "Read one section's category values for a date; unrecorded categories are null",
	}, s.handleRead)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "stats_write",
		Description: "Replace one section's category values for a date",
	}, s.handleWrite)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "facility_list",
		Description: "List facilities",
	}, s.handleFacilityList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "section_list",
		Description: "List a facility's sections with their categories",
	}, s.handleSectionList)
}

type RangeInput struct {
	Facility   string  `json:"facility" jsonschema:"Facility id or scope"`
	From       string  `json:"from,omitempty" jsonschema:"First date (YYYY-MM-DD), inclusive"`
	To         string  `json:"to,omitempty" jsonschema:"Last date (YYYY-MM-DD), inclusive"`
	Month      string  `json:"month,omitempty" jsonschema:"Calendar month (YYYY-MM) instead of from/to"`
	ActiveOnly bool    `json:"activeOnly,omitempty" jsonschema:"Only active sections and categories"`
	SectionIDs []int64 `json:"sectionIds,omitempty" jsonschema:"Restrict to these section ids"`
}

type SummaryOutput struct {
	SectionID int64               `json:"sectionId"`
	Date      string              `json:"date"`
	Values    map[string]*float64 `json:"values"`
}

type RangeOutput struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Summaries []SummaryOutput `json:"summaries"`
}

type ReadInput struct {
	Facility  string `json:"facility" jsonschema:"Facility id or scope"`
	SectionID int64  `json:"sectionId" jsonschema:"Section id"`
	Date      string `json:"date" jsonschema:"Date (YYYY-MM-DD)"`
}

type WriteInput struct {
	Facility  string              `json:"facility" jsonschema:"Facility id or scope"`
	SectionID int64               `json:"sectionId" jsonschema:"Section id"`
	Date      string              `json:"date" jsonschema:"Date (YYYY-MM-DD)"`
	Values    map[string]*float64 `json:"values" jsonschema:"Value per category id; null records no entry. Omitted categories are cleared"`
}

type FacilityListInput struct {
	ActiveOnly bool `json:"activeOnly,omitempty" jsonschema:"Only active facilities"`
}

type FacilityOutput struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Scope  string `json:"scope"`
	Active bool   `json:"active"`
	City   string `json:"city,omitempty"`
	State  string `json:"state,omitempty"`
}

type FacilityListOutput struct {
	Facilities []FacilityOutput `json:"facilities"`
}

type SectionListInput struct {
	Facility   string `json:"facility" jsonschema:"Facility id or scope"`
	ActiveOnly bool   `json:"activeOnly,omitempty" jsonschema:"Only active sections and categories"`
}

type CategoryOutput struct {
	ID          int64  `json:"id"`
	Ordinal     int64  `json:"ordinal"`
	Slug        string `json:"slug"`
	Service     string `json:"service"`
	Accumulated bool   `json:"accumulated"`
	Active      bool   `json:"active"`
}

type SectionOutput struct {
	ID         int64            `json:"id"`
	Ordinal    int64            `json:"ordinal"`
	Scope      string           `json:"scope"`
	Title      string           `json:"title"`
	Active     bool             `json:"active"`
	Categories []CategoryOutput `json:"categories"`
}

type SectionListOutput struct {
	Sections []SectionOutput `json:"sections"`
}

func toOutput(summary stats.Summary) SummaryOutput {
	return SummaryOutput{
		SectionID: summary.SectionID,
		Date:      summary.Date,
		Values:    usecase.StringKeyed(summary.Values),
	}
}

func (s *Server) report(ctx context.Context, input RangeInput, monthly bool) (RangeOutput, error) {
	report, err := s.stats.Report(ctx, usecase.ReportInput{
		Facility:   input.Facility,
		From:       input.From,
		To:         input.To,
		Month:      input.Month,
		ActiveOnly: input.ActiveOnly,
		SectionIDs: input.SectionIDs,
		Monthly:    monthly,
	})
	if err != nil {
		return RangeOutput{}, err
	}
	out := RangeOutput{
		From:      report.Range.From,
		To:        report.Range.To,
		Summaries: make([]SummaryOutput, 0, len(report.Summaries)),
	}
	for _, summary := range report.Summaries {
		out.Summaries = append(out.Summaries, toOutput(summary))
	}
	return out, nil
}

// Tool handlers

func (s *Server) handleDailies(ctx context.Context, req *mcp.CallToolRequest, input RangeInput) (*mcp.CallToolResult, RangeOutput, error) {
	out, err := s.report(ctx, input, false)
	if err != nil {
		return nil, RangeOutput{}, fmt.Errorf("failed to list dailies: %w", err)
	}
	return nil, out, nil
}

func (s *Server) handleMonthlies(ctx context.Context, req *mcp.CallToolRequest, input RangeInput) (*mcp.CallToolResult, RangeOutput, error) {
	out, err := s.report(ctx, input, true)
	if err != nil {
		return nil, RangeOutput{}, fmt.Errorf("failed to list monthlies: %w", err)
	}
	return nil, out, nil
}

func (s *Server) handleRead(ctx context.Context, req *mcp.CallToolRequest, input ReadInput) (*mcp.CallToolResult, SummaryOutput, error) {
	summary, err := s.stats.Read(ctx, input.Facility, input.SectionID, input.Date)
	if err != nil {
		return nil, SummaryOutput{}, fmt.Errorf("failed to read: %w", err)
	}
	return nil, toOutput(*summary), nil
}

func (s *Server) handleWrite(ctx context.Context, req *mcp.CallToolRequest, input WriteInput) (*mcp.CallToolResult, SummaryOutput, error) {
	values, err := usecase.FromStringKeyed(input.Values)
	if err != nil {
		return nil, SummaryOutput{}, err
	}
	summary, err := s.stats.Write(ctx, input.Facility, input.SectionID, input.Date, values)
	if err != nil {
		return nil, SummaryOutput{}, fmt.Errorf("failed to write: %w", err)
	}
	return nil, toOutput(*summary), nil
}

func (s *Server) handleFacilityList(ctx context.Context, req *mcp.CallToolRequest, input FacilityListInput) (*mcp.CallToolResult, FacilityListOutput, error) {
	facilities, err := s.facilities.List(ctx, input.ActiveOnly)
	if err != nil {
		return nil, FacilityListOutput{}, fmt.Errorf("failed to list facilities: %w", err)
	}
	out := FacilityListOutput{Facilities: make([]FacilityOutput, 0, len(facilities))}
	for _, f := range facilities {
		out.Facilities = append(out.Facilities, FacilityOutput{
			ID:     f.ID,
			Name:   f.Name,
			Scope:  f.Scope,
			Active: f.Active,
			City:   f.City,
			State:  f.State,
		})
	}
	return nil, out, nil
}

func (s *Server) handleSectionList(ctx context.Context, req *mcp.CallToolRequest, input SectionListInput) (*mcp.CallToolResult, SectionListOutput, error) {
	facility, err := s.stats.ResolveFacility(ctx, input.Facility)
	if err != nil {
		return nil, SectionListOutput{}, err
	}
	sections, err := s.sections.List(ctx, facility.ID, input.ActiveOnly)
	if err != nil {
		return nil, SectionListOutput{}, fmt.Errorf("failed to list sections: %w", err)
	}
	out := SectionListOutput{Sections: make([]SectionOutput, 0, len(sections))}
	for _, sec := range sections {
		cats, err := s.stats.Categories(ctx, sec.ID)
		if err != nil {
			return nil, SectionListOutput{}, err
		}
		item := SectionOutput{
			ID:         sec.ID,
			Ordinal:    sec.Ordinal,
			Scope:      scope.Join(facility.Scope, sec.Scope),
			Title:      sec.Title,
			Active:     sec.Active,
			Categories: []CategoryOutput{},
		}
		for _, c := range cats {
			if input.ActiveOnly && !c.Active {
				continue
			}
			item.Categories = append(item.Categories, CategoryOutput{
				ID:          c.ID,
				Ordinal:     c.Ordinal,
				Slug:        c.Slug,
				Service:     c.Service,
				Accumulated: c.Accumulated,
				Active:      c.Active,
			})
		}
		out.Sections = append(out.Sections, item)
	}
	return nil, out, nil
}
