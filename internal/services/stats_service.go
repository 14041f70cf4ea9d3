package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tallykeep/tally/internal/database"
	sqldb "github.com/tallykeep/tally/internal/database/sqlc"
	"github.com/tallykeep/tally/internal/log"
	"github.com/tallykeep/tally/internal/stats"
	"github.com/tallykeep/tally/internal/validation"
)

// RangeQuery selects the daily rows fed to the aggregation engine.
type RangeQuery struct {
	FacilityID int64
	From       string
	To         string
	// ActiveOnly restricts both sections and categories to active rows.
	ActiveOnly bool
	// SectionIDs, when non-empty, restricts the result to these sections of the facility.
	SectionIDs []int64
}

// StatsService is the aggregation engine and the daily write path.
type StatsService struct {
	base
}

func NewStatsService(ctx *database.Context, logger *log.Logger) *StatsService {
	return &StatsService{base: newBase("stats service", ctx, logger, log.ComponentStats)}
}

// Dailies returns one summary per stored daily row in range, sorted by section then date.
func (s *StatsService) Dailies(ctx context.Context, query RangeQuery) ([]stats.Summary, error) {
	data, err := s.load(ctx, query)
	if err != nil {
		return nil, err
	}
	out := stats.DailySummaries(data)
	s.logger.DebugContext(ctx, "dailies computed",
		log.FieldOperation, log.OpDailies,
		log.FieldFacilityID, query.FacilityID,
		log.FieldDateFrom, query.From,
		log.FieldDateTo, query.To,
		log.FieldCount, len(out),
	)
	return out, nil
}

// Monthlies sums the daily rows in range per section and calendar month. A null value
// contributes zero.
func (s *StatsService) Monthlies(ctx context.Context, query RangeQuery) ([]stats.Summary, error) {
	data, err := s.load(ctx, query)
	if err != nil {
		return nil, err
	}
	out := stats.MonthlySummaries(data)
	s.logger.DebugContext(ctx, "monthlies computed",
		log.FieldOperation, log.OpMonthly,
		log.FieldFacilityID, query.FacilityID,
		log.FieldDateFrom, query.From,
		log.FieldDateTo, query.To,
		log.FieldCount, len(out),
	)
	return out, nil
}

// Read returns the summary of sectionID on date. Categories without a stored value are null.
func (s *StatsService) Read(ctx context.Context, facilityID, sectionID int64, date string) (*stats.Summary, error) {
	if err := checkDate("date", date); err != nil {
		return nil, err
	}
	var out stats.Summary
	err := s.withTx(ctx, func(ctx context.Context, q *sqldb.Queries) error {
		cats, err := sectionCategories(ctx, q, facilityID, sectionID)
		if err != nil {
			return err
		}
		daily, err := findDaily(ctx, q, sectionID, date)
		if err != nil {
			return err
		}
		out = stats.ToSummary(sectionID, date, cats, daily)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Write stores summary as the complete record of sectionID on date, replacing any earlier
// row, and returns the summary recomputed from what was stored. Keys that are not
// categories of the section are dropped.
func (s *StatsService) Write(ctx context.Context, facilityID, sectionID int64, date string, summary stats.Summary) (*stats.Summary, error) {
	var (
		out     stats.Summary
		created bool
	)
	err := s.withTx(ctx, func(ctx context.Context, q *sqldb.Queries) error {
		cats, err := sectionCategories(ctx, q, facilityID, sectionID)
		if err != nil {
			return err
		}
		if err := s.validate(ctx, q, validation.ForDaily(sectionID, date)); err != nil {
			return err
		}
		existing, err := findDaily(ctx, q, sectionID, date)
		if err != nil {
			return err
		}

		daily := stats.ToDaily(sectionID, date, cats, summary)
		if existing != nil {
			params, err := database.DailyUpdateParams(daily)
			if err != nil {
				return err
			}
			n, err := q.UpdateDaily(ctx, params)
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("daily %d/%s vanished before update: %w", sectionID, date, ErrConsistency)
			}
		} else {
			params, err := database.DailyInsertParams(daily)
			if err != nil {
				return err
			}
			if err := q.InsertDaily(ctx, params); err != nil {
				return database.TranslateConstraintError(err, date)
			}
			created = true
		}

		stored, err := findDaily(ctx, q, sectionID, date)
		if err != nil {
			return err
		}
		if stored == nil {
			return fmt.Errorf("daily %d/%s missing after write: %w", sectionID, date, ErrConsistency)
		}
		out = stats.ToSummary(sectionID, date, cats, stored)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrConsistency) {
			s.logger.ErrorContext(ctx, "daily write failed",
				log.FieldErrorType, log.ErrorTypeConsistency,
				log.FieldSectionID, sectionID,
				log.FieldDate, date,
				log.FieldError, err,
			)
		}
		return nil, err
	}
	s.logger.InfoContext(ctx, "daily written",
		log.FieldOperation, log.OpWrite,
		log.FieldSectionID, sectionID,
		log.FieldDate, date,
		"created", created,
	)
	return &out, nil
}

func (s *StatsService) load(ctx context.Context, query RangeQuery) ([]stats.SectionData, error) {
	if err := checkRange(query.From, query.To); err != nil {
		return nil, err
	}

	var wanted map[int64]bool
	if len(query.SectionIDs) > 0 {
		wanted = make(map[int64]bool, len(query.SectionIDs))
		for _, id := range query.SectionIDs {
			wanted[id] = true
		}
	}

	var data []stats.SectionData
	err := s.withTx(ctx, func(ctx context.Context, q *sqldb.Queries) error {
		if _, err := findFacility(ctx, q, query.FacilityID); err != nil {
			return err
		}
		sections, err := q.ListSectionsByFacility(ctx, sqldb.ListSectionsByFacilityParams{
			FacilityID: query.FacilityID,
			ActiveOnly: query.ActiveOnly,
		})
		if err != nil {
			return err
		}
		for _, sec := range sections {
			if wanted != nil && !wanted[sec.ID] {
				continue
			}
			cats, err := q.ListCategoriesBySection(ctx, sqldb.ListCategoriesBySectionParams{
				SectionID:  sec.ID,
				ActiveOnly: query.ActiveOnly,
			})
			if err != nil {
				return err
			}
			rows, err := q.ListDailiesBySectionInRange(ctx, sqldb.ListDailiesBySectionInRangeParams{
				SectionID: sec.ID,
				DateFrom:  query.From,
				DateTo:    query.To,
			})
			if err != nil {
				return err
			}
			dailies, err := database.DailiesFromRows(rows)
			if err != nil {
				return err
			}
			data = append(data, stats.SectionData{
				SectionID:  sec.ID,
				Categories: stats.CategoryIDs(database.CategoriesFromRows(cats)),
				Dailies:    dailies,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// sectionCategories resolves the section inside the facility and returns all of its
// categories, active or not, in ordinal order.
func sectionCategories(ctx context.Context, q *sqldb.Queries, facilityID, sectionID int64) (stats.CategorySet, error) {
	if _, err := resolveSection(ctx, q, facilityID, sectionID); err != nil {
		return stats.CategorySet{}, err
	}
	rows, err := q.ListCategoriesBySection(ctx, sqldb.ListCategoriesBySectionParams{SectionID: sectionID})
	if err != nil {
		return stats.CategorySet{}, err
	}
	return stats.CategoryIDs(database.CategoriesFromRows(rows)), nil
}

func findDaily(ctx context.Context, q *sqldb.Queries, sectionID int64, date string) (*stats.Daily, error) {
	row, err := q.FindDaily(ctx, sqldb.FindDailyParams{SectionID: sectionID, Date: date})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	daily, err := database.DailyFromRow(row)
	if err != nil {
		return nil, err
	}
	return &daily, nil
}

func checkDate(field, value string) error {
	if _, err := stats.ParseDate(value); err != nil {
		return &validation.Error{Entity: validation.EntityDaily, Field: field, Value: value, Message: err.Error()}
	}
	return nil
}

func checkRange(from, to string) error {
	if err := checkDate("dateFrom", from); err != nil {
		return err
	}
	return checkDate("dateTo", to)
}
