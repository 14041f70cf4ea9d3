package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tallykeep/tally/internal/database"
	sqldb "github.com/tallykeep/tally/internal/database/sqlc"
	"github.com/tallykeep/tally/internal/filesystem"
	"github.com/tallykeep/tally/internal/log"
	"github.com/tallykeep/tally/internal/stats"
)

// Snapshot is the JSON document written by Backup.
type Snapshot struct {
	CreatedAt  time.Time        `json:"createdAt"`
	Facilities []stats.Facility `json:"facilities"`
	Sections   []stats.Section  `json:"sections"`
	Categories []stats.Category `json:"categories"`
	Details    []stats.Detail   `json:"details"`
	Dailies    []stats.Summary  `json:"dailies"`
}

// BackupResult locates a written snapshot.
type BackupResult struct {
	Path   string
	Hash   string
	Counts map[string]int
}

// MaintenanceService backs up and purges the store.
type MaintenanceService struct {
	base
	backupDir string
	now       func() time.Time
}

func NewMaintenanceService(ctx *database.Context, backupDir string, logger *log.Logger) *MaintenanceService {
	return &MaintenanceService{
		base:      newBase("maintenance service", ctx, logger, log.ComponentMaintenance),
		backupDir: backupDir,
		now:       time.Now,
	}
}

// Backup writes a snapshot of every table into the backup directory. Daily rows are stored
// in their summary form, keyed by the category ids they were written with.
func (s *MaintenanceService) Backup(ctx context.Context) (*BackupResult, error) {
	snap := Snapshot{CreatedAt: s.now().UTC()}
	err := s.withTx(ctx, func(ctx context.Context, q *sqldb.Queries) error {
		facilities, err := q.ListFacilities(ctx, false)
		if err != nil {
			return err
		}
		for _, row := range facilities {
			snap.Facilities = append(snap.Facilities, database.FacilityFromRow(row))
		}

		sections, err := q.ListAllSections(ctx)
		if err != nil {
			return err
		}
		for _, row := range sections {
			snap.Sections = append(snap.Sections, database.SectionFromRow(row))
		}

		categories, err := q.ListAllCategories(ctx)
		if err != nil {
			return err
		}
		snap.Categories = database.CategoriesFromRows(categories)

		details, err := q.ListAllDetails(ctx)
		if err != nil {
			return err
		}
		for _, row := range details {
			snap.Details = append(snap.Details, database.DetailFromRow(row))
		}

		rows, err := q.ListAllDailies(ctx)
		if err != nil {
			return err
		}
		dailies, err := database.DailiesFromRows(rows)
		if err != nil {
			return err
		}
		for _, d := range dailies {
			snap.Dailies = append(snap.Dailies, stats.ToSummary(d.SectionID, d.Date, stats.NewCategorySet(d.CategoryIDs...), &d))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	content, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	path, hash, err := filesystem.SaveSnapshot(s.backupDir, snap.CreatedAt, content)
	if err != nil {
		return nil, fmt.Errorf("write snapshot: %w", err)
	}

	result := &BackupResult{
		Path: path,
		Hash: hash,
		Counts: map[string]int{
			"facilities": len(snap.Facilities),
			"sections":   len(snap.Sections),
			"categories": len(snap.Categories),
			"details":    len(snap.Details),
			"dailies":    len(snap.Dailies),
		},
	}
	s.logger.InfoContext(ctx, "backup written", log.FieldOperation, log.OpBackup, log.FieldPath, path, "hash", hash)
	return result, nil
}

// VerifyBackup reports whether the snapshot at path still hashes to hash.
func (s *MaintenanceService) VerifyBackup(path, hash string) (bool, error) {
	return filesystem.VerifyFile(path, hash)
}

// ListBackups returns the snapshots in the backup directory, oldest first.
func (s *MaintenanceService) ListBackups() ([]filesystem.Snapshot, error) {
	return filesystem.ListSnapshots(s.backupDir)
}

// PruneBackups keeps the newest keep snapshots.
func (s *MaintenanceService) PruneBackups(ctx context.Context, keep int) (int, error) {
	removed, err := filesystem.PruneSnapshots(s.backupDir, keep)
	if err != nil {
		return removed, err
	}
	if removed > 0 {
		s.logger.InfoContext(ctx, "backups pruned", log.FieldOperation, log.OpDelete, log.FieldCount, removed)
	}
	return removed, nil
}

// Purge deletes every daily row dated strictly before before.
func (s *MaintenanceService) Purge(ctx context.Context, before string) (int64, error) {
	if err := checkDate("before", before); err != nil {
		return 0, err
	}
	var n int64
	err := s.withTx(ctx, func(ctx context.Context, q *sqldb.Queries) error {
		var err error
		n, err = q.DeleteDailiesBefore(ctx, before)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.logger.InfoContext(ctx, "dailies purged", log.FieldOperation, log.OpPurge, log.FieldDate, before, log.FieldCount, n)
	return n, nil
}
