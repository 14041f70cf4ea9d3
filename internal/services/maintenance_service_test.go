package services

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tallykeep/tally/internal/stats"
	"github.com/tallykeep/tally/internal/validation"
)

func TestBackupWritesVerifiableSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := NewStatsService(f.db, nil).Write(ctx, f.facility.ID, f.section.ID, "2020-07-04",
		stats.Summary{Values: stats.Values{f.catID(0): stats.Float(11), f.catID(1): nil}}); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "backups")
	svc := NewMaintenanceService(f.db, dir, nil)
	svc.now = func() time.Time { return time.Date(2020, 7, 5, 8, 0, 0, 0, time.UTC) }

	result, err := svc.Backup(ctx)
	if err != nil {
		t.Fatalf("Backup returned error: %v", err)
	}
	if filepath.Dir(result.Path) != dir {
		t.Fatalf("expected snapshot in %s, got %s", dir, result.Path)
	}
	if result.Counts["categories"] != 3 || result.Counts["dailies"] != 1 {
		t.Fatalf("unexpected counts %v", result.Counts)
	}

	ok, err := svc.VerifyBackup(result.Path, result.Hash)
	if err != nil || !ok {
		t.Fatalf("expected snapshot to verify, ok=%v err=%v", ok, err)
	}

	raw, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if len(snap.Dailies) != 1 {
		t.Fatalf("expected one daily, got %d", len(snap.Dailies))
	}
	assertValues(t, snap.Dailies[0].Values, stats.Values{f.catID(0): stats.Float(11), f.catID(1): nil})

	backups, err := svc.ListBackups()
	if err != nil || len(backups) != 1 {
		t.Fatalf("expected one listed backup, got %v %v", backups, err)
	}

	svc.now = func() time.Time { return time.Date(2020, 7, 6, 8, 0, 0, 0, time.UTC) }
	if _, err := svc.Backup(ctx); err != nil {
		t.Fatalf("second Backup returned error: %v", err)
	}
	removed, err := svc.PruneBackups(ctx, 1)
	if err != nil || removed != 1 {
		t.Fatalf("expected one pruned backup, got %d %v", removed, err)
	}
}

func TestPurgeRemovesOlderDailies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	statsSvc := NewStatsService(f.db, nil)

	for _, date := range []string{"2019-12-31", "2020-01-01", "2020-01-02"} {
		if _, err := statsSvc.Write(ctx, f.facility.ID, f.section.ID, date, stats.Summary{}); err != nil {
			t.Fatalf("Write %s: %v", date, err)
		}
	}

	svc := NewMaintenanceService(f.db, t.TempDir(), nil)
	n, err := svc.Purge(ctx, "2020-01-02")
	if err != nil {
		t.Fatalf("Purge returned error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 purged rows, got %d", n)
	}

	left, err := statsSvc.Dailies(ctx, RangeQuery{FacilityID: f.facility.ID, From: "2000-01-01", To: "2100-01-01"})
	if err != nil {
		t.Fatalf("Dailies returned error: %v", err)
	}
	if len(left) != 1 || left[0].Date != "2020-01-02" {
		t.Fatalf("expected only 2020-01-02 to remain, got %+v", left)
	}

	if _, err := svc.Purge(ctx, "soon"); !errors.Is(err, validation.ErrInvalid) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}
