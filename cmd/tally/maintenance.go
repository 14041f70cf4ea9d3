package main

import (
	"fmt"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/tallykeep/tally/internal/database"
	"github.com/tallykeep/tally/internal/services"
)

func newBackupCmd(opts *globalOptions) *cobra.Command {
	var (
		keep int
		list bool
	)

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a JSON snapshot of the store to the backup directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if keep < 0 {
				return fmt.Errorf("--keep must not be negative")
			}
			dbCtx, err := opts.open()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			svc := services.NewMaintenanceService(dbCtx, opts.cfg.BackupDir(), opts.logger)
			if list {
				return listBackups(cmd, svc)
			}

			result, err := svc.Backup(cmd.Context())
			if err != nil {
				return err
			}
			ok, err := svc.VerifyBackup(result.Path, result.Hash)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("backup %s failed verification", result.Path)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", result.Path)

			if keep > 0 {
				removed, err := svc.PruneBackups(cmd.Context(), keep)
				if err != nil {
					return err
				}
				if removed > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Removed %d old backup(s)\n", removed)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&keep, "keep", 0, "Keep only the newest N backups (0 keeps all)")
	cmd.Flags().BoolVar(&list, "list", false, "List existing backups instead of writing one")
	return cmd
}

func listBackups(cmd *cobra.Command, svc *services.MaintenanceService) error {
	snapshots, err := svc.ListBackups()
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No backups")
		return nil
	}
	t := newTable(cmd)
	t.AppendHeader(table.Row{"Created", "File", "Hash"})
	for _, snap := range snapshots {
		t.AppendRow(table.Row{snap.Created.Format("2006-01-02 15:04:05Z"), filepath.Base(snap.Path), snap.Hash})
	}
	t.Render()
	return nil
}

func newPurgeCmd(opts *globalOptions) *cobra.Command {
	var before string

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete daily summaries dated before a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbCtx, err := opts.open()
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			n, err := services.NewMaintenanceService(dbCtx, opts.cfg.BackupDir(), opts.logger).Purge(cmd.Context(), before)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purged %d daily summaries dated before %s\n", n, before)
			return nil
		},
	}

	cmd.Flags().StringVar(&before, "before", "", "Cutoff date (YYYY-MM-DD), exclusive")
	_ = cmd.MarkFlagRequired("before")
	return cmd
}
