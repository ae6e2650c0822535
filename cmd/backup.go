package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/simonvc/shopledger/internal/backup"
	"github.com/simonvc/shopledger/internal/logger"
	"github.com/simonvc/shopledger/internal/store"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export and restore the whole ledger as JSON",
}

var backupOut string

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download a backup from the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := newClient().Backup(context.Background())
		if err != nil {
			return err
		}
		path, err := saveFile(f, backupOut)
		if err != nil {
			return err
		}
		if path != "-" {
			fmt.Printf("Backup written to %s\n", path)
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [file.json]",
	Short: "Replace the collections present in a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		restored, err := newClient().Restore(context.Background(), f)
		if err != nil {
			return err
		}
		fmt.Printf("Restored %d collections: %v\n", len(restored), restored)
		return nil
	},
}

var (
	backupDir  string
	backupKeep int
)

// backup snapshot works on the database file directly, for cron jobs that
// run without a server.
var backupSnapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Write a dated backup of the local database into a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.BackupDir
		if cmd.Flags().Changed("dir") {
			dir = backupDir
		}
		keep := cfg.BackupKeep
		if cmd.Flags().Changed("keep") {
			keep = backupKeep
		}
		st, err := store.Open(cfg.DBPath, logger.Named(baseLogger, "store"))
		if err != nil {
			return err
		}
		defer st.Close()

		g := backup.NewGateway(st, logger.Named(baseLogger, "backup"))
		path, err := g.WriteFile(context.Background(), dir)
		if err != nil {
			return err
		}
		removed, err := g.Prune(dir, keep)
		if err != nil {
			return err
		}
		fmt.Printf("Backup written to %s (%d old backups removed)\n", path, len(removed))
		return nil
	},
}

func init() {
	backupExportCmd.Flags().StringVarP(&backupOut, "output", "o", "", "Output file, - for stdout")
	backupSnapshotCmd.Flags().StringVar(&backupDir, "dir", "backups", "Backup directory (overrides BACKUP_DIR)")
	backupSnapshotCmd.Flags().IntVar(&backupKeep, "keep", 7, "Backups to keep (overrides BACKUP_KEEP)")

	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupSnapshotCmd)

	rootCmd.AddCommand(backupCmd)
}
