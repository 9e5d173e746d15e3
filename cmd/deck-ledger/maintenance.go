package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ymatsuda/deck-ledger/internal/storage"
)

func runMigrationCommand(args []string) {
	if len(args) < 1 {
		printMigrationUsage()
		os.Exit(1)
	}

	cfg := loadConfig()
	path := dbPath(cfg)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Fatalf("Error creating database directory: %v", err)
	}

	mgr, err := storage.NewMigrationManager(path)
	if err != nil {
		log.Fatalf("Error creating migration manager: %v", err)
	}
	defer func() {
		if err := mgr.Close(); err != nil {
			log.Printf("Error closing migration manager: %v", err)
		}
	}()

	switch args[0] {
	case "up":
		fmt.Println("Applying all pending migrations...")
		if err := mgr.Up(); err != nil {
			log.Fatalf("Error applying migrations: %v", err)
		}
		printMigrationVersion(mgr)
		fmt.Println("All migrations applied successfully!")

	case "down":
		fmt.Println("Rolling back last migration...")
		if err := mgr.Down(); err != nil {
			log.Fatalf("Error rolling back migration: %v", err)
		}
		printMigrationVersion(mgr)
		fmt.Println("Migration rolled back successfully!")

	case "status", "version":
		printMigrationVersion(mgr)

	case "force":
		if len(args) < 2 {
			log.Fatal("Usage: deck-ledger migrate force <version>")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatalf("Invalid version %q: %v", args[1], err)
		}
		if err := mgr.Force(version); err != nil {
			log.Fatalf("Error forcing version: %v", err)
		}
		fmt.Printf("Forced migration version to %d\n", version)

	default:
		printMigrationUsage()
		os.Exit(1)
	}
}

func printMigrationVersion(mgr *storage.MigrationManager) {
	version, dirty, err := mgr.Version()
	if err != nil {
		log.Fatalf("Error getting version: %v", err)
	}
	if dirty {
		fmt.Printf("Current version: %d (dirty - migration failed or interrupted)\n", version)
	} else {
		fmt.Printf("Current version: %d\n", version)
	}
}

func printMigrationUsage() {
	fmt.Println("Usage: deck-ledger migrate <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  up       - Apply all pending migrations")
	fmt.Println("  down     - Roll back the last migration")
	fmt.Println("  status   - Show the current migration version")
	fmt.Println("  force    - Set the migration version without running migrations")
}

func runBackupCommand(args []string) {
	if len(args) < 1 {
		printBackupUsage()
		os.Exit(1)
	}

	cfg := loadConfig()
	bm := storage.NewBackupManager(dbPath(cfg))

	switch args[0] {
	case "create":
		fs := flag.NewFlagSet("backup create", flag.ExitOnError)
		dir := fs.String("dir", "", "Backup directory (defaults to 'backups' beside the database)")
		name := fs.String("name", "", "Backup name (defaults to a timestamp)")
		compress := fs.Bool("compress", false, "Gzip the backup")
		passphrase := fs.String("passphrase", "", "Encrypt the backup with this passphrase")
		_ = fs.Parse(args[1:])

		backupCfg := storage.DefaultBackupConfig()
		backupCfg.BackupDir = *dir
		backupCfg.BackupName = *name
		backupCfg.Compress = *compress
		backupCfg.Passphrase = *passphrase

		path, err := bm.Backup(backupCfg)
		if err != nil {
			log.Fatalf("Error creating backup: %v", err)
		}
		fmt.Printf("Backup created: %s\n", path)

	case "list":
		fs := flag.NewFlagSet("backup list", flag.ExitOnError)
		dir := fs.String("dir", "", "Backup directory (defaults to 'backups' beside the database)")
		_ = fs.Parse(args[1:])

		backups, err := bm.ListBackups(*dir)
		if err != nil {
			log.Fatalf("Error listing backups: %v", err)
		}
		if len(backups) == 0 {
			fmt.Println("No backups found.")
			return
		}
		fmt.Printf("%-40s %-12s %-20s %s\n", "Name", "Size", "Modified", "Encrypted")
		for _, b := range backups {
			fmt.Printf("%-40s %-12d %-20s %t\n", b.Name, b.Size, b.ModTime.Format("2006-01-02 15:04:05"), b.Encrypted)
		}

	case "verify":
		if len(args) < 2 {
			log.Fatal("Usage: deck-ledger backup verify <file>")
		}
		if err := bm.VerifyBackup(args[1]); err != nil {
			log.Fatalf("Backup verification failed: %v", err)
		}
		fmt.Println("Backup is valid.")

	case "restore":
		fs := flag.NewFlagSet("backup restore", flag.ExitOnError)
		passphrase := fs.String("passphrase", "", "Passphrase for an encrypted backup")
		_ = fs.Parse(args[1:])
		if fs.NArg() < 1 {
			log.Fatal("Usage: deck-ledger backup restore [-passphrase ...] <file>")
		}
		if err := bm.Restore(fs.Arg(0), *passphrase); err != nil {
			log.Fatalf("Error restoring backup: %v", err)
		}
		fmt.Println("Backup restored. The previous database was kept beside it with an .old suffix.")

	default:
		printBackupUsage()
		os.Exit(1)
	}
}

func printBackupUsage() {
	fmt.Println("Usage: deck-ledger backup <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  create   - Create a backup of the record store")
	fmt.Println("  list     - List existing backups")
	fmt.Println("  verify   - Check that a backup file is a valid database")
	fmt.Println("  restore  - Replace the record store with a backup")
}
