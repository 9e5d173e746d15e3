package storage

import (
	"path/filepath"
	"strings"
	"testing"
)

// newTestStore creates a file-backed database with a small table so backups
// have something to carry.
func newTestStore(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ledger.db")
	db, err := Open(DefaultConfig(path))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if _, err := db.Conn().Exec(`CREATE TABLE t (v TEXT); INSERT INTO t VALUES ('x')`); err != nil {
		t.Fatalf("failed to seed database: %v", err)
	}
	return path
}

func TestBackupManager_BackupAndVerify(t *testing.T) {
	path := newTestStore(t)
	bm := NewBackupManager(path)

	backupPath, err := bm.Backup(DefaultBackupConfig())
	if err != nil {
		t.Fatalf("failed to back up: %v", err)
	}
	if !strings.HasSuffix(backupPath, ".db") {
		t.Errorf("unexpected backup name: %s", backupPath)
	}
	if err := bm.VerifyBackup(backupPath); err != nil {
		t.Errorf("backup failed verification: %v", err)
	}
}

func TestBackupManager_RestoreRoundTrip(t *testing.T) {
	path := newTestStore(t)
	bm := NewBackupManager(path)

	backupPath, err := bm.Backup(DefaultBackupConfig())
	if err != nil {
		t.Fatalf("failed to back up: %v", err)
	}

	if err := bm.Restore(backupPath, ""); err != nil {
		t.Fatalf("failed to restore: %v", err)
	}

	db, err := Open(DefaultConfig(path))
	if err != nil {
		t.Fatalf("failed to reopen restored database: %v", err)
	}
	defer db.Close()

	var v string
	if err := db.Conn().QueryRow(`SELECT v FROM t`).Scan(&v); err != nil {
		t.Fatalf("failed to query restored database: %v", err)
	}
	if v != "x" {
		t.Errorf("restored value: got %q, want %q", v, "x")
	}
}

func TestBackupManager_CompressedEncryptedBackup(t *testing.T) {
	path := newTestStore(t)
	bm := NewBackupManager(path)

	cfg := DefaultBackupConfig()
	cfg.Compress = true
	cfg.Passphrase = "hunter2"

	backupPath, err := bm.Backup(cfg)
	if err != nil {
		t.Fatalf("failed to back up: %v", err)
	}
	if !strings.HasSuffix(backupPath, ".db.gz.enc") {
		t.Errorf("unexpected backup name: %s", backupPath)
	}

	if err := bm.Restore(backupPath, "wrong"); err == nil {
		t.Error("expected restore with wrong passphrase to fail")
	}
	if err := bm.Restore(backupPath, "hunter2"); err != nil {
		t.Fatalf("failed to restore encrypted backup: %v", err)
	}
}

func TestBackupManager_ListBackups(t *testing.T) {
	path := newTestStore(t)
	bm := NewBackupManager(path)

	if backups, err := bm.ListBackups(""); err != nil || len(backups) != 0 {
		t.Fatalf("empty list: got %v, %v", backups, err)
	}

	if _, err := bm.Backup(DefaultBackupConfig()); err != nil {
		t.Fatalf("failed to back up: %v", err)
	}

	backups, err := bm.ListBackups("")
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("got %d backups, want 1", len(backups))
	}
	if backups[0].Size == 0 || backups[0].Checksum == "unknown" {
		t.Errorf("backup metadata incomplete: %+v", backups[0])
	}
	if backups[0].Encrypted {
		t.Error("plain backup flagged as encrypted")
	}
}
