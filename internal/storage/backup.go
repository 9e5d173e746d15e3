package storage

import (
	"compress/gzip"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// BackupManager handles backup and restore of the record store.
type BackupManager struct {
	dbPath string
}

// NewBackupManager creates a backup manager for the given database path.
func NewBackupManager(dbPath string) *BackupManager {
	return &BackupManager{dbPath: dbPath}
}

// BackupConfig holds configuration for backup operations.
type BackupConfig struct {
	// BackupDir is where backups are stored. Empty means a "backups"
	// subdirectory next to the database.
	BackupDir string

	// BackupName is the backup file name without extension. Empty means a
	// timestamp-based name.
	BackupName string

	// Compress gzips the backup file.
	Compress bool

	// Passphrase, when non-empty, encrypts the backup after compression.
	Passphrase string

	// Verify re-opens the backup after creation to confirm it is a valid
	// database. Skipped for compressed or encrypted backups.
	Verify bool
}

// DefaultBackupConfig returns a BackupConfig with sensible defaults.
func DefaultBackupConfig() *BackupConfig {
	return &BackupConfig{Verify: true}
}

// Backup creates a backup of the database and returns its path.
// Uses VACUUM INTO, which is atomic and needs no exclusive lock, with a
// plain file copy as fallback for old SQLite versions.
func (bm *BackupManager) Backup(config *BackupConfig) (string, error) {
	if config == nil {
		config = DefaultBackupConfig()
	}

	backupDir := config.BackupDir
	if backupDir == "" {
		backupDir = bm.DefaultBackupDir()
	}
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupName := config.BackupName
	if backupName == "" {
		backupName = fmt.Sprintf("backup_%s", time.Now().Format("20060102_150405"))
	}
	backupPath := filepath.Join(backupDir, backupName+".db")

	sourceDB, err := sql.Open("sqlite", bm.dbPath)
	if err != nil {
		return "", fmt.Errorf("failed to open source database: %w", err)
	}
	defer func() { _ = sourceDB.Close() }()

	if _, err := sourceDB.Exec(fmt.Sprintf("VACUUM INTO %q", backupPath)); err != nil {
		if err := copyFile(bm.dbPath, backupPath); err != nil {
			return "", fmt.Errorf("failed to copy database file: %w", err)
		}
	}

	if config.Verify {
		if err := bm.VerifyBackup(backupPath); err != nil {
			_ = os.Remove(backupPath)
			return "", fmt.Errorf("backup verification failed: %w", err)
		}
	}

	if config.Compress {
		gzPath := backupPath + ".gz"
		if err := gzipFile(backupPath, gzPath); err != nil {
			_ = os.Remove(backupPath)
			return "", fmt.Errorf("failed to compress backup: %w", err)
		}
		_ = os.Remove(backupPath)
		backupPath = gzPath
	}

	if config.Passphrase != "" {
		encPath := backupPath + ".enc"
		if err := EncryptFile(backupPath, encPath, config.Passphrase); err != nil {
			_ = os.Remove(backupPath)
			return "", fmt.Errorf("failed to encrypt backup: %w", err)
		}
		_ = os.Remove(backupPath)
		backupPath = encPath
	}

	return backupPath, nil
}

// Restore replaces the current database with the given backup. The caller
// must have closed its connections first. The previous database file is kept
// beside the new one with an ".old" timestamp suffix.
func (bm *BackupManager) Restore(backupPath, passphrase string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	tempPath := bm.dbPath + ".restore.tmp"
	defer func() { _ = os.Remove(tempPath) }()

	src := backupPath

	encrypted, err := IsEncrypted(src)
	if err != nil {
		return fmt.Errorf("failed to inspect backup: %w", err)
	}
	if encrypted {
		if passphrase == "" {
			return fmt.Errorf("backup is encrypted, passphrase required")
		}
		decPath := tempPath + ".dec"
		defer func() { _ = os.Remove(decPath) }()
		if err := DecryptFile(src, decPath, passphrase); err != nil {
			return err
		}
		src = decPath
	}

	if strings.HasSuffix(strings.TrimSuffix(backupPath, ".enc"), ".gz") {
		if err := gunzipFile(src, tempPath); err != nil {
			return fmt.Errorf("failed to decompress backup: %w", err)
		}
	} else if err := copyFile(src, tempPath); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}

	if err := bm.VerifyBackup(tempPath); err != nil {
		return fmt.Errorf("restored database verification failed: %w", err)
	}

	if _, err := os.Stat(bm.dbPath); err == nil {
		oldPath := bm.dbPath + ".old." + time.Now().Format("20060102_150405")
		if err := os.Rename(bm.dbPath, oldPath); err != nil {
			return fmt.Errorf("failed to set aside current database: %w", err)
		}
	}

	if err := os.Rename(tempPath, bm.dbPath); err != nil {
		return fmt.Errorf("failed to replace database with restored backup: %w", err)
	}
	return nil
}

// VerifyBackup checks that a backup file is a readable SQLite database.
func (bm *BackupManager) VerifyBackup(backupPath string) error {
	db, err := sql.Open("sqlite", backupPath)
	if err != nil {
		return fmt.Errorf("failed to open backup as database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping backup database: %w", err)
	}

	var version string
	if err := db.QueryRow("SELECT sqlite_version()").Scan(&version); err != nil {
		return fmt.Errorf("failed to query backup database: %w", err)
	}
	return nil
}

// BackupInfo describes one backup file.
type BackupInfo struct {
	Path      string
	Name      string
	Size      int64
	ModTime   time.Time
	Checksum  string
	Encrypted bool
}

// ListBackups returns the backup files under the given directory, or the
// default backup directory when dir is empty.
func (bm *BackupManager) ListBackups(dir string) ([]BackupInfo, error) {
	if dir == "" {
		dir = bm.DefaultBackupDir()
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if entry.IsDir() || !isBackupName(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			continue
		}

		checksum, err := fileChecksum(path)
		if err != nil {
			checksum = "unknown"
		}
		encrypted, _ := IsEncrypted(path)

		backups = append(backups, BackupInfo{
			Path:      path,
			Name:      entry.Name(),
			Size:      info.Size(),
			ModTime:   info.ModTime(),
			Checksum:  checksum,
			Encrypted: encrypted,
		})
	}

	return backups, nil
}

// DefaultBackupDir returns the backup directory beside the database.
func (bm *BackupManager) DefaultBackupDir() string {
	return filepath.Join(filepath.Dir(bm.dbPath), "backups")
}

func isBackupName(name string) bool {
	switch {
	case strings.HasSuffix(name, ".db"),
		strings.HasSuffix(name, ".db.gz"),
		strings.HasSuffix(name, ".db.enc"),
		strings.HasSuffix(name, ".db.gz.enc"):
		return true
	}
	return false
}

func copyFile(srcPath, destPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	dest, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer func() { _ = dest.Close() }()

	if _, err := io.Copy(dest, src); err != nil {
		_ = os.Remove(destPath)
		return err
	}
	return dest.Close()
}

func gzipFile(srcPath, destPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	dest, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer func() { _ = dest.Close() }()

	zw := gzip.NewWriter(dest)
	if _, err := io.Copy(zw, src); err != nil {
		_ = os.Remove(destPath)
		return err
	}
	if err := zw.Close(); err != nil {
		_ = os.Remove(destPath)
		return err
	}
	return dest.Close()
}

func gunzipFile(srcPath, destPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	zr, err := gzip.NewReader(src)
	if err != nil {
		return err
	}
	defer func() { _ = zr.Close() }()

	dest, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer func() { _ = dest.Close() }()

	if _, err := io.Copy(dest, zr); err != nil { //nolint:gosec // Local backup files
		_ = os.Remove(destPath)
		return err
	}
	return dest.Close()
}

// fileChecksum returns the SHA-256 checksum of a file.
func fileChecksum(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = file.Close() }()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
