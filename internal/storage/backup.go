package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Backup errors.
var (
	ErrBackupNotFound  = errors.New("backup not found")
	ErrBackupExists    = errors.New("backup already exists")
	ErrBackupCorrupted = errors.New("backup integrity check failed")
	ErrInvalidBackupID = errors.New("invalid backup ID: cannot contain path separators")
)

// maxAutoBackups is how many automatic backups are kept.
const maxAutoBackups = 5

// BackupInfo describes one database snapshot.
type BackupInfo struct {
	CreatedAt     time.Time      `json:"created_at"`
	RowCounts     map[string]int `json:"row_counts"`
	ID            string         `json:"id"`
	Description   string         `json:"description"`
	FileSize      int64          `json:"file_size"`
	SchemaVersion int            `json:"schema_version"`
	IsAuto        bool           `json:"is_auto"`
}

// BackupManager snapshots the database file into a sibling backups directory.
type BackupManager struct {
	db         *sql.DB
	dbPath     string
	backupsDir string
}

// NewBackupManager creates a backup manager for the database at dbPath.
func NewBackupManager(db *sql.DB, dbPath string) (*BackupManager, error) {
	if dbPath == ":memory:" {
		return nil, fmt.Errorf("in-memory databases cannot be backed up")
	}

	backupsDir := filepath.Join(filepath.Dir(dbPath), "backups")
	if err := os.MkdirAll(backupsDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create backups directory: %w", err)
	}

	return &BackupManager{
		db:         db,
		dbPath:     dbPath,
		backupsDir: backupsDir,
	}, nil
}

// Create snapshots the database under id. An empty id is generated from the
// current time.
func (bm *BackupManager) Create(ctx context.Context, id, description string) (*BackupInfo, error) {
	return bm.create(ctx, id, description, false)
}

// Auto creates an automatic backup before an operation that writes many rows
// and prunes automatic backups beyond the newest few.
func (bm *BackupManager) Auto(ctx context.Context, operation string) (*BackupInfo, error) {
	id := fmt.Sprintf("auto-%s-%s", operation, time.Now().Format("2006-01-02-150405"))
	info, err := bm.create(ctx, id, "Automatic backup before "+operation, true)
	if err != nil {
		return nil, fmt.Errorf("failed to create automatic backup: %w", err)
	}

	if err := bm.pruneAuto(ctx); err != nil {
		slog.Warn("failed to prune old automatic backups", "error", err)
	}

	return info, nil
}

func (bm *BackupManager) create(ctx context.Context, id, description string, auto bool) (*BackupInfo, error) {
	if id == "" {
		id = "backup-" + time.Now().Format("2006-01-02-150405")
	}
	if err := validateBackupID(id); err != nil {
		return nil, err
	}

	backupPath := bm.dataPath(id)
	if _, err := os.Stat(backupPath); err == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrBackupExists)
	}

	var schemaVersion int
	if err := bm.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&schemaVersion); err != nil {
		return nil, fmt.Errorf("failed to get schema version: %w", err)
	}

	if err := bm.snapshot(ctx, backupPath); err != nil {
		return nil, fmt.Errorf("failed to snapshot database: %w", err)
	}

	stat, err := os.Stat(backupPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat backup: %w", err)
	}

	info := BackupInfo{
		ID:            id,
		CreatedAt:     time.Now(),
		Description:   description,
		FileSize:      stat.Size(),
		RowCounts:     bm.rowCounts(ctx),
		SchemaVersion: schemaVersion,
		IsAuto:        auto,
	}

	if err := writeJSONAtomic(bm.metaPath(id), info); err != nil {
		if rmErr := os.Remove(backupPath); rmErr != nil {
			slog.Error("failed to remove backup after metadata write failure", "error", rmErr)
		}
		return nil, fmt.Errorf("failed to save backup metadata: %w", err)
	}

	slog.Info("created database backup", "id", id, "size", info.FileSize)
	return &info, nil
}

// List returns all backups, newest first.
func (bm *BackupManager) List(_ context.Context) ([]BackupInfo, error) {
	entries, err := os.ReadDir(bm.backupsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backups directory: %w", err)
	}

	backups := make([]BackupInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".meta.json") {
			continue
		}

		info, err := readBackupInfo(filepath.Join(bm.backupsDir, entry.Name()))
		if err != nil {
			slog.Debug("skipping unreadable backup metadata", "file", entry.Name(), "error", err)
			continue
		}
		backups = append(backups, *info)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})

	return backups, nil
}

// Restore replaces the database file with backup id. The manager's database
// handle is closed; callers must reopen storage afterwards.
func (bm *BackupManager) Restore(_ context.Context, id string) error {
	if err := validateBackupID(id); err != nil {
		return err
	}

	backupPath := bm.dataPath(id)
	if _, err := os.Stat(backupPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", id, ErrBackupNotFound)
		}
		return fmt.Errorf("failed to access backup: %w", err)
	}

	if err := checkIntegrity(backupPath); err != nil {
		return fmt.Errorf("%s: %w: %w", id, ErrBackupCorrupted, err)
	}

	if err := bm.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	safetyCopy := bm.dbPath + ".restore-backup"
	if err := copyFile(bm.dbPath, safetyCopy); err != nil {
		return fmt.Errorf("failed to copy current database aside: %w", err)
	}

	if err := copyFile(backupPath, bm.dbPath); err != nil {
		if rollbackErr := copyFile(safetyCopy, bm.dbPath); rollbackErr != nil {
			slog.Error("failed to put original database back after restore failure", "error", rollbackErr)
		}
		return fmt.Errorf("failed to restore backup: %w", err)
	}

	// Stale WAL files belong to the replaced database.
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(bm.dbPath + suffix); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to remove stale journal file", "file", bm.dbPath+suffix, "error", err)
		}
	}

	if err := os.Remove(safetyCopy); err != nil {
		slog.Error("failed to remove restore safety copy", "error", err)
	}

	return nil
}

// Delete removes a backup.
func (bm *BackupManager) Delete(_ context.Context, id string) error {
	if err := validateBackupID(id); err != nil {
		return err
	}

	if err := os.Remove(bm.dataPath(id)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", id, ErrBackupNotFound)
		}
		return fmt.Errorf("failed to remove backup file: %w", err)
	}

	if err := os.Remove(bm.metaPath(id)); err != nil && !os.IsNotExist(err) {
		slog.Debug("failed to remove backup metadata", "error", err, "id", id)
	}

	return nil
}

func (bm *BackupManager) pruneAuto(ctx context.Context) error {
	backups, err := bm.List(ctx)
	if err != nil {
		return err
	}

	kept := 0
	for _, b := range backups {
		if !b.IsAuto {
			continue
		}
		kept++
		if kept > maxAutoBackups {
			if err := bm.Delete(ctx, b.ID); err != nil {
				slog.Debug("failed to delete old automatic backup", "error", err, "id", b.ID)
			}
		}
	}

	return nil
}

func (bm *BackupManager) rowCounts(ctx context.Context) map[string]int {
	queries := map[string]string{
		"expenses":   "SELECT COUNT(*) FROM expenses",
		"incomes":    "SELECT COUNT(*) FROM incomes",
		"categories": "SELECT COUNT(*) FROM categories",
		"budgets":    "SELECT COUNT(*) FROM budgets",
	}

	counts := make(map[string]int, len(queries))
	for table, query := range queries {
		var n int
		if err := bm.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
			// Unmigrated databases lack the tables.
			n = 0
		}
		counts[table] = n
	}
	return counts
}

func (bm *BackupManager) snapshot(ctx context.Context, dest string) error {
	if _, err := bm.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("failed to checkpoint WAL: %w", err)
	}

	if strings.ContainsAny(dest, `'";`) {
		return fmt.Errorf("invalid backup path: contains forbidden characters")
	}

	// #nosec G201 - dest is built from a validated ID and contains no quotes
	if _, err := bm.db.ExecContext(ctx, fmt.Sprintf("VACUUM INTO '%s'", dest)); err != nil {
		slog.Debug("VACUUM INTO failed, falling back to file copy", "error", err)
		return copyFile(bm.dbPath, dest)
	}

	return nil
}

func (bm *BackupManager) dataPath(id string) string {
	return filepath.Join(bm.backupsDir, id+".db")
}

func (bm *BackupManager) metaPath(id string) string {
	return filepath.Join(bm.backupsDir, id+".meta.json")
}

func validateBackupID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return ErrInvalidBackupID
	}
	return nil
}

func readBackupInfo(path string) (*BackupInfo, error) {
	// #nosec G304 - path is inside the backups directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var info BackupInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func checkIntegrity(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	var result string
	if err := db.QueryRow("PRAGMA integrity_check").Scan(&result); err != nil {
		return err
	}
	if result != "ok" {
		return fmt.Errorf("integrity check: %s", result)
	}
	return nil
}

func copyFile(src, dst string) error {
	// #nosec G304 - src is the configured database or a backup inside the backups directory
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = source.Close() }()

	tmp := dst + ".tmp"
	// #nosec G304 - tmp sits next to dst
	destination, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := io.Copy(destination, source); err != nil {
		_ = destination.Close()
		_ = os.Remove(tmp)
		return err
	}

	if err := destination.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, dst)
}
