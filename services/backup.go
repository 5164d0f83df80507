package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const backupPrefix = "backups/"

// BackupResult describes one uploaded snapshot
type BackupResult struct {
	Key       string    `json:"key"`
	Size      int64     `json:"size"`
	Encrypted bool      `json:"encrypted"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"created_at"`
}

// BackupService snapshots the database and ships it to a StorageProvider
type BackupService struct {
	store   *Store
	storage StorageProvider
	key     []byte
}

// NewBackupService creates a backup service. A nil key stores snapshots in
// plain form.
func NewBackupService(store *Store, storage StorageProvider, key []byte) *BackupService {
	return &BackupService{store: store, storage: storage, key: key}
}

// backupKey builds backups/<date>/<hhmmss>-<uuid>.db[.enc], so keys sort in
// the order the backups were taken
func (b *BackupService) backupKey(now time.Time) string {
	name := now.Format("150405") + "-" + uuid.New().String() + ".db"
	if b.key != nil {
		name += ".enc"
	}
	return backupPrefix + now.Format(DateLayout) + "/" + name
}

// snapshot writes a consistent copy of the database with VACUUM INTO and
// returns its bytes
func (b *BackupService) snapshot(ctx context.Context) ([]byte, error) {
	dir, err := os.MkdirTemp("", "crm_legal_backup")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "snapshot.db")
	if err := b.store.DB().WithContext(ctx).Exec("VACUUM INTO ?", path).Error; err != nil {
		return nil, fmt.Errorf("failed to snapshot database: %w", err)
	}
	return os.ReadFile(path)
}

// Run takes a snapshot, encrypts it when a key is configured and uploads it
func (b *BackupService) Run(ctx context.Context) (*BackupResult, error) {
	log := b.store.Logger()
	now := b.store.Now()

	data, err := b.snapshot(ctx)
	if err != nil {
		log.Error("backup failed", "stage", "snapshot", "error", err)
		return nil, err
	}

	contentType := "application/vnd.sqlite3"
	if b.key != nil {
		if data, err = EncryptBackup(b.key, data); err != nil {
			log.Error("backup failed", "stage", "encrypt", "error", err)
			return nil, err
		}
		contentType = "application/octet-stream"
	}

	key := b.backupKey(now)
	stored, err := b.storage.UploadReader(ctx, bytes.NewReader(data), key, contentType, int64(len(data)))
	if err != nil {
		log.Error("backup failed", "stage", "upload", "key", key, "error", err)
		return nil, err
	}

	result := &BackupResult{
		Key:       stored.Key,
		Size:      stored.FileSize,
		Encrypted: b.key != nil,
		Provider:  b.storage.Name(),
		CreatedAt: now,
	}
	log.Info("backup uploaded", "key", result.Key, "bytes", result.Size, "encrypted", result.Encrypted, "provider", result.Provider)
	return result, nil
}

// List returns the stored backups, oldest first
func (b *BackupService) List(ctx context.Context) ([]StorageObject, error) {
	return b.storage.List(ctx, backupPrefix)
}

// Prune deletes all but the newest keep backups and returns the deleted keys
func (b *BackupService) Prune(ctx context.Context, keep int) ([]string, error) {
	if keep < 1 {
		return nil, validationError("must keep at least one backup")
	}
	objects, err := b.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	if len(objects) <= keep {
		return nil, nil
	}

	var deleted []string
	for _, obj := range objects[:len(objects)-keep] {
		if err := b.storage.Delete(ctx, obj.Key); err != nil {
			b.store.Logger().Error("backup prune failed", "key", obj.Key, "error", err)
			return deleted, err
		}
		deleted = append(deleted, obj.Key)
	}
	b.store.Logger().Info("backups pruned", "deleted", len(deleted), "kept", keep, "provider", b.storage.Name())
	return deleted, nil
}

// Restore downloads a backup and writes the plain SQLite file to dest.
// It refuses to overwrite an existing file.
func (b *BackupService) Restore(ctx context.Context, key, dest string) error {
	if !strings.HasPrefix(key, backupPrefix) {
		return fmt.Errorf("not a backup key: %s", key)
	}
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("restore target already exists: %s", dest)
	}

	reader, err := b.storage.Get(ctx, key)
	if err != nil {
		return err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}
	if IsEncryptedBackup(data) {
		if b.key == nil {
			return fmt.Errorf("backup %s is encrypted and BACKUP_KEY is not set", key)
		}
		if data, err = DecryptBackup(b.key, data); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(dest, data, 0o600); err != nil {
		return fmt.Errorf("failed to write restored database: %w", err)
	}
	b.store.Logger().Info("backup restored", "key", key, "dest", dest)
	return nil
}
