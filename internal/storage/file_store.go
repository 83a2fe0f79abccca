package storage

import (
	"net/url"
	"os"
	"path/filepath"
	"spd/internal/models"
	"spd/internal/providers"
	"spd/internal/structures"

	json "github.com/goccy/go-json"
)

const (
	profilesDirName = "profiles"
	usageDirName    = "usage"
	statusFileName  = "migration_status.json"
)

// FileStore is the per-owner file backend: one JSON file per owner per
// namespace under the configured root, plus the migration status marker.
// Files for different owners are disjoint, so no cross-owner locking is
// needed; each write is atomic via temp file + rename.
type FileStore struct {
	root        string
	profilesDir string
	usageDir    string
	logger      providers.Logger
}

// NewFileStore creates the containing directories idempotently. It returns
// (nil, nil) when no storage root is configured — legacy-only mode. A
// directory creation failure means the host environment cannot persist at
// all and is fatal.
func NewFileStore(conf *structures.Config, logger providers.Logger) (*FileStore, error) {
	if conf.Storage.Root == "" {
		logger.Infof(providers.TypeApp, "No storage root configured, running legacy-only")
		return nil, nil
	}

	fs := &FileStore{
		root:        conf.Storage.Root,
		profilesDir: filepath.Join(conf.Storage.Root, profilesDirName),
		usageDir:    filepath.Join(conf.Storage.Root, usageDirName),
		logger:      logger,
	}
	for _, dir := range []string{fs.profilesDir, fs.usageDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return fs, nil
}

func (fs *FileStore) GetStand(ownerID string) (*models.StandRecord, error) {
	var rec models.StandRecord
	if err := fs.readJSON(fs.standPath(ownerID), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (fs *FileStore) PutStand(ownerID string, rec *models.StandRecord) error {
	return fs.writeJSON(fs.standPath(ownerID), rec)
}

func (fs *FileStore) GetUsage(ownerID string) (models.UsageHistory, error) {
	var hist models.UsageHistory
	if err := fs.readJSON(fs.usagePath(ownerID), &hist); err != nil {
		return nil, err
	}
	if hist == nil {
		hist = models.UsageHistory{}
	}
	return hist, nil
}

func (fs *FileStore) PutUsage(ownerID string, hist models.UsageHistory) error {
	return fs.writeJSON(fs.usagePath(ownerID), hist)
}

// HasStand reports whether a stand file exists, without reading it. The
// migrator must not overwrite an existing file even if it is unreadable.
func (fs *FileStore) HasStand(ownerID string) bool {
	_, err := os.Stat(fs.standPath(ownerID))
	return err == nil
}

func (fs *FileStore) ReadStatus() (*models.MigrationStatus, error) {
	var status models.MigrationStatus
	if err := fs.readJSON(filepath.Join(fs.root, statusFileName), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (fs *FileStore) WriteStatus(status *models.MigrationStatus) error {
	return fs.writeJSON(filepath.Join(fs.root, statusFileName), status)
}

// Counts reports stored stands and usage owners, for health and metrics.
func (fs *FileStore) Counts() (stands, usageOwners int) {
	return countJSONFiles(fs.profilesDir), countJSONFiles(fs.usageDir)
}

func (fs *FileStore) readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal(data, v)
}

func (fs *FileStore) writeJSON(path string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, path)
}

func (fs *FileStore) standPath(ownerID string) string {
	return filepath.Join(fs.profilesDir, ownerFileName(ownerID))
}

func (fs *FileStore) usagePath(ownerID string) string {
	return filepath.Join(fs.usageDir, ownerFileName(ownerID))
}

// ownerFileName maps an opaque owner ID to a flat file name. Escaping keeps
// separator characters in IDs from leaving the namespace directory.
func ownerFileName(ownerID string) string {
	return url.PathEscape(ownerID) + ".json"
}

func countJSONFiles(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".json" {
			n++
		}
	}
	return n
}
