package storage

import (
	"os"
	"spd/internal/models"
	"spd/internal/providers"
	"spd/internal/storage/interfaces"
	"spd/internal/structures"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

// LegacyStore is the single-blob key-value backend. The whole data set
// lives in memory behind a RWMutex and is rewritten to one compressed
// blob on every put, so a crash never loses an acknowledged write.
type LegacyStore struct {
	mu         sync.RWMutex
	path       string
	snapshot   *models.LegacySnapshot
	compressor interfaces.CompressorInterface
	metrics    providers.MetricsProviderInterface
	logger     providers.Logger
}

func NewLegacyStore(conf *structures.Config, compressor interfaces.CompressorInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) *LegacyStore {
	return &LegacyStore{
		path:       conf.Legacy.FilePath,
		snapshot:   models.NewLegacySnapshot(),
		compressor: compressor,
		metrics:    metrics,
		logger:     logger,
	}
}

// Load reads the blob from disk. A missing file is an empty store, not an
// error. Versionless blobs predating the envelope are accepted as-is.
func (ls *LegacyStore) Load() error {
	data, err := os.ReadFile(ls.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressed, err := ls.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var snapshot models.LegacySnapshot
	if err := json.Unmarshal(decompressed, &snapshot); err != nil {
		return err
	}
	if snapshot.Stands == nil {
		snapshot.Stands = make(map[string]*models.StandRecord)
	}
	if snapshot.AwakenRecords == nil {
		snapshot.AwakenRecords = make(map[string]models.UsageHistory)
	}
	if snapshot.Version == 0 {
		ls.logger.Warnf(providers.TypeApp, "Versionless legacy blob found, upgrading envelope")
		snapshot.Version = models.LegacySnapshotVersion
	}

	ls.mu.Lock()
	ls.snapshot = &snapshot
	ls.mu.Unlock()
	return nil
}

// Flush persists the current snapshot. Used by the shutdown path; puts
// already persist synchronously.
func (ls *LegacyStore) Flush() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.persistLocked()
}

func (ls *LegacyStore) GetStand(ownerID string) (*models.StandRecord, error) {
	ls.mu.RLock()
	defer ls.mu.RUnlock()

	rec, ok := ls.snapshot.Stands[ownerID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (ls *LegacyStore) PutStand(ownerID string, rec *models.StandRecord) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	cp := *rec
	ls.snapshot.Stands[ownerID] = &cp
	return ls.persistLocked()
}

func (ls *LegacyStore) GetUsage(ownerID string) (models.UsageHistory, error) {
	ls.mu.RLock()
	defer ls.mu.RUnlock()

	hist, ok := ls.snapshot.AwakenRecords[ownerID]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUsage(hist), nil
}

func (ls *LegacyStore) PutUsage(ownerID string, hist models.UsageHistory) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	ls.snapshot.AwakenRecords[ownerID] = copyUsage(hist)
	return ls.persistLocked()
}

// AllStands returns a copy of every stand record, for migration.
func (ls *LegacyStore) AllStands() map[string]*models.StandRecord {
	ls.mu.RLock()
	defer ls.mu.RUnlock()

	out := make(map[string]*models.StandRecord, len(ls.snapshot.Stands))
	for owner, rec := range ls.snapshot.Stands {
		cp := *rec
		out[owner] = &cp
	}
	return out
}

// AllUsage returns a copy of every usage history, for migration.
func (ls *LegacyStore) AllUsage() map[string]models.UsageHistory {
	ls.mu.RLock()
	defer ls.mu.RUnlock()

	out := make(map[string]models.UsageHistory, len(ls.snapshot.AwakenRecords))
	for owner, hist := range ls.snapshot.AwakenRecords {
		out[owner] = copyUsage(hist)
	}
	return out
}

// Counts reports stored stands and usage owners, for health and metrics.
func (ls *LegacyStore) Counts() (stands, usageOwners int) {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return len(ls.snapshot.Stands), len(ls.snapshot.AwakenRecords)
}

// persistLocked writes the whole snapshot as one blob: marshal, compress,
// temp file, fsync, rename. A reader never observes a partial blob.
// Must be called under ls.mu.
func (ls *LegacyStore) persistLocked() error {
	start := time.Now()

	jsonData, err := json.Marshal(ls.snapshot)
	if err != nil {
		return err
	}
	data, err := ls.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := ls.path + ".tmp"
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

	if err = os.Rename(tmpFile, ls.path); err != nil {
		return err
	}

	ls.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

func copyUsage(hist models.UsageHistory) models.UsageHistory {
	out := make(models.UsageHistory, len(hist))
	for date, rec := range hist {
		cp := *rec
		out[date] = &cp
	}
	return out
}
