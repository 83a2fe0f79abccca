package storage

import (
	"fmt"
	"sort"
	"spd/internal/models"
	"spd/internal/providers"
	"time"

	"go.uber.org/atomic"
)

const timestampLayout = "2006-01-02 15:04:05"

// MigrationResult is the structured outcome of one migration run.
type MigrationResult struct {
	Success              bool     `json:"success"`
	Message              string   `json:"message"`
	ProfilesMigrated     int      `json:"profiles_migrated"`
	UsageEntriesMigrated int      `json:"usage_entries_migrated"`
	Errors               []string `json:"errors,omitempty"`
}

// Migrator performs the one-time transfer of legacy blob data into the
// per-owner file layout. Existing files always win, which makes a run
// safe to repeat before the completion marker lands; afterwards the
// marker short-circuits every run.
type Migrator struct {
	legacy *LegacyStore
	files  *FileStore
	loc    *time.Location
	done   atomic.Bool
	logger providers.Logger
}

func NewMigrator(legacy *LegacyStore, files *FileStore, loc *time.Location, logger providers.Logger) *Migrator {
	return &Migrator{
		legacy: legacy,
		files:  files,
		loc:    loc,
		logger: logger,
	}
}

func (m *Migrator) Run() *MigrationResult {
	if m.files == nil {
		return &MigrationResult{Success: true, Message: "file storage not configured, nothing to migrate"}
	}

	if m.done.Load() {
		return &MigrationResult{Success: true, Message: "migration already completed"}
	}
	if status, err := m.files.ReadStatus(); err == nil && status.MigrationCompleted {
		m.done.Store(true)
		return &MigrationResult{Success: true, Message: "migration already completed"}
	}

	m.logger.Infof(providers.TypeApp, "Migrating legacy store to file layout")
	result := &MigrationResult{}

	if err := m.migrateStands(result); err != nil {
		return m.fail(result, err)
	}
	if err := m.migrateUsage(result); err != nil {
		return m.fail(result, err)
	}

	status := &models.MigrationStatus{
		MigrationCompleted: true,
		MigrationDate:      time.Now().In(m.loc).Format(timestampLayout),
		Version:            1,
	}
	if err := m.files.WriteStatus(status); err != nil {
		return m.fail(result, fmt.Errorf("writing completion marker: %w", err))
	}

	m.done.Store(true)
	result.Success = true
	result.Message = fmt.Sprintf("migrated %d profiles and %d usage entries", result.ProfilesMigrated, result.UsageEntriesMigrated)
	m.logger.Infof(providers.TypeApp, "Migration finished: %s", result.Message)
	return result
}

func (m *Migrator) migrateStands(result *MigrationResult) error {
	stands := m.legacy.AllStands()
	for _, owner := range sortedKeys(stands) {
		if m.files.HasStand(owner) {
			continue
		}
		if err := m.files.PutStand(owner, stands[owner]); err != nil {
			return fmt.Errorf("migrating stand of %s: %w", owner, err)
		}
		result.ProfilesMigrated++
	}
	return nil
}

func (m *Migrator) migrateUsage(result *MigrationResult) error {
	for owner, legacyHist := range m.legacy.AllUsage() {
		existing, err := m.files.GetUsage(owner)
		if err == ErrNotFound {
			existing = models.UsageHistory{}
		} else if err != nil {
			return fmt.Errorf("reading usage of %s: %w", owner, err)
		}

		merged := 0
		for date, rec := range legacyHist {
			if _, ok := existing[date]; ok {
				continue
			}
			existing[date] = rec
			merged++
		}
		if merged == 0 {
			continue
		}
		if err := m.files.PutUsage(owner, existing); err != nil {
			return fmt.Errorf("migrating usage of %s: %w", owner, err)
		}
		result.UsageEntriesMigrated += merged
	}
	return nil
}

func (m *Migrator) fail(result *MigrationResult, err error) *MigrationResult {
	m.logger.Errorf(providers.TypeApp, "Migration failed: %s", err)
	result.Success = false
	result.Message = "migration failed"
	result.Errors = append(result.Errors, err.Error())
	return result
}

func sortedKeys(m map[string]*models.StandRecord) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
