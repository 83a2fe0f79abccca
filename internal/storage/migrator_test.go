package storage

import (
	"os"
	"path/filepath"
	"spd/internal/models"
	"spd/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMigratorFixture(t *testing.T) (*LegacyStore, *FileStore, *Migrator) {
	t.Helper()
	legacy := newTestLegacyStore(t)
	files := newTestFileStore(t)
	m := NewMigrator(legacy, files, time.UTC, &testutil.MockLogger{})
	return legacy, files, m
}

func TestMigrator_NoFileStore(t *testing.T) {
	legacy := newTestLegacyStore(t)
	m := NewMigrator(legacy, nil, time.UTC, &testutil.MockLogger{})

	res := m.Run()
	assert.True(t, res.Success)
	assert.Zero(t, res.ProfilesMigrated)
	assert.Zero(t, res.UsageEntriesMigrated)
}

func TestMigrator_MigratesProfilesAndUsage(t *testing.T) {
	legacy, files, m := newMigratorFixture(t)
	require.NoError(t, legacy.PutStand("u1", &models.StandRecord{Abilities: "5,4,3,2,1,5", Name: "Golden Star"}))
	require.NoError(t, legacy.PutStand("u2", &models.StandRecord{Abilities: "1,1,1,1,1,1"}))
	require.NoError(t, legacy.PutUsage("u1", models.UsageHistory{
		"2025-01-01": {Count: 1, LastAwakenTime: "2025-01-01 09:00:00"},
		"2025-01-02": {Count: 2, LastAwakenTime: "2025-01-02 09:00:00"},
	}))

	res := m.Run()
	require.True(t, res.Success)
	assert.Equal(t, 2, res.ProfilesMigrated)
	assert.Equal(t, 2, res.UsageEntriesMigrated)
	assert.Empty(t, res.Errors)

	got, err := files.GetStand("u1")
	require.NoError(t, err)
	assert.Equal(t, "Golden Star", got.Name)

	hist, err := files.GetUsage("u1")
	require.NoError(t, err)
	assert.Len(t, hist, 2)

	status, err := files.ReadStatus()
	require.NoError(t, err)
	assert.True(t, status.MigrationCompleted)
	assert.NotEmpty(t, status.MigrationDate)
}

func TestMigrator_FileStoreWinsOnConflict(t *testing.T) {
	legacy, files, m := newMigratorFixture(t)
	require.NoError(t, files.PutStand("u1", &models.StandRecord{Abilities: "5,5,5,5,5,5", Name: "file copy"}))
	require.NoError(t, legacy.PutStand("u1", &models.StandRecord{Abilities: "1,1,1,1,1,1", Name: "legacy copy"}))

	require.NoError(t, files.PutUsage("u1", models.UsageHistory{
		"2025-01-01": {Count: 5, LastAwakenTime: "2025-01-01 20:00:00"},
	}))
	require.NoError(t, legacy.PutUsage("u1", models.UsageHistory{
		"2025-01-01": {Count: 1, LastAwakenTime: "2025-01-01 08:00:00"},
		"2024-12-31": {Count: 1, LastAwakenTime: "2024-12-31 08:00:00"},
	}))

	res := m.Run()
	require.True(t, res.Success)
	assert.Zero(t, res.ProfilesMigrated)
	assert.Equal(t, 1, res.UsageEntriesMigrated) // only the missing date merged

	got, err := files.GetStand("u1")
	require.NoError(t, err)
	assert.Equal(t, "file copy", got.Name)

	hist, err := files.GetUsage("u1")
	require.NoError(t, err)
	assert.Equal(t, 5, hist["2025-01-01"].Count)
	assert.Equal(t, 1, hist["2024-12-31"].Count)
}

func TestMigrator_Idempotent(t *testing.T) {
	legacy, files, m := newMigratorFixture(t)
	require.NoError(t, legacy.PutStand("u1", &models.StandRecord{Abilities: "5,4,3,2,1,5"}))
	require.NoError(t, legacy.PutUsage("u1", models.UsageHistory{"2025-01-01": {Count: 1}}))

	first := m.Run()
	require.True(t, first.Success)
	assert.Equal(t, 1, first.ProfilesMigrated)
	assert.Equal(t, 1, first.UsageEntriesMigrated)

	second := m.Run()
	require.True(t, second.Success)
	assert.Zero(t, second.ProfilesMigrated)
	assert.Zero(t, second.UsageEntriesMigrated)

	// a brand-new migrator over the same stores honors the persisted marker
	fresh := NewMigrator(legacy, files, time.UTC, &testutil.MockLogger{})
	third := fresh.Run()
	require.True(t, third.Success)
	assert.Zero(t, third.ProfilesMigrated)
	assert.Zero(t, third.UsageEntriesMigrated)
}

func TestMigrator_MarkerWrittenEvenWhenNothingToMigrate(t *testing.T) {
	_, files, m := newMigratorFixture(t)

	res := m.Run()
	require.True(t, res.Success)

	status, err := files.ReadStatus()
	require.NoError(t, err)
	assert.True(t, status.MigrationCompleted)
}

func TestMigrator_FailureKeepsMarkerUnset(t *testing.T) {
	legacy, files, m := newMigratorFixture(t)
	require.NoError(t, legacy.PutStand("u1", &models.StandRecord{Abilities: "5,4,3,2,1,5"}))

	// make profile writes impossible
	require.NoError(t, os.RemoveAll(files.profilesDir))
	require.NoError(t, os.WriteFile(files.profilesDir, []byte("x"), 0644))

	res := m.Run()
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Errors)

	_, err := files.ReadStatus()
	assert.ErrorIs(t, err, ErrNotFound)

	// once the environment recovers, a re-run succeeds
	require.NoError(t, os.Remove(files.profilesDir))
	require.NoError(t, os.MkdirAll(files.profilesDir, 0755))

	res = m.Run()
	require.True(t, res.Success)
	assert.Equal(t, 1, res.ProfilesMigrated)
}

func TestMigrator_PartialCountsOnFailure(t *testing.T) {
	legacy, files, m := newMigratorFixture(t)
	require.NoError(t, legacy.PutStand("u1", &models.StandRecord{Abilities: "5,4,3,2,1,5"}))
	require.NoError(t, legacy.PutUsage("u1", models.UsageHistory{"2025-01-01": {Count: 1}}))

	// profiles migrate fine, usage writes fail
	require.NoError(t, os.RemoveAll(files.usageDir))
	require.NoError(t, os.WriteFile(files.usageDir, []byte("x"), 0644))

	res := m.Run()
	assert.False(t, res.Success)
	assert.Equal(t, 1, res.ProfilesMigrated)
	assert.Zero(t, res.UsageEntriesMigrated)
	assert.NotEmpty(t, res.Errors)
}

func TestMigrator_StatusPath(t *testing.T) {
	_, files, m := newMigratorFixture(t)
	res := m.Run()
	require.True(t, res.Success)

	_, err := os.Stat(filepath.Join(files.root, statusFileName))
	assert.NoError(t, err)
}
