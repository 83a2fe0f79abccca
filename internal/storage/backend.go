package storage

import (
	"errors"
	"spd/internal/models"
)

// ErrNotFound reports clean absence of a record, as opposed to an I/O
// failure. Callers deciding fallback behavior must distinguish the two.
var ErrNotFound = errors.New("record not found")

// Backend is the persistence contract shared by the legacy single-blob
// store and the per-owner file store. Every put is a whole-record
// overwrite, atomic at the blob/file level.
type Backend interface {
	GetStand(ownerID string) (*models.StandRecord, error)
	PutStand(ownerID string, rec *models.StandRecord) error
	GetUsage(ownerID string) (models.UsageHistory, error)
	PutUsage(ownerID string, hist models.UsageHistory) error
}
