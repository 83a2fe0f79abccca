package services

import (
	"errors"
	"fmt"
	"math/rand"
	"spd/internal/models"
	"spd/internal/providers"
	"spd/internal/storage"
	"sync"
	"time"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	dateLayout      = "2006-01-02"

	// MsgSystemUnavailable is the generic user-facing storage failure text.
	MsgSystemUnavailable = "System temporarily unavailable, please try again later."
	// MsgAwakenDisabled is returned when the daily limit is configured to 0.
	MsgAwakenDisabled = "Awakening has been disabled by the administrator."
)

type StandServiceInterface interface {
	SaveStand(ownerID, abilities, name, method string) (*models.StandRecord, error)
	GetStand(ownerID string) (*models.StandRecord, error)
	AwakenStand(ownerID, name string) (*models.StandRecord, error)
	RollAbilities() string
	RecordAwaken(ownerID string) error
	CheckAwakenLimit(ownerID string, dailyLimit int) (bool, string)
	TodayAwakenCount(ownerID string) int
	Location() *time.Location
}

// StandService is the persistence façade. The backend variant is selected
// once at construction: files is nil in legacy-only mode, otherwise writes
// go file-first with an explicit fallback to the legacy blob, so an I/O
// failure on one backend never loses an update.
type StandService struct {
	legacy storage.Backend
	files  storage.Backend
	loc    *time.Location
	logger providers.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
	now   func() time.Time
}

func NewStandService(legacy *storage.LegacyStore, files *storage.FileStore, loc *time.Location, logger providers.Logger) StandServiceInterface {
	s := newStandService(legacy, nil, loc, logger)
	if files != nil {
		s.files = files
	}
	return s
}

func newStandService(legacy, files storage.Backend, loc *time.Location, logger providers.Logger) *StandService {
	return &StandService{
		legacy: legacy,
		files:  files,
		loc:    loc,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
}

func (s *StandService) Location() *time.Location {
	return s.loc
}

// SaveStand writes a whole new record for the owner. File store first when
// configured; on write failure the update falls back to the legacy blob
// and only a failure of both paths surfaces as an error.
func (s *StandService) SaveStand(ownerID, abilities, name, method string) (*models.StandRecord, error) {
	rec := &models.StandRecord{
		Abilities:         abilities,
		Name:              name,
		CreatedAt:         s.now().In(s.loc).Format(timestampLayout),
		AcquisitionMethod: method,
	}

	if s.files != nil {
		err := s.files.PutStand(ownerID, rec)
		if err == nil {
			return rec, nil
		}
		s.logger.Warnf(providers.TypeApp, "File store write failed for %s, falling back to legacy: %s", ownerID, err)
	}

	if err := s.legacy.PutStand(ownerID, rec); err != nil {
		return nil, fmt.Errorf("saving stand of %s: %w", ownerID, err)
	}
	return rec, nil
}

// GetStand returns the owner's record or (nil, nil) when none exists in
// either backend. Read failures on the file store fall back to legacy.
func (s *StandService) GetStand(ownerID string) (*models.StandRecord, error) {
	if s.files != nil {
		rec, err := s.files.GetStand(ownerID)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warnf(providers.TypeApp, "File store read failed for %s, falling back to legacy: %s", ownerID, err)
		}
	}

	rec, err := s.legacy.GetStand(ownerID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading stand of %s: %w", ownerID, err)
	}
	return rec, nil
}

// AwakenStand replaces the owner's stand with freshly rolled abilities.
func (s *StandService) AwakenStand(ownerID, name string) (*models.StandRecord, error) {
	return s.SaveStand(ownerID, s.RollAbilities(), name, models.MethodAwaken)
}

// RollAbilities draws a random canonical ability string without saving.
func (s *StandService) RollAbilities() string {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return models.RandomAbilities(s.rng)
}

// RecordAwaken increments today's counter and stamps the action time.
// The read-modify-write runs wholly against one backend; on file store
// failure it is redone against the legacy blob.
func (s *StandService) RecordAwaken(ownerID string) error {
	now := s.now().In(s.loc)

	if s.files != nil {
		err := recordAwakenOn(s.files, ownerID, now)
		if err == nil {
			return nil
		}
		s.logger.Warnf(providers.TypeApp, "File store usage write failed for %s, falling back to legacy: %s", ownerID, err)
	}

	if err := recordAwakenOn(s.legacy, ownerID, now); err != nil {
		return fmt.Errorf("recording awaken of %s: %w", ownerID, err)
	}
	return nil
}

// CheckAwakenLimit gates a reawaken against the daily limit. 0 disables
// the feature, -1 lifts the limit. When every read path fails the check
// fails closed: quota correctness outranks availability.
func (s *StandService) CheckAwakenLimit(ownerID string, dailyLimit int) (bool, string) {
	if dailyLimit == 0 {
		return false, MsgAwakenDisabled
	}
	if dailyLimit == -1 {
		return true, ""
	}

	now := s.now().In(s.loc)
	rec, err := s.todayRecord(ownerID, now)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Quota read failed for %s, denying: %s", ownerID, err)
		return false, MsgSystemUnavailable
	}
	if rec == nil || rec.Count < dailyLimit {
		return true, ""
	}

	lastTime := rec.LastAwakenTime
	if lastTime == "" {
		lastTime = "an unknown time"
	}
	tomorrow := now.AddDate(0, 0, 1).Format(dateLayout)
	return false, fmt.Sprintf(
		"Daily awaken limit reached: you already reawakened at %s. The limit is %d per day, try again tomorrow (%s).",
		lastTime, dailyLimit, tomorrow,
	)
}

// TodayAwakenCount reports today's usage, 0 when absent or unreadable.
func (s *StandService) TodayAwakenCount(ownerID string) int {
	rec, err := s.todayRecord(ownerID, s.now().In(s.loc))
	if err != nil || rec == nil {
		return 0
	}
	return rec.Count
}

// todayRecord resolves today's usage entry through the backend chain.
// Clean absence anywhere is (nil, nil); an error means both paths failed.
func (s *StandService) todayRecord(ownerID string, now time.Time) (*models.AwakenRecord, error) {
	today := now.Format(dateLayout)

	var fileErr error
	if s.files != nil {
		hist, err := s.files.GetUsage(ownerID)
		switch {
		case err == nil:
			return hist[today], nil
		case errors.Is(err, storage.ErrNotFound):
			// fall through to legacy
		default:
			fileErr = err
		}
	}

	hist, err := s.legacy.GetUsage(ownerID)
	if errors.Is(err, storage.ErrNotFound) {
		if fileErr != nil {
			// the file read failed and legacy holds nothing to confirm
			// the count either way
			return nil, fileErr
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return hist[today], nil
}

func recordAwakenOn(b storage.Backend, ownerID string, now time.Time) error {
	hist, err := b.GetUsage(ownerID)
	if errors.Is(err, storage.ErrNotFound) {
		hist = models.UsageHistory{}
	} else if err != nil {
		return err
	}

	today := now.Format(dateLayout)
	rec := hist[today]
	if rec == nil {
		rec = &models.AwakenRecord{}
		hist[today] = rec
	}
	rec.Count++
	rec.LastAwakenTime = now.Format(timestampLayout)

	return b.PutUsage(ownerID, hist)
}
