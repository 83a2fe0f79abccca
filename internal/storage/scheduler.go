package storage

import (
	"fmt"
	"spd/internal/providers"
	"spd/internal/storage/interfaces"
	"spd/internal/structures"
	"strings"
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

// Scheduler owns the store lifecycle: legacy blob load plus migration on
// Restore, periodic records-gauge refresh while running, legacy blob flush
// on Persist.
type Scheduler struct {
	config   *structures.Config
	logger   providers.Logger
	legacy   *LegacyStore
	files    *FileStore
	migrator *Migrator
	metrics  providers.MetricsProviderInterface
	cron     *gron.Cron
	opsMu    sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	interval := s.config.Metrics.Interval
	if interval <= 0 {
		interval = time.Minute
	}

	s.cron.AddFunc(gron.Every(interval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()
		s.refreshGauges()
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	if err := s.legacy.Load(); err != nil {
		return err
	}

	result := s.migrator.Run()
	if !result.Success {
		return fmt.Errorf("migration: %s", strings.Join(result.Errors, "; "))
	}
	if result.ProfilesMigrated > 0 || result.UsageEntriesMigrated > 0 {
		s.logger.Infof(providers.TypeApp, "Restored legacy data, %s", result.Message)
	}
	s.refreshGauges()
	return nil
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting legacy store...")
	err := s.legacy.Flush()
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

func (s *Scheduler) refreshGauges() {
	stands, usage := s.legacy.Counts()
	s.metrics.SetRecordsTotal("legacy_stands", stands)
	s.metrics.SetRecordsTotal("legacy_usage", usage)

	if s.files != nil {
		stands, usage = s.files.Counts()
		s.metrics.SetRecordsTotal("file_stands", stands)
		s.metrics.SetRecordsTotal("file_usage", usage)
	}
}

func NewScheduler(config *structures.Config, logger providers.Logger, legacy *LegacyStore, files *FileStore, migrator *Migrator, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:   config,
		logger:   logger,
		legacy:   legacy,
		files:    files,
		migrator: migrator,
		metrics:  metrics,
	}
}
