package testutil

import (
	"spd/internal/models"
	"spd/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// LevelCount returns how many entries were recorded at the given level.
func (m *MockLogger) LevelCount(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu           sync.Mutex
	Requests     int
	CacheHits    int
	CacheMisses  int
	Persists     int
	RecordCounts map[string]int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{RecordCounts: make(map[string]int)}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persists++
}

func (m *MockMetrics) SetRecordsTotal(namespace string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordCounts[namespace] = count
}

// MockCompressor is an identity compressor.
type MockCompressor struct{}

func (m *MockCompressor) Compress(val []byte) ([]byte, error)   { return val, nil }
func (m *MockCompressor) Decompress(val []byte) ([]byte, error) { return val, nil }
func (m *MockCompressor) Close()                                {}

// MockStandService implements services.StandServiceInterface on plain maps.
type MockStandService struct {
	mu      sync.Mutex
	Stands  map[string]*models.StandRecord
	Counts  map[string]int
	Loc     *time.Location
	Err     error
	Allowed bool
	DenyMsg string

	SaveCalls   int
	AwakenCalls int
	RecordCalls int
}

func NewMockStandService() *MockStandService {
	return &MockStandService{
		Stands:  make(map[string]*models.StandRecord),
		Counts:  make(map[string]int),
		Loc:     time.UTC,
		Allowed: true,
	}
}

func (m *MockStandService) SaveStand(ownerID, abilities, name, method string) (*models.StandRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	rec := &models.StandRecord{
		Abilities:         abilities,
		Name:              name,
		CreatedAt:         "2025-01-01 12:00:00",
		AcquisitionMethod: method,
	}
	m.Stands[ownerID] = rec
	return rec, nil
}

func (m *MockStandService) GetStand(ownerID string) (*models.StandRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Stands[ownerID], nil
}

func (m *MockStandService) AwakenStand(ownerID, name string) (*models.StandRecord, error) {
	m.mu.Lock()
	m.AwakenCalls++
	m.mu.Unlock()
	return m.SaveStand(ownerID, "5,4,3,2,1,5", name, models.MethodAwaken)
}

func (m *MockStandService) RollAbilities() string {
	return "5,4,3,2,1,5"
}

func (m *MockStandService) RecordAwaken(ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordCalls++
	if m.Err != nil {
		return m.Err
	}
	m.Counts[ownerID]++
	return nil
}

func (m *MockStandService) CheckAwakenLimit(_ string, _ int) (bool, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Allowed, m.DenyMsg
}

func (m *MockStandService) TodayAwakenCount(ownerID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Counts[ownerID]
}

func (m *MockStandService) Location() *time.Location {
	return m.Loc
}
