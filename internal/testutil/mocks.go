package testutil

import (
	"fmt"
	"luckypick/internal/models"
	"luckypick/internal/providers"
	"sync"
	"time"

	json "github.com/goccy/go-json"
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

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockStore is an in-memory key-value store holding JSON documents.
type MockStore struct {
	mu       sync.Mutex
	Data     map[string][]byte
	SaveErr  error
	LoadErr  error
	SaveKeys []string
}

func NewMockStore() *MockStore {
	return &MockStore{Data: make(map[string][]byte)}
}

func (m *MockStore) Load(key string, dst any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return false, m.LoadErr
	}
	raw, ok := m.Data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w: %v", key, models.ErrStorageCorrupt, err)
	}
	return true, nil
}

func (m *MockStore) Save(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveKeys = append(m.SaveKeys, key)
	if m.SaveErr != nil {
		return m.SaveErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.Data[key] = raw
	return nil
}

// Put stores raw bytes for key, bypassing encoding.
func (m *MockStore) Put(key string, raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = raw
}

func (m *MockStore) Saves(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, k := range m.SaveKeys {
		if k == key {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu            sync.Mutex
	Requests      int
	CacheHits     int
	CacheMisses   int
	Persists      int
	StorageErrors map[string]int
	Generated     map[string]int
	SaveOutcomes  map[string]int
	SavedTotal    int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		StorageErrors: make(map[string]int),
		Generated:     make(map[string]int),
		SaveOutcomes:  make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses(_ string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persists++
}
func (m *MockMetrics) IncStorageErrors(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StorageErrors[op]++
}
func (m *MockMetrics) AddGenerated(kind string, sets int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Generated[kind] += sets
}
func (m *MockMetrics) IncSaves(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveOutcomes[outcome]++
}
func (m *MockMetrics) SetSavedTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SavedTotal = count
}

// SeqSource replays Values through IntN, wrapping around.
type SeqSource struct {
	mu     sync.Mutex
	Values []int
	pos    int
}

func (s *SeqSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.pos%len(s.Values)]
	s.pos++
	return v % n
}
