package services

import (
	"errors"
	"fmt"
	"luckypick/internal/generator"
	"luckypick/internal/models"
	"luckypick/internal/providers"
	"luckypick/internal/storage/interfaces"
	"sync"
	"time"
)

type LotteryServiceInterface interface {
	Restore()
	Generate(count int, kind models.Kind) (*models.Batch, error)
	LastBatch() *models.Batch
	Save(batchID string, index int) (models.LotteryResult, error)
	Delete(index int) error
	Clear()
	Saved() models.History
	Stats() StatsSnapshot
	FrequencyReport() models.FrequencyReport
	Analyze(index int) (models.CombinationAnalysis, error)
	Premium(index int) (models.PremiumAnalysis, error)
	Simulation() (models.Simulation, error)
	Fixed() models.FixedSelection
	ToggleFixed(n int) (models.FixedSelection, error)
	ClearFixed()
	Theme() models.Theme
	SetTheme(theme models.Theme) error
	Revision() uint64
	Flush() error
	PersistAll() error
	Pending() int
}

// StatsSnapshot is what the statistics view renders.
type StatsSnapshot struct {
	models.GenerationStats
	SavedCount int `json:"savedCount"`
}

type LotteryService struct {
	mu        sync.RWMutex
	state     models.State
	batch     *models.Batch
	fixed     models.FixedSelection
	revision  uint64
	dirty     map[string]struct{}
	generator *generator.Generator
	source    generator.Source
	store     interfaces.KeyValueStoreInterface
	formatter providers.FormatterInterface
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	now       func() time.Time
}

func NewLotteryService(
	gen *generator.Generator,
	source generator.Source,
	store interfaces.KeyValueStoreInterface,
	formatter providers.FormatterInterface,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) LotteryServiceInterface {
	return &LotteryService{
		state:     models.NewState(),
		dirty:     make(map[string]struct{}),
		generator: gen,
		source:    source,
		store:     store,
		formatter: formatter,
		logger:    logger,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Restore loads every persisted key. Missing keys keep their defaults; unreadable
// ones are logged and defaulted.
func (ls *LotteryService) Restore() {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	state := models.NewState()

	var saved models.History
	if ls.load(models.KeySaved, &saved) {
		state.Saved = validResults(saved, ls.logger)
	}

	var stats models.GenerationStats
	if ls.load(models.KeyStats, &stats) {
		if stats.TotalGenerated < 0 {
			stats.TotalGenerated = 0
		}
		state.Stats = stats.Clone()
	}

	var freq models.FrequencyTable
	if ls.load(models.KeyFrequency, &freq) {
		for n, c := range freq {
			if n < models.LottoMin || n > models.LottoMax || c < 0 {
				delete(freq, n)
			}
		}
		state.Frequency = freq
	}

	var theme models.Theme
	if ls.load(models.KeyTheme, &theme) {
		if theme.Valid() {
			state.Theme = theme
		} else {
			ls.logger.Warnf(providers.TypeStorage, "Ignoring unknown theme %q", theme)
		}
	}

	ls.state = state
	ls.revision++
	ls.metrics.SetSavedTotal(len(state.Saved))
	ls.logger.Infof(providers.TypeApp, "Restored %d saved results, %d generated sets", len(state.Saved), state.Stats.TotalGenerated)
}

func (ls *LotteryService) load(key string, dst any) bool {
	found, err := ls.store.Load(key, dst)
	if err != nil {
		ls.logger.Warnf(providers.TypeStorage, "Failed to load %s, using default: %v", key, err)
		return false
	}
	return found
}

func validResults(h models.History, logger providers.Logger) models.History {
	out := make(models.History, 0, len(h))
	for _, r := range h {
		if !r.Valid() {
			logger.Warnf(providers.TypeStorage, "Dropping malformed saved result of type %q", r.Kind)
			continue
		}
		out = append(out, r)
	}
	return out
}

// persist writes one key through. A failed key stays dirty until Flush succeeds;
// the in-memory state stays authoritative meanwhile.
func (ls *LotteryService) persist(key string, value any) {
	if err := ls.store.Save(key, value); err != nil {
		ls.dirty[key] = struct{}{}
		ls.logger.Errorf(providers.TypeStorage, "Failed to persist %s: %v", key, err)
		return
	}
	delete(ls.dirty, key)
}

func (ls *LotteryService) value(key string) any {
	switch key {
	case models.KeySaved:
		return ls.state.Saved
	case models.KeyStats:
		return ls.state.Stats
	case models.KeyFrequency:
		return ls.state.Frequency
	case models.KeyTheme:
		return ls.state.Theme
	}
	return nil
}

// Flush retries keys whose last write failed.
func (ls *LotteryService) Flush() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	var errs []error
	for key := range ls.dirty {
		if err := ls.store.Save(key, ls.value(key)); err != nil {
			errs = append(errs, err)
			continue
		}
		delete(ls.dirty, key)
		ls.logger.Infof(providers.TypeStorage, "Flushed pending key %s", key)
	}
	return errors.Join(errs...)
}

// PersistAll rewrites every key regardless of dirtiness.
func (ls *LotteryService) PersistAll() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	var errs []error
	for _, key := range []string{models.KeySaved, models.KeyStats, models.KeyFrequency, models.KeyTheme} {
		if err := ls.store.Save(key, ls.value(key)); err != nil {
			ls.dirty[key] = struct{}{}
			errs = append(errs, err)
			continue
		}
		delete(ls.dirty, key)
	}
	return errors.Join(errs...)
}

// Pending counts the keys waiting for a successful write.
func (ls *LotteryService) Pending() int {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return len(ls.dirty)
}

func (ls *LotteryService) Generate(count int, kind models.Kind) (*models.Batch, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	fixed := ls.fixed
	if kind != models.KindLotto {
		fixed = models.FixedSelection{}
	}
	batch, err := ls.generator.GenerateBatch(count, kind, fixed)
	if err != nil {
		return nil, err
	}

	ls.state.Stats = ls.state.Stats.RecordGeneration(len(batch.Results), ls.now(), ls.formatter)
	if kind == models.KindLotto {
		for _, r := range batch.Results {
			ls.state.Frequency = ls.state.Frequency.Update(r.Numbers)
		}
	}
	ls.batch = batch
	ls.revision++

	ls.persist(models.KeyStats, ls.state.Stats)
	if kind == models.KindLotto {
		ls.persist(models.KeyFrequency, ls.state.Frequency)
	}
	ls.metrics.AddGenerated(string(kind), len(batch.Results))

	return cloneBatch(batch), nil
}

func cloneBatch(b *models.Batch) *models.Batch {
	if b == nil {
		return nil
	}
	out := *b
	out.Results = make([]models.LotteryResult, len(b.Results))
	for i, r := range b.Results {
		out.Results[i] = r.Clone()
	}
	return &out
}

func (ls *LotteryService) LastBatch() *models.Batch {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return cloneBatch(ls.batch)
}

// Save stores entry index of the batch identified by batchID.
func (ls *LotteryService) Save(batchID string, index int) (models.LotteryResult, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if ls.batch == nil || ls.batch.ID != batchID {
		return models.LotteryResult{}, fmt.Errorf("batch %q: %w", batchID, models.ErrStaleBatch)
	}
	result, err := ls.batch.At(index)
	if err != nil {
		return models.LotteryResult{}, fmt.Errorf("batch entry %d: %w", index, err)
	}

	saved, err := ls.state.Saved.Save(result)
	if errors.Is(err, models.ErrDuplicate) {
		ls.metrics.IncSaves("duplicate")
		return result, err
	}
	ls.state.Saved = saved
	ls.revision++
	ls.persist(models.KeySaved, ls.state.Saved)
	ls.metrics.IncSaves("saved")
	ls.metrics.SetSavedTotal(len(ls.state.Saved))

	return result, nil
}

func (ls *LotteryService) Delete(index int) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	saved, err := ls.state.Saved.Delete(index)
	if err != nil {
		return err
	}
	ls.state.Saved = saved
	ls.revision++
	ls.persist(models.KeySaved, ls.state.Saved)
	ls.metrics.SetSavedTotal(len(ls.state.Saved))
	return nil
}

func (ls *LotteryService) Clear() {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	ls.state.Saved = ls.state.Saved.Clear()
	ls.revision++
	ls.persist(models.KeySaved, ls.state.Saved)
	ls.metrics.SetSavedTotal(0)
}

func (ls *LotteryService) Saved() models.History {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return ls.state.Saved.Clone()
}

func (ls *LotteryService) Stats() StatsSnapshot {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return StatsSnapshot{
		GenerationStats: ls.state.Stats.Clone(),
		SavedCount:      len(ls.state.Saved),
	}
}

func (ls *LotteryService) FrequencyReport() models.FrequencyReport {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return ls.state.Frequency.Report()
}

func (ls *LotteryService) entry(index int) (models.LotteryResult, error) {
	r, err := ls.batch.At(index)
	if err != nil {
		return models.LotteryResult{}, fmt.Errorf("batch entry %d: %w", index, err)
	}
	return r, nil
}

func (ls *LotteryService) Analyze(index int) (models.CombinationAnalysis, error) {
	ls.mu.RLock()
	defer ls.mu.RUnlock()

	r, err := ls.entry(index)
	if err != nil {
		return models.CombinationAnalysis{}, err
	}
	return models.AnalyzeResult(r)
}

func (ls *LotteryService) Premium(index int) (models.PremiumAnalysis, error) {
	ls.mu.RLock()
	defer ls.mu.RUnlock()

	r, err := ls.entry(index)
	if err != nil {
		return models.PremiumAnalysis{}, err
	}
	fortune := 0
	if n := ls.formatter.FortuneCount(); r.Kind == models.KindLotto && n > 0 {
		fortune = ls.source.IntN(n)
	}
	return models.AnalyzePremium(r, fortune), nil
}

func (ls *LotteryService) Simulation() (models.Simulation, error) {
	ls.mu.RLock()
	defer ls.mu.RUnlock()

	if ls.batch == nil || ls.batch.Kind != models.KindLotto {
		return models.Simulation{}, models.ErrNotLotto
	}
	return models.Simulate(), nil
}

func (ls *LotteryService) Fixed() models.FixedSelection {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return ls.fixed
}

func (ls *LotteryService) ToggleFixed(n int) (models.FixedSelection, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	next, err := ls.fixed.Toggle(n)
	if err != nil {
		return ls.fixed, err
	}
	ls.fixed = next
	ls.revision++
	return next, nil
}

func (ls *LotteryService) ClearFixed() {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.fixed = models.FixedSelection{}
	ls.revision++
}

func (ls *LotteryService) Theme() models.Theme {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return ls.state.Theme
}

func (ls *LotteryService) SetTheme(theme models.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("theme %q: %w", theme, models.ErrInvalidTheme)
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()

	ls.state.Theme = theme
	ls.revision++
	ls.persist(models.KeyTheme, ls.state.Theme)
	return nil
}

// Revision changes after every mutation.
func (ls *LotteryService) Revision() uint64 {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return ls.revision
}
