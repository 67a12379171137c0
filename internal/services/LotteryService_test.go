package services

import (
	"errors"
	"luckypick/internal/generator"
	"luckypick/internal/models"
	"luckypick/internal/providers"
	"luckypick/internal/structures"
	"luckypick/internal/testutil"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc     *LotteryService
	store   *testutil.MockStore
	logger  *testutil.MockLogger
	metrics *testutil.MockMetrics
}

// fortunes feeds Premium; draws always come from a seeded PCG.
func newFixture(t *testing.T, store *testutil.MockStore, fortunes generator.Source) fixture {
	t.Helper()
	if store == nil {
		store = testutil.NewMockStore()
	}
	if fortunes == nil {
		fortunes = rand.New(rand.NewPCG(1, 2))
	}
	conf := &structures.Config{Locale: "en", Generator: structures.GeneratorConfig{MaxSets: 20}}
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	svc := NewLotteryService(
		generator.NewGenerator(rand.New(rand.NewPCG(7, 8)), conf),
		fortunes,
		store,
		providers.NewFormatterProvider(conf),
		logger,
		metrics,
	).(*LotteryService)
	return fixture{svc: svc, store: store, logger: logger, metrics: metrics}
}

func TestGenerate_LottoUpdatesStatsAndFrequency(t *testing.T) {
	f := newFixture(t, nil, nil)

	batch, err := f.svc.Generate(5, models.KindLotto)
	require.NoError(t, err)
	require.Len(t, batch.Results, 5)
	for _, r := range batch.Results {
		assert.True(t, r.Valid())
	}

	stats := f.svc.Stats()
	assert.Equal(t, 5, stats.TotalGenerated)
	assert.Len(t, stats.GenerationDates, 1)
	assert.NotEmpty(t, stats.LuckyDayOfWeek)

	total := 0
	for _, row := range f.svc.FrequencyReport().Numbers {
		total += row.Count
	}
	assert.Equal(t, 5*models.LottoPicks, total)

	assert.Equal(t, 1, f.store.Saves(models.KeyStats))
	assert.Equal(t, 1, f.store.Saves(models.KeyFrequency))
	assert.Equal(t, 5, f.metrics.Generated["lotto"])
}

func TestGenerate_PensionLeavesFrequency(t *testing.T) {
	f := newFixture(t, nil, nil)

	batch, err := f.svc.Generate(3, models.KindPension)
	require.NoError(t, err)
	for _, r := range batch.Results {
		assert.Equal(t, models.KindPension, r.Kind)
		assert.True(t, r.Valid())
	}

	assert.Equal(t, 3, f.svc.Stats().TotalGenerated)
	assert.Zero(t, f.svc.FrequencyReport().Max)
	assert.Zero(t, f.store.Saves(models.KeyFrequency))
}

func TestGenerate_InvalidCountLeavesState(t *testing.T) {
	f := newFixture(t, nil, nil)
	rev := f.svc.Revision()

	for _, count := range []int{0, -1, 21} {
		_, err := f.svc.Generate(count, models.KindLotto)
		assert.True(t, errors.Is(err, models.ErrInvalidCount), "count %d", count)
	}
	_, err := f.svc.Generate(1, models.Kind("keno"))
	assert.True(t, errors.Is(err, models.ErrInvalidSelection))

	assert.Equal(t, rev, f.svc.Revision())
	assert.Zero(t, f.svc.Stats().TotalGenerated)
	assert.Nil(t, f.svc.LastBatch())
}

func TestGenerate_UsesPinnedNumbersForLottoOnly(t *testing.T) {
	f := newFixture(t, nil, nil)
	for _, n := range []int{3, 33, 45} {
		_, err := f.svc.ToggleFixed(n)
		require.NoError(t, err)
	}

	batch, err := f.svc.Generate(10, models.KindLotto)
	require.NoError(t, err)
	for _, r := range batch.Results {
		assert.Subset(t, r.Numbers, []int{3, 33, 45})
	}

	_, err = f.svc.Generate(2, models.KindPension)
	assert.NoError(t, err)
}

func TestToggleFixed(t *testing.T) {
	f := newFixture(t, nil, nil)

	for _, n := range []int{1, 2, 3, 4, 5, 6} {
		_, err := f.svc.ToggleFixed(n)
		require.NoError(t, err)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, f.svc.Fixed().Numbers())

	sel, err := f.svc.ToggleFixed(3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4, 5}, sel.Numbers())

	_, err = f.svc.ToggleFixed(46)
	assert.True(t, errors.Is(err, models.ErrInvalidSelection))

	f.svc.ClearFixed()
	assert.Zero(t, f.svc.Fixed().Len())
}

func TestSave_PrependsAndDedupes(t *testing.T) {
	f := newFixture(t, nil, nil)
	batch, err := f.svc.Generate(2, models.KindLotto)
	require.NoError(t, err)

	first, err := f.svc.Save(batch.ID, 0)
	require.NoError(t, err)
	second, err := f.svc.Save(batch.ID, 1)
	require.NoError(t, err)

	saved := f.svc.Saved()
	require.Len(t, saved, 2)
	assert.True(t, saved[0].SameDraw(second))
	assert.True(t, saved[1].SameDraw(first))

	_, err = f.svc.Save(batch.ID, 0)
	assert.True(t, errors.Is(err, models.ErrDuplicate))
	assert.Len(t, f.svc.Saved(), 2)

	assert.Equal(t, 2, f.metrics.SaveOutcomes["saved"])
	assert.Equal(t, 1, f.metrics.SaveOutcomes["duplicate"])
	assert.Equal(t, 2, f.metrics.SavedTotal)
	assert.Equal(t, 2, f.svc.Stats().SavedCount)
}

func TestSave_StaleBatchAndBadIndex(t *testing.T) {
	f := newFixture(t, nil, nil)

	_, err := f.svc.Save("nope", 0)
	assert.True(t, errors.Is(err, models.ErrStaleBatch))

	old, err := f.svc.Generate(1, models.KindLotto)
	require.NoError(t, err)
	_, err = f.svc.Generate(1, models.KindLotto)
	require.NoError(t, err)

	_, err = f.svc.Save(old.ID, 0)
	assert.True(t, errors.Is(err, models.ErrStaleBatch))

	current := f.svc.LastBatch()
	_, err = f.svc.Save(current.ID, 1)
	assert.True(t, errors.Is(err, models.ErrIndexOutOfRange))
	assert.Empty(t, f.svc.Saved())
}

func TestDeleteAndClear(t *testing.T) {
	f := newFixture(t, nil, nil)
	batch, err := f.svc.Generate(3, models.KindPension)
	require.NoError(t, err)
	for i := range batch.Results {
		_, _ = f.svc.Save(batch.ID, i)
	}
	before := f.svc.Saved()

	err = f.svc.Delete(len(before))
	assert.True(t, errors.Is(err, models.ErrIndexOutOfRange))
	assert.Equal(t, before, f.svc.Saved())

	require.NoError(t, f.svc.Delete(0))
	assert.Equal(t, before[1:], f.svc.Saved())

	f.svc.Clear()
	assert.Empty(t, f.svc.Saved())
	assert.Zero(t, f.metrics.SavedTotal)
}

func TestLastBatch_ReturnsCopy(t *testing.T) {
	f := newFixture(t, nil, nil)
	_, err := f.svc.Generate(1, models.KindLotto)
	require.NoError(t, err)

	b := f.svc.LastBatch()
	b.Results[0].Numbers[0] = 99
	assert.True(t, f.svc.LastBatch().Results[0].Valid())
}

func TestRestore_Roundtrip(t *testing.T) {
	store := testutil.NewMockStore()
	f := newFixture(t, store, nil)

	batch, err := f.svc.Generate(4, models.KindLotto)
	require.NoError(t, err)
	_, err = f.svc.Save(batch.ID, 2)
	require.NoError(t, err)
	require.NoError(t, f.svc.SetTheme(models.ThemeLight))

	restored := newFixture(t, store, nil)
	restored.svc.Restore()

	assert.Equal(t, f.svc.Saved(), restored.svc.Saved())
	assert.Equal(t, f.svc.FrequencyReport(), restored.svc.FrequencyReport())
	assert.Equal(t, models.ThemeLight, restored.svc.Theme())

	want, got := f.svc.Stats(), restored.svc.Stats()
	assert.Equal(t, want.TotalGenerated, got.TotalGenerated)
	assert.Equal(t, want.LuckyDayOfWeek, got.LuckyDayOfWeek)
	require.Len(t, got.GenerationDates, 1)
	assert.True(t, want.GenerationDates[0].Date.Equal(got.GenerationDates[0].Date))
}

func TestRestore_DefaultsWhenEmpty(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.svc.Restore()

	assert.Empty(t, f.svc.Saved())
	assert.Zero(t, f.svc.Stats().TotalGenerated)
	assert.Equal(t, models.ThemeDark, f.svc.Theme())
	assert.Zero(t, f.logger.Count("warn"))
}

func TestRestore_CorruptKeysFallBack(t *testing.T) {
	store := testutil.NewMockStore()
	store.Put(models.KeySaved, []byte("{not json"))
	store.Put(models.KeyTheme, []byte(`"purple"`))
	store.Put(models.KeyFrequency, []byte(`{"7":2,"99":4}`))

	f := newFixture(t, store, nil)
	f.svc.Restore()

	assert.Empty(t, f.svc.Saved())
	assert.Equal(t, models.ThemeDark, f.svc.Theme())
	report := f.svc.FrequencyReport()
	assert.Equal(t, 2, report.Numbers[6].Count)
	assert.Equal(t, 2, report.Max)
	assert.Equal(t, 2, f.logger.Count("warn"))
}

func TestRestore_DropsMalformedResults(t *testing.T) {
	store := testutil.NewMockStore()
	store.Put(models.KeySaved, []byte(`[
		{"type":"lotto","numbers":[1,2,3,4,5,6],"timestamp":1},
		{"type":"lotto","numbers":[1,2,3],"timestamp":2},
		{"type":"pension","data":{"group":2,"numbers":[1,1,1,1,1,1]},"timestamp":3}
	]`))

	f := newFixture(t, store, nil)
	f.svc.Restore()

	saved := f.svc.Saved()
	require.Len(t, saved, 2)
	assert.Equal(t, models.KindLotto, saved[0].Kind)
	assert.Equal(t, models.KindPension, saved[1].Kind)
}

func TestPersistFailureKeepsMemoryState(t *testing.T) {
	store := testutil.NewMockStore()
	store.SaveErr = models.ErrStorageUnavailable
	f := newFixture(t, store, nil)

	batch, err := f.svc.Generate(1, models.KindLotto)
	require.NoError(t, err)
	_, err = f.svc.Save(batch.ID, 0)
	require.NoError(t, err)

	assert.Len(t, f.svc.Saved(), 1)
	assert.Equal(t, 3, f.logger.Count("error"))
}

func TestStats_LuckyDayTieGoesToEarlierWeekday(t *testing.T) {
	f := newFixture(t, nil, nil)
	days := []time.Time{
		time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC), // Wednesday
		time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC), // Sunday
	}
	for _, d := range days {
		f.svc.now = func() time.Time { return d }
		_, err := f.svc.Generate(1, models.KindPension)
		require.NoError(t, err)
	}
	assert.Equal(t, "Sunday", f.svc.Stats().LuckyDayOfWeek)

	f.svc.now = func() time.Time { return days[0] }
	_, err := f.svc.Generate(1, models.KindPension)
	require.NoError(t, err)
	assert.Equal(t, "Wednesday", f.svc.Stats().LuckyDayOfWeek)
}

func TestAnalyze(t *testing.T) {
	f := newFixture(t, nil, nil)

	_, err := f.svc.Analyze(0)
	assert.True(t, errors.Is(err, models.ErrIndexOutOfRange))

	batch, err := f.svc.Generate(1, models.KindLotto)
	require.NoError(t, err)
	a, err := f.svc.Analyze(0)
	require.NoError(t, err)
	assert.Equal(t, models.LottoPicks, a.OddCount+a.EvenCount)
	assert.Equal(t, batch.Results[0].Numbers[0], a.Min)

	_, err = f.svc.Generate(1, models.KindPension)
	require.NoError(t, err)
	_, err = f.svc.Analyze(0)
	assert.True(t, errors.Is(err, models.ErrNotLotto))
}

func TestPremium_FortuneFromSource(t *testing.T) {
	f := newFixture(t, nil, &testutil.SeqSource{Values: []int{3}})

	_, err := f.svc.Generate(1, models.KindLotto)
	require.NoError(t, err)
	p, err := f.svc.Premium(0)
	require.NoError(t, err)
	require.NotNil(t, p.Lotto)
	assert.Equal(t, 3, p.Fortune)

	_, err = f.svc.Generate(1, models.KindPension)
	require.NoError(t, err)
	p, err = f.svc.Premium(0)
	require.NoError(t, err)
	assert.Nil(t, p.Lotto)
	assert.NotNil(t, p.Pension)
	assert.Zero(t, p.Fortune)
}

func TestSimulation_OnlyForLottoBatch(t *testing.T) {
	f := newFixture(t, nil, nil)

	_, err := f.svc.Simulation()
	assert.True(t, errors.Is(err, models.ErrNotLotto))

	_, err = f.svc.Generate(1, models.KindLotto)
	require.NoError(t, err)
	sim, err := f.svc.Simulation()
	require.NoError(t, err)
	assert.Len(t, sim.Tiers, 5)

	_, err = f.svc.Generate(1, models.KindPension)
	require.NoError(t, err)
	_, err = f.svc.Simulation()
	assert.True(t, errors.Is(err, models.ErrNotLotto))
}

func TestSetTheme(t *testing.T) {
	f := newFixture(t, nil, nil)
	rev := f.svc.Revision()

	err := f.svc.SetTheme("sepia")
	assert.True(t, errors.Is(err, models.ErrInvalidTheme))
	assert.Equal(t, rev, f.svc.Revision())

	require.NoError(t, f.svc.SetTheme(models.ThemeLight))
	assert.Equal(t, models.ThemeLight, f.svc.Theme())
	assert.Greater(t, f.svc.Revision(), rev)
	assert.Equal(t, 1, f.store.Saves(models.KeyTheme))
}

func TestConcurrentGenerateAndSave(t *testing.T) {
	f := newFixture(t, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			batch, err := f.svc.Generate(2, models.KindLotto)
			if err != nil {
				return
			}
			_, _ = f.svc.Save(batch.ID, 0)
			_ = f.svc.Stats()
			_ = f.svc.FrequencyReport()
		}()
	}
	wg.Wait()

	assert.Equal(t, 32, f.svc.Stats().TotalGenerated)
	total := 0
	for _, row := range f.svc.FrequencyReport().Numbers {
		total += row.Count
	}
	assert.Equal(t, 32*models.LottoPicks, total)
}

func TestFlush_RetriesFailedKeys(t *testing.T) {
	store := testutil.NewMockStore()
	store.SaveErr = models.ErrStorageUnavailable
	f := newFixture(t, store, nil)

	_, err := f.svc.Generate(2, models.KindLotto)
	require.NoError(t, err)
	require.NoError(t, f.svc.SetTheme(models.ThemeLight))
	assert.Equal(t, 3, f.svc.Pending())

	assert.Error(t, f.svc.Flush())
	assert.Equal(t, 3, f.svc.Pending())

	store.SaveErr = nil
	require.NoError(t, f.svc.Flush())
	assert.Zero(t, f.svc.Pending())

	var theme models.Theme
	found, err := store.Load(models.KeyTheme, &theme)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, models.ThemeLight, theme)
}

func TestPersistAll_WritesEveryKey(t *testing.T) {
	f := newFixture(t, nil, nil)
	require.NoError(t, f.svc.PersistAll())

	for _, key := range []string{models.KeySaved, models.KeyStats, models.KeyFrequency, models.KeyTheme} {
		assert.Equal(t, 1, f.store.Saves(key), key)
	}

	restored := newFixture(t, f.store, nil)
	restored.svc.Restore()
	assert.Equal(t, models.ThemeDark, restored.svc.Theme())
	assert.Empty(t, restored.svc.Saved())
}
