// Package generator draws lotto and pension results.
package generator

import (
	"fmt"
	"luckypick/internal/models"
	"luckypick/internal/structures"
	"slices"
	"time"

	"github.com/google/uuid"
)

const DefaultMaxSets = 100

// Source is the uniform integer source behind every draw. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type Generator struct {
	source  Source
	maxSets int
	now     func() time.Time
}

func NewGenerator(source Source, conf *structures.Config) *Generator {
	maxSets := conf.Generator.MaxSets
	if maxSets <= 0 {
		maxSets = DefaultMaxSets
	}
	return &Generator{
		source:  source,
		maxSets: maxSets,
		now:     time.Now,
	}
}

func (g *Generator) MaxSets() int {
	return g.maxSets
}

// GenerateLotto keeps the pinned numbers and fills the rest with uniform draws
// from 1..45, rejecting repeats. The result is sorted ascending.
func (g *Generator) GenerateLotto(fixed models.FixedSelection) []int {
	numbers := make([]int, 0, models.LottoPicks)
	numbers = append(numbers, fixed.Numbers()...)
	for len(numbers) < models.LottoPicks {
		n := g.source.IntN(models.LottoMax) + models.LottoMin
		if !slices.Contains(numbers, n) {
			numbers = append(numbers, n)
		}
	}
	slices.Sort(numbers)
	return numbers
}

// GeneratePension draws a group in 1..5 and six independent digits.
func (g *Generator) GeneratePension() models.PensionDraw {
	draw := models.PensionDraw{
		Group:  g.source.IntN(models.PensionGroups) + 1,
		Digits: make([]int, models.PensionDigits),
	}
	for i := range draw.Digits {
		draw.Digits[i] = g.source.IntN(10)
	}
	return draw
}

// GenerateBatch produces count independent results as one generation event.
func (g *Generator) GenerateBatch(count int, kind models.Kind, fixed models.FixedSelection) (*models.Batch, error) {
	if count < 1 || count > g.maxSets {
		return nil, fmt.Errorf("count %d not in 1..%d: %w", count, g.maxSets, models.ErrInvalidCount)
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown lottery type %q: %w", kind, models.ErrInvalidSelection)
	}
	if err := fixed.Validate(); err != nil {
		return nil, err
	}

	at := g.now()
	batch := &models.Batch{
		ID:        uuid.NewString(),
		Kind:      kind,
		CreatedAt: at,
		Results:   make([]models.LotteryResult, 0, count),
	}
	for i := 0; i < count; i++ {
		if kind == models.KindLotto {
			batch.Results = append(batch.Results, models.NewLottoResult(g.GenerateLotto(fixed), at))
			continue
		}
		draw := g.GeneratePension()
		batch.Results = append(batch.Results, models.NewPensionResult(draw.Group, draw.Digits, at))
	}
	return batch, nil
}
