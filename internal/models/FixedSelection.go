package models

import (
	"fmt"
	"slices"
)

// FixedSelection holds the numbers pinned into every lotto draw.
type FixedSelection struct {
	numbers []int
}

func NewFixedSelection(numbers ...int) (FixedSelection, error) {
	fs := FixedSelection{numbers: slices.Clone(numbers)}
	slices.Sort(fs.numbers)
	if err := fs.Validate(); err != nil {
		return FixedSelection{}, err
	}
	return fs, nil
}

func (fs FixedSelection) Validate() error {
	if len(fs.numbers) > MaxFixedNumbers {
		return fmt.Errorf("%d pinned numbers, at most %d allowed: %w", len(fs.numbers), MaxFixedNumbers, ErrInvalidSelection)
	}
	seen := make(map[int]struct{}, len(fs.numbers))
	for _, n := range fs.numbers {
		if n < LottoMin || n > LottoMax {
			return fmt.Errorf("pinned number %d out of range: %w", n, ErrInvalidSelection)
		}
		if _, ok := seen[n]; ok {
			return fmt.Errorf("pinned number %d repeated: %w", n, ErrInvalidSelection)
		}
		seen[n] = struct{}{}
	}
	return nil
}

// Toggle unpins n when present, pins it when there is room, and otherwise
// returns the selection unchanged.
func (fs FixedSelection) Toggle(n int) (FixedSelection, error) {
	if n < LottoMin || n > LottoMax {
		return fs, fmt.Errorf("number %d out of range: %w", n, ErrInvalidSelection)
	}
	if idx := slices.Index(fs.numbers, n); idx >= 0 {
		return FixedSelection{numbers: slices.Delete(slices.Clone(fs.numbers), idx, idx+1)}, nil
	}
	if len(fs.numbers) >= MaxFixedNumbers {
		return fs, nil
	}
	next := append(slices.Clone(fs.numbers), n)
	slices.Sort(next)
	return FixedSelection{numbers: next}, nil
}

func (fs FixedSelection) Numbers() []int {
	return slices.Clone(fs.numbers)
}

func (fs FixedSelection) Len() int {
	return len(fs.numbers)
}

func (fs FixedSelection) Contains(n int) bool {
	return slices.Contains(fs.numbers, n)
}
