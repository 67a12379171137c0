package models

import (
	"slices"
	"time"
)

const (
	LottoMin   = 1
	LottoMax   = 45
	LottoPicks = 6

	PensionGroups = 5
	PensionDigits = 6

	MaxFixedNumbers = LottoPicks - 1
)

type Kind string

const (
	KindLotto   Kind = "lotto"
	KindPension Kind = "pension"
)

func (k Kind) Valid() bool {
	return k == KindLotto || k == KindPension
}

// PensionDraw is the group + digits payload of a pension result. Digits may repeat.
type PensionDraw struct {
	Group  int   `json:"group"`
	Digits []int `json:"numbers"`
}

// LotteryResult is a tagged union: Numbers is set for KindLotto, Pension for KindPension.
// The JSON layout matches what the browser app keeps under lottery_saved.
type LotteryResult struct {
	Kind      Kind         `json:"type"`
	Numbers   []int        `json:"numbers,omitempty"`
	Pension   *PensionDraw `json:"data,omitempty"`
	Timestamp int64        `json:"timestamp"`
}

func NewLottoResult(numbers []int, at time.Time) LotteryResult {
	return LotteryResult{
		Kind:      KindLotto,
		Numbers:   numbers,
		Timestamp: at.UnixMilli(),
	}
}

func NewPensionResult(group int, digits []int, at time.Time) LotteryResult {
	return LotteryResult{
		Kind:      KindPension,
		Pension:   &PensionDraw{Group: group, Digits: digits},
		Timestamp: at.UnixMilli(),
	}
}

// SameDraw reports structural equality. Timestamps are ignored.
func (r LotteryResult) SameDraw(other LotteryResult) bool {
	if r.Kind != other.Kind {
		return false
	}
	if r.Kind == KindLotto {
		return slices.Equal(r.Numbers, other.Numbers)
	}
	if r.Pension == nil || other.Pension == nil {
		return r.Pension == other.Pension
	}
	return r.Pension.Group == other.Pension.Group && slices.Equal(r.Pension.Digits, other.Pension.Digits)
}

// Valid checks the per-variant invariants.
func (r LotteryResult) Valid() bool {
	switch r.Kind {
	case KindLotto:
		if len(r.Numbers) != LottoPicks || r.Pension != nil {
			return false
		}
		for i, n := range r.Numbers {
			if n < LottoMin || n > LottoMax {
				return false
			}
			if i > 0 && r.Numbers[i-1] >= n {
				return false
			}
		}
		return true
	case KindPension:
		if r.Pension == nil || len(r.Pension.Digits) != PensionDigits {
			return false
		}
		if r.Pension.Group < 1 || r.Pension.Group > PensionGroups {
			return false
		}
		for _, d := range r.Pension.Digits {
			if d < 0 || d > 9 {
				return false
			}
		}
		return true
	}
	return false
}

func (r LotteryResult) Clone() LotteryResult {
	out := r
	out.Numbers = slices.Clone(r.Numbers)
	if r.Pension != nil {
		out.Pension = &PensionDraw{Group: r.Pension.Group, Digits: slices.Clone(r.Pension.Digits)}
	}
	return out
}

// BallRange returns the colour band of a lotto ball: 1 for 1-10 up to 5 for 41-45.
func BallRange(n int) int {
	switch {
	case n <= 10:
		return 1
	case n <= 20:
		return 2
	case n <= 30:
		return 3
	case n <= 40:
		return 4
	default:
		return 5
	}
}
