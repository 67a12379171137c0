package models

import "slices"

const (
	lowHighSplit     = 22
	sumRangeLow      = 100
	sumRangeHigh     = 175
	balancedOddLow   = 2
	balancedOddHigh  = 4
	simulationRounds = 100
)

type ConsecutivePair [2]int

type CombinationAnalysis struct {
	OddCount         int               `json:"oddCount"`
	EvenCount        int               `json:"evenCount"`
	Sum              int               `json:"sum"`
	Min              int               `json:"min"`
	Max              int               `json:"max"`
	ConsecutivePairs []ConsecutivePair `json:"consecutivePairs"`
}

// AnalyzeCombination expects the 6 sorted numbers of a lotto result.
func AnalyzeCombination(numbers []int) CombinationAnalysis {
	sorted := slices.Clone(numbers)
	slices.Sort(sorted)

	a := CombinationAnalysis{ConsecutivePairs: []ConsecutivePair{}}
	for i, n := range sorted {
		if n%2 == 1 {
			a.OddCount++
		}
		a.Sum += n
		if i > 0 && n-sorted[i-1] == 1 {
			a.ConsecutivePairs = append(a.ConsecutivePairs, ConsecutivePair{sorted[i-1], n})
		}
	}
	a.EvenCount = len(sorted) - a.OddCount
	if len(sorted) > 0 {
		a.Min = sorted[0]
		a.Max = sorted[len(sorted)-1]
	}
	return a
}

func AnalyzeResult(r LotteryResult) (CombinationAnalysis, error) {
	if r.Kind != KindLotto {
		return CombinationAnalysis{}, ErrNotLotto
	}
	return AnalyzeCombination(r.Numbers), nil
}

type LottoInsight struct {
	CombinationAnalysis
	Numbers         []int `json:"numbers"`
	LowCount        int   `json:"lowCount"`
	HighCount       int   `json:"highCount"`
	SumInRange      bool  `json:"sumInRange"`
	BalancedOddEven bool  `json:"balancedOddEven"`
}

// PremiumAnalysis is the extended breakdown behind the premium view. Fortune indexes
// the formatter's lotto fortunes; pension results always use the pension fortune.
type PremiumAnalysis struct {
	Kind    Kind          `json:"type"`
	Lotto   *LottoInsight `json:"lotto,omitempty"`
	Pension *PensionDraw  `json:"pension,omitempty"`
	Fortune int           `json:"fortune"`
}

func AnalyzePremium(r LotteryResult, fortune int) PremiumAnalysis {
	if r.Kind != KindLotto {
		p := r.Clone().Pension
		return PremiumAnalysis{Kind: r.Kind, Pension: p}
	}
	insight := &LottoInsight{
		CombinationAnalysis: AnalyzeCombination(r.Numbers),
		Numbers:             slices.Clone(r.Numbers),
	}
	for _, n := range r.Numbers {
		if n <= lowHighSplit {
			insight.LowCount++
		}
	}
	insight.HighCount = len(r.Numbers) - insight.LowCount
	insight.SumInRange = insight.Sum >= sumRangeLow && insight.Sum <= sumRangeHigh
	insight.BalancedOddEven = insight.OddCount >= balancedOddLow && insight.OddCount <= balancedOddHigh
	return PremiumAnalysis{Kind: KindLotto, Lotto: insight, Fortune: fortune}
}

type PrizeTier struct {
	Rank           int   `json:"rank"`
	MatchCount     int   `json:"matchCount"`
	BonusMatch     bool  `json:"bonusMatch"`
	ExpectedPer100 int   `json:"expectedPer100"`
	PrizeMin       int64 `json:"prizeMin"`
	PrizeMax       int64 `json:"prizeMax"`
}

type Simulation struct {
	Rounds int         `json:"rounds"`
	Tiers  []PrizeTier `json:"tiers"`
}

// Simulate returns the fixed prize table. It does not depend on the numbers drawn.
func Simulate() Simulation {
	return Simulation{
		Rounds: simulationRounds,
		Tiers: []PrizeTier{
			{Rank: 1, MatchCount: 6, PrizeMin: 2_000_000_000, PrizeMax: 4_000_000_000},
			{Rank: 2, MatchCount: 5, BonusMatch: true, PrizeMin: 500_000_000, PrizeMax: 1_000_000_000},
			{Rank: 3, MatchCount: 5, PrizeMin: 1_000_000, PrizeMax: 2_000_000},
			{Rank: 4, MatchCount: 4, PrizeMin: 50_000, PrizeMax: 50_000},
			{Rank: 5, MatchCount: 3, ExpectedPer100: 2, PrizeMin: 5_000, PrizeMax: 5_000},
		},
	}
}
