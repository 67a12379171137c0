package models

import "maps"

type Heat string

const (
	HeatHot     Heat = "hot"
	HeatCold    Heat = "cold"
	HeatNeutral Heat = ""
)

const hotFactor = 1.5

// FrequencyTable counts how often each lotto number was generated.
// Absent keys read as zero.
type FrequencyTable map[int]int

type NumberFrequency struct {
	Number int  `json:"number"`
	Count  int  `json:"count"`
	Range  int  `json:"range"`
	Heat   Heat `json:"heat,omitempty"`
}

type FrequencyReport struct {
	Numbers []NumberFrequency `json:"numbers"`
	Max     int               `json:"max"`
	Mean    float64           `json:"mean"`
}

// Update returns a copy with every number counted once more.
func (f FrequencyTable) Update(numbers []int) FrequencyTable {
	out := f.Clone()
	for _, n := range numbers {
		out[n]++
	}
	return out
}

func (f FrequencyTable) Count(n int) int {
	return f[n]
}

func (f FrequencyTable) Clone() FrequencyTable {
	out := make(FrequencyTable, len(f))
	maps.Copy(out, f)
	return out
}

func (f FrequencyTable) Mean() float64 {
	total := 0
	for n := LottoMin; n <= LottoMax; n++ {
		total += f[n]
	}
	return float64(total) / float64(LottoMax)
}

// Classify marks a count hot above 1.5x the mean over all 45 numbers and cold at zero.
func Classify(count int, mean float64) Heat {
	switch {
	case count == 0:
		return HeatCold
	case float64(count) > mean*hotFactor:
		return HeatHot
	default:
		return HeatNeutral
	}
}

func (f FrequencyTable) Report() FrequencyReport {
	mean := f.Mean()
	report := FrequencyReport{
		Numbers: make([]NumberFrequency, 0, LottoMax),
		Mean:    mean,
	}
	for n := LottoMin; n <= LottoMax; n++ {
		c := f[n]
		report.Max = max(report.Max, c)
		report.Numbers = append(report.Numbers, NumberFrequency{
			Number: n,
			Count:  c,
			Range:  BallRange(n),
			Heat:   Classify(c, mean),
		})
	}
	return report
}
