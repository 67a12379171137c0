package models

import (
	"slices"
	"time"
)

// DayFormatter renders the lucky-day label. The presentation side owns the strings.
type DayFormatter interface {
	DayLabel(day time.Weekday) string
}

type GenerationDate struct {
	Date      time.Time    `json:"date"`
	DayOfWeek time.Weekday `json:"dayOfWeek"`
}

type GenerationStats struct {
	TotalGenerated  int              `json:"totalGenerated"`
	GenerationDates []GenerationDate `json:"generationDates"`
	LuckyDayOfWeek  string           `json:"luckyDayOfWeek"`
}

func NewGenerationStats() GenerationStats {
	return GenerationStats{GenerationDates: []GenerationDate{}}
}

// RecordGeneration counts one generation event of setCount sets at now.
func (s GenerationStats) RecordGeneration(setCount int, now time.Time, formatter DayFormatter) GenerationStats {
	out := s.Clone()
	out.TotalGenerated += setCount
	out.GenerationDates = append(out.GenerationDates, GenerationDate{
		Date:      now.UTC(),
		DayOfWeek: now.Weekday(),
	})
	if day, ok := ComputeLuckyDay(out.GenerationDates); ok {
		out.LuckyDayOfWeek = formatter.DayLabel(day)
	}
	return out
}

func (s GenerationStats) Clone() GenerationStats {
	out := s
	out.GenerationDates = slices.Clone(s.GenerationDates)
	if out.GenerationDates == nil {
		out.GenerationDates = []GenerationDate{}
	}
	return out
}

// ComputeLuckyDay returns the weekday with the most generation events.
// Ties go to the lowest weekday index, Sunday first.
func ComputeLuckyDay(dates []GenerationDate) (time.Weekday, bool) {
	if len(dates) == 0 {
		return time.Sunday, false
	}
	var counts [7]int
	for _, d := range dates {
		if d.DayOfWeek < time.Sunday || d.DayOfWeek > time.Saturday {
			continue
		}
		counts[d.DayOfWeek]++
	}
	best := 0
	for day := 1; day < len(counts); day++ {
		if counts[day] > counts[best] {
			best = day
		}
	}
	return time.Weekday(best), true
}
