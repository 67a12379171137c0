package providers

import (
	"luckypick/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatterProvider_Korean(t *testing.T) {
	f := NewFormatterProvider(&structures.Config{Locale: "ko"})
	assert.Equal(t, "ko", f.Locale())
	assert.Equal(t, "일요일", f.DayLabel(time.Sunday))
	assert.Equal(t, "수요일", f.DayLabel(time.Wednesday))
	assert.Equal(t, 5, f.FortuneCount())
	assert.NotEmpty(t, f.PensionFortune())
}

func TestFormatterProvider_English(t *testing.T) {
	f := NewFormatterProvider(&structures.Config{Locale: "en"})
	assert.Equal(t, "Sunday", f.DayLabel(time.Sunday))
	assert.Equal(t, "Wednesday", f.DayLabel(time.Wednesday))
	assert.Equal(t, "Saturday", f.DayLabel(time.Saturday))
}

func TestFormatterProvider_UnknownLocaleFallsBack(t *testing.T) {
	f := NewFormatterProvider(&structures.Config{Locale: "xx"})
	assert.Equal(t, "ko", f.Locale())
}

func TestFormatterProvider_OutOfRange(t *testing.T) {
	f := NewFormatterProvider(&structures.Config{Locale: "en"})
	assert.Empty(t, f.DayLabel(time.Weekday(9)))
	assert.Empty(t, f.LottoFortune(-1))
	assert.Empty(t, f.LottoFortune(f.FortuneCount()))
	assert.NotEmpty(t, f.LottoFortune(0))
}
