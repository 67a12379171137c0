package providers

import (
	"luckypick/internal/models"
	"luckypick/internal/structures"
	"time"
)

// FormatterInterface supplies every user-facing string the service hands out.
type FormatterInterface interface {
	models.DayFormatter
	Locale() string
	FortuneCount() int
	LottoFortune(index int) string
	PensionFortune() string
}

type locale struct {
	days           [7]string
	daySuffix      string
	lottoFortunes  []string
	pensionFortune string
}

var locales = map[string]*locale{
	"ko": {
		days:      [7]string{"일", "월", "화", "수", "목", "금", "토"},
		daySuffix: "요일",
		lottoFortunes: []string{
			"이 번호 조합은 균형 잡힌 분포를 보입니다. 역대 당첨 번호의 70%가 유사한 패턴입니다.",
			"홀짝 비율이 안정적입니다. 통계적으로 3:3 또는 4:2 비율의 당첨 확률이 높습니다.",
			"번호 합계가 적정 범위(100~175)에 있어 좋은 조합입니다.",
			"연번이 포함되어 있으면 당첨 확률에 긍정적 영향을 줍니다.",
			"번호 간 간격이 고르게 분포되어 있어 이상적인 조합입니다.",
		},
		pensionFortune: "행운은 준비된 자에게 찾아옵니다. 오늘의 번호가 좋은 에너지를 담고 있습니다.",
	},
	"en": {
		days:      [7]string{"Sun", "Mon", "Tues", "Wednes", "Thurs", "Fri", "Satur"},
		daySuffix: "day",
		lottoFortunes: []string{
			"This combination is evenly spread. Many past winning sets follow a similar pattern.",
			"The odd/even ratio is steady. 3:3 and 4:2 splits show up most often.",
			"The sum sits in the usual 100-175 band.",
			"Consecutive numbers appear in most past draws.",
			"The gaps between numbers are nicely balanced.",
		},
		pensionFortune: "Luck favours the prepared. Today's numbers carry good energy.",
	},
}

type FormatterProvider struct {
	name string
	loc  *locale
}

func NewFormatterProvider(conf *structures.Config) FormatterInterface {
	name := conf.Locale
	loc, ok := locales[name]
	if !ok {
		name = "ko"
		loc = locales[name]
	}
	return &FormatterProvider{name: name, loc: loc}
}

func (f *FormatterProvider) Locale() string {
	return f.name
}

func (f *FormatterProvider) DayLabel(day time.Weekday) string {
	if day < time.Sunday || day > time.Saturday {
		return ""
	}
	return f.loc.days[day] + f.loc.daySuffix
}

func (f *FormatterProvider) FortuneCount() int {
	return len(f.loc.lottoFortunes)
}

func (f *FormatterProvider) LottoFortune(index int) string {
	if index < 0 || index >= len(f.loc.lottoFortunes) {
		return ""
	}
	return f.loc.lottoFortunes[index]
}

func (f *FormatterProvider) PensionFortune() string {
	return f.loc.pensionFortune
}
