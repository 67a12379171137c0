package models

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Persisted keys. Files on disk carry the lottery_ prefix.
const (
	KeySaved     = "saved"
	KeyStats     = "stats"
	KeyFrequency = "frequency"
	KeyTheme     = "theme"
)

// State is the whole persisted aggregate.
type State struct {
	Saved     History         `json:"saved"`
	Stats     GenerationStats `json:"stats"`
	Frequency FrequencyTable  `json:"frequency"`
	Theme     Theme           `json:"theme"`
}

func NewState() State {
	return State{
		Saved:     History{},
		Stats:     NewGenerationStats(),
		Frequency: FrequencyTable{},
		Theme:     ThemeDark,
	}
}

func (s State) Clone() State {
	return State{
		Saved:     s.Saved.Clone(),
		Stats:     s.Stats.Clone(),
		Frequency: s.Frequency.Clone(),
		Theme:     s.Theme,
	}
}
