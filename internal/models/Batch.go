package models

import "time"

// Batch is the last set of generated results, kept so a save never has to be
// reconstructed from what the client displays.
type Batch struct {
	ID        string          `json:"id"`
	Kind      Kind            `json:"type"`
	CreatedAt time.Time       `json:"createdAt"`
	Results   []LotteryResult `json:"results"`
}

func (b *Batch) At(index int) (LotteryResult, error) {
	if b == nil || index < 0 || index >= len(b.Results) {
		return LotteryResult{}, ErrIndexOutOfRange
	}
	return b.Results[index].Clone(), nil
}
