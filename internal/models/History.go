package models

import (
	"fmt"
	"slices"
)

// History is the saved result list, most recent first.
type History []LotteryResult

// Save prepends r unless a structurally equal draw is already saved.
func (h History) Save(r LotteryResult) (History, error) {
	for _, saved := range h {
		if saved.SameDraw(r) {
			return h, ErrDuplicate
		}
	}
	out := make(History, 0, len(h)+1)
	out = append(out, r.Clone())
	return append(out, h...), nil
}

func (h History) Delete(index int) (History, error) {
	if index < 0 || index >= len(h) {
		return h, fmt.Errorf("delete %d of %d: %w", index, len(h), ErrIndexOutOfRange)
	}
	return slices.Delete(slices.Clone(h), index, index+1), nil
}

func (h History) Clear() History {
	return History{}
}

func (h History) Clone() History {
	out := make(History, len(h))
	for i, r := range h {
		out[i] = r.Clone()
	}
	return out
}
