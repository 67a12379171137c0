package models

import "errors"

var (
	ErrDuplicate        = errors.New("duplicate")
	ErrIndexOutOfRange  = errors.New("index_out_of_range")
	ErrStaleBatch       = errors.New("stale_batch")
	ErrInvalidCount     = errors.New("invalid_count")
	ErrInvalidSelection = errors.New("invalid_selection")
	ErrNotLotto         = errors.New("not_lotto")
	ErrInvalidTheme     = errors.New("invalid_theme")

	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrStorageCorrupt     = errors.New("storage corrupt")
)
