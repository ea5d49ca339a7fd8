package domain

import "errors"

// Fatal input errors. Adapters wrap these so callers can match with errors.Is.
var (
	ErrSourceNotFound   = errors.New("input file not found")
	ErrSourceUnreadable = errors.New("input file unreadable")
	ErrEmptySource      = errors.New("input file has no header row")
)
