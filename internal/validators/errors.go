package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidID          = errors.New("invalid id")
	ErrDuplicateID        = errors.New("duplicate id")
	ErrInvalidEntryType   = errors.New("invalid entry type")
	ErrUnknownGroup       = errors.New("entry references an unknown group")
	ErrInvalidExpiration  = errors.New("invalid card expiration")
	ErrEmptyGroupName     = errors.New("group name is required")
	ErrUnknownHistoryItem = errors.New("history references an unknown entry")
)
