package board

import "errors"

var (
	// ErrStoreUnavailable means the spreadsheet service or the named
	// worksheet could not be reached or resolved.
	ErrStoreUnavailable = errors.New("backing store unavailable")
	// ErrRecordNotFound means the ticket id was absent from the id
	// column at update time.
	ErrRecordNotFound = errors.New("record not found")
)
