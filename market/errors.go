package market

import "errors"

var (
	// ErrEmptySeries is returned when a series would contain no bars.
	ErrEmptySeries = errors.New("bar series is empty")

	// ErrDataUnavailable wraps every failure to read or parse bar data.
	ErrDataUnavailable = errors.New("bar data unavailable")
)
