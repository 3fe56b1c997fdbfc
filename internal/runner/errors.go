package runner

import "errors"

var (
	// ErrNoEpisodes is returned when an evaluation is requested with a
	// non-positive episode count. Rejected before any episode runs.
	ErrNoEpisodes = errors.New("number of episodes must be positive")

	// ErrInvalidMaxSteps is returned for a negative step cap. Zero means
	// no cap.
	ErrInvalidMaxSteps = errors.New("max steps must not be negative")
)
