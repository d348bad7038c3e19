package tail

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoFilters is returned when Run is called without
// any pod name filters.
var ErrNoFilters = errors.New(
	"at least one pod name is required",
)

// NoMatchError reports that no pod matched the requested
// names. Available holds every enumerated pod name,
// sorted.
type NoMatchError struct {
	Filters   []string
	Available []string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf(
		"no pods found matching %s (available: %s)",
		strings.Join(e.Filters, ", "),
		strings.Join(e.Available, ", "),
	)
}

// StreamOpenError reports that the log stream of a pod
// could not be opened.
type StreamOpenError struct {
	Pod string
	Err error
}

func (e *StreamOpenError) Error() string {
	return fmt.Sprintf(
		"opening log stream for %s: %v", e.Pod, e.Err,
	)
}

func (e *StreamOpenError) Unwrap() error { return e.Err }

// StreamInterruptedError reports that the log stream of
// a pod failed after it was opened.
type StreamInterruptedError struct {
	Pod string
	Err error
}

func (e *StreamInterruptedError) Error() string {
	return fmt.Sprintf(
		"reading log stream for %s: %v", e.Pod, e.Err,
	)
}

func (e *StreamInterruptedError) Unwrap() error { return e.Err }
