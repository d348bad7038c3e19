package tail

import (
	"context"
	"io"
)

// PodLister enumerates the pods available for tailing.
type PodLister interface {
	ListPods(ctx context.Context) ([]string, error)
}

// LogSource opens a follow stream over the logs of a
// pod. The stream yields newline-terminated text until
// the pod's log closes or ctx is done.
type LogSource interface {
	OpenLogs(
		ctx context.Context,
		pod string,
	) (io.ReadCloser, error)
}

// Line is a single log line before rendering.
type Line struct {
	Namespace string
	Pod       string
	Container string
	Label     string
	Message   string
}

// Formatter renders a Line for console output.
type Formatter interface {
	Format(line Line) string
}

// FormatterFunc adapts a function to the Formatter
// interface.
type FormatterFunc func(line Line) string

// Format calls f(line).
func (f FormatterFunc) Format(line Line) string {
	return f(line)
}

// PlainFormatter renders the label followed by the
// message.
var PlainFormatter = FormatterFunc(func(line Line) string {
	return line.Label + line.Message
})
