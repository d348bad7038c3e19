package tail

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// DefaultBuffer is the sink capacity used when none is
// configured.
const DefaultBuffer = 1024

// Multiplexer runs several workers concurrently and
// writes their lines to a single output in arrival
// order. Lines of one worker keep their relative order;
// lines of different workers interleave freely.
type Multiplexer struct {
	out     io.Writer
	buffer  int
	onError func(pod string, err error)
	workers []*Worker
}

// NewMultiplexer returns a multiplexer writing to out.
// A non-positive buffer selects DefaultBuffer. A nil
// onError logs worker failures with slog.
func NewMultiplexer(
	out io.Writer,
	buffer int,
	onError func(pod string, err error),
) *Multiplexer {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	if onError == nil {
		onError = logWorkerError
	}

	return &Multiplexer{
		out:     out,
		buffer:  buffer,
		onError: onError,
	}
}

// Add registers a worker. Workers must be added before
// Run is called.
func (m *Multiplexer) Add(w *Worker) {
	m.workers = append(m.workers, w)
}

// Run starts every worker and copies their lines to the
// output. It returns nil once all workers have finished
// and their lines are written, or when ctx is done. A
// failing worker is reported through onError and does
// not stop the others. Workers are not joined: they are
// cancelled when Run returns and left to exit on their
// own.
func (m *Multiplexer) Run(ctx context.Context) error {
	const errCtx = "multiplexing log streams"

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sink := make(chan string, m.buffer)

	emit := func(line string) error {
		select {
		case sink <- line:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	var wg sync.WaitGroup

	wg.Add(len(m.workers))

	for _, w := range m.workers {
		go func(w *Worker) {
			defer wg.Done()

			if err := w.Run(ctx, emit); err != nil {
				m.onError(w.Pod, err)
			}
		}(w)
	}

	go func() {
		wg.Wait()
		close(sink)
	}()

	for {
		select {
		case line, ok := <-sink:
			if !ok {
				return nil
			}

			if _, err := fmt.Fprintln(
				m.out, line,
			); err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func logWorkerError(pod string, err error) {
	slog.Error(
		"log stream failed",
		"pod", pod,
		"error", err,
	)
}
