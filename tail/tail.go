package tail

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
)

// Config holds all settings for a tail run.
type Config struct {
	// Namespace is reported on every line. Pod
	// enumeration and log streams are already scoped by
	// Lister and Source.
	Namespace string

	// Filters select pods by exact name or by prefix
	// followed by "-".
	Filters []string

	// Container is reported on every line.
	Container string

	// Lister enumerates candidate pods.
	Lister PodLister

	// Source opens pod log streams.
	Source LogSource

	// Formatter renders lines; nil means
	// PlainFormatter.
	Formatter Formatter

	// Out receives the rendered lines; nil means
	// os.Stdout.
	Out io.Writer

	// Buffer is the multiplexer sink capacity.
	Buffer int

	// OnError receives per-pod stream failures in
	// multi-pod mode; nil logs them.
	OnError func(pod string, err error)
}

// Run enumerates pods, selects those matching
// cfg.Filters and follows their logs until the streams
// end or ctx is done. It returns a *NoMatchError without
// opening any stream when nothing matches.
func Run(ctx context.Context, cfg Config) error {
	const errCtx = "tailing pods"

	if len(cfg.Filters) == 0 {
		return fmt.Errorf("%s: %w", errCtx, ErrNoFilters)
	}

	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}

	if cfg.Formatter == nil {
		cfg.Formatter = PlainFormatter
	}

	all, err := cfg.Lister.ListPods(ctx)
	if err != nil {
		return fmt.Errorf(
			"%s: list pods: %w", errCtx, err,
		)
	}

	pods := MatchPods(cfg.Filters, all)

	switch len(pods) {
	case 0:
		available := append([]string(nil), all...)
		sort.Strings(available)

		slog.Error(
			"no pods found",
			"pod_names", cfg.Filters,
			"available_pods", available,
		)

		return &NoMatchError{
			Filters:   cfg.Filters,
			Available: available,
		}
	case 1:
		return runOne(ctx, cfg, pods[0])
	default:
		return runMany(ctx, cfg, pods)
	}
}

func runOne(
	ctx context.Context,
	cfg Config,
	pod string,
) error {
	const errCtx = "tailing pod"

	slog.Debug("tailing single pod", "pod", pod)

	w := newWorker(cfg, pod, "")

	err := w.Run(ctx, func(line string) error {
		_, writeErr := fmt.Fprintln(cfg.Out, line)

		return writeErr
	})
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

func runMany(
	ctx context.Context,
	cfg Config,
	pods []string,
) error {
	slog.Debug("tailing pods", "pods", pods)

	width := LabelWidth(pods)
	mux := NewMultiplexer(cfg.Out, cfg.Buffer, cfg.OnError)

	for _, pod := range pods {
		mux.Add(newWorker(cfg, pod, PadLabel(pod, width)))
	}

	return mux.Run(ctx)
}

func newWorker(cfg Config, pod, label string) *Worker {
	w := NewWorker(cfg.Source, pod, label)
	w.Namespace = cfg.Namespace
	w.Container = cfg.Container
	w.Formatter = cfg.Formatter

	return w
}
