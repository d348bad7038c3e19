// Command podtail follows the logs of one or more pods,
// selected by name or name prefix, and merges them into
// a single labeled console stream.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/apimachinery/pkg/labels"

	"github.com/byte4ever/podtail/config"
	"github.com/byte4ever/podtail/format"
	"github.com/byte4ever/podtail/kube"
	"github.com/byte4ever/podtail/tail"
)

// flags holds the raw command-line values. Only flags
// explicitly set override the config file.
type flags struct {
	configPath string
	verbose    bool

	namespace  string
	kubeconfig string
	kubeCtx    string
	selector   string

	container  string
	timestamps bool
	tailLines  int64
	since      string
	state      string
	buffer     int

	output   string
	template string
	color    string
}

func main() {
	if err := newRootCmd().ExecuteContext(
		context.Background(),
	); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "podtail",
		Short:         "Follow Kubernetes pod logs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newTailCmd(&flags{}))

	return root
}

func newTailCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tail NAME [NAME...]",
		Short: "Follow logs of one or more pods",
		Long: `Follow logs of one or more pods.

Each NAME selects the pod with exactly that name and
every pod named NAME-<suffix>. With several matching
pods every line is prefixed with its pod name.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.Flags(), f, args)
		},
	}

	fs := cmd.Flags()

	fs.StringVar(
		&f.configPath, "config", os.Getenv(config.EnvConfig),
		"path to a YAML config file",
	)
	fs.BoolVarP(
		&f.verbose, "verbose", "v", false,
		"enable debug logging",
	)
	fs.StringVarP(
		&f.namespace, "namespace", "n", "",
		"kubernetes namespace",
	)
	fs.StringVar(
		&f.kubeconfig, "kubeconfig", "",
		"path to kubernetes config file",
	)
	fs.StringVar(
		&f.kubeCtx, "context", "",
		"kubeconfig context to use",
	)
	fs.StringVarP(
		&f.selector, "selector", "l", "",
		"label selector narrowing the candidate pods",
	)
	fs.StringVarP(
		&f.container, "container", "c", "",
		"container to follow",
	)
	fs.BoolVarP(
		&f.timestamps, "timestamps", "t", false,
		"prefix lines with their timestamp",
	)
	fs.Int64Var(
		&f.tailLines, "tail", -1,
		"lines of backlog per pod, -1 for all",
	)
	fs.StringVarP(
		&f.since, "since", "s", "",
		"only show lines newer than this duration",
	)
	fs.StringVar(
		&f.state, "state", "",
		"only pods with a container in this state"+
			" (running, waiting, terminated)",
	)
	fs.IntVar(
		&f.buffer, "buffer", 0,
		"shared line queue capacity",
	)
	fs.StringVarP(
		&f.output, "output", "o", "",
		"output format (text, json)",
	)
	fs.StringVar(
		&f.template, "template", "",
		"text output template",
	)
	fs.StringVar(
		&f.color, "color", "",
		"label color (auto, always, never)",
	)

	return cmd
}

// loadConfig layers the config file, the environment
// and explicitly set flags.
func loadConfig(
	fs *pflag.FlagSet,
	f *flags,
) (config.Config, error) {
	const errCtx = "parse config"

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	cfg.ApplyEnv()

	overrides := map[string]func(){
		"namespace":  func() { cfg.K8s.Namespace = f.namespace },
		"kubeconfig": func() { cfg.K8s.Kubeconfig = f.kubeconfig },
		"context":    func() { cfg.K8s.Context = f.kubeCtx },
		"selector":   func() { cfg.K8s.Selector = f.selector },
		"container":  func() { cfg.Tail.Container = f.container },
		"timestamps": func() { cfg.Tail.Timestamps = f.timestamps },
		"tail":       func() { cfg.Tail.TailLines = f.tailLines },
		"since":      func() { cfg.Tail.Since = f.since },
		"state":      func() { cfg.Tail.State = f.state },
		"buffer":     func() { cfg.Tail.Buffer = f.buffer },
		"output":     func() { cfg.Output.Format = f.output },
		"template":   func() { cfg.Output.Template = f.template },
		"color":      func() { cfg.Output.Color = f.color },
	}

	fs.Visit(func(fl *pflag.Flag) {
		if apply, ok := overrides[fl.Name]; ok {
			apply()
		}
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return cfg, nil
}

func run(
	ctx context.Context,
	fs *pflag.FlagSet,
	f *flags,
	names []string,
) error {
	const errCtx = "podtail"

	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(
		os.Stderr, &slog.HandlerOptions{Level: level},
	)))

	cfg, err := loadConfig(fs, f)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	ctx, stop := signal.NotifyContext(
		ctx, os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	conn, err := kube.Connect(
		cfg.K8s.Kubeconfig, cfg.K8s.Context, cfg.K8s.Namespace,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	selector, err := labels.Parse(cfg.K8s.Selector)
	if err != nil {
		return fmt.Errorf(
			"%s: parsing selector: %w", errCtx, err,
		)
	}

	// Validated by loadConfig.
	state, _ := kube.NewContainerState(cfg.Tail.State)
	since, _ := cfg.SinceDuration()

	pods := kube.NewPods(
		conn.Clientset, conn.Namespace, selector, state,
		kube.LogOptions{
			Container:  cfg.Tail.Container,
			Timestamps: cfg.Tail.Timestamps,
			TailLines:  cfg.Tail.TailLines,
			Since:      since,
		},
	)

	formatter, err := format.New(
		os.Stdout,
		cfg.Output.Format,
		cfg.Output.Template,
		cfg.Output.Color,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Debug(
		"tailing",
		"namespace", conn.Namespace,
		"pod_names", names,
	)

	err = tail.Run(ctx, tail.Config{
		Namespace: conn.Namespace,
		Filters:   names,
		Container: cfg.Tail.Container,
		Lister:    pods,
		Source:    pods,
		Formatter: formatter,
		Out:       os.Stdout,
		Buffer:    cfg.Tail.Buffer,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
