package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/byte4ever/podtail/format"
	"github.com/byte4ever/podtail/kube"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvConfig     = "PODTAIL_CONFIG"
	EnvNamespace  = "NAMESPACE"
	EnvKubeconfig = "KUBECONFIG"
	EnvContext    = "KUBE_CONTEXT"
)

// Config holds all podtail settings.
type Config struct {
	K8s    K8s    `yaml:"k8s"`
	Tail   Tail   `yaml:"tail"`
	Output Output `yaml:"output"`
}

// K8s selects the cluster, namespace and pods.
type K8s struct {
	// Namespace to tail in; empty means the kubeconfig
	// context namespace.
	Namespace string `yaml:"namespace"`

	// Kubeconfig is the kubeconfig file path.
	Kubeconfig string `yaml:"kubeconfig"`

	// Context overrides the kubeconfig current context.
	Context string `yaml:"context"`

	// Selector is a label selector narrowing the pods
	// considered for matching.
	Selector string `yaml:"selector"`
}

// Tail controls the log streams.
type Tail struct {
	Container  string `yaml:"container"`
	Timestamps bool   `yaml:"timestamps"`

	// TailLines is the initial backlog per pod; -1
	// streams the whole log.
	TailLines int64 `yaml:"tail_lines"`

	// Since is a duration such as "5m"; empty means no
	// limit.
	Since string `yaml:"since"`

	// State is a container state filter: running,
	// waiting, terminated or empty for any.
	State string `yaml:"state"`

	// Buffer is the shared line queue capacity.
	Buffer int `yaml:"buffer"`
}

// Output controls console rendering.
type Output struct {
	Format   string `yaml:"format"`
	Template string `yaml:"template"`
	Color    string `yaml:"color"`
}

// ErrInvalidTailLines is returned when tail_lines is
// below -1.
var ErrInvalidTailLines = errors.New(
	"tail_lines should be -1 or greater",
)

// ErrInvalidBuffer is returned for a negative buffer.
var ErrInvalidBuffer = errors.New(
	"buffer should not be negative",
)

// ErrInvalidSince is returned for a negative since.
var ErrInvalidSince = errors.New(
	"since should not be negative",
)

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Tail: Tail{
			TailLines: -1,
		},
		Output: Output{
			Format:   format.Text,
			Template: format.DefaultTemplate,
			Color:    format.ColorAuto,
		},
	}
}

// Load returns Default overlaid with the YAML file at
// path. An empty path returns Default. Unknown fields
// are rejected.
func Load(path string) (Config, error) {
	const errCtx = "loading config"

	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := yaml.UnmarshalWithOptions(
		data, &cfg, yaml.DisallowUnknownField(),
	); err != nil {
		return Config{}, fmt.Errorf(
			"%s: parse %s: %w", errCtx, path, err,
		)
	}

	return cfg, nil
}

// ApplyEnv overrides cluster settings from NAMESPACE,
// KUBECONFIG and KUBE_CONTEXT when they are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvNamespace); v != "" {
		c.K8s.Namespace = v
	}

	if v := os.Getenv(EnvKubeconfig); v != "" {
		c.K8s.Kubeconfig = v
	}

	if v := os.Getenv(EnvContext); v != "" {
		c.K8s.Context = v
	}
}

// SinceDuration parses Tail.Since; empty is zero.
func (c *Config) SinceDuration() (time.Duration, error) {
	if c.Tail.Since == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(c.Tail.Since)
	if err != nil {
		return 0, fmt.Errorf("parsing since: %w", err)
	}

	if d < 0 {
		return 0, ErrInvalidSince
	}

	return d, nil
}

// Validate checks every field that has a closed set of
// values.
func (c *Config) Validate() error {
	const errCtx = "invalid config"

	if _, err := c.SinceDuration(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if _, err := kube.NewContainerState(
		c.Tail.State,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if c.Tail.TailLines < -1 {
		return fmt.Errorf(
			"%s: %w", errCtx, ErrInvalidTailLines,
		)
	}

	if c.Tail.Buffer < 0 {
		return fmt.Errorf("%s: %w", errCtx, ErrInvalidBuffer)
	}

	switch c.Output.Format {
	case format.Text, format.JSONOutput, "":
	default:
		return fmt.Errorf(
			"%s: %w", errCtx, format.ErrInvalidFormat,
		)
	}

	switch c.Output.Color {
	case format.ColorAuto, format.ColorAlways,
		format.ColorNever, "":
	default:
		return fmt.Errorf(
			"%s: %w", errCtx, format.ErrInvalidColor,
		)
	}

	return nil
}
