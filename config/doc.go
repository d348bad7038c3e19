// Package config loads podtail settings from a YAML file,
// the environment and command-line overrides.
package config
