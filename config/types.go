package config

import (
	"fmt"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFormat       = "human"
	DefaultInitialDelay = 20 * time.Millisecond
	DefaultMaxDelay     = 200 * time.Millisecond
)

// Config is conductor's configuration file.
type Config struct {
	Output      OutputConfig      `yaml:"output,omitempty" toml:"output,omitempty" json:"output" jsonschema:"description=Output settings"`
	Convergence ConvergenceConfig `yaml:"convergence,omitempty" toml:"convergence,omitempty" json:"convergence" jsonschema:"description=How long to wait for compositor state to settle"`
	Wayland     WaylandConfig     `yaml:"wayland,omitempty" toml:"wayland,omitempty" json:"wayland" jsonschema:"description=Compositor connection"`

	// Extensions captures all other top-level keys, such as `logging`.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" json:"-" jsonschema:"-"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `yaml:"-" toml:"-" json:"-" jsonschema:"-"`
}

// OutputConfig selects how command results are rendered.
type OutputConfig struct {
	Format string `yaml:"format,omitempty" toml:"format,omitempty" json:"format" jsonschema:"enum=human,enum=json,enum=pretty-json,description=Default output format"`
}

// ConvergenceConfig tunes the round-trip backoff.
type ConvergenceConfig struct {
	InitialDelay Duration `yaml:"initial_delay,omitempty" toml:"initial_delay,omitempty" json:"initial_delay" jsonschema:"description=First backoff delay"`
	MaxDelay     Duration `yaml:"max_delay,omitempty" toml:"max_delay,omitempty" json:"max_delay" jsonschema:"description=Backoff ceiling"`
	Timeout      Duration `yaml:"timeout,omitempty" toml:"timeout,omitempty" json:"timeout" jsonschema:"description=Give up after this long; 0 waits without bound"`
}

// WaylandConfig selects the compositor socket.
type WaylandConfig struct {
	Display string `yaml:"display,omitempty" toml:"display,omitempty" json:"display" jsonschema:"description=Socket name or path; overrides WAYLAND_DISPLAY"`
}

// Duration is a time.Duration written as a Go duration string ("20ms").
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	if parsed < 0 {
		return fmt.Errorf("invalid duration %q: must not be negative", text)
	}
	*d = Duration(parsed)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a string such as \"20ms\"", node.Line)
	}
	return d.UnmarshalText([]byte(node.Value))
}

// JSONSchema describes Duration as a duration string.
func (Duration) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Pattern:     `^(0|([0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h))+)$`,
		Description: "Go duration string, e.g. 20ms or 1.5s",
	}
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// SetDefaults fills unset values.
func (c *Config) SetDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = DefaultFormat
	}
	if c.Convergence.InitialDelay == 0 {
		c.Convergence.InitialDelay = Duration(DefaultInitialDelay)
	}
	if c.Convergence.MaxDelay == 0 {
		c.Convergence.MaxDelay = Duration(DefaultMaxDelay)
	}
}

// UnmarshalExtension decodes the top-level section named key into target.
// A missing section leaves target untouched.
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
