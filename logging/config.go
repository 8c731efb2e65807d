package logging

// Config is the `logging` section of conductor.yml.
type Config struct {
	// Level is the minimum level to output ("debug", "info", "warn", "error").
	// CONDUCTOR_LOG_LEVEL overrides it.
	Level string `yaml:"level,omitempty" json:"level,omitempty" toml:"level,omitempty" mapstructure:"level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`

	// ReportCaller includes file, line and function in each entry.
	// CONDUCTOR_LOG_CALLER=true enables it too.
	ReportCaller bool `yaml:"report_caller,omitempty" json:"report_caller,omitempty" toml:"report_caller,omitempty" mapstructure:"report_caller"`

	// File configures an additional file sink.
	File FileSinkConfig `yaml:"file,omitempty" json:"file,omitempty" toml:"file,omitempty" mapstructure:"file"`

	// Format configures the appearance of structured output.
	Format FormatConfig `yaml:"format,omitempty" json:"format,omitempty" toml:"format,omitempty" mapstructure:"format"`
}

// FileSinkConfig configures the file logging sink.
type FileSinkConfig struct {
	Enabled bool   `yaml:"enabled,omitempty" json:"enabled,omitempty" toml:"enabled,omitempty" mapstructure:"enabled"`
	Path    string `yaml:"path,omitempty" json:"path,omitempty" toml:"path,omitempty" mapstructure:"path"`
}

// FormatConfig controls the structured output format.
type FormatConfig struct {
	// Preset is "default" (rich text), "simple" or "json".
	Preset           string `yaml:"preset,omitempty" json:"preset,omitempty" toml:"preset,omitempty" mapstructure:"preset" jsonschema:"enum=default,enum=simple,enum=json"`
	DisableTimestamp bool   `yaml:"disable_timestamp,omitempty" json:"disable_timestamp,omitempty" toml:"disable_timestamp,omitempty" mapstructure:"disable_timestamp"`
	DisableComponent bool   `yaml:"disable_component,omitempty" json:"disable_component,omitempty" toml:"disable_component,omitempty" mapstructure:"disable_component"`
	// StructuredToStderr is "auto" (default), "always" or "never".
	StructuredToStderr string `yaml:"structured_to_stderr,omitempty" json:"structured_to_stderr,omitempty" toml:"structured_to_stderr,omitempty" mapstructure:"structured_to_stderr" jsonschema:"enum=auto,enum=always,enum=never"`
}
