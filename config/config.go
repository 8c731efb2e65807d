// Package config loads conductor's configuration file.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/conductor/errors"
	"github.com/grovetools/conductor/logging"
	"github.com/grovetools/conductor/pkg/paths"
)

// Syntax is the file format of a configuration document.
type Syntax string

const (
	YAML Syntax = "yaml"
	TOML Syntax = "toml"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// configNames are searched in order inside each config directory.
var configNames = []string{
	"conductor.yml",
	"conductor.yaml",
	"conductor.toml",
}

// knownSections are the top-level keys decoded into Config fields.
var knownSections = []string{"output", "convergence", "wayland"}

// SyntaxFor picks the syntax from a file extension. Anything other than
// .toml is read as YAML.
func SyntaxFor(path string) Syntax {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return TOML
	}
	return YAML
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	cfg, err := LoadFromBytes(data, SyntaxFor(path))
	if err != nil {
		if ce, ok := err.(*errors.ConductorError); ok {
			return nil, ce.WithDetail("path", path)
		}
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// LoadDefault finds and loads the user's configuration. No file is not
// an error: the defaults are returned.
func LoadDefault() (*Config, error) {
	logger := logging.NewLogger("config")

	path, err := FindConfigFile()
	if err != nil {
		if errors.Is(err, errors.ErrCodeConfigNotFound) {
			logger.Debug("No configuration file found, using defaults")
			return Default(), nil
		}
		return nil, err
	}

	logger.WithField("path", path).Debug("Loading configuration")
	return Load(path)
}

// Resolve loads explicit when it is set and the default search otherwise.
// An explicit path that does not exist is an error.
func Resolve(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(paths.Expand(explicit))
	}
	return LoadDefault()
}

// LoadFromBytes parses, validates and defaults a configuration document.
func LoadFromBytes(data []byte, syntax Syntax) (*Config, error) {
	expanded := []byte(expandEnvVars(string(data)))

	raw, err := decodeRaw(expanded, syntax)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse "+string(syntax)+" configuration")
	}

	validator, err := NewSchemaValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create validator")
	}
	if err := validator.Validate(raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "schema validation failed")
	}

	var cfg Config
	switch syntax {
	case TOML:
		if err := toml.Unmarshal(expanded, &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse toml configuration")
		}
		cfg.Extensions = extensionsOf(raw)
	default:
		if err := yaml.Unmarshal(expanded, &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse yaml configuration")
		}
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks constraints the schema cannot express.
func (c *Config) Validate() error {
	if c.Convergence.MaxDelay < c.Convergence.InitialDelay {
		return errors.ConfigInvalid("convergence.max_delay is shorter than convergence.initial_delay").
			WithDetail("initial_delay", c.Convergence.InitialDelay.String()).
			WithDetail("max_delay", c.Convergence.MaxDelay.String())
	}
	var logCfg logging.Config
	if err := c.UnmarshalExtension("logging", &logCfg); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid logging section")
	}
	return nil
}

// Logging returns the `logging` section.
func (c *Config) Logging() logging.Config {
	var logCfg logging.Config
	if err := c.UnmarshalExtension("logging", &logCfg); err != nil {
		logging.NewLogger("config").WithError(err).Warn("Ignoring invalid logging configuration")
		return logging.Config{}
	}
	return logCfg
}

// FindConfigFile searches $XDG_CONFIG_HOME/conductor and then
// ~/.config/conductor for the first existing conductor.{yml,yaml,toml}.
func FindConfigFile() (string, error) {
	dirs := paths.ConfigDirs()
	for _, dir := range dirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
	}

	searched := strings.Join(dirs, string(os.PathListSeparator))
	return "", errors.ConfigNotFound(searched).WithDetail("searchPath", searched)
}

func decodeRaw(data []byte, syntax Syntax) (map[string]interface{}, error) {
	raw := map[string]interface{}{}
	if len(bytes.TrimSpace(data)) == 0 {
		return raw, nil
	}
	var err error
	switch syntax {
	case TOML:
		err = toml.Unmarshal(data, &raw)
	default:
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, err
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}
	return raw, nil
}

// extensionsOf returns the top-level keys outside knownSections.
func extensionsOf(raw map[string]interface{}) map[string]interface{} {
	var ext map[string]interface{}
	for key, value := range raw {
		known := false
		for _, section := range knownSections {
			if key == section {
				known = true
				break
			}
		}
		if !known {
			if ext == nil {
				ext = make(map[string]interface{})
			}
			ext[key] = value
		}
	}
	return ext
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment values.
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}
