package config

import (
	"github.com/grovetools/conductor/logging"
	"github.com/grovetools/conductor/schema"
)

const schemaName = "conductor.schema.json"

// document is the shape of a configuration file, including the
// extension sections conductor itself understands.
type document struct {
	Output      OutputConfig      `yaml:"output,omitempty" jsonschema:"description=Output settings"`
	Convergence ConvergenceConfig `yaml:"convergence,omitempty" jsonschema:"description=How long to wait for compositor state to settle"`
	Wayland     WaylandConfig     `yaml:"wayland,omitempty" jsonschema:"description=Compositor connection"`
	Logging     logging.Config    `yaml:"logging,omitempty" jsonschema:"description=Diagnostic logging"`
}

// GenerateSchema returns the JSON Schema of conductor.yml. Unknown nested
// keys are rejected; unknown top-level sections are left to their owners.
func GenerateSchema() ([]byte, error) {
	return schema.Generate(&document{}, schema.Options{
		Title:        "Conductor Configuration",
		Description:  "Schema for conductor.yml and conductor.toml.",
		FieldNameTag: "yaml",
		Strict:       true,
		OpenRoot:     true,
	})
}

// SchemaValidator validates configuration documents.
type SchemaValidator struct {
	validator *schema.Validator
}

// NewSchemaValidator compiles the reflected configuration schema.
func NewSchemaValidator() (*SchemaValidator, error) {
	data, err := GenerateSchema()
	if err != nil {
		return nil, err
	}
	validator, err := schema.NewValidator(schemaName, data)
	if err != nil {
		return nil, err
	}
	return &SchemaValidator{validator: validator}, nil
}

// Validate validates a decoded configuration document.
func (v *SchemaValidator) Validate(document interface{}) error {
	return v.validator.Validate(document)
}
