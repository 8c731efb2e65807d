// Package schema reflects JSON Schemas from Go types and validates
// documents against them.
package schema

import (
	"encoding/json"
	"reflect"

	"github.com/invopop/jsonschema"
)

const draft07 = "http://json-schema.org/draft-07/schema#"

// Options tunes reflection.
type Options struct {
	Title       string
	Description string
	// FieldNameTag selects the struct tag used for property names.
	// Empty means "json".
	FieldNameTag string
	// Strict rejects unknown properties in nested objects. The root
	// object always accepts additional properties when OpenRoot is set.
	Strict   bool
	OpenRoot bool
}

// Reflect builds the schema for v. Structs are expanded at the root;
// slices and other kinds reflect to their inline schema.
func Reflect(v interface{}, opts Options) *jsonschema.Schema {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: !opts.Strict,
		ExpandedStruct:            isStruct(v),
		DoNotReference:            true,
		FieldNameTag:              opts.FieldNameTag,
	}

	s := r.Reflect(v)
	s.Title = opts.Title
	s.Description = opts.Description
	s.Version = draft07
	if opts.OpenRoot {
		s.AdditionalProperties = nil
	}
	return s
}

// Generate reflects v and returns the indented schema document.
func Generate(v interface{}, opts Options) ([]byte, error) {
	return json.MarshalIndent(Reflect(v, opts), "", "  ")
}

func isStruct(v interface{}) bool {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t != nil && t.Kind() == reflect.Struct
}
