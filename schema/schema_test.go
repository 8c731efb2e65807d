package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type section struct {
	Mode  string `yaml:"mode" jsonschema:"enum=fast,enum=slow"`
	Count int    `yaml:"count,omitempty" jsonschema:"minimum=1"`
}

type document struct {
	Section section `yaml:"section,omitempty"`
}

func TestGenerateUsesFieldNameTag(t *testing.T) {
	data, err := Generate(&document{}, Options{Title: "Test", FieldNameTag: "yaml", Strict: true})
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Test", doc["title"])
	assert.Equal(t, draft07, doc["$schema"])

	props := doc["properties"].(map[string]interface{})
	sec := props["section"].(map[string]interface{})
	assert.Contains(t, sec["properties"], "mode")
	assert.Contains(t, sec["properties"], "count")
}

func TestGenerateSlice(t *testing.T) {
	data, err := Generate(&[]section{}, Options{Title: "Sections", FieldNameTag: "yaml", Strict: true})
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Sections", doc["title"])
	assert.Equal(t, "array", doc["type"])

	items := doc["items"].(map[string]interface{})
	assert.Equal(t, "object", items["type"])
	assert.Equal(t, false, items["additionalProperties"])
	assert.Contains(t, items["properties"], "mode")

	v, err := NewValidator("sections.json", data)
	require.NoError(t, err)
	assert.NoError(t, v.Validate([]interface{}{map[string]interface{}{"mode": "fast"}}))
	assert.Error(t, v.Validate([]interface{}{map[string]interface{}{"mode": "warp"}}))
}

func TestValidator(t *testing.T) {
	data, err := Generate(&document{}, Options{FieldNameTag: "yaml", Strict: true, OpenRoot: true})
	require.NoError(t, err)
	v, err := NewValidator("test.json", data)
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, v.Validate(map[string]interface{}{
			"section": map[string]interface{}{"mode": "fast", "count": 2},
		}))
	})

	t.Run("unknown root keys are allowed", func(t *testing.T) {
		assert.NoError(t, v.Validate(map[string]interface{}{"extra": true}))
	})

	t.Run("bad enum", func(t *testing.T) {
		err := v.Validate(map[string]interface{}{
			"section": map[string]interface{}{"mode": "warp"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "/section/mode")
	})

	t.Run("unknown nested key", func(t *testing.T) {
		err := v.Validate(map[string]interface{}{
			"section": map[string]interface{}{"mode": "fast", "colour": "red"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "schema validation failed")
	})
}

func TestNewValidatorRejectsBrokenSchema(t *testing.T) {
	_, err := NewValidator("broken.json", []byte(`{"type": 7}`))
	assert.Error(t, err)
}
