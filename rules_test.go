package apidoc_test

import (
	"testing"

	"github.com/Gobd/apidoc"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helper to create a fresh schema + ref for each test
func newTestSchemaRef() (*openapi3.Schema, *openapi3.SchemaRef) {
	return openapi3.NewSchema(), &openapi3.SchemaRef{Value: openapi3.NewSchema()}
}

func TestDescribe_Required(t *testing.T) {
	schema, ref := newTestSchemaRef()

	require.NoError(t, apidoc.Required.Describe("name", schema, ref))
	require.NoError(t, apidoc.Required.Describe("email", schema, ref))

	assert.Equal(t, []string{"name", "email"}, schema.Required)
}

func TestDescribe_MinMax(t *testing.T) {
	schema, ref := newTestSchemaRef()

	require.NoError(t, apidoc.Min(5).Describe("age", schema, ref))
	require.NoError(t, apidoc.Max(100.5).Describe("age", schema, ref))

	require.NotNil(t, ref.Value.Min)
	require.NotNil(t, ref.Value.Max)
	assert.Equal(t, float64(5), *ref.Value.Min)
	assert.Equal(t, 100.5, *ref.Value.Max)
}

func TestDescribe_MinNotNumber(t *testing.T) {
	schema, ref := newTestSchemaRef()

	assert.Error(t, apidoc.Min("abc").Describe("age", schema, ref))
}

func TestDescribe_Length(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		schema, ref := newTestSchemaRef()
		ref.Value.Type = &openapi3.Types{openapi3.TypeString}

		require.NoError(t, apidoc.Length(2, 10).Describe("name", schema, ref))

		assert.Equal(t, uint64(2), ref.Value.MinLength)
		require.NotNil(t, ref.Value.MaxLength)
		assert.Equal(t, uint64(10), *ref.Value.MaxLength)
	})
	t.Run("array", func(t *testing.T) {
		schema, ref := newTestSchemaRef()
		ref.Value.Type = &openapi3.Types{openapi3.TypeArray}

		require.NoError(t, apidoc.Length(1, 0).Describe("tags", schema, ref))

		assert.Equal(t, uint64(1), ref.Value.MinItems)
		assert.Nil(t, ref.Value.MaxItems)
		assert.Nil(t, ref.Value.MaxLength)
	})
}

func TestDescribe_In(t *testing.T) {
	schema, ref := newTestSchemaRef()

	require.NoError(t, apidoc.In("a", "b").Describe("kind", schema, ref))

	assert.Equal(t, []any{"a", "b"}, ref.Value.Enum)
}

func TestDescribe_DocRules(t *testing.T) {
	schema, ref := newTestSchemaRef()

	for _, r := range []apidoc.Rule{
		apidoc.Describe("first"),
		apidoc.Describe("second"),
		apidoc.Example("x"),
		apidoc.Default("y"),
		apidoc.Deprecate(),
	} {
		require.NoError(t, r.Describe("field", schema, ref))
		assert.NoError(t, r.Validate("anything"))
	}

	assert.Equal(t, "first second", ref.Value.Description)
	assert.Equal(t, "x", ref.Value.Example)
	assert.Equal(t, "y", ref.Value.Default)
	assert.True(t, ref.Value.Deprecated)
}

func TestRules_Validate(t *testing.T) {
	assert.Error(t, apidoc.Required.Validate(""))
	assert.NoError(t, apidoc.Required.Validate("x"))
	assert.Error(t, apidoc.Min(3).Validate(2))
	assert.NoError(t, apidoc.Max(3).Validate(3))
	assert.Error(t, apidoc.Length(1, 3).Validate("abcd"))
	assert.EqualError(t, apidoc.In("a", "b").Validate("c"), "must be one of 'a', 'b'")
}
