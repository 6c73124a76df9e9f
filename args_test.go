package apidoc_test

import (
	"testing"

	"github.com/Gobd/apidoc"
	"github.com/Gobd/apidoc/fragment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgsToParameters_Locations(t *testing.T) {
	tests := []struct {
		location string
		want     string
	}{
		{"query", "query"},
		{"querystring", "query"},
		{"headers", "header"},
		{"header", "header"},
		{"cookies", "cookie"},
		{"cookie", "cookie"},
		{"path", "path"},
		{"form", "formData"},
		{"files", "formData"},
		{"json", "body"},
		{"body", "body"},
	}
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			args := fragment.Of("x", fragment.Of("type", "string", "location", tt.location))
			params, err := apidoc.ArgsToParameters(args, "")
			require.NoError(t, err)
			require.Len(t, params, 1)
			assert.Equal(t, tt.want, params[0].String("in"))
		})
	}
}

func TestArgsToParameters_DefaultLocation(t *testing.T) {
	args := fragment.Of(
		"a", fragment.Of("type", "string"),
		"b", fragment.Of("type", "string", "location", "headers"),
	)

	params, err := apidoc.ArgsToParameters(args, "querystring")
	require.NoError(t, err)
	assert.Equal(t, "query", params[0].String("in"))
	assert.Equal(t, "header", params[1].String("in"))

	params, err = apidoc.ArgsToParameters(args, "")
	require.NoError(t, err)
	assert.Equal(t, "body", params[0].String("in"))
}

func TestArgsToParameters_Descriptor(t *testing.T) {
	args := fragment.Of("user_id", fragment.Of(
		"type", "integer",
		"minimum", 1,
		"location", "query",
		"required", true,
		"description", "owner",
		"dest", "owner",
	))

	params, err := apidoc.ArgsToParameters(args, "")
	require.NoError(t, err)
	require.Len(t, params, 1)

	p := params[0]
	assert.Equal(t, []string{"in", "name", "required", "description", "schema"}, p.Keys())
	assert.Equal(t, "owner", p.String("name"))
	assert.Equal(t, "owner", p.String("description"))
	required, _ := p.Get("required")
	assert.Equal(t, true, required)
	assert.Equal(t, []string{"type", "minimum"}, p.Sub("schema").Keys())
}

func TestArgsToParameters_Multiple(t *testing.T) {
	args := fragment.Of(
		"ids", fragment.Of("type", "integer", "multiple", true, "location", "query"),
		"files", fragment.Of("type", "file", "multiple", true, "location", "files"),
	)

	params, err := apidoc.ArgsToParameters(args, "")
	require.NoError(t, err)

	ids := params[0]
	assert.Equal(t, "array", ids.Sub("schema").String("type"))
	assert.Equal(t, "integer", ids.Sub("schema").Sub("items").String("type"))
	assert.Equal(t, "form", ids.String("style"))
	explode, _ := ids.Get("explode")
	assert.Equal(t, true, explode)
	required, _ := ids.Get("required")
	assert.Equal(t, false, required)

	files := params[1]
	assert.Equal(t, "array", files.Sub("schema").String("type"))
	_, hasStyle := files.Get("style")
	assert.False(t, hasStyle)
}

func TestArgsToParameters_Errors(t *testing.T) {
	_, err := apidoc.ArgsToParameters(fragment.Of("x", fragment.Of("location", "nowhere")), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"x"`)

	_, err = apidoc.ArgsToParameters(fragment.Of("x", "string"), "")
	require.ErrorIs(t, err, apidoc.ErrInvalidArgument)
}

func TestArgsToParameters_Empty(t *testing.T) {
	params, err := apidoc.ArgsToParameters(nil, "")
	require.NoError(t, err)
	assert.Empty(t, params)
}
