package openapi_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/Gobd/apidoc"
	"github.com/Gobd/apidoc/fragment"
	"github.com/Gobd/apidoc/openapi"
	"github.com/Gobd/apidoc/routing"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_AddPath(t *testing.T) {
	b := openapi.NewBuilder(openapi.DocBase("Widgets", "", "1.0.0"))
	entry := apidoc.PathEntry{
		Path: "/widgets/{id}",
		Operations: map[string]*fragment.Map{
			"put": fragment.Of(
				"summary", "Replace a widget",
				"responses", apidoc.MarshalWithMust(fragment.Of("type", "object"), 200, "the widget"),
				"parameters", fragment.List(
					fragment.Of("in", "path", "name", "id", "required", true, "schema", fragment.Of("type", "string")),
					fragment.Of("in", "body", "name", "widget", "required", true, "description", "new state",
						"schema", fragment.Of("type", "object")),
				),
			),
			"options": fragment.Of("responses", fragment.New(), "parameters", fragment.List(
				fragment.Of("in", "path", "name", "id", "required", true, "schema", fragment.Of("type", "string")),
			)),
		},
	}

	require.NoError(t, b.AddPath(entry))

	item := b.Doc().Paths.Value("/widgets/{id}")
	require.NotNil(t, item)
	require.NotNil(t, item.Put)
	require.NotNil(t, item.Options)
	assert.Nil(t, item.Get)

	put := item.Put
	assert.Equal(t, "Replace a widget", put.Summary)
	require.Len(t, put.Parameters, 1)
	assert.Equal(t, "id", put.Parameters[0].Value.Name)

	require.NotNil(t, put.RequestBody)
	rb := put.RequestBody.Value
	assert.True(t, rb.Required)
	assert.Equal(t, "new state", rb.Description)
	mt := rb.Content.Get("application/json")
	require.NotNil(t, mt)
	assert.True(t, mt.Schema.Value.Type.Is("object"))

	resp := put.Responses.Value("200")
	require.NotNil(t, resp)
	require.NotNil(t, resp.Value.Description)
	assert.Equal(t, "the widget", *resp.Value.Description)
	assert.NotNil(t, resp.Value.Content.Get("application/json"))

	assert.NotNil(t, item.Options.Responses)
	require.NoError(t, b.Doc().Validate(context.Background()))
}

func TestBuilder_AddPathUnsupportedMethod(t *testing.T) {
	b := openapi.NewBuilder(openapi.DocBase("Widgets", "", "1.0.0"))

	err := b.AddPath(apidoc.PathEntry{
		Path:       "/widgets",
		Operations: map[string]*fragment.Map{"head": fragment.New()},
	})
	require.ErrorIs(t, err, openapi.ErrUnsupportedMethod)
	assert.Nil(t, b.Doc().Paths.Value("/widgets"))
}

func TestBuilder_AddPathKeepsOtherMethods(t *testing.T) {
	b := openapi.NewBuilder(openapi.DocBase("Widgets", "", "1.0.0"))
	get := apidoc.PathEntry{Path: "/widgets", Operations: map[string]*fragment.Map{
		"get": fragment.Of("summary", "List widgets"),
	}}
	post := apidoc.PathEntry{Path: "/widgets", Operations: map[string]*fragment.Map{
		"post": fragment.Of("summary", "Create a widget"),
	}}

	require.NoError(t, b.AddPath(get))
	require.NoError(t, b.AddPath(post))

	item := b.Doc().Paths.Value("/widgets")
	assert.Equal(t, "List widgets", item.Get.Summary)
	assert.Equal(t, "Create a widget", item.Post.Summary)
}

func TestNewOperation_FormData(t *testing.T) {
	op, err := openapi.NewOperation(fragment.Of(
		"parameters", fragment.List(
			fragment.Of("in", "formData", "name", "title", "required", true, "schema", fragment.Of("type", "string")),
			fragment.Of("in", "formData", "name", "upload", "required", false, "schema", fragment.Of("type", "file")),
			fragment.Of("in", "query", "name", "dry_run", "required", false, "schema", fragment.Of("type", "boolean")),
		),
	))
	require.NoError(t, err)

	require.Len(t, op.Parameters, 1)
	assert.Equal(t, "dry_run", op.Parameters[0].Value.Name)

	require.NotNil(t, op.RequestBody)
	rb := op.RequestBody.Value
	assert.True(t, rb.Required)
	assert.Nil(t, rb.Content.Get("application/x-www-form-urlencoded"))
	mt := rb.Content.Get("multipart/form-data")
	require.NotNil(t, mt)
	schema := mt.Schema.Value
	assert.Equal(t, []string{"title"}, schema.Required)
	upload := schema.Properties["upload"].Value
	assert.True(t, upload.Type.Is("string"))
	assert.Equal(t, "binary", upload.Format)

	assert.NotNil(t, op.Responses)
}

func TestNewOperation_SeveralBodies(t *testing.T) {
	op, err := openapi.NewOperation(fragment.Of(
		"parameters", fragment.List(
			fragment.Of("in", "body", "name", "name", "required", true, "description", "display name",
				"schema", fragment.Of("type", "string")),
			fragment.Of("in", "body", "name", "size", "required", false, "schema", fragment.Of("type", "integer")),
		),
	))
	require.NoError(t, err)

	assert.Empty(t, op.Parameters)
	rb := op.RequestBody.Value
	assert.Empty(t, rb.Description)
	schema := rb.Content.Get("application/json").Schema.Value
	assert.True(t, schema.Type.Is("object"))
	assert.Equal(t, []string{"name"}, schema.Required)
	assert.Equal(t, "display name", schema.Properties["name"].Value.Description)
	assert.True(t, schema.Properties["size"].Value.Type.Is("integer"))
}

func TestNewOperation_ExistingRequestBody(t *testing.T) {
	op, err := openapi.NewOperation(fragment.Of(
		"requestBody", fragment.Of(
			"content", fragment.Of("text/plain", fragment.Of("schema", fragment.Of("type", "string"))),
		),
		"parameters", fragment.List(
			fragment.Of("in", "body", "name", "ignored", "schema", fragment.Of("type", "object")),
		),
	))
	require.NoError(t, err)

	assert.Empty(t, op.Parameters)
	assert.NotNil(t, op.RequestBody.Value.Content.Get("text/plain"))
	assert.Nil(t, op.RequestBody.Value.Content.Get("application/json"))
}

func TestNewOperation_ResponseDefaults(t *testing.T) {
	frag := fragment.Of("responses", fragment.Of(
		"204", fragment.New(),
		"404", fragment.Of("description", "missing", "schema", fragment.Of("type", "object")),
	))

	op, err := openapi.NewOperation(frag)
	require.NoError(t, err)

	noContent := op.Responses.Value("204").Value
	require.NotNil(t, noContent.Description)
	assert.Empty(t, *noContent.Description)
	assert.Nil(t, noContent.Content)

	missing := op.Responses.Value("404").Value
	assert.Equal(t, "missing", *missing.Description)
	assert.NotNil(t, missing.Content.Get("application/json"))

	// the fragment given is left as it was
	_, hasSchema := frag.Sub("responses").Sub("404").Get("schema")
	assert.True(t, hasSchema)
}

type createWidget struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

func (c *createWidget) Rules() []*apidoc.FieldRules {
	return []*apidoc.FieldRules{
		apidoc.Field(&c.Name, apidoc.Required, apidoc.Length(1, 64)),
		apidoc.Field(&c.Size, apidoc.Min(1)),
	}
}

func TestDocumentation_EndToEnd(t *testing.T) {
	noop := func(http.ResponseWriter, *http.Request) {}
	r := chi.NewRouter()
	r.Get("/widgets", noop)
	r.Post("/widgets", noop)
	r.Get("/widgets/{id:[0-9]+}", noop)
	r.Delete("/widgets/{id:[0-9]+}", noop)

	names := map[string]string{
		"/widgets":             "list_widgets",
		"/widgets/{id:[0-9]+}": "widget",
	}
	table, err := routing.FromChi(r, func(_, pattern string) string { return names[pattern] })
	require.NoError(t, err)

	cfg := openapi.Config{Title: "Widgets", Version: "1.0.0", ServerURL: "https://api.example.com", SwaggerPrefix: "/swagger/"}
	require.NoError(t, cfg.Validate())
	b := openapi.NewBuilder(cfg.Doc())
	doc := apidoc.New(table, b)

	list := &apidoc.View{Name: "list_widgets", Meta: apidoc.Meta{
		Doc: apidoc.Doc("tags", fragment.List("widgets")),
		Args: []*fragment.Map{
			apidoc.UseArgs(fragment.Of("page", fragment.Of("type", "integer", "location", "query")), ""),
			apidoc.ArgsForMust(createWidget{}, "json"),
		},
		Schemas: []*fragment.Map{
			apidoc.MarshalWithMust([]createWidget{}, 200, "widgets"),
		},
	}}
	widget := &apidoc.Resource{
		Name: "Widget",
		Meta: apidoc.Meta{
			Schemas: []*fragment.Map{apidoc.MarshalWithMust(fragment.Ref("error"), 404, "not found")},
		},
		Handlers: map[string]*apidoc.Meta{
			"get": {
				Doc:     apidoc.Doc("summary", "Get a widget", "params", fragment.Of("id", fragment.Of("description", "widget id"))),
				Schemas: []*fragment.Map{apidoc.MarshalWithMust(fragment.Ref("widget"), 200, "the widget")},
			},
			"delete": {Schemas: []*fragment.Map{apidoc.MarshalWithMust(nil, 204, "deleted")}},
		},
		Refs: map[string]any{
			"widget": apidoc.SchemaMust(createWidget{}),
			"error":  fragment.Of("type", "object", "properties", fragment.Of("message", fragment.Of("type", "string"))),
		},
	}

	require.NoError(t, doc.Register(list, "", ""))
	require.NoError(t, doc.Register(widget, "", ""))

	spec := b.Doc()
	require.NoError(t, spec.Validate(context.Background()))

	widgets := spec.Paths.Value("/widgets")
	require.NotNil(t, widgets)
	require.NotNil(t, widgets.Post)
	assert.Equal(t, []string{"widgets"}, widgets.Get.Tags)
	require.Len(t, widgets.Post.Parameters, 1)
	assert.Equal(t, "page", widgets.Post.Parameters[0].Value.Name)
	body := widgets.Post.RequestBody.Value.Content.Get("application/json").Schema.Value
	assert.ElementsMatch(t, []string{"name", "size"}, mapKeys(body.Properties))

	item := spec.Paths.Value("/widgets/{id}")
	require.NotNil(t, item)
	require.Len(t, item.Get.Parameters, 1)
	id := item.Get.Parameters[0].Value
	assert.Equal(t, "path", id.In)
	assert.Equal(t, "widget id", id.Description)
	assert.True(t, id.Schema.Value.Type.Is("integer"))
	assert.NotNil(t, item.Get.Responses.Value("200"))
	assert.NotNil(t, item.Get.Responses.Value("404"))
	assert.NotNil(t, item.Delete.Responses.Value("204"))
	assert.Nil(t, item.Post)
}

func mapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
