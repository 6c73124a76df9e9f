// Package apidoc documents the routes of an HTTP router as OpenAPI operations.
//
// Handlers are described by a [*View] (one function serving every method of
// its route) or a [*Resource] (one handler per method). Each carries [Meta]:
// documentation overrides, argument fragments, and response fragments:
//
//	list := &apidoc.View{Name: "list_widgets", Meta: apidoc.Meta{
//	    Doc:     apidoc.Doc("summary", "List widgets"),
//	    Args:    []*fragment.Map{apidoc.ArgsForMust(ListQuery{}, "query")},
//	    Schemas: []*fragment.Map{apidoc.MarshalWithMust([]Widget{}, 200, "widgets")},
//	}}
//
// [Documentation.Register] looks the handler's endpoint up in a
// [routing.Table] and writes one [PathEntry] per matching rule to a [Spec]:
//
//	table, _ := routing.FromMux(router)
//	doc := apidoc.New(table, openapi.NewBuilder(openapi.DocBase("Widgets", "", "1.0")))
//	err := doc.Register(list, "", "")
//
// Argument and response structs may implement [Ruler]; the same rules then
// describe the generated schema and back [Validate].
//
// Sub-packages:
//   - fragment – the documentation fragment tree and its merge, filter and resolve helpers
//   - routing – routing tables, gorilla/mux and chi adapters, path translation
//   - openapi – kin-openapi document builder, config, and Swagger UI serving
package apidoc
