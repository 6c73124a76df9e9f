// Package openapi records apidoc path entries into a kin-openapi document and
// serves the result.
//
// Create a base document with [DocBase] or [Config.Doc], wrap it in a
// [Builder], hand the builder to apidoc.New, and serve the finished document
// with [SwaggerHandlerMust]:
//
//	b := openapi.NewBuilder(openapi.DocBase("my-api", "My API", "1.0"))
//	doc := apidoc.New(table, b)
//	doc.RegisterMust(listWidgets, "", "")
//	http.Handle("/swagger/", openapi.SwaggerHandlerMust("/swagger/", b.Doc()))
package openapi
