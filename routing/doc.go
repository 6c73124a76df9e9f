// Package routing describes the routing table that documentation is generated
// from. A [Rule] binds an endpoint name to a URL pattern and the HTTP methods
// it accepts; a [Table] looks rules up by endpoint.
//
// [FromMux] and [FromChi] read the table out of a gorilla/mux or chi router.
// [Path] and [Params] translate a rule into an OpenAPI path template and its
// path parameters.
package routing
