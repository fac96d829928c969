// Package handler is the HTTP layer between the router and the services.
//
// Each endpoint is a typed function over a request struct from package
// model. Binding, validation, logging and tracing are done once by Handle,
// so an endpoint only calls its service and returns the result.
package handler
