// Package errs holds the error envelope returned to API clients.
//
// Handlers and services return *HTTPError for anything the client should
// see; the global error handler writes it as JSON. FieldError carries
// per-field validation failures.
package errs
