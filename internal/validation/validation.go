// Package validation binds request data and runs go-playground/validator
// over it, translating failures into errs.FieldError entries keyed by the
// JSON or path parameter name the client sent.
package validation
