// Package sqlerr turns PostgreSQL driver errors into API errors.
//
// SQLSTATE codes are classified with pgerrcode. Constraint and data errors
// become 400s whose message names the entity and column involved; anything
// unrecognised becomes a bare 500.
package sqlerr
