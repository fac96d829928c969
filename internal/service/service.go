// Package service maps repository results onto API semantics: sentinel
// not-found errors become 404s, defaults are filled before writes and
// successful mutations are logged with the request logger.
package service
