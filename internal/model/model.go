// Package model holds the records read from and written to PostgreSQL
// together with the request and response shapes built on them.
package model

import "time"

// Base carries the columns every table shares.
// CreatedAt and UpdatedAt are always set by the database.
type Base struct {
	ID        int64     `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// MessageResponse is returned by operations that have no record to show.
type MessageResponse struct {
	Message string `json:"message"`
}
