// Package repository handles all interactions with the database.
//
// Every exported method runs as exactly one unit of work
// (database.Transactor.WithTx). Statements that must appear atomic, such
// as a shift and its job mapping, share that single scope.
//
// A missing record is reported with a sentinel error (ErrShiftNotFound,
// ErrSlotNotFound, ErrJobNotFound) once the scope has committed; it never
// causes a rollback.
package repository

import "errors"

var (
	ErrJobNotFound   = errors.New("job not found")
	ErrShiftNotFound = errors.New("shift not found")
	ErrSlotNotFound  = errors.New("slot not found")
)
