package model

import "github.com/deppfellow/jod-api/internal/validation"

// JobStats counts the shifts mapped to a job and the slots of those shifts.
type JobStats struct {
	JobID     int64 `db:"job_id" json:"job_id"`
	NumShifts int64 `db:"num_shifts" json:"num_shifts"`
	NumSlots  int64 `db:"num_slots" json:"num_slots"`
}

type JobIDRequest struct {
	JobID int64 `param:"job_id" json:"-" validate:"gt=0"`
}

func (r *JobIDRequest) Validate() error {
	return validation.Struct(r)
}
