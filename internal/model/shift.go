package model

import (
	"github.com/google/uuid"

	"github.com/deppfellow/jod-api/internal/validation"
)

// Shift is a schedulable block of work linked to jobs through
// job_shift_mapping.
type Shift struct {
	Base
	JodJobID        *int64    `db:"jod_job_id" json:"jod_job_id"`
	HourlyRate      float64   `db:"hourly_rate" json:"hourly_rate"`
	TotalJobSalary  float64   `db:"total_job_salary" json:"total_job_salary"`
	XAvailable      bool      `db:"x_available" json:"x_available"`
	ShiftStartTime  string    `db:"shift_start_time" json:"shift_start_time"`
	ShiftEndTime    string    `db:"shift_end_time" json:"shift_end_time"`
	ShiftReminder   int32     `db:"shift_reminder" json:"shift_reminder"`
	Status          string    `db:"status" json:"status"`
	DaysOfWeek      string    `db:"days_of_week" json:"days_of_week"`
	ShiftTemplateID *int64    `db:"shift_template_id" json:"shift_template_id"`
	ShiftUUID       uuid.UUID `db:"shift_uuid" json:"shift_uuid"`
}

// ShiftPayload is the full set of mutable shift columns. Updates replace
// every one of them.
//
// Times are "HH:MM" or "HH:MM:SS". An omitted shift_uuid is generated on create.
type ShiftPayload struct {
	HourlyRate      float64   `json:"hourly_rate" validate:"gte=0"`
	TotalJobSalary  float64   `json:"total_job_salary" validate:"gte=0"`
	XAvailable      bool      `json:"x_available"`
	ShiftStartTime  string    `json:"shift_start_time" validate:"required,clock"`
	ShiftEndTime    string    `json:"shift_end_time" validate:"required,clock"`
	ShiftReminder   int32     `json:"shift_reminder" validate:"gte=0"`
	Status          string    `json:"status" validate:"required,max=50"`
	DaysOfWeek      string    `json:"days_of_week" validate:"max=100"`
	ShiftTemplateID *int64    `json:"shift_template_id"`
	ShiftUUID       uuid.UUID `json:"shift_uuid"`
}

type CreateShiftRequest struct {
	JobID int64 `param:"job_id" json:"-" validate:"gt=0"`
	ShiftPayload
}

func (r *CreateShiftRequest) Validate() error {
	return validation.Struct(r)
}

type ShiftIDRequest struct {
	ShiftID int64 `param:"shift_id" json:"-" validate:"gt=0"`
}

func (r *ShiftIDRequest) Validate() error {
	return validation.Struct(r)
}

type UpdateShiftRequest struct {
	ShiftID int64 `param:"shift_id" json:"-" validate:"gt=0"`
	ShiftPayload
}

func (r *UpdateShiftRequest) Validate() error {
	return validation.Struct(r)
}
