package model

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/deppfellow/jod-api/internal/validation"
)

// Slot is a bookable instance within a shift. Dates are "YYYY-MM-DD".
type Slot struct {
	Base
	ShiftID       int64       `db:"shift_id" json:"shift_id"`
	SlotStartDate pgtype.Date `db:"slot_start_date" json:"slot_start_date"`
	SlotEndDate   pgtype.Date `db:"slot_end_date" json:"slot_end_date"`
	Status        string      `db:"status" json:"status"`
}

// SlotPayload holds the mutable slot columns.
type SlotPayload struct {
	SlotStartDate pgtype.Date `json:"slot_start_date" validate:"required"`
	SlotEndDate   pgtype.Date `json:"slot_end_date" validate:"required"`
	Status        string      `json:"status" validate:"required,max=50"`
}

type CreateSlotRequest struct {
	ShiftID int64 `param:"shift_id" json:"-" validate:"gt=0"`
	SlotPayload
}

func (r *CreateSlotRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateSlotRequest may move the slot to another shift.
type UpdateSlotRequest struct {
	SlotID  int64 `param:"slot_id" json:"-" validate:"gt=0"`
	ShiftID int64 `json:"shift_id" validate:"gt=0"`
	SlotPayload
}

func (r *UpdateSlotRequest) Validate() error {
	return validation.Struct(r)
}

type SlotIDRequest struct {
	SlotID int64 `param:"slot_id" json:"-" validate:"gt=0"`
}

func (r *SlotIDRequest) Validate() error {
	return validation.Struct(r)
}
