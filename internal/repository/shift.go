package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/jod-api/internal/database"
	"github.com/deppfellow/jod-api/internal/model"
)

const (
	shiftColumns = `id, created_at, updated_at, jod_job_id, hourly_rate, total_job_salary,
		x_available, shift_start_time, shift_end_time, shift_reminder, status,
		days_of_week, shift_template_id, shift_uuid`

	shiftColumnsS = `s.id, s.created_at, s.updated_at, s.jod_job_id, s.hourly_rate, s.total_job_salary,
		s.x_available, s.shift_start_time, s.shift_end_time, s.shift_reminder, s.status,
		s.days_of_week, s.shift_template_id, s.shift_uuid`

	getShiftQuery = `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1`

	insertShiftQuery = `
		INSERT INTO shifts (
			jod_job_id, hourly_rate, total_job_salary, x_available, shift_start_time,
			shift_end_time, shift_reminder, status, days_of_week, shift_template_id,
			shift_uuid, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW()
		) RETURNING id`

	insertJobShiftMappingQuery = `
		INSERT INTO job_shift_mapping (job_id, shift_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())`

	updateShiftQuery = `
		UPDATE shifts
		SET hourly_rate = $1,
			total_job_salary = $2,
			x_available = $3,
			shift_start_time = $4,
			shift_end_time = $5,
			shift_reminder = $6,
			status = $7,
			days_of_week = $8,
			shift_template_id = $9,
			shift_uuid = COALESCE(NULLIF($10, '00000000-0000-0000-0000-000000000000'::uuid), shift_uuid),
			updated_at = NOW()
		WHERE id = $11`

	deleteShiftQuery = `DELETE FROM shifts WHERE id = $1`

	listShiftSlotsQuery = `
		SELECT ` + slotColumnsSl + `
		FROM slots sl
		JOIN shifts s ON s.id = sl.shift_id
		WHERE s.id = $1
		ORDER BY sl.id`

	listShiftUsersQuery = `
		SELECT u.id, u.created_at, u.updated_at, u.name, u.email
		FROM users u
		JOIN shift_user su ON su.app_user_id = u.id
		JOIN shifts s ON s.id = su.shift_id
		WHERE s.id = $1
		ORDER BY u.id`
)

// ShiftRepository creates, replaces and deletes shifts and reads what hangs
// off them.
type ShiftRepository struct {
	db database.Transactor
}

func NewShiftRepository(db database.Transactor) *ShiftRepository {
	return &ShiftRepository{db: db}
}

// ListSlots returns the slots of shiftID ordered by id.
func (r *ShiftRepository) ListSlots(ctx context.Context, shiftID int64) ([]model.Slot, error) {
	var slots []model.Slot

	err := r.db.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, listShiftSlotsQuery, shiftID)
		if err != nil {
			return fmt.Errorf("failed to list slots for shift: %w", err)
		}

		slots, err = pgx.AppendRows(make([]model.Slot, 0), rows, pgx.RowToStructByName[model.Slot])
		if err != nil {
			return fmt.Errorf("failed to scan slots: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return slots, nil
}

// ListUsers returns the users who applied to shiftID.
func (r *ShiftRepository) ListUsers(ctx context.Context, shiftID int64) ([]model.User, error) {
	var users []model.User

	err := r.db.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, listShiftUsersQuery, shiftID)
		if err != nil {
			return fmt.Errorf("failed to list users for shift: %w", err)
		}

		users, err = pgx.AppendRows(make([]model.User, 0), rows, pgx.RowToStructByName[model.User])
		if err != nil {
			return fmt.Errorf("failed to scan users: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

// Create inserts the shift, links it to jobID and reads it back. The three
// statements share one transaction: if the mapping insert fails the shift
// row is rolled back with it.
func (r *ShiftRepository) Create(ctx context.Context, jobID int64, p model.ShiftPayload) (*model.Shift, error) {
	var shift model.Shift

	err := r.db.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var shiftID int64
		err := tx.QueryRow(ctx, insertShiftQuery,
			jobID,
			p.HourlyRate,
			p.TotalJobSalary,
			p.XAvailable,
			p.ShiftStartTime,
			p.ShiftEndTime,
			p.ShiftReminder,
			p.Status,
			p.DaysOfWeek,
			p.ShiftTemplateID,
			p.ShiftUUID,
		).Scan(&shiftID)
		if err != nil {
			return fmt.Errorf("failed to insert shift: %w", err)
		}

		if _, err := tx.Exec(ctx, insertJobShiftMappingQuery, jobID, shiftID); err != nil {
			return fmt.Errorf("failed to map shift to job: %w", err)
		}

		shift, err = getShift(ctx, tx, shiftID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &shift, nil
}

// Update replaces every mutable column of shiftID and returns the stored
// row, or ErrShiftNotFound when no such shift exists. A zero shift_uuid
// keeps the stored one.
func (r *ShiftRepository) Update(ctx context.Context, shiftID int64, p model.ShiftPayload) (*model.Shift, error) {
	var (
		shift model.Shift
		found bool
	)

	err := r.db.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, updateShiftQuery,
			p.HourlyRate,
			p.TotalJobSalary,
			p.XAvailable,
			p.ShiftStartTime,
			p.ShiftEndTime,
			p.ShiftReminder,
			p.Status,
			p.DaysOfWeek,
			p.ShiftTemplateID,
			p.ShiftUUID,
			shiftID,
		)
		if err != nil {
			return fmt.Errorf("failed to update shift: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}

		found = true
		shift, err = getShift(ctx, tx, shiftID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrShiftNotFound
	}

	return &shift, nil
}

// Delete removes shiftID. Its job mappings, slots and applications go with
// it through ON DELETE CASCADE.
func (r *ShiftRepository) Delete(ctx context.Context, shiftID int64) error {
	var deleted bool

	err := r.db.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, deleteShiftQuery, shiftID)
		if err != nil {
			return fmt.Errorf("failed to delete shift: %w", err)
		}
		deleted = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return err
	}
	if !deleted {
		return ErrShiftNotFound
	}

	return nil
}

func getShift(ctx context.Context, tx pgx.Tx, shiftID int64) (model.Shift, error) {
	rows, err := tx.Query(ctx, getShiftQuery, shiftID)
	if err != nil {
		return model.Shift{}, fmt.Errorf("failed to select shift: %w", err)
	}

	shift, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Shift])
	if err != nil {
		return model.Shift{}, fmt.Errorf("failed to scan shift: %w", err)
	}
	return shift, nil
}
