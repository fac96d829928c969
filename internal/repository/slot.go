package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/jod-api/internal/database"
	"github.com/deppfellow/jod-api/internal/model"
)

const (
	slotColumns = `id, created_at, updated_at, shift_id, slot_start_date, slot_end_date, status`

	slotColumnsSl = `sl.id, sl.created_at, sl.updated_at, sl.shift_id, sl.slot_start_date,
		sl.slot_end_date, sl.status`

	getSlotQuery = `SELECT ` + slotColumns + ` FROM slots WHERE id = $1`

	insertSlotQuery = `
		INSERT INTO slots (shift_id, slot_start_date, slot_end_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id`

	updateSlotQuery = `
		UPDATE slots
		SET shift_id = $1,
			slot_start_date = $2,
			slot_end_date = $3,
			status = $4,
			updated_at = NOW()
		WHERE id = $5`

	deleteSlotQuery = `DELETE FROM slots WHERE id = $1`
)

// SlotRepository creates, replaces and deletes slots.
type SlotRepository struct {
	db database.Transactor
}

func NewSlotRepository(db database.Transactor) *SlotRepository {
	return &SlotRepository{db: db}
}

// Create inserts a slot for shiftID and reads it back. A shiftID with no
// shift fails on the foreign key.
func (r *SlotRepository) Create(ctx context.Context, shiftID int64, p model.SlotPayload) (*model.Slot, error) {
	var slot model.Slot

	err := r.db.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var slotID int64
		err := tx.QueryRow(ctx, insertSlotQuery,
			shiftID,
			p.SlotStartDate,
			p.SlotEndDate,
			p.Status,
		).Scan(&slotID)
		if err != nil {
			return fmt.Errorf("failed to insert slot: %w", err)
		}

		slot, err = getSlot(ctx, tx, slotID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &slot, nil
}

// Update replaces every mutable column of slotID, shiftID included, and
// returns the stored row or ErrSlotNotFound.
func (r *SlotRepository) Update(ctx context.Context, slotID, shiftID int64, p model.SlotPayload) (*model.Slot, error) {
	var (
		slot  model.Slot
		found bool
	)

	err := r.db.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, updateSlotQuery,
			shiftID,
			p.SlotStartDate,
			p.SlotEndDate,
			p.Status,
			slotID,
		)
		if err != nil {
			return fmt.Errorf("failed to update slot: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}

		found = true
		slot, err = getSlot(ctx, tx, slotID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrSlotNotFound
	}

	return &slot, nil
}

// Delete removes slotID or returns ErrSlotNotFound.
func (r *SlotRepository) Delete(ctx context.Context, slotID int64) error {
	var deleted bool

	err := r.db.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, deleteSlotQuery, slotID)
		if err != nil {
			return fmt.Errorf("failed to delete slot: %w", err)
		}
		deleted = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return err
	}
	if !deleted {
		return ErrSlotNotFound
	}

	return nil
}

func getSlot(ctx context.Context, tx pgx.Tx, slotID int64) (model.Slot, error) {
	rows, err := tx.Query(ctx, getSlotQuery, slotID)
	if err != nil {
		return model.Slot{}, fmt.Errorf("failed to select slot: %w", err)
	}

	slot, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Slot])
	if err != nil {
		return model.Slot{}, fmt.Errorf("failed to scan slot: %w", err)
	}
	return slot, nil
}
