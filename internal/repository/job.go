package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/jod-api/internal/database"
	"github.com/deppfellow/jod-api/internal/model"
)

const (
	listJobShiftsQuery = `
		SELECT ` + shiftColumnsS + `
		FROM shifts s
		JOIN job_shift_mapping jsm ON jsm.shift_id = s.id
		WHERE jsm.job_id = $1
		ORDER BY s.id`

	listJobSlotsQuery = `
		SELECT ` + slotColumnsSl + `
		FROM slots sl
		JOIN job_shift_mapping jsm ON jsm.shift_id = sl.shift_id
		JOIN jod_jobs j ON j.id = jsm.job_id
		WHERE j.id = $1
		ORDER BY sl.id`

	jobStatsQuery = `
		SELECT
			j.id AS job_id,
			COUNT(DISTINCT jsm.shift_id) AS num_shifts,
			COUNT(sl.id) AS num_slots
		FROM jod_jobs j
		LEFT JOIN job_shift_mapping jsm ON jsm.job_id = j.id
		LEFT JOIN slots sl ON sl.shift_id = jsm.shift_id
		WHERE j.id = $1
		GROUP BY j.id`
)

// JobRepository reads shifts, slots and statistics through a job.
type JobRepository struct {
	db database.Transactor
}

func NewJobRepository(db database.Transactor) *JobRepository {
	return &JobRepository{db: db}
}

// ListShifts returns the shifts mapped to jobID ordered by id.
// An unknown job yields an empty list.
func (r *JobRepository) ListShifts(ctx context.Context, jobID int64) ([]model.Shift, error) {
	var shifts []model.Shift

	err := r.db.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, listJobShiftsQuery, jobID)
		if err != nil {
			return fmt.Errorf("failed to list shifts for job: %w", err)
		}

		shifts, err = pgx.AppendRows(make([]model.Shift, 0), rows, pgx.RowToStructByName[model.Shift])
		if err != nil {
			return fmt.Errorf("failed to scan shifts: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return shifts, nil
}

// ListSlots returns every slot of every shift mapped to jobID.
func (r *JobRepository) ListSlots(ctx context.Context, jobID int64) ([]model.Slot, error) {
	var slots []model.Slot

	err := r.db.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, listJobSlotsQuery, jobID)
		if err != nil {
			return fmt.Errorf("failed to list slots for job: %w", err)
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

// GetStats counts the distinct shifts mapped to jobID and the slots of those
// shifts. A job with no shifts reports zeros; a job that does not exist
// returns ErrJobNotFound.
func (r *JobRepository) GetStats(ctx context.Context, jobID int64) (*model.JobStats, error) {
	var (
		stats model.JobStats
		found = true
	)

	err := r.db.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, jobStatsQuery, jobID)
		if err != nil {
			return fmt.Errorf("failed to query job stats: %w", err)
		}

		stats, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.JobStats])
		if errors.Is(err, pgx.ErrNoRows) {
			found = false
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to scan job stats: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrJobNotFound
	}

	return &stats, nil
}
