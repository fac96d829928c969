package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewShiftRepository(db)
	p := samplePayload()

	mock.ExpectBegin()
	mock.ExpectQuery(q(insertShiftQuery)).
		WithArgs(append([]any{int64(5)}, shiftArgs(p)...)...).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectExec(q(insertJobShiftMappingQuery)).
		WithArgs(int64(5), int64(11)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(q(getShiftQuery)).
		WithArgs(int64(11)).
		WillReturnRows(shiftRow(pgxmock.NewRows(shiftCols), 11, 5, p))
	mock.ExpectCommit()

	shift, err := repo.Create(context.Background(), 5, p)
	require.NoError(t, err)

	assert.Equal(t, int64(11), shift.ID)
	require.NotNil(t, shift.JodJobID)
	assert.Equal(t, int64(5), *shift.JodJobID)
	assert.Equal(t, p.HourlyRate, shift.HourlyRate)
	assert.Equal(t, p.ShiftStartTime, shift.ShiftStartTime)
	assert.Equal(t, p.ShiftUUID, shift.ShiftUUID)
	assert.Nil(t, shift.ShiftTemplateID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepository_Create_MappingFailureRollsBackShift(t *testing.T) {
	db, mock := newMock(t)
	repo := NewShiftRepository(db)
	p := samplePayload()
	fkErr := &pgconn.PgError{
		Code:           pgerrcode.ForeignKeyViolation,
		TableName:      "job_shift_mapping",
		ColumnName:     "job_id",
		ConstraintName: "job_shift_mapping_job_id_fkey",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(q(insertShiftQuery)).
		WithArgs(append([]any{int64(404)}, shiftArgs(p)...)...).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(12)))
	mock.ExpectExec(q(insertJobShiftMappingQuery)).
		WithArgs(int64(404), int64(12)).
		WillReturnError(fkErr)
	mock.ExpectRollback()

	shift, err := repo.Create(context.Background(), 404, p)

	require.Error(t, err)
	assert.Nil(t, shift)

	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Same(t, fkErr, pgErr)
	assert.NoError(t, mock.ExpectationsWereMet(), "the shift insert must be rolled back, never committed")
}

func TestShiftRepository_Update(t *testing.T) {
	db, mock := newMock(t)
	repo := NewShiftRepository(db)
	p := samplePayload()
	p.Status = "filled"
	templateID := int64(3)
	p.ShiftTemplateID = &templateID

	mock.ExpectBegin()
	mock.ExpectExec(q(updateShiftQuery)).
		WithArgs(append(shiftArgs(p), int64(7))...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(q(getShiftQuery)).
		WithArgs(int64(7)).
		WillReturnRows(shiftRow(pgxmock.NewRows(shiftCols), 7, 5, p))
	mock.ExpectCommit()

	shift, err := repo.Update(context.Background(), 7, p)
	require.NoError(t, err)

	assert.Equal(t, "filled", shift.Status)
	require.NotNil(t, shift.ShiftTemplateID)
	assert.Equal(t, templateID, *shift.ShiftTemplateID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepository_Update_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewShiftRepository(db)
	p := samplePayload()

	mock.ExpectBegin()
	mock.ExpectExec(q(updateShiftQuery)).
		WithArgs(append(shiftArgs(p), int64(999))...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectCommit()

	shift, err := repo.Update(context.Background(), 999, p)

	assert.ErrorIs(t, err, ErrShiftNotFound)
	assert.Nil(t, shift)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepository_Delete(t *testing.T) {
	tests := []struct {
		name    string
		rows    int64
		wantErr error
	}{
		{name: "deleted", rows: 1},
		{name: "missing", rows: 0, wantErr: ErrShiftNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewShiftRepository(db)

			mock.ExpectBegin()
			mock.ExpectExec(q(deleteShiftQuery)).
				WithArgs(int64(7)).
				WillReturnResult(pgxmock.NewResult("DELETE", tt.rows))
			mock.ExpectCommit()

			err := repo.Delete(context.Background(), 7)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestShiftRepository_Delete_DriverErrorRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewShiftRepository(db)
	cause := errors.New("connection lost")

	mock.ExpectBegin()
	mock.ExpectExec(q(deleteShiftQuery)).WithArgs(int64(7)).WillReturnError(cause)
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 7)

	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrShiftNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepository_ListSlots(t *testing.T) {
	db, mock := newMock(t)
	repo := NewShiftRepository(db)
	p := sampleSlotPayload()

	mock.ExpectBegin()
	mock.ExpectQuery(q(listShiftSlotsQuery)).
		WithArgs(int64(42)).
		WillReturnRows(slotRow(pgxmock.NewRows(slotCols), 1, 42, p))
	mock.ExpectCommit()

	slots, err := repo.ListSlots(context.Background(), 42)
	require.NoError(t, err)

	require.Len(t, slots, 1)
	assert.Equal(t, int64(42), slots[0].ShiftID)
	assert.Equal(t, p.SlotStartDate, slots[0].SlotStartDate)
	assert.Equal(t, p.SlotEndDate, slots[0].SlotEndDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepository_ListUsers(t *testing.T) {
	db, mock := newMock(t)
	repo := NewShiftRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(q(listShiftUsersQuery)).
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(int64(1), fixedTime, fixedTime, "Ana", "ana@example.com").
			AddRow(int64(2), fixedTime, fixedTime, "Budi", "budi@example.com"))
	mock.ExpectCommit()

	users, err := repo.ListUsers(context.Background(), 42)
	require.NoError(t, err)

	require.Len(t, users, 2)
	assert.Equal(t, "ana@example.com", users[0].Email)
	assert.Equal(t, "Budi", users[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
