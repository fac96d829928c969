package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/jod-api/internal/database"
	"github.com/deppfellow/jod-api/internal/model"
)

var (
	shiftCols = []string{
		"id", "created_at", "updated_at", "jod_job_id", "hourly_rate", "total_job_salary",
		"x_available", "shift_start_time", "shift_end_time", "shift_reminder", "status",
		"days_of_week", "shift_template_id", "shift_uuid",
	}
	slotCols  = []string{"id", "created_at", "updated_at", "shift_id", "slot_start_date", "slot_end_date", "status"}
	userCols  = []string{"id", "created_at", "updated_at", "name", "email"}
	statsCols = []string{"job_id", "num_shifts", "num_slots"}

	fixedTime = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
)

func newMock(t *testing.T) (*database.Database, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	logger := zerolog.Nop()
	return database.NewWithPool(mock, &logger), mock
}

func q(query string) string {
	return regexp.QuoteMeta(query)
}

func samplePayload() model.ShiftPayload {
	return model.ShiftPayload{
		HourlyRate:     18.5,
		TotalJobSalary: 740,
		XAvailable:     true,
		ShiftStartTime: "09:00",
		ShiftEndTime:   "17:00",
		ShiftReminder:  30,
		Status:         "open",
		DaysOfWeek:     "mon,tue,wed",
		ShiftUUID:      uuid.MustParse("6f1c2a8e-3b7d-4c55-9a61-2f0e4d9b8c17"),
	}
}

func shiftArgs(p model.ShiftPayload) []any {
	return []any{
		p.HourlyRate, p.TotalJobSalary, p.XAvailable, p.ShiftStartTime, p.ShiftEndTime,
		p.ShiftReminder, p.Status, p.DaysOfWeek, p.ShiftTemplateID, p.ShiftUUID,
	}
}

func shiftRow(rows *pgxmock.Rows, id, jobID int64, p model.ShiftPayload) *pgxmock.Rows {
	return rows.AddRow(
		id, fixedTime, fixedTime, &jobID, p.HourlyRate, p.TotalJobSalary,
		p.XAvailable, p.ShiftStartTime, p.ShiftEndTime, p.ShiftReminder, p.Status,
		p.DaysOfWeek, p.ShiftTemplateID, p.ShiftUUID,
	)
}

func date(y int, m time.Month, d int) pgtype.Date {
	return pgtype.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

func sampleSlotPayload() model.SlotPayload {
	return model.SlotPayload{
		SlotStartDate: date(2024, 6, 3),
		SlotEndDate:   date(2024, 6, 7),
		Status:        "open",
	}
}

func slotRow(rows *pgxmock.Rows, id, shiftID int64, p model.SlotPayload) *pgxmock.Rows {
	return rows.AddRow(id, fixedTime, fixedTime, shiftID, p.SlotStartDate, p.SlotEndDate, p.Status)
}
