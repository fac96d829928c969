package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/jod-api/internal/config"
	"github.com/deppfellow/jod-api/internal/database"
	"github.com/deppfellow/jod-api/internal/errs"
	"github.com/deppfellow/jod-api/internal/handler"
	"github.com/deppfellow/jod-api/internal/model"
	"github.com/deppfellow/jod-api/internal/repository"
	"github.com/deppfellow/jod-api/internal/server"
	"github.com/deppfellow/jod-api/internal/service"
)

var (
	shiftCols = []string{
		"id", "created_at", "updated_at", "jod_job_id", "hourly_rate", "total_job_salary",
		"x_available", "shift_start_time", "shift_end_time", "shift_reminder", "status",
		"days_of_week", "shift_template_id", "shift_uuid",
	}
	slotCols = []string{"id", "created_at", "updated_at", "shift_id", "slot_start_date", "slot_end_date", "status"}

	fixedTime = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	shiftUUID = uuid.MustParse("6f1c2a8e-3b7d-4c55-9a61-2f0e4d9b8c17")
)

const shiftBody = `{
	"hourly_rate": 18.5,
	"total_job_salary": 740,
	"x_available": true,
	"shift_start_time": "09:00",
	"shift_end_time": "17:00",
	"shift_reminder": 30,
	"status": "open",
	"days_of_week": "mon,tue",
	"shift_uuid": "6f1c2a8e-3b7d-4c55-9a61-2f0e4d9b8c17"
}`

// containsMatcher matches when the executed SQL contains the expected
// fragment, so tests name the statement without copying it.
var containsMatcher = pgxmock.QueryMatcherFunc(func(expected, actual string) error {
	if !strings.Contains(actual, expected) {
		return fmt.Errorf("query %q does not contain %q", actual, expected)
	}
	return nil
})

type testApp struct {
	mock pgxmock.PgxPoolIface
	e    http.Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mock, err := pgxmock.NewPool(
		pgxmock.QueryMatcherOption(containsMatcher),
	)
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Server:        config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
		DB:     database.NewWithPool(mock, &logger),
	}

	services, err := service.NewServices(s, repository.NewRepositories(s))
	require.NoError(t, err)

	return &testApp{
		mock: mock,
		e:    NewRouter(s, handler.NewHandlers(s, services)),
	}
}

func (a *testApp) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// shiftBodyArgs are the columns of shiftBody in statement order, hourly_rate
// through shift_uuid.
func shiftBodyArgs() []any {
	return []any{
		18.5, 740.0, true, "09:00", "17:00", int32(30), "open",
		"mon,tue", (*int64)(nil), shiftUUID,
	}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestCreateShift(t *testing.T) {
	app := newTestApp(t)
	jobID := int64(5)

	app.mock.ExpectBegin()
	app.mock.ExpectQuery("INSERT INTO shifts").
		WithArgs(append([]any{jobID}, shiftBodyArgs()...)...).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))
	app.mock.ExpectExec("INSERT INTO job_shift_mapping").
		WithArgs(jobID, int64(42)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	app.mock.ExpectQuery("FROM shifts WHERE id = $1").
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows(shiftCols).AddRow(
			int64(42), fixedTime, fixedTime, &jobID, 18.5, 740.0,
			true, "09:00", "17:00", int32(30), "open",
			"mon,tue", (*int64)(nil), shiftUUID,
		))
	app.mock.ExpectCommit()

	rec := app.do(http.MethodPost, "/jobs/5/shifts", shiftBody)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	shift := decode[model.Shift](t, rec)
	assert.Equal(t, int64(42), shift.ID)
	assert.Equal(t, shiftUUID, shift.ShiftUUID)
	require.NotNil(t, shift.JodJobID)
	assert.Equal(t, jobID, *shift.JodJobID)
	assert.NoError(t, app.mock.ExpectationsWereMet())
}

func TestUpdateShift_TimesWithSeconds(t *testing.T) {
	app := newTestApp(t)
	body := strings.NewReplacer(`"09:00"`, `"09:00:00"`, `"17:00"`, `"17:30:00"`).Replace(shiftBody)
	args := shiftBodyArgs()
	args[3], args[4] = "09:00:00", "17:30:00"
	jobID := int64(5)

	app.mock.ExpectBegin()
	app.mock.ExpectExec("UPDATE shifts").
		WithArgs(append(args, int64(42))...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	app.mock.ExpectQuery("FROM shifts WHERE id = $1").
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows(shiftCols).AddRow(
			int64(42), fixedTime, fixedTime, &jobID, 18.5, 740.0,
			true, "09:00:00", "17:30:00", int32(30), "open",
			"mon,tue", (*int64)(nil), shiftUUID,
		))
	app.mock.ExpectCommit()

	rec := app.do(http.MethodPut, "/shifts/42", body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	shift := decode[model.Shift](t, rec)
	assert.Equal(t, "09:00:00", shift.ShiftStartTime)
	assert.Equal(t, "17:30:00", shift.ShiftEndTime)
	assert.NoError(t, app.mock.ExpectationsWereMet())
}

func TestCreateShift_UnknownJobRollsBack(t *testing.T) {
	app := newTestApp(t)

	app.mock.ExpectBegin()
	app.mock.ExpectQuery("INSERT INTO shifts").
		WithArgs(append([]any{int64(999)}, shiftBodyArgs()...)...).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))
	app.mock.ExpectExec("INSERT INTO job_shift_mapping").
		WithArgs(int64(999), int64(42)).
		WillReturnError(&pgconn.PgError{
			Code:           pgerrcode.ForeignKeyViolation,
			Severity:       "ERROR",
			Message:        "insert or update on table \"job_shift_mapping\" violates foreign key constraint",
			TableName:      "job_shift_mapping",
			ConstraintName: "job_shift_mapping_job_id_fkey",
		})
	app.mock.ExpectRollback()

	rec := app.do(http.MethodPost, "/jobs/999/shifts", shiftBody)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, app.mock.ExpectationsWereMet())
}

func TestCreateShift_Invalid(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/jobs/5/shifts", `{"status": ""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[errs.HTTPError](t, rec)
	assert.Equal(t, "Validation failed", body.Message)
	assert.NotEmpty(t, body.Errors)
	assert.NoError(t, app.mock.ExpectationsWereMet())
}

func TestUpdateShift_NotFound(t *testing.T) {
	app := newTestApp(t)

	app.mock.ExpectBegin()
	app.mock.ExpectExec("UPDATE shifts").
		WithArgs(append(shiftBodyArgs(), int64(999))...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	app.mock.ExpectCommit()

	rec := app.do(http.MethodPut, "/shifts/999", shiftBody)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "Shift not found", body["error"])
	assert.NoError(t, app.mock.ExpectationsWereMet())
}

func TestDeleteShift(t *testing.T) {
	app := newTestApp(t)

	app.mock.ExpectBegin()
	app.mock.ExpectExec("DELETE FROM shifts").
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	app.mock.ExpectCommit()

	rec := app.do(http.MethodDelete, "/shifts/3", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Shift deleted successfully"}`, rec.Body.String())
	assert.NoError(t, app.mock.ExpectationsWereMet())
}

func TestDeleteSlot_NotFound(t *testing.T) {
	app := newTestApp(t)

	app.mock.ExpectBegin()
	app.mock.ExpectExec("DELETE FROM slots").
		WithArgs(int64(8)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	app.mock.ExpectCommit()

	rec := app.do(http.MethodDelete, "/slots/8", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "Slot not found", body["error"])
	assert.NoError(t, app.mock.ExpectationsWereMet())
}

func TestCreateSlot(t *testing.T) {
	app := newTestApp(t)
	start := pgtype.Date{Time: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), Valid: true}
	end := pgtype.Date{Time: time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC), Valid: true}

	app.mock.ExpectBegin()
	app.mock.ExpectQuery("INSERT INTO slots").
		WithArgs(int64(3), pgxmock.AnyArg(), pgxmock.AnyArg(), "open").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))
	app.mock.ExpectQuery("FROM slots WHERE id = $1").
		WithArgs(int64(11)).
		WillReturnRows(pgxmock.NewRows(slotCols).AddRow(int64(11), fixedTime, fixedTime, int64(3), start, end, "open"))
	app.mock.ExpectCommit()

	rec := app.do(http.MethodPost, "/shifts/3/slots",
		`{"slot_start_date":"2024-06-03","slot_end_date":"2024-06-07","status":"open"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	slot := decode[map[string]any](t, rec)
	assert.Equal(t, float64(11), slot["id"])
	assert.Equal(t, "2024-06-03", slot["slot_start_date"])
	assert.NoError(t, app.mock.ExpectationsWereMet())
}

func TestCreateSlot_BadShiftID(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/shifts/0/slots",
		`{"slot_start_date":"2024-06-03","slot_end_date":"2024-06-07","status":"open"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[errs.HTTPError](t, rec)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "shift_id", body.Errors[0].Field)
}

func TestJobStats(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		app := newTestApp(t)

		app.mock.ExpectBegin()
		app.mock.ExpectQuery("COUNT").
			WithArgs(int64(5)).
			WillReturnRows(pgxmock.NewRows([]string{"job_id", "num_shifts", "num_slots"}).
				AddRow(int64(5), int64(2), int64(3)))
		app.mock.ExpectCommit()

		rec := app.do(http.MethodGet, "/jobs/5/stats", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"job_id":5,"num_shifts":2,"num_slots":3}`, rec.Body.String())
		assert.NoError(t, app.mock.ExpectationsWereMet())
	})

	t.Run("missing job", func(t *testing.T) {
		app := newTestApp(t)

		app.mock.ExpectBegin()
		app.mock.ExpectQuery("COUNT").
			WithArgs(int64(404)).
			WillReturnRows(pgxmock.NewRows([]string{"job_id", "num_shifts", "num_slots"}))
		app.mock.ExpectCommit()

		rec := app.do(http.MethodGet, "/jobs/404/stats", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decode[map[string]any](t, rec)
		assert.Equal(t, "Job not found", body["error"])
		assert.NoError(t, app.mock.ExpectationsWereMet())
	})
}

func TestListJobShifts_Empty(t *testing.T) {
	app := newTestApp(t)

	app.mock.ExpectBegin()
	app.mock.ExpectQuery("FROM shifts").
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(shiftCols))
	app.mock.ExpectCommit()

	rec := app.do(http.MethodGet, "/jobs/5/shifts", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.NoError(t, app.mock.ExpectationsWereMet())
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		app := newTestApp(t)
		app.mock.ExpectPing()

		rec := app.do(http.MethodGet, "/status", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decode[handler.HealthResponse](t, rec)
		assert.Equal(t, "healthy", body.Status)
		assert.Equal(t, "healthy", body.Checks["database"].Status)
	})

	t.Run("database down", func(t *testing.T) {
		app := newTestApp(t)
		app.mock.ExpectPing().WillReturnError(assert.AnError)

		rec := app.do(http.MethodGet, "/status", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		body := decode[handler.HealthResponse](t, rec)
		assert.Equal(t, "unhealthy", body.Status)
		assert.Equal(t, assert.AnError.Error(), body.Checks["database"].Error)
	})
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "Route not found", body["error"])
}
