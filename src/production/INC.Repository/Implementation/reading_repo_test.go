package implementation

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	interfaces "gitlab.com/pmlabs1/inc.reader_server/src/production/INC.Repository/Interfaces"
)

func newTestRepo(t *testing.T) (*PostgresReadingRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgresReadingRepository(db), mock
}

func historyColumns() []string {
	return []string{
		"record_id", "device_id", "log_date", "log_time",
		"temp_min_1", "temp_max_1", "temp_min_2", "temp_max_2",
		"door_seconds", "motor_time", "network_seconds", "alarm_seconds",
		"notes", "created_at",
	}
}

func TestListDevices(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT DISTINCT device_id FROM readings ORDER BY device_id ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"device_id"}).
			AddRow("INC-01").
			AddRow("INC-02"))

	devices, err := repo.ListDevices(context.Background())

	require.NoError(t, err)
	require.Equal(t, []string{"INC-01", "INC-02"}, devices)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetHistoryWithoutBounds(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`WHERE device_id = \$1\s+ORDER BY log_date DESC, log_time DESC`).
		WithArgs("INC-01").
		WillReturnRows(sqlmock.NewRows(historyColumns()).
			AddRow("INC-01_2024-03-05_08:30", "INC-01", "2024-03-05", "08:30",
				21.7, 22.3, 21.5, 22.1, 0, 3.1, 0, 0, "", time.Now()).
			AddRow("INC-01_2024-03-05_08:15", "INC-01", "2024-03-05", "08:15",
				21.5, 22.1, 21.3, 21.9, 5, 3.0, 0, 0, "", time.Now()))

	readings, err := repo.GetHistory(context.Background(), interfaces.HistoryParams{DeviceID: "INC-01"})

	require.NoError(t, err)
	require.Len(t, readings, 2)
	require.Equal(t, "08:30", readings[0].LogTime)
	require.Equal(t, 21.5, readings[1].TempMin1)
	require.Equal(t, 5, readings[1].DoorSeconds)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetHistoryAppliesDateBounds(t *testing.T) {
	repo, mock := newTestRepo(t)

	pattern := `WHERE device_id = \$1 AND log_date >= \$2 AND log_date <= \$3 ORDER BY log_date DESC, log_time DESC`
	mock.ExpectQuery(pattern).
		WithArgs("INC-01", "2024-03-01", "2024-03-31").
		WillReturnRows(sqlmock.NewRows(historyColumns()))

	readings, err := repo.GetHistory(context.Background(), interfaces.HistoryParams{
		DeviceID:  "INC-01",
		StartDate: "2024-03-01",
		EndDate:   "2024-03-31",
	})

	require.NoError(t, err)
	require.Empty(t, readings)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetHistoryStartBoundOnly(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(`WHERE device_id = \$1 AND log_date >= \$2 ORDER BY`).
		WithArgs("INC-01", "2024-03-01").
		WillReturnRows(sqlmock.NewRows(historyColumns()))

	_, err := repo.GetHistory(context.Background(), interfaces.HistoryParams{
		DeviceID:  "INC-01",
		StartDate: "2024-03-01",
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAvailableYears(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT DISTINCT left(log_date, 4) AS year`)).
		WithArgs("INC-01").
		WillReturnRows(sqlmock.NewRows([]string{"year"}).
			AddRow("2025").
			AddRow("2024"))

	years, err := repo.GetAvailableYears(context.Background(), "INC-01")

	require.NoError(t, err)
	require.Equal(t, []int{2025, 2024}, years)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDateRange(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT MIN(log_date), MAX(log_date) FROM readings WHERE device_id = $1`)).
		WithArgs("INC-01").
		WillReturnRows(sqlmock.NewRows([]string{"min", "max"}).
			AddRow("2024-01-02", "2024-03-05"))

	rng, err := repo.GetDateRange(context.Background(), "INC-01")

	require.NoError(t, err)
	require.NotNil(t, rng.MinDate)
	require.NotNil(t, rng.MaxDate)
	require.Equal(t, "2024-01-02", *rng.MinDate)
	require.Equal(t, "2024-03-05", *rng.MaxDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDateRangeUnknownDevice(t *testing.T) {
	repo, mock := newTestRepo(t)

	// MIN/MAX over zero rows yields SQL NULLs, not a missing row.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT MIN(log_date), MAX(log_date)`)).
		WithArgs("INC-99").
		WillReturnRows(sqlmock.NewRows([]string{"min", "max"}).
			AddRow(nil, nil))

	rng, err := repo.GetDateRange(context.Background(), "INC-99")

	require.NoError(t, err)
	require.Nil(t, rng.MinDate)
	require.Nil(t, rng.MaxDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFilterExistingEmptyInput(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectBegin()
	tx, err := repo.db.Begin()
	require.NoError(t, err)

	existing, err := repo.FilterExisting(context.Background(), tx, nil)

	require.NoError(t, err)
	require.Empty(t, existing)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkInsertEmptyInput(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectBegin()
	tx, err := repo.db.Begin()
	require.NoError(t, err)

	require.NoError(t, repo.BulkInsert(context.Background(), tx, nil))
	require.NoError(t, mock.ExpectationsWereMet())
}
