package implementation

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/lib/pq"
	incmodels "gitlab.com/pmlabs1/inc.reader_server/src/production/INC.Models"
	interfaces "gitlab.com/pmlabs1/inc.reader_server/src/production/INC.Repository/Interfaces"
)

type PostgresReadingRepository struct {
	db *sql.DB
}

func NewPostgresReadingRepository(db *sql.DB) *PostgresReadingRepository {
	return &PostgresReadingRepository{db: db}
}

// FilterExisting returns the subset of recordIDs that already have a stored
// reading. It runs on the caller's transaction so the result stays valid
// until the matching BulkInsert commits.
func (r *PostgresReadingRepository) FilterExisting(ctx context.Context, tx *sql.Tx, recordIDs []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{}, len(recordIDs))
	if len(recordIDs) == 0 {
		return existing, nil
	}

	query := `SELECT record_id FROM readings WHERE record_id = ANY($1)`

	rows, err := tx.QueryContext(ctx, query, pq.Array(recordIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		existing[id] = struct{}{}
	}

	return existing, rows.Err()
}

// BulkInsert inserts the readings on the caller's transaction via COPY.
// A primary-key violation surfaces as a pq error and aborts the whole
// transaction; created_at is filled by the column default.
func (r *PostgresReadingRepository) BulkInsert(ctx context.Context, tx *sql.Tx, readings []incmodels.Reading) error {
	if len(readings) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("readings",
		"record_id", "device_id", "log_date", "log_time",
		"temp_min_1", "temp_max_1", "temp_min_2", "temp_max_2",
		"door_seconds", "motor_time", "network_seconds", "alarm_seconds",
		"notes"))
	if err != nil {
		return err
	}

	for _, reading := range readings {
		_, err = stmt.ExecContext(ctx,
			reading.RecordID, reading.DeviceID, reading.LogDate, reading.LogTime,
			reading.TempMin1, reading.TempMax1, reading.TempMin2, reading.TempMax2,
			reading.DoorSeconds, reading.MotorTime, reading.NetworkSeconds, reading.AlarmSeconds,
			reading.Notes)
		if err != nil {
			stmt.Close()
			return err
		}
	}

	// Flush the COPY buffer; constraint violations are reported here.
	if _, err = stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return err
	}

	return stmt.Close()
}

func (r *PostgresReadingRepository) ListDevices(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT device_id FROM readings ORDER BY device_id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var devices []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		devices = append(devices, id)
	}

	return devices, rows.Err()
}

// GetHistory returns all readings for one device, most recent first. The
// DESC (log_date, log_time) ordering is relied upon by charting, which
// re-reverses it for chronological display.
func (r *PostgresReadingRepository) GetHistory(ctx context.Context, params interfaces.HistoryParams) ([]incmodels.Reading, error) {
	query := `
		SELECT record_id, device_id, log_date, log_time,
		       temp_min_1, temp_max_1, temp_min_2, temp_max_2,
		       door_seconds, motor_time, network_seconds, alarm_seconds,
		       notes, created_at
		FROM readings
		WHERE device_id = $1`
	args := []interface{}{params.DeviceID}

	if params.StartDate != "" {
		args = append(args, params.StartDate)
		query += " AND log_date >= $" + strconv.Itoa(len(args))
	}
	if params.EndDate != "" {
		args = append(args, params.EndDate)
		query += " AND log_date <= $" + strconv.Itoa(len(args))
	}

	query += " ORDER BY log_date DESC, log_time DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanReadings(rows)
}

func (r *PostgresReadingRepository) GetAvailableYears(ctx context.Context, deviceID string) ([]int, error) {
	// log_date is canonical YYYY-MM-DD, so the year is its first 4 chars.
	query := `
		SELECT DISTINCT left(log_date, 4) AS year
		FROM readings
		WHERE device_id = $1
		ORDER BY year DESC`

	rows, err := r.db.QueryContext(ctx, query, deviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var yearStr string
		if err := rows.Scan(&yearStr); err != nil {
			return nil, err
		}
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return nil, err
		}
		years = append(years, year)
	}

	return years, rows.Err()
}

func (r *PostgresReadingRepository) GetDateRange(ctx context.Context, deviceID string) (*incmodels.DateRange, error) {
	query := `SELECT MIN(log_date), MAX(log_date) FROM readings WHERE device_id = $1`

	var minDate, maxDate sql.NullString
	if err := r.db.QueryRowContext(ctx, query, deviceID).Scan(&minDate, &maxDate); err != nil {
		return nil, err
	}

	rng := &incmodels.DateRange{}
	if minDate.Valid {
		rng.MinDate = &minDate.String
	}
	if maxDate.Valid {
		rng.MaxDate = &maxDate.String
	}

	return rng, nil
}

func (r *PostgresReadingRepository) scanReadings(rows *sql.Rows) ([]incmodels.Reading, error) {
	var readings []incmodels.Reading

	for rows.Next() {
		var reading incmodels.Reading

		if err := rows.Scan(
			&reading.RecordID, &reading.DeviceID, &reading.LogDate, &reading.LogTime,
			&reading.TempMin1, &reading.TempMax1, &reading.TempMin2, &reading.TempMax2,
			&reading.DoorSeconds, &reading.MotorTime, &reading.NetworkSeconds, &reading.AlarmSeconds,
			&reading.Notes, &reading.CreatedAt); err != nil {
			return nil, err
		}

		readings = append(readings, reading)
	}

	return readings, rows.Err()
}
