package interfaces

import (
	"context"
	"database/sql"

	incmodels "gitlab.com/pmlabs1/inc.reader_server/src/production/INC.Models"
)

// HistoryParams represents parameters for history queries. Date bounds are
// inclusive canonical strings (YYYY-MM-DD); either may be empty for an open
// bound.
type HistoryParams struct {
	DeviceID  string
	StartDate string
	EndDate   string
}

type ReadingRepository interface {
	// Transactional ingestion operations. FilterExisting and BulkInsert must
	// run on the same transaction so two concurrent uploads of overlapping
	// data cannot both observe "not present" and both insert.
	FilterExisting(ctx context.Context, tx *sql.Tx, recordIDs []string) (map[string]struct{}, error)
	BulkInsert(ctx context.Context, tx *sql.Tx, readings []incmodels.Reading) error

	// Read-only query operations
	ListDevices(ctx context.Context) ([]string, error)
	GetHistory(ctx context.Context, params HistoryParams) ([]incmodels.Reading, error)
	GetAvailableYears(ctx context.Context, deviceID string) ([]int, error)
	GetDateRange(ctx context.Context, deviceID string) (*incmodels.DateRange, error)
}
