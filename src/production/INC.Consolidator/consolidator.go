package consolidator

import (
	"context"
	"database/sql"

	incmodels "gitlab.com/pmlabs1/inc.reader_server/src/production/INC.Models"
	logger "gitlab.com/pmlabs1/inc.reader_server/src/production/INC.Logger"
	interfaces "gitlab.com/pmlabs1/inc.reader_server/src/production/INC.Repository/Interfaces"
)

// Service runs the consolidation pipeline for one upload at a time:
// normalize rows, derive identities, collapse in-batch duplicates, filter
// out records already stored, and insert the remainder. The existence check
// and the insert share a single all-or-nothing transaction.
type Service struct {
	db     *sql.DB
	repo   interfaces.ReadingRepository
	logger *logger.Logger
}

// NewService creates a new consolidation service
func NewService(db *sql.DB, repo interfaces.ReadingRepository, log *logger.Logger) *Service {
	return &Service{
		db:     db,
		repo:   repo,
		logger: log,
	}
}

// Consolidate ingests one upload batch. Re-submission of an already-stored
// identity is a no-op, never an overwrite: ingestion is insert-only. On any
// storage failure the whole transaction rolls back and nothing from this
// upload is observable.
func (s *Service) Consolidate(ctx context.Context, deviceID, fileName string, rows []incmodels.UploadRow) (*incmodels.ConsolidationResult, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyBatch
	}

	result := &incmodels.ConsolidationResult{TotalReceived: len(rows)}

	normalized := make([]incmodels.Reading, 0, len(rows))
	for _, row := range rows {
		reading, ok := NormalizeRow(deviceID, row)
		if !ok {
			result.Dropped++
			continue
		}
		normalized = append(normalized, reading)
	}

	deduped, removed := DedupeBatch(normalized)
	result.DuplicatesInBatch = removed

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	// Released on every exit path; a committed tx makes this a no-op.
	defer tx.Rollback()

	recordIDs := make([]string, len(deduped))
	for i, reading := range deduped {
		recordIDs[i] = reading.RecordID
	}

	existing, err := s.repo.FilterExisting(ctx, tx, recordIDs)
	if err != nil {
		return nil, err
	}
	result.DuplicatesExisting = len(existing)

	var toInsert []incmodels.Reading
	for _, reading := range deduped {
		if _, present := existing[reading.RecordID]; !present {
			toInsert = append(toInsert, reading)
		}
	}

	// An empty to-insert set still commits: "everything already existed"
	// is a valid successful outcome.
	if len(toInsert) > 0 {
		if err := s.repo.BulkInsert(ctx, tx, toInsert); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	result.NewlyInserted = len(toInsert)

	s.logger.Logger.Info().
		Str("device_id", deviceID).
		Str("file_name", fileName).
		Int("total_received", result.TotalReceived).
		Int("newly_inserted", result.NewlyInserted).
		Int("duplicates_in_batch", result.DuplicatesInBatch).
		Int("duplicates_existing", result.DuplicatesExisting).
		Int("dropped", result.Dropped).
		Msg("consolidation complete")

	return result, nil
}
