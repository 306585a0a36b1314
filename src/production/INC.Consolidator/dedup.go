package consolidator

import (
	incmodels "gitlab.com/pmlabs1/inc.reader_server/src/production/INC.Models"
)

// DedupeBatch collapses a batch to one reading per record id, keeping the
// first occurrence in input order. Some device firmware exports the same
// logged interval twice within a single file. The map is scoped to this
// call; nothing is shared across uploads.
func DedupeBatch(readings []incmodels.Reading) ([]incmodels.Reading, int) {
	seen := make(map[string]struct{}, len(readings))
	unique := make([]incmodels.Reading, 0, len(readings))

	for _, reading := range readings {
		if _, dup := seen[reading.RecordID]; dup {
			continue
		}
		seen[reading.RecordID] = struct{}{}
		unique = append(unique, reading)
	}

	return unique, len(readings) - len(unique)
}
