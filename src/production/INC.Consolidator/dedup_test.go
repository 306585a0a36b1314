package consolidator

import (
	"testing"

	"github.com/stretchr/testify/require"
	incmodels "gitlab.com/pmlabs1/inc.reader_server/src/production/INC.Models"
)

func TestDedupeBatchKeepsFirstOccurrence(t *testing.T) {
	batch := []incmodels.Reading{
		{RecordID: "INC-01_2024-03-05_08:15", TempMin1: 21.5},
		{RecordID: "INC-01_2024-03-05_08:30", TempMin1: 22.0},
		{RecordID: "INC-01_2024-03-05_08:15", TempMin1: 99.9},
	}

	unique, removed := DedupeBatch(batch)

	require.Len(t, unique, 2)
	require.Equal(t, 1, removed)
	// First occurrence wins; the later measurement values are discarded.
	require.Equal(t, 21.5, unique[0].TempMin1)
	require.Equal(t, "INC-01_2024-03-05_08:30", unique[1].RecordID)
}

func TestDedupeBatchNoDuplicates(t *testing.T) {
	batch := []incmodels.Reading{
		{RecordID: "a"},
		{RecordID: "b"},
	}

	unique, removed := DedupeBatch(batch)

	require.Len(t, unique, 2)
	require.Zero(t, removed)
}

func TestDedupeBatchEmpty(t *testing.T) {
	unique, removed := DedupeBatch(nil)

	require.Empty(t, unique)
	require.Zero(t, removed)
}
