package consolidator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	incmodels "gitlab.com/pmlabs1/inc.reader_server/src/production/INC.Models"
)

func TestNormalizeRowRewritesDayFirstDates(t *testing.T) {
	reading, ok := NormalizeRow("INC-01", incmodels.UploadRow{
		Date: "05-03-2024",
		Time: "08:15:00",
	})

	require.True(t, ok)
	require.Equal(t, "2024-03-05", reading.LogDate)
	require.Equal(t, "08:15", reading.LogTime)
	require.Equal(t, "INC-01_2024-03-05_08:15", reading.RecordID)
}

func TestNormalizeRowKeepsCanonicalDates(t *testing.T) {
	reading, ok := NormalizeRow("INC-01", incmodels.UploadRow{
		Date: "2024-03-05",
		Time: "08:15",
	})

	require.True(t, ok)
	require.Equal(t, "2024-03-05", reading.LogDate)
	require.Equal(t, "08:15", reading.LogTime)
}

func TestNormalizeRowCombinedTimestamp(t *testing.T) {
	for _, raw := range []string{"2024-03-05T08:15:00", "05-03-2024 08:15"} {
		reading, ok := NormalizeRow("INC-01", incmodels.UploadRow{Date: raw})

		require.True(t, ok, raw)
		require.Equal(t, "2024-03-05", reading.LogDate, raw)
		require.Equal(t, "08:15", reading.LogTime, raw)
	}
}

func TestNormalizeRowSerialAndTextYieldSameKey(t *testing.T) {
	// The same physical reading encoded two ways must derive one identity.
	wallClock := time.Date(2024, 3, 5, 8, 15, 0, 0, time.UTC)
	serial := float64(wallClock.Unix())/86400 + excelEpochOffsetDays

	fromSerial, ok := NormalizeRow("INC-01", incmodels.UploadRow{Date: serial})
	require.True(t, ok)

	fromText, ok := NormalizeRow("INC-01", incmodels.UploadRow{
		Date: "05-03-2024",
		Time: "08:15:00",
	})
	require.True(t, ok)

	require.Equal(t, fromText.RecordID, fromSerial.RecordID)
	require.Equal(t, "2024-03-05", fromSerial.LogDate)
	require.Equal(t, "08:15", fromSerial.LogTime)
}

func TestNormalizeRowDropsBlankRows(t *testing.T) {
	for _, raw := range []any{nil, "", false} {
		_, ok := NormalizeRow("INC-01", incmodels.UploadRow{Date: raw})
		require.False(t, ok)
	}
}

func TestTemperatureHeuristic(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want float64
	}{
		{"missing decimal point", float64(215), 21.5},
		{"already scaled", 21.5, 21.5},
		{"numeric string", "215", 21.5},
		{"missing value", nil, 0},
		{"empty string", "", 0},
		{"boundary not scaled", float64(50), 50},
		{"negative artifact", float64(-215), -21.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, normalizeTemp(tt.raw), 1e-9)
		})
	}
}

func TestCounterAndMotorRounding(t *testing.T) {
	reading, ok := NormalizeRow("INC-01", incmodels.UploadRow{
		Date:           "2024-03-05",
		Time:           "08:15",
		DoorSeconds:    4.6,
		MotorTime:      3.14,
		NetworkSeconds: nil,
		AlarmSeconds:   "7.2",
	})

	require.True(t, ok)
	require.Equal(t, 5, reading.DoorSeconds)
	require.InDelta(t, 3.1, reading.MotorTime, 1e-9)
	require.Equal(t, 0, reading.NetworkSeconds)
	require.Equal(t, 7, reading.AlarmSeconds)
}
