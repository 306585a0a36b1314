package consolidator

import (
	"math"
	"strconv"
	"strings"
	"time"

	incmodels "gitlab.com/pmlabs1/inc.reader_server/src/production/INC.Models"
)

// Days between the Excel serial epoch (1899-12-30) and the Unix epoch.
const excelEpochOffsetDays = 25569

// NormalizeRow converts one raw spreadsheet row into a canonical reading
// for deviceID. It returns ok=false for blank/footer rows (no value in the
// date cell), which are dropped silently rather than reported as errors.
func NormalizeRow(deviceID string, row incmodels.UploadRow) (incmodels.Reading, bool) {
	logDate, logTime, ok := resolveTimestamp(row.Date, row.Time)
	if !ok {
		return incmodels.Reading{}, false
	}

	reading := incmodels.Reading{
		DeviceID:       deviceID,
		LogDate:        logDate,
		LogTime:        logTime,
		TempMin1:       normalizeTemp(row.TempMin1),
		TempMax1:       normalizeTemp(row.TempMax1),
		TempMin2:       normalizeTemp(row.TempMin2),
		TempMax2:       normalizeTemp(row.TempMax2),
		DoorSeconds:    roundCounter(row.DoorSeconds),
		MotorTime:      normalizeMotorTime(row.MotorTime),
		NetworkSeconds: roundCounter(row.NetworkSeconds),
		AlarmSeconds:   roundCounter(row.AlarmSeconds),
		Notes:          row.Notes,
	}
	reading.RecordID = DeriveRecordID(deviceID, logDate, logTime)

	return reading, true
}

// resolveTimestamp turns the heterogeneous date/time cells into canonical
// strings. Textual inputs are handled with pure string operations: the
// original system shipped a bug where routing these values through a
// timezone-aware date type shifted them by one day, so no such value is
// ever constructed here.
func resolveTimestamp(rawDate any, rawTime string) (string, string, bool) {
	switch v := rawDate.(type) {
	case float64:
		// Excel serial day number, fractional part is the time of day.
		secs := math.Round((v - excelEpochOffsetDays) * 86400)
		t := time.Unix(int64(secs), 0).UTC()
		return t.Format("2006-01-02"), t.Format("15:04"), true
	case string:
		if v == "" {
			return "", "", false
		}
		// Combined timestamp: a 10-char date, a separator, then the time.
		if len(v) >= 16 && (v[10] == 'T' || v[10] == ' ') {
			return normalizeDate(v[:10]), normalizeTime(v[11:]), true
		}
		return normalizeDate(v), normalizeTime(rawTime), true
	default:
		// nil, false, or anything else the sheet parser produced for a
		// blank cell.
		return "", "", false
	}
}

// normalizeDate rewrites DD-MM-YYYY to YYYY-MM-DD; already-canonical dates
// pass through unchanged.
func normalizeDate(dateStr string) string {
	parts := strings.Split(dateStr, "-")
	if len(parts) == 3 && len(parts[0]) == 2 && len(parts[2]) == 4 {
		return parts[2] + "-" + parts[1] + "-" + parts[0]
	}
	return dateStr
}

// normalizeTime truncates HH:MM:SS to HH:MM; shorter values pass through.
func normalizeTime(timeStr string) string {
	if len(timeStr) > 5 {
		return timeStr[:5]
	}
	return timeStr
}

// normalizeTemp coerces a raw temperature cell. Values with magnitude above
// 50 are divided by 10: some device firmware emits readings without the
// decimal point (215 means 21.5). Legitimately extreme readings would be
// mis-scaled by this rule; it is kept as observed in the field.
func normalizeTemp(raw any) float64 {
	num := toFloat(raw)
	if num == 0 {
		return 0
	}
	if math.Abs(num) > 50 {
		return num / 10
	}
	return num
}

// roundCounter coerces a raw counter cell to the nearest integer.
func roundCounter(raw any) int {
	return int(math.Round(toFloat(raw)))
}

// normalizeMotorTime coerces the motor-time cell to one decimal place.
func normalizeMotorTime(raw any) float64 {
	return math.Round(toFloat(raw)*10) / 10
}

// toFloat coerces a heterogeneous cell value to a float64, treating
// missing, empty and unparseable values as 0.
func toFloat(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if v == "" {
			return 0
		}
		num, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return num
	default:
		return 0
	}
}
