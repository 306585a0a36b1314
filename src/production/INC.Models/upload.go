package incmodels

// UploadRow is one raw spreadsheet row as delivered by the upload client.
// Cell values arrive untyped: the timestamp may be an Excel serial day
// number (JSON number), a combined textual timestamp, or a plain date string
// with the time in a separate cell. Measurement cells may be numbers,
// numeric strings, or absent.
type UploadRow struct {
	Date           any    `json:"date"`
	Time           string `json:"time"`
	TempMin1       any    `json:"temp_min_1"`
	TempMax1       any    `json:"temp_max_1"`
	TempMin2       any    `json:"temp_min_2"`
	TempMax2       any    `json:"temp_max_2"`
	DoorSeconds    any    `json:"door_seconds"`
	MotorTime      any    `json:"motor_time"`
	NetworkSeconds any    `json:"network_seconds"`
	AlarmSeconds   any    `json:"alarm_seconds"`
	Notes          string `json:"notes"`
}

// UploadRequest is the body of a consolidation call. FileName is
// informational only and never participates in key derivation.
type UploadRequest struct {
	DeviceID string      `json:"deviceId" binding:"required"`
	FileName string      `json:"fileName"`
	Rows     []UploadRow `json:"rows"`
}

// ConsolidationResult reports the outcome of one upload. The accounting
// identity NewlyInserted + DuplicatesInBatch + DuplicatesExisting ==
// TotalReceived - Dropped holds for every successful call.
type ConsolidationResult struct {
	TotalReceived      int
	NewlyInserted      int
	DuplicatesInBatch  int
	DuplicatesExisting int
	Dropped            int
}

// SkippedDuplicates is the caller-facing duplicate count: rows collapsed
// inside the batch plus rows already present in storage.
func (r *ConsolidationResult) SkippedDuplicates() int {
	return r.DuplicatesInBatch + r.DuplicatesExisting
}
