package incmodels

import "time"

// Reading is one stored interval measurement for an incubator at a specific
// date and time. Date and time are kept as canonical strings ("YYYY-MM-DD",
// "HH:MM"); no timezone-aware value is ever materialized for them.
type Reading struct {
	RecordID       string    `json:"record_id"`
	DeviceID       string    `json:"device_id"`
	LogDate        string    `json:"log_date"`
	LogTime        string    `json:"log_time"`
	TempMin1       float64   `json:"temp_min_1"`
	TempMax1       float64   `json:"temp_max_1"`
	TempMin2       float64   `json:"temp_min_2"`
	TempMax2       float64   `json:"temp_max_2"`
	DoorSeconds    int       `json:"door_seconds"`
	MotorTime      float64   `json:"motor_time"`
	NetworkSeconds int       `json:"network_seconds"`
	AlarmSeconds   int       `json:"alarm_seconds"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// DateRange holds the earliest and latest log dates stored for a device.
// Both pointers are nil when the device has no readings.
type DateRange struct {
	MinDate *string `json:"minDate"`
	MaxDate *string `json:"maxDate"`
}
