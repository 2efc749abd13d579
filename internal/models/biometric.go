package models

import "time"

// Biometric is one self-reported check-in entry. Metric fields are optional
// and, when present, lie in [0,100]. Entries are append-only.
type Biometric struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Date         time.Time `json:"date"`
	SleepQuality *int      `json:"sleep_quality"`
	EnergyLevel  *int      `json:"energy_level"`
	StressLevel  *int      `json:"stress_level"`
	FocusLevel   *int      `json:"focus_level"`
	MoodLevel    *int      `json:"mood_level"`
	Notes        *string   `json:"notes"`
}
