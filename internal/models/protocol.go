package models

import "time"

type Protocol struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Duration    int       `json:"duration"`
	CurrentDay  int       `json:"current_day"`
	IsCompleted bool      `json:"is_completed"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProtocolCheckIn struct {
	ID          int64     `json:"id"`
	ProtocolID  int64     `json:"protocol_id"`
	UserID      int64     `json:"user_id"`
	CheckInDate time.Time `json:"check_in_date"`
	Notes       *string   `json:"notes"`
}
