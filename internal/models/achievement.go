package models

import "time"

type Achievement struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Points      int       `json:"points"`
	CompletedAt time.Time `json:"completed_at"`
}
