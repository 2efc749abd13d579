package models

import "time"

type User struct {
	ID            int64      `json:"id"`
	Username      string     `json:"username"`
	Password      string     `json:"-"`
	FirstName     *string    `json:"first_name"`
	LastName      *string    `json:"last_name"`
	Email         *string    `json:"email"`
	BiohackScore  int        `json:"biohack_score"`
	CurrentStreak int        `json:"current_streak"`
	LastCheckIn   *time.Time `json:"last_check_in"`
	CreatedAt     time.Time  `json:"created_at"`
}

// EngagementState is the derived slice of a user that check-ins maintain.
type EngagementState struct {
	BiohackScore  int        `json:"biohack_score"`
	CurrentStreak int        `json:"current_streak"`
	LastCheckIn   *time.Time `json:"last_check_in"`
}

func (u *User) Engagement() EngagementState {
	return EngagementState{
		BiohackScore:  u.BiohackScore,
		CurrentStreak: u.CurrentStreak,
		LastCheckIn:   u.LastCheckIn,
	}
}
