package models

import "time"

// UserLogin is a read-only login event served by the analytics feeds.
type UserLogin struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Destination string    `json:"destination"`
	Scope       string    `json:"scope"`
	IPAddress   string    `json:"ip_address"`
	LoginType   string    `json:"login_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// ActivityCount is a per-day action counter for a user. Purely displayed,
// never mutated client-side.
type ActivityCount struct {
	Date          string `json:"date"`
	MessageCount  int    `json:"message_count"`
	ReactionCount int    `json:"reaction_count"`
}
