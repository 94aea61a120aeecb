package model

import "time"

// MaxBalance is the hard upper bound for any user balance.
const MaxBalance int64 = 2_000_000

// UserPoint represents the current point balance of a single user.
// Exactly one live record exists per user; it is replaced on every mutation.
type UserPoint struct {
	UserID    int64
	Point     int64
	UpdatedAt time.Time
}
