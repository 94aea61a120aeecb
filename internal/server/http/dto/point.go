package dto

import "time"

// AmountRequest carries the magnitude of a charge or use operation.
type AmountRequest struct {
	Amount int64 `json:"amount"`
}

// PointResponse represents a user's current balance.
type PointResponse struct {
	UserID    int64     `json:"user_id"`
	Point     int64     `json:"point"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HistoryResponse describes one completed balance mutation.
type HistoryResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Amount    int64     `json:"amount"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrorResponse carries a human-readable failure reason.
type ErrorResponse struct {
	Error string `json:"error"`
}
