package model

import "time"

// TransactionKind distinguishes the two balance mutations recorded in history.
type TransactionKind string

const (
	TransactionCharge TransactionKind = "CHARGE"
	TransactionUse    TransactionKind = "USE"
)

// PointHistory is an immutable audit record of one completed mutation.
// Amount holds the magnitude of the charge or use, never the resulting balance.
type PointHistory struct {
	ID        int64
	UserID    int64
	Amount    int64
	Kind      TransactionKind
	CreatedAt time.Time
}

// Signed returns the amount with the sign implied by the transaction kind,
// so that summing over a user's history in insertion order replays the balance.
func (h PointHistory) Signed() int64 {
	if h.Kind == TransactionUse {
		return -h.Amount
	}
	return h.Amount
}
