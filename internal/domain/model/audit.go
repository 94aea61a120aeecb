package model

// AuditSnapshot compares a stored balance against the balance replayed from
// the signed sum of the user's history.
type AuditSnapshot struct {
	UserID   int64
	Stored   int64
	Replayed int64
}

// Consistent reports whether the stored balance matches the replayed one and
// stays within the allowed range.
func (s AuditSnapshot) Consistent() bool {
	return s.Stored == s.Replayed && s.Stored >= 0 && s.Stored <= MaxBalance
}
