package models

// Embedding is a stored face-embedding record. The vector is opaque to the
// service: it is never compared, indexed or searched, only stored and
// returned. UserID is a loose reference to a User; existence is not enforced
// and the relation is never navigated.
type Embedding struct {
	ID     int64
	UserID int64
	Vector []float64
}
