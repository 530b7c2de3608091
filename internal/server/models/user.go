// Package models contains the persisted record types shared by repositories
// and services.
package models

import "time"

// User is a stored person record. ID and DateAdded are generated by the
// server on insert and are never accepted from a caller. Email and Phone are
// unique across all users; the storage engine enforces the constraint.
type User struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Birthday  string
	DateAdded time.Time
}
