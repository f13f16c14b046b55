package model

import "time"

// SlotLock is an advisory lock on an (owner, date) partition, held while a
// confirm re-check or replace-for-date write is in flight.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
