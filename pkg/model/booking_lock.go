package model

import "time"

// BookingLock is an advisory lock serializing booking admission per property.
// The _id is derived from the property ID alone, so two concurrent requests
// for the same property contend on the unique index regardless of the dates
// they ask for.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
