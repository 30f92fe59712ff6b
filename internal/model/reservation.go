package model

import "time"

// Reservation records a user's booking of a room for a time slot.
// The interval is half-open: [StartTime, EndTime). Two reservations
// for the same room may touch at an endpoint but never overlap.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who made the reservation.
//  RoomID    – room being reserved.
//  StartTime – inclusive start of the slot (UTC).
//  EndTime   – exclusive end of the slot (UTC).
//  CreatedAt – creation timestamp.
type Reservation struct {
	ID        uint64    // reservations.id
	UserID    uint64    // reservations.user_id
	RoomID    uint64    // reservations.room_id
	StartTime time.Time // reservations.start_time
	EndTime   time.Time // reservations.end_time
	CreatedAt time.Time // reservations.created_at
}

// Overlaps reports whether the reservation's half-open interval
// intersects [start, end). Intervals that only share an endpoint do
// not overlap, so a slot ending at 11:00 does not conflict with one
// starting at 11:00.
func (r Reservation) Overlaps(start, end time.Time) bool {
	return r.StartTime.Before(end) && r.EndTime.After(start)
}
