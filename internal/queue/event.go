// Package queue defines message payloads exchanged over the message
// broker and the background consumer that processes them.
package queue

// ReservationConfirmedEvent is published after a booking commits. It
// carries enough information for downstream consumers to log, notify
// or feed analytics without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID uint64  `json:"reservation_id"`
	UserID        uint64  `json:"user_id"`
	Username      string  `json:"username"`
	RoomID        uint64  `json:"room_id"`
	RoomName      string  `json:"room_name"`
	StartsAt      string  `json:"starts_at"`
	EndsAt        string  `json:"ends_at"`
	TotalPrice    float64 `json:"total_price"`
	ConfirmedAt   string  `json:"confirmed_at"`
}
