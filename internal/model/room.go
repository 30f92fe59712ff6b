package model

// Room represents a bookable cinema room as stored in the `rooms`
// table. Rooms are seed data and effectively immutable at runtime;
// customers reserve a whole room for a time slot rather than
// individual seats.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – display name of the room.
//  ImageURL      – optional promotional image reference.
//  SeatCount     – number of seats in the room.
//  ScreenTypeID  – foreign key into screen_types.
//  AudioSystemID – foreign key into audio_systems.
//  PricePerHour  – rental price per hour.
//  Description   – free-text description shown in listings.
type Room struct {
	ID            uint64  // rooms.id
	Name          string  // rooms.name
	ImageURL      string  // rooms.image_url
	SeatCount     uint32  // rooms.seat_count
	ScreenTypeID  uint64  // rooms.screen_type_id
	AudioSystemID uint64  // rooms.audio_system_id
	PricePerHour  float64 // rooms.price_per_hour
	Description   string  // rooms.description
}
