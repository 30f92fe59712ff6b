package model

// ScreenType is a lookup entity describing the projection hardware
// of a room (IMAX, 3D, Standard). Rooms reference it by ID and the
// listing endpoint exposes it as a filter.
type ScreenType struct {
	ID          uint64 // screen_types.id
	Name        string // screen_types.name
	Description string // screen_types.description
}

// AudioSystem is a lookup entity describing the sound hardware of a
// room (Dolby Atmos, THX, ...). Structured like ScreenType.
type AudioSystem struct {
	ID          uint64 // audio_systems.id
	Name        string // audio_systems.name
	Description string // audio_systems.description
}
