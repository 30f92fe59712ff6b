package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rovelle/cinema-rooms/internal/repository"
)

// RoomHandler serves the room catalogue: filtered listings, room
// details and the category lookup tables driving the filter UI.
type RoomHandler struct {
	Rooms *repository.RoomRepo
}

func NewRoomHandler(rooms *repository.RoomRepo) *RoomHandler {
	if rooms == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms}
}

// ListRooms handles GET /v1/rooms. Query parameters:
//
//	search       – case-insensitive substring match on name or description
//	screen_type  – screen type ID, equality filter
//	audio_system – audio system ID, equality filter
//
// Absent parameters are no-ops, so a bare request returns every room.
func (h *RoomHandler) ListRooms(c echo.Context) error {
	q := repository.RoomQuery{Search: c.QueryParam("search")}
	if v := c.QueryParam("screen_type"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screen_type"})
		}
		q.ScreenTypeID = id
	}
	if v := c.QueryParam("audio_system"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid audio_system"})
		}
		q.AudioSystemID = id
	}

	ctx, cancel := context5s(c)
	defer cancel()
	rooms, err := h.Rooms.List(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": rooms})
}

// GetRoom handles GET /v1/rooms/:id.
func (h *RoomHandler) GetRoom(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	ctx, cancel := context5s(c)
	defer cancel()
	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, room)
}

// ListScreenTypes handles GET /v1/screen-types.
func (h *RoomHandler) ListScreenTypes(c echo.Context) error {
	ctx, cancel := context5s(c)
	defer cancel()
	types, err := h.Rooms.ListScreenTypes(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"screen_types": types})
}

// ListAudioSystems handles GET /v1/audio-systems.
func (h *RoomHandler) ListAudioSystems(c echo.Context) error {
	ctx, cancel := context5s(c)
	defer cancel()
	systems, err := h.Rooms.ListAudioSystems(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"audio_systems": systems})
}

// context5s bounds DB work for a request the way the auth handlers do.
func context5s(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}
