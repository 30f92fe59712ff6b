package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/rovelle/cinema-rooms/internal/model"
	"github.com/rovelle/cinema-rooms/internal/queue"
	"github.com/rovelle/cinema-rooms/internal/repository"
)

// ReservationHandler implements booking, listing and cancellation of
// room reservations. Booking runs its critical section inside a
// single transaction: lock the room row, check for overlapping
// reservations, insert. Concurrent requests for the same room
// serialize on the row lock, so exactly one of two competing bookings
// for the same slot can succeed.
type ReservationHandler struct {
	Rooms        *repository.RoomRepo
	Reservations *repository.ReservationRepo
	// Publish, when non-nil, is invoked after a successful booking.
	// Failures are logged and never surface to the client.
	Publish func(ctx context.Context, ev queue.ReservationConfirmedEvent) error
}

func NewReservationHandler(rooms *repository.RoomRepo, reservations *repository.ReservationRepo,
	publish func(ctx context.Context, ev queue.ReservationConfirmedEvent) error) *ReservationHandler {
	if rooms == nil || reservations == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{Rooms: rooms, Reservations: reservations, Publish: publish}
}

type createReservationReq struct {
	Date      string `json:"date" form:"date"`             // YYYY-MM-DD
	StartTime string `json:"start_time" form:"start_time"` // HH:MM
	EndTime   string `json:"end_time" form:"end_time"`     // HH:MM
}

type reservationResp struct {
	Status      string                       `json:"status"`
	Reservation repository.ReservationDetail `json:"reservation"`
	TotalPrice  float64                      `json:"total_price"`
}

// parseSlot combines the date and HH:MM fields into a UTC half-open
// interval. Malformed fields and zero- or negative-length intervals
// are rejected here, before any database work.
func parseSlot(req createReservationReq) (start, end time.Time, err error) {
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	st, err := time.Parse("15:04", req.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	et, err := time.Parse("15:04", req.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start = time.Date(day.Year(), day.Month(), day.Day(), st.Hour(), st.Minute(), 0, 0, time.UTC)
	end = time.Date(day.Year(), day.Month(), day.Day(), et.Hour(), et.Minute(), 0, 0, time.UTC)
	return start, end, nil
}

// CreateReservation handles POST /v1/rooms/:id/reservations.
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || roomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	start, end, err := parseSlot(req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD, times HH:MM"})
	}
	if !start.Before(end) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be after start_time"})
	}

	ctx, cancel := context5s(c)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, roomID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Serialize bookings for this room before the overlap check.
	if err := h.Reservations.LockRoomTx(ctx, tx, roomID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	overlapping, err := h.Reservations.FindOverlappingTx(ctx, tx, roomID, start, end)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if len(overlapping) > 0 {
		return c.JSON(http.StatusConflict, echo.Map{
			"status":    "Room already booked for this time",
			"conflicts": overlapping,
		})
	}

	res := &model.Reservation{UserID: userID, RoomID: roomID, StartTime: start, EndTime: end}
	if err := h.Reservations.CreateTx(ctx, tx, res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	total := room.PricePerHour * end.Sub(start).Hours()

	if h.Publish != nil {
		ev := queue.ReservationConfirmedEvent{
			ReservationID: res.ID,
			UserID:        userID,
			Username:      getUsername(c),
			RoomID:        roomID,
			RoomName:      room.Name,
			StartsAt:      start.Format(time.RFC3339),
			EndsAt:        end.Format(time.RFC3339),
			TotalPrice:    total,
			ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		if err := h.Publish(context.WithoutCancel(ctx), ev); err != nil {
			logrus.WithError(err).Warn("reservation.confirmed publish failed")
		}
	}

	return c.JSON(http.StatusCreated, reservationResp{
		Status: "Reservation confirmed",
		Reservation: repository.ReservationDetail{
			ID:           res.ID,
			RoomID:       roomID,
			RoomName:     room.Name,
			ScreenType:   room.ScreenType,
			AudioSystem:  room.AudioSystem,
			PricePerHour: room.PricePerHour,
			StartTime:    start,
			EndTime:      end,
		},
		TotalPrice: total,
	})
}

// MyReservations handles GET /v1/my-reservations.
func (h *ReservationHandler) MyReservations(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context5s(c)
	defer cancel()
	list, err := h.Reservations.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": list})
}

// CancelReservation handles DELETE /v1/reservations/:id. Only the
// owner may cancel; a second cancel of the same ID reports not found
// because the row is already gone.
func (h *ReservationHandler) CancelReservation(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || resID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx, cancel := context5s(c)
	defer cancel()
	switch err := h.Reservations.Cancel(ctx, resID, userID); err {
	case nil:
		return c.JSON(http.StatusOK, echo.Map{"status": "Reservation canceled"})
	case sql.ErrNoRows:
		return c.JSON(http.StatusNotFound, echo.Map{"status": "Reservation not found"})
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"status": "You can only cancel your own reservations"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}
