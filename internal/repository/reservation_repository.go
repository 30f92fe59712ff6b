package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/rovelle/cinema-rooms/internal/model"
)

// ReservationRepo provides CRUD operations for room reservations.
// Intervals are half-open [start_time, end_time): two slots that only
// touch at an endpoint do not conflict. All timestamps are stored in
// UTC.
//
// Booking is the one operation with a real concurrency requirement:
// two requests that both read "no conflict" must not both insert.
// The *Tx methods exist so the handler can run lock -> overlap check
// -> insert inside a single transaction. LockRoomTx takes a row lock
// on the room, which serializes concurrent bookings for that room for
// the lifetime of the transaction without blocking bookings on other
// rooms.
type ReservationRepo struct {
	db *sql.DB
}

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle for transaction control.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// LockRoomTx acquires a row lock on the room inside tx and reports
// whether the room exists. sql.ErrNoRows is returned for unknown
// rooms. The lock is held until the transaction commits or rolls
// back.
func (r *ReservationRepo) LockRoomTx(ctx context.Context, tx *sql.Tx, roomID uint64) error {
	var id uint64
	return tx.QueryRowContext(ctx,
		"SELECT id FROM rooms WHERE id = ? FOR UPDATE", roomID).Scan(&id)
}

// FindOverlappingTx returns every reservation for the room whose
// interval intersects [start, end). The predicate is
// start_time < end AND end_time > start, so adjacent slots pass.
// Must be called after LockRoomTx within the same transaction for the
// result to stay valid through the subsequent insert.
func (r *ReservationRepo) FindOverlappingTx(ctx context.Context, tx *sql.Tx, roomID uint64, start, end time.Time) ([]model.Reservation, error) {
	const q = `SELECT id, user_id, room_id, start_time, end_time, created_at
		FROM reservations
		WHERE room_id = ? AND start_time < ? AND end_time > ?
		ORDER BY start_time`
	rows, err := tx.QueryContext(ctx, q, roomID, end, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.UserID, &res.RoomID,
			&res.StartTime, &res.EndTime, &res.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// CreateTx inserts a reservation within the scope of an existing
// transaction and populates the generated ID and CreatedAt on the
// record. The caller must commit or rollback.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	result, err := tx.ExecContext(ctx,
		"INSERT INTO reservations (user_id, room_id, start_time, end_time) VALUES (?,?,?,?)",
		res.UserID, res.RoomID, res.StartTime, res.EndTime)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	return tx.QueryRowContext(ctx,
		"SELECT created_at FROM reservations WHERE id = ?", res.ID).Scan(&res.CreatedAt)
}

// Cancel deletes a reservation owned by userID. It returns
// sql.ErrNoRows when no such reservation exists and ErrForbidden when
// the reservation belongs to a different user; in both cases nothing
// is deleted. The delete reports sql.ErrNoRows when it matches zero
// rows, so of two racing cancels of the same reservation only the one
// that removed the row sees success.
func (r *ReservationRepo) Cancel(ctx context.Context, reservationID, userID uint64) error {
	var ownerID uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id FROM reservations WHERE id = ?", reservationID).Scan(&ownerID)
	if err != nil {
		return err
	}
	if ownerID != userID {
		return ErrForbidden
	}
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM reservations WHERE id = ? AND user_id = ?", reservationID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ReservationDetail is a reservation joined with its room for
// display: the "my reservations" listing shows what was booked, not
// just foreign keys.
type ReservationDetail struct {
	ID           uint64    `json:"id"`
	RoomID       uint64    `json:"room_id"`
	RoomName     string    `json:"room_name"`
	ScreenType   string    `json:"screen_type"`
	AudioSystem  string    `json:"audio_system"`
	PricePerHour float64   `json:"price_per_hour"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
}

// ListByUser returns all reservations owned by the user, newest slot
// first, each carrying its room details. An empty slice is returned
// when the user has none.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
	const q = `SELECT res.id, res.room_id, rm.name, st.name, au.name, rm.price_per_hour,
		       res.start_time, res.end_time
		FROM reservations res
		JOIN rooms rm         ON rm.id = res.room_id
		JOIN screen_types st  ON st.id = rm.screen_type_id
		JOIN audio_systems au ON au.id = rm.audio_system_id
		WHERE res.user_id = ?
		ORDER BY res.start_time DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ReservationDetail, 0)
	for rows.Next() {
		var d ReservationDetail
		if err := rows.Scan(&d.ID, &d.RoomID, &d.RoomName, &d.ScreenType,
			&d.AudioSystem, &d.PricePerHour, &d.StartTime, &d.EndTime); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
