package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rovelle/cinema-rooms/internal/model"
)

// RoomRepo provides read access to rooms and their category lookup
// tables. Rooms are seed data; there are no write paths at runtime.
type RoomRepo struct {
	db *sql.DB
}

func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span repositories.
func (r *RoomRepo) DB() *sql.DB { return r.db }

// RoomRow is the listing shape returned to clients: a room joined
// with the names of its screen type and audio system.
type RoomRow struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	ImageURL     string  `json:"image_url"`
	SeatCount    uint32  `json:"seat_count"`
	PricePerHour float64 `json:"price_per_hour"`
	Description  string  `json:"description"`
	ScreenType   string  `json:"screen_type"`
	AudioSystem  string  `json:"audio_system"`
}

// RoomQuery carries the optional listing filters. Search matches the
// room name OR description, case-insensitively. The ID filters are
// equality checks; zero means absent.
type RoomQuery struct {
	Search        string
	ScreenTypeID  uint64
	AudioSystemID uint64
}

const roomSelect = `SELECT r.id, r.name, r.image_url, r.seat_count, r.price_per_hour,
	       COALESCE(r.description, ''), st.name, au.name
	FROM rooms r
	JOIN screen_types st  ON st.id = r.screen_type_id
	JOIN audio_systems au ON au.id = r.audio_system_id`

// List returns rooms matching the query. Absent filters are no-ops,
// so a zero-value RoomQuery returns every room. Results are ordered
// by id for a stable return order.
func (r *RoomRepo) List(ctx context.Context, q RoomQuery) ([]RoomRow, error) {
	where := []string{}
	args := []any{}

	if s := strings.TrimSpace(q.Search); s != "" {
		where = append(where, "(LOWER(r.name) LIKE ? OR LOWER(COALESCE(r.description, '')) LIKE ?)")
		pat := "%" + strings.ToLower(s) + "%"
		args = append(args, pat, pat)
	}
	if q.ScreenTypeID != 0 {
		where = append(where, "r.screen_type_id = ?")
		args = append(args, q.ScreenTypeID)
	}
	if q.AudioSystemID != 0 {
		where = append(where, "r.audio_system_id = ?")
		args = append(args, q.AudioSystemID)
	}

	query := roomSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY r.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RoomRow, 0)
	for rows.Next() {
		var row RoomRow
		if err := rows.Scan(&row.ID, &row.Name, &row.ImageURL, &row.SeatCount,
			&row.PricePerHour, &row.Description, &row.ScreenType, &row.AudioSystem); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetByID returns a single room with its category names. sql.ErrNoRows
// is returned when the room does not exist.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (RoomRow, error) {
	var row RoomRow
	err := r.db.QueryRowContext(ctx, roomSelect+" WHERE r.id = ?", id).Scan(
		&row.ID, &row.Name, &row.ImageURL, &row.SeatCount,
		&row.PricePerHour, &row.Description, &row.ScreenType, &row.AudioSystem)
	return row, err
}

// ListScreenTypes returns every screen type for the filter dropdown.
func (r *RoomRepo) ListScreenTypes(ctx context.Context) ([]model.ScreenType, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, description FROM screen_types ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.ScreenType, 0)
	for rows.Next() {
		var st model.ScreenType
		if err := rows.Scan(&st.ID, &st.Name, &st.Description); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// ListAudioSystems returns every audio system for the filter dropdown.
func (r *RoomRepo) ListAudioSystems(ctx context.Context) ([]model.AudioSystem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, description FROM audio_systems ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.AudioSystem, 0)
	for rows.Next() {
		var au model.AudioSystem
		if err := rows.Scan(&au.ID, &au.Name, &au.Description); err != nil {
			return nil, err
		}
		out = append(out, au)
	}
	return out, rows.Err()
}
