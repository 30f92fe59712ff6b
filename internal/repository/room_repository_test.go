package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

var roomCols = []string{"id", "name", "image_url", "seat_count", "price_per_hour", "description", "screen_type", "audio_system"}

func TestRoomRepo_List_NoFiltersReturnsAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows(roomCols).
		AddRow(1, "Room 1", "", 120, 50.0, "Large room", "IMAX", "Dolby Atmos").
		AddRow(2, "Room 2", "", 80, 40.0, "Medium room", "3D", "THX")
	mock.ExpectQuery(`SELECT r\.id, r\.name, .* FROM rooms r .* ORDER BY r\.id`).
		WillReturnRows(rows)

	repo := NewRoomRepo(db)
	got, err := repo.List(context.Background(), RoomQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(got))
	}
	if got[0].Name != "Room 1" || got[0].ScreenType != "IMAX" {
		t.Errorf("unexpected first room: %+v", got[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestRoomRepo_List_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// Search text is lower-cased and wrapped in wildcards, applied to
	// both name and description.
	mock.ExpectQuery(`WHERE \(LOWER\(r\.name\) LIKE \? OR LOWER\(COALESCE\(r\.description, ''\)\) LIKE \?\)`).
		WithArgs("%imax%", "%imax%").
		WillReturnRows(sqlmock.NewRows(roomCols).
			AddRow(1, "Room 1", "", 120, 50.0, "IMAX screen", "IMAX", "Dolby Atmos"))

	repo := NewRoomRepo(db)
	got, err := repo.List(context.Background(), RoomQuery{Search: " IMAX "})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 room, got %d", len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestRoomRepo_List_FiltersCompose(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`WHERE .*LIKE \?.* AND r\.screen_type_id = \? AND r\.audio_system_id = \?`).
		WithArgs("%large%", "%large%", uint64(1), uint64(2)).
		WillReturnRows(sqlmock.NewRows(roomCols))

	repo := NewRoomRepo(db)
	got, err := repo.List(context.Background(), RoomQuery{Search: "large", ScreenTypeID: 1, AudioSystemID: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestRoomRepo_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`WHERE r\.id = \?`).
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	repo := NewRoomRepo(db)
	if _, err := repo.GetByID(context.Background(), 99); err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
