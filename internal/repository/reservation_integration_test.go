//go:build integration

package repository

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/rovelle/cinema-rooms/internal/database"
	"github.com/rovelle/cinema-rooms/internal/model"
)

// openTestDB connects to the MySQL instance named by the TEST_DB_*
// environment variables and applies the schema. Tests are skipped when
// no instance is configured:
//
//	TEST_DB_HOST=127.0.0.1 TEST_DB_PORT=3306 TEST_DB_USER=root \
//	TEST_DB_NAME=cinema_test go test -tags integration ./internal/repository/
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set; skipping integration test")
	}
	db, err := database.Open(
		os.Getenv("TEST_DB_USER"), os.Getenv("TEST_DB_PASS"),
		host, os.Getenv("TEST_DB_PORT"), os.Getenv("TEST_DB_NAME"),
		database.Pool{MaxOpenConns: 20, MaxIdleConns: 20})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func mustExec(t *testing.T, db *sql.DB, query string, args ...any) int64 {
	t.Helper()
	res, err := db.Exec(query, args...)
	if err != nil {
		t.Fatalf("%s: %v", query, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("last insert id: %v", err)
	}
	return id
}

// TestBooking_ConcurrentSameSlot_ExactlyOneWins drives real concurrent
// contention through the booking critical section: N transactions race
// for the identical slot on one room, and the room-row lock plus the
// in-transaction overlap check must let exactly one insert through.
func TestBooking_ConcurrentSameSlot_ExactlyOneWins(t *testing.T) {
	db := openTestDB(t)

	mustExec(t, db, "INSERT IGNORE INTO screen_types (name) VALUES ('IMAX')")
	mustExec(t, db, "INSERT IGNORE INTO audio_systems (name) VALUES ('Dolby Atmos')")
	roomID := uint64(mustExec(t, db,
		`INSERT INTO rooms (name, seat_count, screen_type_id, audio_system_id, price_per_hour)
		 SELECT 'Race Room', 50, st.id, au.id, 10
		 FROM screen_types st, audio_systems au
		 WHERE st.name = 'IMAX' AND au.name = 'Dolby Atmos' LIMIT 1`))
	userID := uint64(mustExec(t, db,
		"INSERT INTO users (username, password_hash) VALUES (CONCAT('racer-', SUBSTRING(UUID(), 1, 8)), 'x')"))
	t.Cleanup(func() {
		db.Exec("DELETE FROM reservations WHERE room_id = ?", roomID)
		db.Exec("DELETE FROM rooms WHERE id = ?", roomID)
		db.Exec("DELETE FROM users WHERE id = ?", userID)
	})

	repo := NewReservationRepo(db)
	start := time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			tx, err := db.BeginTx(ctx, nil)
			if err != nil {
				t.Errorf("begin: %v", err)
				return
			}
			committed := false
			defer func() {
				if !committed {
					_ = tx.Rollback()
				}
			}()

			if err := repo.LockRoomTx(ctx, tx, roomID); err != nil {
				t.Errorf("lock room: %v", err)
				return
			}
			overlapping, err := repo.FindOverlappingTx(ctx, tx, roomID, start, end)
			if err != nil {
				t.Errorf("find overlapping: %v", err)
				return
			}
			if len(overlapping) > 0 {
				mu.Lock()
				conflicts++
				mu.Unlock()
				return
			}
			res := &model.Reservation{UserID: userID, RoomID: roomID, StartTime: start, EndTime: end}
			if err := repo.CreateTx(ctx, tx, res); err != nil {
				t.Errorf("create: %v", err)
				return
			}
			if err := tx.Commit(); err != nil {
				t.Errorf("commit: %v", err)
				return
			}
			committed = true
			mu.Lock()
			successes++
			mu.Unlock()
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Errorf("expected exactly 1 successful booking, got %d (%d conflicts)", successes, conflicts)
	}
	if conflicts != workers-1 {
		t.Errorf("expected %d conflicts, got %d", workers-1, conflicts)
	}

	var rows int
	if err := db.QueryRow(
		"SELECT COUNT(*) FROM reservations WHERE room_id = ? AND start_time = ?",
		roomID, start).Scan(&rows); err != nil {
		t.Fatalf("count reservations: %v", err)
	}
	if rows != 1 {
		t.Errorf("expected 1 reservation row, found %d", rows)
	}
}

// TestBooking_ConcurrentAdjacentSlots_BothSucceed is the complement:
// back-to-back slots share an endpoint but not an interval, so both
// concurrent bookings must commit.
func TestBooking_ConcurrentAdjacentSlots_BothSucceed(t *testing.T) {
	db := openTestDB(t)

	mustExec(t, db, "INSERT IGNORE INTO screen_types (name) VALUES ('IMAX')")
	mustExec(t, db, "INSERT IGNORE INTO audio_systems (name) VALUES ('Dolby Atmos')")
	roomID := uint64(mustExec(t, db,
		`INSERT INTO rooms (name, seat_count, screen_type_id, audio_system_id, price_per_hour)
		 SELECT 'Adjacent Room', 50, st.id, au.id, 10
		 FROM screen_types st, audio_systems au
		 WHERE st.name = 'IMAX' AND au.name = 'Dolby Atmos' LIMIT 1`))
	userID := uint64(mustExec(t, db,
		"INSERT INTO users (username, password_hash) VALUES (CONCAT('adj-', SUBSTRING(UUID(), 1, 8)), 'x')"))
	t.Cleanup(func() {
		db.Exec("DELETE FROM reservations WHERE room_id = ?", roomID)
		db.Exec("DELETE FROM rooms WHERE id = ?", roomID)
		db.Exec("DELETE FROM users WHERE id = ?", userID)
	})

	repo := NewReservationRepo(db)
	base := time.Date(2030, 6, 2, 10, 0, 0, 0, time.UTC)
	slots := [][2]time.Time{
		{base, base.Add(time.Hour)},
		{base.Add(time.Hour), base.Add(2 * time.Hour)},
	}

	var wg sync.WaitGroup
	errs := make([]error, len(slots))
	for i, slot := range slots {
		wg.Add(1)
		go func(i int, start, end time.Time) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			tx, err := db.BeginTx(ctx, nil)
			if err != nil {
				errs[i] = err
				return
			}
			committed := false
			defer func() {
				if !committed {
					_ = tx.Rollback()
				}
			}()

			if err := repo.LockRoomTx(ctx, tx, roomID); err != nil {
				errs[i] = err
				return
			}
			overlapping, err := repo.FindOverlappingTx(ctx, tx, roomID, start, end)
			if err != nil {
				errs[i] = err
				return
			}
			if len(overlapping) > 0 {
				errs[i] = errors.New("adjacent slot reported as overlapping")
				return
			}
			res := &model.Reservation{UserID: userID, RoomID: roomID, StartTime: start, EndTime: end}
			if err := repo.CreateTx(ctx, tx, res); err != nil {
				errs[i] = err
				return
			}
			if err := tx.Commit(); err != nil {
				errs[i] = err
				return
			}
			committed = true
		}(i, slot[0], slot[1])
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("slot %d failed: %v", i, err)
		}
	}
}
