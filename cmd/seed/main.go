// Command seed applies the schema and loads the room catalogue:
// screen types, audio systems and the sample rooms. Rooms are seed
// data and effectively immutable at runtime, so this is the only
// write path for them. Safe to re-run: the catalogue is only loaded
// when the rooms table is empty.
package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rovelle/cinema-rooms/internal/config"
	"github.com/rovelle/cinema-rooms/internal/database"
	"github.com/rovelle/cinema-rooms/internal/model"
)

var screenTypes = []string{"IMAX", "3D"}
var audioSystems = []string{"Dolby Atmos", "THX"}

// Image URLs are static and seeded per room name, so re-seeding a
// fresh database yields the same pictures.
var rooms = []model.Room{
	{Name: "Room 1", SeatCount: 120, ScreenTypeID: 1, AudioSystemID: 1, PricePerHour: 50, ImageURL: "https://picsum.photos/seed/room-1/640/360", Description: "Large room with the latest IMAX screen and Dolby Atmos sound system. Perfect for action and adventure movies."},
	{Name: "Room 2", SeatCount: 80, ScreenTypeID: 2, AudioSystemID: 2, PricePerHour: 40, ImageURL: "https://picsum.photos/seed/room-2/640/360", Description: "Medium-sized room with a 3D screen and THX-certified sound system. Great for family-friendly movies and animated films."},
	{Name: "Room 3", SeatCount: 60, ScreenTypeID: 1, AudioSystemID: 2, PricePerHour: 30, ImageURL: "https://picsum.photos/seed/room-3/640/360", Description: "Small room with an IMAX screen and THX-certified sound system. Ideal for intimate movie screenings and film festivals."},
	{Name: "Room 4", SeatCount: 100, ScreenTypeID: 2, AudioSystemID: 1, PricePerHour: 45, ImageURL: "https://picsum.photos/seed/room-4/640/360", Description: "Medium-sized room with a 3D screen and the latest Dolby Atmos sound system. Perfect for horror and thriller movies."},
	{Name: "Room 5", SeatCount: 150, ScreenTypeID: 1, AudioSystemID: 2, PricePerHour: 60, ImageURL: "https://picsum.photos/seed/room-5/640/360", Description: "Large room with the latest IMAX screen and THX-certified sound system. Ideal for epic movies and action-packed blockbusters."},
	{Name: "Room 6", SeatCount: 90, ScreenTypeID: 2, AudioSystemID: 1, PricePerHour: 35, ImageURL: "https://picsum.photos/seed/room-6/640/360", Description: "Medium-sized room with a 3D screen and the latest Dolby Atmos sound system. Great for sci-fi and fantasy movies."},
	{Name: "Room 7", SeatCount: 70, ScreenTypeID: 1, AudioSystemID: 2, PricePerHour: 25, ImageURL: "https://picsum.photos/seed/room-7/640/360", Description: "Small room with an IMAX screen and THX-certified sound system. Perfect for documentaries and indie films."},
	{Name: "Room 8", SeatCount: 110, ScreenTypeID: 2, AudioSystemID: 1, PricePerHour: 50, ImageURL: "https://picsum.photos/seed/room-8/640/360", Description: "Medium-sized room with a 3D screen and the latest Dolby Atmos sound system. Ideal for romantic comedies and dramas."},
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName,
		database.Pool{MaxOpenConns: 2, MaxIdleConns: 2})
	if err != nil {
		logrus.Fatalf("database connect failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		logrus.Fatalf("migrate failed: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM rooms").Scan(&count); err != nil {
		logrus.Fatalf("count rooms failed: %v", err)
	}
	if count > 0 {
		logrus.Infof("rooms already seeded (%d rows); nothing to do", count)
		return
	}

	if err := seed(ctx, db); err != nil {
		logrus.Fatalf("seed failed: %v", err)
	}
	logrus.Infof("seeded %d screen types, %d audio systems, %d rooms",
		len(screenTypes), len(audioSystems), len(rooms))
}

func seed(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for _, name := range screenTypes {
		if _, err := tx.ExecContext(ctx,
			"INSERT IGNORE INTO screen_types (name) VALUES (?)", name); err != nil {
			return err
		}
	}
	for _, name := range audioSystems {
		if _, err := tx.ExecContext(ctx,
			"INSERT IGNORE INTO audio_systems (name) VALUES (?)", name); err != nil {
			return err
		}
	}
	for _, r := range rooms {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO rooms (name, image_url, seat_count, screen_type_id, audio_system_id, price_per_hour, description)
			 VALUES (?,?,?,?,?,?,?)`,
			r.Name, r.ImageURL, r.SeatCount, r.ScreenTypeID, r.AudioSystemID, r.PricePerHour, r.Description); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
