package main

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/rovelle/cinema-rooms/internal/config"
	"github.com/rovelle/cinema-rooms/internal/database"
	"github.com/rovelle/cinema-rooms/internal/handler"
	"github.com/rovelle/cinema-rooms/internal/queue"
	"github.com/rovelle/cinema-rooms/internal/repository"
	"github.com/rovelle/cinema-rooms/internal/router"
	queue_publisher "github.com/rovelle/cinema-rooms/internal/service"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName,
		database.Pool{
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: cfg.DBConnMaxLife,
		})
	if err != nil {
		logrus.Fatalf("database connect failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		logrus.Fatalf("migrate failed: %v", err)
	}
	cancel()

	// Optional: nil disables rate limiting and response caching.
	rdb := config.NewRedisClient()
	if rdb == nil {
		logrus.Warn("redis unavailable; rate limiting and caching disabled")
	}

	// Background consumer logs confirmed reservations; it reconnects
	// on its own and never stops the server.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			logrus.WithError(err).Warn("reservation consumer stopped")
		}
	}()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	rooms := repository.NewRoomRepo(db)
	reservations := repository.NewReservationRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	roomH := handler.NewRoomHandler(rooms)
	resH := handler.NewReservationHandler(rooms, reservations, queue_publisher.PublishReservationConfirmed)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret, rdb)
	router.RegisterRooms(e, roomH, cfg.JWTSecret, rdb)
	router.RegisterReservations(e, resH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	logrus.Infof("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		logrus.Fatal(err)
	}
}
