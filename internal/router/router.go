// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/rovelle/cinema-rooms/internal/config"
	"github.com/rovelle/cinema-rooms/internal/handler"
	"github.com/rovelle/cinema-rooms/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check for load balancers and
// monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the account endpoints. Signup, login, refresh
// and logout live under /v1/auth and carry no bearer token; they are
// rate limited instead. Profile, settings and logout-all require a
// valid access token and live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, rdb *redis.Client) {
	g := e.Group("/v1/auth")
	// Token-bucket limiting on the credential endpoints blunts
	// brute-force login attempts.
	g.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	g.POST("/signup", a.Signup)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.PUT("/settings", a.UpdateSettings)
	auth.POST("/logout", a.LogoutAll)
}

// RegisterRooms registers the room catalogue endpoints behind the JWT
// gate, with listing responses cached in Redis.
func RegisterRooms(e *echo.Echo, h *handler.RoomHandler, jwtSecret string, rdb *redis.Client) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	g.GET("/rooms", h.ListRooms)
	g.GET("/rooms/:id", h.GetRoom)
	g.GET("/screen-types", h.ListScreenTypes)
	g.GET("/audio-systems", h.ListAudioSystems)
}

// RegisterReservations registers the booking endpoints. All of them
// require an authenticated user.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.POST("/rooms/:id/reservations", h.CreateReservation)
	g.GET("/my-reservations", h.MyReservations)
	g.DELETE("/reservations/:id", h.CancelReservation)
}
