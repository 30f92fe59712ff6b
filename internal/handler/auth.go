package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rovelle/cinema-rooms/internal/config"
	"github.com/rovelle/cinema-rooms/internal/repository"
	"github.com/rovelle/cinema-rooms/internal/utils"
)

// Validation minimums for signup. Anything shorter is reported with
// the same generic status as a missing field, so the response does
// not describe which rule fired.
const (
	minUsernameLen = 3
	minPasswordLen = 4
)

// statusRequired is returned for any missing or too-short credential
// field on signup and login.
const statusRequired = "Both username and password are required"

// AuthHandler bundles dependencies for the account endpoints: signup,
// login, token refresh, logout, profile and settings.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

// ----- DTOs -----

type signupReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}
type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}
type settingsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"` // empty means keep the current password
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
type authResp struct {
	Status  string    `json:"status"`
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

// Signup creates an account and returns tokens immediately, logging
// the new user in. The "Username taken" status intentionally reveals
// that the name exists; login stays uniform instead.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": statusRequired})
	}
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	if len(req.Username) < minUsernameLen || len(req.Password) < minPasswordLen {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": statusRequired})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Username, req.Password, req.Email, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrUsernameTaken {
			return c.JSON(http.StatusConflict, echo.Map{"status": "Username taken"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	access, refresh, err := h.issueTokens(ctx, uid, req.Username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusCreated, authResp{
		Status:  "Signup successful",
		User:    userPart{ID: uid, Username: req.Username, Email: req.Email},
		Access:  *access,
		Refresh: *refresh,
	})
}

// Login verifies credentials and returns a new token pair. Unknown
// usernames and wrong passwords produce the identical status so the
// endpoint does not leak which accounts exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": statusRequired})
	}
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": statusRequired})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"status": "Invalid user/pass"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"status": "Invalid user/pass"})
	}

	access, refresh, err := h.issueTokens(ctx, u.ID, u.Username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, authResp{
		Status:  "Login successful",
		User:    userPart{ID: u.ID, Username: u.Username, Email: u.Email},
		Access:  *access,
		Refresh: *refresh,
	})
}

// Refresh validates a refresh token by hash, revokes it and issues a
// new pair (rotation).
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	_ = h.Tokens.RevokeByHash(ctx, hash)

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	access, refresh, err := h.issueTokens(ctx, u.ID, u.Username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, authResp{
		Status:  "Login successful",
		User:    userPart{ID: u.ID, Username: u.Username, Email: u.Email},
		Access:  *access,
		Refresh: *refresh,
	})
}

// Logout revokes the specific refresh token given in the body. It is
// reachable without a bearer token so a client with an expired access
// token can still end its session.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// LogoutAll revokes every active refresh token of the authenticated
// user, ending all sessions across devices.
func (h *AuthHandler) LogoutAll(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Tokens.RevokeAllForUser(ctx, uid); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return c.JSON(http.StatusOK, userPart{ID: u.ID, Username: u.Username, Email: u.Email})
}

// UpdateSettings changes the caller's email and/or password. A blank
// password field keeps the current password; a non-blank one is
// re-hashed with a fresh salt before storage.
func (h *AuthHandler) UpdateSettings(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req settingsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Password != "" && len(req.Password) < minPasswordLen {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": statusRequired})
	}

	var hash string
	if req.Password != "" {
		if hash, err = utils.HashPassword(req.Password, h.Cfg.BcryptCost); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash failed"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Users.UpdateSettings(ctx, uid, strings.TrimSpace(req.Email), hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "Saved"})
}

// issueTokens creates an access/refresh pair and persists the refresh
// token hash.
func (h *AuthHandler) issueTokens(ctx context.Context, uid uint64, username string) (*tokenPart, *tokenPart, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, uid, username, h.Cfg.AccessTTLMin)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return nil, nil, err
	}
	if err := h.Tokens.StoreRefresh(ctx, uid, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return nil, nil, err
	}
	return &tokenPart{Token: access.Token, Expires: access.Exp},
		&tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, nil // raw back to client
}
