package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/rovelle/cinema-rooms/internal/model"
)

// TokenRepo persists refresh tokens. Only the SHA-256 hash of a token
// ever reaches this layer; the raw value stays with the client, so a
// leaked table yields no usable sessions.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// StoreRefresh records a freshly issued token hash for the user.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?,?,?)",
		userID, tokenHash, exp)
	return err
}

// getByHash loads the token row for a hash, including revocation state.
func (r *TokenRepo) getByHash(ctx context.Context, tokenHash string) (model.RefreshToken, error) {
	var (
		t       model.RefreshToken
		revoked sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, token_hash, expires_at, revoked_at, created_at FROM refresh_tokens WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &revoked, &t.CreatedAt)
	if err != nil {
		return model.RefreshToken{}, err
	}
	if revoked.Valid {
		at := revoked.Time
		t.RevokedAt = &at
	}
	return t, nil
}

// ValidateRefresh returns the owning user ID when an active token
// exists for the hash. Revoked and expired tokens count as absent, so
// callers see the same sql.ErrNoRows either way and cannot distinguish
// why a token stopped working.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	t, err := r.getByHash(ctx, tokenHash)
	if err != nil {
		return 0, err
	}
	if t.RevokedAt != nil || time.Now().UTC().After(t.ExpiresAt) {
		return 0, sql.ErrNoRows
	}
	return t.UserID, nil
}

// RevokeByHash retires a single token, as on logout or rotation.
// Already-revoked rows are left untouched so the original revocation
// time survives.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=NOW() WHERE token_hash=? AND revoked_at IS NULL",
		tokenHash)
	return err
}

// RevokeAllForUser retires every active token the user has, ending
// all of their sessions at once.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET revoked_at=NOW() WHERE user_id=? AND revoked_at IS NULL",
		userID)
	return err
}
