package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rovelle/cinema-rooms/internal/model"
	"github.com/rovelle/cinema-rooms/internal/utils"
)

// UserRepo provides access to the users table. Usernames are
// normalized to lower case on every write and lookup, so the unique
// index gives a case-insensitive existence guarantee.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create hashes the password and inserts the user, returning the new
// ID. A duplicate username maps to ErrUsernameTaken (MySQL error 1062).
func (r *UserRepo) Create(ctx context.Context, username, password, email string, cost int) (uint64, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, email) VALUES (?,?,?)",
		username, hash, email)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUsernameTaken
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by normalized username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,email,created_at,updated_at FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,email,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// UpdateSettings updates a user's email and/or password hash. Empty
// arguments leave the corresponding column unchanged, mirroring the
// settings form where a blank password field means "keep it".
func (r *UserRepo) UpdateSettings(ctx context.Context, userID uint64, email, passwordHash string) error {
	set := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if email != "" {
		set = append(set, "email=?")
		args = append(args, email)
	}
	if passwordHash != "" {
		set = append(set, "password_hash=?")
		args = append(args, passwordHash)
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, userID)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(set, ", ")+" WHERE id=?", args...)
	return err
}
