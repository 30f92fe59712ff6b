package model

import "time"

// User represents an application user record as stored in the
// `users` table. Usernames are normalized to lower case before
// insertion so the unique index doubles as a case-insensitive
// existence check. The json tags are omitted here because these
// structs are primarily used internally by the repository layer;
// handlers define separate response types with appropriate tags.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique, lower-cased login name.
//  PasswordHash – bcrypt hashed password (canonical text form).
//  Email        – contact email address.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	Email        string    // users.email
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Each
// refresh token belongs to a user and carries metadata for expiry
// and revocation. The plain token is never stored; only its
// SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
