package database

import (
	"context"
	"database/sql"
)

// schema holds the DDL for all tables, applied in dependency order.
// Every statement is idempotent so Migrate can run on each startup.
// The (room_id, start_time) index on reservations keeps the overlap
// query a range scan instead of a table scan.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		username      VARCHAR(30)  NOT NULL,
		password_hash VARCHAR(100) NOT NULL,
		email         VARCHAR(50)  NOT NULL DEFAULT '',
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_username (username)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_refresh_tokens_hash (token_hash),
		KEY idx_refresh_tokens_user (user_id),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS screen_types (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name        VARCHAR(50) NOT NULL,
		description VARCHAR(255) NOT NULL DEFAULT '',
		UNIQUE KEY uq_screen_types_name (name)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS audio_systems (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name        VARCHAR(50) NOT NULL,
		description VARCHAR(255) NOT NULL DEFAULT '',
		UNIQUE KEY uq_audio_systems_name (name)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS rooms (
		id              BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name            VARCHAR(100) NOT NULL,
		image_url       VARCHAR(255) NOT NULL DEFAULT '',
		seat_count      INT UNSIGNED NOT NULL,
		screen_type_id  BIGINT UNSIGNED NOT NULL,
		audio_system_id BIGINT UNSIGNED NOT NULL,
		price_per_hour  DECIMAL(8,2) NOT NULL,
		description     TEXT NULL,
		CONSTRAINT fk_rooms_screen_type  FOREIGN KEY (screen_type_id)  REFERENCES screen_types (id),
		CONSTRAINT fk_rooms_audio_system FOREIGN KEY (audio_system_id) REFERENCES audio_systems (id)
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS reservations (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		room_id    BIGINT UNSIGNED NOT NULL,
		start_time DATETIME NOT NULL,
		end_time   DATETIME NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_reservations_room_start (room_id, start_time),
		KEY idx_reservations_user (user_id),
		CONSTRAINT fk_reservations_user FOREIGN KEY (user_id) REFERENCES users (id),
		CONSTRAINT fk_reservations_room FOREIGN KEY (room_id) REFERENCES rooms (id)
	) ENGINE=InnoDB`,
}

// Migrate applies the schema. It is safe to call on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
