package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sakif/articles-api/internal/apperror"
	"github.com/sakif/articles-api/internal/model"
	"github.com/sakif/articles-api/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a new user, assigning the next sequential ID.
//
// Uniqueness is enforced by the UNIQUE constraint on username, not by a
// SELECT-then-INSERT in Go: the constraint closes the window where two
// concurrent registrations of the same name would both pass the check.
// A constraint violation comes back as apperror.Conflict.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	user.CreatedAt = time.Now().UTC()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`,
		user.Username,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperror.Conflict("user", user.Username)
		}
		return fmt.Errorf("sqlite: inserting user %q: %w", user.Username, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new user id: %w", err)
	}
	user.ID = strconv.FormatInt(id, 10)

	return nil
}

// GetUserByUsername retrieves a user by exact username. SQLite's TEXT comparison
// is byte-for-byte, so "Alice" and "alice" are distinct accounts.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var (
		u  model.User
		id int64
	)

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = ?`,
		username,
	).Scan(&id, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", username)
		}
		return nil, fmt.Errorf("sqlite: getting user %q: %w", username, err)
	}

	u.ID = strconv.FormatInt(id, 10)
	return &u, nil
}

// ResetUsers clears the user registry and rewinds the ID counter. Test-only.
func (db *DB) ResetUsers(ctx context.Context) error {
	return db.resetTable("users")
}
