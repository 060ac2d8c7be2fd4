package storage

import (
	"context"
	"time"

	"github.com/avdeyev/authgate/internal/models"
)

// UserStorage defines interface for user account persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage.
	// Returns ErrEmailTaken if a user with the same email already exists;
	// uniqueness is enforced by the store itself, so concurrent
	// registrations with the same email cannot both succeed.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves user by email, password hash included.
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves user by ID, password hash included.
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// ListUsers retrieves all users.
	// Returns empty slice if storage is empty
	ListUsers(ctx context.Context) ([]*models.User, error)

	// UpdateUser persists all mutable fields of the user.
	// Returns ErrUserNotFound if user doesn't exist,
	// ErrEmailTaken if the new email collides with another user
	UpdateUser(ctx context.Context, user *models.User) error

	// GetUserByResetToken retrieves the user whose stored reset token hash
	// matches tokenHash and whose token expiry is after now.
	// Returns ErrUserNotFound if there is no match or the token expired
	GetUserByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)

	// DeleteUser deletes user by ID.
	// Returns ErrUserNotFound if user doesn't exist
	DeleteUser(ctx context.Context, userID string) error
}
