package repository

import (
	"context"
	"errors"
	"fmt"

	"contacts_api/internal/model"

	"github.com/jackc/pgx/v5"
)

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByName(ctx context.Context, name string) (*model.User, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

type userRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (user_id, name, email, password_hash, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, sql, user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create user: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user by email, nil if there is none
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	sql := `SELECT user_id, name, email, password_hash, created_at, updated_at FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRow(ctx, sql, email))
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// FindByName retrieves a user by name, nil if there is none
func (r *userRepository) FindByName(ctx context.Context, name string) (*model.User, error) {
	sql := `SELECT user_id, name, email, password_hash, created_at, updated_at FROM users WHERE name = $1`
	user, err := scanUser(r.db.QueryRow(ctx, sql, name))
	if err != nil {
		return nil, fmt.Errorf("failed to find user by name: %w", err)
	}
	return user, nil
}

// ExistsByName reports whether a user with the given name is registered
func (r *userRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	sql := `SELECT EXISTS (SELECT 1 FROM users WHERE name = $1)`
	if err := r.db.QueryRow(ctx, sql, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found is not an error, service layer handles it
		}
		return nil, err
	}
	return user, nil
}
