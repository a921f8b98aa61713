package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/trendulum/trendulum-api-go/internal/domain"
	"go.uber.org/zap"
)

type UserRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewUserRepository(postgres *PostgresService, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     postgres.GetDB(),
		logger: logger,
	}
}

func (r *UserRepository) Create(ctx context.Context, email, username, hashedPassword string) (*domain.User, error) {
	query := `
		INSERT INTO users (email, username, hashed_password)
		VALUES ($1, $2, $3)
		RETURNING id, is_active, created_at
	`

	user := &domain.User{
		Email:          email,
		Username:       username,
		HashedPassword: hashedPassword,
	}

	err := r.db.QueryRowContext(ctx, query, email, username, hashedPassword).Scan(
		&user.ID, &user.IsActive, &user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return user, nil
}

// FindByEmail returns nil without error when no user matches.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, username, hashed_password, is_active, created_at
		FROM users
		WHERE email = $1
		LIMIT 1
	`

	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.Username, &user.HashedPassword, &user.IsActive, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, email, username, hashed_password, is_active, created_at
		FROM users
		WHERE id = $1
		LIMIT 1
	`

	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Username, &user.HashedPassword, &user.IsActive, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by id: %w", err)
	}

	return user, nil
}
