package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/task-manager-app/backend/internal/domain"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, nombre, email, password_hash, password_salt, reset_token_hash, reset_token_expires_at, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, nombre, email string, passwordHash, passwordSalt []byte) (*domain.User, error) {
	const query = `
        INSERT INTO user_account (nombre, email, password_hash, password_salt)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + userColumns + `
    `
	row := r.db.QueryRowxContext(ctx, query, nombre, email, passwordHash, passwordSalt)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM user_account
        WHERE email = $1
    `
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM user_account
        WHERE id = $1
    `
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte) error {
	const query = `
        UPDATE user_account
        SET password_hash = $2,
            password_salt = $3,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id, passwordHash, passwordSalt)
	return err
}

func (r *UserRepository) SetResetToken(ctx context.Context, id uuid.UUID, tokenHash []byte, expiresAt time.Time) error {
	const query = `
        UPDATE user_account
        SET reset_token_hash = $2,
            reset_token_expires_at = $3,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id, tokenHash, expiresAt)
	return err
}

func (r *UserRepository) FindByResetTokenHash(ctx context.Context, tokenHash []byte, now time.Time) (*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM user_account
        WHERE reset_token_hash = $1 AND reset_token_expires_at > $2
    `
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, tokenHash, now); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ClearResetToken(ctx context.Context, id uuid.UUID) error {
	const query = `
        UPDATE user_account
        SET reset_token_hash = NULL,
            reset_token_expires_at = NULL,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
