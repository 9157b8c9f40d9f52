package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/task-manager-app/backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, nombre, email string, passwordHash, passwordSalt []byte) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte) error
	SetResetToken(ctx context.Context, id uuid.UUID, tokenHash []byte, expiresAt time.Time) error
	FindByResetTokenHash(ctx context.Context, tokenHash []byte, now time.Time) (*domain.User, error)
	ClearResetToken(ctx context.Context, id uuid.UUID) error
}
