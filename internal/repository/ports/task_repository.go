package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/task-manager-app/backend/internal/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, userID uuid.UUID, titulo string, descripcion *string, prioridad domain.Priority, fechaVencimiento *time.Time) (*domain.Task, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindDetailByID(ctx context.Context, id uuid.UUID) (*domain.TaskDetail, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.TaskDetail, error)
	Update(ctx context.Context, id uuid.UUID, update domain.TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
