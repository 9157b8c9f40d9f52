package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/task-manager-app/backend/internal/domain"
	"github.com/task-manager-app/backend/internal/repository/ports"
)

var (
	ErrTaskTitleRequired   = errors.New("task title is required")
	ErrTaskInvalidPriority = errors.New("invalid task priority")
	ErrTaskNotFound        = errors.New("task not found")
	ErrTaskForbidden       = errors.New("task belongs to another user")
)

type TaskService struct {
	tasks ports.TaskRepository
}

type TaskCreateInput struct {
	Titulo           string
	Descripcion      *string
	Prioridad        *domain.Priority
	FechaVencimiento *time.Time
}

func NewTaskService(tasks ports.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

func (s *TaskService) Create(ctx context.Context, userID uuid.UUID, input TaskCreateInput) (*domain.Task, error) {
	titulo := strings.TrimSpace(input.Titulo)
	if titulo == "" {
		return nil, ErrTaskTitleRequired
	}

	prioridad := domain.PriorityMedia
	if input.Prioridad != nil {
		if !input.Prioridad.Valid() {
			return nil, ErrTaskInvalidPriority
		}
		prioridad = *input.Prioridad
	}

	return s.tasks.Create(ctx, userID, titulo, normalizeString(input.Descripcion), prioridad, input.FechaVencimiento)
}

func (s *TaskService) List(ctx context.Context, userID uuid.UUID) ([]domain.TaskDetail, error) {
	return s.tasks.ListByUser(ctx, userID)
}

func (s *TaskService) Get(ctx context.Context, userID, taskID uuid.UUID) (*domain.TaskDetail, error) {
	detail, err := s.tasks.FindDetailByID(ctx, taskID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if detail.UserID != userID {
		return nil, ErrTaskForbidden
	}
	return detail, nil
}

// Update merges the supplied fields into the task after checking ownership
// against the stored owner. The owner itself is never updatable.
func (s *TaskService) Update(ctx context.Context, userID, taskID uuid.UUID, update domain.TaskUpdate) (*domain.Task, error) {
	if err := s.authorize(ctx, userID, taskID); err != nil {
		return nil, err
	}

	if update.Titulo != nil {
		trimmed := strings.TrimSpace(*update.Titulo)
		if trimmed == "" {
			return nil, ErrTaskTitleRequired
		}
		update.Titulo = &trimmed
	}
	if update.Prioridad != nil && !update.Prioridad.Valid() {
		return nil, ErrTaskInvalidPriority
	}

	task, err := s.tasks.Update(ctx, taskID, update)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	if err := s.authorize(ctx, userID, taskID); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, taskID)
}

// authorize fetches the task by id and compares its stored owner with the
// authenticated caller. Client-supplied owner fields are never consulted.
func (s *TaskService) authorize(ctx context.Context, userID, taskID uuid.UUID) error {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		if isNotFound(err) {
			return ErrTaskNotFound
		}
		return err
	}
	if task.UserID != userID {
		return ErrTaskForbidden
	}
	return nil
}

func normalizeString(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
