package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/task-manager-app/backend/internal/domain"
)

type TaskRepository struct {
	db *sqlx.DB
}

func NewTaskRepo(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, titulo, descripcion, completada, prioridad, user_id, fecha_vencimiento, created_at, updated_at`

func (r *TaskRepository) Create(ctx context.Context, userID uuid.UUID, titulo string, descripcion *string, prioridad domain.Priority, fechaVencimiento *time.Time) (*domain.Task, error) {
	const query = `
        INSERT INTO task (titulo, descripcion, prioridad, user_id, fecha_vencimiento)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + taskColumns + `
    `
	row := r.db.QueryRowxContext(ctx, query, titulo, descripcion, prioridad, userID, fechaVencimiento)
	var task domain.Task
	if err := row.StructScan(&task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	const query = `
        SELECT ` + taskColumns + `
        FROM task
        WHERE id = $1
    `
	var task domain.Task
	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*domain.TaskDetail, error) {
	const query = `
        SELECT t.id, t.titulo, t.descripcion, t.completada, t.prioridad, t.user_id,
               t.fecha_vencimiento, t.created_at, t.updated_at,
               u.nombre AS owner_nombre, u.email AS owner_email
        FROM task t
        JOIN user_account u ON u.id = t.user_id
        WHERE t.id = $1
    `
	var detail domain.TaskDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.TaskDetail, error) {
	const query = `
        SELECT t.id, t.titulo, t.descripcion, t.completada, t.prioridad, t.user_id,
               t.fecha_vencimiento, t.created_at, t.updated_at,
               u.nombre AS owner_nombre, u.email AS owner_email
        FROM task t
        JOIN user_account u ON u.id = t.user_id
        WHERE t.user_id = $1
        ORDER BY t.created_at
    `
	tasks := []domain.TaskDetail{}
	if err := r.db.SelectContext(ctx, &tasks, query, userID); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, id uuid.UUID, update domain.TaskUpdate) (*domain.Task, error) {
	const query = `
        UPDATE task
        SET titulo = COALESCE($2, titulo),
            descripcion = COALESCE($3, descripcion),
            completada = COALESCE($4, completada),
            prioridad = COALESCE($5, prioridad),
            fecha_vencimiento = COALESCE($6, fecha_vencimiento),
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + taskColumns + `
    `
	row := r.db.QueryRowxContext(ctx, query, id, update.Titulo, update.Descripcion, update.Completada, update.Prioridad, update.FechaVencimiento)
	var task domain.Task
	if err := row.StructScan(&task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM task WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
