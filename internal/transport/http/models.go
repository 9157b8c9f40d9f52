package http

import (
	"time"

	"github.com/task-manager-app/backend/internal/domain"
)

// ErrorResponse represents a generic error payload.
type ErrorResponse struct {
	Message string `json:"message" example:"Credenciales inválidas"`
}

// RegisterRequest carries the registration fields.
type RegisterRequest struct {
	Nombre   string `json:"nombre" example:"Ana García"`
	Email    string `json:"email" example:"ana@example.com"`
	Password string `json:"password" example:"secreta123"`
}

// LoginRequest carries the login fields.
type LoginRequest struct {
	Email    string `json:"email" example:"ana@example.com"`
	Password string `json:"password" example:"secreta123"`
}

// ForgotPasswordRequest carries the account email for a reset request.
type ForgotPasswordRequest struct {
	Email string `json:"email" example:"ana@example.com"`
}

// ResetPasswordRequest carries the replacement password.
type ResetPasswordRequest struct {
	Password string `json:"password" example:"nueva-clave456"`
}

// AuthUser is the sanitized user representation embedded in auth responses.
type AuthUser struct {
	ID     string `json:"id" example:"9fd13fd2-63c5-4f29-a210-4a1a8e285f74"`
	Nombre string `json:"nombre" example:"Ana García"`
	Email  string `json:"email" example:"ana@example.com"`
}

// AuthTokenResponse is returned by register and login.
type AuthTokenResponse struct {
	Message string   `json:"message" example:"Sesión iniciada"`
	Token   string   `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User    AuthUser `json:"user"`
}

// CreateTaskRequest carries the task creation fields. The due date accepts
// either RFC 3339 or a bare YYYY-MM-DD date.
type CreateTaskRequest struct {
	Titulo           string           `json:"titulo" example:"Comprar pan"`
	Descripcion      *string          `json:"descripcion,omitempty"`
	Prioridad        *domain.Priority `json:"prioridad,omitempty" example:"alta"`
	FechaVencimiento *string          `json:"fechaVencimiento,omitempty" example:"2026-09-15"`
}

// UpdateTaskRequest carries a partial task update. Absent fields are left
// untouched; an owner field is deliberately not bindable.
type UpdateTaskRequest struct {
	Titulo           *string          `json:"titulo,omitempty"`
	Descripcion      *string          `json:"descripcion,omitempty"`
	Completada       *bool            `json:"completada,omitempty"`
	Prioridad        *domain.Priority `json:"prioridad,omitempty"`
	FechaVencimiento *string          `json:"fechaVencimiento,omitempty"`
}

// TaskOwner is the owner identity resolved on task reads.
type TaskOwner struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre,omitempty"`
	Email  string `json:"email,omitempty"`
}

// TaskResponse is the wire representation of a task.
type TaskResponse struct {
	ID               string          `json:"id"`
	Titulo           string          `json:"titulo"`
	Descripcion      *string         `json:"descripcion,omitempty"`
	Completada       bool            `json:"completada"`
	Prioridad        domain.Priority `json:"prioridad"`
	Usuario          TaskOwner       `json:"usuario"`
	FechaVencimiento *time.Time      `json:"fechaVencimiento,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func toAuthUser(user *domain.User) AuthUser {
	return AuthUser{
		ID:     user.ID.String(),
		Nombre: user.Nombre,
		Email:  user.Email,
	}
}

func toTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:               task.ID.String(),
		Titulo:           task.Titulo,
		Descripcion:      task.Descripcion,
		Completada:       task.Completada,
		Prioridad:        task.Prioridad,
		Usuario:          TaskOwner{ID: task.UserID.String()},
		FechaVencimiento: task.FechaVencimiento,
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
	}
}

func toTaskDetailResponse(detail *domain.TaskDetail) TaskResponse {
	resp := toTaskResponse(&detail.Task)
	resp.Usuario.Nombre = detail.OwnerNombre
	resp.Usuario.Email = detail.OwnerEmail
	return resp
}
