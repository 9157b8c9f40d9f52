package domain

import (
	"time"

	"github.com/google/uuid"
)

// Priority is the task priority level as exposed on the wire.
type Priority string

const (
	PriorityBaja  Priority = "baja"
	PriorityMedia Priority = "media"
	PriorityAlta  Priority = "alta"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityBaja, PriorityMedia, PriorityAlta:
		return true
	}
	return false
}

type Task struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	Titulo           string     `db:"titulo" json:"titulo"`
	Descripcion      *string    `db:"descripcion" json:"descripcion,omitempty"`
	Completada       bool       `db:"completada" json:"completada"`
	Prioridad        Priority   `db:"prioridad" json:"prioridad"`
	UserID           uuid.UUID  `db:"user_id" json:"-"`
	FechaVencimiento *time.Time `db:"fecha_vencimiento" json:"fechaVencimiento,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updatedAt"`
}

// TaskDetail is a task joined with its owner's public identity.
type TaskDetail struct {
	Task
	OwnerNombre string `db:"owner_nombre" json:"-"`
	OwnerEmail  string `db:"owner_email" json:"-"`
}

// TaskUpdate carries a partial update. Nil fields are left untouched; the
// owner is never part of an update.
type TaskUpdate struct {
	Titulo           *string
	Descripcion      *string
	Completada       *bool
	Prioridad        *Priority
	FechaVencimiento *time.Time
}
