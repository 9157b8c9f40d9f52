package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                  uuid.UUID  `db:"id" json:"id"`
	Nombre              string     `db:"nombre" json:"nombre"`
	Email               string     `db:"email" json:"email"`
	PasswordHash        []byte     `db:"password_hash" json:"-"`
	PasswordSalt        []byte     `db:"password_salt" json:"-"`
	ResetTokenHash      []byte     `db:"reset_token_hash" json:"-"`
	ResetTokenExpiresAt *time.Time `db:"reset_token_expires_at" json:"-"`
	CreatedAt           time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updatedAt"`
}
