package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleWorker  Role = "worker"
	RoleManager Role = "manager"
)

type User struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	Username      string     `json:"username"`
	PasswordHash  string     `json:"-"`
	Role          Role       `json:"role"`
	CorporationID *uuid.UUID `json:"corporation_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
