package warning

import (
	"time"

	"github.com/google/uuid"
)

type Warning struct {
	ID            uuid.UUID `json:"id"`
	CorporationID uuid.UUID `json:"corporation_id"`
	ManagerID     uuid.UUID `json:"manager_id"`
	WorkerID      uuid.UUID `json:"worker_id"`
	Message       string    `json:"message"`
	Read          bool      `json:"read"`
	CreatedAt     time.Time `json:"created_at"`
}

type SendRequest struct {
	WorkerID uuid.UUID `json:"worker_id" validate:"required"`
	Message  string    `json:"message" validate:"required,max=500"`
}
