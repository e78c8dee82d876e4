package corporation

import (
	"time"

	"github.com/google/uuid"
)

type Corporation struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	InviteCode string    `json:"invite_code"`
	CreatedBy  uuid.UUID `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateRequest struct {
	Name string `json:"name" validate:"required,min=2,max=80"`
}

type JoinRequest struct {
	InviteCode string `json:"invite_code" validate:"required"`
}

// InviteQR carries the invite code plus a rendered QR for the mobile join
// screen.
type InviteQR struct {
	InviteCode   string `json:"invite_code"`
	ShareLink    string `json:"share_link"`
	QrCodeBase64 string `json:"qr_code_base64"`
}
