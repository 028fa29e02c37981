package entities

import (
	"time"

	"github.com/google/uuid"
)

// Invitation records who invited whom at registration time. The invitation
// code is the inviter's referral code.
type Invitation struct {
	ID             uuid.UUID `json:"id" db:"id"`
	InviterID      uuid.UUID `json:"inviter_id" db:"inviter_id"`
	InvitedID      uuid.UUID `json:"invited_id" db:"invited_id"`
	InvitationCode string    `json:"invitation_code" db:"invitation_code"`
	Status         string    `json:"status" db:"status"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
