package models

import (
	"time"

	"github.com/google/uuid"
)

// InvitationStatus is the lifecycle state of an invitation.
// It moves from pending to exactly one terminal state.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRejected InvitationStatus = "rejected"
)

// Invitation is a single-use, tokenized proposal for a user to join a couple.
// The invitee is addressed by email; the opaque token is what the transport
// layer delivers to them.
type Invitation struct {
	ID            uuid.UUID
	CoupleID      uuid.UUID
	InviterUserID uuid.UUID
	InviteeEmail  string
	Token         string
	Status        InvitationStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewInvitation creates a pending invitation with a fresh ID and timestamps.
func NewInvitation(coupleID, inviterUserID uuid.UUID, inviteeEmail, token string) *Invitation {
	now := time.Now().UTC()
	return &Invitation{
		ID:            uuid.New(),
		CoupleID:      coupleID,
		InviterUserID: inviterUserID,
		InviteeEmail:  inviteeEmail,
		Token:         token,
		Status:        InvitationPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Answered reports whether the invitation has left the pending state.
func (i *Invitation) Answered() bool {
	return i.Status != InvitationPending
}

// UpdateStatus sets the lifecycle status. Callers must check Answered
// first; a terminal status is never re-answered.
func (i *Invitation) UpdateStatus(status InvitationStatus) {
	i.Status = status
	i.touch()
}

func (i *Invitation) touch() {
	i.UpdatedAt = time.Now().UTC()
}
