package service

import (
	"errors"
	"fmt"
)

// Workflow failures are a closed set of typed values; the transport layer
// maps each kind to a wire status. Callers match them with errors.Is and
// errors.As. No other error kinds cross the service boundary for expected
// failure conditions; anything else is an infrastructure fault.
var (
	// ErrResourceNotFound means a referenced user, couple, invitation or
	// transaction does not exist.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrNotAllowed means the acting user is not the one the invitation
	// is addressed to.
	ErrNotAllowed = errors.New("not allowed")

	// ErrUserNotCoupleMember means an inviter tried to invite on behalf
	// of a couple they do not belong to.
	ErrUserNotCoupleMember = errors.New("user is not a member of the couple")

	// ErrUserAlreadyInCouple means the answering user already has a
	// couple membership.
	ErrUserAlreadyInCouple = errors.New("user is already member of a couple")

	// ErrInvitationAlreadyAnswered means the invitation left the pending
	// state and cannot be re-answered.
	ErrInvitationAlreadyAnswered = errors.New("invitation already answered")

	// ErrInvalidInvitationAnswer means the answer value was neither
	// accept nor reject.
	ErrInvalidInvitationAnswer = errors.New("invalid invitation answer")
)

// CoupleExistsError reports a couple-name collision.
type CoupleExistsError struct {
	Name string
}

func (e *CoupleExistsError) Error() string {
	return fmt.Sprintf("couple %q already exists", e.Name)
}

// InvalidTransactionError rejects a transaction with a human-readable
// reason (payer not in couple, or payer amounts not summing to the total).
type InvalidTransactionError struct {
	Reason string
}

func (e *InvalidTransactionError) Error() string {
	return e.Reason
}
