package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account.
//
// A user belongs to zero or one couple at any time. CoupleID is uuid.Nil
// while they belong to none.
type User struct {
	// ID is the unique identifier for the user.
	ID uuid.UUID

	// Name is the display name of the user.
	Name string

	// Email is the user's email address (unique).
	// Used for login and for addressing invitations.
	Email string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// CoupleID is the couple the user currently belongs to,
	// or uuid.Nil if they have no membership.
	CoupleID uuid.UUID

	// CreatedAt is when the account was created.
	CreatedAt time.Time

	// UpdatedAt is stamped on every mutation.
	UpdatedAt time.Time
}

// NewUser creates a user with a fresh ID and creation timestamps.
func NewUser(name, email, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// InCouple reports whether the user currently belongs to a couple.
func (u *User) InCouple() bool {
	return u.CoupleID != uuid.Nil
}

// EnterCouple points the user's membership reference at the given couple.
func (u *User) EnterCouple(coupleID uuid.UUID) {
	u.CoupleID = coupleID
	u.touch()
}

// LeaveCouple clears the user's membership reference.
func (u *User) LeaveCouple() {
	u.CoupleID = uuid.Nil
	u.touch()
}

// ChangePassword replaces the stored credential hash.
func (u *User) ChangePassword(passwordHash string) {
	u.PasswordHash = passwordHash
	u.touch()
}

func (u *User) touch() {
	u.UpdatedAt = time.Now().UTC()
}
