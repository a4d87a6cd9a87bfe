package models

import (
	"time"

	"github.com/google/uuid"
)

// Couple is the aggregate root two users share finances under.
//
// Members holds user IDs in join order. The intended flow only ever adds a
// second member, but the model itself does not cap the size; the workflows
// enforce that.
type Couple struct {
	// ID is the unique identifier for the couple.
	ID uuid.UUID

	// Name is the display name of the couple (unique).
	Name string

	// Members is the ordered set of member user IDs.
	Members []uuid.UUID

	// CreatedAt is when the couple was formed.
	CreatedAt time.Time

	// UpdatedAt is stamped on every mutation.
	UpdatedAt time.Time
}

// NewCouple creates a couple with the founding user as its sole member.
func NewCouple(name string, founderID uuid.UUID) *Couple {
	now := time.Now().UTC()
	return &Couple{
		ID:        uuid.New(),
		Name:      name,
		Members:   []uuid.UUID{founderID},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsMember reports whether the given user is part of the couple.
func (c *Couple) IsMember(userID uuid.UUID) bool {
	for _, id := range c.Members {
		if id == userID {
			return true
		}
	}
	return false
}

// AddMember appends the user to the membership.
// Adding a user who is already a member is a no-op.
func (c *Couple) AddMember(userID uuid.UUID) {
	if c.IsMember(userID) {
		return
	}
	c.Members = append(c.Members, userID)
	c.touch()
}

// RemoveMember drops the user from the membership. Idempotent.
func (c *Couple) RemoveMember(userID uuid.UUID) {
	kept := c.Members[:0]
	for _, id := range c.Members {
		if id != userID {
			kept = append(kept, id)
		}
	}
	c.Members = kept
	c.touch()
}

// Rename changes the couple's display name.
func (c *Couple) Rename(name string) {
	c.Name = name
	c.touch()
}

func (c *Couple) touch() {
	c.UpdatedAt = time.Now().UTC()
}
