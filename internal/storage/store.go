// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nossagrana/nossagrana/internal/models"
)

// TransactionFilters narrows transaction listings.
//
// EndDate is the required inclusive upper bound on the occurrence date.
// Zero values elsewhere mean "no filter". Page is zero-based; Page and
// Limit apply as an offset/limit window over the date-ordered result set.
type TransactionFilters struct {
	Type      models.TransactionType
	Category  string
	UserID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Page      int
	Limit     int
}

// UserStore defines persistence operations for users.
// Lookups return (nil, nil) when no matching row exists.
type UserStore interface {
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUsersByCoupleID(ctx context.Context, coupleID uuid.UUID) ([]*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	SaveUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// CoupleStore defines persistence operations for couples.
// Lookups return (nil, nil) when no matching row exists.
type CoupleStore interface {
	FindCoupleByID(ctx context.Context, id uuid.UUID) (*models.Couple, error)
	FindCoupleByMemberID(ctx context.Context, memberID uuid.UUID) (*models.Couple, error)
	FindCoupleByName(ctx context.Context, name string) (*models.Couple, error)
	CreateCouple(ctx context.Context, couple *models.Couple) error
	SaveCouple(ctx context.Context, couple *models.Couple) error
	DeleteCouple(ctx context.Context, id uuid.UUID) error
}

// InvitationStore defines persistence operations for invitations.
// Lookups return (nil, nil) when no matching row exists.
type InvitationStore interface {
	FindInvitationByID(ctx context.Context, id uuid.UUID) (*models.Invitation, error)
	FindInvitationByToken(ctx context.Context, token string) (*models.Invitation, error)
	FindInvitationsByInviteeEmail(ctx context.Context, email string) ([]*models.Invitation, error)
	CreateInvitation(ctx context.Context, invitation *models.Invitation) error
	SaveInvitation(ctx context.Context, invitation *models.Invitation) error
	DeleteInvitation(ctx context.Context, id uuid.UUID) error
}

// TransactionStore defines persistence operations for transactions.
// Lookups return (nil, nil) when no matching row exists.
type TransactionStore interface {
	FindTransactionByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	FindTransactionsByCoupleID(ctx context.Context, coupleID uuid.UUID, filters TransactionFilters) ([]*models.Transaction, error)
	CreateTransaction(ctx context.Context, transaction *models.Transaction) error
	SaveTransaction(ctx context.Context, transaction *models.Transaction) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
}

// Store is the full set of repository contracts the services consume.
// This abstraction allows swapping storage backends (SQLite, in-memory,
// PostgreSQL, etc.) without changing the service layer.
type Store interface {
	UserStore
	CoupleStore
	InvitationStore
	TransactionStore

	// Close releases any resources held by the store.
	Close() error
}
