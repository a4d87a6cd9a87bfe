// Package memory provides an in-memory implementation of storage.Store.
//
// It backs the service tests and the -mem development mode. Entities are
// held by reference, so a mutate-then-save sequence behaves the same way
// it does against a real store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/nossagrana/nossagrana/internal/models"
	"github.com/nossagrana/nossagrana/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store keeps all entities in slices guarded by a single mutex.
type Store struct {
	mu           sync.RWMutex
	users        []*models.User
	couples      []*models.Couple
	invitations  []*models.Invitation
	transactions []*models.Transaction
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

// --- users ---

func (s *Store) FindUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *Store) FindUsersByCoupleID(_ context.Context, coupleID uuid.UUID) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var users []*models.User
	for _, u := range s.users {
		if u.CoupleID == coupleID {
			users = append(users, u)
		}
	}
	return users, nil
}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, user)
	return nil
}

func (s *Store) SaveUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == user.ID {
			s.users[i] = user
			break
		}
	}
	return nil
}

func (s *Store) DeleteUser(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			break
		}
	}
	return nil
}

// --- couples ---

func (s *Store) FindCoupleByID(_ context.Context, id uuid.UUID) (*models.Couple, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.couples {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (s *Store) FindCoupleByMemberID(_ context.Context, memberID uuid.UUID) (*models.Couple, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.couples {
		if c.IsMember(memberID) {
			return c, nil
		}
	}
	return nil, nil
}

func (s *Store) FindCoupleByName(_ context.Context, name string) (*models.Couple, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.couples {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateCouple(_ context.Context, couple *models.Couple) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.couples = append(s.couples, couple)
	return nil
}

func (s *Store) SaveCouple(_ context.Context, couple *models.Couple) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.couples {
		if c.ID == couple.ID {
			s.couples[i] = couple
			break
		}
	}
	return nil
}

func (s *Store) DeleteCouple(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.couples {
		if c.ID == id {
			s.couples = append(s.couples[:i], s.couples[i+1:]...)
			break
		}
	}
	return nil
}

// --- invitations ---

func (s *Store) FindInvitationByID(_ context.Context, id uuid.UUID) (*models.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, inv := range s.invitations {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, nil
}

func (s *Store) FindInvitationByToken(_ context.Context, token string) (*models.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, inv := range s.invitations {
		if inv.Token == token {
			return inv, nil
		}
	}
	return nil, nil
}

func (s *Store) FindInvitationsByInviteeEmail(_ context.Context, email string) ([]*models.Invitation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var invitations []*models.Invitation
	for _, inv := range s.invitations {
		if inv.InviteeEmail == email {
			invitations = append(invitations, inv)
		}
	}
	return invitations, nil
}

func (s *Store) CreateInvitation(_ context.Context, invitation *models.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invitations = append(s.invitations, invitation)
	return nil
}

func (s *Store) SaveInvitation(_ context.Context, invitation *models.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, inv := range s.invitations {
		if inv.ID == invitation.ID {
			s.invitations[i] = invitation
			break
		}
	}
	return nil
}

func (s *Store) DeleteInvitation(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, inv := range s.invitations {
		if inv.ID == id {
			s.invitations = append(s.invitations[:i], s.invitations[i+1:]...)
			break
		}
	}
	return nil
}

// --- transactions ---

func (s *Store) FindTransactionByID(_ context.Context, id uuid.UUID) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (s *Store) FindTransactionsByCoupleID(_ context.Context, coupleID uuid.UUID, filters storage.TransactionFilters) ([]*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*models.Transaction
	for _, t := range s.transactions {
		if t.CoupleID != coupleID {
			continue
		}
		if t.Date.After(filters.EndDate) {
			continue
		}
		if !filters.StartDate.IsZero() && t.Date.Before(filters.StartDate) {
			continue
		}
		if filters.Type != "" && t.Type != filters.Type {
			continue
		}
		if filters.Category != "" && t.Category != filters.Category {
			continue
		}
		if filters.UserID != uuid.Nil && !hasPayer(t, filters.UserID) {
			continue
		}
		matched = append(matched, t)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date.Before(matched[j].Date)
	})

	offset := filters.Page * filters.Limit
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + filters.Limit
	if filters.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func hasPayer(t *models.Transaction, userID uuid.UUID) bool {
	for _, p := range t.PaidBy {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

func (s *Store) CreateTransaction(_ context.Context, transaction *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, transaction)
	return nil
}

func (s *Store) SaveTransaction(_ context.Context, transaction *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.transactions {
		if t.ID == transaction.ID {
			s.transactions[i] = transaction
			break
		}
	}
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.transactions {
		if t.ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			break
		}
	}
	return nil
}
