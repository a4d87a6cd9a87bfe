package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nossagrana/nossagrana/internal/models"
	"github.com/nossagrana/nossagrana/internal/storage"
)

// CoupleService implements couple formation.
type CoupleService struct {
	users   storage.UserStore
	couples storage.CoupleStore
}

// NewCoupleService creates a CoupleService with the given stores.
func NewCoupleService(users storage.UserStore, couples storage.CoupleStore) *CoupleService {
	return &CoupleService{users: users, couples: couples}
}

// CreateCouple forms a new couple with the given user as founding member
// and points the founder's membership reference at it.
//
// Fails with ErrResourceNotFound if the user does not exist and with
// CoupleExistsError if the name is already taken.
func (s *CoupleService) CreateCouple(ctx context.Context, userID uuid.UUID, name string) (*models.Couple, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrResourceNotFound
	}

	existing, err := s.couples.FindCoupleByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find couple by name: %w", err)
	}
	if existing != nil {
		return nil, &CoupleExistsError{Name: name}
	}

	couple := models.NewCouple(name, user.ID)
	if err := s.couples.CreateCouple(ctx, couple); err != nil {
		return nil, fmt.Errorf("create couple: %w", err)
	}

	user.EnterCouple(couple.ID)
	if err := s.users.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	slog.Info("couple created",
		"couple_id", couple.ID,
		"name", couple.Name,
		"founder_id", user.ID,
	)

	return couple, nil
}
