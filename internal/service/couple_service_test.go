package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/nossagrana/nossagrana/internal/models"
	"github.com/nossagrana/nossagrana/internal/storage/memory"
)

// seedUser registers a user directly in the store.
func seedUser(t *testing.T, store *memory.Store, name, email string) *models.User {
	t.Helper()
	user := models.NewUser(name, email, "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

// seedCouple forms a couple for the user the way CreateCouple would.
func seedCouple(t *testing.T, store *memory.Store, name string, founder *models.User) *models.Couple {
	t.Helper()
	couple := models.NewCouple(name, founder.ID)
	if err := store.CreateCouple(context.Background(), couple); err != nil {
		t.Fatalf("seed couple: %v", err)
	}
	founder.EnterCouple(couple.ID)
	if err := store.SaveUser(context.Background(), founder); err != nil {
		t.Fatalf("save founder: %v", err)
	}
	return couple
}

func TestCreateCouple(t *testing.T) {
	store := memory.New()
	svc := NewCoupleService(store, store)
	ctx := context.Background()

	user := seedUser(t, store, "Ana", "ana@example.com")

	couple, err := svc.CreateCouple(ctx, user.ID, "casa-nova")
	if err != nil {
		t.Fatalf("CreateCouple failed: %v", err)
	}
	if couple.Name != "casa-nova" {
		t.Errorf("expected name %q, got %q", "casa-nova", couple.Name)
	}
	if len(couple.Members) != 1 || couple.Members[0] != user.ID {
		t.Errorf("expected founder as sole member, got %v", couple.Members)
	}

	stored, err := store.FindCoupleByID(ctx, couple.ID)
	if err != nil || stored == nil {
		t.Fatalf("couple not persisted: %v", err)
	}

	founder, err := store.FindUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find founder: %v", err)
	}
	if founder.CoupleID != couple.ID {
		t.Errorf("founder membership not updated: got %s, want %s", founder.CoupleID, couple.ID)
	}
}

func TestCreateCoupleUserNotFound(t *testing.T) {
	store := memory.New()
	svc := NewCoupleService(store, store)

	_, err := svc.CreateCouple(context.Background(), uuid.New(), "casa-nova")
	if !errors.Is(err, ErrResourceNotFound) {
		t.Fatalf("expected ErrResourceNotFound, got %v", err)
	}
}

func TestCreateCoupleNameTaken(t *testing.T) {
	store := memory.New()
	svc := NewCoupleService(store, store)
	ctx := context.Background()

	first := seedUser(t, store, "Ana", "ana@example.com")
	seedCouple(t, store, "casa-nova", first)

	second := seedUser(t, store, "Bia", "bia@example.com")
	_, err := svc.CreateCouple(ctx, second.ID, "casa-nova")

	var exists *CoupleExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("expected CoupleExistsError, got %v", err)
	}
	if exists.Name != "casa-nova" {
		t.Errorf("expected conflicting name %q, got %q", "casa-nova", exists.Name)
	}
}
