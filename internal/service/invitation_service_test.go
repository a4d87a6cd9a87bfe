package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/nossagrana/nossagrana/internal/models"
	"github.com/nossagrana/nossagrana/internal/storage/memory"
)

// inviteFixture is a couple with one member and a pending invitation
// addressed to a second, uncoupled user.
type inviteFixture struct {
	store      *memory.Store
	svc        *InvitationService
	inviter    *models.User
	invitee    *models.User
	couple     *models.Couple
	invitation *models.Invitation
}

func newInviteFixture(t *testing.T) *inviteFixture {
	t.Helper()
	store := memory.New()
	svc := NewInvitationService(store, store, store)
	ctx := context.Background()

	inviter := seedUser(t, store, "Ana", "ana@example.com")
	couple := seedCouple(t, store, "casa-nova", inviter)
	invitee := seedUser(t, store, "Bia", "bia@example.com")

	invitation, err := svc.Invite(ctx, inviter.ID, couple.ID, invitee.Email)
	if err != nil {
		t.Fatalf("Invite failed: %v", err)
	}

	return &inviteFixture{
		store:      store,
		svc:        svc,
		inviter:    inviter,
		invitee:    invitee,
		couple:     couple,
		invitation: invitation,
	}
}

func TestInvite(t *testing.T) {
	f := newInviteFixture(t)

	if f.invitation.Status != models.InvitationPending {
		t.Errorf("expected pending invitation, got %q", f.invitation.Status)
	}
	if f.invitation.Token == "" {
		t.Error("expected a non-empty token")
	}
	if f.invitation.InviteeEmail != f.invitee.Email {
		t.Errorf("expected invitee %q, got %q", f.invitee.Email, f.invitation.InviteeEmail)
	}

	stored, err := f.store.FindInvitationByToken(context.Background(), f.invitation.Token)
	if err != nil || stored == nil {
		t.Fatalf("invitation not persisted: %v", err)
	}
}

func TestInviteFailures(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()

	t.Run("inviter not found", func(t *testing.T) {
		_, err := f.svc.Invite(ctx, uuid.New(), f.couple.ID, f.invitee.Email)
		if !errors.Is(err, ErrResourceNotFound) {
			t.Errorf("expected ErrResourceNotFound, got %v", err)
		}
	})

	t.Run("couple not found", func(t *testing.T) {
		_, err := f.svc.Invite(ctx, f.inviter.ID, uuid.New(), f.invitee.Email)
		if !errors.Is(err, ErrResourceNotFound) {
			t.Errorf("expected ErrResourceNotFound, got %v", err)
		}
	})

	t.Run("inviter not a member", func(t *testing.T) {
		outsider := seedUser(t, f.store, "Caio", "caio@example.com")
		_, err := f.svc.Invite(ctx, outsider.ID, f.couple.ID, f.invitee.Email)
		if !errors.Is(err, ErrUserNotCoupleMember) {
			t.Errorf("expected ErrUserNotCoupleMember, got %v", err)
		}
	})

	t.Run("invitee not found", func(t *testing.T) {
		_, err := f.svc.Invite(ctx, f.inviter.ID, f.couple.ID, "nobody@example.com")
		if !errors.Is(err, ErrResourceNotFound) {
			t.Errorf("expected ErrResourceNotFound, got %v", err)
		}
	})
}

func TestAnswerAccept(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()

	couple, err := f.svc.Answer(ctx, f.invitation.Token, f.invitee.ID, AnswerAccept)
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if couple == nil {
		t.Fatal("accepting should return the updated couple")
	}
	if !couple.IsMember(f.invitee.ID) {
		t.Error("invitee should be a couple member after accepting")
	}

	user, err := f.store.FindUserByID(ctx, f.invitee.ID)
	if err != nil {
		t.Fatalf("find invitee: %v", err)
	}
	if user.CoupleID != f.couple.ID {
		t.Errorf("invitee membership not updated: got %s, want %s", user.CoupleID, f.couple.ID)
	}

	stored, err := f.store.FindInvitationByToken(ctx, f.invitation.Token)
	if err != nil {
		t.Fatalf("find invitation: %v", err)
	}
	if stored.Status != models.InvitationAccepted {
		t.Errorf("expected invitation accepted, got %q", stored.Status)
	}
}

func TestAnswerReject(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()

	couple, err := f.svc.Answer(ctx, f.invitation.Token, f.invitee.ID, AnswerReject)
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if couple != nil {
		t.Error("rejecting should not return a couple")
	}

	// The rejection must be recorded: the token is spent either way.
	stored, err := f.store.FindInvitationByToken(ctx, f.invitation.Token)
	if err != nil {
		t.Fatalf("find invitation: %v", err)
	}
	if stored.Status != models.InvitationRejected {
		t.Errorf("expected invitation rejected, got %q", stored.Status)
	}

	user, err := f.store.FindUserByID(ctx, f.invitee.ID)
	if err != nil {
		t.Fatalf("find invitee: %v", err)
	}
	if user.InCouple() {
		t.Error("rejecting must not change the invitee's membership")
	}
}

func TestAnswerUnknownToken(t *testing.T) {
	f := newInviteFixture(t)

	_, err := f.svc.Answer(context.Background(), "no-such-token", f.invitee.ID, AnswerAccept)
	if !errors.Is(err, ErrResourceNotFound) {
		t.Fatalf("expected ErrResourceNotFound, got %v", err)
	}
}

func TestAnswerAlreadyAnswered(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Answer(ctx, f.invitation.Token, f.invitee.ID, AnswerReject); err != nil {
		t.Fatalf("first answer failed: %v", err)
	}

	// Already-answered wins even over an identity mismatch.
	stranger := seedUser(t, f.store, "Caio", "caio@example.com")
	_, err := f.svc.Answer(ctx, f.invitation.Token, stranger.ID, AnswerAccept)
	if !errors.Is(err, ErrInvitationAlreadyAnswered) {
		t.Fatalf("expected ErrInvitationAlreadyAnswered, got %v", err)
	}
}

func TestAnswerWrongUser(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()

	// Identity mismatch beats already-in-couple: the stranger belongs to
	// their own couple, but the invitation is not addressed to them.
	stranger := seedUser(t, f.store, "Caio", "caio@example.com")
	seedCouple(t, f.store, "outra-casa", stranger)

	_, err := f.svc.Answer(ctx, f.invitation.Token, stranger.ID, AnswerAccept)
	if !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("expected ErrNotAllowed, got %v", err)
	}
}

func TestAnswerUserNotFound(t *testing.T) {
	f := newInviteFixture(t)

	_, err := f.svc.Answer(context.Background(), f.invitation.Token, uuid.New(), AnswerAccept)
	if !errors.Is(err, ErrResourceNotFound) {
		t.Fatalf("expected ErrResourceNotFound, got %v", err)
	}
}

func TestAnswerUserAlreadyInCouple(t *testing.T) {
	for _, answer := range []InvitationAnswer{AnswerAccept, AnswerReject} {
		t.Run(string(answer), func(t *testing.T) {
			f := newInviteFixture(t)
			ctx := context.Background()

			f.invitee.EnterCouple(uuid.New())
			if err := f.store.SaveUser(ctx, f.invitee); err != nil {
				t.Fatalf("save invitee: %v", err)
			}

			// Membership blocks both directions: a coupled user does not
			// answer invitations at all.
			_, err := f.svc.Answer(ctx, f.invitation.Token, f.invitee.ID, answer)
			if !errors.Is(err, ErrUserAlreadyInCouple) {
				t.Fatalf("expected ErrUserAlreadyInCouple, got %v", err)
			}

			stored, err := f.store.FindInvitationByToken(ctx, f.invitation.Token)
			if err != nil {
				t.Fatalf("find invitation: %v", err)
			}
			if stored.Status != models.InvitationPending {
				t.Errorf("a blocked answer must leave the invitation pending, got %q", stored.Status)
			}
		})
	}
}

func TestAnswerInvalidAnswer(t *testing.T) {
	f := newInviteFixture(t)

	_, err := f.svc.Answer(context.Background(), f.invitation.Token, f.invitee.ID, InvitationAnswer("maybe"))
	if !errors.Is(err, ErrInvalidInvitationAnswer) {
		t.Fatalf("expected ErrInvalidInvitationAnswer, got %v", err)
	}
}
