package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nossagrana/nossagrana/internal/models"
	"github.com/nossagrana/nossagrana/internal/storage"
)

// InvitationAnswer is a response to a pending invitation.
type InvitationAnswer string

const (
	AnswerAccept InvitationAnswer = "accept"
	AnswerReject InvitationAnswer = "reject"
)

// InvitationService implements invitation issuance and answering.
type InvitationService struct {
	users       storage.UserStore
	couples     storage.CoupleStore
	invitations storage.InvitationStore
}

// NewInvitationService creates an InvitationService with the given stores.
func NewInvitationService(users storage.UserStore, couples storage.CoupleStore, invitations storage.InvitationStore) *InvitationService {
	return &InvitationService{users: users, couples: couples, invitations: invitations}
}

// Invite issues a pending invitation from a couple member to an existing
// user addressed by email. The returned invitation carries the single-use
// token the transport layer is responsible for delivering.
//
// Fails with ErrResourceNotFound if the inviter, the couple or the invitee
// does not exist, and with ErrUserNotCoupleMember if the inviter is not a
// member of the couple.
func (s *InvitationService) Invite(ctx context.Context, inviterUserID, coupleID uuid.UUID, inviteeEmail string) (*models.Invitation, error) {
	inviter, err := s.users.FindUserByID(ctx, inviterUserID)
	if err != nil {
		return nil, fmt.Errorf("find inviter: %w", err)
	}
	if inviter == nil {
		return nil, ErrResourceNotFound
	}

	couple, err := s.couples.FindCoupleByID(ctx, coupleID)
	if err != nil {
		return nil, fmt.Errorf("find couple: %w", err)
	}
	if couple == nil {
		return nil, ErrResourceNotFound
	}

	if !couple.IsMember(inviter.ID) {
		return nil, ErrUserNotCoupleMember
	}

	invitee, err := s.users.FindUserByEmail(ctx, inviteeEmail)
	if err != nil {
		return nil, fmt.Errorf("find invitee: %w", err)
	}
	if invitee == nil {
		return nil, ErrResourceNotFound
	}

	token := uuid.NewString()
	invitation := models.NewInvitation(couple.ID, inviter.ID, invitee.Email, token)

	if err := s.invitations.CreateInvitation(ctx, invitation); err != nil {
		return nil, fmt.Errorf("create invitation: %w", err)
	}

	slog.Info("invitation issued",
		"invitation_id", invitation.ID,
		"couple_id", couple.ID,
		"inviter_id", inviter.ID,
	)

	return invitation, nil
}

// Answer resolves a pending invitation into a membership mutation.
//
// Accepting adds the user to the couple, stamps the invitation accepted and
// points the user's membership reference at the couple; the updated couple
// is returned. Rejecting stamps the invitation rejected and returns nil.
//
// The failure precedence is strict: ErrResourceNotFound (invitation, user
// or couple missing) > ErrInvitationAlreadyAnswered > ErrNotAllowed (the
// invitation is addressed to someone else) > ErrUserAlreadyInCouple >
// ErrInvalidInvitationAnswer. A user who already belongs to a couple is
// blocked from rejecting too: once coupled, you do not answer invitations
// at all.
func (s *InvitationService) Answer(ctx context.Context, token string, userID uuid.UUID, answer InvitationAnswer) (*models.Couple, error) {
	invitation, err := s.invitations.FindInvitationByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("find invitation: %w", err)
	}
	if invitation == nil {
		return nil, ErrResourceNotFound
	}

	if invitation.Answered() {
		return nil, ErrInvitationAlreadyAnswered
	}

	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrResourceNotFound
	}

	if user.Email != invitation.InviteeEmail {
		return nil, ErrNotAllowed
	}

	couple, err := s.couples.FindCoupleByID(ctx, invitation.CoupleID)
	if err != nil {
		return nil, fmt.Errorf("find couple: %w", err)
	}
	if couple == nil {
		return nil, ErrResourceNotFound
	}

	if user.InCouple() {
		return nil, ErrUserAlreadyInCouple
	}

	switch answer {
	case AnswerAccept:
		couple.AddMember(user.ID)
		invitation.UpdateStatus(models.InvitationAccepted)
		if err := s.couples.SaveCouple(ctx, couple); err != nil {
			return nil, fmt.Errorf("save couple: %w", err)
		}

		user.EnterCouple(couple.ID)
		if err := s.users.SaveUser(ctx, user); err != nil {
			return nil, fmt.Errorf("save user: %w", err)
		}

		if err := s.invitations.SaveInvitation(ctx, invitation); err != nil {
			return nil, fmt.Errorf("save invitation: %w", err)
		}

		slog.Info("invitation accepted",
			"invitation_id", invitation.ID,
			"couple_id", couple.ID,
			"user_id", user.ID,
		)
		return couple, nil

	case AnswerReject:
		invitation.UpdateStatus(models.InvitationRejected)
		if err := s.invitations.SaveInvitation(ctx, invitation); err != nil {
			return nil, fmt.Errorf("save invitation: %w", err)
		}

		slog.Info("invitation rejected",
			"invitation_id", invitation.ID,
			"user_id", user.ID,
		)
		return nil, nil

	default:
		// The request shape should make this unreachable, but the
		// workflow must not assume its caller validated the value.
		return nil, ErrInvalidInvitationAnswer
	}
}
