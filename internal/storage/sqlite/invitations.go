package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nossagrana/nossagrana/internal/models"
)

// CreateInvitation persists a new invitation.
func (s *Store) CreateInvitation(ctx context.Context, invitation *models.Invitation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO invitations (id, couple_id, inviter_user_id, invitee_email, token, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		invitation.ID.String(), invitation.CoupleID.String(), invitation.InviterUserID.String(),
		invitation.InviteeEmail, invitation.Token, string(invitation.Status),
		invitation.CreatedAt.Unix(), invitation.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert invitation: %w", err)
	}
	return nil
}

// SaveInvitation updates an existing invitation (status and timestamps).
func (s *Store) SaveInvitation(ctx context.Context, invitation *models.Invitation) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE invitations SET status = ?, updated_at = ? WHERE id = ?",
		string(invitation.Status), invitation.UpdatedAt.Unix(), invitation.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}
	return nil
}

// DeleteInvitation removes an invitation by ID.
func (s *Store) DeleteInvitation(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM invitations WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("failed to delete invitation: %w", err)
	}
	return nil
}

// FindInvitationByID retrieves an invitation by ID, or (nil, nil).
func (s *Store) FindInvitationByID(ctx context.Context, id uuid.UUID) (*models.Invitation, error) {
	return scanInvitation(s.db.QueryRowContext(ctx,
		`SELECT id, couple_id, inviter_user_id, invitee_email, token, status, created_at, updated_at
		 FROM invitations WHERE id = ?`, id.String()))
}

// FindInvitationByToken retrieves an invitation by its unique token,
// or (nil, nil).
func (s *Store) FindInvitationByToken(ctx context.Context, token string) (*models.Invitation, error) {
	return scanInvitation(s.db.QueryRowContext(ctx,
		`SELECT id, couple_id, inviter_user_id, invitee_email, token, status, created_at, updated_at
		 FROM invitations WHERE token = ?`, token))
}

// FindInvitationsByInviteeEmail retrieves all invitations addressed to
// the given email.
func (s *Store) FindInvitationsByInviteeEmail(ctx context.Context, email string) ([]*models.Invitation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, couple_id, inviter_user_id, invitee_email, token, status, created_at, updated_at
		 FROM invitations WHERE invitee_email = ?`, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query invitations: %w", err)
	}
	defer rows.Close()

	var invitations []*models.Invitation
	for rows.Next() {
		invitation, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, invitation)
	}
	return invitations, rows.Err()
}

func scanInvitation(row rowScanner) (*models.Invitation, error) {
	var (
		rawID, rawCoupleID, rawInviterID string
		status                           string
		createdAt, updatedAt             int64
		invitation                       models.Invitation
	)
	err := row.Scan(&rawID, &rawCoupleID, &rawInviterID, &invitation.InviteeEmail,
		&invitation.Token, &status, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan invitation: %w", err)
	}

	if invitation.ID, err = parseID(rawID); err != nil {
		return nil, err
	}
	if invitation.CoupleID, err = parseID(rawCoupleID); err != nil {
		return nil, err
	}
	if invitation.InviterUserID, err = parseID(rawInviterID); err != nil {
		return nil, err
	}
	invitation.Status = models.InvitationStatus(status)
	invitation.CreatedAt = unixTime(createdAt)
	invitation.UpdatedAt = unixTime(updatedAt)
	return &invitation, nil
}
