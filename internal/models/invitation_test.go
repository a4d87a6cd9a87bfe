package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewInvitationStartsPending(t *testing.T) {
	inv := NewInvitation(uuid.New(), uuid.New(), "partner@example.com", "token-1")
	if inv.Status != InvitationPending {
		t.Fatalf("expected status %q, got %q", InvitationPending, inv.Status)
	}
	if inv.Answered() {
		t.Error("a pending invitation should not report answered")
	}
}

func TestInvitationAnswered(t *testing.T) {
	for _, status := range []InvitationStatus{InvitationAccepted, InvitationRejected} {
		inv := NewInvitation(uuid.New(), uuid.New(), "partner@example.com", "token-1")
		inv.UpdateStatus(status)
		if inv.Status != status {
			t.Errorf("expected status %q, got %q", status, inv.Status)
		}
		if !inv.Answered() {
			t.Errorf("status %q should report answered", status)
		}
	}
}
