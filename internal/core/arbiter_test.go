package core

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/bingohub/internal/bingo"
)

func TestArbiterFirstClaimIsFinal(t *testing.T) {
	room := NewRoom("r", VisibilityPublic, bingo.IdentityBoard(), time.Now())
	a := Arbiter{}

	if err := a.Claim(room, "alice", line(9, 9)); err != nil {
		t.Fatalf("unverified claim rejected: %v", err)
	}
	if err := a.Claim(room, "bob", line(0, 1, 2, 3, 4)); !errors.Is(err, ErrAlreadyEnded) {
		t.Fatalf("expected ErrAlreadyEnded, got %v", err)
	}
	if room.Winner != "alice" {
		t.Fatalf("winner changed to %q", room.Winner)
	}
}

func TestArbiterVerifiesAgainstBoard(t *testing.T) {
	room := NewRoom("r", VisibilityPublic, bingo.IdentityBoard(), time.Now())
	a := Arbiter{Verify: true}

	if err := a.Claim(room, "mallory", line(0, 1, 2, 3, 9)); !errors.Is(err, ErrInvalidClaim) {
		t.Fatalf("expected ErrInvalidClaim, got %v", err)
	}
	if room.Ended {
		t.Fatalf("invalid claim ended the room")
	}
	if err := a.Claim(room, "alice", line(2, 7, 12, 17, 22)); err != nil {
		t.Fatalf("valid claim rejected: %v", err)
	}
	if err := a.Claim(nil, "alice", nil); !errors.Is(err, ErrUnknownRoom) {
		t.Fatalf("expected ErrUnknownRoom, got %v", err)
	}
}
