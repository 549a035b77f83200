package core

import (
	"fmt"

	"github.com/vovakirdan/bingohub/internal/bingo"
)

// Arbiter decides win claims. By default the claimant's own check is
// trusted. Verify is the hardening option: a claim must then be one of the
// 12 lines of the room's canonical board.
type Arbiter struct {
	Verify bool
}

// Claim moves room from open to ended if the claim is accepted. The check
// and the transition run inside one hub step, so the first accepted claim
// is final.
func (a Arbiter) Claim(room *Room, name string, line []bingo.Item) error {
	if room == nil {
		return ErrUnknownRoom
	}
	if room.Ended {
		return ErrAlreadyEnded
	}
	if a.Verify && !bingo.IsWinningLine(room.Board, line) {
		return fmt.Errorf("%w: %d values", ErrInvalidClaim, len(line))
	}
	room.Ended = true
	room.Winner = name
	return nil
}
