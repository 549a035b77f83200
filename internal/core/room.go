package core

import (
	"fmt"
	"time"

	"github.com/vovakirdan/bingohub/internal/bingo"
)

// Visibility controls how a room is advertised in the directory.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// ParseVisibility validates a wire visibility value. Empty means public.
func ParseVisibility(s string) (Visibility, error) {
	switch Visibility(s) {
	case "", VisibilityPublic:
		return VisibilityPublic, nil
	case VisibilityPrivate:
		return VisibilityPrivate, nil
	default:
		return "", fmt.Errorf("%w: unknown room type %q", ErrBadRequest, s)
	}
}

type member struct {
	connID string
	name   string
}

// Room groups the connections bound to the same room id and carries the
// room's game state.
type Room struct {
	ID         string
	Visibility Visibility
	Board      bingo.Board
	Ended      bool
	Winner     string
	CreatedAt  time.Time

	members []member
	clients map[string]*Client
	joined  bool
}

// NewRoom constructs a room with no members.
func NewRoom(id string, vis Visibility, board bingo.Board, now time.Time) *Room {
	return &Room{
		ID:         id,
		Visibility: vis,
		Board:      board,
		CreatedAt:  now,
		clients:    make(map[string]*Client),
	}
}

// AddMember appends a display name for a connection. Names may repeat.
func (r *Room) AddMember(c *Client, name string) {
	r.members = append(r.members, member{connID: c.ID, name: name})
	r.clients[c.ID] = c
	r.joined = true
}

// RemoveMember removes the connection's entry from the member list. Other
// members sharing its display name keep theirs. Returns false if the
// connection was not a member.
func (r *Room) RemoveMember(connID string) bool {
	if _, ok := r.clients[connID]; !ok {
		return false
	}
	delete(r.clients, connID)
	for i, m := range r.members {
		if m.connID == connID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			break
		}
	}
	return true
}

// Users returns a copy of the member names in join order.
func (r *Room) Users() []string {
	users := make([]string, 0, len(r.members))
	for _, m := range r.members {
		users = append(users, m.name)
	}
	return users
}

// Has reports whether the connection is a member of the room.
func (r *Room) Has(connID string) bool {
	_, ok := r.clients[connID]
	return ok
}

// Empty returns true if no members are in the room.
func (r *Room) Empty() bool {
	return len(r.members) == 0
}

// Reserved reports whether the room was created but nobody has joined it yet.
func (r *Room) Reserved() bool {
	return !r.joined && r.Empty()
}
