package core

import (
	"time"

	"github.com/vovakirdan/bingohub/internal/bingo"
)

// RoomInfo is a read-only snapshot of one room.
type RoomInfo struct {
	ID         string
	Visibility Visibility
	Users      []string
	Ended      bool
	Winner     string
	Board      bingo.Board
}

// RoomStore maps room ids to rooms and remembers creation order for the
// directory. It is owned by the hub goroutine.
type RoomStore struct {
	rooms map[string]*Room
	order []string
}

// NewRoomStore creates an empty store.
func NewRoomStore() *RoomStore {
	return &RoomStore{rooms: make(map[string]*Room)}
}

// Create inserts a room if absent. An existing room keeps its metadata.
func (s *RoomStore) Create(id string, vis Visibility, board bingo.Board, now time.Time) (*Room, bool) {
	if room, ok := s.rooms[id]; ok {
		return room, false
	}
	room := NewRoom(id, vis, board, now)
	s.rooms[id] = room
	s.order = append(s.order, id)
	return room, true
}

// Get returns the room with the given id.
func (s *RoomStore) Get(id string) (*Room, bool) {
	room, ok := s.rooms[id]
	return room, ok
}

// Delete removes a room. Returns true if it existed.
func (s *RoomStore) Delete(id string) bool {
	if _, ok := s.rooms[id]; !ok {
		return false
	}
	delete(s.rooms, id)
	for i, rid := range s.order {
		if rid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of rooms.
func (s *RoomStore) Len() int {
	return len(s.rooms)
}

// Directory lists every room in creation order.
func (s *RoomStore) Directory() []DirectoryEntry {
	out := make([]DirectoryEntry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, DirectoryEntry{Room: id, Visibility: s.rooms[id].Visibility})
	}
	return out
}

// Snapshot copies the state of every room in creation order.
func (s *RoomStore) Snapshot() []RoomInfo {
	out := make([]RoomInfo, 0, len(s.order))
	for _, id := range s.order {
		r := s.rooms[id]
		out = append(out, RoomInfo{
			ID:         r.ID,
			Visibility: r.Visibility,
			Users:      r.Users(),
			Ended:      r.Ended,
			Winner:     r.Winner,
			Board:      r.Board,
		})
	}
	return out
}

// ReapReserved deletes rooms that were created but never joined within ttl.
func (s *RoomStore) ReapReserved(now time.Time, ttl time.Duration) []string {
	var reaped []string
	for _, id := range append([]string(nil), s.order...) {
		r := s.rooms[id]
		if r.Reserved() && now.Sub(r.CreatedAt) >= ttl {
			s.Delete(id)
			reaped = append(reaped, id)
		}
	}
	return reaped
}
