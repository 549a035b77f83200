package core

import "github.com/vovakirdan/bingohub/internal/bingo"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventActiveRooms carries the room directory to every connection.
	EventActiveRooms EventKind = iota
	// EventRoomData carries a room's membership list to its members.
	EventRoomData
	// EventMessage relays a chat message.
	EventMessage
	// EventGameEnded announces the single accepted winner of a room.
	EventGameEnded
	// EventError notifies one client about a rejected operation.
	EventError
)

// Event is sent to clients to describe what happened in the system.
// One Event value is shared by all recipients and must not be mutated.
type Event struct {
	Kind          EventKind
	Room          string
	Users         []string
	Username      string
	Text          string
	Winner        string
	WinningValues []bingo.Item
	Rooms         []DirectoryEntry
	Error         *CoreError
}

// DirectoryEntry is the public projection of one room.
type DirectoryEntry struct {
	Room       string
	Visibility Visibility
}
