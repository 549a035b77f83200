package proto

import "encoding/json"

// Frame is the envelope for messages in both directions.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Client to coordinator events.
const (
	EventCreateRoom = "createRoom"
	EventJoinRoom   = "joinRoom"
	EventLeaveRoom  = "leaveRoom"
	EventMessage    = "message"
	EventWinGame    = "winGame"
)

// Coordinator to client events.
const (
	EventActiveRooms = "activeRooms"
	EventRoomData    = "roomData"
	EventGameEnded   = "gameEnded"
	EventError       = "error"
)

// CreateRoomData asks for a room to be listed in the directory.
type CreateRoomData struct {
	Room string `json:"room"`
	Type string `json:"type"`
}

// JoinRoomData binds the connection to a room under a display name.
type JoinRoomData struct {
	Room     string `json:"room"`
	Username string `json:"username"`
}

// LeaveRoomData unbinds the connection from its room.
type LeaveRoomData struct {
	Room     string `json:"room"`
	Username string `json:"username"`
}

// MessageData is a chat message from the client.
type MessageData struct {
	Room    string `json:"room"`
	Message string `json:"message"`
}

// WinGameData claims a win for the room.
type WinGameData struct {
	Username      string `json:"username"`
	WinningValues Values `json:"winningValues"`
	Room          string `json:"room"`
}

// RoomEntry is one element of the activeRooms list.
type RoomEntry struct {
	Room string `json:"room"`
	Type string `json:"type"`
}

// RoomData carries the member list of a room.
type RoomData struct {
	Room  string   `json:"room"`
	Users []string `json:"users"`
}

// MessageEvent relays a chat message to a room.
type MessageEvent struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// GameEnded announces the winner of a room.
type GameEnded struct {
	WinnerName    string `json:"winnerName"`
	WinningValues Values `json:"winningValues"`
}
