package core

import "github.com/vovakirdan/bingohub/internal/bingo"

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandCreateRoom registers a room in the directory.
	CommandCreateRoom CommandKind = iota
	// CommandJoinRoom binds the client to a room under a display name.
	CommandJoinRoom
	// CommandLeaveRoom unbinds the client from its room.
	CommandLeaveRoom
	// CommandSendMessage relays a chat message to a room.
	CommandSendMessage
	// CommandClaimWin asks the arbiter to end the room's game.
	CommandClaimWin

	commandRegister
	commandDisconnect
)

func (k CommandKind) String() string {
	switch k {
	case CommandCreateRoom:
		return "createRoom"
	case CommandJoinRoom:
		return "joinRoom"
	case CommandLeaveRoom:
		return "leaveRoom"
	case CommandSendMessage:
		return "message"
	case CommandClaimWin:
		return "winGame"
	case commandRegister:
		return "connect"
	case commandDisconnect:
		return "disconnect"
	default:
		return "unknown"
	}
}

// Command represents an action requested by a client.
type Command struct {
	Kind       CommandKind
	Room       string
	Visibility Visibility
	Username   string
	Text       string
	Line       []bingo.Item

	client *Client
}
