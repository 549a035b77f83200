package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/bingohub/internal/core"
	"github.com/vovakirdan/bingohub/internal/proto"
)

// RoomHandlers serves read-only views of the coordinator state.
type RoomHandlers struct {
	hub Coordinator
	log *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(hub Coordinator, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{hub: hub, log: logger}
}

// RoomsResponse is the directory as served to the first page load.
type RoomsResponse struct {
	Rooms []proto.RoomEntry `json:"rooms"`
}

// RoomResponse describes one room.
type RoomResponse struct {
	Room   string   `json:"room"`
	Type   string   `json:"type"`
	Users  []string `json:"users"`
	Ended  bool     `json:"ended"`
	Winner string   `json:"winner,omitempty"`
}

// BoardResponse is the canonical board of a room, row-major.
type BoardResponse struct {
	Room  string       `json:"room"`
	Items proto.Values `json:"items"`
}

// ListRooms returns the directory.
// GET /api/rooms?type=public|private
func (h *RoomHandlers) ListRooms(c *gin.Context) {
	filter := c.Query("type")
	if filter != "" {
		if _, err := core.ParseVisibility(filter); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid room type"})
			return
		}
	}

	entries := h.hub.Directory()
	rooms := make([]proto.RoomEntry, 0, len(entries))
	for _, e := range entries {
		if filter != "" && string(e.Visibility) != filter {
			continue
		}
		rooms = append(rooms, proto.RoomEntry{Room: e.Room, Type: string(e.Visibility)})
	}

	h.log.Debug().Int("room_count", len(rooms)).Msg("rooms listed")
	c.JSON(http.StatusOK, RoomsResponse{Rooms: rooms})
}

// GetRoom returns members and game state of one room.
// GET /api/rooms/:room
func (h *RoomHandlers) GetRoom(c *gin.Context) {
	info, ok := h.hub.Room(c.Param("room"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
		return
	}

	users := info.Users
	if users == nil {
		users = []string{}
	}
	c.JSON(http.StatusOK, RoomResponse{
		Room:   info.ID,
		Type:   string(info.Visibility),
		Users:  users,
		Ended:  info.Ended,
		Winner: info.Winner,
	})
}

// GetBoard returns the board win claims are checked against.
// GET /api/rooms/:room/board
func (h *RoomHandlers) GetBoard(c *gin.Context) {
	info, ok := h.hub.Room(c.Param("room"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
		return
	}
	c.JSON(http.StatusOK, BoardResponse{Room: info.ID, Items: info.Board.Items()})
}
