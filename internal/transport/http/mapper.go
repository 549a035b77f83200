package http

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vovakirdan/bingohub/internal/core"
	"github.com/vovakirdan/bingohub/internal/proto"
)

var errUnknownEvent = errors.New("unknown event")

// inboundToCommand maps a client frame onto a core command. The returned
// error is meant for the client; the connection stays open.
func inboundToCommand(frame proto.Frame) (*core.Command, error) {
	switch frame.Event {
	case proto.EventCreateRoom:
		var data proto.CreateRoomData
		if err := decodeData(frame, &data); err != nil {
			return nil, err
		}
		if data.Room == "" {
			return nil, errors.New("room is required")
		}
		vis, err := core.ParseVisibility(data.Type)
		if err != nil {
			return nil, err
		}
		return &core.Command{Kind: core.CommandCreateRoom, Room: data.Room, Visibility: vis}, nil
	case proto.EventJoinRoom:
		var data proto.JoinRoomData
		if err := decodeData(frame, &data); err != nil {
			return nil, err
		}
		if data.Room == "" || data.Username == "" {
			return nil, errors.New("room and username are required")
		}
		return &core.Command{Kind: core.CommandJoinRoom, Room: data.Room, Username: data.Username}, nil
	case proto.EventLeaveRoom:
		var data proto.LeaveRoomData
		if err := decodeData(frame, &data); err != nil {
			return nil, err
		}
		return &core.Command{Kind: core.CommandLeaveRoom, Room: data.Room, Username: data.Username}, nil
	case proto.EventMessage:
		var data proto.MessageData
		if err := decodeData(frame, &data); err != nil {
			return nil, err
		}
		if data.Message == "" {
			return nil, errors.New("message is required")
		}
		return &core.Command{Kind: core.CommandSendMessage, Room: data.Room, Text: data.Message}, nil
	case proto.EventWinGame:
		var data proto.WinGameData
		if err := decodeData(frame, &data); err != nil {
			return nil, err
		}
		return &core.Command{
			Kind:     core.CommandClaimWin,
			Room:     data.Room,
			Username: data.Username,
			Line:     data.WinningValues,
		}, nil
	default:
		return nil, fmt.Errorf("%w %q", errUnknownEvent, frame.Event)
	}
}

func decodeData(frame proto.Frame, v any) error {
	if len(frame.Data) == 0 {
		return fmt.Errorf("%s: missing data", frame.Event)
	}
	if err := json.Unmarshal(frame.Data, v); err != nil {
		return fmt.Errorf("%s: invalid data", frame.Event)
	}
	return nil
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventActiveRooms:
		return proto.Outbound{Event: proto.EventActiveRooms, Data: roomEntries(event.Rooms)}
	case core.EventRoomData:
		users := event.Users
		if users == nil {
			users = []string{}
		}
		return proto.Outbound{
			Event: proto.EventRoomData,
			Data:  proto.RoomData{Room: event.Room, Users: users},
		}
	case core.EventMessage:
		return proto.Outbound{
			Event: proto.EventMessage,
			Data:  proto.MessageEvent{Username: event.Username, Message: event.Text},
		}
	case core.EventGameEnded:
		return proto.Outbound{
			Event: proto.EventGameEnded,
			Data: proto.GameEnded{
				WinnerName:    event.Winner,
				WinningValues: proto.Values(event.WinningValues),
			},
		}
	case core.EventError:
		if event.Error == nil {
			return errorFrame("unknown error")
		}
		return errorFrame(event.Error.Message)
	default:
		return errorFrame("unknown event")
	}
}

func roomEntries(entries []core.DirectoryEntry) []proto.RoomEntry {
	out := make([]proto.RoomEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, proto.RoomEntry{Room: e.Room, Type: string(e.Visibility)})
	}
	return out
}

func errorFrame(msg string) proto.Outbound {
	return proto.Outbound{Event: proto.EventError, Data: msg}
}
