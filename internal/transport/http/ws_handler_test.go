package http

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/vovakirdan/bingohub/internal/proto"
)

func TestHealthEndpoint(t *testing.T) {
	ts := startTestServer(t, testConfig(), nil)

	resp, err := ts.Client().Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestWebSocketLobbyGame(t *testing.T) {
	ts := startTestServer(t, testConfig(), nil)

	ctx, closeCtx := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCtx()

	connA := dial(t, ctx, ts)
	connB := dial(t, ctx, ts)
	waitFor(t, func() bool { return ts.hub.Connections() == 2 })

	send(t, ctx, connA, proto.EventCreateRoom, proto.CreateRoomData{Room: "lobby", Type: "public"})
	for _, conn := range []*websocket.Conn{connA, connB} {
		var rooms []proto.RoomEntry
		if err := json.Unmarshal(readEvent(t, ctx, conn, proto.EventActiveRooms), &rooms); err != nil {
			t.Fatalf("unmarshal rooms: %v", err)
		}
		if len(rooms) != 1 || rooms[0] != (proto.RoomEntry{Room: "lobby", Type: "public"}) {
			t.Fatalf("unexpected active rooms %+v", rooms)
		}
	}

	send(t, ctx, connA, proto.EventJoinRoom, proto.JoinRoomData{Room: "lobby", Username: "alice"})
	readEvent(t, ctx, connA, proto.EventRoomData)
	send(t, ctx, connB, proto.EventJoinRoom, proto.JoinRoomData{Room: "lobby", Username: "bob"})

	for _, conn := range []*websocket.Conn{connA, connB} {
		var data proto.RoomData
		if err := json.Unmarshal(readEvent(t, ctx, conn, proto.EventRoomData), &data); err != nil {
			t.Fatalf("unmarshal room data: %v", err)
		}
		if data.Room != "lobby" || len(data.Users) != 2 || data.Users[0] != "alice" || data.Users[1] != "bob" {
			t.Fatalf("unexpected room data %+v", data)
		}
	}

	send(t, ctx, connA, proto.EventWinGame, json.RawMessage(`{"username":"alice","winningValues":[0,1,2,3,4],"room":"lobby"}`))
	for _, conn := range []*websocket.Conn{connA, connB} {
		raw := readEvent(t, ctx, conn, proto.EventGameEnded)
		want := `{"winnerName":"alice","winningValues":[0,1,2,3,4]}`
		if string(raw) != want {
			t.Fatalf("unexpected game ended payload %s", raw)
		}
	}

	send(t, ctx, connB, proto.EventWinGame, json.RawMessage(`{"username":"bob","winningValues":[5,6,7,8,9],"room":"lobby"}`))
	send(t, ctx, connB, proto.EventMessage, proto.MessageData{Room: "lobby", Message: "gg"})

	frame := readNext(t, ctx, connB)
	if frame.Event != proto.EventMessage {
		t.Fatalf("expected message after dropped claim, got %s %s", frame.Event, frame.Data)
	}
	var msg proto.MessageEvent
	if err := json.Unmarshal(frame.Data, &msg); err != nil {
		t.Fatalf("unmarshal message: %v", err)
	}
	if msg.Username != "bob" || msg.Message != "gg" {
		t.Fatalf("unexpected message %+v", msg)
	}

	send(t, ctx, connB, proto.EventLeaveRoom, proto.LeaveRoomData{Room: "lobby", Username: "bob"})
	var data proto.RoomData
	if err := json.Unmarshal(readEvent(t, ctx, connA, proto.EventRoomData), &data); err != nil {
		t.Fatalf("unmarshal room data: %v", err)
	}
	if len(data.Users) != 1 || data.Users[0] != "alice" {
		t.Fatalf("unexpected users after leave %+v", data.Users)
	}

	send(t, ctx, connA, proto.EventLeaveRoom, proto.LeaveRoomData{Room: "lobby", Username: "alice"})
	var rooms []proto.RoomEntry
	if err := json.Unmarshal(readEvent(t, ctx, connB, proto.EventActiveRooms), &rooms); err != nil {
		t.Fatalf("unmarshal rooms: %v", err)
	}
	if len(rooms) != 0 {
		t.Fatalf("expected empty directory, got %+v", rooms)
	}
}

func TestWebSocketJoinWhileBoundReportsError(t *testing.T) {
	ts := startTestServer(t, testConfig(), nil)

	ctx, closeCtx := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCtx()

	conn := dial(t, ctx, ts)
	send(t, ctx, conn, proto.EventJoinRoom, proto.JoinRoomData{Room: "one", Username: "alice"})
	send(t, ctx, conn, proto.EventJoinRoom, proto.JoinRoomData{Room: "two", Username: "alice"})

	var msg string
	if err := json.Unmarshal(readEvent(t, ctx, conn, proto.EventError), &msg); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if msg == "" {
		t.Fatalf("expected error message")
	}
}

func TestWebSocketMalformedFrameKeepsConnection(t *testing.T) {
	ts := startTestServer(t, testConfig(), nil)

	ctx, closeCtx := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCtx()

	conn := dial(t, ctx, ts)
	if err := conn.Write(ctx, websocket.MessageText, []byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if frame := readNext(t, ctx, conn); frame.Event != proto.EventError {
		t.Fatalf("expected error frame, got %+v", frame)
	}

	send(t, ctx, conn, "bingo", map[string]string{})
	if frame := readNext(t, ctx, conn); frame.Event != proto.EventError {
		t.Fatalf("expected error frame for unknown event, got %+v", frame)
	}

	send(t, ctx, conn, proto.EventCreateRoom, proto.CreateRoomData{Room: "x", Type: "secret"})
	if frame := readNext(t, ctx, conn); frame.Event != proto.EventError {
		t.Fatalf("expected error frame for bad type, got %+v", frame)
	}

	send(t, ctx, conn, proto.EventJoinRoom, proto.JoinRoomData{Room: "still-open", Username: "alice"})
	readEvent(t, ctx, conn, proto.EventRoomData)
}

func TestWebSocketDisconnectLeavesRoom(t *testing.T) {
	ts := startTestServer(t, testConfig(), nil)

	ctx, closeCtx := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCtx()

	connA := dial(t, ctx, ts)
	connB := dial(t, ctx, ts)

	send(t, ctx, connA, proto.EventJoinRoom, proto.JoinRoomData{Room: "lobby", Username: "alice"})
	readEvent(t, ctx, connA, proto.EventRoomData)
	send(t, ctx, connB, proto.EventJoinRoom, proto.JoinRoomData{Room: "lobby", Username: "bob"})
	readEvent(t, ctx, connA, proto.EventRoomData)

	connB.Close(websocket.StatusNormalClosure, "bye")

	var data proto.RoomData
	if err := json.Unmarshal(readEvent(t, ctx, connA, proto.EventRoomData), &data); err != nil {
		t.Fatalf("unmarshal room data: %v", err)
	}
	if len(data.Users) != 1 || data.Users[0] != "alice" {
		t.Fatalf("unexpected users after disconnect %+v", data.Users)
	}
}

func TestWebSocketRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.WS.RateLimitPerMinute = 1
	ts := startTestServer(t, cfg, nil)

	ctx, closeCtx := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCtx()

	conn := dial(t, ctx, ts)
	send(t, ctx, conn, proto.EventJoinRoom, proto.JoinRoomData{Room: "lobby", Username: "alice"})
	readEvent(t, ctx, conn, proto.EventRoomData)

	send(t, ctx, conn, proto.EventMessage, proto.MessageData{Room: "lobby", Message: "spam"})
	var msg string
	if err := json.Unmarshal(readEvent(t, ctx, conn, proto.EventError), &msg); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if msg != "rate limit exceeded" {
		t.Fatalf("unexpected error %q", msg)
	}
}

func TestWebSocketUpgradeRegistersClientBesideREST(t *testing.T) {
	ts := startTestServer(t, testConfig(), nil)

	ctx, closeCtx := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCtx()

	conn := dial(t, ctx, ts)
	waitFor(t, func() bool { return ts.hub.Connections() == 1 })

	send(t, ctx, conn, proto.EventJoinRoom, proto.JoinRoomData{Room: "lobby", Username: "alice"})
	readEvent(t, ctx, conn, proto.EventRoomData)
	waitFor(t, func() bool {
		_, ok := ts.hub.Room("lobby")
		return ok
	})

	resp, err := ts.Client().Get(ts.URL + "/api/rooms/lobby")
	if err != nil {
		t.Fatalf("room request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}
