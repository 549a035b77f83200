package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/bingohub/internal/bingo"
	"github.com/vovakirdan/bingohub/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("roomctl: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:3000/ws", "WebSocket address")
	user := flag.String("user", "cli-user", "username")
	room := flag.String("room", "lobby", "room to join")
	roomType := flag.String("type", "public", "room type used when creating the room")
	create := flag.Bool("create", false, "create the room before joining")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	if *create {
		if err := send(ctx, conn, proto.EventCreateRoom, proto.CreateRoomData{Room: *room, Type: *roomType}); err != nil {
			return err
		}
	}
	if err := send(ctx, conn, proto.EventJoinRoom, proto.JoinRoomData{Room: *room, Username: *user}); err != nil {
		return err
	}

	fmt.Printf("Connected to %s as %s in room %s\n", *addr, *user, *room)
	fmt.Println("Type messages and press Enter to send.")
	fmt.Println("Commands: /win v1,v2,v3,v4,v5  /leave  /create room [public|private]. Ctrl+C to exit.")

	go func() {
		defer cancel()
		readLoop(ctx, conn)
	}()

	writeLoop(ctx, conn, *user, *room)

	stop()
	cancel()
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	return nil
}

func send(ctx context.Context, conn *websocket.Conn, event string, data any) error {
	if err := wsjson.Write(ctx, conn, proto.Outbound{Event: event, Data: data}); err != nil {
		return fmt.Errorf("send %s: %w", event, err)
	}
	return nil
}

func readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var frame proto.Frame
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			log.Printf("read error: %v", err)
			return
		}
		printFrame(frame)
	}
}

func printFrame(frame proto.Frame) {
	switch frame.Event {
	case proto.EventMessage:
		var evt proto.MessageEvent
		if err := json.Unmarshal(frame.Data, &evt); err != nil {
			log.Printf("unmarshal message: %v", err)
			return
		}
		fmt.Printf("%s: %s\n", evt.Username, evt.Message)
	case proto.EventRoomData:
		var evt proto.RoomData
		if err := json.Unmarshal(frame.Data, &evt); err != nil {
			log.Printf("unmarshal roomData: %v", err)
			return
		}
		fmt.Printf("[room %s] members: %s\n", evt.Room, strings.Join(evt.Users, ", "))
	case proto.EventActiveRooms:
		var rooms []proto.RoomEntry
		if err := json.Unmarshal(frame.Data, &rooms); err != nil {
			log.Printf("unmarshal activeRooms: %v", err)
			return
		}
		names := make([]string, 0, len(rooms))
		for _, r := range rooms {
			names = append(names, r.Room+"("+r.Type+")")
		}
		fmt.Printf("[rooms] %s\n", strings.Join(names, " "))
	case proto.EventGameEnded:
		var evt proto.GameEnded
		if err := json.Unmarshal(frame.Data, &evt); err != nil {
			log.Printf("unmarshal gameEnded: %v", err)
			return
		}
		values := make([]string, 0, len(evt.WinningValues))
		for _, v := range evt.WinningValues {
			values = append(values, v.String())
		}
		fmt.Printf("*** %s won with %s\n", evt.WinnerName, strings.Join(values, ","))
	case proto.EventError:
		var msg string
		if err := json.Unmarshal(frame.Data, &msg); err != nil {
			log.Printf("unmarshal error: %v", err)
			return
		}
		fmt.Printf("error: %s\n", msg)
	default:
		fmt.Printf("event=%s data=%s\n", frame.Event, frame.Data)
	}
}

func writeLoop(ctx context.Context, conn *websocket.Conn, user, room string) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}

			event, data := parseInput(text, user, room)
			if err := send(ctx, conn, event, data); err != nil {
				log.Print(err)
				return
			}
		}
	}
}

// parseInput turns a line typed by the user into an outgoing event.
func parseInput(text, user, room string) (string, any) {
	cmd, rest, _ := strings.Cut(text, " ")
	switch cmd {
	case "/win":
		return proto.EventWinGame, proto.WinGameData{Username: user, Room: room, WinningValues: parseValues(rest)}
	case "/leave":
		return proto.EventLeaveRoom, proto.LeaveRoomData{Room: room, Username: user}
	case "/create":
		name, typ, _ := strings.Cut(strings.TrimSpace(rest), " ")
		return proto.EventCreateRoom, proto.CreateRoomData{Room: name, Type: strings.TrimSpace(typ)}
	}
	return proto.EventMessage, proto.MessageData{Room: room, Message: text}
}

// parseValues splits a comma separated list; integers are sent as JSON numbers.
func parseValues(s string) proto.Values {
	var out proto.Values
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if n, err := strconv.Atoi(part); err == nil {
			out = append(out, bingo.NumberItem(n))
			continue
		}
		out = append(out, bingo.TextItem(part))
	}
	return out
}
