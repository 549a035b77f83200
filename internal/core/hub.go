package core

import (
	"context"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/bingohub/internal/bingo"
)

const (
	commandQueueSize = 256
	reapInterval     = 10 * time.Second
)

// Options configures a Hub.
type Options struct {
	// VerifyClaims checks win claims against the room board.
	VerifyClaims bool
	// Catalog is the pool room boards are dealt from; empty deals the identity board.
	Catalog []bingo.Item
	// ReserveTTL is how long a created room may wait for its first member.
	// Zero keeps reserved rooms until someone joins and leaves.
	ReserveTTL time.Duration
	// Results receives accepted wins. Optional.
	Results ResultSink
	Logger  *zerolog.Logger
	// Now overrides the clock in tests.
	Now func() time.Time
}

// Hub is the room coordinator. A single goroutine (Run) owns the registry
// and the room store and applies one command at a time.
type Hub struct {
	commands chan *Command
	done     chan struct{}
	doneOnce sync.Once

	registry *Registry
	rooms    *RoomStore
	router   *Router
	arbiter  Arbiter

	catalog    []bingo.Item
	rng        *rand.Rand
	reserveTTL time.Duration
	results    ResultSink
	now        func() time.Time
	log        *zerolog.Logger

	snapshot    atomic.Pointer[[]RoomInfo]
	connections atomic.Int64
}

// NewHub creates a new coordinator instance.
func NewHub(opts Options) *Hub {
	logger := opts.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	registry := NewRegistry()
	rooms := NewRoomStore()
	h := &Hub{
		commands:   make(chan *Command, commandQueueSize),
		done:       make(chan struct{}),
		registry:   registry,
		rooms:      rooms,
		router:     NewRouter(registry, rooms, logger),
		arbiter:    Arbiter{Verify: opts.VerifyClaims},
		catalog:    opts.Catalog,
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		reserveTTL: opts.ReserveTTL,
		results:    opts.Results,
		now:        now,
		log:        logger,
	}
	h.publish()
	return h
}

// Run processes commands until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer h.stop()

	var tick <-chan time.Time
	if h.reserveTTL > 0 {
		ticker := time.NewTicker(min(reapInterval, h.reserveTTL))
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-h.commands:
			h.handle(cmd)
		case <-tick:
			h.reap()
		}
	}
}

// RegisterClient adds a connection and starts forwarding its commands.
// Closing client.Commands (see UnregisterClient) disconnects it.
func (h *Hub) RegisterClient(c *Client) {
	if !h.submit(&Command{Kind: commandRegister, client: c}) {
		return
	}
	go func() {
		for cmd := range c.Commands {
			if cmd == nil {
				continue
			}
			cmd.client = c
			if !h.submit(cmd) {
				return
			}
		}
		h.submit(&Command{Kind: commandDisconnect, client: c})
	}()
}

// UnregisterClient signals that the transport is gone. Commands already
// queued by the client are applied before the disconnect.
func (h *Hub) UnregisterClient(c *Client) {
	close(c.Commands)
}

// Directory returns the current room directory.
func (h *Hub) Directory() []DirectoryEntry {
	rooms := *h.snapshot.Load()
	out := make([]DirectoryEntry, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, DirectoryEntry{Room: r.ID, Visibility: r.Visibility})
	}
	return out
}

// Connections returns the number of registered connections.
func (h *Hub) Connections() int {
	return int(h.connections.Load())
}

// Rooms returns a snapshot of every room.
func (h *Hub) Rooms() []RoomInfo {
	return *h.snapshot.Load()
}

// Room returns a snapshot of one room.
func (h *Hub) Room(id string) (RoomInfo, bool) {
	for _, r := range *h.snapshot.Load() {
		if r.ID == id {
			return r, true
		}
	}
	return RoomInfo{}, false
}

func (h *Hub) submit(cmd *Command) bool {
	select {
	case h.commands <- cmd:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) stop() {
	h.doneOnce.Do(func() {
		close(h.done)
		h.registry.Each(func(c *Client) {
			close(c.Events)
		})
	})
}

func (h *Hub) handle(cmd *Command) {
	c := cmd.client
	if c == nil {
		return
	}
	h.log.Debug().Str("conn_id", c.ID).Str("event", cmd.Kind.String()).Str("room", cmd.Room).Msg("command")

	var err error
	switch cmd.Kind {
	case commandRegister:
		h.registry.Register(c)
		h.connections.Store(int64(h.registry.Len()))
		return
	case commandDisconnect:
		h.disconnect(c.ID)
	case CommandCreateRoom:
		err = h.createRoom(cmd.Room, cmd.Visibility)
	case CommandJoinRoom:
		err = h.joinRoom(c.ID, cmd.Room, cmd.Username)
	case CommandLeaveRoom:
		err = h.leaveRoom(c.ID, cmd.Room)
	case CommandSendMessage:
		err = h.relay(c.ID, cmd.Room, cmd.Text)
	case CommandClaimWin:
		err = h.claimWin(c.ID, cmd.Room, cmd.Username, cmd.Line)
	default:
		err = coreError(ErrCodeBadRequest, "unknown command")
	}
	h.publish()

	if err == nil {
		return
	}
	if silent(err) {
		h.log.Debug().Err(err).Str("conn_id", c.ID).Str("event", cmd.Kind.String()).Msg("command dropped")
		return
	}
	h.log.Debug().Err(err).Str("conn_id", c.ID).Str("event", cmd.Kind.String()).Msg("command rejected")
	if _, ok := h.registry.Client(c.ID); ok {
		h.router.ToClient(c, &Event{Kind: EventError, Room: cmd.Room, Error: toCoreError(err)})
	}
}

// createRoom inserts a room if absent and always rebroadcasts the directory.
func (h *Hub) createRoom(roomID string, vis Visibility) error {
	if roomID == "" {
		return coreError(ErrCodeBadRequest, "room is required")
	}
	if vis == "" {
		vis = VisibilityPublic
	}
	if _, created := h.ensureRoom(roomID, vis); created {
		h.log.Info().Str("room", roomID).Str("type", string(vis)).Msg("room created")
	}
	h.broadcastDirectory()
	return nil
}

// joinRoom binds the connection and appends its name to the room, creating
// a public room for unknown ids.
func (h *Hub) joinRoom(connID, roomID, name string) error {
	if roomID == "" {
		return coreError(ErrCodeBadRequest, "room is required")
	}
	if name == "" {
		return coreError(ErrCodeBadRequest, "username is required")
	}
	c, ok := h.registry.Client(connID)
	if !ok {
		return ErrUnknownConnection
	}
	if b, bound := h.registry.Lookup(connID); bound {
		h.log.Debug().Str("conn_id", connID).Str("room", b.Room).Str("requested", roomID).Msg("join while bound")
		return ErrAlreadyInRoom
	}

	room, created := h.ensureRoom(roomID, VisibilityPublic)
	if err := h.registry.Bind(connID, roomID, name); err != nil {
		if created {
			h.rooms.Delete(roomID)
		}
		return err
	}
	room.AddMember(c, name)
	h.log.Info().Str("room", roomID).Str("username", name).Msg("user joined")

	if created {
		h.log.Info().Str("room", roomID).Str("type", string(VisibilityPublic)).Msg("room created on join")
		h.broadcastDirectory()
	}
	h.router.ToRoom(roomID, &Event{Kind: EventRoomData, Room: roomID, Users: room.Users()})
	return nil
}

// leaveRoom unbinds the connection from whatever room it is bound to.
// An unbound connection is a no-op.
func (h *Hub) leaveRoom(connID, hint string) error {
	b, ok := h.registry.Unbind(connID)
	if !ok {
		return nil
	}
	if hint != "" && hint != b.Room {
		h.log.Debug().Str("conn_id", connID).Str("room", b.Room).Str("requested", hint).Msg("leave names another room, leaving bound room")
	}

	room, ok := h.rooms.Get(b.Room)
	if !ok {
		return nil
	}
	room.RemoveMember(connID)
	h.log.Info().Str("room", b.Room).Str("username", b.Name).Msg("user left")

	if room.Empty() {
		h.rooms.Delete(b.Room)
		h.log.Info().Str("room", b.Room).Msg("room closed")
		h.broadcastDirectory()
		return nil
	}
	h.router.ToRoom(b.Room, &Event{Kind: EventRoomData, Room: b.Room, Users: room.Users()})
	return nil
}

// disconnect leaves the bound room and forgets the connection.
func (h *Hub) disconnect(connID string) {
	_ = h.leaveRoom(connID, "")
	if c, ok := h.registry.Remove(connID); ok {
		h.connections.Store(int64(h.registry.Len()))
		close(c.Events)
		h.log.Debug().Str("conn_id", connID).Msg("connection removed")
	}
}

// relay sends a chat message to a room under the sender's bound display name.
// Unbound connections have no name to send under and are rejected.
func (h *Hub) relay(connID, roomID, text string) error {
	b, bound := h.registry.Lookup(connID)
	if roomID == "" {
		roomID = b.Room
	}
	if text == "" {
		return coreError(ErrCodeBadRequest, "message is required")
	}
	if _, ok := h.rooms.Get(roomID); !ok {
		return ErrUnknownRoom
	}
	if !bound {
		return ErrNotInRoom
	}
	if b.Room != roomID {
		h.log.Debug().Str("conn_id", connID).Str("room", roomID).Str("bound_room", b.Room).Msg("message to a room the sender is not in")
	}
	h.router.ToRoom(roomID, &Event{Kind: EventMessage, Room: roomID, Username: b.Name, Text: text})
	return nil
}

func (h *Hub) claimWin(connID, roomID, name string, line []bingo.Item) error {
	b, _ := h.registry.Lookup(connID)
	if roomID == "" {
		roomID = b.Room
	}
	if name == "" {
		name = b.Name
	}

	room, _ := h.rooms.Get(roomID)
	if err := h.arbiter.Claim(room, name, line); err != nil {
		return err
	}

	values := append([]bingo.Item(nil), line...)
	h.log.Info().Str("room", roomID).Str("winner", name).Msg("game ended")
	h.router.ToRoom(roomID, &Event{Kind: EventGameEnded, Room: roomID, Winner: name, WinningValues: values})
	if h.results != nil {
		h.results.Record(Result{Room: roomID, Winner: name, WinningValues: values, EndedAt: h.now()})
	}
	return nil
}

func (h *Hub) reap() {
	reaped := h.rooms.ReapReserved(h.now(), h.reserveTTL)
	if len(reaped) == 0 {
		return
	}
	for _, id := range reaped {
		h.log.Info().Str("room", id).Msg("reserved room expired")
	}
	h.broadcastDirectory()
	h.publish()
}

func (h *Hub) broadcastDirectory() {
	h.router.ToAll(&Event{Kind: EventActiveRooms, Rooms: h.rooms.Directory()})
}

func (h *Hub) ensureRoom(roomID string, vis Visibility) (*Room, bool) {
	if room, ok := h.rooms.Get(roomID); ok {
		return room, false
	}
	return h.rooms.Create(roomID, vis, h.deal(roomID), h.now())
}

func (h *Hub) deal(roomID string) bingo.Board {
	board, err := bingo.Deal(h.catalog, h.rng)
	if err != nil {
		h.log.Warn().Err(err).Str("room", roomID).Msg("falling back to identity board")
		return bingo.IdentityBoard()
	}
	return board
}

func (h *Hub) publish() {
	rooms := h.rooms.Snapshot()
	h.snapshot.Store(&rooms)
}
