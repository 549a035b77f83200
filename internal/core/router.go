package core

import "github.com/rs/zerolog"

// Router fans events out to connections. Delivery is best effort: a client
// whose outbound queue is full misses the event.
type Router struct {
	registry *Registry
	rooms    *RoomStore
	log      *zerolog.Logger
}

// NewRouter builds a router over the hub's registry and room store.
func NewRouter(registry *Registry, rooms *RoomStore, logger *zerolog.Logger) *Router {
	return &Router{registry: registry, rooms: rooms, log: logger}
}

// ToAll sends an event to every live connection.
func (r *Router) ToAll(ev *Event) {
	r.registry.Each(func(c *Client) {
		r.deliver(c, ev)
	})
}

// ToRoom sends an event to every member of a room.
func (r *Router) ToRoom(roomID string, ev *Event) {
	r.ToRoomExcept(roomID, "", ev)
}

// ToRoomExcept sends an event to every member of a room but the sender.
func (r *Router) ToRoomExcept(roomID, senderID string, ev *Event) {
	room, ok := r.rooms.Get(roomID)
	if !ok {
		return
	}
	for _, m := range room.members {
		if m.connID == senderID {
			continue
		}
		if c, ok := room.clients[m.connID]; ok {
			r.deliver(c, ev)
		}
	}
}

// ToClient sends an event to a single connection.
func (r *Router) ToClient(c *Client, ev *Event) {
	r.deliver(c, ev)
}

func (r *Router) deliver(c *Client, ev *Event) {
	select {
	case c.Events <- ev:
	default:
		r.log.Warn().Str("conn_id", c.ID).Int("kind", int(ev.Kind)).Msg("outbound queue full, event dropped")
	}
}
