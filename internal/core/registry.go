package core

// Binding is the room and display name a connection is currently bound to.
type Binding struct {
	Room string
	Name string
}

type registration struct {
	client  *Client
	binding *Binding
}

// Registry tracks live connections and their room binding.
// It is owned by the hub goroutine and is not safe for concurrent use.
type Registry struct {
	conns map[string]*registration
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]*registration)}
}

// Register adds a connection and returns its id. Registering the same id
// twice keeps the first registration.
func (r *Registry) Register(c *Client) string {
	if _, ok := r.conns[c.ID]; !ok {
		r.conns[c.ID] = &registration{client: c}
		r.order = append(r.order, c.ID)
	}
	return c.ID
}

// Bind attaches a connection to a room. A connection holds at most one binding.
func (r *Registry) Bind(id, room, name string) error {
	reg, ok := r.conns[id]
	if !ok {
		return ErrUnknownConnection
	}
	if reg.binding != nil {
		return ErrAlreadyInRoom
	}
	reg.binding = &Binding{Room: room, Name: name}
	return nil
}

// Unbind clears a binding and returns it. Unknown or unbound ids are a no-op.
func (r *Registry) Unbind(id string) (Binding, bool) {
	reg, ok := r.conns[id]
	if !ok || reg.binding == nil {
		return Binding{}, false
	}
	b := *reg.binding
	reg.binding = nil
	return b, true
}

// Lookup returns the current binding of a connection.
func (r *Registry) Lookup(id string) (Binding, bool) {
	reg, ok := r.conns[id]
	if !ok || reg.binding == nil {
		return Binding{}, false
	}
	return *reg.binding, true
}

// Client returns the registered client for id.
func (r *Registry) Client(id string) (*Client, bool) {
	reg, ok := r.conns[id]
	if !ok {
		return nil, false
	}
	return reg.client, true
}

// Remove forgets a connection and returns its client.
func (r *Registry) Remove(id string) (*Client, bool) {
	reg, ok := r.conns[id]
	if !ok {
		return nil, false
	}
	delete(r.conns, id)
	for i, cid := range r.order {
		if cid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return reg.client, true
}

// Each calls fn for every live connection in registration order.
func (r *Registry) Each(fn func(*Client)) {
	for _, id := range r.order {
		fn(r.conns[id].client)
	}
}

// Len returns the number of live connections.
func (r *Registry) Len() int {
	return len(r.conns)
}
