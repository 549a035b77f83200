package core

// DefaultSendBuffer is the outbound queue length used when none is given.
const DefaultSendBuffer = 32

// Client is a live connection as seen by the core layer.
// The transport writes Commands and drains Events; the hub closes Events
// once the connection is gone.
type Client struct {
	ID       string
	Commands chan *Command
	Events   chan *Event
}

// NewClient constructs a client with initialized channels.
func NewClient(id string, sendBuffer int) *Client {
	if sendBuffer <= 0 {
		sendBuffer = DefaultSendBuffer
	}
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, sendBuffer),
	}
}
