package live

import (
	"image"
	"sync"
)

// State is the camera state shown to the user.
type State string

const (
	StateStarting State = "starting"
	StateReady    State = "ready"
	StateFailed   State = "failed"
	StateStopped  State = "stopped"
)

// Status is the user-visible camera status.
type Status struct {
	State   State
	Reason  Reason
	Message string
	Size    image.Point
}

// EventType distinguishes hub events.
type EventType int

const (
	EventStatus EventType = iota
	EventParams
)

// Event is broadcast to hub subscribers.
type Event struct {
	Typ    EventType
	Status Status
	Params RenderParams
}

// Hub fans status and render parameter changes out to UI streams.
type Hub struct {
	mu     sync.Mutex
	status Status
	subs   map[chan Event]struct{}
}

// NewHub creates a hub in the starting state.
func NewHub() *Hub {
	return &Hub{
		status: Status{State: StateStarting},
		subs:   make(map[chan Event]struct{}),
	}
}

// Status returns the last published status.
func (h *Hub) Status() Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

// Subscribe returns a channel of events and an unsubscribe function.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	unsubscribe := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
	}
	return ch, unsubscribe
}

// PublishStatus records s and notifies subscribers.
func (h *Hub) PublishStatus(s Status) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.status = s
	h.broadcast(Event{Typ: EventStatus, Status: s})
}

// PublishParams notifies subscribers of a new snapshot.
func (h *Hub) PublishParams(p RenderParams) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcast(Event{Typ: EventParams, Params: p})
}

func (h *Hub) broadcast(evt Event) {
	for sub := range h.subs {
		select {
		case sub <- evt:
		default:
			// Drop rather than block the render loop.
		}
	}
}
