package bus

import (
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
)

type StatusHandler func(StatusPayload)

// Hub is the in-process message channel between the application and the
// blocker peer. Commands are fire-and-forget: if nothing drains Requests the
// queue fills and further commands are dropped. Status messages are delivered
// synchronously to every subscriber on the caller's goroutine.
type Hub struct {
	requestType  string
	responseType string
	out          chan Request
	log          *slog.Logger

	mu       sync.Mutex
	handlers map[uint64]StatusHandler
	order    []uint64
	nextID   uint64
	dropped  uint64
}

func NewHub(app string, bufferSize int, logger *slog.Logger) *Hub {
	if app == "" {
		app = DefaultApp
	}
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		requestType:  RequestType(app),
		responseType: ResponseType(app),
		out:          make(chan Request, bufferSize),
		log:          logger.With("component", "bus"),
		handlers:     make(map[uint64]StatusHandler),
	}
}

func (h *Hub) RequestType() string  { return h.requestType }
func (h *Hub) ResponseType() string { return h.responseType }

// Requests is drained by the peer (bridge or simulator).
func (h *Hub) Requests() <-chan Request {
	return h.out
}

// Send posts a command to the peer. payload may be nil.
func (h *Hub) Send(action Action, payload any) {
	req := Request{Type: h.requestType, Action: action}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			h.log.Debug("encode payload failed", "action", action, "error", err)
			return
		}
		req.Payload = raw
	}
	select {
	case h.out <- req:
	default:
		atomic.AddUint64(&h.dropped, 1)
		h.log.Debug("request dropped, no peer draining", "action", action)
	}
}

// OnStatus subscribes to status messages and returns an unsubscribe func.
func (h *Hub) OnStatus(handler StatusHandler) func() {
	if handler == nil {
		return func() {}
	}
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.handlers[id] = handler
	h.order = append(h.order, id)
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.handlers, id)
			for i, v := range h.order {
				if v == id {
					h.order = append(h.order[:i], h.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Deliver hands an inbound message to subscribers. Messages of any other
// type are ignored. It reports whether the message was accepted.
func (h *Hub) Deliver(resp Response) bool {
	if resp.Type != h.responseType {
		return false
	}
	h.mu.Lock()
	handlers := make([]StatusHandler, 0, len(h.order))
	for _, id := range h.order {
		handlers = append(handlers, h.handlers[id])
	}
	h.mu.Unlock()

	for _, fn := range handlers {
		fn(resp.Payload)
	}
	return true
}

// Publish wraps payload in a response of this hub's type and delivers it.
func (h *Hub) Publish(payload StatusPayload) {
	h.Deliver(Response{Type: h.responseType, Payload: payload})
}

func (h *Hub) Dropped() uint64 {
	return atomic.LoadUint64(&h.dropped)
}
