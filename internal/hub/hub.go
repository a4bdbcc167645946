package hub

import (
	"context"
	"log/slog"
	"sync"

	"github.com/atikulmunna/logscan/internal/model"
)

const subscriberBuffer = 16

// Hub keeps the latest Analysis and broadcasts every new one to subscribers.
type Hub struct {
	input       <-chan model.Analysis
	mu          sync.RWMutex
	latest      *model.Analysis
	subscribers map[chan model.Analysis]struct{}
	dropped     int64
}

// New creates a Hub that reads analyses from input.
func New(input <-chan model.Analysis) *Hub {
	return &Hub{
		input:       input,
		subscribers: make(map[chan model.Analysis]struct{}),
	}
}

// Subscribe returns a buffered channel that receives every published Analysis.
// The current one, if any, is delivered first.
func (h *Hub) Subscribe() <-chan model.Analysis {
	ch := make(chan model.Analysis, subscriberBuffer)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.latest != nil {
		ch <- *h.latest
	}
	h.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes and closes a channel returned by Subscribe.
func (h *Hub) Unsubscribe(sub <-chan model.Analysis) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		if ch == sub {
			delete(h.subscribers, ch)
			close(ch)
			return
		}
	}
}

// Latest returns the most recent Analysis.
func (h *Hub) Latest() (model.Analysis, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.latest == nil {
		return model.Analysis{}, false
	}
	return *h.latest, true
}

// Dropped returns the total number of analyses dropped due to slow consumers.
func (h *Hub) Dropped() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dropped
}

// Start reads from the input channel and broadcasts.
// Blocks until the context is cancelled or the input channel is closed.
func (h *Hub) Start(ctx context.Context) {
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			return
		case a, ok := <-h.input:
			if !ok {
				return
			}
			h.Publish(a)
		}
	}
}

// Publish records a as the latest Analysis and sends it to all subscribers.
// A subscriber whose channel is full misses it.
func (h *Hub) Publish(a model.Analysis) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = &a
	for ch := range h.subscribers {
		select {
		case ch <- a:
		default:
			h.dropped++
			slog.Warn("hub: dropped analysis for slow consumer", "dropped", h.dropped)
		}
	}
}

// closeAll closes all subscriber channels.
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		close(ch)
	}
	h.subscribers = make(map[chan model.Analysis]struct{})
}
