// Package live fans out change notifications to connected clients.
// Publishes are non-blocking: each subscriber holds a buffered channel of
// size one, so rapid successive changes coalesce into a single wakeup and
// a slow reader can never stall a writer.
package live

import (
	"log/slog"
	"sync"
)

// Topics carried by the hub.
const (
	TopicMembers       = "members"
	TopicTrainingTypes = "trainingTypes"
)

// Subscription receives coalesced change signals for one topic.
type Subscription struct {
	Topic string
	C     <-chan struct{}

	hub *Hub
	ch  chan struct{}
}

// Close detaches the subscription from the hub.
func (s *Subscription) Close() {
	s.hub.unsubscribe(s)
}

// Hub is an in-process pub/sub broker for change notifications.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*Subscription]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[*Subscription]struct{}),
	}
}

// Subscribe registers a new subscriber for the given topic.
// PRE: topic is non-empty
// POST: returned subscription receives a signal on every Publish until Close
func (h *Hub) Subscribe(topic string) *Subscription {
	ch := make(chan struct{}, 1)
	sub := &Subscription{Topic: topic, C: ch, hub: h, ch: ch}

	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[topic]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.subs[topic] = set
	}
	set[sub] = struct{}{}
	return sub
}

// Publish signals every subscriber on the topic without blocking.
// A subscriber with a pending signal is skipped; the pending signal
// already covers this change.
func (h *Hub) Publish(topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[topic] {
		select {
		case sub.ch <- struct{}{}:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscriptions on a topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[topic])
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[sub.Topic]
	if !ok {
		return
	}
	if _, present := set[sub]; !present {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, sub.Topic)
	}
	slog.Debug("live_unsubscribe", "topic", sub.Topic, "remaining", len(set))
}
