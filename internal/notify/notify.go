// Package notify signals that rows behind a logical resource may have changed.
// Signals carry no diff: subscribers re-run whatever they read.
package notify

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

type Resource string

const (
	Products   Resource = "products"
	Suppliers  Resource = "suppliers"
	Inventory  Resource = "inventory"
	Categories Resource = "categories"
)

func Item(id int64) Resource {
	return Resource(fmt.Sprintf("item:%d", id))
}

func Supplier(id int64) Resource {
	return Resource(fmt.Sprintf("supplier:%d", id))
}

// Subscription receives on C whenever one of its resources is published.
// Pending signals coalesce: C holds at most one.
type Subscription struct {
	ID        string
	C         <-chan Resource
	ch        chan Resource
	resources map[Resource]struct{}
}

type Hub struct {
	mu   sync.RWMutex
	subs map[string]*Subscription
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]*Subscription)}
}

func (h *Hub) Subscribe(resources ...Resource) *Subscription {
	ch := make(chan Resource, 1)
	s := &Subscription{
		ID:        uuid.New().String(),
		C:         ch,
		ch:        ch,
		resources: make(map[Resource]struct{}, len(resources)),
	}
	for _, r := range resources {
		s.resources[r] = struct{}{}
	}

	h.mu.Lock()
	h.subs[s.ID] = s
	h.mu.Unlock()
	return s
}

func (h *Hub) Unsubscribe(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s.ID]; ok {
		delete(h.subs, s.ID)
		close(s.ch)
	}
}

// Publish never blocks. A subscriber that already has a pending signal is
// skipped.
func (h *Hub) Publish(resources ...Resource) {
	if h == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.subs {
		for _, r := range resources {
			if _, ok := s.resources[r]; !ok {
				continue
			}
			select {
			case s.ch <- r:
			default:
			}
			break
		}
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
