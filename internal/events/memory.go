package events

import (
	"context"
	"sync"
)

// MemoryBroker is an in-process broker used when Redis is not configured
// and in tests. Fan-out then only reaches observers of this instance, which
// is the same at-least-once, best-effort contract on a smaller radius.
type MemoryBroker struct {
	mu       sync.RWMutex
	subs     map[*memorySubscription]struct{}
	recorder Recorder
}

// NewMemoryBroker creates an empty in-process broker. recorder may be nil.
func NewMemoryBroker(recorder Recorder) *MemoryBroker {
	return &MemoryBroker{
		subs:     make(map[*memorySubscription]struct{}),
		recorder: recorder,
	}
}

// Publish delivers the event to every open subscription interested in its
// table. Slow consumers are skipped, not waited on.
func (b *MemoryBroker) Publish(ctx context.Context, event ChangeEvent) {
	if b.recorder != nil {
		b.recorder.IncrementChangeEventPublished(event.Table)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subs {
		if !sub.tables[event.Table] {
			continue
		}
		select {
		case sub.events <- event:
		default:
		}
	}
}

// Subscribe opens a subscription covering the given tables
func (b *MemoryBroker) Subscribe(ctx context.Context, tables ...string) (Subscription, error) {
	sub := &memorySubscription{
		broker: b,
		tables: make(map[string]bool, len(tables)),
		events: make(chan ChangeEvent, 16),
	}
	for _, table := range tables {
		sub.tables[table] = true
	}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	return sub, nil
}

type memorySubscription struct {
	broker    *MemoryBroker
	tables    map[string]bool
	events    chan ChangeEvent
	closeOnce sync.Once
}

func (s *memorySubscription) Events() <-chan ChangeEvent {
	return s.events
}

func (s *memorySubscription) Close() error {
	s.closeOnce.Do(func() {
		s.broker.mu.Lock()
		delete(s.broker.subs, s)
		s.broker.mu.Unlock()
		close(s.events)
	})
	return nil
}
