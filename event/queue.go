package event

import (
	"sync/atomic"

	"github.com/lixenwraith/pixel-brawl/parameter"
)

// EventQueue is a lock-free MPSC ring of game events
// World.Step drains it; systems, services and the spectator hub may push from any goroutine
// When full the oldest unread event is overwritten and counted as dropped
type EventQueue struct {
	events [parameter.EventQueueSize]GameEvent
	ready  [parameter.EventQueueSize]atomic.Bool // Slot fully written
	head   atomic.Uint64                         // Next read
	tail   atomic.Uint64                         // Next write

	dropped atomic.Uint64
	peak    atomic.Uint64 // Largest backlog seen by a push
}

// QueueStats is a point-in-time view of queue pressure
type QueueStats struct {
	Pending int
	Dropped uint64
	Peak    int
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

func slot(i uint64) uint64 {
	return i & parameter.EventBufferMask
}

// Push claims a tail slot by CAS, writes it, then publishes
func (eq *EventQueue) Push(ev GameEvent) {
	for {
		tail := eq.tail.Load()
		next := tail + 1
		if !eq.tail.CompareAndSwap(tail, next) {
			continue
		}

		idx := slot(tail)
		eq.events[idx] = ev
		eq.ready[idx].Store(true)

		head := eq.head.Load()
		backlog := next - head
		if backlog > parameter.EventQueueSize {
			if eq.head.CompareAndSwap(head, next-parameter.EventQueueSize) {
				eq.dropped.Add(1)
			}
			backlog = parameter.EventQueueSize
		}
		for {
			p := eq.peak.Load()
			if backlog <= p || eq.peak.CompareAndSwap(p, backlog) {
				break
			}
		}
		return
	}
}

// Consume drains published events in FIFO order
// An unpublished slot stops the drain; the rest is picked up next time
func (eq *EventQueue) Consume() []GameEvent {
	for {
		head := eq.head.Load()
		tail := eq.tail.Load()
		if tail == head {
			return nil
		}

		n := tail - head
		if n > parameter.EventQueueSize {
			n = parameter.EventQueueSize
			head = tail - parameter.EventQueueSize
		}

		out := make([]GameEvent, 0, n)
		for i := uint64(0); i < n; i++ {
			idx := slot(head + i)
			if !eq.ready[idx].Load() {
				break
			}
			out = append(out, eq.events[idx])
			eq.ready[idx].Store(false)
		}

		if eq.head.CompareAndSwap(head, head+uint64(len(out))) {
			if len(out) == 0 {
				return nil
			}
			return out
		}
	}
}

// Len returns the approximate backlog
func (eq *EventQueue) Len() int {
	head := eq.head.Load()
	tail := eq.tail.Load()
	if tail <= head {
		return 0
	}
	return int(min(tail-head, parameter.EventQueueSize))
}

// Dropped returns how many unread events were overwritten
func (eq *EventQueue) Dropped() uint64 {
	return eq.dropped.Load()
}

func (eq *EventQueue) Stats() QueueStats {
	return QueueStats{
		Pending: eq.Len(),
		Dropped: eq.dropped.Load(),
		Peak:    int(eq.peak.Load()),
	}
}
